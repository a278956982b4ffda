package migration

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/deckhubapp/deckhub/deckhub/database/models"
	pgx "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Migrator copies the legacy Mongoose data set into Postgres. Users go
// first, then decks (building the ObjectID-to-serial mapping), then the
// comments and notifications that reference them.
type Migrator struct {
	pgDB      *bun.DB
	mongoDB   *mongo.Database
	batchSize int

	// Optional pgx pool enabling the COPY fast path for users.
	pool    *pgxpool.Pool
	useCopy bool

	// deckIDs maps legacy deck ObjectID hex to the new serial ID.
	deckIDs map[string]int64

	stats MigrationStats
}

func NewMigrator(pgDB *bun.DB, client *mongo.Client, dbName string) *Migrator {
	return &Migrator{
		pgDB:      pgDB,
		mongoDB:   client.Database(dbName),
		batchSize: 1000,
		deckIDs:   make(map[string]int64),
		stats: MigrationStats{
			Tables:    make(map[string]*TableStats),
			StartTime: time.Now(),
		},
	}
}

// SetBatchSize overrides the default insert batch size.
func (m *Migrator) SetBatchSize(size int) {
	if size > 0 {
		m.batchSize = size
	}
}

// SetUseCopy enables COPY FROM mode using pgx for the users table.
func (m *Migrator) SetUseCopy(v bool) { m.useCopy = v }

// UsePool sets the pgx pool for COPY operations.
func (m *Migrator) UsePool(pool *pgxpool.Pool) { m.pool = pool }

func (m *Migrator) Stats() MigrationStats { return m.stats }

// MigrateAll runs the full migration in dependency order.
func (m *Migrator) MigrateAll(ctx context.Context) error {
	slog.Info("Starting legacy migration")

	if err := m.MigrateUsers(ctx); err != nil {
		return fmt.Errorf("users migration failed: %w", err)
	}
	if err := m.MigrateDecks(ctx); err != nil {
		return fmt.Errorf("decks migration failed: %w", err)
	}
	if err := m.MigrateComments(ctx); err != nil {
		return fmt.Errorf("comments migration failed: %w", err)
	}
	if err := m.MigrateNotifications(ctx); err != nil {
		return fmt.Errorf("notifications migration failed: %w", err)
	}

	m.logSummary()
	return nil
}

// MigrateUsers copies the users collection.
func (m *Migrator) MigrateUsers(ctx context.Context) error {
	stats := m.stats.table("users")

	cur, err := m.mongoDB.Collection("users").Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to query users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*models.User
	for cur.Next(ctx) {
		var mu MongoUser
		if err := cur.Decode(&mu); err != nil {
			stats.Skipped++
			continue
		}
		stats.Read++

		user, err := convertUser(mu)
		if err != nil {
			slog.Warn("Skipping user", slog.String("error", err.Error()))
			stats.Skipped++
			continue
		}
		users = append(users, user)
	}
	if err := cur.Err(); err != nil {
		return err
	}

	if m.useCopy && m.pool != nil {
		return m.copyUsers(ctx, users, stats)
	}
	return m.batchInsertUsers(ctx, users, stats)
}

func (m *Migrator) batchInsertUsers(ctx context.Context, users []*models.User, stats *TableStats) error {
	for start := 0; start < len(users); start += m.batchSize {
		end := start + m.batchSize
		if end > len(users) {
			end = len(users)
		}
		batch := users[start:end]

		_, err := m.pgDB.NewInsert().
			Model(&batch).
			On("CONFLICT (id) DO NOTHING").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert users batch: %w", err)
		}
		stats.Inserted += len(batch)
	}
	return nil
}

// copyUsers is the COPY FROM fast path. It assumes a fresh users table, so
// it skips conflict handling entirely.
func (m *Migrator) copyUsers(ctx context.Context, users []*models.User, stats *TableStats) error {
	conn, err := m.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Release()

	cols := []string{"id", "username", "avatar_url", "email", "roles", "favorite_cards", "created_at", "updated_at"}
	rows := make([][]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, []any{u.ID, u.Username, u.AvatarURL, u.Email, u.Roles, u.FavoriteCards, u.CreatedAt, u.UpdatedAt})
	}

	n, err := conn.Conn().CopyFrom(ctx, pgx.Identifier{"users"}, cols, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("COPY users failed: %w", err)
	}
	stats.Inserted += int(n)
	return nil
}

// MigrateDecks copies the decks collection one document at a time so the
// returned serial IDs can be recorded against the legacy ObjectIDs.
func (m *Migrator) MigrateDecks(ctx context.Context) error {
	stats := m.stats.table("decks")

	cur, err := m.mongoDB.Collection("decks").Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to query decks: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var md MongoDeck
		if err := cur.Decode(&md); err != nil {
			stats.Skipped++
			continue
		}
		stats.Read++

		deck, err := convertDeck(md)
		if err != nil {
			slog.Warn("Skipping deck", slog.String("error", err.Error()))
			stats.Skipped++
			continue
		}

		_, err = m.pgDB.NewInsert().
			Model(deck).
			Returning("id").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert deck %s: %w", md.ID.Hex(), err)
		}

		m.deckIDs[md.ID.Hex()] = deck.ID
		stats.Inserted++
	}
	return cur.Err()
}

// MigrateComments copies the comments collection. Comments whose target
// deck was skipped are themselves skipped.
func (m *Migrator) MigrateComments(ctx context.Context) error {
	stats := m.stats.table("comments")

	cur, err := m.mongoDB.Collection("comments").Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to query comments: %w", err)
	}
	defer cur.Close(ctx)

	var comments []*models.Comment
	for cur.Next(ctx) {
		var mc MongoComment
		if err := cur.Decode(&mc); err != nil {
			stats.Skipped++
			continue
		}
		stats.Read++

		comment, err := convertComment(mc, m.deckIDs)
		if err != nil {
			slog.Warn("Skipping comment", slog.String("error", err.Error()))
			stats.Skipped++
			continue
		}
		comments = append(comments, comment)
	}
	if err := cur.Err(); err != nil {
		return err
	}

	for start := 0; start < len(comments); start += m.batchSize {
		end := start + m.batchSize
		if end > len(comments) {
			end = len(comments)
		}
		batch := comments[start:end]

		if _, err := m.pgDB.NewInsert().Model(&batch).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert comments batch: %w", err)
		}
		stats.Inserted += len(batch)
	}
	return nil
}

// MigrateNotifications copies the notifications collection.
func (m *Migrator) MigrateNotifications(ctx context.Context) error {
	stats := m.stats.table("notifications")

	cur, err := m.mongoDB.Collection("notifications").Find(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cur.Close(ctx)

	var notifications []*models.Notification
	for cur.Next(ctx) {
		var mn MongoNotification
		if err := cur.Decode(&mn); err != nil {
			stats.Skipped++
			continue
		}
		stats.Read++

		notification, err := convertNotification(mn, m.deckIDs)
		if err != nil {
			slog.Warn("Skipping notification", slog.String("error", err.Error()))
			stats.Skipped++
			continue
		}
		notifications = append(notifications, notification)
	}
	if err := cur.Err(); err != nil {
		return err
	}

	for start := 0; start < len(notifications); start += m.batchSize {
		end := start + m.batchSize
		if end > len(notifications) {
			end = len(notifications)
		}
		batch := notifications[start:end]

		if _, err := m.pgDB.NewInsert().Model(&batch).Exec(ctx); err != nil {
			return fmt.Errorf("failed to insert notifications batch: %w", err)
		}
		stats.Inserted += len(batch)
	}
	return nil
}

func (m *Migrator) logSummary() {
	duration := time.Since(m.stats.StartTime)
	for name, table := range m.stats.Tables {
		slog.Info("Migration table finished",
			slog.String("table", name),
			slog.Int("read", table.Read),
			slog.Int("inserted", table.Inserted),
			slog.Int("skipped", table.Skipped))
	}
	slog.Info("Legacy migration finished", slog.Duration("duration", duration))
}
