package models

import (
	"time"

	"github.com/uptrace/bun"
)

type NotificationType string

const (
	NotificationLike    NotificationType = "like"
	NotificationComment NotificationType = "comment"
	NotificationFollow  NotificationType = "follow"
	NotificationMention NotificationType = "mention"
	NotificationSystem  NotificationType = "system"
)

type Notification struct {
	bun.BaseModel `bun:"table:notifications,alias:n"`

	ID         int64            `bun:"id,pk,autoincrement" json:"id"`
	Type       NotificationType `bun:"type,notnull" json:"type"`
	Message    string           `bun:"message,notnull" json:"message"`
	TargetType TargetType       `bun:"target_type,notnull" json:"target_type"`
	TargetID   int64            `bun:"target_id,notnull" json:"target_id"`

	// UserID is the recipient, TriggeredBy the acting user (optional).
	UserID      string `bun:"user_id,notnull" json:"user_id"`
	TriggeredBy string `bun:"triggered_by" json:"triggered_by,omitempty"`

	Read      bool      `bun:"read,notnull,default:false" json:"read"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
