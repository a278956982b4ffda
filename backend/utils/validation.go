package utils

import (
	"regexp"
	"strings"

	"github.com/deckhubapp/deckhub/backend/models"
	"github.com/gofiber/fiber/v2"
)

var (
	// ValidUsernameRegex validates login usernames
	ValidUsernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-.]{2,32}$`)

	// MaxDeckNameLength caps deck names
	MaxDeckNameLength = 100

	// MaxCommentLength caps comment bodies
	MaxCommentLength = 2000
)

// ValidateDeckRequest checks the request shape before the composition rules
// run. Rule violations are the validator's job; this only rejects payloads
// that are not a deck at all.
func ValidateDeckRequest(req *models.DeckRequest) map[string]string {
	details := make(map[string]string)

	if strings.TrimSpace(req.Name) == "" {
		details["name"] = "Name is required"
	} else if len(req.Name) > MaxDeckNameLength {
		details["name"] = "Name is too long"
	}

	for _, sel := range req.Cards {
		if sel.CardID <= 0 || sel.Count <= 0 {
			details["cards"] = "Card selections need a positive card ID and count"
			break
		}
	}

	for _, sel := range req.Energy {
		if sel.Count <= 0 {
			details["energy"] = "Energy selections need a positive count"
			break
		}
	}

	for i, tag := range req.Tags {
		if len(tag) > 50 {
			details["tags"] = "Tags must be less than 50 characters"
			break
		}
		req.Tags[i] = strings.TrimSpace(tag)
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

// ValidateCommentRequest checks a comment payload's shape.
func ValidateCommentRequest(req *models.CommentRequest) map[string]string {
	details := make(map[string]string)

	if req.TargetID <= 0 {
		details["target_id"] = "Target ID is required"
	}
	if req.TargetType == "" {
		details["target_type"] = "Target type is required"
	}
	if len(req.Content) > MaxCommentLength {
		details["content"] = "Comment is too long"
	}

	if len(details) == 0 {
		return nil
	}
	return details
}

// ParsePagination reads page/limit query parameters with sane bounds.
func ParsePagination(c *fiber.Ctx, defaultLimit, maxLimit int) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}
