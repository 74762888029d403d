package models

import (
	"time"

	"github.com/google/uuid"

	"askstack/internal/utils"
)

type Reply struct {
	ID        uuid.UUID `json:"id"`
	CommentID uuid.UUID `json:"comment"`
	Body      string    `json:"reply"`
	OwnerID   uuid.UUID `json:"user"`
	CreatedAt time.Time `json:"timestamp"`
}

// Validate checks the reply fields against the schema limits.
func (r *Reply) Validate() error {
	if r.CommentID == uuid.Nil || r.Body == "" {
		return utils.NewAppError(utils.ErrInvalidInput, "Comment ID and reply text are required", nil)
	}
	if len(r.Body) > 300 {
		return utils.NewAppError(utils.ErrInvalidInput, "Reply must be at most 300 characters", nil)
	}
	return nil
}
