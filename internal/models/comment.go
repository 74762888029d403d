package models

import (
	"time"

	"github.com/google/uuid"

	"askstack/internal/utils"
)

type Comment struct {
	ID         uuid.UUID   `json:"id"`
	QuestionID uuid.UUID   `json:"que"`
	Body       string      `json:"comment"`
	OwnerID    uuid.UUID   `json:"user"`
	Replies    []uuid.UUID `json:"replies"`
	VoteSets
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"timestamp"`
}

// PopulatedComment is a comment with its replies expanded.
type PopulatedComment struct {
	Comment
	ReplyItems []*Reply `json:"replyItems"`
}

// Validate checks the comment fields against the schema limits.
func (c *Comment) Validate() error {
	if c.QuestionID == uuid.Nil || c.Body == "" {
		return utils.NewAppError(utils.ErrInvalidInput, "Question ID and comment are required", nil)
	}
	if len(c.Body) > 500 {
		return utils.NewAppError(utils.ErrInvalidInput, "Comment must be at most 500 characters", nil)
	}
	return nil
}
