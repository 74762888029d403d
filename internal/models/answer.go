package models

import (
	"time"

	"github.com/google/uuid"

	"askstack/internal/utils"
)

type Answer struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"que"`
	Body       string    `json:"answerData"`
	OwnerID    uuid.UUID `json:"user"`
	VoteSets
	Votes      int       `json:"votes"`
	IsAccepted bool      `json:"isAccepted"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Validate checks the answer fields before creation.
func (a *Answer) Validate() error {
	if a.QuestionID == uuid.Nil || a.Body == "" {
		return utils.NewAppError(utils.ErrInvalidInput, "Question ID and answer data are required", nil)
	}
	return nil
}
