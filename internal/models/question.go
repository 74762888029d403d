package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"askstack/internal/utils"
)

type Question struct {
	ID        uuid.UUID   `json:"id"`
	Title     string      `json:"title"`
	Desc      string      `json:"desc"`
	Tags      []string    `json:"tags"`
	ImageURL  string      `json:"imageurl"`
	OwnerID   uuid.UUID   `json:"owner"`
	Answers   []uuid.UUID `json:"answers"`
	VoteSets
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnerSummary is the populated owner shape returned on question reads,
// mirroring a populate("owner", "name email") projection.
type OwnerSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// PopulatedQuestion is a question with its owner and answers expanded.
type PopulatedQuestion struct {
	Question
	Owner       *OwnerSummary `json:"ownerDetails,omitempty"`
	AnswerItems []*Answer     `json:"answerItems"`
}

// NormalizeTags trims and lowercases tags and drops empties. There is no
// upper limit on the number of tags.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// Validate checks the question fields against the schema limits.
func (q *Question) Validate() error {
	if q.Title == "" || q.Desc == "" {
		return utils.NewAppError(utils.ErrInvalidInput, "Title and description are required", nil)
	}
	if len(q.Title) < 5 || len(q.Title) > 200 {
		return utils.NewAppError(utils.ErrInvalidInput, "Title must be between 5 and 200 characters", nil)
	}
	return nil
}
