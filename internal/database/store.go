// internal/database/store.go
package database

import (
	"context"

	"github.com/google/uuid"

	"askstack/internal/models"
)

// Store defines the common interface for document-store operations. The
// engine only ever talks to the store through this interface, so MongoDB can
// be swapped for the in-memory implementation in tests and local runs.
type Store interface {
	// Connection
	Close(ctx context.Context) error

	// User methods
	SaveUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	CountUsers(ctx context.Context) (int64, error)

	// Question methods
	SaveQuestion(ctx context.Context, question *models.Question) error
	GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error)
	GetRecentQuestions(ctx context.Context) ([]*models.Question, error)
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
	UpdateQuestionVotes(ctx context.Context, id uuid.UUID, votes models.VoteSets) error
	AttachAnswer(ctx context.Context, questionID, answerID uuid.UUID) error
	DetachAnswer(ctx context.Context, questionID, answerID uuid.UUID) error
	CountQuestions(ctx context.Context) (int64, error)

	// Answer methods
	SaveAnswer(ctx context.Context, answer *models.Answer) error
	GetAnswer(ctx context.Context, id uuid.UUID) (*models.Answer, error)
	GetAnswersByQuestion(ctx context.Context, questionID uuid.UUID) ([]*models.Answer, error)
	GetAnswersByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Answer, error)
	DeleteAnswer(ctx context.Context, id uuid.UUID) error
	UpdateAnswerVotes(ctx context.Context, id uuid.UUID, votes models.VoteSets) error

	// Comment methods
	SaveComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	GetComments(ctx context.Context, questionID *uuid.UUID) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, id uuid.UUID) error
	UpdateCommentVotes(ctx context.Context, id uuid.UUID, votes models.VoteSets) error
	AttachReply(ctx context.Context, commentID, replyID uuid.UUID) error
	DetachReply(ctx context.Context, commentID, replyID uuid.UUID) error

	// Reply methods
	SaveReply(ctx context.Context, reply *models.Reply) error
	GetReply(ctx context.Context, id uuid.UUID) (*models.Reply, error)
	GetReplies(ctx context.Context, commentID *uuid.UUID) ([]*models.Reply, error)
	DeleteReply(ctx context.Context, id uuid.UUID) error
}
