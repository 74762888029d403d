package database

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askstack/internal/models"
	"askstack/internal/utils"
)

func TestMemoryStoreUserRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	user := &models.User{
		ID:    uuid.New(),
		Email: "alice@example.com",
		Name:  "Alice",
		Role:  models.RoleUser,
	}
	require.NoError(t, store.SaveUser(ctx, user))

	got, err := store.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)

	byEmail, err := store.GetUserByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	count, err := store.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, store.DeleteUser(ctx, user.ID))
	_, err = store.GetUser(ctx, user.ID)
	assert.True(t, utils.IsErrorCode(err, utils.ErrUserNotFound))
}

func TestMemoryStoreRecentQuestionsOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	old := &models.Question{ID: uuid.New(), Title: "Older question", CreatedAt: time.Now().Add(-time.Hour)}
	recent := &models.Question{ID: uuid.New(), Title: "Newer question", CreatedAt: time.Now()}
	require.NoError(t, store.SaveQuestion(ctx, old))
	require.NoError(t, store.SaveQuestion(ctx, recent))

	questions, err := store.GetRecentQuestions(ctx)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, recent.ID, questions[0].ID)
	assert.Equal(t, old.ID, questions[1].ID)
}

func TestMemoryStoreAttachDetachAnswer(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	question := &models.Question{ID: uuid.New(), Title: "Question title"}
	require.NoError(t, store.SaveQuestion(ctx, question))

	answerID := uuid.New()
	require.NoError(t, store.AttachAnswer(ctx, question.ID, answerID))

	got, err := store.GetQuestion(ctx, question.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{answerID}, got.Answers)

	require.NoError(t, store.DetachAnswer(ctx, question.ID, answerID))
	got, err = store.GetQuestion(ctx, question.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Answers)

	// Attaching to a missing question reports NotFound
	err = store.AttachAnswer(ctx, uuid.New(), answerID)
	assert.True(t, utils.IsErrorCode(err, utils.ErrNotFound))

	// Detaching from a missing question is tolerated
	assert.NoError(t, store.DetachAnswer(ctx, uuid.New(), answerID))
}

func TestMemoryStoreCopiesOnReturn(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	question := &models.Question{ID: uuid.New(), Title: "Question title", Tags: []string{"go"}}
	require.NoError(t, store.SaveQuestion(ctx, question))

	got, err := store.GetQuestion(ctx, question.ID)
	require.NoError(t, err)

	// Mutating the returned copy must not leak into the store
	got.Tags[0] = "mutated"
	got.Title = "mutated"

	fresh, err := store.GetQuestion(ctx, question.ID)
	require.NoError(t, err)
	assert.Equal(t, "Question title", fresh.Title)
	assert.Equal(t, []string{"go"}, fresh.Tags)
}

func TestMemoryStoreGetAnswersByIDsKeepsOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	first := &models.Answer{ID: uuid.New(), QuestionID: uuid.New(), Body: "first"}
	second := &models.Answer{ID: uuid.New(), QuestionID: first.QuestionID, Body: "second"}
	require.NoError(t, store.SaveAnswer(ctx, first))
	require.NoError(t, store.SaveAnswer(ctx, second))

	answers, err := store.GetAnswersByIDs(ctx, []uuid.UUID{second.ID, first.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "second", answers[0].Body)
	assert.Equal(t, "first", answers[1].Body)
}

func TestMemoryStoreCommentFilters(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	queA := uuid.New()
	queB := uuid.New()
	require.NoError(t, store.SaveComment(ctx, &models.Comment{ID: uuid.New(), QuestionID: queA, Body: "on A", CreatedAt: time.Now()}))
	require.NoError(t, store.SaveComment(ctx, &models.Comment{ID: uuid.New(), QuestionID: queB, Body: "on B", CreatedAt: time.Now()}))

	all, err := store.GetComments(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyA, err := store.GetComments(ctx, &queA)
	require.NoError(t, err)
	require.Len(t, onlyA, 1)
	assert.Equal(t, "on A", onlyA[0].Body)
}
