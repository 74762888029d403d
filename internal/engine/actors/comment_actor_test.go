package actors

import (
	stdctx "context"
	"testing"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askstack/internal/database"
	"askstack/internal/models"
	"askstack/internal/utils"
)

func spawnCommentActor(t *testing.T) (*actor.ActorSystem, *actor.PID, database.Store) {
	t.Helper()
	store := database.NewMemoryStore()
	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewCommentActor(store, utils.NewMetricsCollector())
	})
	return system, system.Root.Spawn(props), store
}

func TestCommentActorCreateRequiresQuestion(t *testing.T) {
	system, pid, _ := spawnCommentActor(t)

	result := askActor(t, system, pid, &CreateCommentMsg{
		QuestionID: uuid.New(),
		Body:       "Comment on nothing",
		OwnerID:    uuid.New(),
	})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
}

func TestCommentActorCreateAndGetPopulated(t *testing.T) {
	system, pid, store := spawnCommentActor(t)
	question := seedQuestion(t, store)

	result := askActor(t, system, pid, &CreateCommentMsg{
		QuestionID: question.ID,
		Body:       "Nice question",
		OwnerID:    uuid.New(),
	})
	comment, ok := result.(*models.Comment)
	require.True(t, ok, "got %T", result)

	// Reply to it, then the populated read carries the reply record
	result = askActor(t, system, pid, &CreateReplyMsg{
		CommentID: comment.ID,
		Body:      "Thanks",
		OwnerID:   uuid.New(),
	})
	reply, ok := result.(*models.Reply)
	require.True(t, ok, "got %T", result)

	result = askActor(t, system, pid, &GetCommentMsg{CommentID: comment.ID})
	populated, ok := result.(*models.PopulatedComment)
	require.True(t, ok, "got %T", result)
	require.Len(t, populated.ReplyItems, 1)
	assert.Equal(t, reply.ID, populated.ReplyItems[0].ID)
	assert.Equal(t, []uuid.UUID{reply.ID}, populated.Replies)
}

func TestCommentActorReplyToMissingComment(t *testing.T) {
	system, pid, store := spawnCommentActor(t)

	result := askActor(t, system, pid, &CreateReplyMsg{
		CommentID: uuid.New(),
		Body:      "Reply to nothing",
		OwnerID:   uuid.New(),
	})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, utils.ErrNotFound, appErr.Code)

	replies, err := store.GetReplies(stdctx.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, replies)
}

func TestCommentActorVoteToggle(t *testing.T) {
	system, pid, store := spawnCommentActor(t)
	question := seedQuestion(t, store)
	voter := identity(uuid.New())

	result := askActor(t, system, pid, &CreateCommentMsg{
		QuestionID: question.ID,
		Body:       "Votable comment",
		OwnerID:    uuid.New(),
	})
	comment := result.(*models.Comment)

	result = askActor(t, system, pid, &VoteCommentMsg{CommentID: comment.ID, Actor: voter, Direction: models.VoteUp})
	updated := result.(*models.Comment)
	assert.Equal(t, 1, updated.Votes)

	result = askActor(t, system, pid, &VoteCommentMsg{CommentID: comment.ID, Actor: voter, Direction: models.VoteUp})
	updated = result.(*models.Comment)
	assert.Equal(t, 0, updated.Votes)
}

func TestCommentActorDeleteOwnership(t *testing.T) {
	system, pid, store := spawnCommentActor(t)
	question := seedQuestion(t, store)
	ownerID := uuid.New()

	result := askActor(t, system, pid, &CreateCommentMsg{
		QuestionID: question.ID,
		Body:       "To be deleted",
		OwnerID:    ownerID,
	})
	comment := result.(*models.Comment)

	result = askActor(t, system, pid, &DeleteCommentMsg{CommentID: comment.ID, Actor: identity(uuid.New())})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, utils.ErrForbidden, appErr.Code)

	result = askActor(t, system, pid, &DeleteCommentMsg{CommentID: comment.ID, Actor: identity(ownerID)})
	assert.Equal(t, true, result)
}

func TestCommentActorDeleteReplyDetaches(t *testing.T) {
	system, pid, store := spawnCommentActor(t)
	question := seedQuestion(t, store)
	replierID := uuid.New()

	result := askActor(t, system, pid, &CreateCommentMsg{
		QuestionID: question.ID,
		Body:       "Parent comment",
		OwnerID:    uuid.New(),
	})
	comment := result.(*models.Comment)

	result = askActor(t, system, pid, &CreateReplyMsg{
		CommentID: comment.ID,
		Body:      "Short lived reply",
		OwnerID:   replierID,
	})
	reply := result.(*models.Reply)

	result = askActor(t, system, pid, &DeleteReplyMsg{ReplyID: reply.ID, Actor: identity(replierID)})
	assert.Equal(t, true, result)

	got, err := store.GetComment(stdctx.Background(), comment.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Replies)
}

func TestCommentActorListByQuestion(t *testing.T) {
	system, pid, store := spawnCommentActor(t)
	questionA := seedQuestion(t, store)
	questionB := seedQuestion(t, store)

	askActor(t, system, pid, &CreateCommentMsg{QuestionID: questionA.ID, Body: "on A", OwnerID: uuid.New()})
	askActor(t, system, pid, &CreateCommentMsg{QuestionID: questionB.ID, Body: "on B", OwnerID: uuid.New()})

	result := askActor(t, system, pid, &ListCommentsMsg{QuestionID: &questionA.ID})
	comments, ok := result.([]*models.PopulatedComment)
	require.True(t, ok, "got %T", result)
	require.Len(t, comments, 1)
	assert.Equal(t, "on A", comments[0].Body)

	result = askActor(t, system, pid, &ListCommentsMsg{})
	comments = result.([]*models.PopulatedComment)
	assert.Len(t, comments, 2)
}
