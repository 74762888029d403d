package actors

import (
	stdctx "context"
	"sync"
	"testing"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askstack/internal/authz"
	"askstack/internal/database"
	"askstack/internal/models"
	"askstack/internal/utils"
)

func spawnQuestionActor(t *testing.T) (*actor.ActorSystem, *actor.PID, database.Store) {
	t.Helper()
	store := database.NewMemoryStore()
	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewQuestionActor(store, utils.NewMetricsCollector())
	})
	return system, system.Root.Spawn(props), store
}

func identity(id uuid.UUID) authz.Identity {
	return authz.Identity{ID: id, Email: "user@example.com", Role: models.RoleUser}
}

func TestQuestionActorCreateAndGet(t *testing.T) {
	system, pid, store := spawnQuestionActor(t)
	ownerID := uuid.New()

	require.NoError(t, store.SaveUser(stdctx.Background(), &models.User{
		ID: ownerID, Email: "owner@example.com", Name: "Owner", Role: models.RoleUser,
	}))

	result := askActor(t, system, pid, &CreateQuestionMsg{
		Title:   "How do actors serialize writes?",
		Desc:    "Looking for a concrete explanation.",
		Tags:    []string{" Go ", "Actors"},
		OwnerID: ownerID,
	})
	question, ok := result.(*models.Question)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, []string{"go", "actors"}, question.Tags)
	assert.Equal(t, 0, question.Votes)

	result = askActor(t, system, pid, &GetQuestionMsg{QuestionID: question.ID})
	populated, ok := result.(*models.PopulatedQuestion)
	require.True(t, ok, "got %T", result)
	require.NotNil(t, populated.Owner)
	assert.Equal(t, "Owner", populated.Owner.Name)
	assert.Equal(t, "owner@example.com", populated.Owner.Email)
	assert.Empty(t, populated.AnswerItems)
}

func TestQuestionActorGetToleratesDeletedOwner(t *testing.T) {
	system, pid, _ := spawnQuestionActor(t)

	result := askActor(t, system, pid, &CreateQuestionMsg{
		Title:   "Who asked this?",
		Desc:    "The author is gone.",
		OwnerID: uuid.New(),
	})
	question := result.(*models.Question)

	result = askActor(t, system, pid, &GetQuestionMsg{QuestionID: question.ID})
	populated := result.(*models.PopulatedQuestion)
	assert.Nil(t, populated.Owner)
}

func TestQuestionActorCreateValidation(t *testing.T) {
	system, pid, _ := spawnQuestionActor(t)

	result := askActor(t, system, pid, &CreateQuestionMsg{Title: "Hey", Desc: "short title", OwnerID: uuid.New()})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, utils.ErrInvalidInput, appErr.Code)
}

func TestQuestionActorVoteToggle(t *testing.T) {
	system, pid, _ := spawnQuestionActor(t)
	voter := identity(uuid.New())

	result := askActor(t, system, pid, &CreateQuestionMsg{
		Title: "Does voting toggle?", Desc: "yes", OwnerID: uuid.New(),
	})
	question := result.(*models.Question)

	// Upvote lands
	result = askActor(t, system, pid, &VoteQuestionMsg{QuestionID: question.ID, Actor: voter, Direction: models.VoteUp})
	updated := result.(*models.Question)
	assert.Equal(t, 1, updated.Votes)

	// Same direction toggles off
	result = askActor(t, system, pid, &VoteQuestionMsg{QuestionID: question.ID, Actor: voter, Direction: models.VoteUp})
	updated = result.(*models.Question)
	assert.Equal(t, 0, updated.Votes)
	assert.Empty(t, updated.Upvoters)

	// Up then down moves across sets
	askActor(t, system, pid, &VoteQuestionMsg{QuestionID: question.ID, Actor: voter, Direction: models.VoteUp})
	result = askActor(t, system, pid, &VoteQuestionMsg{QuestionID: question.ID, Actor: voter, Direction: models.VoteDown})
	updated = result.(*models.Question)
	assert.Equal(t, -1, updated.Votes)
	assert.Empty(t, updated.Upvoters)
	assert.Len(t, updated.Downvoters, 1)
}

func TestQuestionActorVoteInvalidDirection(t *testing.T) {
	system, pid, _ := spawnQuestionActor(t)

	result := askActor(t, system, pid, &CreateQuestionMsg{Title: "A valid title", Desc: "desc", OwnerID: uuid.New()})
	question := result.(*models.Question)

	result = askActor(t, system, pid, &VoteQuestionMsg{
		QuestionID: question.ID,
		Actor:      identity(uuid.New()),
		Direction:  models.VoteDirection("sideways"),
	})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, utils.ErrInvalidInput, appErr.Code)
}

func TestQuestionActorConcurrentVotesBothLand(t *testing.T) {
	system, pid, _ := spawnQuestionActor(t)

	result := askActor(t, system, pid, &CreateQuestionMsg{Title: "Race question", Desc: "desc", OwnerID: uuid.New()})
	question := result.(*models.Question)

	const numVoters = 20
	var wg sync.WaitGroup
	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			future := system.Root.RequestFuture(pid, &VoteQuestionMsg{
				QuestionID: question.ID,
				Actor:      identity(uuid.New()),
				Direction:  models.VoteUp,
			}, 5*time.Second)
			_, err := future.Result()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	result = askActor(t, system, pid, &GetQuestionMsg{QuestionID: question.ID})
	populated := result.(*models.PopulatedQuestion)
	assert.Equal(t, numVoters, populated.Votes)
	assert.Len(t, populated.Upvoters, numVoters)
}

func TestQuestionActorDeleteOwnership(t *testing.T) {
	system, pid, _ := spawnQuestionActor(t)
	ownerID := uuid.New()

	result := askActor(t, system, pid, &CreateQuestionMsg{Title: "Delete me later", Desc: "desc", OwnerID: ownerID})
	question := result.(*models.Question)

	// A stranger is forbidden
	result = askActor(t, system, pid, &DeleteQuestionMsg{QuestionID: question.ID, Actor: identity(uuid.New())})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, utils.ErrForbidden, appErr.Code)

	// The owner succeeds
	result = askActor(t, system, pid, &DeleteQuestionMsg{QuestionID: question.ID, Actor: identity(ownerID)})
	assert.Equal(t, true, result)

	// Deleting again is NotFound
	result = askActor(t, system, pid, &DeleteQuestionMsg{QuestionID: question.ID, Actor: identity(ownerID)})
	appErr, ok = result.(*utils.AppError)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, utils.ErrNotFound, appErr.Code)
}

func TestQuestionActorListNewestFirst(t *testing.T) {
	system, pid, _ := spawnQuestionActor(t)

	askActor(t, system, pid, &CreateQuestionMsg{Title: "First question", Desc: "desc", OwnerID: uuid.New()})
	time.Sleep(5 * time.Millisecond)
	askActor(t, system, pid, &CreateQuestionMsg{Title: "Second question", Desc: "desc", OwnerID: uuid.New()})

	result := askActor(t, system, pid, &ListQuestionsMsg{})
	questions, ok := result.([]*models.Question)
	require.True(t, ok, "got %T", result)
	require.Len(t, questions, 2)
	assert.Equal(t, "Second question", questions[0].Title)
}
