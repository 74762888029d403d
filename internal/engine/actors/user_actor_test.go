package actors

import (
	"testing"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"askstack/internal/authz"
	"askstack/internal/database"
	"askstack/internal/models"
	"askstack/internal/utils"
)

func spawnUserActor(t *testing.T) (*actor.ActorSystem, *actor.PID, database.Store) {
	t.Helper()
	store := database.NewMemoryStore()
	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewUserActor(store, utils.NewMetricsCollector())
	})
	return system, system.Root.Spawn(props), store
}

func askActor(t *testing.T, system *actor.ActorSystem, pid *actor.PID, msg interface{}) interface{} {
	t.Helper()
	future := system.Root.RequestFuture(pid, msg, 5*time.Second)
	result, err := future.Result()
	require.NoError(t, err)
	return result
}

func TestUserActorRegisterAndLogin(t *testing.T) {
	system, pid, _ := spawnUserActor(t)

	result := askActor(t, system, pid, &RegisterUserMsg{
		Email:    "Alice@Example.com",
		Name:     "Alice",
		Password: "secret1",
	})
	user, ok := result.(*models.User)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret1", user.HashedPassword)

	result = askActor(t, system, pid, &LoginMsg{Email: "alice@example.com", Password: "secret1"})
	identity, ok := result.(*authz.Identity)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, user.ID, identity.ID)
	assert.Equal(t, user.Email, identity.Email)
}

func TestUserActorDuplicateEmail(t *testing.T) {
	system, pid, _ := spawnUserActor(t)

	askActor(t, system, pid, &RegisterUserMsg{Email: "bob@example.com", Name: "Bob", Password: "secret1"})

	// Case-insensitive duplicate
	result := askActor(t, system, pid, &RegisterUserMsg{Email: "BOB@example.com", Name: "Bobby", Password: "secret2"})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, utils.ErrUserAlreadyExists, appErr.Code)
}

func TestUserActorLoginWrongPassword(t *testing.T) {
	system, pid, _ := spawnUserActor(t)

	askActor(t, system, pid, &RegisterUserMsg{Email: "carol@example.com", Name: "Carol", Password: "secret1"})

	result := askActor(t, system, pid, &LoginMsg{Email: "carol@example.com", Password: "wrong"})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, utils.ErrInvalidCredentials, appErr.Code)
}

func TestUserActorRegisterValidation(t *testing.T) {
	system, pid, _ := spawnUserActor(t)

	result := askActor(t, system, pid, &RegisterUserMsg{Email: "bad", Name: "Dan", Password: "secret1"})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, utils.ErrInvalidInput, appErr.Code)
}

func TestUserActorListOmitsNothingButHashStaysInternal(t *testing.T) {
	system, pid, _ := spawnUserActor(t)

	askActor(t, system, pid, &RegisterUserMsg{Email: "eve@example.com", Name: "Eve", Password: "secret1"})

	result := askActor(t, system, pid, &GetAllUsersMsg{})
	users, ok := result.([]*models.User)
	require.True(t, ok, "got %T", result)
	require.Len(t, users, 1)
	// The hash lives on the model but is tagged json:"-", so it never
	// serializes; here we only check the listing works.
	assert.Equal(t, "eve@example.com", users[0].Email)
}

func TestUserActorDelete(t *testing.T) {
	system, pid, _ := spawnUserActor(t)

	result := askActor(t, system, pid, &RegisterUserMsg{Email: "frank@example.com", Name: "Frank", Password: "secret1"})
	user := result.(*models.User)

	result = askActor(t, system, pid, &DeleteUserMsg{UserID: user.ID})
	assert.Equal(t, true, result)

	result = askActor(t, system, pid, &DeleteUserMsg{UserID: user.ID})
	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "got %T", result)
	assert.Equal(t, utils.ErrUserNotFound, appErr.Code)
}
