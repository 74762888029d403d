package actors

import (
	stdctx "context"
	"log"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"askstack/internal/authz"
	"askstack/internal/database"
	"askstack/internal/models"
	"askstack/internal/utils"
)

// bcrypt cost for password hashing
const bcryptCost = 12

// Message types for user operations
type (
	RegisterUserMsg struct {
		Email    string
		Name     string
		Password string
		Role     models.Role
	}

	LoginMsg struct {
		Email    string
		Password string
	}

	GetAllUsersMsg struct{}

	DeleteUserMsg struct {
		UserID uuid.UUID
	}
)

// UserActor owns all mutations of the users collection. Registration and
// login are serialized through it, so duplicate-email races cannot slip past
// the existence check.
type UserActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
}

func NewUserActor(store database.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &UserActor{store: store, metrics: metrics}
}

func (a *UserActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("UserActor started")
	case *RegisterUserMsg:
		a.handleRegister(context, msg)
	case *LoginMsg:
		a.handleLogin(context, msg)
	case *GetAllUsersMsg:
		a.handleGetAll(context)
	case *DeleteUserMsg:
		a.handleDelete(context, msg)
	}
}

func (a *UserActor) handleRegister(context actor.Context, msg *RegisterUserMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if err := models.ValidateRegistration(msg.Email, msg.Name, msg.Password, msg.Role); err != nil {
		context.Respond(err)
		return
	}

	email := models.NormalizeEmail(msg.Email)
	if existing, _ := a.store.GetUserByEmail(ctx, email); existing != nil {
		context.Respond(utils.NewAppError(utils.ErrUserAlreadyExists, "User already exists", nil))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(msg.Password), bcryptCost)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to hash password", err))
		return
	}

	role := msg.Role
	if role == "" {
		role = models.RoleUser
	}

	now := time.Now()
	user := &models.User{
		ID:             uuid.New(),
		Email:          email,
		Name:           msg.Name,
		HashedPassword: string(hashed),
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := a.store.SaveUser(ctx, user); err != nil {
		log.Printf("UserActor: failed to save user: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Error occurred while creating user", err))
		return
	}

	a.metrics.AddOperationLatency("register_user", time.Since(startTime))
	context.Respond(user)
}

func (a *UserActor) handleLogin(context actor.Context, msg *LoginMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	user, err := a.store.GetUserByEmail(ctx, msg.Email)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "Cant find user. Please register first", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(msg.Password)); err != nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "Password wrong", err))
		return
	}

	a.metrics.AddOperationLatency("login_user", time.Since(startTime))

	// Only id, email and role leave this actor; the hash stays behind.
	context.Respond(&authz.Identity{
		ID:    user.ID,
		Email: user.Email,
		Role:  user.Role,
	})
}

func (a *UserActor) handleGetAll(context actor.Context) {
	users, err := a.store.GetAllUsers(stdctx.Background())
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch users", err))
		return
	}
	context.Respond(users)
}

func (a *UserActor) handleDelete(context actor.Context, msg *DeleteUserMsg) {
	if err := a.store.DeleteUser(stdctx.Background(), msg.UserID); err != nil {
		context.Respond(asAppError(err, "Failed to delete user"))
		return
	}
	context.Respond(true)
}

// asAppError passes AppErrors through unchanged and wraps anything else as
// a database failure with the given message.
func asAppError(err error, message string) *utils.AppError {
	if appErr, ok := err.(*utils.AppError); ok {
		return appErr
	}
	return utils.NewAppError(utils.ErrDatabase, message, err)
}
