package actors

import (
	stdctx "context"
	"log"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"

	"askstack/internal/authz"
	"askstack/internal/database"
	"askstack/internal/models"
	"askstack/internal/utils"
)

// Message types for answer operations
type (
	CreateAnswerMsg struct {
		QuestionID uuid.UUID
		Body       string
		OwnerID    uuid.UUID
	}

	GetAnswerMsg struct {
		AnswerID uuid.UUID
	}

	ListAnswersByQuestionMsg struct {
		QuestionID uuid.UUID
	}

	DeleteAnswerMsg struct {
		AnswerID uuid.UUID
		Actor    authz.Identity
	}

	VoteAnswerMsg struct {
		AnswerID  uuid.UUID
		Actor     authz.Identity
		Direction models.VoteDirection
	}
)

// AnswerActor owns all mutations of the answers collection and keeps the
// question's answer-id back-reference list consistent with it.
type AnswerActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
}

func NewAnswerActor(store database.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &AnswerActor{store: store, metrics: metrics}
}

func (a *AnswerActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("AnswerActor started")
	case *CreateAnswerMsg:
		a.handleCreate(context, msg)
	case *GetAnswerMsg:
		a.handleGet(context, msg)
	case *ListAnswersByQuestionMsg:
		a.handleListByQuestion(context, msg)
	case *DeleteAnswerMsg:
		a.handleDelete(context, msg)
	case *VoteAnswerMsg:
		a.handleVote(context, msg)
	}
}

func (a *AnswerActor) handleCreate(context actor.Context, msg *CreateAnswerMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	now := time.Now()
	answer := &models.Answer{
		ID:         uuid.New(),
		QuestionID: msg.QuestionID,
		Body:       msg.Body,
		OwnerID:    msg.OwnerID,
		VoteSets: models.VoteSets{
			Upvoters:   []string{},
			Downvoters: []string{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := answer.Validate(); err != nil {
		context.Respond(err)
		return
	}

	// The parent must exist before the child is written.
	if _, err := a.store.GetQuestion(ctx, msg.QuestionID); err != nil {
		context.Respond(asAppError(err, "Failed to get question"))
		return
	}

	if err := a.store.SaveAnswer(ctx, answer); err != nil {
		log.Printf("AnswerActor: failed to save answer: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to create answer", err))
		return
	}

	// Attach the back-reference. If the question vanished between the check
	// and the attach, compensate by removing the freshly written answer so
	// no orphan is left behind.
	if err := a.store.AttachAnswer(ctx, msg.QuestionID, answer.ID); err != nil {
		if delErr := a.store.DeleteAnswer(ctx, answer.ID); delErr != nil {
			log.Printf("AnswerActor: failed to clean up orphaned answer %s: %v", answer.ID, delErr)
		}
		context.Respond(asAppError(err, "Failed to attach answer"))
		return
	}

	a.metrics.AddOperationLatency("create_answer", time.Since(startTime))
	context.Respond(answer)
}

func (a *AnswerActor) handleGet(context actor.Context, msg *GetAnswerMsg) {
	answer, err := a.store.GetAnswer(stdctx.Background(), msg.AnswerID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to get answer"))
		return
	}
	context.Respond(answer)
}

func (a *AnswerActor) handleListByQuestion(context actor.Context, msg *ListAnswersByQuestionMsg) {
	answers, err := a.store.GetAnswersByQuestion(stdctx.Background(), msg.QuestionID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch answers", err))
		return
	}
	context.Respond(answers)
}

func (a *AnswerActor) handleDelete(context actor.Context, msg *DeleteAnswerMsg) {
	ctx := stdctx.Background()

	answer, err := a.store.GetAnswer(ctx, msg.AnswerID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to get answer"))
		return
	}

	if err := authz.AuthorizeDelete(msg.Actor, answer.OwnerID, "answer"); err != nil {
		context.Respond(err)
		return
	}

	if err := a.store.DeleteAnswer(ctx, msg.AnswerID); err != nil {
		context.Respond(asAppError(err, "Failed to delete answer"))
		return
	}

	// Prune the question's back-reference list. The question may already be
	// gone, which is fine.
	if err := a.store.DetachAnswer(ctx, answer.QuestionID, answer.ID); err != nil {
		log.Printf("AnswerActor: failed to detach answer %s from question %s: %v", answer.ID, answer.QuestionID, err)
	}

	context.Respond(true)
}

func (a *AnswerActor) handleVote(context actor.Context, msg *VoteAnswerMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if !models.ValidDirection(msg.Direction) {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Vote direction must be up or down", nil))
		return
	}

	answer, err := a.store.GetAnswer(ctx, msg.AnswerID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to get answer"))
		return
	}

	answer.VoteSets.Toggle(msg.Actor.ID.String(), msg.Direction)
	answer.Votes = answer.VoteSets.Count()

	if err := a.store.UpdateAnswerVotes(ctx, answer.ID, answer.VoteSets); err != nil {
		context.Respond(asAppError(err, "Failed to record vote"))
		return
	}

	a.metrics.AddOperationLatency("vote_answer", time.Since(startTime))
	context.Respond(answer)
}
