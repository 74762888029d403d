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

// Message types for question operations
type (
	CreateQuestionMsg struct {
		Title    string
		Desc     string
		Tags     []string
		ImageURL string
		OwnerID  uuid.UUID
	}

	GetQuestionMsg struct {
		QuestionID uuid.UUID
	}

	ListQuestionsMsg struct{}

	DeleteQuestionMsg struct {
		QuestionID uuid.UUID
		Actor      authz.Identity
	}

	VoteQuestionMsg struct {
		QuestionID uuid.UUID
		Actor      authz.Identity
		Direction  models.VoteDirection
	}

	GetCountsMsg struct{}
)

// QuestionActor owns all mutations of the questions collection. Votes and
// answer attachments on the same question are serialized through it, so two
// concurrent votes from distinct users both land.
type QuestionActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
}

func NewQuestionActor(store database.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &QuestionActor{store: store, metrics: metrics}
}

func (a *QuestionActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("QuestionActor started")
	case *CreateQuestionMsg:
		a.handleCreate(context, msg)
	case *GetQuestionMsg:
		a.handleGet(context, msg)
	case *ListQuestionsMsg:
		a.handleList(context)
	case *DeleteQuestionMsg:
		a.handleDelete(context, msg)
	case *VoteQuestionMsg:
		a.handleVote(context, msg)
	case *GetCountsMsg:
		count, err := a.store.CountQuestions(stdctx.Background())
		if err != nil {
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to count questions", err))
			return
		}
		context.Respond(int(count))
	}
}

func (a *QuestionActor) handleCreate(context actor.Context, msg *CreateQuestionMsg) {
	startTime := time.Now()

	now := time.Now()
	question := &models.Question{
		ID:       uuid.New(),
		Title:    msg.Title,
		Desc:     msg.Desc,
		Tags:     models.NormalizeTags(msg.Tags),
		ImageURL: msg.ImageURL,
		OwnerID:  msg.OwnerID,
		Answers:  []uuid.UUID{},
		VoteSets: models.VoteSets{
			Upvoters:   []string{},
			Downvoters: []string{},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := question.Validate(); err != nil {
		context.Respond(err)
		return
	}

	if err := a.store.SaveQuestion(stdctx.Background(), question); err != nil {
		log.Printf("QuestionActor: failed to save question: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to create question", err))
		return
	}

	a.metrics.AddOperationLatency("create_question", time.Since(startTime))
	context.Respond(question)
}

func (a *QuestionActor) handleGet(context actor.Context, msg *GetQuestionMsg) {
	ctx := stdctx.Background()

	question, err := a.store.GetQuestion(ctx, msg.QuestionID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to get question"))
		return
	}

	populated := &models.PopulatedQuestion{Question: *question}

	// Populate the owner like a populate("owner", "name email") projection.
	// A deleted owner is tolerated; the question still renders.
	if owner, err := a.store.GetUser(ctx, question.OwnerID); err == nil {
		populated.Owner = &models.OwnerSummary{
			ID:    owner.ID,
			Name:  owner.Name,
			Email: owner.Email,
		}
	}

	answers, err := a.store.GetAnswersByIDs(ctx, question.Answers)
	if err != nil {
		context.Respond(asAppError(err, "Failed to get answers"))
		return
	}
	populated.AnswerItems = answers

	context.Respond(populated)
}

func (a *QuestionActor) handleList(context actor.Context) {
	questions, err := a.store.GetRecentQuestions(stdctx.Background())
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch questions", err))
		return
	}
	context.Respond(questions)
}

func (a *QuestionActor) handleDelete(context actor.Context, msg *DeleteQuestionMsg) {
	ctx := stdctx.Background()

	question, err := a.store.GetQuestion(ctx, msg.QuestionID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to get question"))
		return
	}

	if err := authz.AuthorizeDelete(msg.Actor, question.OwnerID, "question"); err != nil {
		context.Respond(err)
		return
	}

	if err := a.store.DeleteQuestion(ctx, msg.QuestionID); err != nil {
		context.Respond(asAppError(err, "Failed to delete question"))
		return
	}
	context.Respond(true)
}

func (a *QuestionActor) handleVote(context actor.Context, msg *VoteQuestionMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if !models.ValidDirection(msg.Direction) {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Vote direction must be up or down", nil))
		return
	}

	question, err := a.store.GetQuestion(ctx, msg.QuestionID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to get question"))
		return
	}

	question.VoteSets.Toggle(msg.Actor.ID.String(), msg.Direction)
	question.Votes = question.VoteSets.Count()

	if err := a.store.UpdateQuestionVotes(ctx, question.ID, question.VoteSets); err != nil {
		context.Respond(asAppError(err, "Failed to record vote"))
		return
	}

	a.metrics.AddOperationLatency("vote_question", time.Since(startTime))
	context.Respond(question)
}
