package engine

import (
	"github.com/asynkron/protoactor-go/actor"

	"askstack/internal/database"
	"askstack/internal/engine/actors"
	"askstack/internal/utils"
)

// Engine spawns and holds the long-lived actors. Each collection has exactly
// one actor, so all mutations of that collection are serialized through one
// mailbox.
type Engine struct {
	userActor     *actor.PID
	questionActor *actor.PID
	answerActor   *actor.PID
	commentActor  *actor.PID
}

func NewEngine(system *actor.ActorSystem, store database.Store, metrics *utils.MetricsCollector) *Engine {
	context := system.Root

	userProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewUserActor(store, metrics)
	})
	userPID := context.Spawn(userProps)

	questionProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewQuestionActor(store, metrics)
	})
	questionPID := context.Spawn(questionProps)

	answerProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewAnswerActor(store, metrics)
	})
	answerPID := context.Spawn(answerProps)

	commentProps := actor.PropsFromProducer(func() actor.Actor {
		return actors.NewCommentActor(store, metrics)
	})
	commentPID := context.Spawn(commentProps)

	return &Engine{
		userActor:     userPID,
		questionActor: questionPID,
		answerActor:   answerPID,
		commentActor:  commentPID,
	}
}

// GetUserActor returns the PID of the user actor
func (e *Engine) GetUserActor() *actor.PID {
	return e.userActor
}

// GetQuestionActor returns the PID of the question actor
func (e *Engine) GetQuestionActor() *actor.PID {
	return e.questionActor
}

// GetAnswerActor returns the PID of the answer actor
func (e *Engine) GetAnswerActor() *actor.PID {
	return e.answerActor
}

// GetCommentActor returns the PID of the comment actor. Replies route through
// it as well.
func (e *Engine) GetCommentActor() *actor.PID {
	return e.commentActor
}
