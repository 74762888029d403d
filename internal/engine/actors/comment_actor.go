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

// Message types for comment and reply operations
type (
	CreateCommentMsg struct {
		QuestionID uuid.UUID
		Body       string
		OwnerID    uuid.UUID
	}

	GetCommentMsg struct {
		CommentID uuid.UUID
	}

	ListCommentsMsg struct {
		QuestionID *uuid.UUID
	}

	DeleteCommentMsg struct {
		CommentID uuid.UUID
		Actor     authz.Identity
	}

	VoteCommentMsg struct {
		CommentID uuid.UUID
		Actor     authz.Identity
		Direction models.VoteDirection
	}

	CreateReplyMsg struct {
		CommentID uuid.UUID
		Body      string
		OwnerID   uuid.UUID
	}

	GetReplyMsg struct {
		ReplyID uuid.UUID
	}

	ListRepliesMsg struct {
		CommentID *uuid.UUID
	}

	DeleteReplyMsg struct {
		ReplyID uuid.UUID
		Actor   authz.Identity
	}
)

// CommentActor owns comments and their replies. Replies mutate the comment's
// back-reference list, so both record kinds are serialized through the one
// actor.
type CommentActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
}

func NewCommentActor(store database.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &CommentActor{store: store, metrics: metrics}
}

func (a *CommentActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *actor.Started:
		log.Printf("CommentActor started")
	case *CreateCommentMsg:
		a.handleCreateComment(context, msg)
	case *GetCommentMsg:
		a.handleGetComment(context, msg)
	case *ListCommentsMsg:
		a.handleListComments(context, msg)
	case *DeleteCommentMsg:
		a.handleDeleteComment(context, msg)
	case *VoteCommentMsg:
		a.handleVoteComment(context, msg)
	case *CreateReplyMsg:
		a.handleCreateReply(context, msg)
	case *GetReplyMsg:
		a.handleGetReply(context, msg)
	case *ListRepliesMsg:
		a.handleListReplies(context, msg)
	case *DeleteReplyMsg:
		a.handleDeleteReply(context, msg)
	}
}

func (a *CommentActor) handleCreateComment(context actor.Context, msg *CreateCommentMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	comment := &models.Comment{
		ID:         uuid.New(),
		QuestionID: msg.QuestionID,
		Body:       msg.Body,
		OwnerID:    msg.OwnerID,
		Replies:    []uuid.UUID{},
		VoteSets: models.VoteSets{
			Upvoters:   []string{},
			Downvoters: []string{},
		},
		CreatedAt: time.Now(),
	}

	if err := comment.Validate(); err != nil {
		context.Respond(err)
		return
	}

	if _, err := a.store.GetQuestion(ctx, msg.QuestionID); err != nil {
		context.Respond(asAppError(err, "Failed to get question"))
		return
	}

	if err := a.store.SaveComment(ctx, comment); err != nil {
		log.Printf("CommentActor: failed to save comment: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to create comment", err))
		return
	}

	a.metrics.AddOperationLatency("create_comment", time.Since(startTime))
	context.Respond(comment)
}

func (a *CommentActor) handleGetComment(context actor.Context, msg *GetCommentMsg) {
	ctx := stdctx.Background()

	comment, err := a.store.GetComment(ctx, msg.CommentID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to get comment"))
		return
	}

	context.Respond(a.populateComment(ctx, comment))
}

func (a *CommentActor) handleListComments(context actor.Context, msg *ListCommentsMsg) {
	ctx := stdctx.Background()

	comments, err := a.store.GetComments(ctx, msg.QuestionID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch comments", err))
		return
	}

	populated := make([]*models.PopulatedComment, 0, len(comments))
	for _, comment := range comments {
		populated = append(populated, a.populateComment(ctx, comment))
	}
	context.Respond(populated)
}

// populateComment expands a comment's reply-id list into reply records.
func (a *CommentActor) populateComment(ctx stdctx.Context, comment *models.Comment) *models.PopulatedComment {
	populated := &models.PopulatedComment{
		Comment:    *comment,
		ReplyItems: []*models.Reply{},
	}
	for _, replyID := range comment.Replies {
		reply, err := a.store.GetReply(ctx, replyID)
		if err != nil {
			continue
		}
		populated.ReplyItems = append(populated.ReplyItems, reply)
	}
	return populated
}

func (a *CommentActor) handleDeleteComment(context actor.Context, msg *DeleteCommentMsg) {
	ctx := stdctx.Background()

	comment, err := a.store.GetComment(ctx, msg.CommentID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to get comment"))
		return
	}

	if err := authz.AuthorizeDelete(msg.Actor, comment.OwnerID, "comment"); err != nil {
		context.Respond(err)
		return
	}

	if err := a.store.DeleteComment(ctx, msg.CommentID); err != nil {
		context.Respond(asAppError(err, "Failed to delete comment"))
		return
	}
	context.Respond(true)
}

func (a *CommentActor) handleVoteComment(context actor.Context, msg *VoteCommentMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	if !models.ValidDirection(msg.Direction) {
		context.Respond(utils.NewAppError(utils.ErrInvalidInput, "Vote direction must be up or down", nil))
		return
	}

	comment, err := a.store.GetComment(ctx, msg.CommentID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to get comment"))
		return
	}

	comment.VoteSets.Toggle(msg.Actor.ID.String(), msg.Direction)
	comment.Votes = comment.VoteSets.Count()

	if err := a.store.UpdateCommentVotes(ctx, comment.ID, comment.VoteSets); err != nil {
		context.Respond(asAppError(err, "Failed to record vote"))
		return
	}

	a.metrics.AddOperationLatency("vote_comment", time.Since(startTime))
	context.Respond(comment)
}

func (a *CommentActor) handleCreateReply(context actor.Context, msg *CreateReplyMsg) {
	startTime := time.Now()
	ctx := stdctx.Background()

	reply := &models.Reply{
		ID:        uuid.New(),
		CommentID: msg.CommentID,
		Body:      msg.Body,
		OwnerID:   msg.OwnerID,
		CreatedAt: time.Now(),
	}

	if err := reply.Validate(); err != nil {
		context.Respond(err)
		return
	}

	if _, err := a.store.GetComment(ctx, msg.CommentID); err != nil {
		context.Respond(asAppError(err, "Failed to get comment"))
		return
	}

	if err := a.store.SaveReply(ctx, reply); err != nil {
		log.Printf("CommentActor: failed to save reply: %v", err)
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to create reply", err))
		return
	}

	// Same compensation as answers: never leave an orphaned reply behind.
	if err := a.store.AttachReply(ctx, msg.CommentID, reply.ID); err != nil {
		if delErr := a.store.DeleteReply(ctx, reply.ID); delErr != nil {
			log.Printf("CommentActor: failed to clean up orphaned reply %s: %v", reply.ID, delErr)
		}
		context.Respond(asAppError(err, "Failed to attach reply"))
		return
	}

	a.metrics.AddOperationLatency("create_reply", time.Since(startTime))
	context.Respond(reply)
}

func (a *CommentActor) handleGetReply(context actor.Context, msg *GetReplyMsg) {
	reply, err := a.store.GetReply(stdctx.Background(), msg.ReplyID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to get reply"))
		return
	}
	context.Respond(reply)
}

func (a *CommentActor) handleListReplies(context actor.Context, msg *ListRepliesMsg) {
	replies, err := a.store.GetReplies(stdctx.Background(), msg.CommentID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to fetch replies", err))
		return
	}
	context.Respond(replies)
}

func (a *CommentActor) handleDeleteReply(context actor.Context, msg *DeleteReplyMsg) {
	ctx := stdctx.Background()

	reply, err := a.store.GetReply(ctx, msg.ReplyID)
	if err != nil {
		context.Respond(asAppError(err, "Failed to get reply"))
		return
	}

	if err := authz.AuthorizeDelete(msg.Actor, reply.OwnerID, "reply"); err != nil {
		context.Respond(err)
		return
	}

	if err := a.store.DeleteReply(ctx, msg.ReplyID); err != nil {
		context.Respond(asAppError(err, "Failed to delete reply"))
		return
	}

	if err := a.store.DetachReply(ctx, reply.CommentID, reply.ID); err != nil {
		log.Printf("CommentActor: failed to detach reply %s from comment %s: %v", reply.ID, reply.CommentID, err)
	}

	context.Respond(true)
}
