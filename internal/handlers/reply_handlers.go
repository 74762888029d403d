package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"askstack/internal/engine/actors"
	"askstack/internal/utils"
)

// CreateReplyRequest represents a request to reply to a comment
type CreateReplyRequest struct {
	CommentID uuid.UUID `json:"comment"`
	Body      string    `json:"reply"`
}

// HandleCreateReply handles requests to reply to a comment.
func (s *Server) HandleCreateReply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		identity, appErr := identityFrom(r)
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		var req CreateReplyRequest
		if appErr := decodeBody(r, &req); appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetCommentActor(), &actors.CreateReplyMsg{
			CommentID: req.CommentID,
			Body:      req.Body,
			OwnerID:   identity.ID,
		})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respondData(w, http.StatusCreated, "Reply posted successfully", result)
	}
}

// HandleListReplies returns replies, optionally filtered to one comment via
// the comment query parameter.
func (s *Server) HandleListReplies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		msg := &actors.ListRepliesMsg{}
		if comment := r.URL.Query().Get("comment"); comment != "" {
			commentID, err := uuid.Parse(comment)
			if err != nil {
				s.respondAppError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid comment", err))
				return
			}
			msg.CommentID = &commentID
		}

		result, appErr := s.ask(s.Engine.GetCommentActor(), msg)
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respondData(w, http.StatusOK, "Replies fetched successfully", result)
	}
}

// HandleGetReply returns a single reply by id.
func (s *Server) HandleGetReply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		replyID, appErr := pathID(r, "id")
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetCommentActor(), &actors.GetReplyMsg{ReplyID: replyID})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respondData(w, http.StatusOK, "Reply fetched successfully", result)
	}
}

// HandleDeleteReply deletes a reply; only its owner may do so. The parent
// comment's reply list is pruned as part of the same operation.
func (s *Server) HandleDeleteReply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		identity, appErr := identityFrom(r)
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		replyID, appErr := pathID(r, "id")
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		if _, appErr := s.ask(s.Engine.GetCommentActor(), &actors.DeleteReplyMsg{
			ReplyID: replyID,
			Actor:   identity,
		}); appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respond(w, http.StatusOK, "Reply deleted successfully")
	}
}
