package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"askstack/internal/engine/actors"
	"askstack/internal/models"
	"askstack/internal/utils"
)

// CreateCommentRequest represents a request to comment on a question
type CreateCommentRequest struct {
	QuestionID uuid.UUID `json:"que"`
	Body       string    `json:"comment"`
}

// HandleCreateComment handles requests to comment on a question.
func (s *Server) HandleCreateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		identity, appErr := identityFrom(r)
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		var req CreateCommentRequest
		if appErr := decodeBody(r, &req); appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetCommentActor(), &actors.CreateCommentMsg{
			QuestionID: req.QuestionID,
			Body:       req.Body,
			OwnerID:    identity.ID,
		})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respondData(w, http.StatusCreated, "Comment posted successfully", result)
	}
}

// HandleListComments returns comments, optionally filtered to one question
// via the que query parameter. Reply records come populated.
func (s *Server) HandleListComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		msg := &actors.ListCommentsMsg{}
		if que := r.URL.Query().Get("que"); que != "" {
			questionID, err := uuid.Parse(que)
			if err != nil {
				s.respondAppError(w, utils.NewAppError(utils.ErrInvalidInput, "Invalid que", err))
				return
			}
			msg.QuestionID = &questionID
		}

		result, appErr := s.ask(s.Engine.GetCommentActor(), msg)
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respondData(w, http.StatusOK, "Comments fetched successfully", result)
	}
}

// HandleGetComment returns a single comment with its replies populated.
func (s *Server) HandleGetComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		commentID, appErr := pathID(r, "id")
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetCommentActor(), &actors.GetCommentMsg{CommentID: commentID})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respondData(w, http.StatusOK, "Comment fetched successfully", result)
	}
}

// HandleDeleteComment deletes a comment; only its owner may do so.
func (s *Server) HandleDeleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		identity, appErr := identityFrom(r)
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		commentID, appErr := pathID(r, "id")
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		if _, appErr := s.ask(s.Engine.GetCommentActor(), &actors.DeleteCommentMsg{
			CommentID: commentID,
			Actor:     identity,
		}); appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respond(w, http.StatusOK, "Comment deleted successfully")
	}
}

// HandleVoteComment toggles the caller's vote on a comment.
func (s *Server) HandleVoteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		identity, appErr := identityFrom(r)
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		commentID, appErr := pathID(r, "id")
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		var req VoteRequest
		if appErr := decodeBody(r, &req); appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetCommentActor(), &actors.VoteCommentMsg{
			CommentID: commentID,
			Actor:     identity,
			Direction: models.VoteDirection(req.Direction),
		})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respondData(w, http.StatusOK, "Vote recorded", result)
	}
}
