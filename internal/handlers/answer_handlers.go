package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"askstack/internal/engine/actors"
	"askstack/internal/models"
)

// CreateAnswerRequest represents a request to answer a question
type CreateAnswerRequest struct {
	QuestionID uuid.UUID `json:"que"`
	Body       string    `json:"answerData"`
}

// HandleCreateAnswer handles requests to answer a question. The parent
// question must exist; otherwise no answer is written.
func (s *Server) HandleCreateAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		identity, appErr := identityFrom(r)
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		var req CreateAnswerRequest
		if appErr := decodeBody(r, &req); appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetAnswerActor(), &actors.CreateAnswerMsg{
			QuestionID: req.QuestionID,
			Body:       req.Body,
			OwnerID:    identity.ID,
		})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respondData(w, http.StatusCreated, "Answer posted successfully", result)
	}
}

// HandleListAnswersByQuestion returns all answers of one question, newest
// first.
func (s *Server) HandleListAnswersByQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		questionID, appErr := pathID(r, "questionId")
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetAnswerActor(), &actors.ListAnswersByQuestionMsg{QuestionID: questionID})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respondData(w, http.StatusOK, "Answers fetched successfully", result)
	}
}

// HandleGetAnswer returns a single answer by id.
func (s *Server) HandleGetAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		answerID, appErr := pathID(r, "id")
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetAnswerActor(), &actors.GetAnswerMsg{AnswerID: answerID})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respondData(w, http.StatusOK, "Answer fetched successfully", result)
	}
}

// HandleDeleteAnswer deletes an answer; only its owner may do so. The parent
// question's answer list is pruned as part of the same operation.
func (s *Server) HandleDeleteAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		identity, appErr := identityFrom(r)
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		answerID, appErr := pathID(r, "id")
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		if _, appErr := s.ask(s.Engine.GetAnswerActor(), &actors.DeleteAnswerMsg{
			AnswerID: answerID,
			Actor:    identity,
		}); appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respond(w, http.StatusOK, "Answer deleted successfully")
	}
}

// HandleVoteAnswer toggles the caller's vote on an answer.
func (s *Server) HandleVoteAnswer() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		identity, appErr := identityFrom(r)
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		answerID, appErr := pathID(r, "id")
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		var req VoteRequest
		if appErr := decodeBody(r, &req); appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetAnswerActor(), &actors.VoteAnswerMsg{
			AnswerID:  answerID,
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
