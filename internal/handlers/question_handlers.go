package handlers

import (
	"net/http"

	"askstack/internal/engine/actors"
	"askstack/internal/models"
)

// CreateQuestionRequest represents a request to post a new question
type CreateQuestionRequest struct {
	Title    string   `json:"title"`
	Desc     string   `json:"desc"`
	Tags     []string `json:"tags"`
	ImageURL string   `json:"imageUrl"`
}

// VoteRequest carries the direction of a vote toggle.
type VoteRequest struct {
	Direction string `json:"direction"`
}

// HandleCreateQuestion handles requests to post a new question. The owner is
// always the authenticated caller, never a body field.
func (s *Server) HandleCreateQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		identity, appErr := identityFrom(r)
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		var req CreateQuestionRequest
		if appErr := decodeBody(r, &req); appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetQuestionActor(), &actors.CreateQuestionMsg{
			Title:    req.Title,
			Desc:     req.Desc,
			Tags:     req.Tags,
			ImageURL: req.ImageURL,
			OwnerID:  identity.ID,
		})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respondData(w, http.StatusCreated, "Question posted successfully", result)
	}
}

// HandleListQuestions returns all questions, newest first.
func (s *Server) HandleListQuestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		result, appErr := s.ask(s.Engine.GetQuestionActor(), &actors.ListQuestionsMsg{})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respondData(w, http.StatusOK, "Questions fetched successfully", result)
	}
}

// HandleGetQuestion returns one question with its owner summary and answer
// records populated.
func (s *Server) HandleGetQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		questionID, appErr := pathID(r, "id")
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetQuestionActor(), &actors.GetQuestionMsg{QuestionID: questionID})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respondData(w, http.StatusOK, "Question fetched successfully", result)
	}
}

// HandleDeleteQuestion deletes a question; only its owner may do so.
func (s *Server) HandleDeleteQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		identity, appErr := identityFrom(r)
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		questionID, appErr := pathID(r, "id")
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		if _, appErr := s.ask(s.Engine.GetQuestionActor(), &actors.DeleteQuestionMsg{
			QuestionID: questionID,
			Actor:      identity,
		}); appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respond(w, http.StatusOK, "Question deleted successfully")
	}
}

// HandleVoteQuestion toggles the caller's vote on a question and returns the
// updated record.
func (s *Server) HandleVoteQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		identity, appErr := identityFrom(r)
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		questionID, appErr := pathID(r, "id")
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		var req VoteRequest
		if appErr := decodeBody(r, &req); appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetQuestionActor(), &actors.VoteQuestionMsg{
			QuestionID: questionID,
			Actor:      identity,
			Direction:  models.VoteDirection(req.Direction),
		})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respondData(w, http.StatusOK, "Vote recorded", result)
	}
}
