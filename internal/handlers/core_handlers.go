package handlers

import (
	"net/http"

	"askstack/internal/engine/actors"
	"askstack/internal/utils"
)

// HealthStatus reports liveness plus a few cheap counters.
type HealthStatus struct {
	Status        string `json:"status"`
	UptimeSeconds int64  `json:"uptimeSeconds"`
	RequestCount  uint64 `json:"requestCount"`
	ErrorCount    uint64 `json:"errorCount"`
	UserCount     int64  `json:"userCount"`
	QuestionCount int    `json:"questionCount"`
}

// HandleHealth reports server health and basic entity counts. The question
// count goes through the question actor so the health probe also verifies
// that the engine answers.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		userCount, err := s.Store.CountUsers(r.Context())
		if err != nil {
			s.respondAppError(w, utils.NewAppError(utils.ErrDatabase, "Failed to count users", err))
			return
		}

		result, appErr := s.ask(s.Engine.GetQuestionActor(), &actors.GetCountsMsg{})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}
		questionCount := result.(int)

		requests, errors := s.Metrics.Counts()
		respondData(w, http.StatusOK, "Server is healthy", HealthStatus{
			Status:        "up",
			UptimeSeconds: int64(s.Metrics.Uptime().Seconds()),
			RequestCount:  requests,
			ErrorCount:    errors,
			UserCount:     userCount,
			QuestionCount: questionCount,
		})
	}
}
