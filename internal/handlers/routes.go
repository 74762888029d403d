package handlers

import "net/http"

// Routes builds the full route table. Mutating endpoints sit behind the JWT
// middleware; reads and the session endpoints do not.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	// User routes
	mux.HandleFunc("POST /api/users/register", s.HandleUserRegistration())
	mux.HandleFunc("POST /api/users/login", s.HandleUserLogin())
	mux.HandleFunc("GET /api/users/logout", s.HandleUserLogout())
	mux.HandleFunc("GET /api/users/get", s.HandleGetUsers())
	mux.HandleFunc("DELETE /api/users/del/{id}", s.HandleUserDelete())

	// Question routes
	mux.HandleFunc("POST /api/questions", s.Auth.RequireAuth(s.HandleCreateQuestion()))
	mux.HandleFunc("GET /api/questions", s.HandleListQuestions())
	mux.HandleFunc("GET /api/questions/{id}", s.HandleGetQuestion())
	mux.HandleFunc("DELETE /api/questions/{id}", s.Auth.RequireAuth(s.HandleDeleteQuestion()))
	mux.HandleFunc("POST /api/questions/{id}/vote", s.Auth.RequireAuth(s.HandleVoteQuestion()))

	// Answer routes
	mux.HandleFunc("POST /api/answers", s.Auth.RequireAuth(s.HandleCreateAnswer()))
	mux.HandleFunc("GET /api/answers/question/{questionId}", s.HandleListAnswersByQuestion())
	mux.HandleFunc("GET /api/answers/{id}", s.HandleGetAnswer())
	mux.HandleFunc("DELETE /api/answers/{id}", s.Auth.RequireAuth(s.HandleDeleteAnswer()))
	mux.HandleFunc("POST /api/answers/{id}/vote", s.Auth.RequireAuth(s.HandleVoteAnswer()))

	// Comment routes
	mux.HandleFunc("POST /api/comments", s.Auth.RequireAuth(s.HandleCreateComment()))
	mux.HandleFunc("GET /api/comments", s.HandleListComments())
	mux.HandleFunc("GET /api/comments/{id}", s.HandleGetComment())
	mux.HandleFunc("DELETE /api/comments/{id}", s.Auth.RequireAuth(s.HandleDeleteComment()))
	mux.HandleFunc("POST /api/comments/{id}/vote", s.Auth.RequireAuth(s.HandleVoteComment()))

	// Reply routes
	mux.HandleFunc("POST /api/replies", s.Auth.RequireAuth(s.HandleCreateReply()))
	mux.HandleFunc("GET /api/replies", s.HandleListReplies())
	mux.HandleFunc("GET /api/replies/{id}", s.HandleGetReply())
	mux.HandleFunc("DELETE /api/replies/{id}", s.Auth.RequireAuth(s.HandleDeleteReply()))

	// Health check
	mux.HandleFunc("GET /health", s.HandleHealth())

	return mux
}
