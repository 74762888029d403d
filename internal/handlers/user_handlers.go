package handlers

import (
	"net/http"
	"time"

	"askstack/internal/authz"
	"askstack/internal/engine/actors"
	"askstack/internal/middleware"
	"askstack/internal/models"
	"askstack/internal/utils"
)

// RegisterUserRequest represents a request to register a new user
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest represents a request to log in a user
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisteredUser is the registration payload: everything except the hash.
type RegisteredUser struct {
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

// HandleUserRegistration handles requests to register a new user
func (s *Server) HandleUserRegistration() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		var req RegisterUserRequest
		if appErr := decodeBody(r, &req); appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetUserActor(), &actors.RegisterUserMsg{
			Email:    req.Email,
			Name:     req.Name,
			Password: req.Password,
			Role:     models.Role(req.Role),
		})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		user := result.(*models.User)
		respondData(w, http.StatusCreated, "User registered successfully", RegisteredUser{
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		})
	}
}

// HandleUserLogin handles requests to log in a user. On success a session
// token is returned in the payload and mirrored into an httpOnly cookie.
func (s *Server) HandleUserLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		var req LoginRequest
		if appErr := decodeBody(r, &req); appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		result, appErr := s.ask(s.Engine.GetUserActor(), &actors.LoginMsg{
			Email:    req.Email,
			Password: req.Password,
		})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		identity := result.(*authz.Identity)
		token, err := s.Auth.GenerateToken(*identity)
		if err != nil {
			s.respondAppError(w, utils.NewAppError(utils.ErrDatabase, "Failed to generate auth token", err))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.TokenCookieName,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(24 * time.Hour),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		respondData(w, http.StatusCreated, "Login successful", token)
	}
}

// HandleUserLogout clears the session cookie.
func (s *Server) HandleUserLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.TokenCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		respond(w, http.StatusAccepted, "Logged out successfully")
	}
}

// HandleGetUsers lists all users. Password hashes never serialize.
func (s *Server) HandleGetUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		result, appErr := s.ask(s.Engine.GetUserActor(), &actors.GetAllUsersMsg{})
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respondData(w, http.StatusOK, "Users fetched successfully", result)
	}
}

// HandleUserDelete deletes a user by id.
func (s *Server) HandleUserDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()

		userID, appErr := pathID(r, "id")
		if appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		if _, appErr := s.ask(s.Engine.GetUserActor(), &actors.DeleteUserMsg{UserID: userID}); appErr != nil {
			s.respondAppError(w, appErr)
			return
		}

		respond(w, http.StatusOK, "User deleted successfully")
	}
}
