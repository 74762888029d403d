package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"

	"askstack/internal/authz"
	"askstack/internal/database"
	"askstack/internal/engine"
	"askstack/internal/middleware"
	"askstack/internal/utils"
)

// Server holds all server dependencies, including the actor system and engine
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	Metrics        *utils.MetricsCollector
	Store          database.Store
	Auth           *middleware.Auth
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	eng *engine.Engine,
	metrics *utils.MetricsCollector,
	store database.Store,
	auth *middleware.Auth,
) *Server {
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         eng,
		Metrics:        metrics,
		Store:          store,
		Auth:           auth,
		RequestTimeout: 5 * time.Second, // Default timeout for actor requests
	}
}

// Payload is the structured message body used when a response carries data
// alongside a human-readable note.
type Payload struct {
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// envelope is the wire shape of every response: status reports whether the
// request succeeded, message is either a string or a Payload.
type envelope struct {
	Status  bool        `json:"status"`
	Message interface{} `json:"message"`
}

// respond writes the envelope with the given HTTP status. Status < 400 maps
// to status: true.
func respond(w http.ResponseWriter, statusCode int, message interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(envelope{
		Status:  statusCode < 400,
		Message: message,
	}); err != nil {
		log.Printf("HTTP Handler: failed to encode response: %v", err)
	}
}

// respondData writes a success envelope whose message carries both a note and
// a data payload.
func respondData(w http.ResponseWriter, statusCode int, msg string, data interface{}) {
	respond(w, statusCode, Payload{Msg: msg, Data: data})
}

// respondAppError maps an AppError to its HTTP status and writes the failure
// envelope.
func (s *Server) respondAppError(w http.ResponseWriter, appErr *utils.AppError) {
	s.Metrics.IncrementErrors()
	respond(w, utils.AppErrorToHTTPStatus(appErr.Code), appErr.Message)
}

// ask sends msg to the given actor and waits for the reply. A timeout or a
// dead actor surfaces as ACTOR_TIMEOUT; an AppError reply is returned as the
// error so handlers deal with exactly one failure path.
func (s *Server) ask(pid *actor.PID, msg interface{}) (interface{}, *utils.AppError) {
	future := s.Context.RequestFuture(pid, msg, s.RequestTimeout)
	result, err := future.Result()
	if err != nil {
		log.Printf("HTTP Handler: actor request failed: %v", err)
		return nil, utils.NewActorTimeoutError(pid.String())
	}
	if appErr, ok := result.(*utils.AppError); ok {
		return nil, appErr
	}
	return result, nil
}

// pathID parses the {id} path value as a UUID.
func pathID(r *http.Request, name string) (uuid.UUID, *utils.AppError) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, utils.NewAppError(utils.ErrInvalidInput, "Invalid "+name, err)
	}
	return id, nil
}

// decodeBody decodes the JSON request body into dst.
func decodeBody(r *http.Request, dst interface{}) *utils.AppError {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return utils.NewAppError(utils.ErrInvalidInput, "Invalid request body", err)
	}
	return nil
}

// identityFrom pulls the authenticated identity the JWT middleware stored in
// the request context.
func identityFrom(r *http.Request) (authz.Identity, *utils.AppError) {
	identity, ok := middleware.GetIdentityFromContext(r.Context())
	if !ok {
		return authz.Identity{}, utils.NewUnauthorizedError("Authentication required")
	}
	return identity, nil
}
