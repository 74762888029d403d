// internal/middleware/jwt.go
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"askstack/internal/authz"
	"askstack/internal/models"
	"askstack/internal/utils"
)

// Token expiration time - 24 hours
const tokenExpiration = 24 * time.Hour

// TokenCookieName is the cookie the login handler sets and the middleware
// falls back to when no Authorization header is present.
const TokenCookieName = "token"

// Claims represents the JWT claims for our application. Only id, email and
// role are carried; password material never enters a token.
type Claims struct {
	UserID uuid.UUID   `json:"id"`
	Email  string      `json:"email"`
	Role   models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Auth issues and validates session tokens. The signing secret is injected
// from configuration at startup; there is no default.
type Auth struct {
	secret []byte
}

func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

// GenerateToken creates a new JWT token for the given identity
func (a *Auth) GenerateToken(identity authz.Identity) (string, error) {
	expirationTime := time.Now().Add(tokenExpiration)

	claims := &Claims{
		UserID: identity.ID,
		Email:  identity.Email,
		Role:   identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "askstack-api",
			Subject:   identity.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken validates the provided JWT token
func (a *Auth) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return a.secret, nil
		},
	)
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// extractToken pulls the session token from the Authorization header, or
// from the token cookie when the header is absent.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if cookie, err := r.Cookie(TokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// RequireAuth wraps a handler function with JWT authentication. On success
// the decoded identity is placed in the request context.
func (a *Auth) RequireAuth(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractToken(r)
		if tokenString == "" {
			respondAuthError(w, "Authentication token missing")
			return
		}

		claims, err := a.ValidateToken(tokenString)
		if err != nil {
			respondAuthError(w, "Invalid or expired token")
			return
		}

		identity := authz.Identity{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		}

		handler(w, r.WithContext(SetIdentityInContext(r.Context(), identity)))
	}
}

func respondAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(utils.AppErrorToHTTPStatus(utils.ErrUnauthorized))
	fmt.Fprintf(w, `{"status":false,"message":%q}`, message)
}

// Define a custom context key type to avoid collisions
type contextKey string

// IdentityKey is the key used to store the identity in the context
const IdentityKey contextKey = "identity"

// SetIdentityInContext saves the identity in the request context
func SetIdentityInContext(ctx context.Context, identity authz.Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, identity)
}

// GetIdentityFromContext retrieves the identity from the context
func GetIdentityFromContext(ctx context.Context) (authz.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(authz.Identity)
	return identity, ok
}
