// Package spectate implements an optional WebSocket relay that
// re-broadcasts a match's ledger entries to connected spectators as
// they are appended, plus a minimal bearer-token auth guard in front
// of the stream endpoint. Grounded on the teacher's internal/auth and
// internal/handler packages (its JWT manager, WebSocket hub, and
// connection lifecycle), adapted from per-game Diplomacy events to
// per-match ledger entries.
package spectate

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

// Claims is the JWT payload issued to a spectator.
type Claims struct {
	Subject string `json:"sub"`
	jwt.RegisteredClaims
}

// JWTManager issues and validates spectator bearer tokens. There is no
// user database behind it: spec.md's scope never includes an identity
// system, so every subject is accepted at issuance time and the token
// only proves "this client was handed a token by this server", which
// is enough to gate an optional spectating feature.
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

// NewJWTManager creates a JWTManager with the given secret.
func NewJWTManager(secret string) *JWTManager {
	return &JWTManager{secret: []byte(secret), expiry: time.Hour}
}

// IssueToken creates a bearer token for the given subject (typically a
// spectator-chosen display name; it is never authenticated against
// anything).
func (m *JWTManager) IssueToken(subject string) (string, error) {
	claims := &Claims{
		Subject: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   subject,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses and validates a JWT string.
func (m *JWTManager) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

type contextKey string

const subjectKey contextKey = "spectate_subject"

// Middleware validates a bearer token from the Authorization header
// and stores the subject in the request context.
func Middleware(jwtMgr *JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				http.Error(w, `{"error":"invalid authorization format"}`, http.StatusUnauthorized)
				return
			}

			claims, err := jwtMgr.ValidateToken(parts[1])
			if err != nil {
				http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), subjectKey, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SubjectFromContext extracts the authenticated subject from the request context.
func SubjectFromContext(ctx context.Context) string {
	id, _ := ctx.Value(subjectKey).(string)
	return id
}
