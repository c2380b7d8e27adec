package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionCookieName = "console_session"

// Session is the explicit per-request authentication state. Handlers read it
// from the request context; there is no process-wide auth singleton.
type Session struct {
	Authenticated bool
	LoginTime     time.Time
}

type sessionContextKeyType struct{}

// SessionContextKey is the context key under which the middleware stores the Session.
var SessionContextKey = sessionContextKeyType{}

// SessionFromContext returns the request's session, zero-valued when absent.
func SessionFromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(SessionContextKey).(Session); ok {
		return s
	}
	return Session{}
}

type sessionClaims struct {
	Authenticated bool `json:"authenticated"`
	jwt.RegisteredClaims
}

// SessionManager mints and verifies signed session cookies. The cookie holds
// an HS256 token; tampering or expiry simply yields an unauthenticated session.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a new authenticated session and sets it as an HTTP-only cookie.
func (m *SessionManager) Issue(w http.ResponseWriter, loginTime time.Time) error {
	claims := sessionClaims{
		Authenticated: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(loginTime),
			ExpiresAt: jwt.NewNumericDate(loginTime.Add(m.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
	})
	return nil
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Middleware parses the session cookie (when present and valid) into an
// explicit Session on the request context. It never rejects a request itself;
// that is RequireAuth's job.
func (m *SessionManager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := Session{}
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			claims := &sessionClaims{}
			token, parseErr := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return m.secret, nil
			})
			if parseErr == nil && token.Valid && claims.Authenticated {
				session.Authenticated = true
				if claims.IssuedAt != nil {
					session.LoginTime = claims.IssuedAt.Time
				}
			}
		}
		ctx := context.WithValue(r.Context(), SessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAuth rejects requests whose session is not authenticated.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !SessionFromContext(r.Context()).Authenticated {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(GenericErrorResponse{Error: "Authentication required. Please verify PIN."})
			return
		}
		next.ServeHTTP(w, r)
	})
}
