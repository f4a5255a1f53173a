package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kirankamble1523/Task-Manager-App/internal/web"
	"github.com/kirankamble1523/Task-Manager-App/types"
)

const (
	sessionCookieName = "session"
	defaultSessionTTL = 24 * time.Hour
)

// SessionManager issues and verifies the session cookie. The cookie
// carries a signed token whose subject is the user id; no session state
// is kept server-side.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

func NewSessionManager(secret string) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    defaultSessionTTL,
	}
}

// SignIn binds the response to the given user by setting the session cookie.
func (m *SessionManager) SignIn(w http.ResponseWriter, user types.User) error {
	token, err := m.issueToken(user.ID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// SignOut expires the session cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserID extracts the authenticated user id from the request's session
// cookie. A missing, expired, or tampered cookie is an error.
func (m *SessionManager) UserID(r *http.Request) (int, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return 0, err
	}
	return m.parseToken(cookie.Value)
}

// RequireAuth gates protected pages. Anonymous requests are redirected
// to the login page with a notice instead of executing the handler.
func (m *SessionManager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := m.UserID(r)
		if err != nil {
			web.SetFlash(w, "info", "Please log in to access this page.")
			redirect(w, r, "/login")
			return
		}

		ctx := context.WithValue(r.Context(), contextUserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RedirectIfAuthenticated short-circuits the login and register pages
// for users who already hold a valid session.
func (m *SessionManager) RedirectIfAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := m.UserID(r); err == nil {
			redirect(w, r, "/")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *SessionManager) issueToken(userID int) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.Itoa(userID),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *SessionManager) parseToken(tokenString string) (int, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return 0, err
	}
	if !token.Valid {
		return 0, errors.New("invalid token")
	}

	userID, err := strconv.Atoi(strings.TrimSpace(claims.Subject))
	if err != nil || userID < 1 {
		return 0, errors.New("invalid subject")
	}
	return userID, nil
}
