package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kirankamble1523/Task-Manager-App/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	sessions := NewSessionManager("test-secret")

	rec := httptest.NewRecorder()
	require.NoError(t, sessions.SignIn(rec, types.User{ID: 7, Username: "alice"}))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "session", cookie.Name)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)

	userID, err := sessions.UserID(req)
	require.NoError(t, err)
	assert.Equal(t, 7, userID)
}

func TestSessionRejectsWrongSecret(t *testing.T) {
	issuer := NewSessionManager("secret-one")
	verifier := NewSessionManager("secret-two")

	rec := httptest.NewRecorder()
	require.NoError(t, issuer.SignIn(rec, types.User{ID: 7}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(rec.Result().Cookies()[0])

	_, err := verifier.UserID(req)
	assert.Error(t, err)
}

func TestSessionMissingCookie(t *testing.T) {
	sessions := NewSessionManager("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := sessions.UserID(req)
	assert.Error(t, err)
}
