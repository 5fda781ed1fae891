package http

import (
	"grammable/internal/testutil"
	"grammable/internal/utils"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == utils.JwtCookieName {
			return cookie
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/users/sign_up", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	form := url.Values{
		"email":                 {"New.User@Example.com"},
		"password":              {"secret123"},
		"password_confirmation": {"secret123"},
	}
	rec = ts.do(t, http.MethodPost, "/users", form)
	requireRedirect(t, rec, "/")

	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	// the new session can reach protected pages
	rec = ts.do(t, http.MethodGet, "/grams/new", nil, withToken(cookie.Value))
	assert.Equal(t, http.StatusOK, rec.Code)

	t.Run("duplicate email", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/users", form)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "email has already been taken")
	})

	t.Run("password confirmation mismatch", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/users", url.Values{
			"email":                 {"other@example.com"},
			"password":              {"secret123"},
			"password_confirmation": {"secret124"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Nil(t, sessionCookie(rec))
	})
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t)

	t.Run("wrong password", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/users/sign_in", url.Values{"email": {user.Email}, "password": {"nope"}})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid email or password")
		assert.Nil(t, sessionCookie(rec))
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/users/sign_in", url.Values{"email": {"ghost@example.com"}, "password": {"secret123"}})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid credentials", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/users/sign_in", url.Values{"email": {user.Email}, "password": {testutil.DefaultPassword}})
		requireRedirect(t, rec, "/")
		require.NotNil(t, sessionCookie(rec))
	})

	t.Run("bearer token", func(t *testing.T) {
		session, errors := ts.authService.IssueToken(user)
		require.Empty(t, errors)

		rec := ts.do(t, http.MethodGet, "/grams/new", nil, func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+session.Token)
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestLogoutRevokesSession(t *testing.T) {
	ts := newTestServer(t)
	signedIn := ts.signIn(t, ts.createUser(t))

	rec := ts.do(t, http.MethodGet, "/grams/new", nil, signedIn)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/users/sign_out", url.Values{"_method": {"delete"}}, signedIn)
	requireRedirect(t, rec, "/")
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)

	rec = ts.do(t, http.MethodGet, "/grams/new", nil, signedIn)
	requireRedirect(t, rec, "/users/sign_in")
}

func TestTamperedTokenIsAnonymous(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/grams/new", nil, withToken("not-a-jwt"))
	requireRedirect(t, rec, "/users/sign_in")
}

func TestDeletedUserTokenIsAnonymous(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t)
	signedIn := ts.signIn(t, user)
	require.NoError(t, ts.db.Delete(user).Error)

	rec := ts.do(t, http.MethodPost, "/grams", url.Values{"message": {"ghost gram"}}, signedIn)
	requireRedirect(t, rec, "/users/sign_in")
	assert.Zero(t, ts.countGrams(t))
}
