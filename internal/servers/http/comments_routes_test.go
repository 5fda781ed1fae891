package http

import (
	"fmt"
	"grammable/internal/models"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentsNew(t *testing.T) {
	ts := newTestServer(t)
	gram := ts.createGram(t, nil, "")
	user := ts.createUser(t)

	rec := ts.do(t, http.MethodGet, fmt.Sprintf("/grams/%d/comments/new", gram.ID), nil)
	requireRedirect(t, rec, "/users/sign_in")

	rec = ts.do(t, http.MethodGet, fmt.Sprintf("/grams/%d/comments/new", gram.ID), nil, ts.signIn(t, user))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/grams/TACOCAT/comments/new", nil, ts.signIn(t, user))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCommentsCreate(t *testing.T) {
	ts := newTestServer(t)
	gram := ts.createGram(t, nil, "")
	user := ts.createUser(t)
	path := fmt.Sprintf("/grams/%d/comments", gram.ID)

	countComments := func(t *testing.T) int64 {
		var count int64
		require.NoError(t, ts.db.Model(&models.Comment{}).Count(&count).Error)
		return count
	}

	t.Run("signed in user can comment", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, path, url.Values{"message": {"awesome gram"}}, ts.signIn(t, user))
		requireRedirect(t, rec, "/")

		var comment models.Comment
		require.NoError(t, ts.db.Order("id desc").First(&comment).Error)
		assert.Equal(t, "awesome gram", comment.Message)
		assert.Equal(t, user.ID, comment.UserID)
		assert.Equal(t, gram.ID, comment.GramID)
	})

	t.Run("anonymous is sent to sign in", func(t *testing.T) {
		before := countComments(t)
		rec := ts.do(t, http.MethodPost, path, url.Values{"message": {"awesome gram"}})
		requireRedirect(t, rec, "/users/sign_in")
		assert.Equal(t, before, countComments(t))
	})

	t.Run("missing gram", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/grams/YOLOSWAG/comments", url.Values{"message": {"awesome gram"}}, ts.signIn(t, user))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("blank message", func(t *testing.T) {
		before := countComments(t)
		rec := ts.do(t, http.MethodPost, path, url.Values{"message": {" "}}, ts.signIn(t, user))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, before, countComments(t))
	})

	t.Run("comments show up on the gram", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, fmt.Sprintf("/grams/%d", gram.ID), nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "awesome gram")
	})
}
