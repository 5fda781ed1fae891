package http

import (
	"context"
	"grammable/configs"
	"grammable/internal/handlers"
	"grammable/internal/models"
	"grammable/internal/repositories"
	"grammable/internal/services"
	"grammable/internal/testutil"
	"grammable/internal/utils"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testServer struct {
	db                *gorm.DB
	config            *configs.Config
	files             *testutil.MockFileManager
	authService       *services.AuthenticationService
	gramService       *services.GramService
	socketFeedHandler *handlers.SocketFeedHandler
	server            *HttpServer
	handler           http.Handler
}

func newTestServer(t *testing.T, overrides ...func(*configs.Config)) *testServer {
	t.Helper()
	config := testutil.NewTestConfig(t)
	for _, override := range overrides {
		override(config)
	}
	db := testutil.NewTestDB(t, config)
	files := testutil.NewMockFileManager()

	authService := services.NewAuthenticationService(
		repositories.NewAuthenticationRepository(db),
		repositories.NewMemoryTokenRepository(),
		config,
	)
	feedService := services.NewFeedService(nil)
	gramService := services.NewGramService(
		repositories.NewGramRepository(db),
		services.NewFileManagerService(files, ""),
		feedService,
	)
	commentService := services.NewCommentService(repositories.NewCommentRepository(db), gramService, feedService)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	socketFeedHandler := handlers.NewSocketFeedHandler(ctx, feedService)
	require.NoError(t, socketFeedHandler.StartSocket())

	server := NewHttpServer(
		ctx,
		config,
		handlers.NewAuthHandler(authService, false),
		handlers.NewGramHandler(gramService),
		handlers.NewCommentHandler(gramService, commentService),
		handlers.NewHtmlHandler(),
		socketFeedHandler,
	)

	return &testServer{
		db:                db,
		config:            config,
		files:             files,
		authService:       authService,
		gramService:       gramService,
		socketFeedHandler: socketFeedHandler,
		server:            server,
		handler:           server.Handler(),
	}
}

type requestOption func(*http.Request)

func asJSON(req *http.Request) {
	req.Header.Set("Accept", "application/json")
}

func withToken(token string) requestOption {
	return func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: utils.JwtCookieName, Value: token})
	}
}

func (ts *testServer) signIn(t *testing.T, user *models.User) requestOption {
	t.Helper()
	session, errors := ts.authService.IssueToken(user)
	require.Empty(t, errors)
	return withToken(session.Token)
}

func (ts *testServer) do(t *testing.T, method, path string, form url.Values, options ...requestOption) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, option := range options {
		option(req)
	}

	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) countGrams(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, ts.db.Model(&models.Gram{}).Count(&count).Error)
	return count
}

func (ts *testServer) reloadGram(t *testing.T, id uint) *models.Gram {
	t.Helper()
	var gram models.Gram
	require.NoError(t, ts.db.First(&gram, id).Error)
	return &gram
}

func requireRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	require.Equal(t, location, rec.Header().Get("Location"))
}

func (ts *testServer) createUser(t *testing.T) *models.User {
	t.Helper()
	return testutil.CreateUser(t, ts.db)
}

func (ts *testServer) createGram(t *testing.T, owner *models.User, message string) *models.Gram {
	t.Helper()
	return testutil.CreateGram(t, ts.db, owner, message)
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "grammable_http_requests_total")
}
