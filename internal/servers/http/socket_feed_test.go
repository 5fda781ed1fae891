package http

import (
	"context"
	"grammable/internal/enums"
	"grammable/internal/metrics"
	"grammable/internal/models"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocketFeedReceivesGramEvents(t *testing.T) {
	ts := newTestServer(t)
	server := httptest.NewServer(ts.handler)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/feed"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return ts.socketFeedHandler.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	user := ts.createUser(t)
	gram, errors := ts.gramService.CreateGram(context.Background(), user.ID, &models.GramForm{Message: "live!"}, nil)
	require.Empty(t, errors)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event struct {
		Event  string `json:"event"`
		GramID uint   `json:"gram_id"`
	}
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, enums.FEED_EVENT_GRAM_CREATED, event.Event)
	assert.Equal(t, gram.ID, event.GramID)

	conn.Close()
	assert.Eventually(t, func() bool {
		return ts.socketFeedHandler.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)
}

func TestSocketFeedTracksSignedInClients(t *testing.T) {
	ts := newTestServer(t)
	server := httptest.NewServer(ts.handler)
	defer server.Close()

	signedIn := metrics.FeedClients.WithLabelValues("signed_in")
	anonymous := metrics.FeedClients.WithLabelValues("anonymous")
	signedInBefore := promtestutil.ToFloat64(signedIn)
	anonymousBefore := promtestutil.ToFloat64(anonymous)

	user := ts.createUser(t)
	req := httptest.NewRequest(http.MethodGet, "/ws/feed", nil)
	ts.signIn(t, user)(req)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/feed"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, http.Header{"Cookie": {req.Header.Get("Cookie")}})
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool {
		return ts.socketFeedHandler.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, signedInBefore+1, promtestutil.ToFloat64(signedIn))
	assert.Equal(t, anonymousBefore, promtestutil.ToFloat64(anonymous))

	conn.Close()
	require.Eventually(t, func() bool {
		return ts.socketFeedHandler.ClientCount() == 0
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, signedInBefore, promtestutil.ToFloat64(signedIn))
}
