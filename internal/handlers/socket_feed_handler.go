package handlers

import (
	"context"
	"grammable/internal/metrics"
	"grammable/internal/models"
	"grammable/internal/services"
	"grammable/internal/utils"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const socketWriteWait = 10 * time.Second

// SocketFeedHandler pushes every feed event to all connected websocket clients.
type SocketFeedHandler struct {
	ctx         context.Context
	upgrader    websocket.Upgrader
	hub         *models.SocketHub
	feedService *services.FeedService
}

func NewSocketFeedHandler(ctx context.Context, feedService *services.FeedService) *SocketFeedHandler {
	return &SocketFeedHandler{
		ctx:         ctx,
		feedService: feedService,
		hub: &models.SocketHub{
			Clients: make(map[*websocket.Conn]*models.SocketClient),
		},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// StartSocket subscribes to the feed and starts fanning events out. The subscription is
// established before it returns.
func (sh *SocketFeedHandler) StartSocket() error {
	events, err := sh.feedService.Subscribe(sh.ctx)
	if err != nil {
		return err
	}
	go sh.handleFeedEvents(events)
	return nil
}

// HandleSocketFeedRoute godoc
// @Summary      Live feed
// @Description  Websocket that receives gram and comment events
// @Tags         feed
// @Success      101
// @Router       /ws/feed [get]
func (sh *SocketFeedHandler) HandleSocketFeedRoute(ctx *gin.Context) {
	ws, err := sh.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}
	defer sh.removeClient(ws)

	client := &models.SocketClient{
		Conn:   ws,
		UserID: utils.GetUserIdFromContext(ctx),
	}
	sh.hub.Mu.Lock()
	sh.hub.Clients[ws] = client
	metrics.FeedClients.WithLabelValues(client.Session()).Inc()
	sh.hub.Mu.Unlock()
	log.WithFields(log.Fields{
		"user_id": client.UserID,
		"remote":  ws.RemoteAddr().String(),
	}).Debug("Feed client connected")

	// the feed is read only, reading just detects the client going away
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Error reading from feed socket: %v", err)
			}
			return
		}
	}
}

func (sh *SocketFeedHandler) handleFeedEvents(events <-chan *models.FeedEvent) {
	for event := range events {
		sh.broadcast(event)
	}
}

func (sh *SocketFeedHandler) broadcast(event *models.FeedEvent) {
	sh.hub.Mu.Lock()
	defer sh.hub.Mu.Unlock()

	for conn := range sh.hub.Clients {
		_ = conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("Error writing json: %v", err)
			_ = conn.Close()
			sh.dropClientLocked(conn)
		}
	}
}

func (sh *SocketFeedHandler) removeClient(ws *websocket.Conn) {
	sh.hub.Mu.Lock()
	sh.dropClientLocked(ws)
	sh.hub.Mu.Unlock()

	if err := ws.Close(); err != nil {
		log.Debugf("Error closing connection: %v", err)
	}
}

func (sh *SocketFeedHandler) ClientCount() int {
	sh.hub.Mu.Lock()
	defer sh.hub.Mu.Unlock()
	return len(sh.hub.Clients)
}

// CloseAll disconnects every client, used on shutdown.
func (sh *SocketFeedHandler) CloseAll() {
	sh.hub.Mu.Lock()
	defer sh.hub.Mu.Unlock()

	for conn := range sh.hub.Clients {
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second),
		)
		_ = conn.Close()
		sh.dropClientLocked(conn)
	}
}

// dropClientLocked forgets a connection once; callers hold hub.Mu.
func (sh *SocketFeedHandler) dropClientLocked(conn *websocket.Conn) {
	client, ok := sh.hub.Clients[conn]
	if !ok {
		return
	}
	delete(sh.hub.Clients, conn)
	metrics.FeedClients.WithLabelValues(client.Session()).Dec()
}
