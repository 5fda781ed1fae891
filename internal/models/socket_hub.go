package models

import (
	"sync"

	"github.com/gorilla/websocket"
)

type SocketClient struct {
	Conn   *websocket.Conn
	UserID uint
}

// Session labels the client for metrics.
func (client *SocketClient) Session() string {
	if client.UserID == 0 {
		return "anonymous"
	}
	return "signed_in"
}

type SocketHub struct {
	Clients map[*websocket.Conn]*SocketClient
	Mu      sync.Mutex
}
