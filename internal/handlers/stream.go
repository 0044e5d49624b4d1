package handlers

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// upgradeStream upgrades the request to a websocket and returns a context
// that is cancelled as soon as the peer goes away, so the live subscription
// behind the socket is always torn down with it. On upgrade failure the
// upgrader has already written the HTTP error.
func upgradeStream(w http.ResponseWriter, r *http.Request) (*websocket.Conn, context.Context, context.CancelFunc, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, cancel := context.WithCancel(r.Context())
	go func() {
		// Drain control frames; any read error means the peer is gone.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()
	return conn, ctx, cancel, nil
}

// closeWithError reports a terminal subscription failure to the peer. There
// is no automatic resubscription; the client re-opens the stream on user
// action.
func closeWithError(conn *websocket.Conn, err error) {
	msg := websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error())
	_ = conn.WriteMessage(websocket.CloseMessage, msg)
}
