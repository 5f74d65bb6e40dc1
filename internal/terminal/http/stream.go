package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aussiebroadwan/gemterm/pkg/slogx"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 90 * time.Second
	streamPingPeriod = 45 * time.Second
)

// StreamHandler pushes a terminal snapshot to a websocket on every change.
type StreamHandler struct {
	Terminals *TerminalHandler
	Upgrader  websocket.Upgrader
}

// ServeHTTP godoc
//
//	@Summary		Terminal Stream
//	@Description	Websocket that sends the current snapshot on connect and a new one after every change. Slow readers skip intermediate versions.
//	@Description	Browsers may pass the bearer token as the access_token query parameter. The server closes the socket when the session ends.
//	@Tags			Terminal
//	@Param			access_token	query	string	false	"bearer token when the Authorization header can't be set"
//	@Success		101
//	@Failure		401	{object}	termsdk.APIError	"invalid_token"
//	@Security		BearerAuth
//	@Router			/v1/terminal/stream [get].
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	c, ok := h.Terminals.coordinator(w, r)
	if !ok {
		return
	}

	conn, err := h.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, cancel := c.Subscribe()
	defer cancel()

	// Reader: only control frames are expected; any error ends the stream.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(streamPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(streamPingPeriod)
	defer ping.Stop()

	for {
		select {
		case snap, open := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if !open {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session ended"))
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				log.Debug("terminal stream write failed", "error", err)
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-gone:
			return
		}
	}
}
