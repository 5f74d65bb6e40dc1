package termsdk

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
)

// Stream opens the terminal websocket. The returned channel yields one
// snapshot per change and is closed when ctx is done or the server ends the
// stream (e.g. on logout).
func (s *Session) Stream(ctx context.Context) (<-chan Terminal, error) {
	wsURL := "ws" + strings.TrimPrefix(s.client.url("/v1/terminal/stream"), "http")

	header := http.Header{}
	header.Set("Authorization", "Bearer "+s.accessToken)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("open stream: HTTP %d: %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("open stream: %w", err)
	}

	out := make(chan Terminal, 1)
	go func() {
		<-ctx.Done()
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()
	go func() {
		defer close(out)
		for {
			var snap Terminal
			if err := conn.ReadJSON(&snap); err != nil {
				return
			}
			select {
			case out <- snap:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
