package netmon

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

// WebSocketSource reads packets that a remote capture process streams as
// JSON frames, one Packet per message.
type WebSocketSource struct {
	conn *websocket.Conn
}

func DialWebSocket(ctx context.Context, url string) (*WebSocketSource, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("netmon: dial %s: %w", url, err)
	}
	return &WebSocketSource{conn: conn}, nil
}

func (s *WebSocketSource) Next(ctx context.Context) (Packet, error) {
	var p Packet
	if err := wsjson.Read(ctx, s.conn, &p); err != nil {
		if websocket.CloseStatus(err) == websocket.StatusNormalClosure {
			return Packet{}, io.EOF
		}
		return Packet{}, err
	}
	return p, nil
}

func (s *WebSocketSource) Close() error {
	err := s.conn.Close(websocket.StatusNormalClosure, "")
	if err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// FeedHandler streams packets from a fresh source to each websocket client.
type FeedHandler struct {
	NewSource func() PacketSource
}

func (h *FeedHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		log.Printf("netmon: accept feed client: %v", err)
		return
	}
	defer conn.CloseNow()

	src := h.NewSource()
	defer src.Close()

	for {
		p, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			_ = conn.Close(websocket.StatusNormalClosure, "")
			return
		}
		if err != nil {
			if ctx.Err() == nil {
				log.Printf("netmon: feed source: %v", err)
			}
			_ = conn.Close(websocket.StatusInternalError, "source failed")
			return
		}
		if err := wsjson.Write(ctx, conn, p); err != nil {
			return
		}
	}
}
