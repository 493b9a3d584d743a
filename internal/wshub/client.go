package wshub

import (
	"context"

	"github.com/coder/websocket"
	"github.com/wernert71/fnaf-browser-game/internal/metrics"
)

// Client bridges one websocket connection to its room hub: a write pump
// draining the broadcast subscription and a read pump feeding parsed
// messages to the dispatcher.
type Client struct {
	Registry *Registry
	Hub      *RoomHub
	Player   *Player
	Conn     *websocket.Conn
	Send     chan []byte
}

// Serve runs both pumps until either one finishes, then cancels the other,
// detaches from the registry and closes the socket. Failure of one
// direction is treated as failure of the whole connection.
func (c *Client) Serve(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{}, 2)

	go func() {
		c.WritePump(ctx)
		done <- struct{}{}
	}()
	go func() {
		c.ReadPump(ctx)
		done <- struct{}{}
	}()

	<-done
	cancel()
	<-done

	c.Registry.Detach(c.Hub.Code, c.Player.ConnID)
	c.Hub.Broadcaster.Unsubscribe(c.Send)
	c.Conn.CloseNow()
}

// WritePump reads from the Send channel and writes to the WebSocket
// connection. Any write error ends the pump; the peer is presumed gone.
func (c *Client) WritePump(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case frame, ok := <-c.Send:
			if !ok {
				return
			}
			if err := c.Conn.Write(ctx, websocket.MessageText, frame); err != nil {
				return
			}
			metrics.FramesOut.Inc()
		}
	}
}

// ReadPump reads frames from the WebSocket connection and hands parsed
// messages to the dispatcher. Malformed frames are dropped without a reply;
// any read error or close ends the pump.
func (c *Client) ReadPump(ctx context.Context) {
	for {
		typ, frame, err := c.Conn.Read(ctx)
		if err != nil {
			return
		}
		if typ != websocket.MessageText {
			continue
		}
		metrics.FramesIn.Inc()
		msg, ok := ParseClientMessage(frame)
		if !ok {
			continue
		}
		c.Hub.Apply(c.Player.ConnID, msg)
	}
}
