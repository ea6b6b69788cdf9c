// Package transport is the thin boundary over the persistent event channel:
// a WebSocket delivering ordered text messages both ways. A dropped
// connection is terminal for the session; no reconnect or backoff exists
// here on purpose.
package transport

import (
	"context"
	"sync"
	"time"

	"cosmossdk.io/errors"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/cardroom/tableview/pkg/protocol"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingPeriod   = 54 * time.Second
	sendBuffer   = 16
)

// Conn is one live session connection. Inbound messages preserve server
// order on the Messages channel; the channel closes when the connection
// drops, which ends the session.
type Conn struct {
	ws       *websocket.Conn
	send     chan []byte
	messages chan []byte
	done     chan struct{}
	once     sync.Once

	mu  sync.Mutex
	err error

	log zerolog.Logger
}

// Dial opens the event channel at the given ws:// URL and starts the
// read/write pumps.
func Dial(ctx context.Context, url string, log zerolog.Logger) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "dial %s", url)
	}

	c := &Conn{
		ws:       ws,
		send:     make(chan []byte, sendBuffer),
		messages: make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
		log:      log,
	}

	go c.readPump()
	go c.writePump()

	log.Info().Str("url", url).Msg("connected")
	return c, nil
}

// Messages returns the ordered inbound stream. The channel closes on
// connection loss; Err reports the cause afterwards.
func (c *Conn) Messages() <-chan []byte {
	return c.messages
}

// Send queues one outbound text message. Fire-and-forget: a nil return
// means queued, not delivered.
func (c *Conn) Send(ctx context.Context, payload []byte) error {
	select {
	case c.send <- payload:
		return nil
	case <-c.done:
		return protocol.ErrConnectionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close tears the connection down. Safe to call more than once.
func (c *Conn) Close() error {
	c.shutdown(nil)
	return c.ws.Close()
}

// Err returns the terminal error after Messages closes, nil for a clean
// close.
func (c *Conn) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

func (c *Conn) shutdown(err error) {
	c.once.Do(func() {
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
		close(c.done)
	})
}

func (c *Conn) readPump() {
	defer func() {
		close(c.messages)
		c.ws.Close()
	}()

	c.ws.SetReadDeadline(time.Now().Add(readTimeout))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Error().Err(err).Msg("read error")
			}
			c.shutdown(err)
			return
		}
		select {
		case c.messages <- message:
		case <-c.done:
			return
		}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.TextMessage, payload); err != nil {
				c.log.Error().Err(err).Msg("write error")
				c.shutdown(err)
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.shutdown(err)
				return
			}
		case <-c.done:
			return
		}
	}
}
