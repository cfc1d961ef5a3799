/*
Package socket implements the bot's websocket transport to the chat service.

This file defines the Client struct, representing the bot's active connection.
It manages the engine.io handshake, the read and write pumps, heartbeats, and
the outbound message throttle. Decoded events are delivered to the owner over a
channel; the client itself never hydrates payloads.
*/
package socket

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"jumpinbot/internal/pkg/logx"
)

const (
	// timeout duration for writing to the websocket connection.
	writeWait = 10 * time.Second

	// maximum time allowed for the initial handshake packet to arrive.
	handshakeWait = 10 * time.Second

	// heartbeat defaults, used when the handshake does not specify intervals.
	defaultPingInterval = 25 * time.Second
	defaultPingTimeout  = 60 * time.Second

	// maximum allowed size (in bytes) of a frame sent by the service.
	// Room snapshots with large user lists are the biggest frames seen.
	maxMessageSize = 1 << 20

	sendChannelBuffer  = 256
	eventChannelBuffer = 256
)

// EventConnected is the synthetic event delivered to the owner once the
// socket.io session has been acknowledged by the service.
const EventConnected = "socket::connected"

// Client represents the bot's active websocket connection to the chat service.
type Client struct {
	// underlying websocket connection object.
	conn *websocket.Conn

	// handshake parameters announced by the service.
	handshake *Handshake

	// a buffered channel used to queue frames waiting to be written.
	send chan []byte

	// decoded inbound events, consumed by the owner.
	events chan Event

	// limiter throttles outbound events so the bot cannot flood the room.
	limiter *rate.Limiter

	// done is closed exactly once when the connection is torn down.
	done      chan struct{}
	closeOnce sync.Once

	// structured logger with connection context.
	logger zerolog.Logger
}

// Dial connects to the chat service, performs the engine.io handshake, and
// starts the read and write pumps. Outbound events are throttled to sendRate
// events per second with the given burst.
func Dial(ctx context.Context, url string, sendRate rate.Limit, burst int) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial chat service: %w", err)
	}

	conn.SetReadLimit(maxMessageSize)

	hs, err := awaitHandshake(conn)
	if err != nil {
		conn.Close()
		return nil, err
	}

	clientLogger := logx.Logger().With().
		Str("component", "socket").
		Str("sid", hs.SID).
		Logger()

	c := &Client{
		conn:      conn,
		handshake: hs,
		send:      make(chan []byte, sendChannelBuffer),
		events:    make(chan Event, eventChannelBuffer),
		limiter:   rate.NewLimiter(sendRate, burst),
		done:      make(chan struct{}),
		logger:    clientLogger,
	}

	// Acknowledge the socket.io session before anything else goes out.
	c.send <- EncodeConnect()

	go c.readPump()
	go c.writePump()

	c.logger.Info().
		Dur("ping_interval", c.pingInterval()).
		Msg("Connected to chat service.")

	return c, nil
}

// awaitHandshake reads the engine.io open packet that must be the first frame
// on a fresh connection.
func awaitHandshake(conn *websocket.Conn) (*Handshake, error) {
	if err := conn.SetReadDeadline(time.Now().Add(handshakeWait)); err != nil {
		return nil, fmt.Errorf("failed to set handshake deadline: %w", err)
	}

	_, data, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to read handshake packet: %w", err)
	}

	kind, rest := Classify(data)
	if kind != FrameOpen {
		return nil, fmt.Errorf("expected handshake packet, got frame kind %d", kind)
	}

	return ParseHandshake(rest)
}

// Events returns the channel of decoded inbound events. The channel is closed
// when the connection is torn down.
func (c *Client) Events() <-chan Event {
	return c.events
}

// Done is closed when the connection is torn down.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

func (c *Client) pingInterval() time.Duration {
	if c.handshake.PingInterval > 0 {
		return time.Duration(c.handshake.PingInterval) * time.Millisecond
	}
	return defaultPingInterval
}

func (c *Client) pingTimeout() time.Duration {
	if c.handshake.PingTimeout > 0 {
		return time.Duration(c.handshake.PingTimeout) * time.Millisecond
	}
	return defaultPingTimeout
}

// Emit encodes and queues an event for transmission, waiting on the outbound
// throttle first. It fails when the context is cancelled, the connection has
// been torn down, or the send queue is full.
func (c *Client) Emit(ctx context.Context, name string, args ...any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("outbound throttle interrupted: %w", err)
	}

	frame, err := EncodeEvent(name, args...)
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return fmt.Errorf("connection closed")
	case c.send <- frame:
		return nil
	default:
		c.logger.Warn().
			Int("queue_len", len(c.send)).
			Str("event", name).
			Msg("Send queue full, dropping event.")
		return fmt.Errorf("send queue full")
	}
}

// queueControl enqueues a control frame (pong) without throttling, dropping it
// if the queue is full. Heartbeats must never wait behind chat traffic.
func (c *Client) queueControl(frame []byte) {
	select {
	case c.send <- frame:
	default:
		c.logger.Warn().Msg("Send queue full, dropping control frame.")
	}
}

// readPump handles reading frames from the websocket connection. The read
// deadline is pushed forward on every inbound frame; any frame counts as
// liveness. Decoded events are forwarded to the events channel.
func (c *Client) readPump() {
	defer func() {
		c.Close()
		close(c.events)
	}()

	liveness := c.pingInterval() + c.pingTimeout()

	for {
		if err := c.conn.SetReadDeadline(time.Now().Add(liveness)); err != nil {
			c.logger.Error().Err(err).Msg("Failed to set read deadline")
			return
		}

		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn().Err(err).Msg("Unexpected close reading from service.")
			} else {
				c.logger.Info().Err(err).Msg("Connection closed.")
			}
			return
		}

		kind, rest := Classify(data)

		switch kind {
		case FramePing:
			c.queueControl(EncodePong())

		case FramePong:
			// Liveness deadline already reset above.

		case FrameConnect:
			c.forward(Event{Name: EventConnected})

		case FrameEvent:
			ev, err := DecodeEvent(rest)
			if err != nil {
				c.logger.Warn().Err(err).Msg("Service sent a malformed event frame.")
				continue
			}
			c.forward(*ev)

		case FrameClose:
			c.logger.Info().Msg("Service requested transport close.")
			return

		default:
			c.logger.Debug().Bytes("frame", data).Msg("Ignoring frame.")
		}
	}
}

// forward delivers an event to the owner, giving up when the connection is
// torn down so the pump can exit.
func (c *Client) forward(ev Event) {
	select {
	case c.events <- ev:
	case <-c.done:
	}
}

// writePump handles writing queued frames to the websocket connection and
// sends the periodic engine.io heartbeat probe.
func (c *Client) writePump() {
	ticker := time.NewTicker(c.pingInterval())

	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")); err != nil {
				c.logger.Debug().Err(err).Msg("Error writing close message.")
			}
			return

		case frame := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline")
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				c.logger.Error().Err(err).Msg("Error writing frame")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.logger.Error().Err(err).Msg("Failed to set write deadline on ping")
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, EncodePing()); err != nil {
				c.logger.Error().Err(err).Msg("Error writing heartbeat probe")
				return
			}
		}
	}
}

// Close tears the connection down. It is safe to call from any goroutine and
// more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if err := c.conn.Close(); err != nil {
			c.logger.Debug().Err(err).Msg("Connection close error.")
		}
	})
}
