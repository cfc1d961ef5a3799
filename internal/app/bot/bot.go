/*
Package bot implements the bot runtime: the event loop that consumes decoded
transport events, hydrates their payloads into typed records, maintains the
room state, and dispatches chat commands.

This file defines the Bot struct and its lifecycle. The transport and the chat
log recorder are injected as interfaces so the runtime can be exercised without
a live connection or database.
*/
package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"jumpinbot/internal/app/command"
	"jumpinbot/internal/app/models"
	"jumpinbot/internal/app/socket"
	"jumpinbot/internal/pkg/logx"
	"jumpinbot/internal/pkg/session"
)

// State describes where the bot is in its lifecycle.
type State int

const (
	// StateInitialized means the bot has been constructed but not yet run.
	StateInitialized State = iota

	// StateRunning means the bot is consuming events from a live connection.
	StateRunning

	// StateDisconnected means the last connection was torn down.
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Transport is the connection the bot consumes events from and emits events to.
// *socket.Client implements it.
type Transport interface {
	Events() <-chan socket.Event
	Emit(ctx context.Context, name string, args ...any) error
	Done() <-chan struct{}
	Close()
}

// Recorder persists chat history. It is optional; a nil Recorder disables
// persistence. *chatlog.Recorder implements it.
type Recorder interface {
	RecordMessage(ctx context.Context, room string, m *models.Message) error
	RecordBan(ctx context.Context, room string, item *models.BanListItem) error
}

// Bot is the chat bot runtime.
type Bot struct {
	room    string
	version string

	registry *command.Registry
	recorder Recorder

	// mu guards every field below.
	mu        sync.RWMutex
	state     State
	transport Transport
	handle    string
	startedAt time.Time
	roomInfo  *models.UserList
	users     []models.User
	banlist   []models.BanListItem
	playlist  []models.PlaylistUpdateItem
	playing   *models.PlayVideo
	claims    *session.Claims

	logger zerolog.Logger
}

// New creates a Bot for the given room. handle is the bot's preferred handle;
// the service may assign a different one, reported through a handle change
// event. recorder may be nil.
func New(room, handle, version string, registry *command.Registry, recorder Recorder) *Bot {
	return &Bot{
		room:     room,
		version:  version,
		registry: registry,
		recorder: recorder,
		state:    StateInitialized,
		handle:   handle,
		logger: logx.Logger().With().
			Str("component", "bot").
			Str("room", room).
			Logger(),
	}
}

// Run consumes events from the transport until the context is cancelled or the
// connection is torn down. It always returns a non-nil error describing why the
// loop stopped; the caller decides whether to reconnect.
func (b *Bot) Run(ctx context.Context, t Transport) error {
	b.mu.Lock()
	b.state = StateRunning
	b.transport = t
	b.startedAt = time.Now()
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.state = StateDisconnected
		b.transport = nil
		b.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			t.Close()
			return ctx.Err()

		case ev, ok := <-t.Events():
			if !ok {
				return fmt.Errorf("connection to chat service closed")
			}
			b.handleEvent(ctx, ev)
		}
	}
}

// Say sends a chat message to the room.
func (b *Bot) Say(ctx context.Context, message string) error {
	b.mu.RLock()
	t := b.transport
	b.mu.RUnlock()

	if t == nil {
		return fmt.Errorf("not connected")
	}

	return t.Emit(ctx, "room::message", models.Payload{
		"message": message,
		"room":    b.room,
	})
}

// SayAction sends a chat message rendered as a styled action line. The service
// has no separate action event; the client renders the asterisk markup, so an
// action is a room::message with the text wrapped in bold markup.
func (b *Bot) SayAction(ctx context.Context, message string) error {
	return b.Say(ctx, fmt.Sprintf("*%s*", message))
}

// State returns the bot's lifecycle state.
func (b *Bot) State() State {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.state
}

// Uptime returns how long the current run has been alive. It is zero before
// the first run.
func (b *Bot) Uptime() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.startedAt.IsZero() {
		return 0
	}
	return time.Since(b.startedAt)
}

// Version returns the running build version.
func (b *Bot) Version() string { return b.version }

// RoomName returns the room the bot is configured to join.
func (b *Bot) RoomName() string { return b.room }

// Handle returns the bot's current handle, which may differ from the
// configured one when the service assigned a guest handle.
func (b *Bot) Handle() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.handle
}

// Topic returns the room topic from the last room snapshot, or "" before one
// arrived.
func (b *Bot) Topic() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.roomInfo == nil || b.roomInfo.Settings == nil || b.roomInfo.Settings.Topic == nil {
		return ""
	}
	return b.roomInfo.Settings.Topic.Text
}

// UserCount returns the number of users currently present in the room.
func (b *Bot) UserCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.users)
}

// Users returns a copy of the room's user list, in join order.
func (b *Bot) Users() []models.User {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.User, len(b.users))
	copy(out, b.users)
	return out
}

// Banlist returns a copy of the room's ban list, in chronological order.
func (b *Bot) Banlist() []models.BanListItem {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.BanListItem, len(b.banlist))
	copy(out, b.banlist)
	return out
}

// Playlist returns a copy of the room's media playlist, in playlist order.
func (b *Bot) Playlist() []models.PlaylistUpdateItem {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]models.PlaylistUpdateItem, len(b.playlist))
	copy(out, b.playlist)
	return out
}

// NowPlaying returns the currently playing media, or nil.
func (b *Bot) NowPlaying() *models.PlayVideo {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.playing
}

// Session returns the claims of the current session token, or nil before the
// service has issued one.
func (b *Bot) Session() *session.Claims {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.claims
}
