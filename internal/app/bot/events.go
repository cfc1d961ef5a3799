/*
Package bot implements the bot runtime.

This file maps transport event names to record types and applies hydrated
records to the room state. A payload whose shape does not match its record's
schema is logged and dropped; it never reaches the state or the command
dispatcher.
*/
package bot

import (
	"context"
	"errors"

	"jumpinbot/internal/app/command"
	"jumpinbot/internal/app/models"
	"jumpinbot/internal/app/socket"
	"jumpinbot/internal/pkg/errs"
	"jumpinbot/internal/pkg/randx"
	"jumpinbot/internal/pkg/session"
)

// eventRecords maps each transport event to the record type its payload
// hydrates into. Events absent from the map are ignored.
var eventRecords = map[string]string{
	"room::message":        "message",
	"room::status":         "status",
	"room::error":          "error",
	"room::join":           "join",
	"room::userList":       "userList",
	"room::updateUserList": "updateUserList",
	"room::updateUser":     "user",
	"room::handleChange":   "handleChange",
	"room::playvideo":      "playVideo",
	"client::banlist":      "banlist",
	"client::session":      "session",
}

// eventPlaylistUpdate carries a list payload and is hydrated element-wise.
const eventPlaylistUpdate = "room::playlistUpdate"

func (b *Bot) handleEvent(ctx context.Context, ev socket.Event) {
	if ev.Name == socket.EventConnected {
		b.joinRoom(ctx)
		return
	}

	if ev.Name == eventPlaylistUpdate {
		b.applyPlaylistUpdate(ev)
		return
	}

	name, ok := eventRecords[ev.Name]
	if !ok {
		b.logger.Debug().
			Int("code", errs.ErrEventUnknown).
			Str("event", ev.Name).
			Msg("Ignoring unrouted event.")
		return
	}

	payload, ok := ev.Payload.(map[string]any)
	if !ok {
		b.logger.Warn().
			Str("event", ev.Name).
			Msg("Event payload is not an object, dropping.")
		return
	}

	rec, err := models.Hydrate(name, payload)
	if err != nil {
		var mismatch *models.SchemaMismatchError
		if errors.As(err, &mismatch) {
			b.logger.Warn().
				Int("code", errs.ErrEventMalformed).
				Str("event", ev.Name).
				Str("path", mismatch.Path).
				Str("want", mismatch.Want).
				Str("got", mismatch.Got).
				Msg("Event payload does not match its schema, dropping.")
		} else {
			b.logger.Error().Err(err).Str("event", ev.Name).Msg("Failed to hydrate event.")
		}
		return
	}

	switch r := rec.(type) {
	case *models.Message:
		b.applyMessage(ctx, r)
	case *models.Status:
		b.logger.Info().
			Str("notification_type", r.NotificationType).
			Str("status", r.Message).
			Msg("Room status.")
	case *models.ChatError:
		b.logger.Warn().
			Str("context", r.Context).
			Str("error", r.Error).
			Msg(r.Message)
	case *models.Join:
		b.applyJoin(r)
	case *models.UserList:
		b.applyUserList(r)
	case *models.UpdateUserList:
		b.applyUserUpdate(r.User)
	case *models.User:
		b.applyUserUpdate(r)
	case *models.HandleChange:
		b.applyHandleChange(r)
	case *models.PlayVideo:
		b.applyPlayVideo(r)
	case *models.Banlist:
		b.applyBanlist(ctx, r)
	case *models.Session:
		b.applySession(r)
	}
}

// joinRoom announces the bot to the room once the session is acknowledged.
func (b *Bot) joinRoom(ctx context.Context) {
	b.mu.RLock()
	t := b.transport
	handle := b.handle
	b.mu.RUnlock()

	if t == nil {
		return
	}

	join := models.Payload{"room": b.room}
	if handle != "" {
		join["handle"] = handle
	}

	if err := t.Emit(ctx, "room::join", join); err != nil {
		b.logger.Error().Err(err).Msg("Failed to join room.")
		return
	}

	b.logger.Info().Str("handle", handle).Msg("Joined room.")
}

func (b *Bot) applyMessage(ctx context.Context, m *models.Message) {
	if b.recorder != nil {
		if err := b.recorder.RecordMessage(ctx, b.room, m); err != nil {
			b.logger.Error().Err(err).Msg("Failed to record chat message.")
		}
	}

	// Never react to our own messages.
	if m.Handle != "" && m.Handle == b.Handle() {
		return
	}

	cmd, ok := b.registry.Parse(m)
	if !ok {
		return
	}

	// Command handlers may block (timers), so each runs on its own goroutine.
	go b.dispatch(ctx, cmd)
}

func (b *Bot) dispatch(ctx context.Context, cmd *command.Command) {
	err := b.registry.Dispatch(ctx, cmd)
	if err == nil {
		return
	}

	b.logger.Info().
		Int("code", err.Code).
		Str("command", cmd.Name).
		Msg(err.Message)

	if sayErr := b.Say(ctx, err.Message); sayErr != nil {
		b.logger.Error().Err(sayErr).Msg("Failed to report command error to room.")
	}
}

func (b *Bot) applyJoin(j *models.Join) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.users {
		if sameUser(&b.users[i], j.User) {
			b.users[i] = *j.User
			return
		}
	}
	b.users = append(b.users, *j.User)

	b.logger.Info().
		Str("handle", j.User.Handle).
		Str("role", j.User.Role().String()).
		Msg("User joined.")
}

func (b *Bot) applyUserList(l *models.UserList) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.roomInfo = l
	b.users = make([]models.User, len(l.Users))
	copy(b.users, l.Users)

	b.logger.Info().
		Int("users", len(b.users)).
		Str("name", l.Name).
		Msg("Room snapshot received.")
}

// applyUserUpdate replaces the stored user matching the update, or appends the
// user when no stored user matches.
func (b *Bot) applyUserUpdate(u *models.User) {
	if u == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.users {
		if sameUser(&b.users[i], u) {
			b.users[i] = *u
			return
		}
	}
	b.users = append(b.users, *u)
}

func (b *Bot) applyHandleChange(hc *models.HandleChange) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// A change without a user id is the service renaming us.
	if hc.UserID == "" || (b.claims != nil && hc.UserID == b.claims.UserID) {
		b.logger.Info().
			Str("old_handle", b.handle).
			Str("new_handle", hc.Handle).
			Bool("guest_handle", randx.IsValidGuestHandle(hc.Handle)).
			Msg("Bot handle changed.")
		b.handle = hc.Handle
		return
	}

	for i := range b.users {
		if b.users[i].UserID == hc.UserID || b.users[i].ID == hc.UserID {
			b.users[i].Handle = hc.Handle
			return
		}
	}
}

func (b *Bot) applyPlayVideo(pv *models.PlayVideo) {
	b.mu.Lock()
	b.playing = pv
	b.mu.Unlock()

	b.logger.Info().
		Str("title", pv.Title).
		Str("media_type", pv.MediaType).
		Msg("Media started.")
}

func (b *Bot) applyPlaylistUpdate(ev socket.Event) {
	payloads, ok := ev.Payload.([]any)
	if !ok {
		b.logger.Warn().Str("event", ev.Name).Msg("Playlist update payload is not a sequence, dropping.")
		return
	}

	records, err := models.HydrateList("playlistUpdateItem", payloads)
	if err != nil {
		var mismatch *models.SchemaMismatchError
		if errors.As(err, &mismatch) {
			b.logger.Warn().
				Str("path", mismatch.Path).
				Str("want", mismatch.Want).
				Str("got", mismatch.Got).
				Msg("Playlist update does not match its schema, dropping.")
		} else {
			b.logger.Error().Err(err).Msg("Failed to hydrate playlist update.")
		}
		return
	}

	items := make([]models.PlaylistUpdateItem, 0, len(records))
	for _, rec := range records {
		if item, ok := rec.(*models.PlaylistUpdateItem); ok {
			items = append(items, *item)
		}
	}

	b.mu.Lock()
	b.playlist = items
	b.mu.Unlock()
}

func (b *Bot) applyBanlist(ctx context.Context, bl *models.Banlist) {
	b.mu.Lock()
	b.banlist = make([]models.BanListItem, len(bl.List))
	copy(b.banlist, bl.List)
	b.mu.Unlock()

	if b.recorder != nil {
		for i := range bl.List {
			if err := b.recorder.RecordBan(ctx, b.room, &bl.List[i]); err != nil {
				b.logger.Error().Err(err).Msg("Failed to record ban.")
			}
		}
	}
}

func (b *Bot) applySession(s *models.Session) {
	claims, err := session.ParseToken(s.Token)
	if err != nil {
		b.logger.Error().Err(err).Msg("Service issued an unparseable session token.")
		return
	}

	b.mu.Lock()
	b.claims = claims
	if s.User != nil && s.User.Handle != "" {
		b.handle = s.User.Handle
	}
	b.mu.Unlock()

	if claims.NearExpiry(session.RefreshWindow) {
		b.logger.Warn().
			Int("code", errs.ErrSessionExpired).
			Time("expiry", claims.Expiry()).
			Msg("Session token is near expiry.")
	}

	b.logger.Info().
		Str("user_id", claims.UserID).
		Str("handle", b.Handle()).
		Msg("Session established.")
}

// sameUser matches users by the strongest identifier both sides carry.
func sameUser(a, c *models.User) bool {
	if a.ID != "" && c.ID != "" {
		return a.ID == c.ID
	}
	if a.UserID != "" && c.UserID != "" {
		return a.UserID == c.UserID
	}
	return a.Handle != "" && a.Handle == c.Handle
}
