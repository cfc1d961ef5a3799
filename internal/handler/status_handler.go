/*
Package handler provides HTTP handler functions for the bot's status API:
runtime status, the room roster, the ban list, and speaking into the room.
*/
package handler

import (
	"net/http"
	"time"
	"unicode/utf8"

	"jumpinbot/internal/app/bot"
	"jumpinbot/internal/pkg/errs"
	"jumpinbot/internal/pkg/logx"
	"jumpinbot/internal/pkg/req"
	"jumpinbot/internal/pkg/resp"
)

// MaxSayLength caps the message length accepted by the say endpoint, in
// characters, matching what the chat service accepts.
const MaxSayLength = 255

// HandleStatus reports the bot's runtime status.
func HandleStatus(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]any{
			"state":     deps.Bot.State().String(),
			"version":   deps.Bot.Version(),
			"uptime":    deps.Bot.Uptime().Truncate(time.Second).String(),
			"room":      deps.Bot.RoomName(),
			"topic":     deps.Bot.Topic(),
			"handle":    deps.Bot.Handle(),
			"userCount": deps.Bot.UserCount(),
		}

		if playing := deps.Bot.NowPlaying(); playing != nil {
			data["nowPlaying"] = playing
		}

		resp.RespondSuccess(w, r, data)
	}
}

// roomUser is one roster entry: the user record plus its derived role.
type roomUser struct {
	Handle    string `json:"handle"`
	Username  string `json:"username,omitempty"`
	Role      string `json:"role"`
	Moderator bool   `json:"moderator"`
	Operator  bool   `json:"operator"`
}

// HandleRoomUsers reports the room roster with each user's derived role.
func HandleRoomUsers(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users := deps.Bot.Users()

		roster := make([]roomUser, 0, len(users))
		for i := range users {
			u := &users[i]
			roster = append(roster, roomUser{
				Handle:    u.Handle,
				Username:  u.Username,
				Role:      u.Role().String(),
				Moderator: u.IsModerator(),
				Operator:  u.IsOperator(),
			})
		}

		resp.RespondSuccess(w, r, map[string]any{
			"room":  deps.Bot.RoomName(),
			"users": roster,
		})
	}
}

// HandleRoomBanlist reports the room's ban list in chronological order.
func HandleRoomBanlist(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.RespondSuccess(w, r, map[string]any{
			"room": deps.Bot.RoomName(),
			"list": deps.Bot.Banlist(),
		})
	}
}

type SayInput struct {
	// Message is the chat text to send to the room.
	Message string `json:"message"`
}

// HandleSay sends a chat message into the room on behalf of the API caller.
func HandleSay(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input SayInput

		if customErr := req.BindJSON(w, r, &input); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}

		if input.Message == "" {
			resp.RespondError(w, r, errs.NewError(errs.ErrMessageContentEmpty))
			return
		}

		if utf8.RuneCountInString(input.Message) > MaxSayLength {
			resp.RespondError(w, r, errs.NewError(errs.ErrMessageContentTooLong))
			return
		}

		if deps.Bot.State() != bot.StateRunning {
			resp.RespondError(w, r, errs.NewError(errs.ErrRoomNotJoined))
			return
		}

		if err := deps.Bot.Say(r.Context(), input.Message); err != nil {
			logx.Error(err, "Failed to relay API message to room")
			resp.RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
			return
		}

		resp.RespondSuccess(w, r, nil)
	}
}
