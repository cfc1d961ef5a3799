package handler

import (
	"context"
	"time"

	"jumpinbot/internal/app/bot"
	"jumpinbot/internal/app/models"
	"jumpinbot/internal/configs"
)

// BotService is the slice of the bot runtime the status API reads from.
// *bot.Bot implements it.
type BotService interface {
	State() bot.State
	Uptime() time.Duration
	Version() string
	RoomName() string
	Topic() string
	Handle() string
	UserCount() int
	Users() []models.User
	Banlist() []models.BanListItem
	NowPlaying() *models.PlayVideo
	Say(ctx context.Context, message string) error
}

type AppDeps struct {
	Bot    BotService
	Config *configs.AppConfig
}
