/*
Package command implements the bot's extensible command subsystem.

This file defines the built-in cog: the stock commands every deployment gets.
*/
package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// maxTimerSeconds caps the timer command so a user cannot park goroutines for
// hours.
const maxTimerSeconds = 3600

// BotInfo exposes the runtime facts the built-in commands report.
type BotInfo interface {
	Uptime() time.Duration
	Version() string
	UserCount() int
}

// Builtins is the cog providing the stock commands.
type Builtins struct {
	info BotInfo
	say  Responder
	reg  *Registry
}

// NewBuiltins creates the built-in cog. The registry reference feeds the help
// command.
func NewBuiltins(info BotInfo, say Responder, reg *Registry) *Builtins {
	return &Builtins{info: info, say: say, reg: reg}
}

// Name identifies the cog in logs.
func (b *Builtins) Name() string { return "builtins" }

// Handlers returns the built-in command handlers.
func (b *Builtins) Handlers() []*Handler {
	return []*Handler{
		{Aliases: []string{"version"}, Description: "get the running version", Run: b.version},
		{Aliases: []string{"uptime"}, Description: "get the bot's uptime", Run: b.uptime},
		{Aliases: []string{"timer"}, Description: "a seconds timer", Run: b.timer},
		{Aliases: []string{"help", "commands"}, Description: "list available commands", Run: b.help},
	}
}

func (b *Builtins) version(ctx context.Context, c *Command) error {
	return b.say.Say(ctx, fmt.Sprintf(":crystal_ball: currently running *%s*", b.info.Version()))
}

func (b *Builtins) uptime(ctx context.Context, c *Command) error {
	alive := b.info.Uptime().Truncate(time.Second)
	return b.say.SayAction(ctx, fmt.Sprintf("has been alive for %s :stopwatch:", alive))
}

func (b *Builtins) timer(ctx context.Context, c *Command) error {
	seconds, err := strconv.Atoi(c.Argument)
	if err != nil || seconds <= 0 || seconds > maxTimerSeconds {
		return b.say.Say(ctx, fmt.Sprintf("Give me a number of seconds between 1 and %d.", maxTimerSeconds))
	}

	if err := b.say.Say(ctx, fmt.Sprintf("Set a timer for %d seconds", seconds)); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(seconds) * time.Second):
	}

	return b.say.Say(ctx, "Timer has expired!")
}

func (b *Builtins) help(ctx context.Context, c *Command) error {
	return b.say.Say(ctx, strings.Join(b.reg.Help(), "\n"))
}
