/*
Package command implements the bot's extensible command subsystem.

Chat messages starting with the configured prefix are parsed into Commands and
dispatched to registered handlers. Handlers are contributed in groups (Cogs),
carry aliases and a description for help output, and declare the minimum role a
sender needs; the dispatcher gates on the sender's derived role and rate limits
individual users.
*/
package command

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"jumpinbot/internal/app/models"
	"jumpinbot/internal/pkg/errs"
	"jumpinbot/internal/pkg/limiter"
	"jumpinbot/internal/pkg/logx"
)

// Command is one parsed chat command.
type Command struct {
	// Name is the lowercased command alias, without the prefix.
	Name string

	// Args are the whitespace-separated arguments following the alias.
	Args []string

	// Argument is the raw argument string following the alias.
	Argument string

	// Message is the hydrated chat message the command was parsed from.
	Message *models.Message

	// Sender is the hydrated sender, nil when the service omitted it.
	Sender *models.User
}

// Responder sends text back to the room, either as a plain chat message or as
// a styled action line. The bot runtime implements it.
type Responder interface {
	Say(ctx context.Context, message string) error
	SayAction(ctx context.Context, message string) error
}

// HandlerFunc runs one command.
type HandlerFunc func(ctx context.Context, c *Command) error

// Handler describes one registered command.
type Handler struct {
	// Aliases are the names the command answers to; the first is canonical.
	Aliases []string

	// Description is the one-line help text.
	Description string

	// MinRole is the minimum derived role a sender needs. RoleGuest admits
	// everyone, including messages without a hydrated sender.
	MinRole models.Role

	// Run executes the command.
	Run HandlerFunc
}

// Registry maps command aliases to handlers and dispatches parsed commands.
// Registration happens at startup; dispatch is read-only and safe for
// concurrent use.
type Registry struct {
	prefix   string
	handlers map[string]*Handler
	ordered  []*Handler

	// userLimiter throttles how fast a single user may issue commands.
	userLimiter *limiter.KeyedLimiter

	logger zerolog.Logger
}

// NewRegistry creates an empty Registry for the given command prefix.
func NewRegistry(prefix string, userLimiter *limiter.KeyedLimiter) *Registry {
	return &Registry{
		prefix:      prefix,
		handlers:    make(map[string]*Handler),
		userLimiter: userLimiter,
		logger:      logx.Logger().With().Str("component", "command").Logger(),
	}
}

// Cog groups related command handlers.
type Cog interface {
	// Name identifies the cog in logs.
	Name() string

	// Handlers returns the command handlers the cog contributes.
	Handlers() []*Handler
}

// Register adds a handler under all of its aliases. Duplicate aliases and
// handlers without aliases are rejected.
func (r *Registry) Register(h *Handler) error {
	if len(h.Aliases) == 0 {
		return fmt.Errorf("handler registered without aliases")
	}

	for _, alias := range h.Aliases {
		alias = strings.ToLower(alias)
		if _, exists := r.handlers[alias]; exists {
			return fmt.Errorf("duplicate command alias %q", alias)
		}
		r.handlers[alias] = h
	}

	r.ordered = append(r.ordered, h)
	return nil
}

// RegisterCog registers every handler a cog contributes.
func (r *Registry) RegisterCog(c Cog) error {
	for _, h := range c.Handlers() {
		if err := r.Register(h); err != nil {
			return fmt.Errorf("cog %q: %w", c.Name(), err)
		}
	}

	r.logger.Info().
		Str("cog", c.Name()).
		Msg("Cog registered.")
	return nil
}

// Parse extracts a Command from a chat message. It reports false when the
// message does not start with the command prefix.
func (r *Registry) Parse(m *models.Message) (*Command, bool) {
	text := strings.TrimSpace(m.Message)
	if !strings.HasPrefix(text, r.prefix) {
		return nil, false
	}

	fields := strings.Fields(text[len(r.prefix):])
	if len(fields) == 0 {
		return nil, false
	}

	return &Command{
		Name:     strings.ToLower(fields[0]),
		Args:     fields[1:],
		Argument: strings.Join(fields[1:], " "),
		Message:  m,
		Sender:   m.Sender,
	}, true
}

// Dispatch gates and runs a parsed command. It returns nil on success, or a
// CustomError describing why the command did not run; the caller decides what
// to surface to the room. Handler panics or errors never propagate to the
// event loop.
func (r *Registry) Dispatch(ctx context.Context, c *Command) *errs.CustomError {
	h, ok := r.handlers[c.Name]
	if !ok {
		return errs.NewError(errs.ErrCommandUnknown, c.Name)
	}

	if h.MinRole > models.RoleGuest {
		if c.Sender == nil || !c.Sender.Role().AtLeast(h.MinRole) {
			return errs.NewError(errs.ErrNotAuthorized)
		}
	}

	if r.userLimiter != nil && !r.userLimiter.Allow(senderKey(c)) {
		return errs.NewError(errs.ErrCommandThrottled)
	}

	if err := r.run(ctx, h, c); err != nil {
		r.logger.Error().
			Err(err).
			Str("command", c.Name).
			Str("sender", senderKey(c)).
			Msg("Command handler failed.")
		return errs.NewError(errs.ErrCommandFailed)
	}

	return nil
}

// run executes a handler, converting a panic into an error so one bad handler
// cannot take down the event loop.
func (r *Registry) run(ctx context.Context, h *Handler, c *Command) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("handler panic: %v", rec)
		}
	}()

	return h.Run(ctx, c)
}

// senderKey identifies the sender for rate limiting.
func senderKey(c *Command) string {
	if c.Sender != nil {
		if c.Sender.UserID != "" {
			return c.Sender.UserID
		}
		if c.Sender.Handle != "" {
			return c.Sender.Handle
		}
	}
	if c.Message != nil && c.Message.Handle != "" {
		return c.Message.Handle
	}
	return "anonymous"
}

// Help returns one formatted line per registered handler, sorted by canonical
// alias.
func (r *Registry) Help() []string {
	lines := make([]string, 0, len(r.ordered))
	for _, h := range r.ordered {
		line := fmt.Sprintf("%s%s - %s", r.prefix, h.Aliases[0], h.Description)
		if h.MinRole > models.RoleGuest {
			line = fmt.Sprintf("%s (requires %s)", line, h.MinRole)
		}
		lines = append(lines, line)
	}
	sort.Strings(lines)
	return lines
}
