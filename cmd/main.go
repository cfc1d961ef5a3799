/*
Package main is the entry point for the JumpIn bot.

It is responsible for loading configuration, initializing the global logging
system, opening the optional chat log database, connecting to the chat service
with automatic reconnection, serving the status API, and gracefully handling
operating system interrupt signals (SIGINT, SIGTERM) for a smooth shutdown.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"jumpinbot/internal/app/bot"
	"jumpinbot/internal/app/chatlog"
	"jumpinbot/internal/app/command"
	"jumpinbot/internal/app/socket"
	"jumpinbot/internal/configs"
	"jumpinbot/internal/handler"
	"jumpinbot/internal/pkg/limiter"
	"jumpinbot/internal/pkg/logx"
	"jumpinbot/internal/pkg/randx"
	"jumpinbot/internal/pkg/session"
)

// version is stamped at build time via -ldflags.
var version = "dev"

const (
	// Per-user command throttle.
	commandRate  = 0.5
	commandBurst = 2

	// Reconnect backoff bounds.
	reconnectMin = time.Second
	reconnectMax = time.Minute
)

func main() {
	// Load configuration from environment variables
	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Logger().Info().
		Str("environment", cfg.Environment).
		Str("room", cfg.Room).
		Str("version", version).
		Int("status_port", cfg.StatusPort).
		Strs("allowed_origins", cfg.AllowedOrigins).
		Msg("Configuration loaded successfully")

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the optional chat log database.
	var recorder bot.Recorder
	if cfg.DatabaseDSN != "" {
		chatLog, err := chatlog.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			logx.Fatal(err, "Failed to open chat log database")
		}
		defer chatLog.Close()
		recorder = chatLog
	}

	// Inspect the configured session token so an expired one fails loudly at
	// startup instead of as a silent join rejection.
	if cfg.SessionToken != "" {
		claims, err := session.ParseToken(cfg.SessionToken)
		if err != nil {
			logx.Fatal(err, "Configured session token is not parseable")
		}
		if claims.NearExpiry(session.RefreshWindow) {
			logx.Warn("Configured session token is expired or near expiry.",
				"expiry", claims.Expiry().String())
		}
		logx.Info("Session token loaded.", "user_id", claims.UserID, "handle", claims.Handle)
		if cfg.Handle == "" {
			cfg.Handle = claims.Handle
		}
	}

	// A bot without a configured handle joins under a generated guest handle.
	handle := cfg.Handle
	if handle == "" {
		handle, err = randx.GuestHandle()
		if err != nil {
			logx.Fatal(err, "Failed to generate a guest handle")
		}
		logx.Info("No handle configured, generated a guest handle.", "handle", handle)
	}

	// Wire up the command registry and the bot runtime.
	commandLimiter := limiter.NewKeyedLimiter(rate.Limit(commandRate), commandBurst)
	registry := command.NewRegistry(cfg.CommandPrefix, commandLimiter)

	b := bot.New(cfg.Room, handle, version, registry, recorder)

	builtins := command.NewBuiltins(b, b, registry)
	if err := registry.RegisterCog(builtins); err != nil {
		logx.Fatal(err, "Failed to register built-in commands")
	}

	// Connect to the chat service, reconnecting with backoff until shutdown.
	go runConnectionLoop(ctx, cfg, b)

	// Setup the status API server.
	router := handler.Router(&handler.AppDeps{Bot: b, Config: cfg})

	serverAddr := fmt.Sprintf(":%d", cfg.StatusPort)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logx.Info(fmt.Sprintf("Status API listening on http://localhost%s", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logx.Fatal(err, "Status API failed to start")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown with a timeout of 5 seconds.
	<-ctx.Done()
	logx.Info("Received shutdown signal. Starting graceful shutdown...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logx.Fatal(err, "Status API forced to shutdown")
	}

	logx.Info("Bot gracefully stopped.")
}

// runConnectionLoop keeps the bot connected to the chat service, redialing
// with exponential backoff after every failure until the context is cancelled.
func runConnectionLoop(ctx context.Context, cfg *configs.AppConfig, b *bot.Bot) {
	backoff := reconnectMin

	for {
		client, err := socket.Dial(ctx, cfg.ServiceURL, rate.Limit(cfg.SendRate), cfg.SendBurst)
		if err != nil {
			logx.Error(err, "Failed to connect to chat service", "retry_in", backoff.String())

			select {
			case <-ctx.Done():
				return
			case <-time.After(backoff):
			}

			backoff = min(backoff*2, reconnectMax)
			continue
		}

		backoff = reconnectMin

		err = b.Run(ctx, client)
		client.Close()

		if ctx.Err() != nil {
			return
		}

		logx.Warn("Disconnected from chat service, reconnecting.", "reason", err.Error())

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
	}
}
