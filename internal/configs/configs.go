/*
Package configs is responsible for loading and parsing the bot's configuration settings.

It configures the bot by reading operating system environment variables, including
the running environment, the chat service websocket URL, the room to join, the
bot's handle, the command prefix, status API settings, and the optional chat log
database connection.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig contains all configuration parameters required for the bot to run.
// All configuration values are loaded from environment variables.
type AppConfig struct {
	// General Settings
	Environment string

	// Chat Service Settings
	ServiceURL   string
	Room         string
	Handle       string
	SessionToken string

	// Command Settings
	CommandPrefix string

	// Outbound message throttle (messages per second, burst size).
	SendRate  float64
	SendBurst int

	// Status API Settings
	StatusPort     int
	AllowedOrigins []string

	// Chat Log Settings (optional; empty disables logging to Postgres)
	DatabaseDSN string
}

// LoadConfig reads and parses the bot configuration from environment variables.
// It provides default values where sensible and performs necessary type
// conversions and validation. It returns a pointer to the AppConfig struct and
// any error encountered.
func LoadConfig() (*AppConfig, error) {
	cfg := &AppConfig{}

	// --- General Settings ---
	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	// --- Chat Service Settings ---
	cfg.ServiceURL = os.Getenv("SERVICE_URL")
	if cfg.ServiceURL == "" {
		cfg.ServiceURL = "wss://jumpin.chat/socket.io/?EIO=3&transport=websocket"
	}
	if !strings.HasPrefix(cfg.ServiceURL, "ws://") && !strings.HasPrefix(cfg.ServiceURL, "wss://") {
		return nil, fmt.Errorf("SERVICE_URL must be a ws:// or wss:// URL, got %q", cfg.ServiceURL)
	}

	cfg.Room = os.Getenv("ROOM")
	if cfg.Room == "" {
		return nil, fmt.Errorf("ROOM environment variable is required (the room the bot joins)")
	}

	cfg.Handle = os.Getenv("BOT_HANDLE")

	cfg.SessionToken = os.Getenv("SESSION_TOKEN")

	// --- Command Settings ---
	cfg.CommandPrefix = os.Getenv("COMMAND_PREFIX")
	if cfg.CommandPrefix == "" {
		cfg.CommandPrefix = "!"
	}

	// --- Outbound Throttle ---
	sendRateStr := os.Getenv("SEND_RATE")
	if sendRateStr == "" {
		sendRateStr = "1"
	}
	sendRate, err := strconv.ParseFloat(sendRateStr, 64)
	if err != nil || sendRate <= 0 {
		return nil, fmt.Errorf("invalid SEND_RATE environment variable: %q", sendRateStr)
	}
	cfg.SendRate = sendRate

	sendBurstStr := os.Getenv("SEND_BURST")
	if sendBurstStr == "" {
		sendBurstStr = "3"
	}
	sendBurst, err := strconv.Atoi(sendBurstStr)
	if err != nil || sendBurst < 1 {
		return nil, fmt.Errorf("invalid SEND_BURST environment variable: %q", sendBurstStr)
	}
	cfg.SendBurst = sendBurst

	// --- Status API Settings ---
	portStr := os.Getenv("STATUS_PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STATUS_PORT environment variable: %w", err)
	}
	cfg.StatusPort = port

	if cfg.StatusPort < 1024 || cfg.StatusPort > 65535 {
		return nil, fmt.Errorf("port number %d is outside the recommended range (%d-%d) to avoid privileged ports", cfg.StatusPort, 1024, 65535)
	}

	originsStr := os.Getenv("ALLOWED_ORIGINS")
	if originsStr != "" {
		origins := strings.Split(originsStr, ",")
		for _, origin := range origins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	} else {
		cfg.AllowedOrigins = []string{}
	}

	// --- Chat Log Settings ---
	cfg.DatabaseDSN = os.Getenv("DATABASE_URL")

	return cfg, nil
}
