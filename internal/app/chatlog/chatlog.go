/*
Package chatlog persists the room's chat history and ban events to PostgreSQL.

Persistence is best-effort: the bot keeps running when the chat log is down,
and the package is only wired up when a database DSN is configured.
*/
package chatlog

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"

	"jumpinbot/internal/app/models"
	"jumpinbot/internal/pkg/logx"
	"jumpinbot/internal/pkg/randx"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Recorder writes chat messages and ban events to PostgreSQL.
type Recorder struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// Open initializes the connection pool, applies pending migrations, and
// returns a ready Recorder.
func Open(ctx context.Context, dsn string) (*Recorder, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database DSN: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	if err := runMigrations(sqlDB); err != nil {
		pool.Close()
		return nil, err
	}

	return &Recorder{
		pool:   pool,
		logger: logx.Logger().With().Str("component", "chatlog").Logger(),
	}, nil
}

// runMigrations applies all pending migrations from the embedded file system.
func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

// RecordMessage stores one chat message, deduplicating on the message id so
// reconnect replays insert nothing. Messages the service did not assign an id
// get a generated one.
func (r *Recorder) RecordMessage(ctx context.Context, room string, m *models.Message) error {
	messageID := m.ID
	if messageID == "" {
		messageID = randx.MessageID()
	}

	query := `
		INSERT INTO chat_messages (room, message_id, handle, user_id, color, body, sent_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, NULLIF($7, ''))
		ON CONFLICT (message_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		room, messageID, m.Handle, m.UserID, m.Color, m.Message, m.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	return nil
}

// RecordBan stores one ban list entry. Re-delivered ban lists only insert
// entries not seen before.
func (r *Recorder) RecordBan(ctx context.Context, room string, item *models.BanListItem) error {
	query := `
		INSERT INTO ban_events (room, ban_id, handle, banned_at)
		VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, query, room, item.ID, item.Handle, item.Timestamp)
	if isUniqueViolation(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to insert ban event: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (r *Recorder) Close() {
	r.pool.Close()
	r.logger.Info().Msg("Chat log closed.")
}
