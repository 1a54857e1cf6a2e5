package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the application tables if they do not exist.
//
// conversations carries the canonical unordered pair key: (user_min, user_max)
// with user_min <= user_max lexically, under a UNIQUE constraint. That
// constraint is what makes resolve-or-create race-safe: concurrent first
// contacts for the same pair serialize on it, and the loser re-reads the
// surviving row. conversation_members keeps explicit membership rows alongside
// the pair key for future multi-party threads.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		username text UNIQUE NOT NULL,
		password_hash text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS conversations (
		id bigserial PRIMARY KEY,
		user_min uuid NOT NULL REFERENCES users(id),
		user_max uuid NOT NULL REFERENCES users(id),
		created_at timestamptz NOT NULL DEFAULT now(),
		UNIQUE (user_min, user_max)
	);

	CREATE TABLE IF NOT EXISTS conversation_members (
		conversation_id bigint NOT NULL REFERENCES conversations(id),
		user_id uuid NOT NULL REFERENCES users(id),
		PRIMARY KEY (conversation_id, user_id)
	);

	CREATE TABLE IF NOT EXISTS messages (
		id bigserial PRIMARY KEY,
		conversation_id bigint NOT NULL REFERENCES conversations(id),
		author_id uuid NOT NULL REFERENCES users(id),
		content text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	);

	CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages (conversation_id, id DESC);
	`

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: ensure schema: %w", err)
	}
	return nil
}
