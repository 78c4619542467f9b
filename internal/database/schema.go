package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const mainSchema = `
CREATE TABLE IF NOT EXISTS users (
	id TEXT PRIMARY KEY,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS events (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	annotation TEXT NOT NULL,
	description TEXT NOT NULL,
	created_on TIMESTAMPTZ NOT NULL,
	event_date TIMESTAMPTZ NOT NULL,
	published_on TIMESTAMPTZ,
	category_id TEXT NOT NULL REFERENCES categories (id),
	initiator_id TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	lat DOUBLE PRECISION NOT NULL,
	lon DOUBLE PRECISION NOT NULL,
	paid BOOLEAN NOT NULL,
	participant_limit INTEGER NOT NULL DEFAULT 0,
	request_moderation BOOLEAN NOT NULL DEFAULT TRUE,
	state TEXT NOT NULL DEFAULT 'PENDING'
);

CREATE TABLE IF NOT EXISTS requests (
	id TEXT PRIMARY KEY,
	event_id TEXT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
	requester_id TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	status TEXT NOT NULL DEFAULT 'PENDING',
	created TIMESTAMPTZ NOT NULL,
	UNIQUE (event_id, requester_id)
);

CREATE TABLE IF NOT EXISTS compilations (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	pinned BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS events_compilations (
	compilation_id TEXT NOT NULL REFERENCES compilations (id) ON DELETE CASCADE,
	event_id TEXT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	PRIMARY KEY (compilation_id, event_id)
);

CREATE TABLE IF NOT EXISTS comments (
	id TEXT PRIMARY KEY,
	event_id TEXT NOT NULL REFERENCES events (id) ON DELETE CASCADE,
	author_id TEXT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	text TEXT NOT NULL,
	created TIMESTAMPTZ NOT NULL
);
`

const statsSchema = `
CREATE TABLE IF NOT EXISTS hits (
	id TEXT PRIMARY KEY,
	app TEXT NOT NULL,
	uri TEXT NOT NULL,
	ip TEXT NOT NULL,
	ts TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS hits_uri_ts ON hits (uri, ts);
`

// MigrateMain creates the main service tables when absent.
func MigrateMain(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, mainSchema); err != nil {
		return fmt.Errorf("migrate main schema: %w", err)
	}
	return nil
}

// MigrateStats creates the stats service tables when absent.
func MigrateStats(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, statsSchema); err != nil {
		return fmt.Errorf("migrate stats schema: %w", err)
	}
	return nil
}
