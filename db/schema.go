// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The DDL is restricted to
// the dialect both SQLite and PostgreSQL accept: no server-side defaults for
// timestamps (set in code) and no engine-specific column types.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polls, with the authoritative tally vector stored inline
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    option1 TEXT NOT NULL,
    option2 TEXT NOT NULL,
    option3 TEXT,
    option4 TEXT,
    creator_username TEXT,
    votes1 INTEGER NOT NULL DEFAULT 0 CHECK (votes1 >= 0),
    votes2 INTEGER NOT NULL DEFAULT 0 CHECK (votes2 >= 0),
    votes3 INTEGER NOT NULL DEFAULT 0 CHECK (votes3 >= 0),
    votes4 INTEGER NOT NULL DEFAULT 0 CHECK (votes4 >= 0),
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poll_creator ON poll(creator_username);

-- Vote attribution records; voter_username is NULL for anonymous votes
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id),
    option_index INTEGER NOT NULL CHECK (option_index BETWEEN 1 AND 4),
    voter_username TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);
CREATE INDEX IF NOT EXISTS idx_vote_poll_voter ON vote(poll_id, voter_username);
CREATE INDEX IF NOT EXISTS idx_vote_voter ON vote(voter_username);

-- Like edges: one toggleable edge per (liker, liked) pair.
-- poll_id is informational context only.
CREATE TABLE IF NOT EXISTS user_like (
    liker_username TEXT NOT NULL,
    liked_username TEXT NOT NULL,
    poll_id TEXT,
    created_at TIMESTAMP NOT NULL,
    PRIMARY KEY (liker_username, liked_username)
);

CREATE INDEX IF NOT EXISTS idx_user_like_liked ON user_like(liked_username);
`
