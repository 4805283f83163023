// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connection and schema creation.

# Opening a Connection

Open selects the driver from the configured database type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Supported types:

  - sqlite: modernc.org/sqlite, pure Go, the default; also used in-memory
    by the test suite
  - postgres: lib/pq

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL avoids engine-specific constructs so the same statements run on both
SQLite and PostgreSQL.

# Tables

  - poll: Poll definition plus the authoritative tally columns votes1..votes4
  - vote: One attribution record per standing vote
  - user_like: Toggleable like edges between users

# Relationships

	poll 1──* vote
	user_like is keyed by (liker_username, liked_username)

Cascade removal of a poll's vote records is performed explicitly inside the
delete transaction rather than relying on engine-level ON DELETE behavior,
which SQLite only honors with a per-connection pragma.

# Indexes

  - poll.creator_username
  - vote.poll_id
  - vote.(poll_id, voter_username)
  - vote.voter_username
  - user_like.liked_username
*/
package db
