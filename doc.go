// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Pollcast API server.

Pollcast is a live polling service: polls with two to four options,
identified or anonymous voting, user-to-user likes, and a WebSocket feed
that pushes every state change to connected clients as it happens.

# Starting the Server

With no configuration the server listens on :8000 over a local SQLite file:

	go run .

Or against PostgreSQL:

	go run . -t postgres -d "postgres://..."

A .env file in the working directory is loaded if present.

# Configuration

Optional settings (flag / env):

  - PORT (-p): Server port (default: 8000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (required for postgres)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (polls, voting, users, websocket)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - store: Poll rows with authoritative tallies; vote and like records
  - service: The single writer; atomic mutations, one event per success
  - hub: WebSocket fan-out with bounded per-client queues
  - event: Domain event variants and the wire envelope
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing

All mutations flow through the service; reads go straight to the stores.
See package documentation for each component.
*/
package main
