// Package memory persists conversation turns per session so an agent can
// resume a conversation across process restarts.
//
// Sessions are opaque correlation keys; the store never interprets them. It
// offers exact keyed recall ordered by insertion time, backed by SQLite.
package memory
