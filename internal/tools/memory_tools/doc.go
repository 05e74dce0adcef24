// Package memory_tools provides MCP tools for session memory: starting
// sessions, recording conversation messages, and recalling a session's
// history in insertion order.
package memory_tools
