// Package calendar_tools provides MCP (Model Context Protocol) tools for Google Calendar operations.
//
// This package exposes Google Calendar functionality through a standardized MCP interface,
// allowing AI assistants to list calendars and events, create secondary calendars, and
// insert events (optionally with Google Meet conferencing) on behalf of users.
//
// The tools support multiple authorized accounts; every tool accepts an optional
// account argument resolved against the credential store.
package calendar_tools
