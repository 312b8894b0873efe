// Package state keeps per-chat conversation state for Telegram handlers.
// It is domain-agnostic: callers choose the value type stored per chat.
package state
