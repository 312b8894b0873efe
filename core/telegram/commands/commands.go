package commands

import (
	tele "gopkg.in/telebot.v4"
)

// Command represents a slash command with its handler and menu metadata.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	// Hidden commands are routed but not published in the command menu.
	Hidden  bool
	Aliases []string
}
