// Package bot maps commands, menu actions and free text onto the registry
// and the add-IP conversation. It knows nothing about Telegram.
package bot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/m3rciful/ipbot/core/logger"
	"github.com/m3rciful/ipbot/internal/menu"
	"github.com/m3rciful/ipbot/internal/session"
)

const component = "bot"

const (
	msgWelcome   = "Welcome! Please select an option below."
	msgHelp      = "I keep a list of IP addresses.\nAdd IP asks for an address and adds it to the list.\nList IPs shows the list; tap an entry to delete it.\n/cancel stops an address entry in progress."
	msgCancelled = "Cancelled."
	msgNothing   = "Nothing to cancel."
	msgEmpty     = "The list is empty."
	msgList      = "Registered IP addresses:"
	msgEntry     = "%s\nWhat would you like to do?"
	msgMissing   = "%s is not in the list."
	msgDeleted   = "Deleted %s."
	msgSaveFail  = "Warning: the list could not be saved and will be lost on restart."
	msgNoAction  = "No action taken."
	msgExpired   = "This confirmation has expired."
	msgUnknown   = "Unsupported action."
	msgHint      = "Send /start to open the menu."
)

// Registry is the registry surface the router needs.
type Registry interface {
	List() []string
	Contains(ip string) bool
	Add(ctx context.Context, ip string) (bool, error)
	Remove(ctx context.Context, ip string) (bool, error)
}

// Bot answers every inbound event with a menu.Reply.
type Bot struct {
	reg      Registry
	sessions *session.Manager
}

// New wires the router to a registry and a session manager.
func New(reg Registry, sessions *session.Manager) *Bot {
	return &Bot{reg: reg, sessions: sessions}
}

// Sessions exposes the conversation manager for transport adapters.
func (b *Bot) Sessions() *session.Manager { return b.sessions }

// Start answers /start with the main menu.
func (b *Bot) Start(_ context.Context, _ int64) menu.Reply {
	return menu.WithMain(msgWelcome)
}

// Help answers /help.
func (b *Bot) Help(_ context.Context, _ int64) menu.Reply {
	return menu.WithMain(msgHelp)
}

// Cancel drops an in-progress conversation.
func (b *Bot) Cancel(ctx context.Context, chatID int64) menu.Reply {
	if !b.sessions.InProgress(chatID) {
		return menu.WithMain(msgNothing)
	}
	b.sessions.Reset(chatID)
	logger.Info(ctx, component, "session.cancel", slog.String("status", "ok"))
	return menu.WithMain(msgCancelled)
}

// HandleAction executes a parsed callback action.
func (b *Bot) HandleAction(ctx context.Context, chatID int64, a menu.Action) menu.Reply {
	switch a.Kind {
	case menu.ActionAddIP:
		return b.sessions.Begin(chatID)
	case menu.ActionListIPs:
		return b.list()
	case menu.ActionShowIP:
		return b.show(a.Addr)
	case menu.ActionDeleteIP:
		return b.delete(ctx, a.Addr)
	case menu.ActionConfirmAdd:
		if reply, ok := b.sessions.Confirm(ctx, chatID, a.Addr, true); ok {
			return reply
		}
		return menu.WithMain(msgExpired)
	case menu.ActionDoNothing:
		if reply, ok := b.sessions.Confirm(ctx, chatID, "", false); ok {
			return reply
		}
		return menu.WithMain(msgNoAction)
	default:
		return menu.WithMain(msgUnknown)
	}
}

// HandleText feeds free text to the conversation, or hints at /start.
func (b *Bot) HandleText(ctx context.Context, chatID int64, text string) menu.Reply {
	if reply, ok := b.sessions.HandleText(ctx, chatID, text); ok {
		return reply
	}
	return menu.Text(msgHint)
}

func (b *Bot) list() menu.Reply {
	entries := b.reg.List()
	if len(entries) == 0 {
		return menu.WithMain(msgEmpty)
	}
	return menu.Reply{Text: msgList, Buttons: menu.ListMenu(entries)}
}

func (b *Bot) show(addr string) menu.Reply {
	if !b.reg.Contains(addr) {
		return menu.WithMain(fmt.Sprintf(msgMissing, addr))
	}
	return menu.Reply{Text: fmt.Sprintf(msgEntry, addr), Buttons: menu.EntryMenu(addr)}
}

func (b *Bot) delete(ctx context.Context, addr string) menu.Reply {
	removed, err := b.reg.Remove(ctx, addr)
	if !removed {
		return menu.WithMain(fmt.Sprintf(msgMissing, addr))
	}
	text := fmt.Sprintf(msgDeleted, addr)
	if err != nil {
		text += "\n" + msgSaveFail
	}
	return menu.WithMain(text)
}
