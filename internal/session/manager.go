// Package session drives the multi-step add-IP conversation for each chat.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/m3rciful/ipbot/core/logger"
	"github.com/m3rciful/ipbot/core/telegram/state"
	"github.com/m3rciful/ipbot/internal/ipaddr"
	"github.com/m3rciful/ipbot/internal/menu"
	"github.com/m3rciful/ipbot/internal/registry"
)

const (
	component = "session"

	// DefaultMaxAttempts is the retry budget for an invalid address.
	DefaultMaxAttempts = 3
)

// Phase is the conversation state of one chat. A chat without a stored
// session is idle.
type Phase int

const (
	Idle Phase = iota
	AwaitingIP
	AwaitingConfirmation
)

func (p Phase) String() string {
	switch p {
	case AwaitingIP:
		return "awaiting_ip"
	case AwaitingConfirmation:
		return "awaiting_confirmation"
	default:
		return "idle"
	}
}

// Session is the transient state of one chat.
type Session struct {
	Phase        Phase
	AttemptsLeft int
	Candidate    string
}

// Registry is the subset of the IP registry the conversation mutates.
type Registry interface {
	Contains(ip string) bool
	Add(ctx context.Context, ip string) (bool, error)
}

// Manager owns the sessions of every chat.
type Manager struct {
	reg         Registry
	store       *state.Store[Session]
	maxAttempts int
}

// NewManager builds a Manager. maxAttempts <= 0 selects DefaultMaxAttempts.
func NewManager(reg Registry, maxAttempts int) *Manager {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Manager{
		reg:         reg,
		store:       state.NewStore[Session](),
		maxAttempts: maxAttempts,
	}
}

// Begin starts a new add-IP conversation, replacing any earlier one.
func (m *Manager) Begin(chatID int64) menu.Reply {
	m.store.Set(chatID, Session{Phase: AwaitingIP, AttemptsLeft: m.maxAttempts})
	return menu.Text(msgPrompt)
}

// Current returns the session of chatID; idle chats report Phase Idle.
func (m *Manager) Current(chatID int64) Session {
	s, ok := m.store.Get(chatID)
	if !ok {
		return Session{Phase: Idle}
	}
	return s
}

// InProgress reports whether chatID has a conversation underway.
func (m *Manager) InProgress(chatID int64) bool {
	return m.store.InProgress(chatID)
}

// Reset drops the conversation of chatID.
func (m *Manager) Reset(chatID int64) {
	m.store.Clear(chatID)
}

// HandleText consumes free text while the chat awaits an address. It
// returns false when no address is expected.
func (m *Manager) HandleText(ctx context.Context, chatID int64, text string) (menu.Reply, bool) {
	var (
		reply   menu.Reply
		handled bool
	)
	m.store.Update(chatID, func(cur Session, ok bool) (Session, bool) {
		if !ok || cur.Phase != AwaitingIP {
			return cur, ok
		}
		handled = true

		token := strings.TrimSpace(text)
		addr, class := ipaddr.Parse(token)
		attrs := []slog.Attr{
			slog.String("ip_class", class.String()),
			slog.Int("attempts_left", cur.AttemptsLeft),
		}

		switch class {
		case ipaddr.Loopback:
			logger.Info(ctx, component, "input.rejected", append(attrs, slog.String("ip", addr))...)
			reply = menu.WithMain(msgLoopback)
			return Session{}, false

		case ipaddr.Invalid:
			left := cur.AttemptsLeft - 1
			logger.Info(ctx, component, "input.invalid",
				slog.String("input", logger.SanitizeLimit(token, 64)),
				slog.Int("attempts_left", left),
			)
			if left <= 0 {
				reply = menu.WithMain(msgGiveUp)
				return Session{}, false
			}
			reply = menu.Text(msgRetry)
			return Session{Phase: AwaitingIP, AttemptsLeft: left}, true

		case ipaddr.Private:
			logger.Info(ctx, component, "input.confirm", append(attrs, slog.String("ip", addr))...)
			reply = menu.Reply{Text: askPrivate(addr), Buttons: menu.ConfirmMenu(addr)}
			return Session{Phase: AwaitingConfirmation, Candidate: addr}, true

		default:
			reply = m.commit(ctx, addr)
			return Session{}, false
		}
	})
	return reply, handled
}

// Confirm answers a pending private-range confirmation. candidate is the
// address carried by the confirmation button and is ignored when declining.
// It returns false when no confirmation is pending.
func (m *Manager) Confirm(ctx context.Context, chatID int64, candidate string, accepted bool) (menu.Reply, bool) {
	var (
		reply   menu.Reply
		handled bool
	)
	m.store.Update(chatID, func(cur Session, ok bool) (Session, bool) {
		if !ok || cur.Phase != AwaitingConfirmation {
			return cur, ok
		}
		handled = true

		if !accepted {
			logger.Info(ctx, component, "confirm.declined", slog.String("ip", cur.Candidate))
			reply = menu.WithMain(msgNoAction)
			return Session{}, false
		}
		if candidate != cur.Candidate {
			logger.Info(ctx, component, "confirm.stale",
				slog.String("ip", candidate),
				slog.String("status", "skipped"),
			)
			reply = menu.Text(msgExpired)
			return cur, true
		}
		reply = m.commit(ctx, cur.Candidate)
		return Session{}, false
	})
	return reply, handled
}

func (m *Manager) commit(ctx context.Context, addr string) menu.Reply {
	if m.reg.Contains(addr) {
		logger.Info(ctx, component, "input.duplicate", slog.String("ip", addr))
		return menu.WithMain(duplicate(addr))
	}
	isNew, err := m.reg.Add(ctx, addr)
	switch {
	case err == nil && !isNew:
		return menu.WithMain(duplicate(addr))
	case errors.Is(err, registry.ErrPersist):
		return menu.WithMain(added(addr) + "\n" + msgSaveWarning)
	case err != nil:
		logger.Error(ctx, component, "add", slog.String("ip", addr), slog.String("err", err.Error()))
		return menu.WithMain(addFailed(addr))
	}
	return menu.WithMain(added(addr))
}
