package bot

import (
	"fmt"

	tg "github.com/m3rciful/ipbot/core/telegram"
	"github.com/m3rciful/ipbot/core/telegram/callbacks"
	"github.com/m3rciful/ipbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/ipbot/core/telegram/helpers"
	"github.com/m3rciful/ipbot/core/telegram/keyboard"
	"github.com/m3rciful/ipbot/core/telegram/router"
	"github.com/m3rciful/ipbot/internal/menu"

	tele "gopkg.in/telebot.v4"
)

const actionKey = "menu_action"

var actionKinds = []menu.Kind{
	menu.ActionAddIP,
	menu.ActionListIPs,
	menu.ActionShowIP,
	menu.ActionDeleteIP,
	menu.ActionConfirmAdd,
	menu.ActionDoNothing,
}

// Telegram adapts Bot to telebot handlers.
type Telegram struct {
	bot *Bot
}

// NewTelegram wraps b for the Telegram transport.
func NewTelegram(b *Bot) *Telegram {
	return &Telegram{bot: b}
}

// Register adds the commands and menu callbacks to reg.
func (t *Telegram) Register(reg *tg.Registry) error {
	cmds := map[string]commands.Command{
		"/start":  {Handler: t.onStart, Description: "Show the main menu", Aliases: []string{"menu"}},
		"/help":   {Handler: t.onHelp, Description: "How to use this bot"},
		"/cancel": {Handler: t.onCancel, Description: "Stop adding an address"},
	}
	for name, cmd := range cmds {
		if err := reg.RegisterCommand(name, cmd); err != nil {
			return fmt.Errorf("bot: %w", err)
		}
	}

	reg.SetCallbackKey(parseCallbackAction)
	for _, kind := range actionKinds {
		if err := reg.RegisterCallback(kind.String(), t.onAction); err != nil {
			return fmt.Errorf("bot: %w", err)
		}
	}
	reg.SetCallbackNotFound(func(c tele.Context) error {
		_ = c.Respond(&tele.CallbackResponse{Text: msgUnknown})
		return t.send(c, menu.WithMain(msgUnknown))
	})
	return nil
}

// Routes returns every telebot route served by the bot.
func (t *Telegram) Routes(reg *tg.Registry) []tg.Route {
	routes := router.CommandRoutes(reg)
	routes = append(routes, router.CallbackRoute(reg))
	routes = append(routes, router.TextRoutes(t, reg, router.TextOptions{
		UnknownText:     t.onText,
		UnknownDocument: t.onText,
	})...)
	return routes
}

// InProgress reports whether the chat is in the middle of adding an address.
func (t *Telegram) InProgress(chatID int64) bool {
	return t.bot.Sessions().InProgress(chatID)
}

// HandleText passes text to the conversation of the current chat.
func (t *Telegram) HandleText(c tele.Context) error {
	return t.onText(c)
}

// parseCallbackAction parses the callback data once and keeps the result
// on the context for onAction.
func parseCallbackAction(c tele.Context) string {
	a := menu.ParseAction(callbacks.Data(c))
	c.Set(actionKey, a)
	return a.Kind.String()
}

func (t *Telegram) onStart(c tele.Context) error {
	return t.send(c, t.bot.Start(tghelpers.BuildContext(c), tghelpers.ChatID(c)))
}

func (t *Telegram) onHelp(c tele.Context) error {
	return t.send(c, t.bot.Help(tghelpers.BuildContext(c), tghelpers.ChatID(c)))
}

func (t *Telegram) onCancel(c tele.Context) error {
	return t.send(c, t.bot.Cancel(tghelpers.BuildContext(c), tghelpers.ChatID(c)))
}

func (t *Telegram) onAction(c tele.Context) error {
	a, ok := c.Get(actionKey).(menu.Action)
	if !ok {
		a = menu.ParseAction(callbacks.Data(c))
	}
	return t.send(c, t.bot.HandleAction(tghelpers.BuildContext(c), tghelpers.ChatID(c), a))
}

func (t *Telegram) onText(c tele.Context) error {
	return t.send(c, t.bot.HandleText(tghelpers.BuildContext(c), tghelpers.ChatID(c), c.Text()))
}

func (t *Telegram) send(c tele.Context, reply menu.Reply) error {
	return tghelpers.SendText(c, reply.Text, Markup(reply))
}

// Markup renders the reply keyboard, or nil when the reply has none.
func Markup(reply menu.Reply) *tele.ReplyMarkup {
	if !reply.HasKeyboard() {
		return nil
	}
	rows := make([][]keyboard.InlineBtn, 0, len(reply.Buttons))
	for _, row := range reply.Buttons {
		r := make([]keyboard.InlineBtn, 0, len(row))
		for _, b := range row {
			r = append(r, keyboard.InlineBtn{Text: b.Label, Data: b.Action.Data()})
		}
		rows = append(rows, r)
	}
	return keyboard.InlineButtonsRows(rows...)
}
