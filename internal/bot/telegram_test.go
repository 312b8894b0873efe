package bot

import (
	"testing"

	tg "github.com/m3rciful/ipbot/core/telegram"
	"github.com/m3rciful/ipbot/internal/menu"

	tele "gopkg.in/telebot.v4"
)

type fakeContext struct {
	tele.Context
	update tele.Update
	store  map[string]interface{}
	sent   []string
	markup []*tele.ReplyMarkup
}

func newFake(update tele.Update) *fakeContext {
	return &fakeContext{update: update, store: map[string]interface{}{}}
}

func (f *fakeContext) Update() tele.Update { return f.update }
func (f *fakeContext) Callback() *tele.Callback { return f.update.Callback }
func (f *fakeContext) Chat() *tele.Chat { return &tele.Chat{ID: chat} }
func (f *fakeContext) Sender() *tele.User { return &tele.User{ID: chat} }

func (f *fakeContext) Text() string {
	if f.update.Message == nil {
		return ""
	}
	return f.update.Message.Text
}

func (f *fakeContext) Get(key string) interface{} { return f.store[key] }
func (f *fakeContext) Set(key string, v interface{}) {
	f.store[key] = v
}

func (f *fakeContext) Respond(...*tele.CallbackResponse) error { return nil }

func (f *fakeContext) Send(what interface{}, opts ...interface{}) error {
	f.sent = append(f.sent, what.(string))
	var rm *tele.ReplyMarkup
	for _, o := range opts {
		if m, ok := o.(*tele.ReplyMarkup); ok {
			rm = m
		}
	}
	f.markup = append(f.markup, rm)
	return nil
}

func TestMarkupUsesRawCallbackData(t *testing.T) {
	m := Markup(menu.Reply{Text: "x", Buttons: menu.ConfirmMenu("10.0.0.5")})
	if m == nil || m.InlineKeyboard[0][0].Data != "confirm_add_10.0.0.5" || m.InlineKeyboard[0][1].Data != "do_nothing" {
		t.Fatalf("markup = %+v", m)
	}
	if m.InlineKeyboard[0][0].Unique != "" {
		t.Fatal("buttons must not carry a telebot unique")
	}
	if Markup(menu.Text("plain")) != nil {
		t.Fatal("plain reply must not render a keyboard")
	}
}

func TestTelegramCallbackFlow(t *testing.T) {
	b, reg, _ := newBot(t)
	tgReg := tg.NewRegistry()
	adapter := NewTelegram(b)
	if err := adapter.Register(tgReg); err != nil {
		t.Fatal(err)
	}

	c := newFake(tele.Update{ID: 1, Callback: &tele.Callback{Data: "add_ip"}})
	key := tgReg.CallbackKey(c)
	if key != "add_ip" {
		t.Fatalf("key = %q", key)
	}
	h, ok := tgReg.GetCallback(key)
	if !ok {
		t.Fatal("add_ip callback not registered")
	}
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	if len(c.sent) != 1 || c.sent[0] != "Please enter the IP address to add:" {
		t.Fatalf("sent = %v", c.sent)
	}
	if !adapter.InProgress(chat) {
		t.Fatal("conversation should be in progress")
	}

	txt := newFake(tele.Update{ID: 2, Message: &tele.Message{Text: "8.8.4.4"}})
	if err := adapter.HandleText(txt); err != nil {
		t.Fatal(err)
	}
	if !reg.Contains("8.8.4.4") {
		t.Fatalf("registry = %v", reg.List())
	}
	if txt.markup[0] == nil {
		t.Fatal("result should carry the main menu")
	}
}

func TestTelegramUnknownCallbackKey(t *testing.T) {
	b, _, _ := newBot(t)
	tgReg := tg.NewRegistry()
	if err := NewTelegram(b).Register(tgReg); err != nil {
		t.Fatal(err)
	}
	c := newFake(tele.Update{ID: 3, Callback: &tele.Callback{Data: "ip_999.0.0.1"}})
	if key := tgReg.CallbackKey(c); key != "unknown" {
		t.Fatalf("key = %q", key)
	}
	if _, ok := tgReg.GetCallback("unknown"); ok {
		t.Fatal("unknown must not be routable")
	}
	if err := tgReg.CallbackNotFound()(c); err != nil {
		t.Fatal(err)
	}
	if len(c.sent) != 1 || c.sent[0] != msgUnknown {
		t.Fatalf("sent = %v", c.sent)
	}
}
