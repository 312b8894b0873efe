package router

import (
	"testing"

	tg "github.com/m3rciful/ipbot/core/telegram"
	"github.com/m3rciful/ipbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

type fakeContext struct {
	tele.Context
	update    tele.Update
	store     map[string]interface{}
	responded int
}

func newCallback(data string) *fakeContext {
	return &fakeContext{
		update: tele.Update{ID: 1, Callback: &tele.Callback{Data: data}},
		store:  map[string]interface{}{},
	}
}

func newText(text string) *fakeContext {
	return &fakeContext{
		update: tele.Update{ID: 2, Message: &tele.Message{Text: text, Chat: &tele.Chat{ID: 9}}},
		store:  map[string]interface{}{},
	}
}

func (f *fakeContext) Update() tele.Update { return f.update }
func (f *fakeContext) Callback() *tele.Callback { return f.update.Callback }
func (f *fakeContext) Sender() *tele.User { return &tele.User{ID: 9} }
func (f *fakeContext) Chat() *tele.Chat { return &tele.Chat{ID: 9} }

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

func (f *fakeContext) Respond(...*tele.CallbackResponse) error {
	f.responded++
	return nil
}

type fakeConversation struct {
	active  bool
	handled []string
}

func (f *fakeConversation) InProgress(int64) bool { return f.active }
func (f *fakeConversation) HandleText(c tele.Context) error {
	f.handled = append(f.handled, c.Text())
	return nil
}

func TestCallbackRouteDispatchesByKey(t *testing.T) {
	reg := tg.NewRegistry()
	var got string
	_ = reg.RegisterCallback("add_ip", func(c tele.Context) error {
		got = c.Callback().Data
		return nil
	})
	route := CallbackRoute(reg)

	c := newCallback("add_ip")
	if err := route.Handler(c); err != nil {
		t.Fatal(err)
	}
	if got != "add_ip" || c.responded != 1 {
		t.Fatalf("got=%q responded=%d", got, c.responded)
	}

	notFound := 0
	reg.SetCallbackNotFound(func(tele.Context) error { notFound++; return nil })
	_ = route.Handler(newCallback("nope"))
	if notFound != 1 {
		t.Fatal("unknown key should reach the not-found handler")
	}
}

func TestCallbackRouteCustomKey(t *testing.T) {
	reg := tg.NewRegistry()
	reg.SetCallbackKey(func(c tele.Context) string { return "prefix" })
	hit := false
	_ = reg.RegisterCallback("prefix", func(tele.Context) error { hit = true; return nil })
	_ = CallbackRoute(reg).Handler(newCallback("prefix_anything"))
	if !hit {
		t.Fatal("custom key function not used")
	}
}

func TestTextRoutesPreferConversation(t *testing.T) {
	reg := tg.NewRegistry()
	cmdHits := 0
	_ = reg.RegisterCommand("/cancel", commands.Command{
		Description: "Cancel",
		Aliases:     []string{"stop"},
		Handler:     func(tele.Context) error { cmdHits++; return nil },
	})
	fallbackHits := 0
	reg.SetTextFallback(func(tele.Context) error { fallbackHits++; return nil })

	conv := &fakeConversation{active: true}
	routes := TextRoutes(conv, reg, TextOptions{})
	text := routes[0].Handler

	_ = text(newText("8.8.8.8"))
	if len(conv.handled) != 1 {
		t.Fatal("active conversation should receive text")
	}

	conv.active = false
	_ = text(newText("/stop"))
	_ = text(newText("hello"))
	if cmdHits != 1 || fallbackHits != 1 {
		t.Fatalf("cmdHits=%d fallbackHits=%d", cmdHits, fallbackHits)
	}
}

func TestCommandRoutesIncludeAliases(t *testing.T) {
	reg := tg.NewRegistry()
	_ = reg.RegisterCommand("/cancel", commands.Command{
		Description: "Cancel",
		Aliases:     []string{"stop"},
		Handler:     func(tele.Context) error { return nil },
	})
	routes := CommandRoutes(reg)
	if len(routes) != 2 {
		t.Fatalf("routes = %d, expected command plus alias", len(routes))
	}
	endpoints := map[any]bool{}
	for _, r := range routes {
		endpoints[r.Endpoint] = true
	}
	if !endpoints["/cancel"] || !endpoints["/stop"] {
		t.Fatalf("endpoints = %v", endpoints)
	}
}

func TestDeriveErrorCode(t *testing.T) {
	if got := deriveErrorCode(&tele.Error{Code: 400, Description: "bad"}); got != "ERROR" {
		t.Fatalf("code = %s", got)
	}
	if normalizeHandlerName("/Start") != "start" || normalizeHandlerName("") != "unknown" {
		t.Fatal("normalizeHandlerName mismatch")
	}
}
