package middleware

import (
	"errors"
	"testing"
	"time"

	tele "gopkg.in/telebot.v4"
)

// fakeContext implements the parts of tele.Context the middlewares touch.
type fakeContext struct {
	tele.Context
	update    tele.Update
	chat      *tele.Chat
	sender    *tele.User
	store     map[string]interface{}
	sent      []string
	responses []string
}

func newFakeContext(chatID int64, callback bool) *fakeContext {
	c := &fakeContext{store: map[string]interface{}{}}
	if chatID != 0 {
		c.chat = &tele.Chat{ID: chatID, Type: tele.ChatPrivate}
		c.sender = &tele.User{ID: chatID}
	}
	if callback {
		c.update.Callback = &tele.Callback{Data: "ip_list"}
	} else {
		c.update.Message = &tele.Message{Text: "/start"}
	}
	return c
}

func (f *fakeContext) Update() tele.Update { return f.update }
func (f *fakeContext) Chat() *tele.Chat { return f.chat }
func (f *fakeContext) Sender() *tele.User { return f.sender }
func (f *fakeContext) Callback() *tele.Callback { return f.update.Callback }
func (f *fakeContext) Text() string { return "" }
func (f *fakeContext) Get(key string) interface{} { return f.store[key] }
func (f *fakeContext) Set(key string, v interface{}) {
	f.store[key] = v
}

func (f *fakeContext) Send(what interface{}, _ ...interface{}) error {
	f.sent = append(f.sent, what.(string))
	return nil
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	for _, r := range resp {
		f.responses = append(f.responses, r.Text)
	}
	return nil
}

func TestAuthorizedChatPassesThrough(t *testing.T) {
	called := false
	h := AuthorizedChatMiddleware(AuthOptions{ChatID: 100})(func(tele.Context) error {
		called = true
		return nil
	})
	c := newFakeContext(100, false)
	if err := h(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called || len(c.sent) != 0 {
		t.Fatalf("called=%v sent=%v", called, c.sent)
	}
}

func TestUnauthorizedChatIsDenied(t *testing.T) {
	for _, callback := range []bool{false, true} {
		called := false
		h := AuthorizedChatMiddleware(AuthOptions{ChatID: 100})(func(tele.Context) error {
			called = true
			return nil
		})
		c := newFakeContext(200, callback)
		if err := h(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if called {
			t.Fatal("handler must not run for an unauthorized chat")
		}
		if len(c.sent) != 1 || c.sent[0] != UnauthorizedText {
			t.Fatalf("sent = %v", c.sent)
		}
		if callback && (len(c.responses) != 1 || c.responses[0] != UnauthorizedText) {
			t.Fatalf("callback responses = %v", c.responses)
		}
	}
}

func TestAuthFallsBackToSender(t *testing.T) {
	c := newFakeContext(0, false)
	c.sender = &tele.User{ID: 100}
	called := false
	h := AuthorizedChatMiddleware(AuthOptions{ChatID: 100})(func(tele.Context) error {
		called = true
		return nil
	})
	_ = h(c)
	if !called {
		t.Fatal("sender id should be used when the update has no chat")
	}
}

func TestRecoverMiddleware(t *testing.T) {
	h := RecoverMiddleware(func(tele.Context) error { panic("boom") })
	if err := h(newFakeContext(1, false)); err == nil {
		t.Fatal("expected panic converted to error")
	}
	want := errors.New("plain")
	h = RecoverMiddleware(func(tele.Context) error { return want })
	if err := h(newFakeContext(1, false)); !errors.Is(err, want) {
		t.Fatalf("err = %v", err)
	}
}

func TestRateLimit(t *testing.T) {
	calls := 0
	limited := 0
	h := RateLimitMiddleware(RateLimitOptions{
		Interval:  time.Hour,
		Exclude:   map[string]struct{}{"callback": {}},
		OnLimited: func(tele.Context) error { limited++; return nil },
	})(func(tele.Context) error { calls++; return nil })

	_ = h(newFakeContext(5, false))
	_ = h(newFakeContext(5, false))
	_ = h(newFakeContext(5, true))
	_ = h(newFakeContext(6, false))
	if calls != 3 || limited != 1 {
		t.Fatalf("calls=%d limited=%d", calls, limited)
	}
}

func TestMessageMetricsCounters(t *testing.T) {
	c := newFakeContext(1, false)
	h := MessageMetricsMiddleware(func(c tele.Context) error {
		_ = c.Send("one")
		return c.Send("two", &tele.ReplyMarkup{})
	})
	if err := h(c); err != nil {
		t.Fatal(err)
	}
	msgs, kb := GetCounters(c)
	if msgs != 2 || !kb {
		t.Fatalf("msgs=%d kb=%v", msgs, kb)
	}
}
