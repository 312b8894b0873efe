package telegram

import (
	"testing"
	"time"

	tele "gopkg.in/telebot.v4"
)

func TestBuildPoller(t *testing.T) {
	lp, ok := BuildPoller(PollerOptions{}).(*tele.LongPoller)
	if !ok || lp.Timeout != defaultLongPollTimeout {
		t.Fatalf("default poller = %#v", lp)
	}
	lp, _ = BuildPoller(PollerOptions{RunMode: "longpoll", LongPollTimeoutSeconds: 30}).(*tele.LongPoller)
	if lp == nil || lp.Timeout != 30*time.Second || len(lp.AllowedUpdates) != 2 {
		t.Fatalf("long poller = %#v", lp)
	}
	wh, ok := BuildPoller(PollerOptions{
		RunMode: "Webhook",
		Webhook: WebhookOptions{Listen: "0.0.0.0", Port: 8443, URL: "https://example.org/hook"},
	}).(*tele.Webhook)
	if !ok || wh.Listen != "0.0.0.0:8443" || wh.Endpoint.PublicURL != "https://example.org/hook" {
		t.Fatalf("webhook = %#v", wh)
	}
}
