package telegram

import (
	"testing"

	"github.com/m3rciful/ipbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noop(tele.Context) error { return nil }

func TestRegistryCommands(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Show the menu"}); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterCommand("/cancel", commands.Command{Handler: noop, Description: "Cancel", Aliases: []string{"stop"}}); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterCommand("/debug", commands.Command{Handler: noop, Description: "Debug", Hidden: true}); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "dup"}); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := reg.RegisterCommand("help", commands.Command{Handler: noop, Description: "no slash"}); err == nil {
		t.Fatal("expected missing slash error")
	}

	visible := reg.ListCommands(true)
	if len(visible) != 2 || visible[0].Text != "cancel" || visible[1].Text != "start" {
		t.Fatalf("visible = %+v", visible)
	}
	if len(reg.ListCommands(false)) != 3 {
		t.Fatal("hidden commands should be listed when asked")
	}

	for text, want := range map[string]string{
		"/start":           "/start",
		"/start@ipbot arg": "/start",
		"/stop":            "/cancel",
	} {
		key, _, ok := reg.LookupCommand(text)
		if !ok || key != want {
			t.Errorf("LookupCommand(%q) = %q, %v", text, key, ok)
		}
	}
	if _, _, ok := reg.LookupCommand("8.8.8.8"); ok {
		t.Fatal("plain text must not resolve to a command")
	}
}

func TestRegistryCallbacks(t *testing.T) {
	reg := NewRegistry()
	if err := reg.RegisterCallback("add_ip", noop); err != nil {
		t.Fatal(err)
	}
	if err := reg.RegisterCallback("add_ip", noop); err == nil {
		t.Fatal("expected duplicate error")
	}
	if err := reg.RegisterCallback("", noop); err == nil {
		t.Fatal("expected invalid key error")
	}
	if _, ok := reg.GetCallback("add_ip"); !ok {
		t.Fatal("callback not found")
	}
	if got := reg.ListCallbacks(); len(got) != 1 || got[0] != "add_ip" {
		t.Fatalf("callbacks = %v", got)
	}
	if reg.CallbackNotFound() == nil {
		t.Fatal("default not-found handler expected")
	}
}
