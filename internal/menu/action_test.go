package menu

import "testing"

func TestParseAction(t *testing.T) {
	cases := []struct {
		data string
		want Action
	}{
		{"add_ip", Action{Kind: ActionAddIP}},
		{"ip_list", Action{Kind: ActionListIPs}},
		{"do_nothing", Action{Kind: ActionDoNothing}},
		{"ip_8.8.8.8", Action{Kind: ActionShowIP, Addr: "8.8.8.8"}},
		{"delete_10.0.0.5", Action{Kind: ActionDeleteIP, Addr: "10.0.0.5"}},
		{"confirm_add_192.168.1.1", Action{Kind: ActionConfirmAdd, Addr: "192.168.1.1"}},
		{"ip_010.000.000.005", Action{Kind: ActionShowIP, Addr: "10.0.0.5"}},
		{"ip_999.1.1.1", Action{}},
		{"delete_", Action{}},
		{"confirm_add_abc", Action{}},
		{"ip_", Action{}},
		{"something", Action{}},
		{"", Action{}},
	}
	for _, tc := range cases {
		if got := ParseAction(tc.data); got != tc.want {
			t.Errorf("ParseAction(%q) = %+v, expected %+v", tc.data, got, tc.want)
		}
	}
}

func TestActionDataRoundTrip(t *testing.T) {
	for _, a := range []Action{
		{Kind: ActionAddIP},
		{Kind: ActionListIPs},
		{Kind: ActionDoNothing},
		Show("1.2.3.4"),
		Delete("1.2.3.4"),
		ConfirmAdd("10.0.0.5"),
	} {
		if got := ParseAction(a.Data()); got != a {
			t.Errorf("round trip of %+v = %+v", a, got)
		}
	}
	if (Action{}).Data() != "" {
		t.Error("unknown action must encode to empty data")
	}
}

func TestMenus(t *testing.T) {
	main := MainMenu()
	if len(main) != 1 || main[0][0].Action.Kind != ActionAddIP || main[0][1].Action.Kind != ActionListIPs {
		t.Fatalf("main menu = %+v", main)
	}
	confirm := ConfirmMenu("10.0.0.5")
	if confirm[0][0].Action.Data() != "confirm_add_10.0.0.5" || confirm[0][1].Action.Data() != "do_nothing" {
		t.Fatalf("confirm menu = %+v", confirm)
	}
	list := ListMenu([]string{"8.8.8.8", "1.1.1.1"})
	if len(list) != 3 || list[1][0].Action.Data() != "ip_1.1.1.1" {
		t.Fatalf("list menu = %+v", list)
	}
	if (Reply{Text: "x"}).HasKeyboard() || !WithMain("x").HasKeyboard() {
		t.Fatal("HasKeyboard mismatch")
	}
}
