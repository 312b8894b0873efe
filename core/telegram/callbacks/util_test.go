package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	cases := []struct {
		cb      *tele.Callback
		unique  string
		payload string
	}{
		{nil, "", ""},
		{&tele.Callback{Data: "ip_8.8.8.8"}, "", "ip_8.8.8.8"},
		{&tele.Callback{Data: "\fmenu|add_ip"}, "menu", "add_ip"},
		{&tele.Callback{Data: "\fmenu"}, "menu", ""},
		{&tele.Callback{Unique: "menu", Data: "ip_list"}, "menu", "ip_list"},
	}
	for _, tc := range cases {
		unique, payload := ParseCallbackData(tc.cb)
		if unique != tc.unique || payload != tc.payload {
			t.Errorf("ParseCallbackData(%+v) = %q, %q; expected %q, %q", tc.cb, unique, payload, tc.unique, tc.payload)
		}
	}
}
