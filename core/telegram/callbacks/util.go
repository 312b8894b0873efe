// Package callbacks reads callback payloads from Telegram updates.
package callbacks

import (
	"strings"

	tele "gopkg.in/telebot.v4"
)

// uniquePrefix is the marker telebot puts in front of data produced by markup.Data.
const uniquePrefix = "\f"

// ParseCallbackData splits callback data into telebot's unique and payload
// parts. Plain data without the telebot marker is returned as the payload
// with an empty unique.
func ParseCallbackData(cb *tele.Callback) (unique, payload string) {
	if cb == nil {
		return "", ""
	}
	if cb.Unique != "" {
		return cb.Unique, cb.Data
	}
	raw, ok := strings.CutPrefix(cb.Data, uniquePrefix)
	if !ok {
		return "", strings.TrimSpace(cb.Data)
	}
	unique, payload, _ = strings.Cut(raw, "|")
	return strings.TrimSpace(unique), payload
}

// Data returns the callback payload of c, or "" for non-callback updates.
func Data(c tele.Context) string {
	_, payload := ParseCallbackData(c.Callback())
	return payload
}

// Key returns the telebot unique when present, otherwise the raw payload.
func Key(c tele.Context) string {
	unique, payload := ParseCallbackData(c.Callback())
	if unique != "" {
		return unique
	}
	return payload
}
