package router

import (
	"log/slog"
	"time"

	tg "github.com/m3rciful/ipbot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// CallbackRoute routes every callback through the registry. The key comes
// from the registry's callback key function.
func CallbackRoute(reg *tg.Registry) tg.Route {
	handler := func(c tele.Context) error {
		if c.Callback() == nil {
			return nil
		}
		start := time.Now()
		key := reg.CallbackKey(c)
		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("cb_key", key)}

		cbHandler, ok := reg.GetCallback(key)
		if !ok {
			extras = append(extras, slog.String("reason", "not_found"))
			return handleWithSummary(c, name, start, func() error {
				if fallback := reg.CallbackNotFound(); fallback != nil {
					return fallback(c)
				}
				return nil
			}, extras...)
		}

		// Clear the client's loading indicator before running the handler.
		_ = c.Respond()
		return handleWithSummary(c, name, start, func() error {
			return cbHandler(c)
		}, extras...)
	}
	return tg.Route{Endpoint: tele.OnCallback, Handler: handler}
}
