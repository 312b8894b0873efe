package middleware

import (
	"log/slog"

	"github.com/m3rciful/ipbot/core/logger"
	"github.com/m3rciful/ipbot/core/metrics"
	tghelpers "github.com/m3rciful/ipbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// UnauthorizedText is the fixed reply sent to any other chat.
const UnauthorizedText = "Unauthorized access."

// AuthOptions defines the single principal allowed to use the bot.
type AuthOptions struct {
	ChatID   int64
	OnReject tele.HandlerFunc
}

// AuthorizedChatMiddleware lets through only events from opts.ChatID.
// Everything else gets UnauthorizedText and never reaches a handler.
func AuthorizedChatMiddleware(opts AuthOptions) tele.MiddlewareFunc {
	reject := opts.OnReject
	if reject == nil {
		reject = denyUnauthorized
	}
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chatID := tghelpers.ChatID(c)
			if opts.ChatID != 0 && chatID == opts.ChatID {
				return next(c)
			}

			metrics.IncAuthDenied()
			ctx := tghelpers.WithHandler(c, "auth")
			logger.Warn(ctx, "tg", "auth.denied",
				slog.String("status", "denied"),
				slog.Int64("chat_id", chatID),
			)
			return reject(c)
		}
	}
}

func denyUnauthorized(c tele.Context) error {
	if c.Callback() != nil {
		_ = c.Respond(&tele.CallbackResponse{Text: UnauthorizedText})
	}
	if c.Chat() == nil && c.Sender() == nil {
		return nil
	}
	return c.Send(UnauthorizedText)
}
