package telegram

import (
	"strings"
	"time"

	coreconfig "github.com/m3rciful/ipbot/core/config"
	"github.com/m3rciful/ipbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// DefaultMiddlewares builds the global chain: recover, request logging, the
// authorized-chat gate, optional rate limiting and metrics.
func DefaultMiddlewares(cfg *coreconfig.Config, onLimited tele.HandlerFunc) []Middleware {
	mws := []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "logger", Use: middleware.LoggerMiddleware},
	}
	if cfg == nil {
		return append(mws, Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware})
	}

	mws = append(mws, Middleware{
		Name: "auth",
		Use:  middleware.AuthorizedChatMiddleware(middleware.AuthOptions{ChatID: cfg.Telegram.AuthorizedChatID}),
	})

	if interval := time.Duration(cfg.RateLimit.IntervalMS) * time.Millisecond; interval > 0 {
		ex := make(map[string]struct{}, len(cfg.RateLimit.ExcludeUpdates))
		for _, t := range cfg.RateLimit.ExcludeUpdates {
			ex[strings.ToLower(t)] = struct{}{}
		}
		mws = append(mws, Middleware{
			Name: "rate_limit",
			Use: middleware.RateLimitMiddleware(middleware.RateLimitOptions{
				Interval:  interval,
				Exclude:   ex,
				OnLimited: onLimited,
			}),
		})
	}

	return append(mws, Middleware{Name: "metrics", Use: middleware.MessageMetricsMiddleware})
}
