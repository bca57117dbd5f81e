package packager

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Ismailco/PWA2Native/internal/config"
	"github.com/Ismailco/PWA2Native/internal/discord"
	"github.com/Ismailco/PWA2Native/internal/history"
	"github.com/Ismailco/PWA2Native/internal/mqtt"
	"github.com/Ismailco/PWA2Native/internal/slack"
	"github.com/Ismailco/PWA2Native/internal/telegram"
	"github.com/Ismailco/PWA2Native/internal/webhook"
)

// Notify publishes the run summary to every configured destination in
// parallel. Destinations without settings are skipped. All failures are
// joined into the returned error.
func Notify(ctx context.Context, cfg config.Notify, run history.Run) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	send := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				mu.Unlock()
			}
		}()
	}

	if cfg.MQTT.Broker != "" {
		send("mqtt", func() error { return mqtt.PublishRun(cfg.MQTT, run) })
	}
	if cfg.Webhook.URL != "" {
		send("webhook", func() error { return webhook.SendRun(ctx, cfg.Webhook, run) })
	}
	if cfg.Slack != "" {
		send("slack", func() error { return slack.SendRun(ctx, cfg.Slack, run) })
	}
	if cfg.Discord != "" {
		send("discord", func() error { return discord.SendRun(ctx, cfg.Discord, run) })
	}
	if cfg.Telegram.Token != "" {
		send("telegram", func() error { return telegram.SendRun(ctx, cfg.Telegram.Token, cfg.Telegram.ChatID, run) })
	}
	wg.Wait()
	return errors.Join(errs...)
}
