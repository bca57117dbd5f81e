// Package discord posts run headlines to a Discord channel webhook.
package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ismailco/PWA2Native/internal/history"
	"github.com/Ismailco/PWA2Native/internal/httputil"
)

// MaxContent is Discord's message length limit.
const MaxContent = 2000

// Send posts a message to a Discord channel via webhook URL. Messages
// longer than MaxContent are truncated.
func Send(ctx context.Context, webhookURL, message string) error {
	if r := []rune(message); len(r) > MaxContent {
		message = string(r[:MaxContent-1]) + "…"
	}
	body, err := json.Marshal(map[string]string{"content": message})
	if err != nil {
		return fmt.Errorf("discord: marshal: %w", err)
	}

	resp, err := httputil.Post(ctx, nil, webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("discord: post: %w", err)
	}
	defer resp.Body.Close()

	return httputil.CheckStatus(resp, "discord: webhook")
}

// SendRun posts the headline of r followed by failing platform errors.
func SendRun(ctx context.Context, webhookURL string, r history.Run) error {
	msg := "**pwa2native** " + history.Headline(r)
	for _, p := range r.Platforms {
		if p.Error != "" {
			msg += fmt.Sprintf("\n- %s: %s", p.Platform, p.Error)
		}
	}
	return Send(ctx, webhookURL, msg)
}
