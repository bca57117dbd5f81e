// Package slack posts run headlines to a Slack incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ismailco/PWA2Native/internal/history"
	"github.com/Ismailco/PWA2Native/internal/httputil"
)

// Send posts a message to a Slack channel via incoming webhook URL.
func Send(ctx context.Context, webhookURL, message string) error {
	body, err := json.Marshal(map[string]string{"text": message})
	if err != nil {
		return fmt.Errorf("slack: marshal: %w", err)
	}

	resp, err := httputil.Post(ctx, nil, webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack: post: %w", err)
	}
	defer resp.Body.Close()

	return httputil.CheckStatus(resp, "slack: webhook")
}

// SendRun posts the headline of r.
func SendRun(ctx context.Context, webhookURL string, r history.Run) error {
	return Send(ctx, webhookURL, "pwa2native "+history.Headline(r))
}
