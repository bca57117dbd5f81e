// Package webhook posts run summaries to an HTTP endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/Ismailco/PWA2Native/internal/config"
	"github.com/Ismailco/PWA2Native/internal/history"
	"github.com/Ismailco/PWA2Native/internal/httputil"
)

// Send posts body to url with the given content type. Custom headers are
// applied after the default Content-Type, so callers can override it.
// Header values are expanded with os.ExpandEnv to support $VAR secrets.
func Send(ctx context.Context, url string, body []byte, contentType string, headers map[string]string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: new request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", httputil.UserAgent)
	for k, v := range headers {
		req.Header.Set(k, os.ExpandEnv(v))
	}

	resp, err := httputil.Client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: post: %w", err)
	}
	defer resp.Body.Close()

	return httputil.CheckStatus(resp, "webhook")
}

// SendRun posts r as JSON to the endpoint in cfg.
func SendRun(ctx context.Context, cfg config.Webhook, r history.Run) error {
	body, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("webhook: encode run: %w", err)
	}
	return Send(ctx, cfg.URL, body, "application/json", cfg.Headers)
}
