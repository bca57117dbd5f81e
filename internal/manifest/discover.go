package manifest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Ismailco/PWA2Native/internal/page"
)

// Discover locates and parses the manifest for the app at baseURL. It
// tries baseURL/manifest.json first and, on a 404, looks for a
// <link rel="manifest"> on the start page. The URL the manifest was
// loaded from is returned alongside it.
func Discover(ctx context.Context, client *http.Client, baseURL string) (Manifest, string, error) {
	baseURL = strings.TrimRight(baseURL, "/")
	direct := baseURL + "/manifest.json"

	m, err := Fetch(ctx, client, direct)
	if err == nil {
		return m, direct, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Manifest{}, "", err
	}
	slog.Debug("no manifest.json, checking start page", "url", baseURL)

	doc, perr := page.Load(ctx, client, baseURL+"/")
	if perr != nil {
		return Manifest{}, "", fmt.Errorf("manifest: discover: %w", perr)
	}
	link, ok := page.ManifestLink(doc, baseURL)
	if !ok {
		return Manifest{}, "", fmt.Errorf("manifest: no manifest link on %s: %w", baseURL, ErrNotFound)
	}
	m, err = Fetch(ctx, client, link)
	if err != nil {
		return Manifest{}, "", err
	}
	return m, link, nil
}
