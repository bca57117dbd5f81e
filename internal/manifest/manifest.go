// Package manifest parses W3C web app manifests into an immutable value.
package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"net/http"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/Ismailco/PWA2Native/internal/httputil"
)

// DefaultAppName is used when neither a flag nor the manifest names the app.
const DefaultAppName = "PWA App"

// maxManifestSize caps how much of a manifest response is read.
const maxManifestSize = 1 << 20

// ErrNotFound is returned by Fetch when no manifest could be located.
var ErrNotFound = errors.New("manifest not found")

// Icon is one entry of the manifest "icons" array.
type Icon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose"`
}

// Shortcut is one entry of the manifest "shortcuts" array.
type Shortcut struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Manifest holds the top-level fields the packager uses. Construct it with
// Parse; the accessors return copies so callers cannot mutate it.
type Manifest struct {
	name            string
	shortName       string
	description     string
	startURL        string
	display         string
	themeColor      string
	backgroundColor string
	icons           []Icon
	shortcuts       []Shortcut
}

type rawManifest struct {
	Name            string     `json:"name"`
	ShortName       string     `json:"short_name"`
	Description     string     `json:"description"`
	StartURL        string     `json:"start_url"`
	Display         string     `json:"display"`
	ThemeColor      string     `json:"theme_color"`
	BackgroundColor string     `json:"background_color"`
	Icons           []Icon     `json:"icons"`
	Shortcuts       []Shortcut `json:"shortcuts"`
}

// Parse decodes manifest JSON. Unknown keys are ignored.
func Parse(data []byte) (Manifest, error) {
	var raw rawManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		return Manifest{}, fmt.Errorf("manifest: parse: %w", err)
	}
	return Manifest{
		name:            strings.TrimSpace(raw.Name),
		shortName:       strings.TrimSpace(raw.ShortName),
		description:     raw.Description,
		startURL:        raw.StartURL,
		display:         raw.Display,
		themeColor:      raw.ThemeColor,
		backgroundColor: raw.BackgroundColor,
		icons:           append([]Icon(nil), raw.Icons...),
		shortcuts:       append([]Shortcut(nil), raw.Shortcuts...),
	}, nil
}

func (m Manifest) Name() string            { return m.name }
func (m Manifest) ShortName() string       { return m.shortName }
func (m Manifest) Description() string     { return m.description }
func (m Manifest) StartURL() string        { return m.startURL }
func (m Manifest) Display() string         { return m.display }
func (m Manifest) ThemeColor() string      { return m.themeColor }
func (m Manifest) BackgroundColor() string { return m.backgroundColor }

// Icons returns a copy of the icon entries in manifest order.
func (m Manifest) Icons() []Icon { return append([]Icon(nil), m.icons...) }

// Shortcuts returns a copy of the shortcut entries, skipping any
// without a name or url.
func (m Manifest) Shortcuts() []Shortcut {
	var out []Shortcut
	for _, s := range m.shortcuts {
		if s.Name != "" && s.URL != "" {
			out = append(out, s)
		}
	}
	return out
}

// AppName resolves the display name: override, then name, then
// short_name, then DefaultAppName.
func (m Manifest) AppName(override string) string {
	for _, n := range []string{strings.TrimSpace(override), m.name, m.shortName} {
		if n != "" {
			return n
		}
	}
	return DefaultAppName
}

// Background returns the parsed background_color, white when absent or
// unparseable.
func (m Manifest) Background() color.NRGBA {
	c, err := ParseColor(m.backgroundColor)
	if err != nil {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	return c
}

// ParseColor accepts "#rgb", "#rrggbb" and CSS named colours.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("manifest: empty colour")
	}
	if strings.HasPrefix(s, "#") {
		if len(s) != 4 && len(s) != 7 {
			return color.NRGBA{}, fmt.Errorf("manifest: colour %q: want #rgb or #rrggbb", s)
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("manifest: colour %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return color.NRGBA{R: named.R, G: named.G, B: named.B, A: 0xff}, nil
	}
	return color.NRGBA{}, fmt.Errorf("manifest: unknown colour %q", s)
}

// Fetch downloads and parses the manifest at manifestURL. A 404 is
// reported as ErrNotFound so callers can try discovery.
func Fetch(ctx context.Context, client *http.Client, manifestURL string) (Manifest, error) {
	resp, err := httputil.Get(ctx, client, manifestURL)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: fetch %s: %w", manifestURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Manifest{}, fmt.Errorf("manifest: %s: %w", manifestURL, ErrNotFound)
	}
	if err := httputil.CheckStatus(resp, "manifest"); err != nil {
		return Manifest{}, err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestSize))
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: read %s: %w", manifestURL, err)
	}
	return Parse(data)
}
