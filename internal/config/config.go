package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/Ismailco/PWA2Native/internal/paths"
)

// DefaultOutput is the output directory used when none is configured.
const DefaultOutput = "./dist"

// DefaultFetchTimeout is the per-request timeout in seconds.
const DefaultFetchTimeout = 30

// DefaultPackageID is the reverse-DNS prefix for generated bundle ids.
const DefaultPackageID = "com.pwa.wrapper"

// DefaultAppVersion is written into generated build files.
const DefaultAppVersion = "1.0"

// SupportedPlatforms lists the targets in the order they are packaged.
var SupportedPlatforms = []string{"android", "ios", "macos", "windows"}

// MQTT holds broker settings for publishing run summaries.
type MQTT struct {
	Broker   string `json:"broker,omitempty" yaml:"broker" env:"PWA2NATIVE_MQTT_BROKER"`
	Topic    string `json:"topic,omitempty" yaml:"topic" env:"PWA2NATIVE_MQTT_TOPIC"`
	ClientID string `json:"client_id,omitempty" yaml:"client_id" env:"PWA2NATIVE_MQTT_CLIENT_ID"`
	Username string `json:"username,omitempty" yaml:"username" env:"PWA2NATIVE_MQTT_USERNAME"`
	Password string `json:"password,omitempty" yaml:"password" env:"PWA2NATIVE_MQTT_PASSWORD"`
	QoS      byte   `json:"qos,omitempty" yaml:"qos" env:"PWA2NATIVE_MQTT_QOS"`
	Retain   bool   `json:"retain,omitempty" yaml:"retain" env:"PWA2NATIVE_MQTT_RETAIN"`
}

// Webhook holds an HTTP endpoint that receives the run summary as JSON.
type Webhook struct {
	URL     string            `json:"url,omitempty" yaml:"url" env:"PWA2NATIVE_WEBHOOK_URL"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers"`
}

// Telegram holds Bot API credentials.
type Telegram struct {
	Token  string `json:"token,omitempty" yaml:"token" env:"PWA2NATIVE_TELEGRAM_TOKEN"`
	ChatID string `json:"chat_id,omitempty" yaml:"chat_id" env:"PWA2NATIVE_TELEGRAM_CHAT_ID"`
}

// Notify groups the optional run-summary destinations.
type Notify struct {
	MQTT     MQTT     `json:"mqtt,omitempty" yaml:"mqtt"`
	Webhook  Webhook  `json:"webhook,omitempty" yaml:"webhook"`
	Slack    string   `json:"slack_webhook,omitempty" yaml:"slack_webhook" env:"PWA2NATIVE_SLACK_WEBHOOK"`
	Discord  string   `json:"discord_webhook,omitempty" yaml:"discord_webhook" env:"PWA2NATIVE_DISCORD_WEBHOOK"`
	Telegram Telegram `json:"telegram,omitempty" yaml:"telegram"`
}

// Config holds every setting the packager reads. Zero values are replaced
// by defaults when decoding.
type Config struct {
	Output              string   `json:"output,omitempty" yaml:"output" env:"PWA2NATIVE_OUTPUT"`
	Platforms           []string `json:"platforms,omitempty" yaml:"platforms" env:"PWA2NATIVE_PLATFORMS" envSeparator:","`
	Workers             int      `json:"workers,omitempty" yaml:"workers" env:"PWA2NATIVE_WORKERS"`
	FetchTimeoutSeconds int      `json:"fetch_timeout_seconds,omitempty" yaml:"fetch_timeout_seconds" env:"PWA2NATIVE_FETCH_TIMEOUT"`
	PackageID           string   `json:"package_id,omitempty" yaml:"package_id" env:"PWA2NATIVE_PACKAGE_ID"`
	AppVersion          string   `json:"app_version,omitempty" yaml:"app_version" env:"PWA2NATIVE_APP_VERSION"`
	GradleWrapper       bool     `json:"gradle_wrapper,omitempty" yaml:"gradle_wrapper" env:"PWA2NATIVE_GRADLE_WRAPPER"`
	History             bool     `json:"history" yaml:"history" env:"PWA2NATIVE_HISTORY"`
	LogLevel            string   `json:"log_level,omitempty" yaml:"log_level" env:"PWA2NATIVE_LOG_LEVEL"`
	PostRun             string   `json:"post_run,omitempty" yaml:"post_run" env:"PWA2NATIVE_POST_RUN"`
	PostRunTimeout      int      `json:"post_run_timeout_seconds,omitempty" yaml:"post_run_timeout_seconds" env:"PWA2NATIVE_POST_RUN_TIMEOUT"`
	Notify              Notify   `json:"notify,omitempty" yaml:"notify"`
}

// Default returns a Config populated with defaults.
func Default() Config {
	return Config{
		Output:              DefaultOutput,
		Platforms:           append([]string(nil), SupportedPlatforms...),
		Workers:             1,
		FetchTimeoutSeconds: DefaultFetchTimeout,
		PackageID:           DefaultPackageID,
		AppVersion:          DefaultAppVersion,
		History:             true,
		LogLevel:            "info",
		PostRunTimeout:      -1,
	}
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (c *Config) UnmarshalJSON(data []byte) error {
	*c = Default()
	type Alias Config
	return json.Unmarshal(data, (*Alias)(c))
}

// PostRunLimit returns the hook timeout as a duration; 0 means none
// and a negative value the hook default.
func (c Config) PostRunLimit() time.Duration {
	if c.PostRunTimeout < 0 {
		return -1
	}
	return time.Duration(c.PostRunTimeout) * time.Second
}

// FetchTimeout returns the per-request timeout as a duration.
func (c Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Validate checks values that would otherwise fail deep inside a run.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.FetchTimeoutSeconds < 1 {
		return fmt.Errorf("fetch_timeout_seconds must be positive, got %d", c.FetchTimeoutSeconds)
	}
	if c.Output == "" {
		return fmt.Errorf("output directory is empty")
	}
	if !validPackageID(c.PackageID) {
		return fmt.Errorf("package_id %q is not a dotted identifier (e.g. com.example.app)", c.PackageID)
	}
	if _, unknown := SplitPlatforms(c.Platforms); len(unknown) > 0 {
		return fmt.Errorf("unknown platform(s): %s", strings.Join(unknown, ", "))
	}
	if c.Notify.MQTT.Broker != "" && c.Notify.MQTT.Topic == "" {
		return fmt.Errorf("notify.mqtt.topic is required when a broker is set")
	}
	if (c.Notify.Telegram.Token == "") != (c.Notify.Telegram.ChatID == "") {
		return fmt.Errorf("notify.telegram needs both token and chat_id")
	}
	if c.Notify.MQTT.QoS > 2 {
		return fmt.Errorf("notify.mqtt.qos must be 0, 1 or 2, got %d", c.Notify.MQTT.QoS)
	}
	return nil
}

// SplitPlatforms normalises a platform list. "all" expands to every
// supported platform. Duplicates are dropped; order follows the input.
func SplitPlatforms(list []string) (known, unknown []string) {
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			known = append(known, p)
		}
	}
	for _, raw := range list {
		for _, p := range strings.Split(raw, ",") {
			p = strings.ToLower(strings.TrimSpace(p))
			switch {
			case p == "":
			case p == "all":
				for _, sp := range SupportedPlatforms {
					add(sp)
				}
			case isSupported(p):
				add(p)
			default:
				unknown = append(unknown, p)
			}
		}
	}
	return known, unknown
}

func isSupported(p string) bool {
	for _, sp := range SupportedPlatforms {
		if sp == p {
			return true
		}
	}
	return false
}

func validPackageID(id string) bool {
	parts := strings.Split(id, ".")
	if len(parts) < 2 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
		for i, r := range p {
			letter := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
			if i == 0 && !letter {
				return false
			}
			if !letter && !(r >= '0' && r <= '9') {
				return false
			}
		}
	}
	return true
}

// Load reads and parses a config file, then applies environment
// overrides. It tries, in order:
//  1. explicitPath (if non-empty; a missing file is an error)
//  2. pwa2native.json/.yaml next to the running binary
//  3. ~/.config/pwa2native/pwa2native.json/.yaml
//
// When no file is found the defaults are used. The returned path is empty
// in that case.
func Load(explicitPath string) (Config, string, error) {
	cfg, path, err := loadFile(explicitPath)
	if err != nil {
		return Config{}, "", err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

func loadFile(explicitPath string) (Config, string, error) {
	if explicitPath != "" {
		cfg, err := readConfig(explicitPath)
		return cfg, explicitPath, err
	}

	var dirs []string
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	if home, err := os.UserHomeDir(); err == nil {
		if runtime.GOOS == "windows" {
			dirs = append(dirs, filepath.Join(home, "AppData", "Roaming", paths.AppDirName))
		} else {
			dirs = append(dirs, filepath.Join(home, ".config", paths.AppDirName))
		}
	}

	for _, dir := range dirs {
		for _, name := range paths.ConfigCandidates {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				cfg, err := readConfig(p)
				return cfg, p, err
			}
		}
	}
	return Default(), "", nil
}

// ApplyEnv overrides cfg with PWA2NATIVE_* environment variables.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	return cfg, nil
}
