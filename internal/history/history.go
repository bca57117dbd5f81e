// Package history records packaging runs so past results can be listed.
package history

import (
	"time"

	"github.com/google/uuid"
)

// PlatformResult is the outcome of packaging one platform.
type PlatformResult struct {
	Platform      string `json:"platform"`
	OK            bool   `json:"ok"`
	Dir           string `json:"dir,omitempty"`
	IconsProduced int    `json:"icons_produced"`
	IconsFailed   int    `json:"icons_failed"`
	Error         string `json:"error,omitempty"`
}

// Run is one invocation of the packager.
type Run struct {
	ID           string           `json:"id"`
	Started      time.Time        `json:"started"`
	Duration     time.Duration    `json:"duration_ns"`
	URL          string           `json:"url"`
	AppName      string           `json:"app_name"`
	Output       string           `json:"output"`
	IconsFetched int              `json:"icons_fetched"`
	IconsFailed  int              `json:"icons_failed"`
	Platforms    []PlatformResult `json:"platforms"`
}

// NewRun starts a run record with a fresh id.
func NewRun(url, appName, output string) Run {
	return Run{
		ID:      uuid.NewString(),
		Started: time.Now(),
		URL:     url,
		AppName: appName,
		Output:  output,
	}
}

// OK reports whether every platform succeeded.
func (r Run) OK() bool {
	for _, p := range r.Platforms {
		if !p.OK {
			return false
		}
	}
	return len(r.Platforms) > 0
}

// Store persists runs.
type Store interface {
	Record(r Run) error
	Runs(days int) ([]Run, error) // 0 = all, newest first
	Clean(days int) (int, error)  // remove runs older than days, return removed count
	Path() string
	Close() error
}

// DayCutoff returns midnight N days ago (inclusive) in the local timezone.
// For days=1 it returns today at midnight, for days=7 it returns 6 days ago, etc.
func DayCutoff(days int) time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -(days - 1))
}
