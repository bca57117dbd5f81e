package history

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Format writes a human-readable listing of runs to w.
func Format(w io.Writer, runs []Run, now time.Time) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	for _, r := range runs {
		status := "ok"
		if !r.OK() {
			status = "partial"
		}
		fmt.Fprintf(w, "%s  %s  %s  (%s, %s)\n",
			r.ID[:min(8, len(r.ID))], humanize.RelTime(r.Started, now, "ago", "from now"),
			r.AppName, r.URL, status)
		fmt.Fprintf(w, "    icons: %d fetched, %d failed  took %s  -> %s\n",
			r.IconsFetched, r.IconsFailed, r.Duration.Round(time.Millisecond), r.Output)
		for _, p := range r.Platforms {
			line := fmt.Sprintf("    %-8s %-4s icons=%d", p.Platform, okWord(p.OK), p.IconsProduced)
			if p.IconsFailed > 0 {
				line += fmt.Sprintf(" failed=%d", p.IconsFailed)
			}
			if p.Error != "" {
				line += "  " + p.Error
			}
			fmt.Fprintln(w, strings.TrimRight(line, " "))
		}
	}
}

func okWord(ok bool) string {
	if ok {
		return "ok"
	}
	return "FAIL"
}

// Headline is a one-line summary of r for chat messages, e.g.
// "Demo: android ok, ios FAIL (2 icons fetched)".
func Headline(r Run) string {
	parts := make([]string, 0, len(r.Platforms))
	for _, p := range r.Platforms {
		parts = append(parts, p.Platform+" "+okWord(p.OK))
	}
	if len(parts) == 0 {
		parts = append(parts, "nothing packaged")
	}
	return fmt.Sprintf("%s: %s (%d icons fetched)", r.AppName, strings.Join(parts, ", "), r.IconsFetched)
}
