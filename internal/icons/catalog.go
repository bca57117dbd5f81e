// Package icons catalogs the icons a manifest declares, downloads them,
// and picks the one closest to each size a platform needs.
package icons

import (
	"strconv"
	"strings"

	"github.com/Ismailco/PWA2Native/internal/manifest"
)

// IconDescriptor is one manifest icon. LocalPath is empty until the icon
// has been fetched and verified, and is set at most once.
type IconDescriptor struct {
	Source      string
	Sizes       string
	NominalSize int
	Type        string
	Purpose     string
	LocalPath   string
}

// IconSet keeps manifest order. Duplicates are not removed.
type IconSet []*IconDescriptor

// NewCatalog builds an IconSet from manifest icons. Entries without a
// src are skipped; entries with missing or malformed sizes are kept with
// NominalSize 0.
func NewCatalog(list []manifest.Icon) IconSet {
	set := make(IconSet, 0, len(list))
	for _, ic := range list {
		src := strings.TrimSpace(ic.Src)
		if src == "" {
			continue
		}
		set = append(set, &IconDescriptor{
			Source:      src,
			Sizes:       ic.Sizes,
			NominalSize: ParseNominalSize(ic.Sizes),
			Type:        ic.Type,
			Purpose:     ic.Purpose,
		})
	}
	return set
}

// ParseNominalSize returns the width of the first WxH token in sizes, or
// 0 when there is none. "any" (scalable) also yields 0.
func ParseNominalSize(sizes string) int {
	fields := strings.Fields(sizes)
	if len(fields) == 0 {
		return 0
	}
	w, _, ok := strings.Cut(strings.ToLower(fields[0]), "x")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(w)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// sizeToken is the width part of sizes used in download file names. It
// is always digits or "unknown", never text taken from the manifest.
func sizeToken(sizes string) string {
	if n := ParseNominalSize(sizes); n > 0 {
		return strconv.Itoa(n)
	}
	return "unknown"
}

// Fetched returns the descriptors that have a local file.
func (s IconSet) Fetched() IconSet {
	var out IconSet
	for _, d := range s {
		if d.LocalPath != "" {
			out = append(out, d)
		}
	}
	return out
}
