package transform

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Ismailco/PWA2Native/internal/paths"
	"github.com/Ismailco/PWA2Native/internal/raster"
)

// IOS crops src to fill exactly size×size and writes it to out.
//
// Corners are left square. The asset catalog does not need pre-rounded
// artwork; whether a rounded variant is wanted is still undecided.
func IOS(src, out string, size int) bool {
	if err := iosImage(src, out, size); err != nil {
		slog.Warn("ios icon failed", "size", size, "file", filepath.Base(out), "src", src, "err", err)
		return false
	}
	return true
}

func iosImage(src, out string, size int) error {
	if size <= 0 {
		return fmt.Errorf("transform: ios: invalid size %d", size)
	}
	img, err := raster.Load(src)
	if err != nil {
		return err
	}
	return raster.SavePNG(out, raster.FitSquare(img, size))
}

type contentsImage struct {
	Size     string `json:"size"`
	Idiom    string `json:"idiom"`
	Filename string `json:"filename"`
	Scale    string `json:"scale"`
}

type contentsInfo struct {
	Version int    `json:"version"`
	Author  string `json:"author"`
}

type contents struct {
	Images []contentsImage `json:"images"`
	Info   contentsInfo    `json:"info"`
}

// WriteIOSContents writes Contents.json into dir, listing only the
// entries whose file is in produced.
func WriteIOSContents(dir string, produced map[string]bool) error {
	c := contents{Images: []contentsImage{}, Info: contentsInfo{Version: 1, Author: "pwa2native"}}
	for _, e := range IOSEntries {
		if !produced[e.FileName()] {
			continue
		}
		c.Images = append(c.Images, contentsImage{
			Size:     e.SizeString(),
			Idiom:    e.Idiom,
			Filename: e.FileName(),
			Scale:    e.ScaleString(),
		})
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("transform: ios contents: %w", err)
	}
	return paths.AtomicWrite(filepath.Join(dir, "Contents.json"), append(data, '\n'))
}

// WriteCatalogContents writes the top-level Contents.json of an
// .xcassets directory.
func WriteCatalogContents(dir string) error {
	data, err := json.MarshalIndent(struct {
		Info contentsInfo `json:"info"`
	}{contentsInfo{Version: 1, Author: "pwa2native"}}, "", "  ")
	if err != nil {
		return fmt.Errorf("transform: catalog contents: %w", err)
	}
	return paths.AtomicWrite(filepath.Join(dir, "Contents.json"), append(data, '\n'))
}
