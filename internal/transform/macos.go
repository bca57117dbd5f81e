package transform

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Ismailco/PWA2Native/internal/iconutil"
	"github.com/Ismailco/PWA2Native/internal/paths"
	"github.com/Ismailco/PWA2Native/internal/raster"
)

// MacOSContentRatio is the share of the canvas the artwork fills.
const MacOSContentRatio = 0.8

// MacOSImage renders one iconset image of size px into out: the source
// is scaled to 80% of px, clipped to a rounded rectangle and centred on a
// transparent canvas.
func MacOSImage(src, out string, px int) bool {
	if err := macOSImage(src, out, px); err != nil {
		slog.Warn("macos icon failed", "size", px, "file", filepath.Base(out), "src", src, "err", err)
		return false
	}
	return true
}

func macOSImage(src, out string, px int) error {
	inner := int(MacOSContentRatio * float64(px))
	if inner <= 0 {
		return fmt.Errorf("transform: macos: invalid size %d", px)
	}
	img, err := raster.Load(src)
	if err != nil {
		return err
	}
	resized := raster.Resize(img, inner, inner)
	masked := raster.ApplyMask(resized, raster.RoundedRectMask(inner, inner, float64(inner/4)))
	return raster.SavePNG(out, raster.PasteCenter(raster.Canvas(px, raster.Transparent), masked))
}

// PackIconset packs iconsetDir into out and removes iconsetDir whether or
// not packing succeeded.
func PackIconset(p iconutil.Packer, iconsetDir, out string) (err error) {
	defer func() {
		if rerr := os.RemoveAll(iconsetDir); rerr != nil && err == nil {
			err = fmt.Errorf("transform: remove %s: %w", iconsetDir, rerr)
		}
	}()
	if err := os.MkdirAll(filepath.Dir(out), paths.DirPerm); err != nil {
		return fmt.Errorf("transform: macos: %w", err)
	}
	return iconutil.Pack(p, iconsetDir, out)
}

// MacOSIconset renders every MacOSEntries image of src into iconsetDir
// and returns how many were written.
func MacOSIconset(src, iconsetDir string) int {
	n := 0
	for _, e := range MacOSEntries {
		if MacOSImage(src, filepath.Join(iconsetDir, e.FileName()), e.Pixels()) {
			n++
		}
	}
	return n
}
