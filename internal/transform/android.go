package transform

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Ismailco/PWA2Native/internal/paths"
	"github.com/Ismailco/PWA2Native/internal/raster"
)

// AndroidContentRatio is the share of the canvas the icon artwork fills.
const AndroidContentRatio = 0.75

// Android writes the adaptive-icon foreground, background and composite
// preview for one density into dir.
func Android(src, dir string, size int, bg color.Color) bool {
	if err := AndroidLayers(src, dir, size, bg); err != nil {
		slog.Warn("android icon failed", "size", size, "dir", dir, "src", src, "err", err)
		return false
	}
	return true
}

// AndroidLayers is Android with the error returned.
func AndroidLayers(src, dir string, size int, bg color.Color) error {
	if size <= 0 {
		return fmt.Errorf("transform: android: invalid size %d", size)
	}
	img, err := raster.Load(src)
	if err != nil {
		return err
	}

	inner := int(AndroidContentRatio * float64(size))
	fg := raster.PasteCenter(raster.Canvas(size, raster.Transparent), raster.FitSquare(img, inner))
	fg = raster.ApplyMask(fg, raster.CircleMask(size))
	back := raster.Canvas(size, bg)
	composite := raster.Composite(back, fg)

	if err := os.MkdirAll(dir, paths.DirPerm); err != nil {
		return fmt.Errorf("transform: android: %w", err)
	}
	if err := raster.SavePNG(filepath.Join(dir, AndroidForeground), fg); err != nil {
		return err
	}
	if err := raster.SavePNG(filepath.Join(dir, AndroidBackground), back); err != nil {
		return err
	}
	return raster.SavePNG(filepath.Join(dir, AndroidComposite), composite)
}
