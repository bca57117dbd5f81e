package transform

import (
	"bytes"
	"fmt"
	"image"
	"log/slog"

	ico "github.com/sergeymakinen/go-ico"

	"github.com/Ismailco/PWA2Native/internal/paths"
	"github.com/Ismailco/PWA2Native/internal/raster"
)

// Windows writes a multi-resolution .ico holding WindowsFrames to out.
// Each frame is the source fitted onto a transparent square.
func Windows(src, out string) bool {
	if err := windowsIcon(src, out); err != nil {
		slog.Warn("windows icon failed", "file", out, "src", src, "err", err)
		return false
	}
	return true
}

func windowsIcon(src, out string) error {
	img, err := raster.Load(src)
	if err != nil {
		return err
	}
	frames := make([]image.Image, 0, len(WindowsFrames))
	for _, size := range WindowsFrames {
		frames = append(frames, raster.Contain(img, size))
	}
	var buf bytes.Buffer
	if err := ico.EncodeAll(&buf, frames); err != nil {
		return fmt.Errorf("transform: windows: encode: %w", err)
	}
	return paths.AtomicWrite(out, buf.Bytes())
}
