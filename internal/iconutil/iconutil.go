// Package iconutil packs a macOS .iconset directory into an .icns file.
package iconutil

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jackmordaunt/icns/v3"

	"github.com/Ismailco/PWA2Native/internal/paths"
	"github.com/Ismailco/PWA2Native/internal/raster"
)

// ErrNotFound means the iconutil binary is not on PATH.
var ErrNotFound = errors.New("iconutil not found on PATH")

// Packer selects how an iconset is packed.
type Packer int

const (
	// Auto uses iconutil when available and the native encoder otherwise.
	Auto Packer = iota
	External
	Native
)

// members maps iconset file names to the ICNS slots the native encoder
// writes. Names without a slot are left out of native output.
var members = []struct {
	file string
	typ  icns.OsType
}{
	{"icon_16x16@2x.png", icns.OsType{ID: "ic11", Size: 32}},
	{"icon_32x32@2x.png", icns.OsType{ID: "ic12", Size: 64}},
	{"icon_128x128.png", icns.OsType{ID: "ic07", Size: 128}},
	{"icon_128x128@2x.png", icns.OsType{ID: "ic13", Size: 256}},
	{"icon_256x256.png", icns.OsType{ID: "ic08", Size: 256}},
	{"icon_256x256@2x.png", icns.OsType{ID: "ic14", Size: 512}},
	{"icon_512x512.png", icns.OsType{ID: "ic09", Size: 512}},
	{"icon_512x512@2x.png", icns.OsType{ID: "ic10", Size: 1024}},
}

// Pack writes out from the PNGs in iconsetDir using p.
func Pack(p Packer, iconsetDir, out string) error {
	switch p {
	case External:
		return RunIconutil(iconsetDir, out)
	case Native:
		return PackNative(iconsetDir, out)
	}
	err := RunIconutil(iconsetDir, out)
	if errors.Is(err, ErrNotFound) {
		return PackNative(iconsetDir, out)
	}
	return err
}

// RunIconutil runs `iconutil -c icns`. Returns ErrNotFound if iconutil
// is not on PATH.
func RunIconutil(iconsetDir, out string) error {
	if _, err := exec.LookPath("iconutil"); err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	cmd := exec.Command("iconutil", "-c", "icns", iconsetDir, "-o", out)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("iconutil: %w\n%s", err, output)
	}
	return nil
}

// PackNative encodes the iconset without external tools. At least one
// recognised member must be present.
func PackNative(iconsetDir, out string) error {
	set := &icns.IconSet{}
	for _, m := range members {
		p := filepath.Join(iconsetDir, m.file)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		img, err := raster.Load(p)
		if err != nil {
			return fmt.Errorf("iconutil: %w", err)
		}
		if b := img.Bounds(); b.Dx() != int(m.typ.Size) || b.Dy() != int(m.typ.Size) {
			return fmt.Errorf("iconutil: %s is %dx%d, want %d", m.file, b.Dx(), b.Dy(), m.typ.Size)
		}
		set.Icons = append(set.Icons, &icns.Icon{Type: m.typ, Image: img})
	}
	if len(set.Icons) == 0 {
		return fmt.Errorf("iconutil: no usable images in %s", iconsetDir)
	}
	var buf bytes.Buffer
	if _, err := set.WriteTo(&buf); err != nil {
		return fmt.Errorf("iconutil: encode: %w", err)
	}
	return paths.AtomicWrite(out, buf.Bytes())
}
