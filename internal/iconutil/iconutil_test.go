package iconutil

import (
	"bytes"
	"errors"
	"image"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/jackmordaunt/icns/v3"

	"github.com/Ismailco/PWA2Native/internal/raster"
)

func writeIconset(t *testing.T, names map[string]int) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "icon.iconset")
	for name, size := range names {
		img := raster.Canvas(size, image.White.C)
		if err := raster.SavePNG(filepath.Join(dir, name), img); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestRunIconutilMissing(t *testing.T) {
	if _, err := exec.LookPath("iconutil"); err == nil {
		t.Skip("iconutil is installed, skipping missing-iconutil test")
	}
	err := RunIconutil("in.iconset", "out.icns")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRunIconutilBadInput(t *testing.T) {
	if _, err := exec.LookPath("iconutil"); err != nil {
		t.Skip("iconutil not installed, skipping bad-input test")
	}
	if err := RunIconutil("/nonexistent/x.iconset", filepath.Join(t.TempDir(), "x.icns")); err == nil {
		t.Fatal("expected error for nonexistent iconset")
	}
}

func TestPackNative(t *testing.T) {
	dir := writeIconset(t, map[string]int{
		"icon_16x16.png":      16,
		"icon_16x16@2x.png":   32,
		"icon_128x128.png":    128,
		"icon_512x512@2x.png": 1024,
	})
	out := filepath.Join(t.TempDir(), "icon.icns")
	if err := Pack(Native, dir, out); err != nil {
		t.Fatalf("Pack: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("icns")) {
		t.Fatalf("missing icns magic, got %q", data[:4])
	}
	imgs, err := icns.DecodeAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(imgs) != 3 {
		t.Errorf("decoded %d images, want 3 (16x16 has no slot)", len(imgs))
	}
}

func TestPackNativeWrongSize(t *testing.T) {
	dir := writeIconset(t, map[string]int{"icon_128x128.png": 100})
	if err := PackNative(dir, filepath.Join(t.TempDir(), "x.icns")); err == nil {
		t.Fatal("expected size mismatch error")
	}
}

func TestPackNativeEmpty(t *testing.T) {
	dir := writeIconset(t, map[string]int{"icon_16x16.png": 16})
	if err := PackNative(dir, filepath.Join(t.TempDir(), "x.icns")); err == nil {
		t.Fatal("expected error for iconset without usable members")
	}
}

func TestPackAutoFallsBack(t *testing.T) {
	if _, err := exec.LookPath("iconutil"); err == nil {
		t.Skip("iconutil is installed, fallback not exercised")
	}
	dir := writeIconset(t, map[string]int{"icon_256x256.png": 256})
	out := filepath.Join(t.TempDir(), "icon.icns")
	if err := Pack(Auto, dir, out); err != nil {
		t.Fatalf("Pack(Auto): %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("icns not written: %v", err)
	}
}
