package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/Ismailco/PWA2Native/internal/raster"
)

func writeSource(t *testing.T) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+3] = 0xff, 0xff
	}
	p := filepath.Join(t.TempDir(), "src.png")
	if err := raster.SavePNG(p, img); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestRunIOS(t *testing.T) {
	out := filepath.Join(t.TempDir(), "icon.png")
	if err := run([]string{"ios", writeSource(t), out, "120"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	img, err := raster.Load(out)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 120 {
		t.Errorf("width = %d, want 120", img.Bounds().Dx())
	}
}

func TestRunAndroidSingleDensity(t *testing.T) {
	res := t.TempDir()
	if err := run([]string{"android", writeSource(t), res, "96"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(res, "mipmap-xhdpi", "ic_launcher.png")); err != nil {
		t.Error(err)
	}
	if _, err := os.Stat(filepath.Join(res, "mipmap-mdpi")); err == nil {
		t.Error("only the requested density should be written")
	}
	bg, err := raster.Load(filepath.Join(res, "mipmap-xhdpi", "ic_launcher_background.png"))
	if err != nil {
		t.Fatal(err)
	}
	if got := bg.NRGBAAt(0, 0); got != (color.NRGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("background = %v, want white", got)
	}
}

func TestRunErrors(t *testing.T) {
	src := writeSource(t)
	for _, args := range [][]string{
		{"ios"},
		{"linux", src, "out"},
		{"ios", src, "out", "zero"},
		{"windows", filepath.Join(t.TempDir(), "missing.png"), filepath.Join(t.TempDir(), "a.ico")},
	} {
		if err := run(args); err == nil {
			t.Errorf("run(%q) should fail", args)
		}
	}
}
