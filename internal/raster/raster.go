// Package raster holds the image primitives the platform transforms are
// built from: decoding every format a manifest icon may use, square
// fitting, resampling, alpha masks and deterministic PNG output.
package raster

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	_ "github.com/sergeymakinen/go-ico"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/Ismailco/PWA2Native/internal/paths"
)

// SVGSize is the edge length vector icons are rasterised at.
const SVGSize = 1024

// MaxDimension bounds either edge of a raster image accepted by Check
// and Load.
const MaxDimension = 8192

var (
	// ErrUnsupported is returned when no decoder recognises the data.
	ErrUnsupported = errors.New("raster: unsupported image format")
	// ErrTooLarge is returned for images wider or taller than MaxDimension.
	ErrTooLarge = errors.New("raster: image dimensions too large")
)

// Transparent is the fill of every padding canvas.
var Transparent = color.NRGBA{}

// Decode reads any supported raster format or an SVG document and
// returns it as NRGBA along with the format name.
func Decode(r io.Reader) (*image.NRGBA, string, error) {
	br := bufio.NewReader(r)
	if isSVG(br) {
		img, err := rasterizeSVG(br, SVGSize)
		if err != nil {
			return nil, "svg", err
		}
		return img, "svg", nil
	}
	img, format, err := image.Decode(br)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, "", ErrUnsupported
		}
		return nil, format, fmt.Errorf("raster: decode %s: %w", format, err)
	}
	return imaging.Clone(img), format, nil
}

// Load opens and decodes the image at path. The header is checked
// first so oversized images are rejected before any pixel allocation.
func Load(path string) (*image.NRGBA, error) {
	if _, err := Check(path); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("raster: open: %w", err)
	}
	defer f.Close()
	img, _, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// Check reports whether path holds a decodable image of at most
// MaxDimension on each edge without decoding raster pixel data. SVG
// documents are parsed in full.
func Check(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("raster: open: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if isSVG(br) {
		if _, err := oksvg.ReadIconStream(br, oksvg.IgnoreErrorMode); err != nil {
			return "svg", fmt.Errorf("raster: svg: %w", err)
		}
		return "svg", nil
	}
	cfg, format, err := image.DecodeConfig(br)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return "", ErrUnsupported
		}
		return format, fmt.Errorf("raster: decode %s: %w", format, err)
	}
	if cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return format, fmt.Errorf("%w: %dx%d", ErrTooLarge, cfg.Width, cfg.Height)
	}
	return format, nil
}

func isSVG(br *bufio.Reader) bool {
	head, _ := br.Peek(512)
	s := strings.ToLower(string(bytes.TrimSpace(head)))
	if strings.HasPrefix(s, "<svg") {
		return true
	}
	return (strings.HasPrefix(s, "<?xml") || strings.HasPrefix(s, "<!--") || strings.HasPrefix(s, "<!doctype svg")) &&
		strings.Contains(s, "<svg")
}

func rasterizeSVG(r io.Reader, size int) (*image.NRGBA, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("raster: svg: %w", err)
	}
	w, h := size, size
	if vw, vh := icon.ViewBox.W, icon.ViewBox.H; vw > 0 && vh > 0 {
		if vw > vh {
			h = int(float64(size) * vh / vw)
		} else {
			w = int(float64(size) * vw / vh)
		}
	}
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("raster: svg: degenerate viewBox")
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return imaging.Clone(rgba), nil
}

// Canvas returns a size×size image filled with c.
func Canvas(size int, c color.Color) *image.NRGBA {
	return imaging.New(size, size, c)
}

// FitSquare crops img to a centred square and scales it to size×size
// with a Lanczos filter, so the output is exactly size on both edges.
func FitSquare(img image.Image, size int) *image.NRGBA {
	return imaging.Fill(img, size, size, imaging.Center, imaging.Lanczos)
}

// Contain scales img up or down to fit inside size×size preserving aspect
// ratio and centres it on a transparent square.
func Contain(img image.Image, size int) *image.NRGBA {
	var scaled *image.NRGBA
	if b := img.Bounds(); b.Dx() >= b.Dy() {
		scaled = imaging.Resize(img, size, 0, imaging.Lanczos)
	} else {
		scaled = imaging.Resize(img, 0, size, imaging.Lanczos)
	}
	return PasteCenter(Canvas(size, Transparent), scaled)
}

// Resize scales img to w×h with Catmull-Rom resampling, ignoring aspect.
func Resize(img image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// PasteCenter replaces the centre of bg with img. Pixels are copied,
// not composited, so transparent areas of img stay transparent. The
// leading pad is (bg - img)/2 rounded down, so an odd remainder goes to
// the trailing edge.
func PasteCenter(bg, img image.Image) *image.NRGBA {
	b, s := bg.Bounds(), img.Bounds()
	at := image.Pt(b.Min.X+(b.Dx()-s.Dx())/2, b.Min.Y+(b.Dy()-s.Dy())/2)
	return imaging.Paste(bg, img, at)
}

// Composite draws fg over bg (both the same size) with alpha blending.
func Composite(bg, fg image.Image) *image.NRGBA {
	return imaging.Overlay(bg, fg, image.Point{}, 1.0)
}

// ApplyMask returns img with its alpha multiplied by mask. Existing
// transparency is kept: a pixel is only opaque where both img and mask
// are opaque.
func ApplyMask(img *image.NRGBA, mask *image.Alpha) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	copy(out.Pix, img.Pix)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m := uint32(mask.AlphaAt(x-b.Min.X+mask.Rect.Min.X, y-b.Min.Y+mask.Rect.Min.Y).A)
			i := out.PixOffset(x, y) + 3
			out.Pix[i] = uint8((uint32(out.Pix[i])*m + 127) / 255)
		}
	}
	return out
}

// SavePNG writes img to path atomically. The encoder settings are fixed
// so identical pixels always produce identical bytes.
func SavePNG(path string, img image.Image) error {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return fmt.Errorf("raster: encode %s: %w", path, err)
	}
	return paths.AtomicWrite(path, buf.Bytes())
}
