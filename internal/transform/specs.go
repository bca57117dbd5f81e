// Package transform turns a downloaded icon into the images each native
// platform expects. Every exported transform reports success as a bool:
// a failure is logged and affects only the one output it was producing.
package transform

import (
	"fmt"
	"strconv"
)

// Density is one Android launcher-icon bucket.
type Density struct {
	Name string
	Size int
}

// Dir is the mipmap resource directory for the density.
func (d Density) Dir() string { return "mipmap-" + d.Name }

// AndroidDensities are the launcher-icon buckets, smallest first.
var AndroidDensities = []Density{
	{"mdpi", 48},
	{"hdpi", 72},
	{"xhdpi", 96},
	{"xxhdpi", 144},
	{"xxxhdpi", 192},
}

// Android output file names inside each density directory.
const (
	AndroidForeground = "ic_launcher_foreground.png"
	AndroidBackground = "ic_launcher_background.png"
	AndroidComposite  = "ic_launcher.png"
)

// MacEntry is one image of a macOS .iconset.
type MacEntry struct {
	Point int
	Scale int
}

// Pixels is the edge length of the rendered image.
func (e MacEntry) Pixels() int { return e.Point * e.Scale }

// FileName follows the iconset convention, e.g. icon_32x32@2x.png.
func (e MacEntry) FileName() string {
	name := fmt.Sprintf("icon_%dx%d", e.Point, e.Point)
	if e.Scale > 1 {
		name += "@" + strconv.Itoa(e.Scale) + "x"
	}
	return name + ".png"
}

// MacOSEntries lists 16 through 1024 points at 1x and 2x.
var MacOSEntries = func() []MacEntry {
	var out []MacEntry
	for _, p := range []int{16, 32, 64, 128, 256, 512, 1024} {
		out = append(out, MacEntry{p, 1}, MacEntry{p, 2})
	}
	return out
}()

// IOSEntry is one slot of an AppIcon.appiconset.
type IOSEntry struct {
	Point float64
	Scale int
	Idiom string
}

// Pixels is the edge length of the image for the slot.
func (e IOSEntry) Pixels() int { return int(e.Point * float64(e.Scale)) }

// FileName is icon_<pixels>.png. Slots with the same pixel size share a file.
func (e IOSEntry) FileName() string { return "icon_" + strconv.Itoa(e.Pixels()) + ".png" }

// SizeString is the point size as written in Contents.json, e.g. "83.5x83.5".
func (e IOSEntry) SizeString() string {
	p := strconv.FormatFloat(e.Point, 'f', -1, 64)
	return p + "x" + p
}

// ScaleString is e.g. "2x".
func (e IOSEntry) ScaleString() string { return strconv.Itoa(e.Scale) + "x" }

// IOSEntries is the asset-catalog slot list.
var IOSEntries = []IOSEntry{
	{20, 2, "iphone"}, {20, 3, "iphone"},
	{29, 2, "iphone"}, {29, 3, "iphone"},
	{40, 2, "iphone"}, {40, 3, "iphone"},
	{60, 2, "iphone"}, {60, 3, "iphone"},
	{76, 2, "ipad"},
	{83.5, 2, "ipad"},
	{1024, 1, "ios-marketing"},
}

// IOSPixelSizes returns the distinct pixel sizes of IOSEntries in order.
func IOSPixelSizes() []int {
	var out []int
	seen := make(map[int]bool)
	for _, e := range IOSEntries {
		if px := e.Pixels(); !seen[px] {
			seen[px] = true
			out = append(out, px)
		}
	}
	return out
}

// WindowsFrames are the sizes stored in the .ico container.
var WindowsFrames = []int{16, 32, 48, 256}
