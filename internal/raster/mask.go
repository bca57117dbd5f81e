package raster

import (
	"image"

	"github.com/fogleman/gg"
)

// CircleMask returns an anti-aliased filled circle inscribed in a
// size×size square.
func CircleMask(size int) *image.Alpha {
	dc := gg.NewContext(size, size)
	r := float64(size) / 2
	dc.DrawCircle(r, r, r)
	dc.SetRGB(1, 1, 1)
	dc.Fill()
	return dc.AsMask()
}

// RoundedRectMask returns a w×h rounded rectangle with corner radius r.
func RoundedRectMask(w, h int, r float64) *image.Alpha {
	dc := gg.NewContext(w, h)
	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), r)
	dc.SetRGB(1, 1, 1)
	dc.Fill()
	return dc.AsMask()
}
