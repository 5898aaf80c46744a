package render

import (
	"image"
	"image/color"

	"github.com/binvis/bytestats"
)

// Background is the colour of empty cells.
var Background = color.RGBA{0, 0, 0, 255}

// HeatmapOptions controls how histogram counts map to intensity.
type HeatmapOptions struct {
	// Threshold is the minimum count drawn; smaller bins stay black.
	Threshold uint32

	// Scale divides counts before they are mapped to brightness.
	Scale float32
}

// DefaultHeatmap returns the options the viewer starts with.
func DefaultHeatmap() HeatmapOptions {
	return HeatmapOptions{Threshold: bytestats.DefaultThreshold, Scale: bytestats.DefaultScale}
}

// intensity maps a count onto [0.2, 1], scaled to a byte.
func (o HeatmapOptions) intensity(count uint32) uint8 {
	scale := o.Scale
	if !(scale > 0) {
		scale = 1
	}
	cc := min(float32(count)/scale+0.2, 1)
	return uint8(cc*255 + 0.5)
}

// Histogram2DImage draws a pair histogram as a 256×256 image. Pixel (x, y)
// shows bin (y, x): the row is the first sample of the pair.
func Histogram2DImage(h bytestats.Histogram2D, opts HeatmapOptions) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, bytestats.Bins, bytestats.Bins))
	threshold := max(opts.Threshold, 1)
	for i, count := range h {
		c := Background
		if count >= threshold {
			c = color.RGBA{20, opts.intensity(count), 20, 255}
		}
		img.SetRGBA(i&0xff, i>>8, c)
	}
	return img
}

// OverviewImage draws one pixel per overview cell.
func OverviewImage(o *bytestats.Overview) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, o.Width, o.Height))
	for i, c := range o.Cells {
		img.SetRGBA(i%o.Width, i/o.Width, color.RGBA{c.R, c.G, c.B, 255})
	}
	return img
}

// DotPlotImage draws a dot plot matrix in grey levels. The diagonal always
// matches, so brightness is normalised to the largest off-diagonal cell and
// then boosted by a third.
func DotPlotImage(m *bytestats.DotMatrix) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Size, m.Size))
	peak := max(1, int(float64(m.MaxOffDiagonal())*0.75))
	for i, v := range m.Cells {
		img.Pix[i] = uint8(min(255, int(float32(v)/float32(peak)*255+0.5)))
	}
	return img
}
