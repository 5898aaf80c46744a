package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/binvis/bytestats"
)

// PlotOptions controls Plot.
type PlotOptions struct {
	// Min and Max bound the value axis. Equal bounds mean [0, 1].
	Min, Max float64

	// Normalize fits the value axis to the data instead.
	Normalize bool

	// Label is drawn in the top left corner when set.
	Label string
}

// Plot draws values top to bottom over an image of the given size: row y
// averages the values that fall on it and the point's column is the value.
// Rows without values repeat the previous point.
func Plot(values []float64, width, height int, opts PlotOptions) *image.RGBA {
	width, height = max(width, 1), max(height, 1)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	lo, hi := opts.Min, opts.Max
	if opts.Normalize {
		lo, hi = math.Inf(1), math.Inf(-1)
		for _, v := range values {
			lo, hi = min(lo, v), max(hi, v)
		}
		if lo == hi {
			lo, hi = lo-0.5, hi+0.5
		}
	} else if lo == hi {
		lo, hi = 0, 1
	}

	acc := make([]float64, height)
	cnt := make([]int, height)
	for i, v := range values {
		row := int(float64(i)/float64(len(values))*float64(height-1) + 0.5)
		acc[row] += (v - lo) / (hi - lo)
		cnt[row]++
	}

	px, pc := -1, 0
	for y := range height {
		if cnt[y] == 0 && px < 0 {
			continue
		}
		if cnt[y] > 0 {
			na := min(max(acc[y]/float64(cnt[y]), 0), 1)
			px = min(int(na*float64(width-4)+0.5)+2, width-1)
			pc = 20 + int(na*(255-20))
		}
		img.SetRGBA(px, y, plotColor(pc))
	}

	if opts.Label != "" {
		Label(img, 4, 13, opts.Label, color.White)
	}
	return img
}

// plotColor runs from green through blue to red as c rises from 20 to 255.
// Channels wrap around above 127.
func plotColor(c int) color.RGBA {
	if c > 127 {
		return color.RGBA{uint8(c * 2), 0, uint8(255 - c*2), 255}
	}
	return color.RGBA{0, uint8(255 - c*2), uint8(c * 2), 255}
}

// Label draws text with its baseline at (x, y) in the 7×13 fixed font.
func Label(dst draw.Image, x, y int, text string, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// Selection band and border colours.
var (
	BandColor   = color.NRGBA{128, 64, 64, 160}
	BorderColor = color.RGBA{128, 128, 128, 255}
)

// DrawSelection draws the two selection bands across dst.
func DrawSelection(dst draw.Image, sel bytestats.Selection) {
	b := dst.Bounds()
	band := image.NewUniform(BandColor)
	for _, pos := range []float64{sel.Upper, sel.Lower} {
		y := b.Min.Y + int(pos*float64(b.Dy()))
		r := image.Rect(b.Min.X+3, y-2, b.Max.X-3, y+3).Intersect(b)
		draw.Draw(dst, r, band, image.Point{}, draw.Over)
	}
}

// DrawBorder outlines dst with a one pixel frame, which keeps the edge of a
// dark image visible.
func DrawBorder(dst draw.Image) {
	b := dst.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		dst.Set(x, b.Min.Y, BorderColor)
		dst.Set(x, b.Max.Y-1, BorderColor)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		dst.Set(b.Min.X, y, BorderColor)
		dst.Set(b.Max.X-1, y, BorderColor)
	}
}
