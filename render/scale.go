package render

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Scale resizes src to width×height with nearest-neighbour sampling, which
// keeps histogram bins as crisp blocks.
func Scale(src image.Image, width, height int) *image.RGBA {
	return scaleWith(xdraw.NearestNeighbor, src, width, height)
}

// ScaleSmooth resizes src with Catmull-Rom filtering.
func ScaleSmooth(src image.Image, width, height int) *image.RGBA {
	return scaleWith(xdraw.CatmullRom, src, width, height)
}

func scaleWith(s xdraw.Scaler, src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, max(width, 1), max(height, 1)))
	s.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
