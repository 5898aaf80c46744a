package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/binvis/bytestats"
)

// Projection of the cloud viewer: 20° vertical field of view with the cube
// pushed 10 units back.
const (
	fieldOfView = 20.0
	eyeDistance = 10.0
	nearPlane   = 5.0
	farPlane    = 100.0
)

// CloudImage projects a point cloud through cam onto a width×height image.
// Nearer points hide farther ones; points outside the view are dropped.
func CloudImage(cloud *bytestats.Cloud, cam bytestats.Camera, width, height int) *image.RGBA {
	width, height = max(width, 1), max(height, 1)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	f := 1 / math.Tan(fieldOfView/2*math.Pi/180)
	aspect := float64(width) / float64(height)

	depth := make([]float64, width*height)
	for i := range depth {
		depth[i] = math.Inf(1)
	}

	for i, v := range cloud.Vertices {
		p := cam.Transform(v)
		dist := eyeDistance - float64(p.Z)
		if dist < nearPlane || dist > farPlane {
			continue
		}

		nx := f / aspect * float64(p.X) / dist
		ny := f * float64(p.Y) / dist
		x := int((nx + 1) / 2 * float64(width))
		y := int((1 - ny) / 2 * float64(height))
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}

		k := y*width + x
		if dist >= depth[k] {
			continue
		}
		depth[k] = dist
		c := cloud.Colors[i]
		img.SetRGBA(x, y, color.RGBA{unitByte(c.X), unitByte(c.Y), unitByte(c.Z), 255})
	}
	return img
}

func unitByte(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}
