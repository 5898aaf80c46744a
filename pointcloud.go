package bytestats

import (
	"fmt"
	"math"
)

// Point cloud defaults.
const (
	DefaultThreshold = 4
	DefaultScale     = 100
)

// Vec3 is a point or colour in three components.
type Vec3 struct {
	X, Y, Z float32
}

// PointCloudOptions controls which triple bins become points and how they
// are shaded.
type PointCloudOptions struct {
	// Threshold is the minimum bin count plotted. Must be at least 1.
	Threshold uint32

	// Scale divides bin counts before shading. Must be positive.
	Scale float32

	// Color selects the heat palette instead of grey levels.
	Color bool
}

// DefaultPointCloudOptions returns the threshold, scale and palette the
// viewer starts with.
func DefaultPointCloudOptions() PointCloudOptions {
	return PointCloudOptions{Threshold: DefaultThreshold, Scale: DefaultScale, Color: true}
}

// Cloud is a shaded point set inside the cube [-1, 1]^3. Colors[i] shades
// Vertices[i]; colour components are in [0, 1].
type Cloud struct {
	Vertices []Vec3
	Colors   []Vec3
}

// Len returns the number of points.
func (c *Cloud) Len() int {
	return len(c.Vertices)
}

// PointCloud turns every triple bin with at least opts.Threshold counts into
// a point. Bin (a, b, c) lands at (a, b, c)/255 mapped onto [-1, 1].
func PointCloud(h Histogram3D, opts PointCloudOptions) (*Cloud, error) {
	if len(h) != Bins3D {
		return nil, fmt.Errorf("%w: histogram has %d bins, want %d", ErrInvalidArgument, len(h), Bins3D)
	}
	if opts.Threshold < 1 || !(opts.Scale > 0) {
		return nil, fmt.Errorf("%w: threshold %d scale %v", ErrInvalidArgument, opts.Threshold, opts.Scale)
	}

	n := 0
	for _, c := range h {
		if c >= opts.Threshold {
			n++
		}
	}

	cloud := &Cloud{
		Vertices: make([]Vec3, 0, n),
		Colors:   make([]Vec3, 0, n),
	}
	for i, c := range h {
		if c < opts.Threshold {
			continue
		}
		cloud.Vertices = append(cloud.Vertices, Vec3{
			X: unitAxis(i >> 16),
			Y: unitAxis(i >> 8 & 0xff),
			Z: unitAxis(i & 0xff),
		})
		cloud.Colors = append(cloud.Colors, shade(float32(c)/opts.Scale, opts.Color))
	}

	Logger().Debug("bytestats: point cloud", "points", n, "threshold", opts.Threshold)
	return cloud, nil
}

func unitAxis(v int) float32 {
	return float32(v)/255*2 - 1
}

// shade maps a scaled count onto a colour.
func shade(v float32, heat bool) Vec3 {
	cc := min(v+0.2, 1)
	if !heat {
		return Vec3{cc, cc, cc}
	}

	switch {
	case cc < 0.7 && cc > 0.375:
		g := (cc-0.35)/(0.7-0.35)*(1-0.35) + 0.35
		rb := float32(math.Sqrt(float64(cc / 3)))
		return Vec3{rb, g, rb}
	case cc < 0.7:
		return Vec3{cc, cc, cc}
	}

	r := float32(1)
	if cc <= 0.7 {
		r = cc * 2
	}
	return Vec3{r, 1 - (cc-0.7)*2, 0}
}
