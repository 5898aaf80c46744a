package bytestats

import "math"

// Motion is a set of camera movements held down during one tick.
type Motion uint8

const (
	// MoveUp lowers AngleX, the rotation about X, by AngleStep.
	MoveUp Motion = 1 << iota
	// MoveRight raises AngleY, the rotation about Y, by AngleStep.
	MoveRight
	// MoveDown raises AngleX by AngleStep.
	MoveDown
	// MoveLeft lowers AngleY by AngleStep.
	MoveLeft
	// ScaleUp grows every axis by ScaleStep.
	ScaleUp
	// ScaleDown shrinks every axis by ScaleStep until it drops below
	// MinScaleStep.
	ScaleDown
	// ScaleUpZ with ScaleUp stretches the Z axis only.
	ScaleUpZ
	// ScaleDownZ with ScaleDown shrinks the Z axis only.
	ScaleDownZ
)

// Camera step sizes. Angles are in degrees; WheelFactor converts a wheel
// delta into scale.
const (
	AngleStep    = 0.7
	ScaleStep    = 0.01
	MinScaleStep = 0.05
	WheelFactor  = 0.0005
	MinWheelZoom = 0.0001
)

// Camera orients the point cloud: rotation about X then Y, in degrees, and a
// per-axis scale. The zero value is degenerate; start from NewCamera.
type Camera struct {
	AngleX, AngleY         float32
	ScaleX, ScaleY, ScaleZ float32
}

// NewCamera returns an unrotated camera at unit scale.
func NewCamera() Camera {
	return Camera{ScaleX: 1, ScaleY: 1, ScaleZ: 1}
}

// Step applies one tick of the held motions.
func (c *Camera) Step(m Motion) {
	if m&MoveUp != 0 {
		c.AngleX -= AngleStep
	}
	if m&MoveRight != 0 {
		c.AngleY += AngleStep
	}
	if m&MoveDown != 0 {
		c.AngleX += AngleStep
	}
	if m&MoveLeft != 0 {
		c.AngleY -= AngleStep
	}

	if m&ScaleUp != 0 {
		if m&ScaleUpZ == 0 {
			c.ScaleX += ScaleStep
			c.ScaleY += ScaleStep
		}
		c.ScaleZ += ScaleStep
	}
	if m&ScaleDown != 0 {
		if m&ScaleDownZ == 0 {
			shrink(&c.ScaleX)
			shrink(&c.ScaleY)
		}
		shrink(&c.ScaleZ)
	}
}

// shrink steps s down unless it already sits below MinScaleStep.
func shrink(s *float32) {
	if *s >= MinScaleStep {
		*s -= ScaleStep
	}
}

// Drag rotates by a pointer movement of (dx, dy) pixels, one degree each.
func (c *Camera) Drag(dx, dy int) {
	c.AngleX += float32(dy)
	c.AngleY += float32(dx)
}

// Zoom sets a uniform scale from a wheel delta. Zooms that would drop the
// scale below MinWheelZoom are ignored.
func (c *Camera) Zoom(delta float32) {
	s := c.ScaleX + delta*WheelFactor
	if s >= MinWheelZoom {
		c.ScaleX, c.ScaleY, c.ScaleZ = s, s, s
	}
}

// Transform scales v, rotates it about Y and then about X.
func (c Camera) Transform(v Vec3) Vec3 {
	x := float64(v.X * c.ScaleX)
	y := float64(v.Y * c.ScaleY)
	z := float64(v.Z * c.ScaleZ)

	sy, cy := math.Sincos(float64(c.AngleY) * math.Pi / 180)
	x, z = x*cy+z*sy, -x*sy+z*cy

	sx, cx := math.Sincos(float64(c.AngleX) * math.Pi / 180)
	y, z = y*cx-z*sx, y*sx+z*cx

	return Vec3{float32(x), float32(y), float32(z)}
}
