package plasma

import (
	"math"

	"plasma/internal/vec"
)

// Steps is the fixed number of accumulation steps per pixel.
const Steps = 8

// glowTint spreads the vertical glow across the color channels.
var glowTint = vec.V4(-1, 1, 2, 0)

// Field evaluates the color field for pixel coordinate fc on a canvas of
// resolution r at time t. The result is nominally in [-1, 1] per channel; W
// is accumulated alongside the others but carries no color.
func Field(fc, r vec.Vec2, t float32) vec.Vec4 {
	p := normalize(fc, r)
	l := envelope(p)

	v := p.Mul(l)
	var o vec.Vec4
	for i := 1; i <= Steps; i++ {
		iy := float32(i)
		v.AddAssign(v.YX().MulScalar(iy).Add(vec.V2(0, iy)).AddScalar(t).Cos().DivScalar(iy).AddScalar(0.7))
		o.AddAssign(v.XYYX().Sin().AddScalar(1).MulScalar(abs32(v.X - v.Y)))
	}

	return glow(l, p).Div(o).Tanh()
}

// normalize maps fc into height-scaled coordinates centered on the canvas.
func normalize(fc, r vec.Vec2) vec.Vec2 {
	return fc.MulScalar(2).Sub(r).DivScalar(r.Y)
}

// envelope is the radial ring weight; both components are equal.
func envelope(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{}.AddScalar(4 - 4*abs32(0.7-p.Dot(p)))
}

func glow(l, p vec.Vec2) vec.Vec4 {
	return glowTint.ScalarMul(p.Y).ScalarSub(l.X - 4).Exp().MulScalar(5)
}

// Shade converts the first three channels of o to bytes: clamp to [0, 1],
// scale by 255, truncate. NaN maps to 0.
func Shade(o vec.Vec4) (r, g, b uint8) {
	return toByte(o.X), toByte(o.Y), toByte(o.Z)
}

func toByte(c float32) uint8 {
	if !(c > 0) {
		return 0
	}
	if c > 1 {
		c = 1
	}
	return uint8(c * 255)
}

func abs32(x float32) float32 { return float32(math.Abs(float64(x))) }

// Phase returns the animation time of frame out of n frames, in [0, 2π].
func Phase(frame, n int) float32 {
	return float32(frame) / float32(n) * 2 * math.Pi
}
