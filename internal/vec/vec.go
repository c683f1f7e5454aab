// Package vec provides small float32 vector values for per-pixel shading.
//
// Every vector-vector operation is elementwise and every scalar operation
// broadcasts to all components. Swizzles only reorder components.
package vec

import "math"

// Vec2 is a 2-component float32 vector.
type Vec2 struct {
	X, Y float32
}

// Vec4 is a 4-component float32 vector.
type Vec4 struct {
	X, Y, Z, W float32
}

func V2(x, y float32) Vec2       { return Vec2{X: x, Y: y} }
func V4(x, y, z, w float32) Vec4 { return Vec4{X: x, Y: y, Z: z, W: w} }

func (v Vec2) YX() Vec2   { return Vec2{v.Y, v.X} }
func (v Vec2) XYYX() Vec4 { return Vec4{v.X, v.Y, v.Y, v.X} }

func (v Vec2) Dot(o Vec2) float32 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Add(o Vec2) Vec2          { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) AddScalar(s float32) Vec2 { return Vec2{v.X + s, v.Y + s} }
func (v Vec2) Sub(o Vec2) Vec2          { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Mul(o Vec2) Vec2          { return Vec2{v.X * o.X, v.Y * o.Y} }
func (v Vec2) MulScalar(s float32) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Div(o Vec2) Vec2          { return Vec2{v.X / o.X, v.Y / o.Y} }
func (v Vec2) DivScalar(s float32) Vec2 { return Vec2{v.X / s, v.Y / s} }

// ScalarSub returns s - v per component.
func (v Vec2) ScalarSub(s float32) Vec2 { return Vec2{s - v.X, s - v.Y} }

func (v *Vec2) AddAssign(o Vec2) {
	v.X += o.X
	v.Y += o.Y
}

func (v Vec2) Abs() Vec2 { return Vec2{abs(v.X), abs(v.Y)} }
func (v Vec2) Cos() Vec2 { return Vec2{cos(v.X), cos(v.Y)} }
func (v Vec2) Sin() Vec2 { return Vec2{sin(v.X), sin(v.Y)} }

func (v Vec4) Add(o Vec4) Vec4 { return Vec4{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W} }
func (v Vec4) Mul(o Vec4) Vec4 { return Vec4{v.X * o.X, v.Y * o.Y, v.Z * o.Z, v.W * o.W} }
func (v Vec4) Div(o Vec4) Vec4 { return Vec4{v.X / o.X, v.Y / o.Y, v.Z / o.Z, v.W / o.W} }

func (v Vec4) AddScalar(s float32) Vec4 { return Vec4{v.X + s, v.Y + s, v.Z + s, v.W + s} }
func (v Vec4) MulScalar(s float32) Vec4 { return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s} }
func (v Vec4) DivScalar(s float32) Vec4 { return Vec4{v.X / s, v.Y / s, v.Z / s, v.W / s} }

// ScalarSub returns s - v per component.
func (v Vec4) ScalarSub(s float32) Vec4 { return Vec4{s - v.X, s - v.Y, s - v.Z, s - v.W} }

// ScalarMul returns s * v per component.
func (v Vec4) ScalarMul(s float32) Vec4 { return Vec4{s * v.X, s * v.Y, s * v.Z, s * v.W} }

func (v *Vec4) AddAssign(o Vec4) {
	v.X += o.X
	v.Y += o.Y
	v.Z += o.Z
	v.W += o.W
}

func (v Vec4) Abs() Vec4  { return Vec4{abs(v.X), abs(v.Y), abs(v.Z), abs(v.W)} }
func (v Vec4) Sin() Vec4  { return Vec4{sin(v.X), sin(v.Y), sin(v.Z), sin(v.W)} }
func (v Vec4) Exp() Vec4  { return Vec4{exp(v.X), exp(v.Y), exp(v.Z), exp(v.W)} }
func (v Vec4) Tanh() Vec4 { return Vec4{tanh(v.X), tanh(v.Y), tanh(v.Z), tanh(v.W)} }

// Go's math package is float64 only; results are rounded back per component.
func abs(x float32) float32  { return math.Float32frombits(math.Float32bits(x) &^ (1 << 31)) }
func cos(x float32) float32  { return float32(math.Cos(float64(x))) }
func sin(x float32) float32  { return float32(math.Sin(float64(x))) }
func exp(x float32) float32  { return float32(math.Exp(float64(x))) }
func tanh(x float32) float32 { return float32(math.Tanh(float64(x))) }
