package geom

import "math"

// Vec2 is a point on the floor plane. Actors live on y = 0, so the
// horizontal axes are X and Z to match the renderer's world space.
type Vec2 struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Vec3 is a full world-space point, used by projectiles that arc.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Floor drops the vertical component.
func (v Vec3) Floor() Vec2 {
	return Vec2{X: v.X, Z: v.Z}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Z: v.Z - o.Z}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Z: v.Z * s}
}

// Length returns the vector magnitude.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Z)
}

// Normalize returns the unit vector, or the zero vector when v has no
// length. Callers relying on a direction must treat the zero result as
// degenerate input and skip the operation.
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / length, Z: v.Z / length}
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Z == 0
}

// Dist returns the exact distance between two floor-plane points.
// Threshold comparisons should prefer DistSq.
func Dist(a, b Vec2) float64 {
	return math.Hypot(a.X-b.X, a.Z-b.Z)
}

// DistSq returns the squared distance between two floor-plane points.
func DistSq(a, b Vec2) float64 {
	dx := a.X - b.X
	dz := a.Z - b.Z
	return dx*dx + dz*dz
}

// Dist3 returns the exact distance between two world-space points.
// Threshold comparisons should prefer DistSq3.
func Dist3(a, b Vec3) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// DistSq3 returns the squared distance between two world-space points.
func DistSq3(a, b Vec3) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return dx*dx + dy*dy + dz*dz
}

// PointInCircle reports whether p lies inside the circle at center with
// the given radius.
func PointInCircle(p, center Vec2, radius float64) bool {
	return DistSq(p, center) < radius*radius
}

// PointInSphere reports whether p lies inside the sphere at center with
// the given radius.
func PointInSphere(p, center Vec3, radius float64) bool {
	return DistSq3(p, center) < radius*radius
}

// Clamp limits value to the range [min, max].
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
