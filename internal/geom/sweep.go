package geom

import "math"

// SweepHit reports the earliest contact of a swept motion against a
// static target. T is the fraction of the motion segment at which the
// contact occurs.
type SweepHit struct {
	T       float64
	Contact Vec3
}

// SweepSphere intersects a sphere of the given radius moving from
// `from` to `to` against the static point `target`. It returns the
// earliest root t in [0,1] and the sphere center at contact. A
// degenerate sweep (zero motion), a negative discriminant, or roots
// entirely outside [0,1] all report a miss.
func SweepSphere(from, to, target Vec3, radius float64) (SweepHit, bool) {
	dx := to.X - from.X
	dy := to.Y - from.Y
	dz := to.Z - from.Z

	fx := from.X - target.X
	fy := from.Y - target.Y
	fz := from.Z - target.Z

	a := dx*dx + dy*dy + dz*dz
	if a == 0 {
		return SweepHit{}, false
	}
	b := 2 * (fx*dx + fy*dy + fz*dz)
	c := fx*fx + fy*fy + fz*fz - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return SweepHit{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	t0 := (-b - sqrtD) / (2 * a)
	t1 := (-b + sqrtD) / (2 * a)

	t := t0
	if t < 0 || t > 1 {
		t = t1
	}
	if t < 0 || t > 1 {
		return SweepHit{}, false
	}

	return SweepHit{
		T: t,
		Contact: Vec3{
			X: from.X + dx*t,
			Y: from.Y + dy*t,
			Z: from.Z + dz*t,
		},
	}, true
}

// SegmentIntersectsCircle reports whether the floor-plane segment from a
// to b crosses the circle at center with the given radius. It shares the
// quadratic form of SweepSphere; a zero-length segment only intersects
// when its point lies inside the circle.
func SegmentIntersectsCircle(a, b, center Vec2, radius float64) bool {
	dx := b.X - a.X
	dz := b.Z - a.Z

	fx := a.X - center.X
	fz := a.Z - center.Z

	qa := dx*dx + dz*dz
	if qa == 0 {
		return fx*fx+fz*fz < radius*radius
	}
	qb := 2 * (fx*dx + fz*dz)
	qc := fx*fx + fz*fz - radius*radius

	discriminant := qb*qb - 4*qa*qc
	if discriminant < 0 {
		return false
	}

	sqrtD := math.Sqrt(discriminant)
	t0 := (-qb - sqrtD) / (2 * qa)
	t1 := (-qb + sqrtD) / (2 * qa)

	return (t0 >= 0 && t0 <= 1) || (t1 >= 0 && t1 <= 1) || (t0 < 0 && t1 > 1)
}
