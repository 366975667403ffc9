package geom

// AABB is an axis-aligned rectangular footprint on the floor plane.
type AABB struct {
	MinX float64 `json:"minX"`
	MinZ float64 `json:"minZ"`
	MaxX float64 `json:"maxX"`
	MaxZ float64 `json:"maxZ"`
}

// AABBFromCenter builds a footprint from a center point and half extents.
func AABBFromCenter(center Vec2, halfWidth, halfDepth float64) AABB {
	return AABB{
		MinX: center.X - halfWidth,
		MinZ: center.Z - halfDepth,
		MaxX: center.X + halfWidth,
		MaxZ: center.Z + halfDepth,
	}
}

// Center returns the midpoint of the footprint.
func (b AABB) Center() Vec2 {
	return Vec2{X: (b.MinX + b.MaxX) / 2, Z: (b.MinZ + b.MaxZ) / 2}
}

// Overlaps reports whether two footprints intersect.
func (b AABB) Overlaps(o AABB) bool {
	return b.MinX < o.MaxX && b.MaxX > o.MinX &&
		b.MinZ < o.MaxZ && b.MaxZ > o.MinZ
}

// ContainsPoint reports whether p lies inside the footprint.
func (b AABB) ContainsPoint(p Vec2) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Z >= b.MinZ && p.Z <= b.MaxZ
}

// Contains reports whether o lies entirely inside b.
func (b AABB) Contains(o AABB) bool {
	return o.MinX >= b.MinX && o.MaxX <= b.MaxX &&
		o.MinZ >= b.MinZ && o.MaxZ <= b.MaxZ
}

// ClosestPoint returns the point inside the footprint nearest to p.
func (b AABB) ClosestPoint(p Vec2) Vec2 {
	return Vec2{
		X: Clamp(p.X, b.MinX, b.MaxX),
		Z: Clamp(p.Z, b.MinZ, b.MaxZ),
	}
}

// CircleOverlaps reports whether a circle intersects the footprint.
func (b AABB) CircleOverlaps(center Vec2, radius float64) bool {
	closest := b.ClosestPoint(center)
	return DistSq(center, closest) < radius*radius
}
