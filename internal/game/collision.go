package game

import "math"

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// circleRectIntersect reports whether a circle overlaps an axis-aligned
// rectangle in the XZ plane. The circle centre is clamped to the rectangle to
// find the nearest point; contact at exactly radius distance counts as a hit.
func circleRectIntersect(c Vec2, r float64, rect Rect) bool {
	nx := clampFloat(c.X, rect.X, rect.X+rect.W)
	nz := clampFloat(c.Z, rect.Z, rect.Z+rect.H)
	dx := c.X - nx
	dz := c.Z - nz
	return dx*dx+dz*dz <= r*r
}

// circleCircleIntersect reports whether two circles overlap, boundary
// inclusive.
func circleCircleIntersect(c1 Vec2, r1 float64, c2 Vec2, r2 float64) bool {
	dx := c1.X - c2.X
	dz := c1.Z - c2.Z
	sum := r1 + r2
	return dx*dx+dz*dz <= sum*sum
}

// collidesAny reports whether a circle overlaps any wall segment. This is the
// sole movement-blocking predicate for both the player and the pursuers.
func collidesAny(c Vec2, r float64, walls []WallSegment) bool {
	for i := range walls {
		if circleRectIntersect(c, r, walls[i].Rect) {
			return true
		}
	}
	return false
}

// slideMove resolves a displacement against the wall set one axis at a time:
// the X component is applied if it causes no collision, then the Z component
// from the possibly-updated position. A diagonal push into a wall therefore
// degrades to sliding along it instead of stopping dead.
func slideMove(pos Vec2, step Vec2, radius float64, walls []WallSegment) Vec2 {
	testX := Vec2{pos.X + step.X, pos.Z}
	if !collidesAny(testX, radius, walls) {
		pos.X = testX.X
	}
	testZ := Vec2{pos.X, pos.Z + step.Z}
	if !collidesAny(testZ, radius, walls) {
		pos.Z = testZ.Z
	}
	return pos
}

// normalize2 returns the unit vector of v and its original length. Vectors
// shorter than epsilon are returned unchanged with ok=false.
func normalize2(v Vec2) (Vec2, float64, bool) {
	l := math.Sqrt(v.X*v.X + v.Z*v.Z)
	if l < 1e-4 {
		return v, l, false
	}
	return Vec2{v.X / l, v.Z / l}, l, true
}
