package systems

// DistanceSq returns the squared distance between two points.
func DistanceSq(x1, y1, x2, y2 float32) float32 {
	dx := x1 - x2
	dy := y1 - y2
	return dx*dx + dy*dy
}

// Culled reports whether a point is strictly farther than maxDistance
// from the reference point. An object at exactly maxDistance stays.
// Squared distances throughout; no square roots.
func Culled(x, y, refX, refY, maxDistance float32) bool {
	return DistanceSq(x, y, refX, refY) > maxDistance*maxDistance
}
