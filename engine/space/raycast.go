package space

import (
	"math"

	"github.com/1siamBot/shooter-engine/engine/core"
)

// Hit is the nearest blocking intersection found by a segment cast
type Hit struct {
	ID   core.EntityID
	X, Y float64
	T    float64 // fraction along the segment [0,1]
}

// CastSegment casts from (x0,y0) to (x1,y1) and returns the nearest
// entry whose circle (inflated by inflate) the segment enters, filtered
// by layer mask and the keep callback. Circles the segment starts
// inside are skipped; the discrete overlap query covers those, the same
// division of labor physics raycasts have.
func (g *Grid) CastSegment(x0, y0, x1, y1, inflate float64, mask core.Mask, keep func(core.EntityID) bool) (Hit, bool) {
	dx, dy := x1-x0, y1-y0

	best := Hit{T: math.MaxFloat64}
	found := false

	g.visit(math.Min(x0, x1), math.Min(y0, y1), math.Max(x0, x1), math.Max(y0, y1), func(e Entry) {
		if e.Layer&mask == 0 {
			return
		}
		if keep != nil && !keep(e.ID) {
			return
		}
		r := e.Radius + inflate
		fx, fy := x0-e.X, y0-e.Y
		if fx*fx+fy*fy <= r*r {
			return // started inside
		}
		a := dx*dx + dy*dy
		if a == 0 {
			return
		}
		b := 2 * (fx*dx + fy*dy)
		c := fx*fx + fy*fy - r*r
		disc := b*b - 4*a*c
		if disc < 0 {
			return
		}
		t := (-b - math.Sqrt(disc)) / (2 * a)
		if t < 0 || t > 1 {
			return
		}
		if t < best.T {
			best = Hit{ID: e.ID, X: x0 + dx*t, Y: y0 + dy*t, T: t}
			found = true
		}
	})
	return best, found
}
