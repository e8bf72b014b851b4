package space

import (
	"math"

	"github.com/1siamBot/shooter-engine/engine/core"
)

// Entry is one collider registered in the grid
type Entry struct {
	ID     core.EntityID
	X, Y   float64
	Radius float64
	Layer  core.Mask
}

type cellKey struct{ X, Y int }

// Grid is a uniform-cell broadphase over circular colliders. Entries are
// indexed by center cell; queries widen their range by the largest
// registered radius. Rebuild once per tick before casting queries.
type Grid struct {
	CellSize  float64
	cells     map[cellKey][]Entry
	maxRadius float64
}

// NewGrid creates a grid with the given cell size in world units
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 2.0
	}
	return &Grid{
		CellSize: cellSize,
		cells:    make(map[cellKey][]Entry),
	}
}

// Rebuild reindexes every entity that has a position and collider
func (g *Grid) Rebuild(w *core.World) {
	for k := range g.cells {
		delete(g.cells, k)
	}
	g.maxRadius = 0
	for _, id := range w.Query(core.CompPosition, core.CompCollider) {
		pos := w.Get(id, core.CompPosition).(*core.Position)
		col := w.Get(id, core.CompCollider).(*core.Collider)
		g.Insert(Entry{ID: id, X: pos.X, Y: pos.Y, Radius: col.Radius, Layer: col.Layer})
	}
}

// Insert adds an entry by its center cell
func (g *Grid) Insert(e Entry) {
	k := g.keyAt(e.X, e.Y)
	g.cells[k] = append(g.cells[k], e)
	if e.Radius > g.maxRadius {
		g.maxRadius = e.Radius
	}
}

func (g *Grid) keyAt(x, y float64) cellKey {
	return cellKey{int(math.Floor(x / g.CellSize)), int(math.Floor(y / g.CellSize))}
}

// visit walks entries in all cells covering the expanded AABB
func (g *Grid) visit(minX, minY, maxX, maxY float64, fn func(Entry)) {
	pad := g.maxRadius
	k0 := g.keyAt(minX-pad, minY-pad)
	k1 := g.keyAt(maxX+pad, maxY+pad)
	for cy := k0.Y; cy <= k1.Y; cy++ {
		for cx := k0.X; cx <= k1.X; cx++ {
			for _, e := range g.cells[cellKey{cx, cy}] {
				fn(e)
			}
		}
	}
}

// QueryRadius returns entries whose CENTER lies within r of (x, y),
// filtered by layer mask. Area damage uses this: an entity farther than
// the radius is excluded by the query, not by damage clamping.
func (g *Grid) QueryRadius(x, y, r float64, mask core.Mask) []Entry {
	var out []Entry
	g.visit(x-r, y-r, x+r, y+r, func(e Entry) {
		if e.Layer&mask == 0 {
			return
		}
		dx, dy := e.X-x, e.Y-y
		if dx*dx+dy*dy <= r*r {
			out = append(out, e)
		}
	})
	return out
}

// QueryOverlap returns entries whose collider circle overlaps the
// circle (x, y, r), filtered by layer mask
func (g *Grid) QueryOverlap(x, y, r float64, mask core.Mask) []Entry {
	var out []Entry
	g.visit(x-r, y-r, x+r, y+r, func(e Entry) {
		if e.Layer&mask == 0 {
			return
		}
		dx, dy := e.X-x, e.Y-y
		reach := r + e.Radius
		if dx*dx+dy*dy <= reach*reach {
			out = append(out, e)
		}
	})
	return out
}
