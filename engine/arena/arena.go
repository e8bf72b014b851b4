package arena

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// SpawnPos defines a player start position
type SpawnPos struct {
	PlayerSlot int     `json:"player_slot"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}

// Arena is a rectangular combat area of unit cells. Blocked cells are
// solid walls that stop projectiles.
type Arena struct {
	Name    string `json:"name"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Blocked []bool `json:"blocked"`

	SpawnPoints []SpawnPos `json:"spawn_points,omitempty"`
	Description string     `json:"description,omitempty"`
}

// NewArena creates an open arena
func NewArena(name string, width, height int) *Arena {
	return &Arena{
		Name:    name,
		Width:   width,
		Height:  height,
		Blocked: make([]bool, width*height),
	}
}

// InBounds checks if cell coordinates are within the arena
func (a *Arena) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < a.Width && y < a.Height
}

// BlockedAt reports whether the cell at (x, y) is a wall.
// Cells outside the arena are open.
func (a *Arena) BlockedAt(x, y int) bool {
	if !a.InBounds(x, y) {
		return false
	}
	return a.Blocked[y*a.Width+x]
}

// SetBlocked marks a single cell
func (a *Arena) SetBlocked(x, y int, blocked bool) {
	if a.InBounds(x, y) {
		a.Blocked[y*a.Width+x] = blocked
	}
}

// BlockRect walls in a rectangular region (inclusive bounds)
func (a *Arena) BlockRect(x1, y1, x2, y2 int) {
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			a.SetBlocked(x, y, true)
		}
	}
}

// BlockBorder walls the outer edge of the arena
func (a *Arena) BlockBorder() {
	a.BlockRect(0, 0, a.Width-1, 0)
	a.BlockRect(0, a.Height-1, a.Width-1, a.Height-1)
	a.BlockRect(0, 0, 0, a.Height-1)
	a.BlockRect(a.Width-1, 0, a.Width-1, a.Height-1)
}

// CastSegment walks the segment from (x0,y0) to (x1,y1) through the
// cell grid and returns the first wall crossing: hit point and the
// fraction t along the segment. A segment starting inside a wall hits
// at t = 0.
func (a *Arena) CastSegment(x0, y0, x1, y1 float64) (float64, float64, float64, bool) {
	cx, cy := int(math.Floor(x0)), int(math.Floor(y0))
	if a.BlockedAt(cx, cy) {
		return x0, y0, 0, true
	}

	dx, dy := x1-x0, y1-y0
	stepX, stepY := 0, 0
	tMaxX, tMaxY := math.Inf(1), math.Inf(1)
	tDeltaX, tDeltaY := math.Inf(1), math.Inf(1)

	if dx > 0 {
		stepX = 1
		tMaxX = (float64(cx+1) - x0) / dx
		tDeltaX = 1 / dx
	} else if dx < 0 {
		stepX = -1
		tMaxX = (float64(cx) - x0) / dx
		tDeltaX = -1 / dx
	}
	if dy > 0 {
		stepY = 1
		tMaxY = (float64(cy+1) - y0) / dy
		tDeltaY = 1 / dy
	} else if dy < 0 {
		stepY = -1
		tMaxY = (float64(cy) - y0) / dy
		tDeltaY = -1 / dy
	}

	for {
		var t float64
		if tMaxX < tMaxY {
			t = tMaxX
			if t > 1 {
				return 0, 0, 0, false
			}
			cx += stepX
			tMaxX += tDeltaX
		} else {
			t = tMaxY
			if t > 1 {
				return 0, 0, 0, false
			}
			cy += stepY
			tMaxY += tDeltaY
		}
		if a.BlockedAt(cx, cy) {
			return x0 + dx*t, y0 + dy*t, t, true
		}
	}
}

// SaveJSON saves the arena to a JSON file
func (a *Arena) SaveJSON(path string) error {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadJSON loads an arena from a JSON file
func LoadJSON(path string) (*Arena, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var a Arena
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	if a.Width <= 0 || a.Height <= 0 {
		return nil, fmt.Errorf("arena %s: bad dimensions %dx%d", path, a.Width, a.Height)
	}
	if len(a.Blocked) != a.Width*a.Height {
		return nil, fmt.Errorf("arena %s: %d cells for %dx%d grid", path, len(a.Blocked), a.Width, a.Height)
	}
	return &a, nil
}
