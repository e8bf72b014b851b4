package core

import "math"

// ---- Position ----

// Position represents a world position in 2D space
type Position struct {
	X, Y   float64 // world units
	Facing float64 // direction in radians (0 = +X)
}

func (p *Position) Type() ComponentType { return CompPosition }

// DistanceTo returns euclidean distance to another position
func (p *Position) DistanceTo(other *Position) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleTo returns the angle from this position to another
func (p *Position) AngleTo(other *Position) float64 {
	return math.Atan2(other.Y-p.Y, other.X-p.X)
}

// ---- Sprite ----

// Sprite represents rendering info for the debug renderer
type Sprite struct {
	Color   uint32  // RGBA
	Radius  float64 // draw radius in world units
	Visible bool
	ZOrder  int
}

func (s *Sprite) Type() ComponentType { return CompSprite }

// ---- Health ----

// Health represents hit points
type Health struct {
	Current float64
	Max     float64
}

func (h *Health) Type() ComponentType { return CompHealth }

func (h *Health) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

// ---- Collision ----

// Mask is a collision layer bitmask used to filter spatial queries
type Mask uint8

const (
	LayerActor Mask = 1 << iota
	LayerWall
	LayerPickup
)

// Collider is a circular collision body
type Collider struct {
	Radius float64
	Layer  Mask
}

func (c *Collider) Type() ComponentType { return CompCollider }

// ---- Ownership ----

// Owner identifies which player controls this entity
type Owner struct {
	PlayerID int
	TeamID   int
}

func (o *Owner) Type() ComponentType { return CompOwner }

// ---- Pickups ----

type PickupKind uint8

const (
	PickupAmmo PickupKind = iota
	PickupWeapon
)

// Pickup grants ammo or a weapon on contact
type Pickup struct {
	Kind   PickupKind
	Weapon string // arsenal key
	Amount int    // reserve rounds granted (ammo pickups)
}

func (p *Pickup) Type() ComponentType { return CompPickup }

// ---- Transient effects ----

type EffectKind uint8

const (
	FxMuzzle EffectKind = iota
	FxImpact
	FxExplosion
)

// Effect is a short-lived visual marker (muzzle flash, impact, blast ring)
type Effect struct {
	Kind   EffectKind
	Radius float64 // full size in world units
	TTL    float64 // seconds remaining
	MaxTTL float64
}

func (e *Effect) Type() ComponentType { return CompEffect }

// Progress returns 0 at spawn and 1 just before expiry
func (e *Effect) Progress() float64 {
	if e.MaxTTL <= 0 {
		return 1
	}
	p := 1 - e.TTL/e.MaxTTL
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
