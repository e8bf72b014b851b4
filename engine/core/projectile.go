package core

// Projectile is a single in-flight shot. Created at spawn, mutated only
// by position advance and pierce bookkeeping, destroyed on resolution
// or TTL expiry.
type Projectile struct {
	OwnerID   EntityID // shooter, excluded from all hits
	OwnerTeam int

	DirX, DirY float64 // unit direction
	Speed      float64
	Damage     float64
	Radius     float64 // collision radius for the overlap fallback

	HitMask      Mask
	FriendlyFire bool
	AOE          AOEConfig

	Pierce int     // qualifying hits it may pass through before dying
	TTL    float64 // seconds of flight remaining

	// Resolved latches once the projectile has finished: the raycast
	// and overlap paths both check it so a shot never resolves twice.
	Resolved bool
	Pierced  []EntityID // entities already passed through
}

func (p *Projectile) Type() ComponentType { return CompProjectile }

// HasPierced reports whether the projectile already passed through id
func (p *Projectile) HasPierced(id EntityID) bool {
	for _, pid := range p.Pierced {
		if pid == id {
			return true
		}
	}
	return false
}
