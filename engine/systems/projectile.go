package systems

import (
	"math"

	"github.com/1siamBot/shooter-engine/engine/arena"
	"github.com/1siamBot/shooter-engine/engine/core"
	"github.com/1siamBot/shooter-engine/engine/space"
)

// ProjectileSystem advances shots and resolves impacts. Each tick a
// projectile casts a segment over its travel so fast shots cannot
// tunnel through thin targets, with a positional overlap check as the
// fallback for circles the segment starts inside of.
type ProjectileSystem struct {
	EventBus *core.EventBus
	Arena    *arena.Arena // optional tile walls
	grid     *space.Grid
}

func NewProjectileSystem(bus *core.EventBus, ar *arena.Arena) *ProjectileSystem {
	return &ProjectileSystem{
		EventBus: bus,
		Arena:    ar,
		grid:     space.NewGrid(2.0),
	}
}

func (s *ProjectileSystem) Priority() int { return 25 }

func (s *ProjectileSystem) Update(w *core.World, dt float64) {
	s.grid.Rebuild(w)

	for _, id := range w.Query(core.CompPosition, core.CompProjectile) {
		pos := w.Get(id, core.CompPosition).(*core.Position)
		proj := w.Get(id, core.CompProjectile).(*core.Projectile)
		if proj.Resolved {
			continue
		}

		proj.TTL -= dt
		if proj.TTL <= 0 {
			proj.Resolved = true
			w.Destroy(id)
			continue
		}

		s.advance(w, id, pos, proj, dt)
	}
}

func (s *ProjectileSystem) advance(w *core.World, id core.EntityID, pos *core.Position, proj *core.Projectile, dt float64) {
	step := proj.Speed * dt
	sx, sy := pos.X, pos.Y
	ex := sx + proj.DirX*step
	ey := sy + proj.DirY*step

	// Walls block every shot no matter what the weapon targets.
	mask := proj.HitMask | core.LayerWall
	keep := func(tid core.EntityID) bool {
		return s.canHit(w, proj, tid)
	}

	// Cast the travel segment, re-casting past pierced targets.
	maxHits := proj.Pierce + 2
	for i := 0; i < maxHits; i++ {
		hit, hitOK := s.grid.CastSegment(sx, sy, ex, ey, proj.Radius, mask, keep)
		wx, wy, wt, wallOK := s.castWalls(sx, sy, ex, ey)

		if wallOK && (!hitOK || wt <= hit.T) {
			pos.X, pos.Y = wx, wy
			s.strike(w, id, pos, proj, 0)
			return
		}
		if !hitOK {
			break
		}

		pos.X, pos.Y = hit.X, hit.Y
		if s.strike(w, id, pos, proj, hit.ID) {
			return
		}
		sx, sy = hit.X, hit.Y
	}

	pos.X, pos.Y = ex, ey

	// The cast skips circles it starts inside, so a shot spawned
	// overlapping a target still connects here.
	if tid, ok := s.nearestOverlap(w, proj, pos, mask); ok {
		s.strike(w, id, pos, proj, tid)
	}
}

// strike applies a direct hit on tid at the projectile's position.
// tid 0 means a tile wall. Returns true when the projectile resolved
// and false when it pierced through.
func (s *ProjectileSystem) strike(w *core.World, id core.EntityID, pos *core.Position, proj *core.Projectile, tid core.EntityID) bool {
	blocking := tid == 0
	if tid != 0 {
		if col := w.Get(tid, core.CompCollider); col != nil {
			blocking = col.(*core.Collider).Layer&core.LayerWall != 0
		}
		ApplyDamage(w, tid, proj.Damage, s.EventBus)
	}
	if s.EventBus != nil {
		s.EventBus.Emit(core.Event{Type: core.EvtProjectileHit, Tick: w.TickCount,
			Payload: core.HitPayload{Projectile: id, Target: tid, X: pos.X, Y: pos.Y, Damage: proj.Damage}})
	}
	if proj.AOE.Enabled {
		s.explode(w, pos.X, pos.Y, proj, tid)
	}
	if !blocking && proj.Pierce > 0 {
		proj.Pierce--
		proj.Pierced = append(proj.Pierced, tid)
		return false
	}
	proj.Resolved = true
	w.Destroy(id)
	return true
}

// explode applies area damage around (x, y). The directly-struck
// entity takes the blast at zero distance unless the weapon excludes
// it; everyone else falls off linearly to zero at the edge.
func (s *ProjectileSystem) explode(w *core.World, x, y float64, proj *core.Projectile, direct core.EntityID) {
	cfg := proj.AOE
	for _, e := range s.grid.QueryRadius(x, y, cfg.Radius, proj.HitMask) {
		if e.ID == proj.OwnerID {
			continue
		}
		if e.ID == direct && cfg.ExcludeDirect {
			continue
		}
		if !cfg.FriendlyFire && s.allied(w, proj, e.ID) {
			continue
		}
		falloff := 1.0
		if e.ID != direct {
			d := math.Hypot(e.X-x, e.Y-y)
			falloff = 1 - d/cfg.Radius
			if falloff <= 0 {
				continue
			}
		}
		ApplyDamage(w, e.ID, cfg.Damage*falloff, s.EventBus)
	}
	if s.EventBus != nil {
		s.EventBus.Emit(core.Event{Type: core.EvtExplosion, Tick: w.TickCount,
			Payload: core.ExplosionPayload{X: x, Y: y, Radius: cfg.Radius}})
	}
}

// canHit filters cast and overlap candidates: never the shooter, never
// a target already pierced, and no friendlies unless the weapon allows
// it.
func (s *ProjectileSystem) canHit(w *core.World, proj *core.Projectile, tid core.EntityID) bool {
	if tid == proj.OwnerID || proj.HasPierced(tid) {
		return false
	}
	return proj.FriendlyFire || !s.allied(w, proj, tid)
}

// allied reports whether tid shares the shooter's team. Team 0 is
// unaffiliated and allied to no one; unowned entities such as walls
// are fair game for everyone.
func (s *ProjectileSystem) allied(w *core.World, proj *core.Projectile, tid core.EntityID) bool {
	oc := w.Get(tid, core.CompOwner)
	if oc == nil {
		return false
	}
	t := oc.(*core.Owner).TeamID
	return t != 0 && t == proj.OwnerTeam
}

func (s *ProjectileSystem) nearestOverlap(w *core.World, proj *core.Projectile, pos *core.Position, mask core.Mask) (core.EntityID, bool) {
	var best core.EntityID
	bestD := math.MaxFloat64
	for _, e := range s.grid.QueryOverlap(pos.X, pos.Y, proj.Radius, mask) {
		if !s.canHit(w, proj, e.ID) {
			continue
		}
		d := math.Hypot(e.X-pos.X, e.Y-pos.Y)
		if d < bestD {
			bestD = d
			best = e.ID
		}
	}
	return best, best != 0
}

func (s *ProjectileSystem) castWalls(x0, y0, x1, y1 float64) (float64, float64, float64, bool) {
	if s.Arena == nil {
		return 0, 0, 0, false
	}
	return s.Arena.CastSegment(x0, y0, x1, y1)
}
