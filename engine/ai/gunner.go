package ai

import (
	"github.com/1siamBot/shooter-engine/engine/core"
)

// Gunner is one AI-controlled trigger. It acquires the nearest hostile
// in range and works the fire control of its entity; the weapon system
// does the actual shooting.
type Gunner struct {
	Entity core.EntityID
	Range  float64

	thinkTimer float64
	target     core.EntityID
}

// Target returns the entity the gunner last locked onto, or 0
func (g *Gunner) Target() core.EntityID { return g.target }

// GunnerSystem runs all registered gunners a few times a second.
// Between thinks the last written fire control keeps doing its thing,
// so held triggers stay held.
type GunnerSystem struct {
	Roster        *core.TeamRoster
	ThinkInterval float64
	Gunners       []*Gunner
}

func NewGunnerSystem(roster *core.TeamRoster) *GunnerSystem {
	return &GunnerSystem{Roster: roster, ThinkInterval: 0.1}
}

// AddGunner registers an entity as AI controlled. The entity needs
// Position, Owner, Loadout and FireControl components to do anything.
func (s *GunnerSystem) AddGunner(id core.EntityID, rng float64) *Gunner {
	g := &Gunner{Entity: id, Range: rng}
	s.Gunners = append(s.Gunners, g)
	return g
}

func (s *GunnerSystem) Priority() int { return 10 }

func (s *GunnerSystem) Update(w *core.World, dt float64) {
	for _, g := range s.Gunners {
		if !w.Alive(g.Entity) {
			continue
		}
		g.thinkTimer -= dt
		if g.thinkTimer > 0 {
			continue
		}
		g.thinkTimer += s.ThinkInterval
		g.think(w, s.Roster)
	}
}

func (g *Gunner) think(w *core.World, roster *core.TeamRoster) {
	ctrl, cok := w.Get(g.Entity, core.CompFireControl).(*core.FireControl)
	pos, pok := w.Get(g.Entity, core.CompPosition).(*core.Position)
	own, ook := w.Get(g.Entity, core.CompOwner).(*core.Owner)
	if !cok || !pok || !ook {
		return
	}

	g.target = g.acquire(w, roster, pos, own)
	if g.target == 0 {
		ctrl.Held = false
		return
	}

	tpos := w.Get(g.target, core.CompPosition).(*core.Position)
	ctrl.AimX = tpos.X
	ctrl.AimY = tpos.Y
	ctrl.Held = true
	ctrl.Pressed = true

	// Top up between shots rather than clicking dry.
	if lo, ok := w.Get(g.Entity, core.CompLoadout).(*core.Loadout); ok {
		if ws := lo.ActiveWeapon(); ws != nil && ws.Magazine == 0 && ws.Phase == core.PhaseIdle {
			ctrl.ReloadPressed = true
		}
	}
}

// acquire returns the nearest living hostile inside the gunner's range
func (g *Gunner) acquire(w *core.World, roster *core.TeamRoster, pos *core.Position, own *core.Owner) core.EntityID {
	var best core.EntityID
	bestDist := g.Range
	for _, tid := range w.Query(core.CompPosition, core.CompHealth, core.CompOwner) {
		if tid == g.Entity {
			continue
		}
		town := w.Get(tid, core.CompOwner).(*core.Owner)
		if roster != nil && roster.AreAllies(own.PlayerID, town.PlayerID) {
			continue
		}
		hp := w.Get(tid, core.CompHealth).(*core.Health)
		if hp.Current <= 0 {
			continue
		}
		tpos := w.Get(tid, core.CompPosition).(*core.Position)
		if d := pos.DistanceTo(tpos); d <= bestDist {
			bestDist = d
			best = tid
		}
	}
	return best
}
