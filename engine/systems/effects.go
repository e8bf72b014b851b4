package systems

import (
	"github.com/1siamBot/shooter-engine/engine/core"
)

// EffectSystem ages transient visual markers and removes them when
// they expire.
type EffectSystem struct{}

func (s *EffectSystem) Priority() int { return 50 }

func (s *EffectSystem) Update(w *core.World, dt float64) {
	for _, id := range w.Query(core.CompEffect) {
		fx := w.Get(id, core.CompEffect).(*core.Effect)
		fx.TTL -= dt
		if fx.TTL <= 0 {
			w.Destroy(id)
		}
	}
}

// SpawnEffect creates a short-lived marker entity
func SpawnEffect(w *core.World, kind core.EffectKind, x, y, radius, ttl float64) core.EntityID {
	id := w.Spawn()
	w.Attach(id, &core.Position{X: x, Y: y})
	w.Attach(id, &core.Effect{Kind: kind, Radius: radius, TTL: ttl, MaxTTL: ttl})
	return id
}

// WireEffects subscribes effect spawns to combat events so muzzle
// flashes, impact marks and blast rings appear without the combat
// systems knowing about rendering.
func WireEffects(w *core.World, bus *core.EventBus) {
	bus.On(core.EvtWeaponFired, func(e core.Event) {
		p := e.Payload.(core.FiredPayload)
		SpawnEffect(w, core.FxMuzzle, p.X+p.DirX*0.5, p.Y+p.DirY*0.5, 0.25, 0.06)
	})
	bus.On(core.EvtProjectileHit, func(e core.Event) {
		p := e.Payload.(core.HitPayload)
		SpawnEffect(w, core.FxImpact, p.X, p.Y, 0.3, 0.15)
	})
	bus.On(core.EvtExplosion, func(e core.Event) {
		p := e.Payload.(core.ExplosionPayload)
		SpawnEffect(w, core.FxExplosion, p.X, p.Y, p.Radius, 0.35)
	})
}
