package systems

import (
	"math"
	"math/rand"
	"time"

	"github.com/1siamBot/shooter-engine/engine/core"
)

// WeaponSystem drives every weapon state machine: trigger handling,
// fire-rate gating, bursts, reloads, spread and recoil bookkeeping,
// and projectile spawning. All timing compares against World.Time so
// behavior is identical at any tick rate.
type WeaponSystem struct {
	EventBus *core.EventBus
	rng      *rand.Rand
}

// NewWeaponSystem creates the system with a seeded spread RNG.
// Seed 0 picks a time-based seed; replays must pass a fixed one.
func NewWeaponSystem(bus *core.EventBus, seed int64) *WeaponSystem {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &WeaponSystem{
		EventBus: bus,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (s *WeaponSystem) Priority() int { return 20 }

func (s *WeaponSystem) Update(w *core.World, dt float64) {
	now := w.Time
	ids := w.Query(core.CompPosition, core.CompLoadout, core.CompFireControl, core.CompOwner)
	for _, id := range ids {
		pos := w.Get(id, core.CompPosition).(*core.Position)
		loadout := w.Get(id, core.CompLoadout).(*core.Loadout)
		ctrl := w.Get(id, core.CompFireControl).(*core.FireControl)
		own := w.Get(id, core.CompOwner).(*core.Owner)

		// Holstered weapons keep reloading and recovering too.
		for _, ws := range loadout.Weapons {
			s.maintain(w, id, pos, ws, now, dt)
		}

		if ctrl.SwitchPressed {
			s.switchWeapon(w, id, pos, loadout, now)
		}

		if ws := loadout.ActiveWeapon(); ws != nil {
			if ctrl.ReloadPressed {
				s.tryReload(w, id, pos, ws, now)
			}
			s.fire(w, id, pos, own, ctrl, ws, now)
		}

		// Edges are one-tick signals; Held persists.
		ctrl.Pressed = false
		ctrl.ReloadPressed = false
		ctrl.SwitchPressed = false
	}
}

// maintain finishes due reloads and runs passive recovery for one
// weapon slot.
func (s *WeaponSystem) maintain(w *core.World, id core.EntityID, pos *core.Position, ws *core.WeaponState, now, dt float64) {
	if ws.ReloadDone(now) {
		moved := ws.Def.MagazineSize - ws.Magazine
		if !ws.Def.InfiniteAmmo {
			if moved > ws.Reserve {
				moved = ws.Reserve
			}
			ws.Reserve -= moved
		}
		ws.Magazine += moved
		ws.Phase = core.PhaseIdle
		s.emitAmmo(w, core.EvtReloadCompleted, id, pos, ws)
		s.emitAmmo(w, core.EvtAmmoChanged, id, pos, ws)
	}
	if ws.AutoLatched && ws.Magazine > 0 {
		ws.AutoLatched = false
	}
	// Auto-reload runs on the tick clock, not the trigger: a dry
	// weapon tops itself up whether or not anyone is firing it.
	if ws.Def.AutoReload && ws.Magazine == 0 && ws.Reserve > 0 {
		s.tryReload(w, id, pos, ws, now)
	}
	ws.DecaySpread(now, dt)
	ws.DecayRecoil(dt)
}

// switchWeapon cycles to the next loadout slot. Switching away kills an
// in-progress burst and re-arms its rate gate so cycling back never
// yields a free instant shot.
func (s *WeaponSystem) switchWeapon(w *core.World, id core.EntityID, pos *core.Position, loadout *core.Loadout, now float64) {
	prev := loadout.ActiveWeapon()
	if !loadout.Cycle() {
		return
	}
	if prev != nil && prev.Phase == core.PhaseBursting {
		prev.Phase = core.PhaseIdle
		prev.BurstLeft = 0
		prev.NextFireAt = now + prev.Def.FireInterval
	}
	s.emitAmmo(w, core.EvtWeaponSwitched, id, pos, loadout.ActiveWeapon())
}

// tryReload starts a reload if one is possible. Re-pressing during a
// reload, reloading a full magazine, and reloading with an empty
// reserve are all no-ops. Starting a reload resets the spread streak.
func (s *WeaponSystem) tryReload(w *core.World, id core.EntityID, pos *core.Position, ws *core.WeaponState, now float64) bool {
	if ws.Phase != core.PhaseIdle {
		return false
	}
	if ws.Magazine >= ws.Def.MagazineSize {
		return false
	}
	if ws.Reserve <= 0 && !ws.Def.InfiniteAmmo {
		return false
	}
	ws.Phase = core.PhaseReloading
	ws.ReloadDoneAt = now + ws.Def.ReloadTime
	ws.ShotStreak = 0
	ws.SpreadMult = 0
	s.emitAmmo(w, core.EvtReloadStarted, id, pos, ws)
	return true
}

// fire advances the active weapon's phase for this tick.
func (s *WeaponSystem) fire(w *core.World, id core.EntityID, pos *core.Position, own *core.Owner, ctrl *core.FireControl, ws *core.WeaponState, now float64) {
	switch ws.Phase {
	case core.PhaseReloading:
		// Trigger input is ignored until the reload finishes.
		return

	case core.PhaseBursting:
		// A burst runs on its own clock and ignores the trigger.
		if ws.Magazine <= 0 {
			s.exitBurst(ws, now)
			return
		}
		if ws.BurstShotDue(now) {
			s.burstStep(w, id, pos, own, ctrl, ws, now)
		}
		return
	}

	var want bool
	switch ws.Def.Mode {
	case core.FireSingle, core.FireBurst:
		want = ctrl.Pressed
	case core.FireAuto:
		// The empty-click latch keeps a held trigger quiet until
		// ammo shows up again.
		want = (ctrl.Held || ctrl.Pressed) && !ws.AutoLatched
	}
	if !want || !ws.FireReady(now) {
		return
	}

	if ws.Magazine <= 0 {
		// Auto-reload already ran in maintain; reaching here means the
		// reserve is dry too.
		s.emitAmmo(w, core.EvtEmptyClick, id, pos, ws)
		if ws.Def.Mode == core.FireAuto {
			ws.AutoLatched = true
		}
		return
	}

	if ws.Def.Mode == core.FireBurst {
		ws.Phase = core.PhaseBursting
		ws.BurstLeft = ws.Def.BurstCount
		// First round leaves the barrel on the same tick.
		s.burstStep(w, id, pos, own, ctrl, ws, now)
		return
	}

	s.fireShot(w, id, pos, own, ctrl, ws, now)
	ws.NextFireAt = now + ws.Def.FireInterval
}

// burstStep fires one burst round and exits the burst when the count
// or the magazine runs out.
func (s *WeaponSystem) burstStep(w *core.World, id core.EntityID, pos *core.Position, own *core.Owner, ctrl *core.FireControl, ws *core.WeaponState, now float64) {
	s.fireShot(w, id, pos, own, ctrl, ws, now)
	ws.BurstLeft--
	if ws.BurstLeft <= 0 || ws.Magazine <= 0 {
		s.exitBurst(ws, now)
		return
	}
	ws.NextBurstAt = now + ws.Def.BurstDelay
}

func (s *WeaponSystem) exitBurst(ws *core.WeaponState, now float64) {
	ws.Phase = core.PhaseIdle
	ws.BurstLeft = 0
	ws.NextFireAt = now + ws.Def.FireInterval
}

// fireShot spends a round, spawns the shot's pellets and applies
// spread, recoil and streak bookkeeping.
func (s *WeaponSystem) fireShot(w *core.World, id core.EntityID, pos *core.Position, own *core.Owner, ctrl *core.FireControl, ws *core.WeaponState, now float64) {
	def := ws.Def

	dirX, dirY := aimDir(pos, ctrl, def)
	base := math.Atan2(dirY, dirX)

	factor := ws.SpreadFactorForShot(now)
	ws.SpreadMult = factor
	halfArc := def.SpreadDeg * factor * math.Pi / 180

	if !def.InfiniteAmmo {
		ws.Magazine--
	}
	ws.RecordShot(now)

	// Kick opposite the firing direction; recovery runs in maintain.
	ws.RecoilX -= dirX * def.RecoilKick
	ws.RecoilY -= dirY * def.RecoilKick
	pos.Facing = base

	if def.Pellets > 1 {
		// Fan: pellets cover the full arc at even steps.
		for i := 0; i < def.Pellets; i++ {
			t := 2*float64(i)/float64(def.Pellets-1) - 1
			s.spawnPellet(w, id, own, pos, def, base+t*halfArc)
		}
	} else {
		angle := base + (s.rng.Float64()*2-1)*halfArc
		s.spawnPellet(w, id, own, pos, def, angle)
	}

	if s.EventBus != nil {
		s.EventBus.Emit(core.Event{Type: core.EvtWeaponFired, Tick: w.TickCount,
			Payload: core.FiredPayload{Shooter: id, Weapon: def.Name, X: pos.X, Y: pos.Y, DirX: dirX, DirY: dirY}})
	}
	s.emitAmmo(w, core.EvtAmmoChanged, id, pos, ws)
}

func (s *WeaponSystem) spawnPellet(w *core.World, owner core.EntityID, own *core.Owner, pos *core.Position, def *core.WeaponConfig, angle float64) {
	pid := w.Spawn()
	w.Attach(pid, &core.Position{X: pos.X, Y: pos.Y, Facing: angle})
	w.Attach(pid, &core.Projectile{
		OwnerID:      owner,
		OwnerTeam:    own.TeamID,
		DirX:         math.Cos(angle),
		DirY:         math.Sin(angle),
		Speed:        def.ProjectileSpeed,
		Damage:       def.Damage,
		Radius:       0.1 * def.ProjectileScale,
		HitMask:      def.HitMask,
		FriendlyFire: def.FriendlyFire,
		AOE:          def.AOE,
		Pierce:       def.Pierce,
		TTL:          def.Lifetime,
	})
}

func (s *WeaponSystem) emitAmmo(w *core.World, t core.EventType, id core.EntityID, pos *core.Position, ws *core.WeaponState) {
	if s.EventBus == nil || ws == nil {
		return
	}
	s.EventBus.Emit(core.Event{Type: t, Tick: w.TickCount, Payload: core.AmmoPayload{
		Entity: id, Weapon: ws.Def.Name, Magazine: ws.Magazine, Reserve: ws.Reserve, X: pos.X, Y: pos.Y,
	}})
}

// aimDir turns the aim point into a unit firing direction.
func aimDir(pos *core.Position, ctrl *core.FireControl, def *core.WeaponConfig) (float64, float64) {
	if def.Orientation == core.OrientSide {
		// Side view: fire along X toward the aim point.
		if ctrl.AimX < pos.X {
			return -1, 0
		}
		return 1, 0
	}
	dx := ctrl.AimX - pos.X
	dy := ctrl.AimY - pos.Y
	d := math.Hypot(dx, dy)
	if d < 1e-9 {
		// Aim point on top of the shooter: fall back to facing.
		return math.Cos(pos.Facing), math.Sin(pos.Facing)
	}
	return dx / d, dy / d
}
