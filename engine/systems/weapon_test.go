package systems

import (
	"math"
	"testing"

	"github.com/1siamBot/shooter-engine/engine/core"
)

// shooter is a minimal armed entity plus counters for every weapon event.
type shooter struct {
	w    *core.World
	bus  *core.EventBus
	id   core.EntityID
	ctrl *core.FireControl
	lo   *core.Loadout

	fired, clicks, reloadsStarted, reloadsDone, switches int
}

func newShooter(t *testing.T, seed int64, defs ...*core.WeaponConfig) *shooter {
	t.Helper()
	w := core.NewWorld(60)
	bus := core.NewEventBus()
	w.AddSystem(NewWeaponSystem(bus, seed))

	s := &shooter{w: w, bus: bus}
	bus.On(core.EvtWeaponFired, func(core.Event) { s.fired++ })
	bus.On(core.EvtEmptyClick, func(core.Event) { s.clicks++ })
	bus.On(core.EvtReloadStarted, func(core.Event) { s.reloadsStarted++ })
	bus.On(core.EvtReloadCompleted, func(core.Event) { s.reloadsDone++ })
	bus.On(core.EvtWeaponSwitched, func(core.Event) { s.switches++ })

	s.id = w.Spawn()
	w.Attach(s.id, &core.Position{})
	s.ctrl = &core.FireControl{AimX: 10}
	w.Attach(s.id, s.ctrl)
	w.Attach(s.id, &core.Owner{PlayerID: 0, TeamID: 1})
	s.lo = &core.Loadout{}
	for _, def := range defs {
		if err := def.Validate(); err != nil {
			t.Fatalf("weapon %q: %v", def.Name, err)
		}
		s.lo.Weapons = append(s.lo.Weapons, core.NewWeaponState(def))
	}
	w.Attach(s.id, s.lo)
	return s
}

func (s *shooter) weapon() *core.WeaponState { return s.lo.ActiveWeapon() }

// run ticks the world n times, letting control set inputs before each tick.
func (s *shooter) run(n int, dt float64, control func(tick int)) {
	for i := 0; i < n; i++ {
		if control != nil {
			control(i)
		}
		s.w.Tick(dt)
	}
	s.bus.Dispatch()
}

func (s *shooter) projectileAngles() []float64 {
	var out []float64
	for _, id := range s.w.Query(core.CompPosition, core.CompProjectile) {
		out = append(out, s.w.Get(id, core.CompPosition).(*core.Position).Facing)
	}
	return out
}

func hold(s *shooter) func(int)  { return func(int) { s.ctrl.Held = true } }
func press(s *shooter) func(int) { return func(int) { s.ctrl.Pressed = true } }

func autoCfg() *core.WeaponConfig {
	return &core.WeaponConfig{
		Name: "auto", Mode: core.FireAuto,
		MagazineSize: 30, ReserveCap: 90,
		FireInterval: 0.1, ReloadTime: 0.5,
		Damage: 5, ProjectileSpeed: 50,
	}
}

func singleCfg() *core.WeaponConfig {
	return &core.WeaponConfig{
		Name: "single", Mode: core.FireSingle,
		MagazineSize: 6, ReserveCap: 18,
		FireInterval: 0.25, ReloadTime: 1.0,
		Damage: 10, ProjectileSpeed: 40,
	}
}

func burstCfg() *core.WeaponConfig {
	return &core.WeaponConfig{
		Name: "burst", Mode: core.FireBurst,
		BurstCount: 3, BurstDelay: 0.08,
		MagazineSize: 9, ReserveCap: 27,
		FireInterval: 0.5, ReloadTime: 1.0,
		Damage: 8, ProjectileSpeed: 40,
	}
}

// Held trigger for 3 seconds at a 0.1s interval: exactly 30 shots, then
// the empty signal, with the reserve untouched.
func TestAutoEmptiesMagazineAtFireRate(t *testing.T) {
	s := newShooter(t, 1, autoCfg())
	s.run(31, 0.1, hold(s))

	if s.fired != 30 {
		t.Errorf("fired = %d, want 30", s.fired)
	}
	if s.clicks != 1 {
		t.Errorf("empty clicks = %d, want 1", s.clicks)
	}
	ws := s.weapon()
	if ws.Magazine != 0 {
		t.Errorf("Magazine = %d, want 0", ws.Magazine)
	}
	if ws.Reserve != 90 {
		t.Errorf("Reserve = %d, want 90 untouched", ws.Reserve)
	}
	if !ws.AutoLatched {
		t.Errorf("AutoLatched = false after the empty click")
	}
}

// The fire interval, not the tick rate, sets the cadence.
func TestAutoHonorsFireInterval(t *testing.T) {
	s := newShooter(t, 1, autoCfg())
	s.run(60, 1.0/60, hold(s))

	if s.fired != 10 {
		t.Errorf("fired = %d in 1s at 0.1s interval, want 10", s.fired)
	}
}

func TestAutoStopsOnRelease(t *testing.T) {
	s := newShooter(t, 1, autoCfg())
	s.run(13, 0.1, func(i int) {
		s.ctrl.Held = i < 5 || i >= 10
	})
	if s.fired != 8 {
		t.Errorf("fired = %d, want 8 (5 held + 3 held)", s.fired)
	}
}

func TestSingleNeedsPressEdge(t *testing.T) {
	s := newShooter(t, 1, singleCfg())
	s.run(10, 0.1, hold(s))
	if s.fired != 0 {
		t.Fatalf("fired = %d from Held alone, want 0", s.fired)
	}

	// Hammering the trigger still respects the 0.25s interval.
	s.run(10, 0.1, press(s))
	if s.fired != 4 {
		t.Errorf("fired = %d in 1s of spam at 0.25s interval, want 4", s.fired)
	}
}

func TestBurstFiresFullSequence(t *testing.T) {
	s := newShooter(t, 1, burstCfg())
	s.run(10, 0.04, func(i int) {
		if i == 0 {
			s.ctrl.Pressed = true
		}
	})

	if s.fired != 3 {
		t.Errorf("fired = %d from one press, want 3", s.fired)
	}
	ws := s.weapon()
	if ws.Phase != core.PhaseIdle {
		t.Errorf("Phase = %d after burst, want idle", ws.Phase)
	}
	if ws.Magazine != 6 {
		t.Errorf("Magazine = %d, want 6", ws.Magazine)
	}
	// The rate gate re-arms from the last burst round at t=0.2.
	if math.Abs(ws.NextFireAt-0.7) > 1e-6 {
		t.Errorf("NextFireAt = %g, want 0.7", ws.NextFireAt)
	}
}

// Trigger input during a burst changes nothing; the next burst starts
// only after the fire interval from the last round.
func TestBurstIgnoresTriggerMidSequence(t *testing.T) {
	s := newShooter(t, 1, burstCfg())
	s.run(25, 0.04, press(s))

	if s.fired != 6 {
		t.Errorf("fired = %d in 1s of spam, want 6 (two bursts)", s.fired)
	}
}

func TestBurstStopsWhenMagazineEmpties(t *testing.T) {
	cfg := burstCfg()
	cfg.MagazineSize = 2
	cfg.ReserveCap = 6
	s := newShooter(t, 1, cfg)
	s.run(10, 0.04, func(i int) {
		if i == 0 {
			s.ctrl.Pressed = true
		}
	})

	if s.fired != 2 {
		t.Errorf("fired = %d with 2 rounds left, want 2", s.fired)
	}
	ws := s.weapon()
	if ws.Phase != core.PhaseIdle {
		t.Errorf("Phase = %d, want idle after the magazine ran dry", ws.Phase)
	}
	if ws.FireReady(0.16) {
		t.Errorf("rate gate open right after the aborted burst")
	}
}

func TestSwitchAbortsBurstAndReArms(t *testing.T) {
	s := newShooter(t, 1, burstCfg(), singleCfg())
	burst := s.lo.Weapons[0]
	s.run(5, 0.04, func(i int) {
		switch i {
		case 0:
			s.ctrl.Pressed = true
		case 1:
			s.ctrl.SwitchPressed = true
		}
	})

	if s.fired != 1 {
		t.Errorf("fired = %d, want 1 (burst cut after its first round)", s.fired)
	}
	if burst.Phase != core.PhaseIdle || burst.BurstLeft != 0 {
		t.Errorf("aborted burst state = phase %d left %d, want idle 0", burst.Phase, burst.BurstLeft)
	}
	if math.Abs(burst.NextFireAt-0.58) > 1e-6 {
		t.Errorf("NextFireAt = %g, want 0.58 (switch time + interval)", burst.NextFireAt)
	}
	if s.lo.Active != 1 {
		t.Errorf("Active = %d, want 1", s.lo.Active)
	}
	if s.switches != 1 {
		t.Errorf("switch events = %d, want 1", s.switches)
	}
}

func TestSwitchWithSingleSlotIsNoop(t *testing.T) {
	s := newShooter(t, 1, singleCfg())
	s.run(2, 0.1, func(i int) {
		if i == 0 {
			s.ctrl.SwitchPressed = true
		}
	})
	if s.lo.Active != 0 || s.switches != 0 {
		t.Errorf("Active = %d, switches = %d; want 0, 0", s.lo.Active, s.switches)
	}
}

// Dry firing never re-arms the rate gate, and single mode clicks once
// per press without latching.
func TestEmptyClickSingleDoesNotReArm(t *testing.T) {
	cfg := singleCfg()
	cfg.MagazineSize = 1
	s := newShooter(t, 1, cfg)

	s.run(1, 0.1, press(s))
	if s.fired != 1 {
		t.Fatalf("fired = %d, want 1", s.fired)
	}
	gate := s.weapon().NextFireAt

	s.run(9, 0.1, func(i int) {
		if i == 4 || i == 5 {
			s.ctrl.Pressed = true
		}
	})
	if s.clicks != 2 {
		t.Errorf("empty clicks = %d, want 2", s.clicks)
	}
	if s.weapon().NextFireAt != gate {
		t.Errorf("NextFireAt = %g, want %g unchanged by dry fire", s.weapon().NextFireAt, gate)
	}
}

// A held automatic trigger clicks once on empty, stays quiet, and
// resumes by itself once a reload lands ammo.
func TestAutoEmptyClickLatchesUntilReload(t *testing.T) {
	cfg := autoCfg()
	cfg.MagazineSize = 2
	cfg.ReserveCap = 2
	s := newShooter(t, 1, cfg)

	s.run(15, 0.1, func(i int) {
		s.ctrl.Held = true
		if i == 4 {
			s.ctrl.ReloadPressed = true
		}
	})

	if s.fired != 4 {
		t.Errorf("fired = %d, want 4 (two before reload, two after)", s.fired)
	}
	if s.clicks != 2 {
		t.Errorf("empty clicks = %d, want 2 (one per dry-out)", s.clicks)
	}
	if s.reloadsStarted != 1 || s.reloadsDone != 1 {
		t.Errorf("reloads = %d started %d done, want 1 and 1", s.reloadsStarted, s.reloadsDone)
	}
	ws := s.weapon()
	if ws.Magazine != 0 || ws.Reserve != 0 {
		t.Errorf("ammo = %d/%d, want 0/0", ws.Magazine, ws.Reserve)
	}
	if !ws.AutoLatched {
		t.Errorf("AutoLatched = false at the end, want true")
	}
}

func TestAutoReloadOnEmpty(t *testing.T) {
	cfg := autoCfg()
	cfg.MagazineSize = 1
	cfg.ReserveCap = 1
	cfg.ReloadTime = 0.3
	cfg.AutoReload = true
	s := newShooter(t, 1, cfg)

	s.run(10, 0.1, hold(s))

	if s.fired != 2 {
		t.Errorf("fired = %d, want 2", s.fired)
	}
	if s.reloadsStarted != 1 || s.reloadsDone != 1 {
		t.Errorf("reloads = %d started %d done, want 1 and 1", s.reloadsStarted, s.reloadsDone)
	}
	// The reserve ran out, so the second dry-out clicks instead.
	if s.clicks != 1 {
		t.Errorf("empty clicks = %d, want 1", s.clicks)
	}
}

// Auto-reload is a per-tick affair: a dry weapon refills itself with
// the trigger completely idle.
func TestAutoReloadRunsWithoutTriggerInput(t *testing.T) {
	cfg := autoCfg()
	cfg.AutoReload = true
	s := newShooter(t, 1, cfg)
	ws := s.weapon()
	ws.Magazine = 0
	ws.Reserve = 40

	s.run(10, 0.1, nil)

	if s.reloadsStarted != 1 || s.reloadsDone != 1 {
		t.Fatalf("reloads = %d started %d done, want 1 and 1", s.reloadsStarted, s.reloadsDone)
	}
	if ws.Phase != core.PhaseIdle {
		t.Errorf("Phase = %d, want idle after the reload", ws.Phase)
	}
	if ws.Magazine != 30 {
		t.Errorf("Magazine = %d, want full 30", ws.Magazine)
	}
	if ws.Reserve != 10 {
		t.Errorf("Reserve = %d, want 10", ws.Reserve)
	}
	if s.fired != 0 || s.clicks != 0 {
		t.Errorf("fired = %d clicks = %d with no input, want 0 and 0", s.fired, s.clicks)
	}
}

func TestManualReload(t *testing.T) {
	reloadAtStart := func(s *shooter) func(int) {
		return func(i int) {
			if i == 0 {
				s.ctrl.ReloadPressed = true
			}
		}
	}
	cfg := func() *core.WeaponConfig {
		c := singleCfg()
		c.MagazineSize = 10
		c.ReserveCap = 25
		c.ReloadTime = 0.5
		return c
	}

	t.Run("partial magazine tops up from reserve", func(t *testing.T) {
		s := newShooter(t, 1, cfg())
		s.weapon().Magazine = 6
		s.run(8, 0.1, reloadAtStart(s))

		ws := s.weapon()
		if ws.Magazine != 10 || ws.Reserve != 21 {
			t.Errorf("ammo = %d/%d, want 10/21", ws.Magazine, ws.Reserve)
		}
		if s.reloadsStarted != 1 || s.reloadsDone != 1 {
			t.Errorf("reloads = %d started %d done, want 1 and 1", s.reloadsStarted, s.reloadsDone)
		}
	})

	t.Run("short reserve fills what it can", func(t *testing.T) {
		s := newShooter(t, 1, cfg())
		s.weapon().Magazine = 6
		s.weapon().Reserve = 3
		s.run(8, 0.1, reloadAtStart(s))

		ws := s.weapon()
		if ws.Magazine != 9 || ws.Reserve != 0 {
			t.Errorf("ammo = %d/%d, want 9/0", ws.Magazine, ws.Reserve)
		}
	})

	t.Run("full magazine is a no-op", func(t *testing.T) {
		s := newShooter(t, 1, cfg())
		s.run(8, 0.1, reloadAtStart(s))
		if s.reloadsStarted != 0 {
			t.Errorf("reload started with a full magazine")
		}
	})

	t.Run("empty reserve is a no-op", func(t *testing.T) {
		s := newShooter(t, 1, cfg())
		s.weapon().Magazine = 6
		s.weapon().Reserve = 0
		s.run(8, 0.1, reloadAtStart(s))
		if s.reloadsStarted != 0 {
			t.Errorf("reload started with an empty reserve")
		}
	})

	t.Run("re-press during reload is ignored", func(t *testing.T) {
		s := newShooter(t, 1, cfg())
		s.weapon().Magazine = 6
		s.run(8, 0.1, func(i int) {
			if i == 0 || i == 2 {
				s.ctrl.ReloadPressed = true
			}
		})
		if s.reloadsStarted != 1 || s.reloadsDone != 1 {
			t.Errorf("reloads = %d started %d done, want 1 and 1", s.reloadsStarted, s.reloadsDone)
		}
	})
}

func TestReloadResetsSpreadStreak(t *testing.T) {
	cfg := autoCfg()
	cfg.Spread = core.SpreadShot
	cfg.SpreadDeg = 8
	s := newShooter(t, 1, cfg)
	ws := s.weapon()
	ws.Magazine = 5
	ws.ShotStreak = 5
	ws.SpreadMult = 0.8

	s.run(1, 0.1, func(int) { s.ctrl.ReloadPressed = true })

	if ws.Phase != core.PhaseReloading {
		t.Fatalf("Phase = %d, want reloading", ws.Phase)
	}
	if ws.ShotStreak != 0 || ws.SpreadMult != 0 {
		t.Errorf("streak/mult = %d/%g after reload start, want 0/0", ws.ShotStreak, ws.SpreadMult)
	}
}

func TestInfiniteAmmoSkipsMagazine(t *testing.T) {
	cfg := autoCfg()
	cfg.MagazineSize = 5
	cfg.InfiniteAmmo = true
	s := newShooter(t, 1, cfg)

	s.run(10, 0.1, hold(s))
	if s.fired != 10 {
		t.Errorf("fired = %d, want 10", s.fired)
	}
	if got := s.weapon().Magazine; got != 5 {
		t.Errorf("Magazine = %d, want 5 untouched", got)
	}
}

// Reloads keep running on weapons that are switched away from.
func TestHolsteredWeaponFinishesReload(t *testing.T) {
	a := autoCfg()
	a.ReloadTime = 0.3
	s := newShooter(t, 1, a, singleCfg())
	first := s.lo.Weapons[0]
	first.Magazine = 0

	s.run(5, 0.1, func(i int) {
		switch i {
		case 0:
			s.ctrl.ReloadPressed = true
		case 1:
			s.ctrl.SwitchPressed = true
		}
	})

	if s.lo.Active != 1 {
		t.Fatalf("Active = %d, want 1", s.lo.Active)
	}
	if first.Phase != core.PhaseIdle || first.Magazine != first.Def.MagazineSize {
		t.Errorf("holstered weapon = phase %d mag %d, want idle and full", first.Phase, first.Magazine)
	}
}

// Multi-pellet shots fan deterministically across the full arc and
// consume no randomness.
func TestShotgunFanIsDeterministic(t *testing.T) {
	cfg := func() *core.WeaponConfig {
		return &core.WeaponConfig{
			Name: "fan", Mode: core.FireSingle,
			MagazineSize: 6, ReserveCap: 12,
			FireInterval: 0.5, ReloadTime: 1,
			Damage: 4, ProjectileSpeed: 20,
			Pellets: 8, SpreadDeg: 12,
		}
	}
	halfArc := 12 * math.Pi / 180

	fire := func(seed int64) []float64 {
		s := newShooter(t, seed, cfg())
		s.run(1, 0.1, press(s))
		return s.projectileAngles()
	}

	angles := fire(1)
	if len(angles) != 8 {
		t.Fatalf("pellets = %d, want 8", len(angles))
	}
	if math.Abs(angles[0]+halfArc) > 1e-9 || math.Abs(angles[7]-halfArc) > 1e-9 {
		t.Errorf("fan edges = %g..%g, want ±%g", angles[0], angles[7], halfArc)
	}
	for i := 1; i < len(angles); i++ {
		if angles[i] <= angles[i-1] {
			t.Errorf("fan not monotonic at %d: %v", i, angles)
			break
		}
	}
	for i := 0; i < 4; i++ {
		if math.Abs(angles[i]+angles[7-i]) > 1e-9 {
			t.Errorf("fan asymmetric: %g vs %g", angles[i], angles[7-i])
		}
	}

	other := fire(999)
	for i := range angles {
		if angles[i] != other[i] {
			t.Errorf("fan depends on the seed: %v vs %v", angles, other)
			break
		}
	}
}

func TestSinglePelletSpreadStaysInArc(t *testing.T) {
	cfg := autoCfg()
	cfg.MagazineSize = 40
	cfg.FireInterval = 0
	cfg.SpreadDeg = 10
	s := newShooter(t, 1, cfg)
	halfArc := 10 * math.Pi / 180

	s.run(40, 0.05, hold(s))
	angles := s.projectileAngles()
	if len(angles) != 40 {
		t.Fatalf("projectiles = %d, want 40", len(angles))
	}
	distinct := map[float64]bool{}
	for _, a := range angles {
		if math.Abs(a) > halfArc+1e-9 {
			t.Errorf("angle %g outside ±%g", a, halfArc)
		}
		distinct[a] = true
	}
	if len(distinct) < 5 {
		t.Errorf("only %d distinct angles in 40 shots, spread looks dead", len(distinct))
	}
}

// The first shots of a streak are perfectly accurate when the weapon
// has perfect-shot grace.
func TestPerfectShotsFireStraight(t *testing.T) {
	cfg := autoCfg()
	cfg.FireInterval = 0
	cfg.Spread = core.SpreadShot
	cfg.SpreadDeg = 10
	cfg.PerfectShots = 2
	cfg.RampShots = 1
	s := newShooter(t, 1, cfg)

	s.run(3, 0.05, hold(s))
	angles := s.projectileAngles()
	if len(angles) != 3 {
		t.Fatalf("projectiles = %d, want 3", len(angles))
	}
	if angles[0] != 0 || angles[1] != 0 {
		t.Errorf("grace shots = %g, %g; want dead straight", angles[0], angles[1])
	}
	if got := s.weapon().SpreadMult; got != 1 {
		t.Errorf("SpreadMult after third shot = %g, want 1", got)
	}
}

func TestRecoilKickAndRecovery(t *testing.T) {
	cfg := singleCfg()
	cfg.RecoilKick = 0.5
	cfg.RecoilRecovery = 10
	s := newShooter(t, 1, cfg)
	ws := s.weapon()

	s.run(1, 0.02, press(s))
	if math.Abs(ws.RecoilX+0.5) > 1e-9 {
		t.Fatalf("RecoilX = %g after firing +X, want -0.5", ws.RecoilX)
	}

	s.run(1, 0.02, nil) // k = 10*0.02 = 0.2
	if math.Abs(ws.RecoilX+0.4) > 1e-9 {
		t.Errorf("RecoilX = %g after one recovery step, want -0.4", ws.RecoilX)
	}

	s.run(100, 0.02, nil)
	if math.Abs(ws.RecoilX) > 1e-6 {
		t.Errorf("RecoilX = %g after long recovery, want ~0", ws.RecoilX)
	}
}

func TestAimAtSelfFallsBackToFacing(t *testing.T) {
	s := newShooter(t, 1, singleCfg())
	pos := s.w.Get(s.id, core.CompPosition).(*core.Position)
	pos.Facing = math.Pi / 2
	s.ctrl.AimX, s.ctrl.AimY = 0, 0

	s.run(1, 0.1, press(s))
	projs := s.w.Query(core.CompProjectile)
	if len(projs) != 1 {
		t.Fatalf("projectiles = %d, want 1", len(projs))
	}
	p := s.w.Get(projs[0], core.CompProjectile).(*core.Projectile)
	if math.Abs(p.DirX) > 1e-9 || math.Abs(p.DirY-1) > 1e-9 {
		t.Errorf("dir = (%g, %g), want (0, 1) from facing", p.DirX, p.DirY)
	}
}

func TestSideOrientationLocksToHorizontal(t *testing.T) {
	tests := []struct {
		name     string
		aimX     float64
		wantDirX float64
	}{
		{"aim right of shooter", 5, 1},
		{"aim left of shooter", -5, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := singleCfg()
			cfg.Orientation = core.OrientSide
			s := newShooter(t, 1, cfg)
			s.ctrl.AimX, s.ctrl.AimY = tc.aimX, 3 // vertical offset is ignored

			s.run(1, 0.1, press(s))
			projs := s.w.Query(core.CompProjectile)
			if len(projs) != 1 {
				t.Fatalf("projectiles = %d, want 1", len(projs))
			}
			p := s.w.Get(projs[0], core.CompProjectile).(*core.Projectile)
			if math.Abs(p.DirX-tc.wantDirX) > 1e-9 || math.Abs(p.DirY) > 1e-9 {
				t.Errorf("dir = (%g, %g), want (%g, 0)", p.DirX, p.DirY, tc.wantDirX)
			}
		})
	}
}

func TestWeaponFiredPayload(t *testing.T) {
	s := newShooter(t, 1, singleCfg())
	var got core.FiredPayload
	s.bus.On(core.EvtWeaponFired, func(e core.Event) {
		got = e.Payload.(core.FiredPayload)
	})

	s.run(1, 0.1, press(s))
	if got.Shooter != s.id {
		t.Errorf("Shooter = %d, want %d", got.Shooter, s.id)
	}
	if got.Weapon != "single" {
		t.Errorf("Weapon = %q, want single", got.Weapon)
	}
	if math.Abs(got.DirX-1) > 1e-9 || math.Abs(got.DirY) > 1e-9 {
		t.Errorf("dir = (%g, %g), want (1, 0)", got.DirX, got.DirY)
	}
}

func TestEdgesClearEachTick(t *testing.T) {
	s := newShooter(t, 1, singleCfg())
	s.ctrl.Pressed = true
	s.ctrl.ReloadPressed = true
	s.ctrl.SwitchPressed = true
	s.ctrl.Held = true

	s.run(1, 0.1, nil)
	if s.ctrl.Pressed || s.ctrl.ReloadPressed || s.ctrl.SwitchPressed {
		t.Errorf("edges survived the tick: %+v", s.ctrl)
	}
	if !s.ctrl.Held {
		t.Errorf("Held was cleared; it must persist")
	}
}
