package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// timeEps tolerates float drift from accumulated tick time when
// comparing against scheduled timestamps.
const timeEps = 1e-9

// FireMode selects how trigger input translates into shots
type FireMode uint8

const (
	FireSingle FireMode = iota // one shot per press edge
	FireAuto                   // fires every eligible tick while held
	FireBurst                  // fixed-count rapid sequence per press edge
)

func (m FireMode) String() string {
	switch m {
	case FireSingle:
		return "single"
	case FireAuto:
		return "auto"
	case FireBurst:
		return "burst"
	}
	return "unknown"
}

func (m FireMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *FireMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "single", "":
		*m = FireSingle
	case "auto":
		*m = FireAuto
	case "burst":
		*m = FireBurst
	default:
		return fmt.Errorf("unknown fire mode %q", s)
	}
	return nil
}

// SpreadMode selects the accuracy-decay heuristic
type SpreadMode uint8

const (
	SpreadNone   SpreadMode = iota // full configured spread on every shot
	SpreadTime                     // penalty from time since the previous shot
	SpreadShot                     // penalty from consecutive shot count
	SpreadHybrid                   // worst of time and shot, full reset after a gap
)

func (m SpreadMode) String() string {
	switch m {
	case SpreadNone:
		return "none"
	case SpreadTime:
		return "time"
	case SpreadShot:
		return "shot"
	case SpreadHybrid:
		return "hybrid"
	}
	return "unknown"
}

func (m SpreadMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *SpreadMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "none", "":
		*m = SpreadNone
	case "time":
		*m = SpreadTime
	case "shot":
		*m = SpreadShot
	case "hybrid":
		*m = SpreadHybrid
	default:
		return fmt.Errorf("unknown spread mode %q", s)
	}
	return nil
}

// OrientMode selects how the aim point becomes a firing direction
type OrientMode uint8

const (
	OrientFree OrientMode = iota // full-rotation aim toward the aim point
	OrientSide                   // side-scroller: locked to +X/-X by aim side
)

func (m OrientMode) String() string {
	switch m {
	case OrientFree:
		return "free"
	case OrientSide:
		return "side"
	}
	return "unknown"
}

func (m OrientMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *OrientMode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch s {
	case "free", "":
		*m = OrientFree
	case "side":
		*m = OrientSide
	default:
		return fmt.Errorf("unknown orientation %q", s)
	}
	return nil
}

// AOEConfig describes area damage applied around an impact point
type AOEConfig struct {
	Enabled      bool    `json:"enabled"`
	Radius       float64 `json:"radius,omitempty"`
	Damage       float64 `json:"damage,omitempty"`
	FriendlyFire bool    `json:"friendly_fire,omitempty"`
	// ExcludeDirect removes the directly-hit entity from the blast.
	// Off by default: a direct hit takes direct damage plus full-falloff
	// area damage.
	ExcludeDirect bool `json:"exclude_direct,omitempty"`
}

// WeaponConfig is the immutable per-weapon tuning, authored in the
// arsenal table or loaded from JSON. Validate must pass before use.
type WeaponConfig struct {
	Name        string     `json:"name,omitempty"`
	Mode        FireMode   `json:"fire_mode"`
	Orientation OrientMode `json:"orientation,omitempty"`

	MagazineSize int     `json:"magazine_size"`
	ReserveCap   int     `json:"reserve_cap"`
	InfiniteAmmo bool    `json:"infinite_ammo,omitempty"`
	FireInterval float64 `json:"fire_interval"` // seconds between shots
	BurstCount   int     `json:"burst_count,omitempty"`
	BurstDelay   float64 `json:"burst_delay,omitempty"` // seconds between burst shots
	ReloadTime   float64 `json:"reload_time"`
	AutoReload   bool    `json:"auto_reload,omitempty"`

	Pellets        int        `json:"pellets,omitempty"`    // projectiles per shot
	SpreadDeg      float64    `json:"spread_deg,omitempty"` // half-angle in degrees
	Spread         SpreadMode `json:"spread_mode,omitempty"`
	AccuracyWindow float64    `json:"accuracy_window,omitempty"` // seconds of perfect accuracy after a shot
	RecoveryGap    float64    `json:"recovery_gap,omitempty"`    // idle seconds that reset the streak
	PerfectShots   int        `json:"perfect_shots,omitempty"`   // streak shots with no penalty
	RampShots      int        `json:"ramp_shots,omitempty"`      // shots from zero to full penalty
	SpreadDecay    float64    `json:"spread_decay,omitempty"`    // passive recovery rate

	ProjectileSpeed float64 `json:"projectile_speed"`
	Damage          float64 `json:"damage"`
	ProjectileScale float64 `json:"projectile_scale,omitempty"`
	Lifetime        float64 `json:"lifetime,omitempty"` // projectile TTL seconds
	Pierce          int     `json:"pierce,omitempty"`   // targets passed through before dying
	FriendlyFire    bool    `json:"friendly_fire,omitempty"`
	HitMask         Mask    `json:"hit_mask,omitempty"`

	AOE AOEConfig `json:"aoe,omitempty"`

	RecoilKick     float64 `json:"recoil_kick,omitempty"`
	RecoilRecovery float64 `json:"recoil_recovery,omitempty"`
}

// Validate fills defaults for optional zero fields and rejects
// configurations the weapon system cannot run.
func (c *WeaponConfig) Validate() error {
	if c.Name == "" {
		return errors.New("weapon name required")
	}
	if c.MagazineSize < 1 {
		return fmt.Errorf("magazine_size %d: must be at least 1", c.MagazineSize)
	}
	if c.ReserveCap < 0 {
		return fmt.Errorf("reserve_cap %d: negative", c.ReserveCap)
	}
	if c.FireInterval < 0 {
		return fmt.Errorf("fire_interval %g: negative", c.FireInterval)
	}
	if c.ReloadTime < 0 {
		return fmt.Errorf("reload_time %g: negative", c.ReloadTime)
	}
	if c.Damage < 0 {
		return fmt.Errorf("damage %g: negative", c.Damage)
	}
	if c.ProjectileSpeed <= 0 {
		return fmt.Errorf("projectile_speed %g: must be positive", c.ProjectileSpeed)
	}
	if c.SpreadDeg < 0 {
		return fmt.Errorf("spread_deg %g: negative", c.SpreadDeg)
	}
	if c.Pierce < 0 {
		return fmt.Errorf("pierce %d: negative", c.Pierce)
	}
	if c.AOE.Enabled && c.AOE.Radius <= 0 {
		return fmt.Errorf("aoe radius %g: must be positive when aoe enabled", c.AOE.Radius)
	}
	if c.AOE.Damage < 0 {
		return fmt.Errorf("aoe damage %g: negative", c.AOE.Damage)
	}
	if c.BurstCount < 0 || c.BurstDelay < 0 {
		return errors.New("burst settings negative")
	}

	if c.Pellets < 1 {
		c.Pellets = 1
	}
	if c.Lifetime <= 0 {
		c.Lifetime = 3.0
	}
	if c.ProjectileScale <= 0 {
		c.ProjectileScale = 1.0
	}
	if c.HitMask == 0 {
		c.HitMask = LayerActor | LayerWall
	}
	if c.Mode == FireBurst && c.BurstCount == 0 {
		c.BurstCount = 3
	}
	if c.Mode == FireBurst && c.BurstDelay == 0 {
		c.BurstDelay = 0.08
	}
	if c.Spread != SpreadNone {
		if c.AccuracyWindow <= 0 {
			c.AccuracyWindow = 0.3
		}
		if c.RecoveryGap <= 0 {
			c.RecoveryGap = 0.5
		}
		if c.RampShots < 1 {
			c.RampShots = 6
		}
		if c.SpreadDecay <= 0 {
			c.SpreadDecay = 8.0
		}
	}
	if c.RecoilRecovery <= 0 {
		c.RecoilRecovery = 10.0
	}
	return nil
}

// WeaponPhase is the weapon state machine phase
type WeaponPhase uint8

const (
	PhaseIdle WeaponPhase = iota
	PhaseReloading
	PhaseBursting
)

// WeaponState is the mutable runtime state of one weapon instance.
// It is created at attach time and mutated only by the weapon system.
type WeaponState struct {
	Def *WeaponConfig

	Magazine int
	Reserve  int
	Phase    WeaponPhase

	NextFireAt   float64 // timestamp gating the next shot
	ReloadDoneAt float64
	BurstLeft    int
	NextBurstAt  float64

	ShotStreak int     // consecutive shots in the current streak
	LastShotAt float64 // timestamp of the previous shot
	SpreadMult float64 // last applied accuracy penalty [0,1]

	RecoilX, RecoilY float64

	// AutoLatched disables automatic fire after an empty click until
	// ammo changes, so a held trigger does not spam the empty signal.
	AutoLatched bool
}

// NewWeaponState creates runtime state for a validated config with a
// full magazine and full reserve.
func NewWeaponState(def *WeaponConfig) *WeaponState {
	return &WeaponState{
		Def:        def,
		Magazine:   def.MagazineSize,
		Reserve:    def.ReserveCap,
		LastShotAt: math.Inf(-1),
	}
}

// CanFire reports whether the fire preconditions hold at now
func (ws *WeaponState) CanFire(now float64) bool {
	return now >= ws.NextFireAt-timeEps && ws.Magazine > 0
}

// FireReady reports only the rate gate, ignoring ammo
func (ws *WeaponState) FireReady(now float64) bool {
	return now >= ws.NextFireAt-timeEps
}

// ReloadDone reports whether an in-progress reload has finished
func (ws *WeaponState) ReloadDone(now float64) bool {
	return ws.Phase == PhaseReloading && now >= ws.ReloadDoneAt-timeEps
}

// BurstShotDue reports whether the next burst round is due
func (ws *WeaponState) BurstShotDue(now float64) bool {
	return ws.Phase == PhaseBursting && now >= ws.NextBurstAt-timeEps
}

// SpreadFactorForShot computes the accuracy penalty for a shot fired at
// now, before the shot is recorded. 0 is perfectly accurate, 1 is the
// full configured spread.
func (ws *WeaponState) SpreadFactorForShot(now float64) float64 {
	def := ws.Def
	if def.Spread == SpreadNone {
		return 1
	}
	gap := now - ws.LastShotAt

	timeFactor := 0.0
	if def.AccuracyWindow > 0 && gap < def.AccuracyWindow {
		timeFactor = clamp01(1 - gap/def.AccuracyWindow)
	}

	// n is this shot's 1-based index within the streak
	n := ws.ShotStreak + 1
	if gap > def.RecoveryGap {
		n = 1
	}
	shotFactor := 0.0
	if n > def.PerfectShots && def.RampShots > 0 {
		shotFactor = clamp01(float64(n-def.PerfectShots) / float64(def.RampShots))
	}

	switch def.Spread {
	case SpreadTime:
		return timeFactor
	case SpreadShot:
		return shotFactor
	case SpreadHybrid:
		if gap > def.RecoveryGap {
			return 0
		}
		return math.Max(timeFactor, shotFactor)
	}
	return 1
}

// RecordShot updates streak bookkeeping after a shot at now
func (ws *WeaponState) RecordShot(now float64) {
	if ws.ShotStreak > 0 && now-ws.LastShotAt > ws.Def.RecoveryGap {
		ws.ShotStreak = 0
	}
	ws.ShotStreak++
	ws.LastShotAt = now
}

// DecaySpread passively recovers accuracy once idle beyond the
// perfect-accuracy window
func (ws *WeaponState) DecaySpread(now, dt float64) {
	if ws.SpreadMult <= 0 {
		return
	}
	if now-ws.LastShotAt <= ws.Def.AccuracyWindow {
		return
	}
	ws.SpreadMult *= math.Exp(-ws.Def.SpreadDecay * dt)
	if ws.SpreadMult < 1e-4 {
		ws.SpreadMult = 0
	}
}

// DecayRecoil interpolates the recoil offset toward zero, independent
// of the weapon phase
func (ws *WeaponState) DecayRecoil(dt float64) {
	k := ws.Def.RecoilRecovery * dt
	if k > 1 {
		k = 1
	}
	ws.RecoilX -= ws.RecoilX * k
	ws.RecoilY -= ws.RecoilY * k
}

// ReloadProgress returns 0..1 while reloading, 1 otherwise
func (ws *WeaponState) ReloadProgress(now float64) float64 {
	if ws.Phase != PhaseReloading || ws.Def.ReloadTime <= 0 {
		return 1
	}
	return clamp01(1 - (ws.ReloadDoneAt-now)/ws.Def.ReloadTime)
}

// Loadout holds an entity's weapons; one is active at a time
type Loadout struct {
	Weapons []*WeaponState
	Active  int
}

func (l *Loadout) Type() ComponentType { return CompLoadout }

// ActiveWeapon returns the selected weapon state, or nil
func (l *Loadout) ActiveWeapon() *WeaponState {
	if l.Active < 0 || l.Active >= len(l.Weapons) {
		return nil
	}
	return l.Weapons[l.Active]
}

// Find returns the weapon state with the given config name, or nil
func (l *Loadout) Find(name string) *WeaponState {
	for _, ws := range l.Weapons {
		if ws.Def != nil && ws.Def.Name == name {
			return ws
		}
	}
	return nil
}

// Cycle advances to the next weapon slot; returns false with one slot
func (l *Loadout) Cycle() bool {
	if len(l.Weapons) < 2 {
		return false
	}
	l.Active = (l.Active + 1) % len(l.Weapons)
	return true
}

// FireControl is the per-entity trigger input consumed by the weapon
// system. Pressed, ReloadPressed and SwitchPressed are edges and are
// cleared once processed; Held persists while the trigger is down.
type FireControl struct {
	AimX, AimY    float64
	Held          bool
	Pressed       bool
	ReloadPressed bool
	SwitchPressed bool
}

func (f *FireControl) Type() ComponentType { return CompFireControl }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
