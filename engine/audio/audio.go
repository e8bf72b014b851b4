package audio

import (
	"math"

	"github.com/1siamBot/shooter-engine/engine/core"
)

// SoundID identifies a sound effect
type SoundID string

const (
	SndFire      SoundID = "fire"
	SndEmpty     SoundID = "empty"
	SndReload    SoundID = "reload"
	SndReloadEnd SoundID = "reload_end"
	SndHit       SoundID = "hit"
	SndExplosion SoundID = "explosion"
	SndPickup    SoundID = "pickup"
	SndSwitch    SoundID = "switch"
)

// AudioManager routes combat events to sound cues with distance
// attenuation from the listener. Playback itself is stubbed; the
// routing and volume math is what the engine owns.
type AudioManager struct {
	MasterVolume float64
	SFXVolume    float64
	CameraX      float64
	CameraY      float64

	// LastCue and LastVolume expose the most recent routed cue, which
	// keeps the router testable while playback is stubbed.
	LastCue    SoundID
	LastVolume float64
}

func NewAudioManager() *AudioManager {
	return &AudioManager{
		MasterVolume: 1.0,
		SFXVolume:    0.8,
	}
}

// SetCameraPos updates the listener position for positional audio
func (am *AudioManager) SetCameraPos(x, y float64) {
	am.CameraX = x
	am.CameraY = y
}

// Subscribe routes weapon and impact events to sound cues
func (am *AudioManager) Subscribe(bus *core.EventBus) {
	bus.On(core.EvtWeaponFired, func(e core.Event) {
		p := e.Payload.(core.FiredPayload)
		am.PlaySFX(SndFire, p.X, p.Y)
	})
	bus.On(core.EvtEmptyClick, func(e core.Event) {
		p := e.Payload.(core.AmmoPayload)
		am.PlaySFX(SndEmpty, p.X, p.Y)
	})
	bus.On(core.EvtReloadStarted, func(e core.Event) {
		p := e.Payload.(core.AmmoPayload)
		am.PlaySFX(SndReload, p.X, p.Y)
	})
	bus.On(core.EvtReloadCompleted, func(e core.Event) {
		p := e.Payload.(core.AmmoPayload)
		am.PlaySFX(SndReloadEnd, p.X, p.Y)
	})
	bus.On(core.EvtWeaponSwitched, func(e core.Event) {
		p := e.Payload.(core.AmmoPayload)
		am.PlaySFX(SndSwitch, p.X, p.Y)
	})
	bus.On(core.EvtProjectileHit, func(e core.Event) {
		p := e.Payload.(core.HitPayload)
		am.PlaySFX(SndHit, p.X, p.Y)
	})
	bus.On(core.EvtExplosion, func(e core.Event) {
		p := e.Payload.(core.ExplosionPayload)
		am.PlaySFX(SndExplosion, p.X, p.Y)
	})
	bus.On(core.EvtPickupCollected, func(e core.Event) {
		p := e.Payload.(core.PickupPayload)
		am.PlaySFX(SndPickup, p.X, p.Y)
	})
}

// PlaySFX plays a sound effect at a world position
func (am *AudioManager) PlaySFX(id SoundID, worldX, worldY float64) {
	vol := am.calcVolume(worldX, worldY)
	am.LastCue = id
	am.LastVolume = vol
	if vol <= 0 {
		return
	}
	// Playback would decode and run bytes through ebiten/audio.Player;
	// the cue routing above is the part the engine owns.
}

// calcVolume computes volume based on distance from the listener
func (am *AudioManager) calcVolume(wx, wy float64) float64 {
	dx := wx - am.CameraX
	dy := wy - am.CameraY
	dist := math.Sqrt(dx*dx + dy*dy)
	maxDist := 30.0
	if dist >= maxDist {
		return 0
	}
	return (1.0 - dist/maxDist) * am.SFXVolume * am.MasterVolume
}

// SetVolume sets master volume (0-1)
func (am *AudioManager) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	am.MasterVolume = v
}
