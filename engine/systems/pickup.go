package systems

import (
	"github.com/1siamBot/shooter-engine/engine/arsenal"
	"github.com/1siamBot/shooter-engine/engine/core"
)

// PickupSystem hands ammo crates and weapon drops to whoever walks
// over them. A pickup that changes nothing (full reserve, unknown
// weapon key) stays on the ground.
type PickupSystem struct {
	EventBus *core.EventBus
	Arsenal  arsenal.Arsenal
}

func (s *PickupSystem) Priority() int { return 40 }

func (s *PickupSystem) Update(w *core.World, dt float64) {
	pickups := w.Query(core.CompPosition, core.CompPickup, core.CompCollider)
	if len(pickups) == 0 {
		return
	}
	actors := w.Query(core.CompPosition, core.CompCollider, core.CompLoadout)

	for _, pid := range pickups {
		ppos := w.Get(pid, core.CompPosition).(*core.Position)
		pcol := w.Get(pid, core.CompCollider).(*core.Collider)
		pk := w.Get(pid, core.CompPickup).(*core.Pickup)

		for _, aid := range actors {
			apos := w.Get(aid, core.CompPosition).(*core.Position)
			acol := w.Get(aid, core.CompCollider).(*core.Collider)
			if apos.DistanceTo(ppos) > pcol.Radius+acol.Radius {
				continue
			}
			if !s.collect(w, aid, apos, pk) {
				continue
			}
			w.Destroy(pid)
			if s.EventBus != nil {
				s.EventBus.Emit(core.Event{Type: core.EvtPickupCollected, Tick: w.TickCount,
					Payload: core.PickupPayload{Collector: aid, Name: pk.Weapon, X: ppos.X, Y: ppos.Y}})
			}
			break
		}
	}
}

// collect applies the pickup to the collector's loadout. Returns false
// when nothing changed.
func (s *PickupSystem) collect(w *core.World, aid core.EntityID, apos *core.Position, pk *core.Pickup) bool {
	loadout := w.Get(aid, core.CompLoadout).(*core.Loadout)

	switch pk.Kind {
	case core.PickupAmmo:
		ws := loadout.ActiveWeapon()
		if pk.Weapon != "" {
			ws = loadout.Find(pk.Weapon)
		}
		if ws == nil {
			return false
		}
		return s.grantAmmo(w, aid, apos, ws, pk.Amount)

	case core.PickupWeapon:
		if ws := loadout.Find(pk.Weapon); ws != nil {
			// Already carried: top up the reserve instead.
			amount := pk.Amount
			if amount <= 0 {
				amount = ws.Def.MagazineSize
			}
			return s.grantAmmo(w, aid, apos, ws, amount)
		}
		def, ok := s.Arsenal[pk.Weapon]
		if !ok {
			return false
		}
		loadout.Weapons = append(loadout.Weapons, core.NewWeaponState(def))
		loadout.Active = len(loadout.Weapons) - 1
		if s.EventBus != nil {
			ws := loadout.ActiveWeapon()
			s.EventBus.Emit(core.Event{Type: core.EvtWeaponSwitched, Tick: w.TickCount,
				Payload: core.AmmoPayload{Entity: aid, Weapon: ws.Def.Name, Magazine: ws.Magazine, Reserve: ws.Reserve, X: apos.X, Y: apos.Y}})
		}
		return true
	}
	return false
}

func (s *PickupSystem) grantAmmo(w *core.World, aid core.EntityID, apos *core.Position, ws *core.WeaponState, amount int) bool {
	if amount <= 0 || ws.Def.InfiniteAmmo {
		return false
	}
	before := ws.Reserve
	ws.Reserve += amount
	if ws.Reserve > ws.Def.ReserveCap {
		ws.Reserve = ws.Def.ReserveCap
	}
	if ws.Reserve == before {
		return false
	}
	if s.EventBus != nil {
		s.EventBus.Emit(core.Event{Type: core.EvtAmmoChanged, Tick: w.TickCount,
			Payload: core.AmmoPayload{Entity: aid, Weapon: ws.Def.Name, Magazine: ws.Magazine, Reserve: ws.Reserve, X: apos.X, Y: apos.Y}})
	}
	return true
}
