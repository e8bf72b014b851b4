package systems

import (
	"github.com/1siamBot/shooter-engine/engine/core"
)

// ApplyDamage reduces an entity's health and emits damage and death
// events. Entities without a Health component shrug damage off.
// Returns the damage actually dealt.
func ApplyDamage(w *core.World, id core.EntityID, amount float64, bus *core.EventBus) float64 {
	hp := w.Get(id, core.CompHealth)
	if hp == nil {
		return 0
	}
	h := hp.(*core.Health)
	if h.Current <= 0 || amount <= 0 {
		return 0
	}
	h.Current -= amount

	var x, y float64
	if pc := w.Get(id, core.CompPosition); pc != nil {
		p := pc.(*core.Position)
		x, y = p.X, p.Y
	}
	if bus != nil {
		bus.Emit(core.Event{Type: core.EvtEntityDamaged, Tick: w.TickCount,
			Payload: core.DamagePayload{Entity: id, Amount: amount, X: x, Y: y}})
	}
	if h.Current <= 0 {
		h.Current = 0
		w.Destroy(id)
		if bus != nil {
			bus.Emit(core.Event{Type: core.EvtEntityDied, Tick: w.TickCount,
				Payload: core.DamagePayload{Entity: id, Amount: amount, X: x, Y: y}})
		}
	}
	return amount
}
