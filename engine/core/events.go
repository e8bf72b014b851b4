package core

// Event represents a game event
type Event struct {
	Type    EventType
	Tick    uint64
	Payload interface{}
}

type EventType uint16

const (
	EvtWeaponFired EventType = iota
	EvtEmptyClick
	EvtReloadStarted
	EvtReloadCompleted
	EvtAmmoChanged
	EvtWeaponSwitched
	EvtProjectileHit
	EvtExplosion
	EvtEntityDamaged
	EvtEntityDied
	EvtPickupCollected
)

// FiredPayload accompanies EvtWeaponFired
type FiredPayload struct {
	Shooter    EntityID
	Weapon     string
	X, Y       float64
	DirX, DirY float64
}

// AmmoPayload accompanies EvtAmmoChanged, EvtReloadStarted,
// EvtReloadCompleted, EvtWeaponSwitched and EvtEmptyClick
type AmmoPayload struct {
	Entity   EntityID
	Weapon   string
	Magazine int
	Reserve  int
	X, Y     float64
}

// HitPayload accompanies EvtProjectileHit
type HitPayload struct {
	Projectile EntityID
	Target     EntityID // 0 for wall hits
	X, Y       float64
	Damage     float64
}

// ExplosionPayload accompanies EvtExplosion
type ExplosionPayload struct {
	X, Y   float64
	Radius float64
}

// DamagePayload accompanies EvtEntityDamaged and EvtEntityDied
type DamagePayload struct {
	Entity EntityID
	Amount float64
	X, Y   float64
}

// PickupPayload accompanies EvtPickupCollected
type PickupPayload struct {
	Collector EntityID
	Name      string
	X, Y      float64
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Dispatch processes all queued events
func (eb *EventBus) Dispatch() {
	for _, e := range eb.queue {
		if handlers, ok := eb.listeners[e.Type]; ok {
			for _, h := range handlers {
				h(e)
			}
		}
	}
	eb.queue = eb.queue[:0]
}
