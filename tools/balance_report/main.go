package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/1siamBot/shooter-engine/engine/arena"
	"github.com/1siamBot/shooter-engine/engine/arsenal"
	"github.com/1siamBot/shooter-engine/engine/core"
	"github.com/1siamBot/shooter-engine/engine/systems"
)

// Runs every weapon in an arsenal headless against a giant target and
// prints the resulting numbers. Handy for eyeballing balance after
// editing an arsenal file.
func main() {
	arsenalPath := flag.String("arsenal", "", "arsenal JSON path (default: built-in table)")
	duration := flag.Float64("duration", 12.0, "simulated seconds per weapon")
	seed := flag.Int64("seed", 1, "simulation seed")
	tickRate := flag.Float64("tickrate", 60.0, "simulation ticks per second")
	flag.Parse()

	ars := arsenal.Default()
	if *arsenalPath != "" {
		loaded, err := arsenal.Load(*arsenalPath)
		if err != nil {
			log.Fatal(err)
		}
		ars = loaded
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WEAPON\tMODE\tSHOTS\tHITS\tRELOADS\tDAMAGE\tDPS")
	for _, name := range ars.Names() {
		r := simulate(ars[name], *duration, *seed, *tickRate)
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%.0f\t%.1f\n",
			name, ars[name].Mode, r.shots, r.hits, r.reloads, r.damage, r.damage / *duration)
	}
	tw.Flush()
}

type report struct {
	shots, hits, reloads int
	damage               float64
}

// simulate fires one weapon at a wall-sized soak target for the given
// duration, pulling the trigger and reloading every tick like a
// metronome-perfect player.
func simulate(def *core.WeaponConfig, duration float64, seed int64, tickRate float64) report {
	w := core.NewWorld(tickRate)
	bus := core.NewEventBus()

	ar := arena.NewArena("bench", 64, 16)
	ar.BlockBorder()

	w.AddSystem(systems.NewWeaponSystem(bus, seed))
	w.AddSystem(systems.NewProjectileSystem(bus, ar))

	shooter := w.Spawn()
	w.Attach(shooter, &core.Position{X: 4, Y: 8})
	w.Attach(shooter, &core.Owner{PlayerID: 0, TeamID: 1})
	ws := core.NewWeaponState(def)
	w.Attach(shooter, &core.Loadout{Weapons: []*core.WeaponState{ws}})
	ctrl := &core.FireControl{AimX: 30, AimY: 8, Held: true}
	w.Attach(shooter, ctrl)

	// Oversized health pool so nothing dies mid-benchmark.
	target := w.Spawn()
	w.Attach(target, &core.Position{X: 30, Y: 8})
	w.Attach(target, &core.Health{Current: 1e9, Max: 1e9})
	w.Attach(target, &core.Collider{Radius: 4, Layer: core.LayerActor})
	w.Attach(target, &core.Owner{PlayerID: 1, TeamID: 2})

	var rep report
	bus.On(core.EvtWeaponFired, func(e core.Event) { rep.shots++ })
	bus.On(core.EvtReloadStarted, func(e core.Event) { rep.reloads++ })
	bus.On(core.EvtEntityDamaged, func(e core.Event) {
		p := e.Payload.(core.DamagePayload)
		rep.hits++
		rep.damage += p.Amount
	})

	dt := 1.0 / tickRate
	steps := int(duration * tickRate)
	for i := 0; i < steps; i++ {
		ctrl.Pressed = true
		if ws.Magazine == 0 && ws.Phase == core.PhaseIdle {
			ctrl.ReloadPressed = true
		}
		w.Tick(dt)
		bus.Dispatch()
	}
	return rep
}
