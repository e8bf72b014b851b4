package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/1siamBot/shooter-engine/engine/ai"
	"github.com/1siamBot/shooter-engine/engine/arena"
	"github.com/1siamBot/shooter-engine/engine/arsenal"
	"github.com/1siamBot/shooter-engine/engine/audio"
	"github.com/1siamBot/shooter-engine/engine/core"
	"github.com/1siamBot/shooter-engine/engine/input"
	"github.com/1siamBot/shooter-engine/engine/render"
	"github.com/1siamBot/shooter-engine/engine/replay"
	"github.com/1siamBot/shooter-engine/engine/systems"
	"github.com/1siamBot/shooter-engine/engine/ui"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	TickRate     = 60.0
	ArenaSize    = 48
	moveSpeed    = 6.0 // player units per second
)

// Game implements ebiten.Game interface
type Game struct {
	renderer *render.SceneRenderer
	arena    *arena.Arena
	gameLoop *core.GameLoop
	input    *input.InputState
	roster   *core.TeamRoster
	eventBus *core.EventBus
	hud      *ui.HUD
	sound    *audio.AudioManager
	gunners  *ai.GunnerSystem

	player core.EntityID

	recorder *replay.Replay
	playback *replay.Replay

	// Movement intent sampled per frame, applied per tick
	moveX, moveY float64
}

func NewGame(ars arsenal.Arsenal, ar *arena.Arena, seed int64, rec, pb *replay.Replay) *Game {
	g := &Game{
		renderer: render.NewSceneRenderer(ScreenWidth, ScreenHeight),
		arena:    ar,
		gameLoop: core.NewGameLoop(TickRate),
		input:    input.NewInputState(),
		roster:   core.NewTeamRoster(),
		eventBus: core.NewEventBus(),
		hud:      ui.NewHUD(ScreenWidth, ScreenHeight),
		sound:    audio.NewAudioManager(),
		recorder: rec,
		playback: pb,
	}

	w := g.gameLoop.World
	g.gunners = ai.NewGunnerSystem(g.roster)
	w.AddSystem(g.gunners)
	w.AddSystem(systems.NewWeaponSystem(g.eventBus, seed))
	w.AddSystem(systems.NewProjectileSystem(g.eventBus, ar))
	w.AddSystem(&systems.PickupSystem{EventBus: g.eventBus, Arsenal: ars})
	w.AddSystem(&systems.EffectSystem{})

	systems.WireEffects(w, g.eventBus)
	g.hud.Subscribe(g.eventBus)
	g.sound.Subscribe(g.eventBus)

	// Set up players
	g.roster.AddPlayer(&core.Player{ID: 0, Name: "Player", TeamID: 1, Color: 0x3C78FFFF})
	g.roster.AddPlayer(&core.Player{ID: 1, Name: "Sentry", TeamID: 2, Color: 0xFF5050FF, IsAI: true})
	g.roster.AddPlayer(&core.Player{ID: 2, Name: "Dummies", TeamID: 0, Color: 0xB4B4B4FF})

	g.spawnPlayer(ars)
	g.spawnRange(ars)

	g.gameLoop.PreTick = g.preTick
	g.gameLoop.Play()
	return g
}

func (g *Game) spawnPlayer(ars arsenal.Arsenal) {
	w := g.gameLoop.World
	x, y := 8.0, 8.0
	if len(g.arena.SpawnPoints) > 0 {
		x, y = g.arena.SpawnPoints[0].X, g.arena.SpawnPoints[0].Y
	}

	id := w.Spawn()
	w.Attach(id, &core.Position{X: x, Y: y})
	w.Attach(id, &core.Sprite{Color: 0x3C78FFFF, Radius: 0.45, Visible: true, ZOrder: 10})
	w.Attach(id, &core.Health{Current: 100, Max: 100})
	w.Attach(id, &core.Collider{Radius: 0.45, Layer: core.LayerActor})
	w.Attach(id, &core.Owner{PlayerID: 0, TeamID: 1})
	w.Attach(id, &core.FireControl{})

	loadout := &core.Loadout{}
	for _, name := range []string{"rifle", "shotgun", "launcher"} {
		if def, ok := ars[name]; ok {
			loadout.Weapons = append(loadout.Weapons, core.NewWeaponState(def))
		}
	}
	w.Attach(id, loadout)
	g.player = id
}

func (g *Game) spawnRange(ars arsenal.Arsenal) {
	w := g.gameLoop.World

	// Static practice dummies
	for _, p := range [][2]float64{{20, 8}, {24, 12}, {20, 16}, {30, 24}, {14, 30}} {
		id := w.Spawn()
		w.Attach(id, &core.Position{X: p[0], Y: p[1]})
		w.Attach(id, &core.Sprite{Color: 0xB4B4B4FF, Radius: 0.4, Visible: true, ZOrder: 5})
		w.Attach(id, &core.Health{Current: 60, Max: 60})
		w.Attach(id, &core.Collider{Radius: 0.4, Layer: core.LayerActor})
		w.Attach(id, &core.Owner{PlayerID: 2, TeamID: 0})
	}

	// Destructible barrel that blocks shots
	barrel := w.Spawn()
	w.Attach(barrel, &core.Position{X: 16, Y: 12})
	w.Attach(barrel, &core.Sprite{Color: 0x8C6432FF, Radius: 0.5, Visible: true, ZOrder: 4})
	w.Attach(barrel, &core.Health{Current: 40, Max: 40})
	w.Attach(barrel, &core.Collider{Radius: 0.5, Layer: core.LayerWall})

	// Sentry turret that shoots back
	turret := w.Spawn()
	w.Attach(turret, &core.Position{X: 38, Y: 38})
	w.Attach(turret, &core.Sprite{Color: 0xFF5050FF, Radius: 0.5, Visible: true, ZOrder: 6})
	w.Attach(turret, &core.Health{Current: 120, Max: 120})
	w.Attach(turret, &core.Collider{Radius: 0.5, Layer: core.LayerActor})
	w.Attach(turret, &core.Owner{PlayerID: 1, TeamID: 2})
	w.Attach(turret, &core.FireControl{})
	if def, ok := ars["smg"]; ok {
		w.Attach(turret, &core.Loadout{Weapons: []*core.WeaponState{core.NewWeaponState(def)}})
	}
	g.gunners.AddGunner(turret, 14)

	// Supply drops
	spawnPickup(w, 12, 20, core.PickupAmmo, "rifle", 60, 0x78B4FFFF)
	spawnPickup(w, 26, 20, core.PickupWeapon, "marksman", 0, 0xFFC850FF)
	spawnPickup(w, 34, 30, core.PickupAmmo, "", 30, 0x78B4FFFF)
}

func spawnPickup(w *core.World, x, y float64, kind core.PickupKind, weapon string, amount int, clr uint32) {
	id := w.Spawn()
	w.Attach(id, &core.Position{X: x, Y: y})
	w.Attach(id, &core.Sprite{Color: clr, Radius: 0.3, Visible: true, ZOrder: 2})
	w.Attach(id, &core.Collider{Radius: 0.3, Layer: core.LayerPickup})
	w.Attach(id, &core.Pickup{Kind: kind, Weapon: weapon, Amount: amount})
}

// preTick runs at every fixed tick: replay application or capture,
// plus player movement, so recorded and live sessions stay in step.
func (g *Game) preTick(w *core.World) {
	dt := 1.0 / TickRate

	if g.playback != nil {
		for _, cmd := range g.playback.CommandsForTick(w.TickCount) {
			if ctrl, ok := w.Get(cmd.Entity, core.CompFireControl).(*core.FireControl); ok {
				cmd.Apply(ctrl)
			}
			if cmd.Entity == g.player {
				g.movePlayer(w, float64(cmd.MoveX), float64(cmd.MoveY), dt)
			}
		}
		last := len(g.playback.Commands) - 1
		if last >= 0 && w.TickCount > g.playback.Commands[last].Tick {
			g.gameLoop.State = core.StateGameOver
		}
		return
	}

	g.movePlayer(w, g.moveX, g.moveY, dt)

	if g.recorder != nil {
		if ctrl, ok := w.Get(g.player, core.CompFireControl).(*core.FireControl); ok {
			cmd := replay.Capture(w.TickCount, g.player, ctrl)
			cmd.MoveX = int8(g.moveX)
			cmd.MoveY = int8(g.moveY)
			if err := g.recorder.Record(cmd); err != nil {
				log.Printf("replay record: %v", err)
				g.recorder = nil
			}
		}
	}
}

// movePlayer slides the player tile-by-tile so walls stay solid
func (g *Game) movePlayer(w *core.World, mx, my, dt float64) {
	if mx == 0 && my == 0 {
		return
	}
	pos, ok := w.Get(g.player, core.CompPosition).(*core.Position)
	if !ok {
		return
	}
	step := moveSpeed * dt / math.Hypot(mx, my)
	nx := pos.X + mx*step
	ny := pos.Y + my*step
	if !g.arena.BlockedAt(int(nx), int(pos.Y)) {
		pos.X = nx
	}
	if !g.arena.BlockedAt(int(pos.X), int(ny)) {
		pos.Y = ny
	}
}

func (g *Game) Update() error {
	g.input.Update()

	if g.input.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.input.IsKeyJustPressed(ebiten.KeyP) {
		switch g.gameLoop.State {
		case core.StatePlaying:
			g.gameLoop.Pause()
		case core.StatePaused:
			g.gameLoop.Play()
		}
	}
	if g.input.ScrollY != 0 {
		g.renderer.Camera.ZoomAt(g.input.ScrollY*0.1, g.input.MouseX, g.input.MouseY)
	}

	if g.playback == nil {
		g.readPlayerInput()
	}

	w := g.gameLoop.World
	if !w.Alive(g.player) && g.gameLoop.State == core.StatePlaying {
		g.gameLoop.State = core.StateGameOver
	}

	g.gameLoop.Update()
	g.eventBus.Dispatch()
	g.hud.Update(1.0 / 60)

	// Camera follows the player, jolted by the active weapon's recoil
	if pos, ok := w.Get(g.player, core.CompPosition).(*core.Position); ok {
		g.renderer.Camera.CenterOn(pos.X, pos.Y)
	}
	g.renderer.Camera.KickX, g.renderer.Camera.KickY = 0, 0
	if lo, ok := w.Get(g.player, core.CompLoadout).(*core.Loadout); ok {
		if ws := lo.ActiveWeapon(); ws != nil {
			g.renderer.Camera.KickX = ws.RecoilX
			g.renderer.Camera.KickY = ws.RecoilY
		}
	}
	g.sound.SetCameraPos(g.renderer.Camera.X, g.renderer.Camera.Y)

	return nil
}

// readPlayerInput maps the frame's raw input onto the player's fire
// control. Edges are OR-ed in, never cleared here; the weapon system
// consumes them at the next tick.
func (g *Game) readPlayerInput() {
	w := g.gameLoop.World
	ctrl, ok := w.Get(g.player, core.CompFireControl).(*core.FireControl)
	if !ok {
		return
	}

	ctrl.AimX, ctrl.AimY = g.renderer.Camera.ScreenToWorld(g.input.MouseX, g.input.MouseY)
	ctrl.Held = g.input.LeftPressed
	if g.input.LeftJustPressed {
		ctrl.Pressed = true
	}
	if g.input.IsKeyJustPressed(ebiten.KeyR) {
		ctrl.ReloadPressed = true
	}
	if g.input.IsKeyJustPressed(ebiten.KeyQ) {
		ctrl.SwitchPressed = true
	}

	g.moveX, g.moveY = 0, 0
	if g.input.IsKeyPressed(ebiten.KeyW) {
		g.moveY--
	}
	if g.input.IsKeyPressed(ebiten.KeyS) {
		g.moveY++
	}
	if g.input.IsKeyPressed(ebiten.KeyA) {
		g.moveX--
	}
	if g.input.IsKeyPressed(ebiten.KeyD) {
		g.moveX++
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := g.gameLoop.World

	g.renderer.DrawArena(screen, g.arena)
	g.renderer.DrawEntities(screen, w)

	var active *core.WeaponState
	if lo, ok := w.Get(g.player, core.CompLoadout).(*core.Loadout); ok {
		active = lo.ActiveWeapon()
	}
	g.hud.DrawCrosshair(screen, g.input.MouseX, g.input.MouseY, active)
	g.hud.Draw(screen, w, g.player, w.Time)

	switch g.gameLoop.State {
	case core.StatePaused:
		g.hud.DrawBanner(screen, "PAUSED")
	case core.StateGameOver:
		if g.playback != nil {
			g.hud.DrawBanner(screen, "REPLAY ENDED")
		} else {
			g.hud.DrawBanner(screen, "DOWN")
		}
	}

	info := fmt.Sprintf(
		"FPS %.0f | Tick %d | Entities %d\n[WASD] Move [Mouse] Aim/Fire [R] Reload [Q] Swap [P] Pause [Scroll] Zoom",
		ebiten.ActualFPS(), g.gameLoop.CurrentTick(), w.EntityCount(),
	)
	ebitenutil.DebugPrint(screen, info)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// generateDemoArena builds a bordered range with scattered cover
func generateDemoArena() *arena.Arena {
	a := arena.NewArena("range", ArenaSize, ArenaSize)
	a.BlockBorder()
	a.BlockRect(14, 14, 14, 22)
	a.BlockRect(22, 26, 30, 26)
	a.BlockRect(30, 8, 32, 10)
	a.BlockRect(8, 34, 12, 36)
	a.SpawnPoints = []arena.SpawnPos{{PlayerSlot: 0, X: 8, Y: 8}}
	return a
}

func main() {
	seed := flag.Int64("seed", 0, "simulation seed (0 = time-based)")
	arsenalPath := flag.String("arsenal", "", "arsenal JSON path (default: built-in table)")
	arenaPath := flag.String("arena", "", "arena JSON path (default: generated range)")
	recordPath := flag.String("record", "", "record inputs to a replay file")
	replayPath := flag.String("replay", "", "play back a replay file")
	flag.Parse()

	ars := arsenal.Default()
	if *arsenalPath != "" {
		loaded, err := arsenal.Load(*arsenalPath)
		if err != nil {
			log.Fatal(err)
		}
		ars = loaded
	}

	ar := generateDemoArena()
	if *arenaPath != "" {
		loaded, err := arena.LoadJSON(*arenaPath)
		if err != nil {
			log.Fatal(err)
		}
		ar = loaded
	}

	var rec, pb *replay.Replay
	var err error
	switch {
	case *replayPath != "":
		pb, err = replay.Load(*replayPath)
		if err != nil {
			log.Fatal(err)
		}
		*seed = pb.Seed
	case *recordPath != "":
		if *seed == 0 {
			// Recording needs a pinned seed to reproduce
			*seed = time.Now().UnixNano()
		}
		rec, err = replay.NewRecorder(*recordPath, *seed, TickRate)
		if err != nil {
			log.Fatal(err)
		}
	}

	game := NewGame(ars, ar, *seed, rec, pb)

	ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
	ebiten.SetWindowTitle("Shooter Engine - Weapons Range")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
	if rec != nil {
		if err := rec.Close(); err != nil {
			log.Printf("close replay: %v", err)
		}
	}
}
