package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/1siamBot/shooter-engine/engine/core"
)

// HUD draws the combat overlay: ammo and phase for the local entity,
// the loadout list, a crosshair and a short event feed.
type HUD struct {
	ScreenW, ScreenH int
	Face             font.Face

	feed    []feedLine
	feedMax int
}

type feedLine struct {
	text string
	ttl  float64
}

func NewHUD(sw, sh int) *HUD {
	return &HUD{ScreenW: sw, ScreenH: sh, Face: basicfont.Face7x13, feedMax: 6}
}

// Subscribe wires the event feed to the bus
func (h *HUD) Subscribe(bus *core.EventBus) {
	bus.On(core.EvtEntityDied, func(e core.Event) {
		p := e.Payload.(core.DamagePayload)
		h.Push(fmt.Sprintf("entity %d down", p.Entity))
	})
	bus.On(core.EvtPickupCollected, func(e core.Event) {
		p := e.Payload.(core.PickupPayload)
		h.Push(fmt.Sprintf("picked up %s", p.Name))
	})
	bus.On(core.EvtWeaponSwitched, func(e core.Event) {
		p := e.Payload.(core.AmmoPayload)
		h.Push(fmt.Sprintf("switched to %s", p.Weapon))
	})
}

// Push adds a line to the event feed
func (h *HUD) Push(s string) {
	h.feed = append(h.feed, feedLine{text: s, ttl: 4})
	if len(h.feed) > h.feedMax {
		h.feed = h.feed[len(h.feed)-h.feedMax:]
	}
}

// Update ages the feed
func (h *HUD) Update(dt float64) {
	kept := h.feed[:0]
	for _, l := range h.feed {
		l.ttl -= dt
		if l.ttl > 0 {
			kept = append(kept, l)
		}
	}
	h.feed = kept
}

// Draw renders the overlay for the local entity
func (h *HUD) Draw(screen *ebiten.Image, w *core.World, local core.EntityID, now float64) {
	h.drawFeed(screen)
	lc := w.Get(local, core.CompLoadout)
	if lc == nil {
		return
	}
	loadout := lc.(*core.Loadout)
	h.drawAmmo(screen, loadout, now)
	h.drawSlots(screen, loadout)
}

func (h *HUD) drawAmmo(screen *ebiten.Image, loadout *core.Loadout, now float64) {
	ws := loadout.ActiveWeapon()
	if ws == nil {
		return
	}

	px := 14
	py := h.ScreenH - 70
	vector.DrawFilledRect(screen, float32(px-6), float32(py-16), 210, 76, color.RGBA{0, 0, 0, 170}, false)

	text.Draw(screen, fmt.Sprintf("%s [%s]", ws.Def.Name, ws.Def.Mode), h.Face, px, py, color.White)

	ammo := fmt.Sprintf("%d / %d", ws.Magazine, ws.Reserve)
	if ws.Def.InfiniteAmmo {
		ammo = fmt.Sprintf("%d / --", ws.Magazine)
	}
	ammoClr := color.RGBA{255, 255, 255, 255}
	if ws.Magazine == 0 {
		ammoClr = color.RGBA{255, 80, 80, 255}
	}
	text.Draw(screen, ammo, h.Face, px, py+18, ammoClr)

	switch ws.Phase {
	case core.PhaseReloading:
		prog := ws.ReloadProgress(now)
		vector.DrawFilledRect(screen, float32(px), float32(py+26), 180, 6, color.RGBA{60, 60, 60, 255}, false)
		vector.DrawFilledRect(screen, float32(px), float32(py+26), 180*float32(prog), 6, color.RGBA{120, 180, 255, 255}, false)
		text.Draw(screen, "RELOADING", h.Face, px, py+48, color.RGBA{120, 180, 255, 255})
	case core.PhaseBursting:
		text.Draw(screen, fmt.Sprintf("BURST %d", ws.BurstLeft), h.Face, px, py+48, color.RGBA{255, 200, 80, 255})
	default:
		if ws.Magazine == 0 {
			text.Draw(screen, "RELOAD [R]", h.Face, px, py+48, color.RGBA{255, 80, 80, 255})
		}
	}
}

func (h *HUD) drawSlots(screen *ebiten.Image, loadout *core.Loadout) {
	y := h.ScreenH - 16 - 16*len(loadout.Weapons)
	for i, ws := range loadout.Weapons {
		line := fmt.Sprintf("%d %-9s %d/%d", i+1, ws.Def.Name, ws.Magazine, ws.Reserve)
		clr := color.RGBA{150, 150, 150, 255}
		if i == loadout.Active {
			clr = color.RGBA{255, 255, 255, 255}
		}
		text.Draw(screen, line, h.Face, h.ScreenW-180, y, clr)
		y += 16
	}
}

func (h *HUD) drawFeed(screen *ebiten.Image) {
	y := 24
	for _, l := range h.feed {
		a := uint8(255)
		if l.ttl < 1 {
			a = uint8(255 * l.ttl)
		}
		text.Draw(screen, l.text, h.Face, 14, y, color.RGBA{220, 220, 220, a})
		y += 16
	}
}

// DrawCrosshair draws the aim marker with a gap that widens as spread
// builds up
func (h *HUD) DrawCrosshair(screen *ebiten.Image, mx, my int, ws *core.WeaponState) {
	gap := float32(4)
	if ws != nil {
		gap += float32(ws.SpreadMult * ws.Def.SpreadDeg * 1.5)
	}
	arm := float32(6)
	x, y := float32(mx), float32(my)
	clr := color.RGBA{240, 240, 240, 220}
	vector.StrokeLine(screen, x-gap-arm, y, x-gap, y, 1, clr, false)
	vector.StrokeLine(screen, x+gap, y, x+gap+arm, y, 1, clr, false)
	vector.StrokeLine(screen, x, y-gap-arm, x, y-gap, 1, clr, false)
	vector.StrokeLine(screen, x, y+gap, x, y+gap+arm, 1, clr, false)
}

// DrawBanner centers a large status line, for pause and game over
func (h *HUD) DrawBanner(screen *ebiten.Image, msg string) {
	bw := float32(len(msg)*7 + 40)
	bx := (float32(h.ScreenW) - bw) / 2
	by := float32(h.ScreenH)/2 - 24
	vector.DrawFilledRect(screen, bx, by, bw, 48, color.RGBA{0, 0, 0, 200}, false)
	text.Draw(screen, msg, h.Face, int(bx)+20, int(by)+28, color.White)
}
