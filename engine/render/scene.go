package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/1siamBot/shooter-engine/engine/arena"
	"github.com/1siamBot/shooter-engine/engine/core"
)

// Palette for things that have no sprite color of their own
var (
	floorColor      = color.RGBA{24, 26, 30, 255}    // near black
	wallColor       = color.RGBA{70, 74, 82, 255}    // slate
	wallEdgeColor   = color.RGBA{30, 32, 36, 255}
	facingColor     = color.RGBA{0, 0, 0, 160}
	projectileColor = color.RGBA{255, 240, 180, 255} // tracer yellow
	tracerColor     = color.RGBA{255, 240, 180, 110}
	healthBack      = color.RGBA{40, 40, 40, 200}
	healthGood      = color.RGBA{80, 220, 80, 255}
	healthBad       = color.RGBA{220, 60, 60, 255}
	muzzleColor     = color.RGBA{255, 220, 120, 220}
	impactColor     = color.RGBA{255, 160, 80, 200}
	blastColor      = color.RGBA{255, 120, 40, 180}
)

// SceneRenderer draws the whole scene as flat shapes: circles for
// actors and shots, rects for walls and crates, rings for blasts.
type SceneRenderer struct {
	Camera *Camera
}

// NewSceneRenderer creates a renderer with its own camera
func NewSceneRenderer(screenW, screenH int) *SceneRenderer {
	return &SceneRenderer{Camera: NewCamera(screenW, screenH)}
}

// DrawArena fills the floor and the blocked tiles in view
func (r *SceneRenderer) DrawArena(screen *ebiten.Image, a *arena.Arena) {
	screen.Fill(floorColor)
	if a == nil {
		return
	}
	s := float32(r.Camera.Scale())
	minX, minY, maxX, maxY := r.Camera.VisibleRect()

	x0, y0 := int(math.Floor(minX)), int(math.Floor(minY))
	x1, y1 := int(math.Ceil(maxX)), int(math.Ceil(maxY))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > a.Width {
		x1 = a.Width
	}
	if y1 > a.Height {
		y1 = a.Height
	}

	for ty := y0; ty < y1; ty++ {
		for tx := x0; tx < x1; tx++ {
			if !a.BlockedAt(tx, ty) {
				continue
			}
			sx, sy := r.Camera.WorldToScreen(float64(tx), float64(ty))
			vector.DrawFilledRect(screen, float32(sx), float32(sy), s, s, wallColor, false)
			vector.StrokeRect(screen, float32(sx), float32(sy), s, s, 1, wallEdgeColor, false)
		}
	}
}

type drawItem struct {
	id core.EntityID
	z  int
}

// DrawEntities draws sprites with health bars, then projectiles, then
// effects on top
func (r *SceneRenderer) DrawEntities(screen *ebiten.Image, w *core.World) {
	var items []drawItem
	for _, id := range w.Query(core.CompPosition, core.CompSprite) {
		sp := w.Get(id, core.CompSprite).(*core.Sprite)
		if !sp.Visible {
			continue
		}
		items = append(items, drawItem{id, sp.ZOrder})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].z < items[j].z })

	scale := r.Camera.Scale()
	for _, it := range items {
		pos := w.Get(it.id, core.CompPosition).(*core.Position)
		sp := w.Get(it.id, core.CompSprite).(*core.Sprite)
		sx, sy := r.Camera.WorldToScreen(pos.X, pos.Y)
		rad := float32(sp.Radius * scale)
		clr := rgba(sp.Color)

		if w.Has(it.id, core.CompPickup) {
			// Crates draw as squares so they read differently from actors
			vector.DrawFilledRect(screen, float32(sx)-rad, float32(sy)-rad, rad*2, rad*2, clr, false)
			vector.StrokeRect(screen, float32(sx)-rad, float32(sy)-rad, rad*2, rad*2, 1, wallEdgeColor, false)
			continue
		}

		vector.DrawFilledCircle(screen, float32(sx), float32(sy), rad, clr, false)

		// Facing tick from center to rim
		fx := sx + math.Cos(pos.Facing)*sp.Radius*scale
		fy := sy + math.Sin(pos.Facing)*sp.Radius*scale
		vector.StrokeLine(screen, float32(sx), float32(sy), float32(fx), float32(fy), 2, facingColor, false)

		if hc := w.Get(it.id, core.CompHealth); hc != nil {
			r.drawHealthBar(screen, sx, sy-float64(rad)-7, float64(rad)*2, hc.(*core.Health).Ratio())
		}
	}

	r.drawProjectiles(screen, w)
	r.drawEffects(screen, w)
}

func (r *SceneRenderer) drawProjectiles(screen *ebiten.Image, w *core.World) {
	scale := r.Camera.Scale()
	for _, id := range w.Query(core.CompPosition, core.CompProjectile) {
		proj := w.Get(id, core.CompProjectile).(*core.Projectile)
		if proj.Resolved {
			continue
		}
		pos := w.Get(id, core.CompPosition).(*core.Position)
		sx, sy := r.Camera.WorldToScreen(pos.X, pos.Y)
		rad := float32(math.Max(proj.Radius*scale, 2))

		// Short tracer tail opposite the velocity
		tx := sx - proj.DirX*0.4*scale
		ty := sy - proj.DirY*0.4*scale
		vector.StrokeLine(screen, float32(tx), float32(ty), float32(sx), float32(sy), rad, tracerColor, false)
		vector.DrawFilledCircle(screen, float32(sx), float32(sy), rad, projectileColor, false)
	}
}

func (r *SceneRenderer) drawEffects(screen *ebiten.Image, w *core.World) {
	scale := r.Camera.Scale()
	for _, id := range w.Query(core.CompPosition, core.CompEffect) {
		fx := w.Get(id, core.CompEffect).(*core.Effect)
		pos := w.Get(id, core.CompPosition).(*core.Position)
		sx, sy := r.Camera.WorldToScreen(pos.X, pos.Y)
		p := fx.Progress()

		switch fx.Kind {
		case core.FxMuzzle:
			rad := float32(fx.Radius * (1 - p) * scale)
			vector.DrawFilledCircle(screen, float32(sx), float32(sy), rad, muzzleColor, false)
		case core.FxImpact:
			rad := float32(fx.Radius * p * scale)
			vector.StrokeCircle(screen, float32(sx), float32(sy), rad, 2, impactColor, false)
		case core.FxExplosion:
			// Ring expands to the blast radius while the core fades
			rad := float32(fx.Radius * p * scale)
			vector.StrokeCircle(screen, float32(sx), float32(sy), rad, 3, blastColor, false)
			inner := rad * 0.6 * float32(1-p)
			vector.DrawFilledCircle(screen, float32(sx), float32(sy), inner, impactColor, false)
		}
	}
}

func (r *SceneRenderer) drawHealthBar(screen *ebiten.Image, cx, top, width, ratio float64) {
	if ratio >= 1 {
		return
	}
	x := float32(cx - width/2)
	y := float32(top)
	w := float32(width)
	vector.DrawFilledRect(screen, x, y, w, 4, healthBack, false)
	clr := healthGood
	if ratio < 0.35 {
		clr = healthBad
	}
	vector.DrawFilledRect(screen, x, y, w*float32(ratio), 4, clr, false)
}

func rgba(c uint32) color.RGBA {
	return color.RGBA{uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)}
}
