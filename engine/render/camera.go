package render

import "math"

// Camera is the viewport into the 2D world
type Camera struct {
	X, Y    float64 // camera center (world units)
	Zoom    float64 // zoom level (1.0 = default)
	MinZoom float64
	MaxZoom float64
	PPU     float64 // pixels per world unit at zoom 1
	ScreenW int     // viewport width in pixels
	ScreenH int     // viewport height in pixels

	// KickX, KickY is a transient world-unit offset fed from the active
	// weapon's recoil so the view jolts with each shot.
	KickX, KickY float64
}

// NewCamera creates a camera with default settings
func NewCamera(screenW, screenH int) *Camera {
	return &Camera{
		Zoom:    1.0,
		MinZoom: 0.25,
		MaxZoom: 4.0,
		PPU:     32,
		ScreenW: screenW,
		ScreenH: screenH,
	}
}

// Scale returns screen pixels per world unit
func (c *Camera) Scale() float64 { return c.PPU * c.Zoom }

// Pan moves the camera by pixel delta
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Scale()
	c.Y += dy / c.Scale()
}

// SetZoom sets zoom level with clamping
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(c.MinZoom, math.Min(c.MaxZoom, z))
}

// ZoomAt zooms toward a screen point
func (c *Camera) ZoomAt(delta float64, screenX, screenY int) {
	// Convert screen point to world before zoom
	wx, wy := c.ScreenToWorld(screenX, screenY)
	c.SetZoom(c.Zoom + delta)
	// Convert same screen point to world after zoom
	wx2, wy2 := c.ScreenToWorld(screenX, screenY)
	// Adjust camera to keep the point stationary
	c.X += wx - wx2
	c.Y += wy - wy2
}

// CenterOn centers the camera on a world position
func (c *Camera) CenterOn(wx, wy float64) {
	c.X = wx
	c.Y = wy
}

// WorldToScreen converts a world position to screen pixels
func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	s := c.Scale()
	sx := (wx-c.X-c.KickX)*s + float64(c.ScreenW)/2
	sy := (wy-c.Y-c.KickY)*s + float64(c.ScreenH)/2
	return sx, sy
}

// ScreenToWorld converts screen pixels to a world position
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	s := c.Scale()
	wx := (float64(sx)-float64(c.ScreenW)/2)/s + c.X + c.KickX
	wy := (float64(sy)-float64(c.ScreenH)/2)/s + c.Y + c.KickY
	return wx, wy
}

// VisibleRect returns the world-space rectangle covering the screen
func (c *Camera) VisibleRect() (minX, minY, maxX, maxY float64) {
	minX, minY = c.ScreenToWorld(0, 0)
	maxX, maxY = c.ScreenToWorld(c.ScreenW, c.ScreenH)
	return
}
