// Package camera maps between screen pixels and garden-world coordinates.
package camera

// Camera controls the viewport onto the garden. World coordinates are
// relative to the garden centre, so the default camera looks at (0, 0).
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Limit bounds |X| and |Y| so the garden cannot be panned off screen.
	Limit float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the garden with 1:1 zoom.
func New(viewportW, viewportH float32) *Camera {
	return &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   0.5,
		MaxZoom:   6.0,
	}
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible reports whether a circle at (wx, wy) may overlap the viewport.
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// SetLimit sets how far from the garden centre the camera may pan.
func (c *Camera) SetLimit(limit float32) {
	c.Limit = limit
	c.X = clamp(c.X, -limit, limit)
	c.Y = clamp(c.Y, -limit, limit)
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.Zoom, -c.Limit, c.Limit)
	c.Y = clamp(c.Y+dy/c.Zoom, -c.Limit, c.Limit)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomAt scales the zoom by factor while keeping the world point under
// screen position (sx, sy) fixed, up to the pan limit.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.SetZoom(c.Zoom * factor)
	c.X = clamp(wx-(sx-c.ViewportW/2)/c.Zoom, -c.Limit, c.Limit)
	c.Y = clamp(wy-(sy-c.ViewportH/2)/c.Zoom, -c.Limit, c.Limit)
}

// Reset returns the camera to the garden centre at 1:1 zoom.
func (c *Camera) Reset() {
	c.X, c.Y = 0, 0
	c.Zoom = 1.0
}

func absf(x float32) float32 {
	return max(x, -x)
}

func clamp(x, lo, hi float32) float32 {
	return min(max(x, lo), hi)
}
