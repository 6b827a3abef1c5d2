package engine

// Camera is the affine world↔screen mapping for one board view. Objects are
// stored in world coordinates; the camera owns the pan offset and the scale
// factor, so screen = world*scale + pan.
type Camera struct {
	PanX  float64 `json:"panX"`
	PanY  float64 `json:"panY"`
	Scale float64 `json:"scale"`
}

const (
	minScale = 0.05
	maxScale = 20.0
)

// NewCamera returns an identity camera (no pan, 1:1 scale).
func NewCamera() Camera {
	return Camera{Scale: 1}
}

func (c *Camera) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - c.PanX) / c.Scale, (sy - c.PanY) / c.Scale
}

func (c *Camera) WorldToScreen(wx, wy float64) (float64, float64) {
	return wx*c.Scale + c.PanX, wy*c.Scale + c.PanY
}

// Pan shifts the viewport by a screen-space delta.
func (c *Camera) Pan(dx, dy float64) {
	c.PanX += dx
	c.PanY += dy
}

// ZoomAt rescales by factor, clamped to [minScale, maxScale], then recomputes
// the pan so the world point under (sx, sy) stays fixed on screen.
func (c *Camera) ZoomAt(factor, sx, sy float64) {
	newScale := clamp(c.Scale*factor, minScale, maxScale)
	if newScale == c.Scale {
		return
	}
	ratio := newScale / c.Scale
	c.PanX = sx - (sx-c.PanX)*ratio
	c.PanY = sy - (sy-c.PanY)*ratio
	c.Scale = newScale
}

// Reset returns the camera to identity.
func (c *Camera) Reset() {
	*c = NewCamera()
}

// Matrix returns the world→screen transform as [a, b, c, d, e, f], the
// layout a Canvas2D setTransform call expects.
func (c *Camera) Matrix() []float64 {
	return []float64{c.Scale, 0, 0, c.Scale, c.PanX, c.PanY}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
