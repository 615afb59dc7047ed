package viz

import (
	"math"

	"github.com/san-kum/orrery/internal/geometry"
)

const (
	minZoom = 1e-3
	maxZoom = 1e4
)

// Camera maps world coordinates in metres onto canvas dots. The view looks
// down the z axis, optionally tilted about x.
type Camera struct {
	Center geometry.Vector3
	Extent float64 // metres from the centre to the shorter canvas edge at zoom 1
	Zoom   float64
	Tilt   float64
}

func NewCamera(extent float64) *Camera {
	if !(extent > 0) || math.IsInf(extent, 0) {
		extent = 1
	}
	return &Camera{Extent: extent, Zoom: 1}
}

func (c *Camera) ZoomIn()  { c.Zoom = math.Min(maxZoom, c.Zoom*1.25) }
func (c *Camera) ZoomOut() { c.Zoom = math.Max(minZoom, c.Zoom/1.25) }

func (c *Camera) TiltBy(a float64) {
	c.Tilt = math.Max(-math.Pi/2, math.Min(math.Pi/2, c.Tilt+a))
}

// rotate applies the tilt about the x axis.
func (c *Camera) rotate(p geometry.Vector3) geometry.Vector3 {
	if c.Tilt == 0 {
		return p
	}
	cs, sn := math.Cos(c.Tilt), math.Sin(c.Tilt)
	return geometry.New(p.X, p.Y*cs+p.Z*sn, -p.Y*sn+p.Z*cs)
}

// Project returns the dot coordinates of p on a canvas of w x h dots and
// whether they fall inside it. Braille dots are close to square, so both
// axes share one scale.
func (c *Camera) Project(p geometry.Vector3, w, h int) (int, int, bool) {
	if !p.IsFinite() {
		return 0, 0, false
	}
	r := c.rotate(p.Sub(c.Center))
	scale := float64(min(w, h)) / 2 * c.Zoom / c.Extent

	x := int(math.Round(float64(w)/2 + r.X*scale))
	y := int(math.Round(float64(h)/2 - r.Y*scale))
	return x, y, x >= 0 && x < w && y >= 0 && y < h
}
