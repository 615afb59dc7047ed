package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/orrery/internal/geometry"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	if w, h := c.Dots(); w != 4 || h != 4 {
		t.Fatalf("expected 4x4 dots, got %dx%d", w, h)
	}

	c.Set(0, 0)
	c.Set(1, 3)
	if c.Grid[0][0] != brailleBlank|0x1|0x80 {
		t.Errorf("unexpected cell %U", c.Grid[0][0])
	}
	if !c.IsSet(1, 3) || c.IsSet(1, 2) {
		t.Error("IsSet disagrees with Set")
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != brailleBlank|0x80 {
		t.Errorf("unset failed: %U", c.Grid[0][0])
	}

	c.Set(-1, 0)
	c.Set(100, 0)
	c.Unset(0, -5)

	c.Clear()
	if c.Grid[0][0] != brailleBlank || c.Grid[0][1] != brailleBlank {
		t.Error("clear failed")
	}
}

func TestCanvasDisc(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Disc(10, 10, 0)
	if !c.IsSet(10, 10) || c.IsSet(11, 10) {
		t.Error("radius 0 should set exactly one dot")
	}

	c.Clear()
	c.Disc(10, 10, 2)
	count := 0
	w, h := c.Dots()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c.IsSet(x, y) {
				count++
			}
		}
	}
	if count != 13 {
		t.Errorf("radius 2 disc should cover 13 dots, got %d", count)
	}
}

func TestCanvasLineAndString(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal dot %d missing", i)
		}
	}

	lines := strings.Split(c.String(), "\n")
	if len(lines) != 2 || len([]rune(lines[0])) != 4 {
		t.Errorf("unexpected canvas shape: %q", c.String())
	}
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera(100)

	x, y, ok := cam.Project(geometry.Zero, 200, 100)
	if !ok || x != 100 || y != 50 {
		t.Errorf("origin should map to centre, got (%d, %d, %v)", x, y, ok)
	}

	x, y, ok = cam.Project(geometry.New(100, 0, 0), 200, 100)
	if !ok || x != 150 || y != 50 {
		t.Errorf("extent along x should reach half the short edge, got (%d, %d)", x, y)
	}

	_, y, _ = cam.Project(geometry.New(0, 50, 0), 200, 100)
	if y != 25 {
		t.Errorf("positive y should go up, got %d", y)
	}

	cam.ZoomIn()
	if _, _, ok := cam.Project(geometry.New(1000, 0, 0), 200, 100); ok {
		t.Error("far point should be off canvas")
	}
	if _, _, ok := cam.Project(geometry.New(math.NaN(), 0, 0), 200, 100); ok {
		t.Error("NaN should not project")
	}
}

func TestCameraTiltAndZoomBounds(t *testing.T) {
	cam := NewCamera(0)
	if cam.Extent != 1 {
		t.Errorf("zero extent should fall back to 1, got %f", cam.Extent)
	}

	for i := 0; i < 100; i++ {
		cam.ZoomIn()
		cam.TiltBy(0.1)
	}
	if cam.Zoom != maxZoom || cam.Tilt != math.Pi/2 {
		t.Errorf("bounds not applied: zoom=%f tilt=%f", cam.Zoom, cam.Tilt)
	}

	cam.Tilt = math.Pi / 2
	cam.Zoom = 1
	_, y, _ := cam.Project(geometry.New(0, 0, 0.5), 100, 100)
	if y != 25 {
		t.Errorf("tilted view should show z as height, got y=%d", y)
	}
}
