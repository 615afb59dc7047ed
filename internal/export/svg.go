package export

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/storage"
)

// kindColors is used for bodies with no entry in the color map.
var kindColors = map[body.Kind]string{
	body.Star:      "#ffd24a",
	body.Planet:    "#4fa3ff",
	body.Moon:      "#b0b0b0",
	body.Satellite: "#7cff7c",
}

// SVGOptions controls OrbitsToSVG. Colors maps body names to CSS stroke
// colors.
type SVGOptions struct {
	Width, Height int
	Background    string
	Colors        map[string]string
}

func (o SVGOptions) withDefaults() SVGOptions {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 800
	}
	if o.Background == "" {
		o.Background = "#0a0a0a"
	}
	return o
}

func (o SVGOptions) stroke(traj *storage.Trajectory, i int) string {
	if c, ok := o.Colors[traj.Names[i]]; ok && c != "" {
		return c
	}
	if i < len(traj.Kinds) {
		if s, ok := kindColors[traj.Kinds[i]]; ok {
			return s
		}
	}
	return "#ffffff"
}

// bounds returns the shared scale and centre so that every finite (x, y)
// position fits inside a w by h viewport with a 5% margin.
func bounds(traj *storage.Trajectory, w, h int) (scale, cx, cy float64, ok bool) {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, row := range traj.Positions {
		for _, p := range row {
			if !p.IsFinite() {
				continue
			}
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 1) {
		return 0, 0, 0, false
	}

	span := math.Max(maxX-minX, maxY-minY) * 1.1
	if span == 0 {
		span = 1
	}
	scale = float64(min(w, h)) / span
	return scale, (minX + maxX) / 2, (minY + maxY) / 2, true
}

// OrbitsToSVG writes a top-down (x, y) view of every body path as an SVG
// document: one polyline per body and a disc at its final position.
// Non-finite samples break the path.
func OrbitsToSVG(w io.Writer, traj *storage.Trajectory, opts SVGOptions) error {
	if traj == nil || traj.Len() == 0 {
		return fmt.Errorf("empty trajectory")
	}
	opts = opts.withDefaults()
	scale, cx, cy, ok := bounds(traj, opts.Width, opts.Height)
	if !ok {
		return fmt.Errorf("trajectory has no finite positions")
	}

	px := func(x, y float64) (float64, float64) {
		return (x-cx)*scale + float64(opts.Width)/2, float64(opts.Height)/2 - (y-cy)*scale
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background)

	last := traj.Positions[traj.Len()-1]
	for i, name := range traj.Names {
		color := opts.stroke(traj, i)
		fmt.Fprintf(&sb, "<g id=%q stroke=%q fill=%q>\n", name, color, color)

		var d strings.Builder
		pen := false
		for _, p := range traj.Path(i) {
			if !p.IsFinite() {
				pen = false
				continue
			}
			x, y := px(p.X, p.Y)
			cmd := "L"
			if !pen {
				cmd = "M"
				pen = true
			}
			fmt.Fprintf(&d, "%s%.1f,%.1f ", cmd, x, y)
		}
		if d.Len() > 0 {
			fmt.Fprintf(&sb, "<path fill=\"none\" stroke-width=\"1\" d=\"%s\"/>\n", strings.TrimSpace(d.String()))
		}

		if p := last[i]; p.IsFinite() {
			x, y := px(p.X, p.Y)
			r := 2.0
			if i < len(traj.Kinds) && traj.Kinds[i] == body.Star {
				r = 5
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.0f\"/>\n", x, y, r)
		}
		sb.WriteString("</g>\n")
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
