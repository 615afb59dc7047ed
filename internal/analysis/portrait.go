package analysis

import (
	"math"
	"strings"
	"unicode"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/storage"
)

// OrbitPortrait draws a top-down (x, y) view of every body path as text.
// Paths are dotted and each body's final position is marked with its
// initial, or '*' for stars. Both axes share one scale so orbits keep
// their shape, allowing for terminal cells being twice as tall as wide.
func OrbitPortrait(traj *storage.Trajectory, width, height int) string {
	if traj == nil || traj.Len() == 0 || width <= 0 || height <= 0 {
		return ""
	}

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
		return ""
	}

	dx, dy := (maxX-minX)*1.1, (maxY-minY)*1.1
	scaleX := math.Inf(1)
	if dx > 0 {
		scaleX = float64(width-1) / dx
	}
	if dy > 0 {
		scaleX = math.Min(scaleX, 2*float64(height-1)/dy)
	}
	if math.IsInf(scaleX, 1) {
		scaleX = 1
	}
	scaleY := scaleX / 2
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	plot := func(x, y float64, r rune) {
		col := int(math.Round((x-cx)*scaleX + float64(width-1)/2))
		row := int(math.Round(float64(height-1)/2 - (y-cy)*scaleY))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = r
		}
	}

	for _, row := range traj.Positions {
		for _, p := range row {
			if p.IsFinite() {
				plot(p.X, p.Y, '·')
			}
		}
	}
	last := traj.Positions[traj.Len()-1]
	for i, p := range last {
		if p.IsFinite() {
			plot(p.X, p.Y, marker(traj, i))
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteRune('\n')
	}
	return sb.String()
}

func marker(traj *storage.Trajectory, i int) rune {
	if i < len(traj.Kinds) && traj.Kinds[i] == body.Star {
		return '*'
	}
	for _, r := range traj.Names[i] {
		return unicode.ToUpper(r)
	}
	return '?'
}
