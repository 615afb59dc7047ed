package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"
)

const (
	cellW = 8
	cellH = 16
)

var framePalette = color.Palette{color.Black, color.White}

// rasterize renders the canvas as a two-colour image, one block per dot.
func rasterize(c *Canvas) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*cellW, c.Height*cellH), framePalette)
	dotW, dotH := cellW/2, cellH/4
	w, h := c.Dots()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !c.IsSet(x, y) {
				continue
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, 1)
				}
			}
		}
	}
	return img
}

func (m *Model) captureFrame() {
	m.frames = append(m.frames, rasterize(m.canvas))
}

// saveGIF writes frames as a looping animation. Frames of different sizes
// (after a terminal resize) are each kept at their own size.
func saveGIF(path string, frames []*image.Paletted) error {
	if len(frames) == 0 {
		return errors.New("no frames recorded")
	}
	anim := gif.GIF{LoopCount: 0}
	bounds := image.Rectangle{}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 3)
		bounds = bounds.Union(frame.Bounds())
	}
	anim.Config = image.Config{ColorModel: framePalette, Width: bounds.Dx(), Height: bounds.Dy()}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}
