package viz

import (
	"image"
	"image/color"
	"image/gif"
	"os"
)

const (
	charW, charH = 8, 16
	// frame delay in 100ths of a second
	gifDelay = 4
)

// Recorder rasterises canvas snapshots into an animated GIF.
type Recorder struct {
	frames []*image.Paletted
}

func (r *Recorder) Len() int { return len(r.frames) }

func (r *Recorder) Capture(c *Canvas) {
	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), color.Palette{color.Black, color.White})
	dotW, dotH := charW/2, charH/4
	for y := 0; y < c.Height*4; y++ {
		for x := 0; x < c.Width*2; x++ {
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
	r.frames = append(r.frames, img)
}

// Save writes the recorded frames to path and clears the recorder.
func (r *Recorder) Save(path string) error {
	if len(r.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, gifDelay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return err
	}
	r.frames = nil
	return nil
}
