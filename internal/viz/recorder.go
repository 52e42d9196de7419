package viz

import (
	"image"
	"image/gif"
	"io"

	"github.com/san-kum/swsim/internal/ocean"
)

// Recorder captures one GIF frame of H per observed snapshot.
type Recorder struct {
	palette  Palette
	cellSize int
	delay    int
	frames   []*image.Paletted
}

// NewRecorder draws each grid cell as a cellSize square; delay is in
// hundredths of a second.
func NewRecorder(p Palette, cellSize, delay int) *Recorder {
	if cellSize < 1 {
		cellSize = 1
	}
	return &Recorder{palette: p, cellSize: cellSize, delay: delay}
}

func (r *Recorder) OnFrame(s ocean.Snapshot) {
	rows, cols := s.Dims()
	img := image.NewPaletted(image.Rect(0, 0, cols*r.cellSize, rows*r.cellSize), r.palette.Colors())
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			idx := uint8(r.palette.Index(s.H.At(i, j)))
			for y := i * r.cellSize; y < (i+1)*r.cellSize; y++ {
				for x := j * r.cellSize; x < (j+1)*r.cellSize; x++ {
					img.SetColorIndex(x, y, idx)
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

func (r *Recorder) Frames() int { return len(r.frames) }

func (r *Recorder) Reset() { r.frames = nil }

func (r *Recorder) Encode(w io.Writer) error {
	anim := &gif.GIF{
		Image: r.frames,
		Delay: make([]int, len(r.frames)),
	}
	for i := range anim.Delay {
		anim.Delay[i] = r.delay
	}
	return gif.EncodeAll(w, anim)
}
