// This file is part of GopherMSX.
//
// GopherMSX is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherMSX is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherMSX.  If not, see <https://www.gnu.org/licenses/>.

package display

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jetsetilly/gophermsx/hardware/vdp/timing"
	"github.com/jetsetilly/gophermsx/video/framebuffer"
)

// Display implements the ebiten.Game interface.
type Display struct {
	frames <-chan framebuffer.Frame

	scale  float64
	smooth bool

	// show frame information over the image
	Overlay atomic.Bool

	// the most recently received frame and whether it has yet to be copied to
	// the ebiten image
	current framebuffer.Frame
	pending bool

	img *ebiten.Image

	quit      atomic.Bool
	done      chan struct{}
	closeDone sync.Once
}

// NewDisplay is the preferred method of initialisation for the Display type.
// A scale value of less than one is treated as one.
func NewDisplay(frames <-chan framebuffer.Frame, scale float64, smooth bool) *Display {
	if scale < 1.0 {
		scale = 1.0
	}
	return &Display{
		frames: frames,
		scale:  scale,
		smooth: smooth,
		done:   make(chan struct{}),
	}
}

// Run opens the window and services it until it is closed. Must be called from
// the main goroutine.
func (d *Display) Run(title string) error {
	defer d.closeDone.Do(func() { close(d.done) })

	w := int(float64(framebuffer.Width) * d.scale)
	h := int(float64(timing.SpecNTSC.LinesPerFrame) * d.scale)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizeMode(ebiten.WindowResizeModeEnabled)
	ebiten.SetRunnableOnUnfocused(true)

	err := ebiten.RunGame(d)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

// Stop causes Run() to return at the next update. Safe to call from any
// goroutine.
func (d *Display) Stop() {
	d.quit.Store(true)
}

// Done returns a channel that is closed when the window has been closed.
func (d *Display) Done() <-chan struct{} {
	return d.done
}

// receive the most recent frame waiting on the frames channel. returns false
// if the channel has been closed.
func (d *Display) receive() bool {
	for {
		select {
		case f, ok := <-d.frames:
			if !ok {
				return false
			}
			d.current = f
			d.pending = true
		default:
			return true
		}
	}
}

// Update implements the ebiten.Game interface.
func (d *Display) Update() error {
	if d.quit.Load() || !d.receive() {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		d.Overlay.Store(!d.Overlay.Load())
	}

	return nil
}

// Draw implements the ebiten.Game interface.
func (d *Display) Draw(screen *ebiten.Image) {
	if d.current.Image == nil {
		return
	}

	if d.pending {
		bounds := d.current.Image.Bounds()
		if d.img == nil || d.img.Bounds().Size() != bounds.Size() {
			if d.img != nil {
				d.img.Deallocate()
			}
			d.img = ebiten.NewImage(bounds.Dx(), bounds.Dy())
		}
		d.img.WritePixels(d.current.Image.Pix)
		d.pending = false
	}

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	scale, x, y := fit(d.img.Bounds().Size(), image.Pt(sw, sh))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	if d.smooth {
		op.Filter = ebiten.FilterLinear
	} else {
		op.Filter = ebiten.FilterNearest
	}
	screen.DrawImage(d.img, op)

	if d.Overlay.Load() {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("frame %d\n%.2f fps", d.current.Number, ebiten.ActualFPS()))
	}
}

// Layout implements the ebiten.Game interface.
func (d *Display) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// fit returns the scaling value and offset required to centre an image of
// size src within dst while preserving its aspect ratio.
func fit(src image.Point, dst image.Point) (scale float64, x float64, y float64) {
	if src.X <= 0 || src.Y <= 0 {
		return 1.0, 0, 0
	}

	sx := float64(dst.X) / float64(src.X)
	sy := float64(dst.Y) / float64(src.Y)
	scale = min(sx, sy)

	x = (float64(dst.X) - float64(src.X)*scale) / 2
	y = (float64(dst.Y) - float64(src.Y)*scale) / 2

	return scale, x, y
}
