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

package framebuffer

import (
	"fmt"
	"image"
	"image/color"
	"sync/atomic"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/vdp"
	"github.com/jetsetilly/gophermsx/hardware/vdp/mode"
	"github.com/jetsetilly/gophermsx/hardware/vdp/timing"
	"golang.org/x/image/draw"
)

// TicksPerPixel is the number of UC ticks covered by one pixel of the image.
const TicksPerPixel = 4

// Width is the width of the image in pixels.
const Width = timing.UCTicksPerLine / TicksPerPixel

// Frame is a finished frame.
type Frame struct {
	Image *image.RGBA

	// the number of the frame since the sink was created and the virtual
	// time at which the frame ended
	Number int
	Time   clocks.Time
}

// Sink is an implementation of the renderer.Rasterizer interface.
type Sink struct {
	vdp *vdp.VDP

	active    atomic.Bool
	recording atomic.Bool

	displayMode mode.DisplayMode
	colorMode   mode.ColorMode
	palette     [mode.PaletteEntries]color.RGBA

	// the image being drawn
	img *image.RGBA

	frameNum int
	dropped  atomic.Int64

	// Frames receives every finished frame
	Frames chan Frame
}

// NewSink is the preferred method of initialisation for the Sink type. The
// queue argument is the capacity of the Frames channel.
func NewSink(queue int) *Sink {
	s := &Sink{
		Frames: make(chan Frame, queue),
	}
	s.active.Store(true)
	s.img = image.NewRGBA(image.Rect(0, 0, Width, timing.SpecNTSC.LinesPerFrame))
	for i := range s.palette {
		s.palette[i] = color.RGBA{A: 255}
	}
	return s
}

func (s *Sink) String() string {
	return fmt.Sprintf("frame: %d dropped: %d %s %s", s.frameNum, s.Dropped(), s.displayMode, s.colorMode)
}

// AttachVDP sets the source of the VRAM and register values used when
// drawing. Until it is called the display area is drawn as border.
func (s *Sink) AttachVDP(v *vdp.VDP) {
	s.vdp = v
}

// SetActive sets whether the sink wants frames. An inactive sink causes every
// frame to be skipped.
func (s *Sink) SetActive(active bool) {
	s.active.Store(active)
}

// IsActive implements the renderer.Rasterizer interface.
func (s *Sink) IsActive() bool {
	return s.active.Load()
}

// SetRecording sets whether the output is being recorded. Recorded output
// never skips frames.
func (s *Sink) SetRecording(recording bool) {
	s.recording.Store(recording)
}

// IsRecording implements the renderer.Rasterizer interface.
func (s *Sink) IsRecording() bool {
	return s.recording.Load()
}

// Dropped returns the number of finished frames that were not received
// because the Frames channel was full.
func (s *Sink) Dropped() int {
	return int(s.dropped.Load())
}

// Reset implements the renderer.Rasterizer interface.
func (s *Sink) Reset() {
	draw.Draw(s.img, s.img.Bounds(), image.Black, image.Point{}, draw.Src)
}

// FrameStart implements the renderer.Rasterizer interface.
func (s *Sink) FrameStart() {
	lines := timing.SpecNTSC.LinesPerFrame
	if s.vdp != nil {
		lines = s.vdp.Spec().LinesPerFrame
	}
	if s.img.Bounds().Dy() != lines {
		s.img = image.NewRGBA(image.Rect(0, 0, Width, lines))
	}
}

// FrameEnd implements the renderer.Rasterizer interface.
func (s *Sink) FrameEnd(t clocks.Time) {
	s.frameNum++

	select {
	case s.Frames <- Frame{Image: s.img, Number: s.frameNum, Time: t}:
		s.img = image.NewRGBA(s.img.Bounds())
	default:
		s.dropped.Add(1)
	}
}

// SetDisplayMode implements the renderer.Rasterizer interface.
func (s *Sink) SetDisplayMode(m mode.DisplayMode) {
	s.displayMode = m
}

// SetColorMode implements the renderer.Rasterizer interface.
func (s *Sink) SetColorMode(m mode.ColorMode) {
	s.colorMode = m
}

// SetPalette implements the renderer.Rasterizer interface. The components are
// five bits.
func (s *Sink) SetPalette(index int, r, g, b uint8) {
	s.palette[index&(mode.PaletteEntries-1)] = color.RGBA{R: expand5(r), G: expand5(g), B: expand5(b), A: 255}
}

func expand5(v uint8) uint8 {
	v &= 0x1f
	return v<<3 | v>>2
}

// the columns of the image covered by the UC ticks from x to x+width
func columns(x, width int) (int, int) {
	return x / TicksPerPixel, (x + width) / TicksPerPixel
}

func (s *Sink) backdrop() color.RGBA {
	if s.vdp == nil {
		return s.palette[0]
	}
	return s.palette[s.vdp.BackdropColor()]
}

// DrawBorder implements the renderer.Rasterizer interface.
func (s *Sink) DrawBorder(fromX, fromY, toX, toY int) {
	x0, x1 := columns(fromX, toX-fromX)
	r := image.Rect(x0, fromY, x1, toY)
	draw.Draw(s.img, r, image.NewUniform(s.backdrop()), image.Point{}, draw.Src)
}

// DrawDisplay implements the renderer.Rasterizer interface. The rectangle
// can extend into the top and bottom borders, which are drawn with the
// backdrop colour.
func (s *Sink) DrawDisplay(fromX, fromY, displayX, displayY, displayYA, _, width, height int) {
	if s.vdp == nil || !s.displayMode.IsBitmap() {
		s.DrawBorder(fromX, fromY, fromX+width, fromY+height)
		return
	}

	x0, x1 := columns(fromX, width)
	x1 = min(x1, Width)
	y1 := min(fromY+height, s.img.Bounds().Dy())

	vram := s.vdp.VRAM()
	displayLines := s.vdp.VerticalTiming().Display
	modeWidth := s.displayMode.Width()
	bpp := s.colorMode.BitsPerPixel()
	lineBytes := modeWidth * bpp / 8
	displayTicks := timing.Horizontal.Display
	scrollX := s.vdp.ScrollAX()
	scrollY := s.vdp.ScrollAY()
	backdrop := s.backdrop()

	for y := fromY; y < y1; y++ {
		row := y - fromY
		if dy := displayY + row; dy < 0 || dy >= displayLines {
			for col := x0; col < x1; col++ {
				s.img.SetRGBA(col, y, backdrop)
			}
			continue
		}

		line := (scrollY + displayYA + row) * lineBytes
		for col := x0; col < x1; col++ {
			dx := displayX + col*TicksPerPixel - fromX
			px := (dx*modeWidth/displayTicks + scrollX) % modeWidth
			s.img.SetRGBA(col, y, s.pixel(vram, line, px, bpp))
		}
	}
}

// the colour of pixel px on the VRAM line starting at offset line
func (s *Sink) pixel(vram []uint8, line int, px int, bpp int) color.RGBA {
	mask := len(vram) - 1
	bit := px * bpp
	addr := (line + bit/8) & mask

	switch bpp {
	case 2:
		shift := 6 - bit%8
		return s.palette[(vram[addr]>>shift)&0x03]
	case 4:
		shift := 4 - bit%8
		return s.palette[(vram[addr]>>shift)&0x0f]
	case 16:
		v := uint16(vram[addr]) | uint16(vram[(addr+1)&mask])<<8
		return color.RGBA{
			R: expand5(uint8(v >> 5)),
			G: expand5(uint8(v >> 10)),
			B: expand5(uint8(v)),
			A: 255,
		}
	}

	v := vram[addr]
	if s.colorMode == mode.BD8 {
		return color.RGBA{
			R: uint8(int(v>>2&0x07) * 255 / 7),
			G: uint8(int(v>>5) * 255 / 7),
			B: uint8(int(v&0x03) * 255 / 3),
			A: 255,
		}
	}
	return s.palette[v&(mode.PaletteEntries-1)]
}

// Scale the source image into the destination image. Nearest neighbour
// scaling is used unless smooth is true.
func Scale(dst draw.Image, src image.Image, smooth bool) {
	scaler := draw.Interpolator(draw.NearestNeighbor)
	if smooth {
		scaler = draw.ApproxBiLinear
	}
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
}
