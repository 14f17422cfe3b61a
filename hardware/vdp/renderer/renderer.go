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

package renderer

import (
	"fmt"
	"time"

	"github.com/jetsetilly/gophermsx/assert"
	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/preferences"
	"github.com/jetsetilly/gophermsx/hardware/vdp/frameskip"
	"github.com/jetsetilly/gophermsx/hardware/vdp/mode"
	"github.com/jetsetilly/gophermsx/hardware/vdp/timing"
	"github.com/jetsetilly/gophermsx/notifications"
)

// weight of the most recent sample in the moving average of the rasterizer
// cost
const emaAlpha = 0.2

// Deadline predicts whether there is time to do work of a known cost before
// the real time deadline for virtual time t. Satisfied by the realtime
// package.
type Deadline interface {
	TimeLeft(cost time.Duration, t clocks.Time) bool
}

// Phase is the position of the renderer in the frame.
type Phase int

// List of valid Phase values.
const (
	Idle Phase = iota
	FrameStarted
	Drawing
	FrameEnded
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case FrameStarted:
		return "frame started"
	case Drawing:
		return "drawing"
	case FrameEnded:
		return "frame ended"
	}
	return "unknown"
}

// FrameTiming is the state of the renderer that must be persisted.
type FrameTiming struct {
	// the last position rendered in the current frame
	LastX int
	LastY int

	// number of frames since the last drawn frame
	Counter int

	// moving average of the cost of Rasterizer.FrameEnd()
	EMA time.Duration

	DrawFrame     bool
	PrevDrawFrame bool

	// the line at which the vertical scroll registers were last written
	VerticalOffsetA int
	VerticalOffsetB int

	// accuracy for the current frame
	Accuracy preferences.Accuracy
}

func (ft FrameTiming) String() string {
	return fmt.Sprintf("last: %d,%d counter: %d ema: %v draw: %v", ft.LastX, ft.LastY, ft.Counter, ft.EMA, ft.DrawFrame)
}

// Renderer catches up the video output with virtual time.
type Renderer struct {
	env      *environment.Environment
	vdp      VDP
	sink     Rasterizer
	deadline Deadline

	// receives a value whenever the frame skip preferences change
	changed     <-chan struct{}
	unsubscribe func()

	timing         FrameTiming
	displayEnabled bool
	phase          Phase

	affinity assert.Affinity

	// WallClock is used to measure the cost of the rasterizer. defaults to
	// time.Now
	WallClock func() time.Time
}

// NewRenderer is the preferred method of initialisation for the Renderer type.
// The deadline argument can be nil, in which case there is always time to
// draw a frame.
func NewRenderer(env *environment.Environment, vdp VDP, sink Rasterizer, deadline Deadline) *Renderer {
	r := &Renderer{
		env:      env,
		vdp:      vdp,
		sink:     sink,
		deadline: deadline,
		affinity: assert.NewAffinity(),
		timing: FrameTiming{
			Counter:  frameskip.Resync,
			Accuracy: preferences.AccuracyLine,
		},
		WallClock: time.Now,
	}
	r.changed, r.unsubscribe = env.Prefs.SubscribeFrameSkip()
	r.Reset()
	return r
}

// End the renderer's subscription to the frame skip preferences. Changes to
// the preferences are no longer noticed by the renderer.
func (r *Renderer) End() {
	r.unsubscribe()
}

func (r *Renderer) String() string {
	return fmt.Sprintf("%s: %s", r.phase, r.timing)
}

// Reset the renderer to the state of the video processor.
func (r *Renderer) Reset() {
	r.sink.Reset()
	r.resync()
	r.phase = Idle
}

// copy the state of the video processor to the rasterizer without rendering
// anything
func (r *Renderer) resync() {
	r.displayEnabled = r.vdp.IsDisplayEnabled()
	r.sink.SetDisplayMode(r.vdp.DisplayMode())
	r.sink.SetColorMode(r.vdp.ColorMode())
	for i := range mode.PaletteEntries {
		red, green, blue := r.vdp.Palette(i)
		r.sink.SetPalette(i, red, green, blue)
	}
}

// Phase returns the position of the renderer in the frame.
func (r *Renderer) Phase() Phase {
	return r.phase
}

// State returns a copy of the frame timing state.
func (r *Renderer) State() FrameTiming {
	return r.timing
}

// Restore frame timing state previously returned by State().
func (r *Renderer) Restore(ft FrameTiming) {
	r.timing = ft
	r.resync()
}

// DrawFrame returns true if the current frame is being drawn.
func (r *Renderer) DrawFrame() bool {
	return r.timing.DrawFrame
}

// is the current field the odd field of a deinterlaced frame
func (r *Renderer) deinterlacedOdd(live preferences.RenderSettings) bool {
	return r.vdp.IsInterlaced() && live.Deinterlace && r.vdp.EvenOdd() && r.vdp.IsEvenOddEnabled()
}

// FrameStart decides whether the frame starting at time t will be drawn.
func (r *Renderer) FrameStart(t clocks.Time) {
	r.affinity.Check()
	r.phase = FrameStarted

	if !r.sink.IsActive() {
		r.timing.Counter = frameskip.Resync
		r.timing.DrawFrame = false
		r.timing.PrevDrawFrame = false
		return
	}

	r.timing.PrevDrawFrame = r.timing.DrawFrame

	select {
	case <-r.changed:
		r.timing.Counter = frameskip.Resync
	default:
	}

	live := r.env.Prefs.Live()

	// the odd field of a deinterlaced frame uses the same decision as the
	// even field
	if !r.deinterlacedOdd(live) {
		out := frameskip.Decide(frameskip.Input{
			Counter:   r.timing.Counter,
			Min:       live.MinFrameSkip,
			Max:       live.MaxFrameSkip,
			Recording: r.sink.IsRecording(),
			TimeLeft: func() bool {
				return r.deadline == nil || r.deadline.TimeLeft(r.timing.EMA, t)
			},
		})
		r.timing.Counter = out.Counter
		r.timing.DrawFrame = out.Draw
	}

	if !r.timing.DrawFrame {
		return
	}

	r.timing.Accuracy = live.Accuracy
	r.timing.LastX = 0
	r.timing.LastY = 0
	ver := r.vdp.VerticalTiming()
	r.timing.VerticalOffsetA = ver.DisplayStart()
	r.timing.VerticalOffsetB = ver.DisplayStart()

	r.SetDisplayMode(r.vdp.DisplayMode(), t)
	r.sink.FrameStart()
}

// FrameEnd completes the frame at time t and sends the FinishFrame
// notification.
func (r *Renderer) FrameEnd(t clocks.Time) error {
	r.affinity.Check()

	skipEvent := !r.timing.DrawFrame
	if r.timing.DrawFrame {
		r.Sync(t, true)

		start := r.WallClock()
		r.sink.FrameEnd(t)
		cost := r.WallClock().Sub(start)
		r.timing.EMA = time.Duration(float64(r.timing.EMA)*(1-emaAlpha) + float64(cost)*emaAlpha)

		// the odd field of a deinterlaced frame has nothing to combine with
		// if the even field was not drawn
		if r.vdp.IsInterlaced() && r.vdp.IsEvenOddEnabled() && r.env.Prefs.Live().Deinterlace && !r.timing.PrevDrawFrame {
			skipEvent = true
		}
	}

	r.phase = FrameEnded

	return r.env.Notify(notifications.FinishFrame{
		Source:  notifications.VideoGFX9000,
		Skipped: skipEvent,
	})
}

// Sync makes sure the output is rendered up to time t. With screen accuracy
// nothing is rendered unless force is true.
func (r *Renderer) Sync(t clocks.Time, force bool) {
	if !r.timing.DrawFrame {
		return
	}
	if r.timing.Accuracy != preferences.AccuracyScreen || force {
		r.RenderUntil(t)
	}
}

// Target returns the position in the frame that would be rendered up to for
// time t with the current accuracy.
func (r *Renderer) Target(t clocks.Time) (int, int) {
	ticks := r.vdp.UCTicksThisFrame(t)
	assert.Check(ticks <= timing.UCTicksPerFrame(r.vdp.IsPalTiming()), "renderer: %d ticks is beyond the end of the frame", ticks)

	switch r.timing.Accuracy {
	case preferences.AccuracyLine, preferences.AccuracyScreen:
		return 0, (ticks + timing.UCTicksPerLine - timing.ScreenAccuracyOffset) / timing.UCTicksPerLine
	}
	return timing.Position(ticks)
}

// RenderUntil renders everything between the last rendered position and the
// position for time t. Calling the function again with the same time does
// nothing.
func (r *Renderer) RenderUntil(t clocks.Time) {
	r.affinity.Check()

	toX, toY := r.Target(t)

	if toX == r.timing.LastX && toY == r.timing.LastY {
		return
	}
	if toY < r.timing.LastY || (toY == r.timing.LastY && toX < r.timing.LastX) {
		assert.Check(false, "renderer: target %d,%d is before last position %d,%d", toX, toY, r.timing.LastX, r.timing.LastY)
		return
	}

	hor := r.vdp.HorizontalTiming()
	left := hor.DisplayStart()
	right := hor.DisplayEnd()
	edge := timing.UCTicksPerLine

	fromX, fromY := r.timing.LastX, r.timing.LastY
	if r.displayEnabled {
		Subdivide(fromX, fromY, toX, toY, 0, left, ZoneBorder, r.draw)
		Subdivide(fromX, fromY, toX, toY, left, right, ZoneDisplay, r.draw)
		Subdivide(fromX, fromY, toX, toY, right, edge, ZoneBorder, r.draw)
	} else {
		Subdivide(fromX, fromY, toX, toY, 0, edge, ZoneBorder, r.draw)
	}

	r.timing.LastX = toX
	r.timing.LastY = toY
	r.phase = Drawing
}

// send the rectangle to the rasterizer
func (r *Renderer) draw(zone Zone, fromX, fromY, toX, toY int) {
	if zone == ZoneBorder {
		r.sink.DrawBorder(fromX, fromY, toX, toY)
		return
	}

	hor := r.vdp.HorizontalTiming()
	ver := r.vdp.VerticalTiming()
	r.sink.DrawDisplay(fromX, fromY,
		fromX-hor.DisplayStart(),
		fromY-ver.DisplayStart(),
		fromY-r.timing.VerticalOffsetA,
		fromY-r.timing.VerticalOffsetB,
		toX-fromX, toY-fromY)
}

// UpdateDisplayEnabled is called before the display enable bit changes.
func (r *Renderer) UpdateDisplayEnabled(enabled bool, t clocks.Time) {
	r.Sync(t, true)
	r.displayEnabled = enabled
}

// SetDisplayMode is called before the display mode changes.
func (r *Renderer) SetDisplayMode(m mode.DisplayMode, t clocks.Time) {
	r.Sync(t, false)
	r.sink.SetDisplayMode(m)
}

// SetColorMode is called before the colour mode changes.
func (r *Renderer) SetColorMode(m mode.ColorMode, t clocks.Time) {
	r.Sync(t, false)
	r.sink.SetColorMode(m)
}

// UpdatePalette is called before a palette entry changes.
func (r *Renderer) UpdatePalette(index int, red, green, blue uint8, t clocks.Time) {
	r.Sync(t, false)
	r.sink.SetPalette(index, red, green, blue)
}

// UpdateBackgroundColor is called before the backdrop colour changes.
func (r *Renderer) UpdateBackgroundColor(_ int, t clocks.Time) {
	r.Sync(t, false)
}

// UpdateScrollAX is called before the horizontal scroll of layer A changes.
func (r *Renderer) UpdateScrollAX(t clocks.Time) {
	if r.displayEnabled {
		r.Sync(t, false)
	}
}

// UpdateScrollBX is called before the horizontal scroll of layer B changes.
func (r *Renderer) UpdateScrollBX(t clocks.Time) {
	if r.displayEnabled {
		r.Sync(t, false)
	}
}

// UpdateScrollAYLow is called before the low byte of the vertical scroll of
// layer A changes. The scroll takes effect from the current line.
func (r *Renderer) UpdateScrollAYLow(t clocks.Time) {
	if r.displayEnabled {
		r.Sync(t, false)
		r.timing.VerticalOffsetA = r.timing.LastY
	}
}

// UpdateScrollBYLow is called before the low byte of the vertical scroll of
// layer B changes.
func (r *Renderer) UpdateScrollBYLow(t clocks.Time) {
	if r.displayEnabled {
		r.Sync(t, false)
		r.timing.VerticalOffsetB = r.timing.LastY
	}
}
