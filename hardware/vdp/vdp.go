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

package vdp

import (
	"fmt"

	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/vdp/mode"
	"github.com/jetsetilly/gophermsx/hardware/vdp/renderer"
	"github.com/jetsetilly/gophermsx/hardware/vdp/timing"
	"github.com/jetsetilly/gophermsx/logger"
)

// PortBase is the first of the sixteen IO ports used by the VDP.
const PortBase = 0x60

// PortLast is the last IO port used by the VDP.
const PortLast = PortBase + 0x0f

// Offsets of the IO ports from PortBase.
const (
	PortVRAMData       = 0x00
	PortPaletteData    = 0x01
	PortCommandData    = 0x02
	PortRegisterData   = 0x03
	PortRegisterSelect = 0x04
	PortStatus         = 0x05
	PortSystemControl  = 0x06
)

// VRAMSize is the amount of video memory.
const VRAMSize = 0x80000

// NumRegisters is the number of registers that can be selected.
const NumRegisters = 64

// Status bits.
const (
	StatusVR = 0x40
	StatusHR = 0x20
	StatusEO = 0x02
)

// system control bits
const sysControlSoftReset = 0x02

// VDP is the video display processor.
type VDP struct {
	env *environment.Environment

	// Renderer is created by NewVDP() and draws the output of the VDP
	Renderer *renderer.Renderer

	regs      [NumRegisters]uint8
	regSelect uint8

	vram      []uint8
	writeAddr uint32
	readAddr  uint32

	palette [mode.PaletteEntries][3]uint8

	sysControl uint8

	// start of the current frame
	frameStart clocks.Time

	// PAL timing and even/odd field are decided at the start of each frame
	pal     bool
	evenOdd bool
}

// NewVDP is the preferred method of initialisation for the VDP type. The
// deadline argument can be nil.
func NewVDP(env *environment.Environment, sink renderer.Rasterizer, deadline renderer.Deadline) *VDP {
	v := &VDP{
		env:  env,
		vram: make([]uint8, VRAMSize),
	}
	v.Renderer = renderer.NewRenderer(env, v, sink, deadline)
	return v
}

func (v *VDP) String() string {
	return fmt.Sprintf("%s %s display: %v frame: %d", v.DisplayMode(), v.ColorMode(), v.IsDisplayEnabled(), v.frameStart)
}

// Label implements the bus.IODevice interface.
func (v *VDP) Label() string {
	return "GFX9000"
}

// Reset the VDP to its power-on state. A new frame is started at time t. The
// contents of VRAM are not changed. The PAL timing bit is set from the Spec
// preference.
func (v *VDP) Reset(t clocks.Time) {
	v.regs = [NumRegisters]uint8{}
	if v.env.Prefs.IsPAL() {
		v.regs[7] = 0x08
	}
	v.regSelect = 0
	v.writeAddr = 0
	v.readAddr = 0
	v.palette = [mode.PaletteEntries][3]uint8{}
	v.sysControl = 0
	v.evenOdd = false
	v.frameStart = t
	v.pal = v.modeRegisters().IsPAL()

	v.Renderer.Reset()
	v.Renderer.FrameStart(t)

	logger.Logf(v.env, "vdp", "reset at %v", t)
}

func (v *VDP) modeRegisters() mode.Registers {
	return mode.Registers{R6: v.regs[6], R7: v.regs[7], R13: v.regs[13]}
}

// FrameStart begins a new frame at time t.
func (v *VDP) FrameStart(t clocks.Time) {
	v.frameStart = t
	regs := v.modeRegisters()
	v.pal = regs.IsPAL()
	if regs.IsInterlaced() {
		v.evenOdd = !v.evenOdd
	} else {
		v.evenOdd = false
	}
	v.Renderer.FrameStart(t)
}

// FrameEnd completes the current frame at time t.
func (v *VDP) FrameEnd(t clocks.Time) error {
	return v.Renderer.FrameEnd(t)
}

// FrameStartTime returns the time at which the current frame started.
func (v *VDP) FrameStartTime() clocks.Time {
	return v.frameStart
}

// NextFrameTime returns the time at which the current frame ends.
func (v *VDP) NextFrameTime() clocks.Time {
	return v.frameStart.Add(timing.FrameDuration(v.pal))
}

// UCTicksThisFrame implements the renderer.VDP interface.
func (v *VDP) UCTicksThisFrame(t clocks.Time) int {
	return timing.UCTicksBetween(v.frameStart, t)
}

// Spec returns the television specification of the current frame.
func (v *VDP) Spec() timing.Spec {
	return timing.GetSpec(v.pal)
}

// IsDisplayEnabled implements the renderer.VDP interface.
func (v *VDP) IsDisplayEnabled() bool {
	return v.regs[8]&0x80 == 0x80
}

// DisplayMode implements the renderer.VDP interface.
func (v *VDP) DisplayMode() mode.DisplayMode {
	return v.modeRegisters().Display()
}

// ColorMode implements the renderer.VDP interface.
func (v *VDP) ColorMode() mode.ColorMode {
	return v.modeRegisters().Color()
}

// IsInterlaced implements the renderer.VDP interface.
func (v *VDP) IsInterlaced() bool {
	return v.modeRegisters().IsInterlaced()
}

// EvenOdd implements the renderer.VDP interface. Returns true for the odd
// field.
func (v *VDP) EvenOdd() bool {
	return v.evenOdd
}

// IsEvenOddEnabled implements the renderer.VDP interface.
func (v *VDP) IsEvenOddEnabled() bool {
	return v.modeRegisters().IsEvenOddEnabled()
}

// IsPalTiming implements the renderer.VDP interface.
func (v *VDP) IsPalTiming() bool {
	return v.pal
}

// HorizontalTiming implements the renderer.VDP interface.
func (v *VDP) HorizontalTiming() timing.Zones {
	return timing.Horizontal
}

// VerticalTiming implements the renderer.VDP interface.
func (v *VDP) VerticalTiming() timing.Zones {
	return timing.GetSpec(v.pal).Vertical
}

// Palette implements the renderer.VDP interface.
func (v *VDP) Palette(index int) (uint8, uint8, uint8) {
	p := v.palette[index&(mode.PaletteEntries-1)]
	return p[0], p[1], p[2]
}

// BackdropColor returns the palette index of the border.
func (v *VDP) BackdropColor() int {
	return int(v.regs[15] & 0x3f)
}

// ScrollAX returns the horizontal scroll of layer A.
func (v *VDP) ScrollAX() int {
	return int(v.regs[20]&0x07)<<8 | int(v.regs[19])
}

// ScrollAY returns the vertical scroll of layer A.
func (v *VDP) ScrollAY() int {
	return int(v.regs[18]&0x1f)<<8 | int(v.regs[17])
}

// ScrollBX returns the horizontal scroll of layer B.
func (v *VDP) ScrollBX() int {
	return int(v.regs[24]&0x01)<<8 | int(v.regs[23])
}

// ScrollBY returns the vertical scroll of layer B.
func (v *VDP) ScrollBY() int {
	return int(v.regs[22]&0x01)<<8 | int(v.regs[21])
}

// VRAM returns the video memory. The slice should not be modified.
func (v *VDP) VRAM() []uint8 {
	return v.vram
}

// Register returns the value of a register.
func (v *VDP) Register(reg int) uint8 {
	return v.regs[reg&(NumRegisters-1)]
}
