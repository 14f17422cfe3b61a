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

	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/vdp/mode"
	"github.com/jetsetilly/gophermsx/hardware/vdp/renderer"
)

// State is the persisted state of the VDP, including the frame timing state
// of the renderer.
type State struct {
	Registers      [NumRegisters]uint8
	RegisterSelect uint8
	Palette        [mode.PaletteEntries][3]uint8
	SystemControl  uint8

	VRAM      []uint8
	WriteAddr uint32
	ReadAddr  uint32

	FrameStart clocks.Time
	PAL        bool
	EvenOdd    bool

	Timing renderer.FrameTiming
}

// Snapshot returns a copy of the VDP state.
func (v *VDP) Snapshot() *State {
	s := &State{
		Registers:      v.regs,
		RegisterSelect: v.regSelect,
		Palette:        v.palette,
		SystemControl:  v.sysControl,
		VRAM:           make([]uint8, len(v.vram)),
		WriteAddr:      v.writeAddr,
		ReadAddr:       v.readAddr,
		FrameStart:     v.frameStart,
		PAL:            v.pal,
		EvenOdd:        v.evenOdd,
		Timing:         v.Renderer.State(),
	}
	copy(s.VRAM, v.vram)
	return s
}

// Plumb restores the VDP state from a previous Snapshot. The renderer is
// updated without drawing anything.
func (v *VDP) Plumb(s *State) error {
	if len(s.VRAM) != VRAMSize {
		return fmt.Errorf("vdp: wrong amount of VRAM in state (%d)", len(s.VRAM))
	}
	v.regs = s.Registers
	v.regSelect = s.RegisterSelect
	v.palette = s.Palette
	v.sysControl = s.SystemControl
	copy(v.vram, s.VRAM)
	v.writeAddr = s.WriteAddr & (VRAMSize - 1)
	v.readAddr = s.ReadAddr & (VRAMSize - 1)
	v.frameStart = s.FrameStart
	v.pal = s.PAL
	v.evenOdd = s.EvenOdd
	v.Renderer.Restore(s.Timing)
	return nil
}
