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
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
	"github.com/jetsetilly/gophermsx/hardware/vdp/mode"
	"github.com/jetsetilly/gophermsx/hardware/vdp/timing"
)

// register select bits
const (
	selectWriteInhibit = 0x80
	selectReadInhibit  = 0x40
	selectMask         = 0x3f
)

// address increment inhibit bit in the high byte of the VRAM addresses
const addressInhibit = 0x80

// ReadIO implements the bus.IODevice interface. Reading the VDP never changes
// the address decoding of memory.
func (v *VDP) ReadIO(port uint8, t clocks.Time) (uint8, bool) {
	switch port & 0x0f {
	case PortVRAMData:
		data := v.vram[v.readAddr]
		if v.regs[5]&addressInhibit == 0x00 {
			v.readAddr = (v.readAddr + 1) & (VRAMSize - 1)
		}
		return data, false

	case PortPaletteData:
		data := v.readPalette()
		if v.regs[13]&0x10 == 0x00 {
			v.advancePalettePointer()
		}
		return data, false

	case PortRegisterData:
		reg := v.regSelect & selectMask
		data := v.regs[reg]
		if v.regSelect&selectReadInhibit == 0x00 {
			v.regSelect = (v.regSelect &^ selectMask) | ((reg + 1) & selectMask)
		}
		return data, false

	case PortStatus:
		return v.status(t), false

	case PortSystemControl:
		return v.sysControl, false
	}

	return bus.UnmappedValue, false
}

// PeekIO implements the bus.IODevice interface.
func (v *VDP) PeekIO(port uint8) uint8 {
	switch port & 0x0f {
	case PortVRAMData:
		return v.vram[v.readAddr]
	case PortPaletteData:
		return v.readPalette()
	case PortRegisterData:
		return v.regs[v.regSelect&selectMask]
	case PortRegisterSelect:
		return v.regSelect
	case PortStatus:
		// the status of the start of the frame
		return v.status(v.frameStart)
	case PortSystemControl:
		return v.sysControl
	}
	return bus.UnmappedValue
}

// WriteIO implements the bus.IODevice interface. Writing to the VDP never
// changes the address decoding of memory.
func (v *VDP) WriteIO(port uint8, data uint8, t clocks.Time) bool {
	switch port & 0x0f {
	case PortVRAMData:
		// pixels already drawn in this frame used the old contents
		if v.IsDisplayEnabled() {
			v.Renderer.Sync(t, false)
		}
		v.vram[v.writeAddr] = data
		if v.regs[2]&addressInhibit == 0x00 {
			v.writeAddr = (v.writeAddr + 1) & (VRAMSize - 1)
		}

	case PortPaletteData:
		v.writePalette(data, t)
		v.advancePalettePointer()

	case PortRegisterData:
		reg := v.regSelect & selectMask
		v.WriteRegister(int(reg), data, t)
		if v.regSelect&selectWriteInhibit == 0x00 {
			v.regSelect = (v.regSelect &^ selectMask) | ((reg + 1) & selectMask)
		}

	case PortRegisterSelect:
		v.regSelect = data

	case PortSystemControl:
		v.sysControl = data
		if data&sysControlSoftReset == sysControlSoftReset {
			v.softReset(t)
		}
	}

	return false
}

// the status register at time t
func (v *VDP) status(t clocks.Time) uint8 {
	var s uint8

	x, y := v.Position(t)
	hor := v.HorizontalTiming()
	ver := v.VerticalTiming()
	if y < ver.DisplayStart() || y >= ver.DisplayEnd() {
		s |= StatusVR
	}
	if x < hor.DisplayStart() || x >= hor.DisplayEnd() {
		s |= StatusHR
	}
	if v.evenOdd {
		s |= StatusEO
	}

	return s
}

// Position returns the horizontal position in UC ticks and the line number
// of the raster at time t.
func (v *VDP) Position(t clocks.Time) (int, int) {
	return timing.Position(v.UCTicksThisFrame(t))
}

// the palette pointer in register 14 addresses one of the three components of
// a palette entry. the lowest two bits select the component
func (v *VDP) readPalette() uint8 {
	ptr := v.regs[14]
	comp := ptr & 0x03
	if comp == 0x03 {
		return bus.UnmappedValue
	}
	return v.palette[ptr>>2][comp]
}

func (v *VDP) writePalette(data uint8, t clocks.Time) {
	ptr := v.regs[14]
	comp := ptr & 0x03
	if comp == 0x03 {
		return
	}

	index := int(ptr >> 2)
	entry := v.palette[index]
	entry[comp] = data & 0x1f
	v.Renderer.UpdatePalette(index, entry[0], entry[1], entry[2], t)
	v.palette[index] = entry
}

func (v *VDP) advancePalettePointer() {
	ptr := v.regs[14]
	if ptr&0x03 >= 0x02 {
		v.regs[14] = (ptr & 0xfc) + 0x04
	} else {
		v.regs[14] = ptr + 1
	}
}

// WriteRegister sets the value of a register at time t, as if written through
// the register data port.
func (v *VDP) WriteRegister(reg int, data uint8, t clocks.Time) {
	reg &= NumRegisters - 1

	switch reg {
	case 0, 1, 2:
		v.regs[reg] = data
		v.writeAddr = vramAddress(v.regs[0], v.regs[1], v.regs[2])
		return

	case 3, 4, 5:
		v.regs[reg] = data
		v.readAddr = vramAddress(v.regs[3], v.regs[4], v.regs[5])
		return

	case 6, 7, 13:
		next := v.modeRegisters()
		switch reg {
		case 6:
			next.R6 = data
		case 7:
			next.R7 = data
		case 13:
			next.R13 = data
		}
		if d := next.Display(); d != v.DisplayMode() {
			v.Renderer.SetDisplayMode(d, t)
		}
		if c := next.Color(); c != v.ColorMode() {
			v.Renderer.SetColorMode(c, t)
		}

	case 8:
		enabled := data&0x80 == 0x80
		if enabled != v.IsDisplayEnabled() {
			v.Renderer.UpdateDisplayEnabled(enabled, t)
		}

	case 15:
		if data&0x3f != v.regs[15]&0x3f {
			v.Renderer.UpdateBackgroundColor(int(data&0x3f), t)
		}

	case 17:
		v.Renderer.UpdateScrollAYLow(t)

	case 19, 20:
		v.Renderer.UpdateScrollAX(t)

	case 21:
		v.Renderer.UpdateScrollBYLow(t)

	case 23, 24:
		v.Renderer.UpdateScrollBX(t)
	}

	v.regs[reg] = data
}

// the three bytes of a VRAM address. the top bit of the high byte is the
// increment inhibit flag
func vramAddress(lo, mid, hi uint8) uint32 {
	return (uint32(hi&0x07)<<16 | uint32(mid)<<8 | uint32(lo)) & (VRAMSize - 1)
}

// software reset clears the registers through the renderer hooks
func (v *VDP) softReset(t clocks.Time) {
	for reg := range NumRegisters {
		v.WriteRegister(reg, 0x00, t)
	}
	v.regSelect = 0
	for i := range mode.PaletteEntries {
		if v.palette[i] != [3]uint8{} {
			v.Renderer.UpdatePalette(i, 0, 0, 0, t)
			v.palette[i] = [3]uint8{}
		}
	}
}
