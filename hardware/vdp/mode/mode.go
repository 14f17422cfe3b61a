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

// Package mode defines the display and colour modes of the GFX9000 video
// processor, and how they are derived from the values of the mode registers.
package mode

import "fmt"

// PaletteEntries is the number of entries in the palette.
const PaletteEntries = 64

// DisplayMode is the display mode of the video processor.
type DisplayMode int

// List of valid DisplayMode values. P1 and P2 are the pattern modes and B0 to
// B7 are the bitmap modes.
const (
	P1 DisplayMode = iota
	P2
	B0
	B1
	B2
	B3
	B4
	B5
	B6
	B7
	InvalidDisplayMode
)

var displayModeNames = []string{"P1", "P2", "B0", "B1", "B2", "B3", "B4", "B5", "B6", "B7"}

func (m DisplayMode) String() string {
	if m < 0 || int(m) >= len(displayModeNames) {
		return "invalid"
	}
	return displayModeNames[m]
}

// IsBitmap returns true if the display mode is one of the bitmap modes.
func (m DisplayMode) IsBitmap() bool {
	return m >= B0 && m <= B7
}

// Width returns the number of pixels in one line of the display area.
func (m DisplayMode) Width() int {
	switch m {
	case P1, B1:
		return 256
	case P2, B3:
		return 512
	case B0:
		return 192
	case B2:
		return 384
	case B4:
		return 768
	case B5, B6:
		return 640
	case B7:
		return 1024
	}
	return 256
}

// ColorMode is the colour mode of the video processor.
type ColorMode int

// List of valid ColorMode values.
const (
	PP ColorMode = iota
	BP2
	BP4
	BP6
	BD8
	BYJK
	BYJKP
	BYUV
	BYUVP
	BD16
	InvalidColorMode
)

var colorModeNames = []string{"PP", "BP2", "BP4", "BP6", "BD8", "BYJK", "BYJKP", "BYUV", "BYUVP", "BD16"}

func (m ColorMode) String() string {
	if m < 0 || int(m) >= len(colorModeNames) {
		return "invalid"
	}
	return colorModeNames[m]
}

// BitsPerPixel returns the number of bits of VRAM used by one pixel.
func (m ColorMode) BitsPerPixel() int {
	switch m {
	case PP, BP4:
		return 4
	case BP2:
		return 2
	case BP6, BD8, BYJK, BYJKP, BYUV, BYUVP:
		return 8
	case BD16:
		return 16
	}
	return 8
}

// Registers used to decide the display and colour modes.
//
// R6 (screen mode 0):
//
//	bits 7-6	DSPM: 00 P1, 01 P2, 10 bitmap, 11 stand-by
//	bits 5-4	DCKM: pixel clock divider for bitmap modes
//	bits 1-0	CLRM: 00 2bpp, 01 4bpp, 10 8bpp, 11 16bpp
//
// R7 (screen mode 1):
//
//	bit 7		interlace
//	bit 6		C25M: 25MHz pixel clock (B5 and B6)
//	bit 3		PAL timing
//	bit 2		EO: alternate even and odd fields
//	bit 0		HSCN: high scan
//
// R13 (palette control):
//
//	bits 7-6	PLTM: 8bpp interpretation. 00 direct, 01 YJK, 10 YUV, 11 YJK+palette
//	bit 5		YAE: YUV with palette
type Registers struct {
	R6  uint8
	R7  uint8
	R13 uint8
}

// the bitmap mode for each pixel clock divider with and without high scan
var bitmapModes = [2][4]DisplayMode{
	{B1, B3, B7, InvalidDisplayMode},
	{B0, B2, B4, InvalidDisplayMode},
}

// Display returns the display mode for the register values.
func (r Registers) Display() DisplayMode {
	switch r.R6 & 0xc0 {
	case 0x00:
		return P1
	case 0x40:
		return P2
	case 0x80:
		dckm := (r.R6 >> 4) & 0x03
		if r.R7&0x40 == 0x40 {
			switch dckm {
			case 1:
				return B5
			case 2:
				return B6
			}
			return InvalidDisplayMode
		}
		return bitmapModes[r.R7&0x01][dckm]
	}
	return InvalidDisplayMode
}

// Color returns the colour mode for the register values.
func (r Registers) Color() ColorMode {
	if r.R6&0x80 == 0x00 {
		return PP
	}
	switch r.R6 & 0x03 {
	case 0:
		return BP2
	case 1:
		return BP4
	case 2:
		switch r.R13 & 0xc0 {
		case 0x00:
			if r.R13&0x20 == 0x20 {
				return BYUVP
			}
			return BD8
		case 0x40:
			return BYJK
		case 0x80:
			return BYUV
		case 0xc0:
			return BYJKP
		}
	case 3:
		return BD16
	}
	return InvalidColorMode
}

// IsInterlaced returns true if the interlace bit is set.
func (r Registers) IsInterlaced() bool {
	return r.R7&0x80 == 0x80
}

// IsEvenOddEnabled returns true if the even/odd field bit is set.
func (r Registers) IsEvenOddEnabled() bool {
	return r.R7&0x04 == 0x04
}

// IsPAL returns true if the PAL timing bit is set.
func (r Registers) IsPAL() bool {
	return r.R7&0x08 == 0x08
}

func (r Registers) String() string {
	return fmt.Sprintf("%s %s", r.Display(), r.Color())
}
