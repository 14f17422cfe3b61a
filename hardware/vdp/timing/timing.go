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

package timing

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
)

// UCTicksPerLine is the number of UC ticks in one line of video.
const UCTicksPerLine = 1368

// ScreenAccuracyOffset is used when converting a time to a line number when
// rendering with line or screen accuracy. A change in the first
// ScreenAccuracyOffset ticks of a line takes effect from that line. A later
// change takes effect from the next line.
const ScreenAccuracyOffset = 400

// UCTick is the duration of one tick of the UC clock.
var UCTick = clocks.DurationFromFrequency(clocks.UCFrequency)

// Zones divides a line (or a frame) into the four regions of the display
// timing, in order.
type Zones struct {
	Blank   int
	Border1 int
	Display int
	Border2 int
}

// Total is the sum of all zones.
func (z Zones) Total() int {
	return z.Blank + z.Border1 + z.Display + z.Border2
}

// DisplayStart is the first unit of the display zone.
func (z Zones) DisplayStart() int {
	return z.Blank + z.Border1
}

// DisplayEnd is the first unit after the display zone.
func (z Zones) DisplayEnd() int {
	return z.DisplayStart() + z.Display
}

// Visible is the first unit after the blanking zone.
func (z Zones) Visible() int {
	return z.Blank
}

func (z Zones) String() string {
	return fmt.Sprintf("%d/%d/%d/%d", z.Blank, z.Border1, z.Display, z.Border2)
}

// Horizontal is the horizontal timing. The same for both specifications.
var Horizontal = Zones{
	Blank:   208,
	Border1: 48,
	Display: 1024,
	Border2: 88,
}

// Spec is a television specification supported by the video processor.
type Spec struct {
	ID string

	Horizontal Zones
	Vertical   Zones

	LinesPerFrame int

	// the number of frames per second
	RefreshRate float32
}

// SpecList is the list of specifications that can be used with SearchSpec().
var SpecList = []string{"NTSC", "PAL"}

// SpecNTSC is the specification for 60Hz machines.
var SpecNTSC Spec

// SpecPAL is the specification for 50Hz machines.
var SpecPAL Spec

func init() {
	SpecNTSC = Spec{
		ID:         "NTSC",
		Horizontal: Horizontal,
		Vertical: Zones{
			Blank:   16,
			Border1: 14,
			Display: 212,
			Border2: 20,
		},
	}
	SpecNTSC.LinesPerFrame = SpecNTSC.Vertical.Total()
	SpecNTSC.RefreshRate = float32(clocks.UCFrequency) / float32(SpecNTSC.UCTicksPerFrame())

	SpecPAL = Spec{
		ID:         "PAL",
		Horizontal: Horizontal,
		Vertical: Zones{
			Blank:   16,
			Border1: 39,
			Display: 212,
			Border2: 46,
		},
	}
	SpecPAL.LinesPerFrame = SpecPAL.Vertical.Total()
	SpecPAL.RefreshRate = float32(clocks.UCFrequency) / float32(SpecPAL.UCTicksPerFrame())
}

// SearchSpec returns the specification with the ID. The search is case
// insensitive.
func SearchSpec(id string) (Spec, error) {
	switch strings.ToUpper(id) {
	case "NTSC":
		return SpecNTSC, nil
	case "PAL":
		return SpecPAL, nil
	}
	return Spec{}, fmt.Errorf("timing: unknown specification (%s)", id)
}

// GetSpec returns the PAL or NTSC specification.
func GetSpec(pal bool) Spec {
	if pal {
		return SpecPAL
	}
	return SpecNTSC
}

func (s Spec) String() string {
	return s.ID
}

// IsPAL returns true if the specification is PAL.
func (s Spec) IsPAL() bool {
	return s.ID == SpecPAL.ID
}

// IsNTSC returns true if the specification is NTSC.
func (s Spec) IsNTSC() bool {
	return s.ID == SpecNTSC.ID
}

// UCTicksPerFrame returns the number of UC ticks in one frame.
func (s Spec) UCTicksPerFrame() int {
	return UCTicksPerLine * s.LinesPerFrame
}

// FrameDuration returns the length of one frame in virtual time.
func (s Spec) FrameDuration() clocks.Duration {
	return clocks.Duration(s.UCTicksPerFrame()) * UCTick
}

// UCTicksPerFrame returns the number of UC ticks in one frame for the PAL or
// NTSC specification.
func UCTicksPerFrame(pal bool) int {
	return GetSpec(pal).UCTicksPerFrame()
}

// FrameDuration returns the length of one frame in virtual time for the PAL or
// NTSC specification.
func FrameDuration(pal bool) clocks.Duration {
	return GetSpec(pal).FrameDuration()
}

// UCTicksBetween returns the number of whole UC ticks between two times. If b
// is before a the result is zero.
func UCTicksBetween(a, b clocks.Time) int {
	return int(clocks.TicksUntil(a, b, clocks.UCFrequency))
}

// Position converts a number of UC ticks since the start of a frame into a
// horizontal position in UC ticks and a line number.
func Position(ticks int) (x int, y int) {
	return ticks % UCTicksPerLine, ticks / UCTicksPerLine
}
