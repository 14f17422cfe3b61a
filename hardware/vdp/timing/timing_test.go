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

package timing_test

import (
	"testing"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/vdp/timing"
	"github.com/jetsetilly/gophermsx/test"
)

func TestSpecifications(t *testing.T) {
	test.ExpectEquality(t, timing.Horizontal.Total(), timing.UCTicksPerLine)
	test.ExpectEquality(t, timing.Horizontal.DisplayStart(), 256)
	test.ExpectEquality(t, timing.Horizontal.DisplayEnd(), 1280)

	test.ExpectEquality(t, timing.SpecNTSC.LinesPerFrame, 262)
	test.ExpectEquality(t, timing.SpecPAL.LinesPerFrame, 313)
	test.ExpectEquality(t, timing.SpecNTSC.Vertical.DisplayStart(), 30)
	test.ExpectEquality(t, timing.SpecPAL.Vertical.DisplayStart(), 55)

	test.ExpectApproximate(t, timing.SpecNTSC.RefreshRate, 59.92, 0.001)
	test.ExpectApproximate(t, timing.SpecPAL.RefreshRate, 50.16, 0.001)

	test.ExpectSuccess(t, timing.SpecPAL.IsPAL())
	test.ExpectFailure(t, timing.SpecPAL.IsNTSC())
	test.ExpectSuccess(t, timing.GetSpec(false).IsNTSC())

	spec, err := timing.SearchSpec("pal")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, spec.ID, "PAL")
	_, err = timing.SearchSpec("SECAM")
	test.ExpectFailure(t, err)
}

func TestFrameDuration(t *testing.T) {
	// a UC tick is exactly 160 ticks of virtual time
	test.ExpectEquality(t, timing.UCTick, clocks.Duration(160))

	test.ExpectEquality(t, timing.UCTicksPerFrame(false), 1368*262)
	test.ExpectEquality(t, timing.FrameDuration(true), clocks.Duration(1368*313*160))

	start := clocks.Time(12345)
	end := start.Add(timing.FrameDuration(false))
	test.ExpectEquality(t, timing.UCTicksBetween(start, end), timing.UCTicksPerFrame(false))
	test.ExpectEquality(t, timing.UCTicksBetween(end, start), 0)
}

func TestPosition(t *testing.T) {
	x, y := timing.Position(0)
	test.ExpectEquality(t, x, 0)
	test.ExpectEquality(t, y, 0)

	x, y = timing.Position(timing.UCTicksPerLine*10 + 5)
	test.ExpectEquality(t, x, 5)
	test.ExpectEquality(t, y, 10)
}
