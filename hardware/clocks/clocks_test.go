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

package clocks_test

import (
	"math/rand/v2"
	"testing"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/test"
)

func TestOrdering(t *testing.T) {
	rnd := rand.New(rand.NewPCG(1, 2))

	a := clocks.Zero
	for range 10000 {
		d := clocks.Duration(rnd.Uint64N(1000000) + 1)
		b := a.Add(d)
		test.ExpectEquality(t, clocks.Compare(a, b), clocks.Before)
		test.ExpectEquality(t, clocks.Compare(b, a), clocks.After)
		test.ExpectEquality(t, clocks.Compare(b, b), clocks.Equal)
		test.ExpectSuccess(t, b.After(a))
		test.ExpectEquality(t, b.Sub(a), d)
		test.ExpectEquality(t, a.Sub(b), clocks.Duration(0))
		a = b
	}
}

func TestOverflow(t *testing.T) {
	defer func() {
		test.ExpectInequality(t, recover(), nil)
	}()
	_ = (clocks.Infinity - 1).Add(2)
}

func TestFrequencies(t *testing.T) {
	test.ExpectEquality(t, clocks.MainFrequency%clocks.Z80Frequency, 0)
	test.ExpectEquality(t, clocks.MainFrequency%clocks.UCFrequency, 0)
	test.ExpectEquality(t, clocks.DurationFromFrequency(clocks.Z80Frequency), clocks.Duration(960))
	test.ExpectEquality(t, clocks.DurationFromFrequency(clocks.UCFrequency), clocks.Duration(160))
	test.ExpectApproximate(t, clocks.Time(clocks.MainFrequency).Seconds(), 1.0, 0.0001)
}

func TestClock(t *testing.T) {
	_, err := clocks.NewClock(7, clocks.Zero)
	test.ExpectFailure(t, err)

	c, err := clocks.NewClock(clocks.Z80Frequency, clocks.Time(100))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c.Step(), clocks.Duration(960))

	c.AddTicks(3)
	test.ExpectEquality(t, c.Time(), clocks.Time(100+3*960))

	// advancing snaps down to a whole tick
	c.Advance(c.Time().Add(2*960 + 500))
	test.ExpectEquality(t, c.Time(), clocks.Time(100+5*960))

	// advancing to an earlier time is ignored
	c.Advance(clocks.Time(50))
	test.ExpectEquality(t, c.Time(), clocks.Time(100+5*960))

	test.ExpectEquality(t, c.TicksTill(c.Time().Add(960*10+959)), uint64(10))
	test.ExpectEquality(t, c.TimeAtTick(2), c.Time().Add(1920))
	test.ExpectEquality(t, clocks.TicksUntil(clocks.Zero, clocks.Time(960*4), clocks.Z80Frequency), uint64(4))
}
