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

package ram_test

import (
	"testing"

	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
	"github.com/jetsetilly/gophermsx/hardware/memory/ram"
	"github.com/jetsetilly/gophermsx/test"
)

func TestRAM(t *testing.T) {
	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.DemandSuccess(t, err)

	_, err = ram.NewRAM(env, "bad", 0xc000, 100)
	test.ExpectFailure(t, err)
	_, err = ram.NewRAM(env, "bad", 0xc010, 0x100)
	test.ExpectFailure(t, err)

	r, err := ram.NewRAM(env, "RAM", 0xc000, 0x1000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Kind(), bus.KindRAM)

	test.ExpectFailure(t, r.Write(0xc123, 0x42, clocks.Zero))
	test.ExpectEquality(t, r.Read(0xc123, clocks.Zero), uint8(0x42))

	// mirrored every 4k
	test.ExpectEquality(t, r.Peek(0xd123), uint8(0x42))

	// direct access sees the same storage
	line := r.ReadLine(0xc100)
	test.DemandEquality(t, len(line), bus.LineSize)
	test.ExpectEquality(t, line[0x23], uint8(0x42))
	r.WriteLine(0xc100)[0x24] = 0x43
	test.ExpectEquality(t, r.Read(0xc124, clocks.Zero), uint8(0x43))

	// storage survives a reset through a copy
	d := r.Storage()
	test.DemandEquality(t, len(d), r.Size())

	r.Reset(clocks.Zero)
	test.ExpectEquality(t, r.Read(0xc123, clocks.Zero), uint8(0x00))

	test.DemandSuccess(t, r.RestoreStorage(d))
	test.ExpectEquality(t, r.Read(0xc123, clocks.Zero), uint8(0x42))
	test.ExpectFailure(t, r.RestoreStorage(d[:0x100]))
}

func TestRandomState(t *testing.T) {
	env, err := environment.NewEnvironment(environment.MainEmulation, nil, nil)
	test.DemandSuccess(t, err)
	env.Random.ZeroSeed = true
	test.DemandSuccess(t, env.Prefs.RandomState.Set(true))

	a, err := ram.NewRAM(env, "A", 0xc000, 0x1000)
	test.DemandSuccess(t, err)
	b, err := ram.NewRAM(env, "B", 0xc000, 0x1000)
	test.DemandSuccess(t, err)

	a.Reset(clocks.Time(1000))
	b.Reset(clocks.Time(1000))

	nonZero := false
	for addr := uint16(0xc000); addr < 0xd000; addr++ {
		test.DemandEquality(t, a.Peek(addr), b.Peek(addr))
		nonZero = nonZero || a.Peek(addr) != 0
	}
	test.ExpectSuccess(t, nonZero)
}

func TestROM(t *testing.T) {
	data := make([]uint8, 0x2000)
	for i := range data {
		data[i] = uint8(i)
	}

	r, err := ram.NewROM("ROM", 0x4000, data)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Kind(), bus.KindROM)

	test.ExpectFailure(t, r.Write(0x4010, 0xff, clocks.Zero))
	test.ExpectEquality(t, r.Read(0x4010, clocks.Zero), uint8(0x10))

	// 8k ROM mirrored in a 16k window
	test.ExpectEquality(t, r.Read(0x6010, clocks.Zero), uint8(0x10))

	test.ExpectEquality(t, len(r.ReadLine(0x4100)), bus.LineSize)
	test.ExpectEquality(t, len(r.WriteLine(0x4100)), 0)
}
