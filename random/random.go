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

package random

import (
	"math/rand/v2"
	"time"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
)

// Random is a random number generator that is sensitive to virtual time.
type Random struct {
	// the base seed for all random numbers
	seed uint64

	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where random numbers must be predictable
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom() *Random {
	return &Random{
		seed: uint64(time.Now().UnixNano()),
	}
}

// new RNG for the specified time
func (rnd *Random) rand(t clocks.Time) *rand.Rand {
	if rnd.ZeroSeed {
		return rand.New(rand.NewPCG(uint64(t), 0))
	}
	return rand.New(rand.NewPCG(uint64(t), rnd.seed))
}

// IntN returns a random number in the range [0, n) for time t.
func (rnd *Random) IntN(n int, t clocks.Time) int {
	return rnd.rand(t).IntN(n)
}

// Fill the slice with random bytes for time t.
func (rnd *Random) Fill(b []uint8, t clocks.Time) {
	r := rnd.rand(t)
	for i := range b {
		b[i] = uint8(r.Uint32())
	}
}
