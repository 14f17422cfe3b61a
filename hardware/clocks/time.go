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

package clocks

import (
	"fmt"
	"math"
	"math/bits"
)

// List of frequencies in the emulated machine.
const (
	// frequency of the Z80 CPU in an MSX
	Z80Frequency = 3579545

	// frequency of the video processor master clock (6 x Z80)
	UCFrequency = 21477270

	// the frequency of virtual time. every clock in the machine divides this
	// frequency exactly
	MainFrequency = Z80Frequency * 960
)

// Time is a point in virtual time, measured in ticks of MainFrequency since
// the machine was switched on.
type Time uint64

// Duration is a period of virtual time measured in ticks of MainFrequency.
type Duration uint64

// Zero is the time at which the machine is switched on.
const Zero Time = 0

// Infinity is a time that is after every other time.
const Infinity Time = math.MaxUint64

// Ordering is the result of Compare().
type Ordering int

// List of valid Ordering values.
const (
	Before Ordering = -1
	Equal  Ordering = 0
	After  Ordering = 1
)

func (o Ordering) String() string {
	switch o {
	case Before:
		return "before"
	case Equal:
		return "equal"
	case After:
		return "after"
	}
	return "unknown"
}

// Compare returns the ordering of a relative to b.
func Compare(a, b Time) Ordering {
	switch {
	case a < b:
		return Before
	case a > b:
		return After
	}
	return Equal
}

// Before returns true if t is earlier than u.
func (t Time) Before(u Time) bool {
	return t < u
}

// After returns true if t is later than u.
func (t Time) After(u Time) bool {
	return t > u
}

// Add advances time by duration d. Overflow of virtual time is an
// internal-consistency failure and results in a panic.
func (t Time) Add(d Duration) Time {
	sum, carry := bits.Add64(uint64(t), uint64(d), 0)
	if carry != 0 {
		panic(fmt.Sprintf("clocks: virtual time overflow (%d + %d)", t, d))
	}
	return Time(sum)
}

// Sub returns the duration t-u. If u is after t the result is zero.
func (t Time) Sub(u Time) Duration {
	if u >= t {
		return 0
	}
	return Duration(t - u)
}

// Seconds returns the time as a number of seconds since switch on. Not for use
// in any calculation that must be exact.
func (t Time) Seconds() float64 {
	return float64(t) / MainFrequency
}

func (t Time) String() string {
	return fmt.Sprintf("%.9fs", t.Seconds())
}

// Seconds returns the duration in seconds. Not for use in any calculation
// that must be exact.
func (d Duration) Seconds() float64 {
	return float64(d) / MainFrequency
}

// DurationFromFrequency returns the duration of one tick of a clock running at
// the specified frequency. The frequency must divide MainFrequency exactly or
// the result is rounded down.
func DurationFromFrequency(hz uint64) Duration {
	if hz == 0 {
		panic("clocks: zero frequency")
	}
	return Duration(MainFrequency / hz)
}

// TicksUntil returns the number of whole ticks of a clock running at the
// specified frequency between times a and b. If b is before a the result is
// zero.
func TicksUntil(a, b Time, hz uint64) uint64 {
	return uint64(b.Sub(a) / DurationFromFrequency(hz))
}
