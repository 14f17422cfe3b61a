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

import "fmt"

// Clock is a clock of a fixed frequency. It is a count of ticks since a
// reference point in virtual time.
type Clock struct {
	step Duration
	last Time
}

// NewClock is the preferred method of initialisation for the Clock type. The
// frequency must divide MainFrequency exactly.
func NewClock(hz uint64, start Time) (Clock, error) {
	if hz == 0 || MainFrequency%hz != 0 {
		return Clock{}, fmt.Errorf("clocks: frequency %dHz does not divide main frequency", hz)
	}
	return Clock{
		step: Duration(MainFrequency / hz),
		last: start,
	}, nil
}

// Time returns the time of the most recent tick.
func (c *Clock) Time() Time {
	return c.last
}

// Step returns the duration of one tick.
func (c *Clock) Step() Duration {
	return c.step
}

// Reset the clock so that the most recent tick happened at time t.
func (c *Clock) Reset(t Time) {
	c.last = t
}

// AddTicks advances the clock by n ticks.
func (c *Clock) AddTicks(n uint64) {
	c.last = c.last.Add(c.step * Duration(n))
}

// Advance the clock to the last tick at or before time t. If t is before the
// current time the clock is not changed.
func (c *Clock) Advance(t Time) {
	c.AddTicks(c.TicksTill(t))
}

// TicksTill returns the number of whole ticks between the most recent tick and
// time t.
func (c *Clock) TicksTill(t Time) uint64 {
	return uint64(t.Sub(c.last) / c.step)
}

// TimeAtTick returns the time n ticks after the most recent tick.
func (c *Clock) TimeAtTick(n uint64) Time {
	return c.last.Add(c.step * Duration(n))
}
