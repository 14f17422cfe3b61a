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

package hardware

import (
	"fmt"
)

// Rewind keeps a snapshot of the machine at the end of recent frames. The
// oldest snapshot is discarded when the maximum number of steps is reached.
type Rewind struct {
	m        *Machine
	steps    []*State
	maxSteps int

	// position of the most recently plumbed or recorded snapshot, plus one
	position int
}

func newRewind(m *Machine, maxSteps int) *Rewind {
	return &Rewind{
		m:        m,
		steps:    make([]*State, 0, maxSteps),
		maxSteps: maxSteps,
	}
}

func (r *Rewind) String() string {
	return fmt.Sprintf("%d/%d", r.position-1, len(r.steps))
}

// Reset discards every snapshot and records the current state of the machine
// as the first.
func (r *Rewind) Reset() {
	r.steps = r.steps[:0]
	r.position = 0
	r.record()
}

// add a snapshot of the current state. snapshots after the current position
// are discarded first
func (r *Rewind) record() {
	r.steps = append(r.steps[:r.position], r.m.Snapshot())

	// maintain maximum length
	if len(r.steps) > r.maxSteps {
		r.steps = r.steps[1:]
	}

	r.position = len(r.steps)
}

// State returns the number of snapshots and the current position.
func (r *Rewind) State() (int, int) {
	return len(r.steps), r.position - 1
}

// SetPosition plumbs the snapshot at the position into the machine. The
// position is clamped to the available snapshots.
func (r *Rewind) SetPosition(pos int) error {
	pos = max(0, min(pos, len(r.steps)-1))
	if err := r.m.Plumb(r.steps[pos]); err != nil {
		return err
	}
	r.position = pos + 1
	return nil
}

// GotoFrame searches the snapshots for the frame number. Goes to the nearest
// following frame if the frame number is not present. Returns true if the
// exact frame number was found.
func (r *Rewind) GotoFrame(frame int) (bool, error) {
	// binary search for frame number
	b := 0
	t := len(r.steps) - 1
	for b <= t {
		m := (t + b) / 2

		switch fn := r.steps[m].FrameNum; {
		case fn == frame:
			return true, r.SetPosition(m)
		case fn < frame:
			b = m + 1
		default:
			t = m - 1
		}
	}

	return false, r.SetPosition(b)
}
