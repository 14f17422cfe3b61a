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

// Package frameskip decides whether a frame should be drawn or skipped. The
// decision is made once per frame by the renderer.
package frameskip

// Resync is a counter value that is larger than any permitted maximum. Setting
// the counter to Resync means the next frame will be drawn and the counter
// reset.
const Resync = 999

// Input to the Decide() function.
type Input struct {
	// the number of frames since the last drawn frame
	Counter int

	// bounds on the number of frames that can be skipped in a row
	Min int
	Max int

	// a recording sink is attached. recordings do not drop frames
	Recording bool

	// predicts whether there is enough time before the next real time deadline
	// to draw a frame. only called when no other rule decides
	TimeLeft func() bool
}

// Output of the Decide() function.
type Output struct {
	Draw    bool
	Counter int
}

// Decide whether to draw the frame. The rules are applied in order:
//
//  1. fewer than Min frames have been skipped: skip
//  2. Max or more frames have been skipped: draw and reset the counter
//  3. otherwise increase the counter. draw if recording or if there is time
//     left before the deadline. the counter is reset when the frame is drawn
func Decide(in Input) Output {
	if in.Counter < in.Min {
		return Output{Draw: false, Counter: in.Counter + 1}
	}

	if in.Counter >= in.Max {
		return Output{Draw: true, Counter: 0}
	}

	if in.Recording || (in.TimeLeft != nil && in.TimeLeft()) {
		return Output{Draw: true, Counter: 0}
	}

	return Output{Draw: false, Counter: in.Counter + 1}
}
