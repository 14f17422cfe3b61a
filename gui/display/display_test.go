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

package display

import (
	"image"
	"testing"

	"github.com/jetsetilly/gophermsx/test"
	"github.com/jetsetilly/gophermsx/video/framebuffer"
)

func TestFit(t *testing.T) {
	scale, x, y := fit(image.Pt(342, 262), image.Pt(684, 524))
	test.ExpectApproximate(t, scale, 2.0, 0.0001)
	test.ExpectEquality(t, x, 0.0)
	test.ExpectEquality(t, y, 0.0)

	// wider destination. image is centred horizontally
	scale, x, y = fit(image.Pt(100, 100), image.Pt(300, 200))
	test.ExpectApproximate(t, scale, 2.0, 0.0001)
	test.ExpectApproximate(t, x, 50.0, 0.0001)
	test.ExpectEquality(t, y, 0.0)

	// taller destination. image is centred vertically
	scale, x, y = fit(image.Pt(100, 100), image.Pt(100, 300))
	test.ExpectApproximate(t, scale, 1.0, 0.0001)
	test.ExpectEquality(t, x, 0.0)
	test.ExpectApproximate(t, y, 100.0, 0.0001)

	scale, _, _ = fit(image.Pt(0, 0), image.Pt(100, 100))
	test.ExpectEquality(t, scale, 1.0)
}

func TestReceive(t *testing.T) {
	frames := make(chan framebuffer.Frame, 3)
	d := NewDisplay(frames, 0.5, false)
	test.ExpectEquality(t, d.scale, 1.0)

	// nothing waiting
	test.ExpectSuccess(t, d.receive())
	test.ExpectEquality(t, d.pending, false)

	// only the most recent frame is kept
	frames <- framebuffer.Frame{Number: 1}
	frames <- framebuffer.Frame{Number: 2}
	frames <- framebuffer.Frame{Number: 3}
	test.ExpectSuccess(t, d.receive())
	test.ExpectEquality(t, d.pending, true)
	test.ExpectEquality(t, d.current.Number, 3)

	close(frames)
	test.ExpectFailure(t, d.receive())
}

func TestStop(t *testing.T) {
	d := NewDisplay(make(chan framebuffer.Frame), 1.0, false)
	d.Stop()
	test.ExpectEquality(t, d.quit.Load(), true)
}
