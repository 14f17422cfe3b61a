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

package realtime_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/realtime"
	"github.com/jetsetilly/gophermsx/logger"
	"github.com/jetsetilly/gophermsx/test"
)

// wall clock that only moves when told to
type fakeWall struct {
	now   time.Time
	slept []time.Duration
}

func (w *fakeWall) Now() time.Time {
	return w.now
}

func (w *fakeWall) Sleep(d time.Duration) {
	w.slept = append(w.slept, d)
	w.now = w.now.Add(d)
}

func newRealTime() (*realtime.RealTime, *fakeWall) {
	w := &fakeWall{now: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}
	rt := realtime.NewRealTime(logger.Allow, clocks.Zero)
	rt.Now = w.Now
	rt.Sleep = w.Sleep
	rt.Reset(clocks.Zero)
	return rt, w
}

// virtual time after a number of milliseconds
func ms(n int) clocks.Time {
	return clocks.Zero.Add(clocks.Duration(n) * clocks.Duration(clocks.MainFrequency/1000))
}

func TestTimeLeft(t *testing.T) {
	rt, w := newRealTime()

	test.ExpectSuccess(t, rt.TimeLeft(10*time.Millisecond, ms(20)))
	test.ExpectFailure(t, rt.TimeLeft(30*time.Millisecond, ms(20)))

	// time passes on the wall clock
	w.now = w.now.Add(15 * time.Millisecond)
	test.ExpectFailure(t, rt.TimeLeft(10*time.Millisecond, ms(20)))
	test.ExpectSuccess(t, rt.TimeLeft(4*time.Millisecond, ms(20)))
}

func TestSyncAhead(t *testing.T) {
	rt, w := newRealTime()

	rt.Sync(ms(20))
	test.DemandEquality(t, len(w.slept), 1)
	test.ExpectApproximate(t, w.slept[0], 20*time.Millisecond, 0.001)

	// already in step. no wait
	rt.Sync(ms(20))
	test.ExpectEquality(t, len(w.slept), 1)
}

func TestSyncBehind(t *testing.T) {
	rt, w := newRealTime()

	// a little behind. the emulation is allowed to catch up
	w.now = w.now.Add(50 * time.Millisecond)
	rt.Sync(ms(20))
	test.ExpectEquality(t, len(w.slept), 0)
	test.ExpectSuccess(t, rt.TimeLeft(time.Millisecond, ms(80)))

	// a long way behind. the anchor is moved to the current time
	w.now = w.now.Add(time.Second)
	rt.Sync(ms(40))
	test.ExpectEquality(t, len(w.slept), 0)
	test.ExpectSuccess(t, rt.TimeLeft(5*time.Millisecond, ms(50)))
	test.ExpectFailure(t, rt.TimeLeft(15*time.Millisecond, ms(50)))
}

func TestThrottle(t *testing.T) {
	rt, w := newRealTime()
	test.ExpectSuccess(t, rt.IsThrottled())

	rt.SetThrottle(false)
	test.ExpectFailure(t, rt.IsThrottled())
	for i := range 10 {
		rt.Sync(ms(i * 20))
	}
	test.ExpectEquality(t, len(w.slept), 0)

	// switching throttling back on does not wait for the time the emulation
	// gained while it was unthrottled
	rt.SetThrottle(true)
	rt.Sync(ms(200))
	test.DemandEquality(t, len(w.slept), 1)
	test.ExpectApproximate(t, w.slept[0], 20*time.Millisecond, 0.001)
}

func TestMeasured(t *testing.T) {
	rt, w := newRealTime()
	test.ExpectEquality(t, rt.Measured(), 0.0)

	for i := range 121 {
		w.now = w.now.Add(time.Second / 60)
		rt.Sync(ms(i * 1000 / 60))
	}
	test.ExpectApproximate(t, rt.Measured(), 60.0, 0.02)
}
