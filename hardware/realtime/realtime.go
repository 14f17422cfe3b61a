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

package realtime

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/logger"
)

// MaxLag is how far the emulation can fall behind the wall clock before the
// anchor is moved.
const MaxLag = 100 * time.Millisecond

// the period over which the frame rate is measured
const measurePeriod = time.Second

// RealTime maps virtual time onto wall time.
type RealTime struct {
	perm logger.Permission

	anchorVirtual clocks.Time
	anchorWall    time.Time

	throttle atomic.Bool

	// the measured number of frames per second
	measured    atomic.Value // float32
	measureTime time.Time
	measureCt   int

	// Now and Sleep are used to read and wait for the wall clock. default to
	// time.Now and time.Sleep
	Now   func() time.Time
	Sleep func(time.Duration)
}

// NewRealTime is the preferred method of initialisation for the RealTime
// type. Throttling is enabled and the anchor is set to virtual time t.
func NewRealTime(perm logger.Permission, t clocks.Time) *RealTime {
	rt := &RealTime{
		perm:  perm,
		Now:   time.Now,
		Sleep: time.Sleep,
	}
	rt.throttle.Store(true)
	rt.measured.Store(float32(0.0))
	rt.Reset(t)
	return rt
}

func (rt *RealTime) String() string {
	return fmt.Sprintf("throttle: %v measured: %.2f", rt.throttle.Load(), rt.Measured())
}

// Reset moves the anchor to virtual time t and the current wall time. The
// frame rate measurement is restarted.
func (rt *RealTime) Reset(t clocks.Time) {
	now := rt.Now()
	rt.anchorVirtual = t
	rt.anchorWall = now
	rt.measureTime = now
	rt.measureCt = 0
}

// convert a virtual duration to a wall duration
func wall(d clocks.Duration) time.Duration {
	return time.Duration(d.Seconds() * float64(time.Second))
}

// the wall time at which virtual time t should happen
func (rt *RealTime) deadline(t clocks.Time) time.Time {
	return rt.anchorWall.Add(wall(t.Sub(rt.anchorVirtual)))
}

// TimeLeft returns true if work with the given cost can be done now and be
// finished before the wall time that corresponds with virtual time t.
func (rt *RealTime) TimeLeft(cost time.Duration, t clocks.Time) bool {
	return rt.Now().Add(cost).Before(rt.deadline(t))
}

// Sync the wall clock with virtual time t. If throttling is enabled and the
// emulation is ahead of the wall clock then Sync waits until the wall clock
// catches up.
func (rt *RealTime) Sync(t clocks.Time) {
	now := rt.Now()

	rt.measureCt++
	if elapsed := now.Sub(rt.measureTime); elapsed >= measurePeriod {
		rt.measured.Store(float32(float64(rt.measureCt) / elapsed.Seconds()))
		rt.measureTime = now
		rt.measureCt = 0
	}

	if !rt.throttle.Load() {
		rt.anchorVirtual = t
		rt.anchorWall = now
		return
	}

	deadline := rt.deadline(t)
	if wait := deadline.Sub(now); wait > 0 {
		rt.Sleep(wait)
		return
	}

	if lag := now.Sub(deadline); lag > MaxLag {
		logger.Logf(rt.perm, "realtime", "emulation is %v behind. resynchronising", lag.Round(time.Millisecond))
		rt.anchorVirtual = t
		rt.anchorWall = now
	}
}

// SetThrottle enables or disables throttling. When throttling is disabled the
// emulation runs as quickly as possible.
func (rt *RealTime) SetThrottle(throttle bool) {
	if rt.throttle.Swap(throttle) != throttle {
		logger.Logf(rt.perm, "realtime", "throttle: %v", throttle)
	}
}

// IsThrottled returns true if throttling is enabled.
func (rt *RealTime) IsThrottled() bool {
	return rt.throttle.Load()
}

// Measured returns the most recent measurement of the number of frames per
// second. Safe to call from any goroutine.
func (rt *RealTime) Measured() float32 {
	return rt.measured.Load().(float32)
}
