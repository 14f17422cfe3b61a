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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gophermsx/hardware"
)

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// Leadtime is the period the emulation is run for before measurement begins.
// This allows the frame rate to settle down.
var Leadtime = 2 * time.Second

// Check the performance of the emulated machine.
//
// Emulation will run for the specified duration and will create a cpu, memory
// profile, a trace (or a combination of those) as defined by the Profile
// argument.
func Check(output io.Writer, profile Profile, m *hardware.Machine, duration time.Duration) error {
	startFrame := m.FrameNum()

	runner := func() error {
		// timerChan receives false when the leadtime has expired and true when
		// the measurement period has finished
		timerChan := make(chan bool, 2)

		time.AfterFunc(Leadtime, func() {
			timerChan <- false
			time.AfterFunc(duration, func() {
				timerChan <- true
			})
		})

		var done bool

		err := m.Run(func() bool {
			select {
			case v := <-timerChan:
				if v {
					done = true
					return false
				}
				startFrame = m.FrameNum()
			default:
			}
			return true
		})
		if err != nil {
			return err
		}
		if done {
			return timedOut
		}
		return nil
	}

	err := RunProfiler(profile, "performance", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return fmt.Errorf("performance: %w", err)
	}

	numFrames := m.FrameNum() - startFrame
	fps, accuracy := CalcFPS(m.VDP.Spec().RefreshRate, numFrames, duration.Seconds())
	output.Write([]byte(fmt.Sprintf("%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, duration.Seconds(), accuracy)))

	return nil
}
