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

// RunFrame runs the CPU up to the end of the current frame and starts the
// next frame.
func (m *Machine) RunFrame() error {
	next := m.VDP.NextFrameTime()

	if err := m.CPU.RunUntil(next); err != nil {
		return fmt.Errorf("hardware: %w", err)
	}
	if err := m.VDP.FrameEnd(next); err != nil {
		return fmt.Errorf("hardware: %w", err)
	}
	m.VDP.FrameStart(next)
	m.frameNum++

	if m.RealTime != nil {
		m.RealTime.Sync(next)
	}
	if m.Rewind != nil {
		m.Rewind.record()
	}

	return nil
}

// Run sets the emulation running one frame at a time for as long as
// continueCheck returns true. The function is called before every frame. A
// nil continueCheck runs the emulation forever.
func (m *Machine) Run(continueCheck func() bool) error {
	if continueCheck == nil {
		continueCheck = func() bool { return true }
	}

	for continueCheck() {
		if err := m.RunFrame(); err != nil {
			return err
		}
	}

	return nil
}

// RunForFrameCount runs the emulation for the specified number of frames.
// Useful for digest and performance tests.
func (m *Machine) RunForFrameCount(numFrames int) error {
	target := m.frameNum + numFrames
	return m.Run(func() bool {
		return m.frameNum < target
	})
}
