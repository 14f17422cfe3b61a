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

	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory"
	"github.com/jetsetilly/gophermsx/hardware/vdp"
	"github.com/jetsetilly/gophermsx/logger"
)

// State stores the machine sub-systems. It is produced by the Snapshot()
// function and can be restored with the Plumb() function. A snapshot can only
// be plumbed into a machine with the same configuration.
//
// The CPU driver is represented only by its time. A driver restarts its
// program when it is plumbed.
type State struct {
	CPUTime  clocks.Time
	FrameNum int

	Mem *memory.State
	VDP *vdp.State
}

func (s *State) String() string {
	return fmt.Sprintf("frame %d at %v", s.FrameNum, s.CPUTime)
}

// Snapshot the state of the machine sub-systems.
func (m *Machine) Snapshot() *State {
	return &State{
		CPUTime:  m.CPU.Time(),
		FrameNum: m.frameNum,
		Mem:      m.Mem.Snapshot(),
		VDP:      m.VDP.Snapshot(),
	}
}

// Plumb a previously snapshotted state into the machine. The state must be
// plumbed before the next call to RunFrame().
func (m *Machine) Plumb(s *State) error {
	if s == nil {
		return fmt.Errorf("hardware: cannot plumb a nil state")
	}

	if err := m.Mem.Plumb(s.Mem); err != nil {
		return fmt.Errorf("hardware: %w", err)
	}
	if err := m.VDP.Plumb(s.VDP); err != nil {
		return fmt.Errorf("hardware: %w", err)
	}
	m.CPU.Reset(s.CPUTime)
	m.frameNum = s.FrameNum
	if m.RealTime != nil {
		m.RealTime.Reset(s.CPUTime)
	}

	logger.Logf(m.Env, "hardware", "plumbed state: %v", s)

	return nil
}
