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

	"github.com/jetsetilly/gophermsx/environment"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/cpu"
	"github.com/jetsetilly/gophermsx/hardware/memory"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
	"github.com/jetsetilly/gophermsx/hardware/realtime"
	"github.com/jetsetilly/gophermsx/hardware/vdp"
	"github.com/jetsetilly/gophermsx/hardware/vdp/renderer"
	"github.com/jetsetilly/gophermsx/logger"
)

// DeviceConfig places a memory mapped device in a slot.
type DeviceConfig struct {
	Slot   int
	Origin uint16
	Memtop uint16
	Device bus.Device
}

// IOConfig attaches a device to a range of IO ports.
type IOConfig struct {
	First  uint8
	Last   uint8
	Device bus.IODevice
}

// Config describes the machine to build.
type Config struct {
	Devices   []DeviceConfig
	IODevices []IOConfig

	// CPU creates the CPU driver. If nil an idle Sequencer is used
	CPU func(mem cpu.Bus) (cpu.Driver, error)

	// pace the emulation with the wall clock
	RealTime bool

	// the number of frames to keep for rewinding. zero disables rewind
	RewindSteps int
}

// Machine is the main container for the emulated components.
type Machine struct {
	Env *environment.Environment

	Mem *memory.Bus
	CPU cpu.Driver
	VDP *vdp.VDP

	// nil if the machine is not paced with the wall clock
	RealTime *realtime.RealTime

	// the handles for the devices in the same order as the configuration
	Handles   []memory.Handle
	IOHandles []memory.Handle

	Rewind *Rewind

	frameNum int
}

// vdpAttacher is implemented by rasterizers that read the VDP state directly
type vdpAttacher interface {
	AttachVDP(v *vdp.VDP)
}

// NewMachine creates a new machine and everything associated with the
// hardware. The sink receives the output of the video display processor.
func NewMachine(env *environment.Environment, cfg Config, sink renderer.Rasterizer) (*Machine, error) {
	m := &Machine{
		Env: env,
		Mem: memory.NewBus(env),
	}

	for _, d := range cfg.Devices {
		h, err := m.Mem.AddDevice(d.Slot, d.Origin, d.Memtop, d.Device)
		if err != nil {
			return nil, fmt.Errorf("hardware: %w", err)
		}
		m.Handles = append(m.Handles, h)
	}

	for _, d := range cfg.IODevices {
		h, err := m.Mem.AddIO(d.First, d.Last, d.Device)
		if err != nil {
			return nil, fmt.Errorf("hardware: %w", err)
		}
		m.IOHandles = append(m.IOHandles, h)
	}

	// the renderer must see a nil interface if there is no realtime
	var deadline renderer.Deadline
	if cfg.RealTime {
		m.RealTime = realtime.NewRealTime(env, clocks.Zero)
		m.RealTime.SetThrottle(env.Prefs.Throttle.Get().(bool))
		deadline = m.RealTime
	}

	m.VDP = vdp.NewVDP(env, sink, deadline)
	if _, err := m.Mem.AddIO(vdp.PortBase, vdp.PortLast, m.VDP); err != nil {
		m.End()
		return nil, fmt.Errorf("hardware: %w", err)
	}
	if a, ok := sink.(vdpAttacher); ok {
		a.AttachVDP(m.VDP)
	}

	m.Mem.Seal()

	var err error
	if cfg.CPU != nil {
		m.CPU, err = cfg.CPU(m.Mem)
	} else {
		m.CPU, err = cpu.NewSequencer(m.Mem, nil)
	}
	if err != nil {
		m.End()
		return nil, fmt.Errorf("hardware: %w", err)
	}

	if cfg.RewindSteps > 0 {
		m.Rewind = newRewind(m, cfg.RewindSteps)
	}

	m.Reset()

	logger.Logf(env, "hardware", "machine created with %d devices and %d io devices", len(m.Handles), len(m.IOHandles))

	return m, nil
}

func (m *Machine) String() string {
	return fmt.Sprintf("frame: %d time: %v vdp: %v", m.frameNum, m.CPU.Time(), m.VDP)
}

// End releases the machine's hold on the environment. The machine should not
// be run after End() has been called.
func (m *Machine) End() {
	m.VDP.Renderer.End()
}

// Reset the machine to its power-on state. Virtual time restarts at zero.
func (m *Machine) Reset() {
	t := clocks.Zero
	m.Mem.Reset(t)
	m.CPU.Reset(t)
	m.VDP.Reset(t)
	if m.RealTime != nil {
		m.RealTime.Reset(t)
	}
	m.frameNum = 0
	if m.Rewind != nil {
		m.Rewind.Reset()
	}
}

// FrameNum returns the number of frames completed since the last reset.
func (m *Machine) FrameNum() int {
	return m.frameNum
}
