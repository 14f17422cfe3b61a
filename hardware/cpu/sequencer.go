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

package cpu

import (
	"fmt"

	"github.com/jetsetilly/gophermsx/assert"
	"github.com/jetsetilly/gophermsx/hardware/clocks"
	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
)

// OpKind is the type of operation performed by the Sequencer.
type OpKind int

// List of valid OpKind values.
const (
	OpRead OpKind = iota
	OpWrite
	OpIn
	OpOut
	OpWait
)

func (k OpKind) String() string {
	switch k {
	case OpRead:
		return "read"
	case OpWrite:
		return "write"
	case OpIn:
		return "in"
	case OpOut:
		return "out"
	case OpWait:
		return "wait"
	}
	return "unknown"
}

// Op is a single operation performed by the Sequencer. The access is made at
// the start of the operation, after which the operation takes the number of
// Z80 cycles specified. An operation takes at least one cycle.
//
// The Address field is used as the port number for OpIn and OpOut
// operations.
type Op struct {
	Kind    OpKind
	Address uint16
	Data    uint8
	Cycles  int
}

func (op Op) String() string {
	switch op.Kind {
	case OpRead:
		return fmt.Sprintf("%s %#04x", op.Kind, op.Address)
	case OpWrite:
		return fmt.Sprintf("%s %#04x=%#02x", op.Kind, op.Address, op.Data)
	case OpIn:
		return fmt.Sprintf("%s (%#02x)", op.Kind, uint8(op.Address))
	case OpOut:
		return fmt.Sprintf("%s (%#02x)=%#02x", op.Kind, uint8(op.Address), op.Data)
	}
	return fmt.Sprintf("%s %d", op.Kind, op.Cycles)
}

// Idle is the program used by the Sequencer if no other program is supplied.
var Idle = []Op{{Kind: OpWait, Cycles: 1}}

// SequencerStats counts the way in which memory reads have been performed.
type SequencerStats struct {
	DirectReads uint64
	BusReads    uint64

	// number of times a direct access token has been discarded because the
	// bank generation changed
	Invalidated uint64
}

// Sequencer is a CPU driver that repeatedly executes a list of operations.
type Sequencer struct {
	mem     Bus
	clk     clocks.Clock
	program []Op
	pc      int

	// direct access token for the most recent memory read
	direct     bus.Direct
	haveDirect bool

	// the value of the most recent OpRead or OpIn
	LastRead uint8

	Stats SequencerStats

	// Trace is called after every operation with the time of the access and
	// the data read or written. can be nil
	Trace func(op Op, t clocks.Time, data uint8)
}

// NewSequencer is the preferred method of initialisation for the Sequencer
// type. If the program is empty the Idle program is used.
func NewSequencer(mem Bus, program []Op) (*Sequencer, error) {
	clk, err := clocks.NewClock(clocks.Z80Frequency, clocks.Zero)
	if err != nil {
		return nil, fmt.Errorf("cpu: %w", err)
	}

	if len(program) == 0 {
		program = Idle
	}

	seq := &Sequencer{
		mem:     mem,
		clk:     clk,
		program: make([]Op, len(program)),
	}
	copy(seq.program, program)

	return seq, nil
}

func (seq *Sequencer) String() string {
	return fmt.Sprintf("%d: %s @ %s", seq.pc, seq.program[seq.pc], seq.clk.Time())
}

// Time implements the Driver interface.
func (seq *Sequencer) Time() clocks.Time {
	return seq.clk.Time()
}

// Reset implements the Driver interface. The program restarts from the first
// operation.
func (seq *Sequencer) Reset(t clocks.Time) {
	seq.clk.Reset(t)
	seq.pc = 0
	seq.haveDirect = false
	seq.LastRead = 0
}

// RunUntil implements the Driver interface.
func (seq *Sequencer) RunUntil(target clocks.Time) error {
	for seq.clk.Time().Before(target) {
		op := seq.program[seq.pc]
		t := seq.clk.Time()

		var data uint8
		switch op.Kind {
		case OpRead:
			data = seq.read(op.Address, t)
			seq.LastRead = data
		case OpWrite:
			data = op.Data
			seq.mem.Write(op.Address, data, t)
		case OpIn:
			data = seq.mem.ReadIO(uint8(op.Address), t)
			seq.LastRead = data
		case OpOut:
			data = op.Data
			seq.mem.WriteIO(uint8(op.Address), data, t)
		case OpWait:
		}

		if seq.Trace != nil {
			seq.Trace(op, t, data)
		}

		seq.clk.AddTicks(uint64(max(op.Cycles, 1)))
		seq.pc = (seq.pc + 1) % len(seq.program)
	}

	assert.Check(!seq.clk.Time().Before(target), "cpu: sequencer stopped before target")

	return nil
}

// read memory using a direct access token if possible
func (seq *Sequencer) read(address uint16, t clocks.Time) uint8 {
	gen := seq.mem.Generation()

	if seq.haveDirect && seq.direct.Contains(address) {
		if v, ok := seq.direct.Read(address, gen); ok {
			seq.Stats.DirectReads++
			return v
		}
		seq.haveDirect = false
		seq.Stats.Invalidated++
	}

	seq.direct, seq.haveDirect = seq.mem.Direct(address)
	if seq.haveDirect {
		if v, ok := seq.direct.Read(address, gen); ok {
			seq.Stats.DirectReads++
			return v
		}
		seq.haveDirect = false
	}

	seq.Stats.BusReads++
	return seq.mem.Read(address, t)
}
