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

package notifications

import (
	"errors"
	"sync"
)

// Notice describes events that somehow change the presentation of the
// emulation.
type Notice string

// List of defined notifications.
const (
	// a video source has finished a frame. the event will be of type
	// FinishFrame
	NotifyFinishFrame Notice = "NotifyFinishFrame"

	// the machine has been reset
	NotifyReset Notice = "NotifyReset"

	// the machine state has been restored from a snapshot
	NotifyRestore Notice = "NotifyRestore"
)

// Event is sent with every notification.
type Event interface {
	Notice() Notice
}

// Simple is an Event that carries no data other than the Notice.
type Simple Notice

// Notice implements the Event interface.
func (s Simple) Notice() Notice {
	return Notice(s)
}

// VideoSource identifies the video chip that produced a frame.
type VideoSource int

// List of video sources.
const (
	VideoMSX VideoSource = iota
	VideoGFX9000
)

func (s VideoSource) String() string {
	switch s {
	case VideoMSX:
		return "MSX"
	case VideoGFX9000:
		return "GFX9000"
	}
	return "unknown"
}

// FinishFrame is sent when a video source reaches the end of a frame. If
// Skipped is true then the frame was not drawn or it should not be presented.
type FinishFrame struct {
	Source  VideoSource
	Skipped bool
}

// Notice implements the Event interface.
func (f FinishFrame) Notice() Notice {
	return NotifyFinishFrame
}

// Notify is used for direct communication between the hardware and the
// emulation host.
type Notify interface {
	Notify(ev Event) error
}

// Distributor sends every event it receives to each of its listeners, in the
// order in which they were added.
type Distributor struct {
	crit      sync.Mutex
	listeners []Notify
}

// Add a listener to the distributor.
func (d *Distributor) Add(n Notify) {
	d.crit.Lock()
	defer d.crit.Unlock()
	d.listeners = append(d.listeners, n)
}

// Notify implements the Notify interface. All listeners are notified even if
// one of them returns an error. The errors are joined.
func (d *Distributor) Notify(ev Event) error {
	d.crit.Lock()
	defer d.crit.Unlock()

	var errs []error
	for _, n := range d.listeners {
		if err := n.Notify(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Func adapts a function to the Notify interface.
type Func func(ev Event) error

// Notify implements the Notify interface.
func (f Func) Notify(ev Event) error {
	return f(ev)
}

// Counter counts the FinishFrame events it receives. Other events are counted
// by Notice.
type Counter struct {
	crit sync.Mutex

	Frames  int
	Skipped int
	Last    FinishFrame
	Other   map[Notice]int
}

// Notify implements the Notify interface.
func (c *Counter) Notify(ev Event) error {
	c.crit.Lock()
	defer c.crit.Unlock()

	if ff, ok := ev.(FinishFrame); ok {
		c.Frames++
		if ff.Skipped {
			c.Skipped++
		}
		c.Last = ff
		return nil
	}

	if c.Other == nil {
		c.Other = make(map[Notice]int)
	}
	c.Other[ev.Notice()]++

	return nil
}

// Drawn returns the number of FinishFrame events that were not skipped.
func (c *Counter) Drawn() int {
	c.crit.Lock()
	defer c.crit.Unlock()
	return c.Frames - c.Skipped
}
