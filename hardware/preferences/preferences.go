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

package preferences

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/jetsetilly/gophermsx/prefs"
)

// Accuracy is the granularity at which the video renderer catches up with
// changes to the video state.
type Accuracy int

// List of valid Accuracy values.
const (
	AccuracyPixel Accuracy = iota
	AccuracyLine
	AccuracyScreen
)

// AccuracyList is the list of accuracy names as accepted by ParseAccuracy().
var AccuracyList = []string{"pixel", "line", "screen"}

func (a Accuracy) String() string {
	if a < 0 || int(a) >= len(AccuracyList) {
		return "unknown"
	}
	return AccuracyList[a]
}

// ParseAccuracy converts a string to an Accuracy value. The comparison is case
// insensitive.
func ParseAccuracy(s string) (Accuracy, error) {
	for i, n := range AccuracyList {
		if strings.EqualFold(strings.TrimSpace(s), n) {
			return Accuracy(i), nil
		}
	}
	return AccuracyLine, fmt.Errorf("preferences: unknown accuracy %q", s)
}

// limits of the frame skip values
const (
	MaxFrameSkipLimit = 100
)

// RenderSettings is a snapshot of the render preferences at a moment in time.
type RenderSettings struct {
	MinFrameSkip int
	MaxFrameSkip int
	Accuracy     Accuracy
	Deinterlace  bool
}

// Preferences defines and collates all the preference values used by the
// emulated hardware.
type Preferences struct {
	dsk *prefs.Disk

	// minimum number of frames to skip between drawn frames
	MinFrameSkip prefs.Int

	// maximum number of frames to skip between drawn frames
	MaxFrameSkip prefs.Int

	// one of the values in AccuracyList
	Accuracy prefs.String

	// combine interlaced fields into one frame
	Deinterlace prefs.Bool

	// television specification. "NTSC" or "PAL"
	Spec prefs.String

	// whether the emulation is paced to real time
	Throttle prefs.Bool

	// initialise RAM to a random state on reset
	RandomState prefs.Bool

	crit        sync.Mutex
	subscribers []chan struct{}
}

func (p *Preferences) String() string {
	if p.dsk == nil {
		return ""
	}
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. If path is empty the preferences are not saved to or loaded from disk.
func NewPreferences(path string) (*Preferences, error) {
	p := &Preferences{}

	p.MinFrameSkip.SetHookPre(frameSkipRange)
	p.MaxFrameSkip.SetHookPre(frameSkipRange)
	p.MinFrameSkip.SetHookPost(p.frameSkipChanged)
	p.MaxFrameSkip.SetHookPost(p.frameSkipChanged)

	p.Accuracy.SetHookPre(func(v prefs.Value) error {
		_, err := ParseAccuracy(v.(string))
		return err
	})

	p.Spec.SetHookPre(func(v prefs.Value) error {
		switch strings.ToUpper(v.(string)) {
		case "NTSC", "PAL":
			return nil
		}
		return fmt.Errorf("preferences: unknown spec %q", v)
	})

	p.SetDefaults()

	if path == "" {
		return p, nil
	}

	var err error

	p.dsk, err = prefs.NewDisk(path)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	err = p.dsk.Add("render.minframeskip", &p.MinFrameSkip)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	err = p.dsk.Add("render.maxframeskip", &p.MaxFrameSkip)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	err = p.dsk.Add("render.accuracy", &p.Accuracy)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	err = p.dsk.Add("render.deinterlace", &p.Deinterlace)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	err = p.dsk.Add("hardware.spec", &p.Spec)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	err = p.dsk.Add("hardware.throttle", &p.Throttle)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	err = p.dsk.Add("hardware.randstate", &p.RandomState)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	err = p.dsk.Load(true)
	if err != nil && !errors.Is(err, prefs.NoPrefsFile) {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	return p, nil
}

func frameSkipRange(v prefs.Value) error {
	if n := v.(int); n < 0 || n > MaxFrameSkipLimit {
		return fmt.Errorf("preferences: frame skip value %d out of range (0 to %d)", n, MaxFrameSkipLimit)
	}
	return nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.MinFrameSkip.Set(0)
	p.MaxFrameSkip.Set(3)
	p.Accuracy.Set(AccuracyLine.String())
	p.Deinterlace.Set(true)
	p.Spec.Set("NTSC")
	p.Throttle.Set(true)
	p.RandomState.Set(false)
}

// Load preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Load(false)
}

// Save preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return nil
	}
	return p.dsk.Save()
}

// Live returns a snapshot of the render preferences.
func (p *Preferences) Live() RenderSettings {
	acc, err := ParseAccuracy(p.Accuracy.String())
	if err != nil {
		acc = AccuracyLine
	}
	return RenderSettings{
		MinFrameSkip: p.MinFrameSkip.Get().(int),
		MaxFrameSkip: p.MaxFrameSkip.Get().(int),
		Accuracy:     acc,
		Deinterlace:  p.Deinterlace.Get().(bool),
	}
}

// IsPAL returns true if the Spec preference is PAL.
func (p *Preferences) IsPAL() bool {
	return strings.EqualFold(p.Spec.String(), "PAL")
}

// SubscribeFrameSkip returns a channel that receives a value whenever either
// of the frame skip preferences changes. The channel is buffered so a
// subscriber that polls infrequently will see at most one waiting value.
//
// The returned function ends the subscription. It is safe to call more than
// once.
func (p *Preferences) SubscribeFrameSkip() (<-chan struct{}, func()) {
	p.crit.Lock()
	defer p.crit.Unlock()
	ch := make(chan struct{}, 1)
	p.subscribers = append(p.subscribers, ch)
	return ch, func() {
		p.crit.Lock()
		defer p.crit.Unlock()
		p.subscribers = slices.DeleteFunc(p.subscribers, func(s chan struct{}) bool {
			return s == ch
		})
	}
}

func (p *Preferences) frameSkipChanged(_ prefs.Value) error {
	p.crit.Lock()
	defer p.crit.Unlock()
	for _, ch := range p.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}
