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

package memory

import (
	"fmt"

	"github.com/jetsetilly/gophermsx/hardware/memory/bus"
)

// State is the persisted state of the Bus. It contains the primary slot
// register, the bank selector bytes of every banked device and the writable
// storage of every persistent device, keyed by handle.
type State struct {
	Primary uint8
	Banks   map[Handle][]uint8
	Storage map[Handle][]uint8
}

// Snapshot returns a copy of the Bus state.
func (b *Bus) Snapshot() *State {
	s := &State{
		Primary: b.primary,
		Banks:   make(map[Handle][]uint8),
		Storage: make(map[Handle][]uint8),
	}
	for h, r := range b.arena {
		if r.removed || r.dev == nil {
			continue
		}
		if r.banked != nil {
			s.Banks[Handle(h)] = r.banked.Banks()
		}
		if p, ok := r.dev.(bus.Persistent); ok {
			s.Storage[Handle(h)] = p.Storage()
		}
	}
	return s
}

// Plumb restores the Bus state from a previous Snapshot. The set of
// registrations must be the same as when the snapshot was taken.
//
// Every entry is checked before any is applied. If an entry is rejected the
// Bus is left unchanged.
func (b *Bus) Plumb(s *State) error {
	valid := func(h Handle) bool {
		return h >= 0 && int(h) < len(b.arena) && !b.arena[h].removed && b.arena[h].dev != nil
	}

	for h, banks := range s.Banks {
		if !valid(h) || b.arena[h].banked == nil {
			return fmt.Errorf("memory: %w: %d has no banks to restore", ErrUnknownHandle, h)
		}
		if n := len(b.arena[h].banked.Banks()); n != len(banks) {
			return fmt.Errorf("memory: %s: expected %d bank bytes, got %d", b.arena[h].label, n, len(banks))
		}
	}

	for h, data := range s.Storage {
		if !valid(h) {
			return fmt.Errorf("memory: %w: %d has no storage to restore", ErrUnknownHandle, h)
		}
		p, ok := b.arena[h].dev.(bus.Persistent)
		if !ok {
			return fmt.Errorf("memory: %w: %d has no storage to restore", ErrUnknownHandle, h)
		}
		if n := len(p.Storage()); n != len(data) {
			return fmt.Errorf("memory: %s: expected %d bytes of storage, got %d", b.arena[h].label, n, len(data))
		}
	}

	// the restore functions only fail on a length mismatch so an error here is
	// unexpected. the cache is invalidated regardless
	defer b.remap()

	for h, banks := range s.Banks {
		if err := b.arena[h].banked.RestoreBanks(banks); err != nil {
			return fmt.Errorf("memory: %w", err)
		}
	}
	for h, data := range s.Storage {
		if err := b.arena[h].dev.(bus.Persistent).RestoreStorage(data); err != nil {
			return fmt.Errorf("memory: %w", err)
		}
	}

	b.primary = s.Primary
	return nil
}
