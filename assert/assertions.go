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

//go:build assertions

package assert

import "fmt"

// Enabled is true when the assertions build tag is present.
const Enabled = true

// Check panics with the formatted message if cond is false.
func Check(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf("assertion failed: "+format, args...))
	}
}

// Affinity records the goroutine of its creator and panics if Check() is
// called from any other goroutine.
type Affinity struct {
	id uint64
}

// NewAffinity ties the Affinity to the calling goroutine.
func NewAffinity() Affinity {
	return Affinity{id: GoRoutineID()}
}

// Check panics if the calling goroutine is not the goroutine that created the
// Affinity.
func (a Affinity) Check() {
	if id := GoRoutineID(); id != a.id {
		panic(fmt.Sprintf("assertion failed: goroutine %d used state owned by goroutine %d", id, a.id))
	}
}
