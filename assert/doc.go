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

// Package assert contains checks for conditions that indicate a programming
// error in the driving code. The checks are only performed when the
// "assertions" build tag is specified, in which case a failed check panics.
// Without the build tag every function returns immediately and callers are
// expected to treat the offending operation as a no-op.
//
// The Enabled constant can be used to guard code that only exists to support
// an assertion.
package assert
