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

package logger

// Permission is checked by Log() and Logf() before an entry is added. An
// entry is only made if AllowLogging() returns true.
//
// The environment of an emulation implements Permission. Only the main
// emulation is allowed to log, so that a machine created for a thumbnail or a
// performance comparison does not fill the log with duplicate entries.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool {
	return true
}

// Allow is the Permission used by code that is not part of an emulation, such
// as the command line front end.
var Allow Permission = allow{}
