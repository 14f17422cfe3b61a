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

// Package prefs holds typed preference values. Each value can be registered
// with a Disk instance, which saves and loads the values to and from a file.
//
// The value of a preference is stored atomically, so a preference can be read
// from a goroutine other than the goroutine that sets it. Callbacks can be
// attached to a value with SetHookPre() and SetHookPost(). The pre hook can
// reject a new value by returning an error.
//
// Preference values on the command line are supported by the command line
// stack. A command line group is a string of key::value pairs separated by
// semi-colons. Values in the current group take precedence over values loaded
// from disk.
package prefs
