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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It handles program modes, each with its own set of flags.
//
// Arguments are supplied with NewArgs() and each layer of the command line is
// processed with Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "PERFORMANCE")
//
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return nil
//	case modalflag.ParseError:
//		return err
//	}
//
// After parsing, Mode() returns the selected mode. The first mode in the list
// is the default and is selected if the first argument is not the name of a
// mode. Comparisons are case insensitive. Flags that are not recognised by
// the current layer also select the default mode, leaving the flags to be
// parsed by the next layer.
//
// Flags for the selected mode are added after a call to NewMode(). Parse() is
// then called again:
//
//	md.NewMode()
//	frames := md.AddInt("frames", 0, "number of frames to run for")
//	p, err := md.Parse()
//
// Arguments that are neither flags nor a mode selector are available with
// RemainingArgs() and GetArg(). IsSet() reports whether a flag was explicitly
// given on the command line.
//
// Help messages are produced automatically when the -help flag is present.
// The help text lists the flags and any sub-modes of the current layer.
package modalflag
