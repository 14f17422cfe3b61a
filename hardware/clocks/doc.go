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

// Package clocks implements the virtual time of the emulation. Time is a
// count of ticks at MainFrequency, a frequency that is an exact multiple of
// every clock in the emulated machine. Arithmetic on Time and Duration is
// exact integer arithmetic and so comparisons between times produced by
// different clocks are always well defined.
//
// A 64 bit tick count at MainFrequency wraps after about 170 years of
// emulated time. Overflow is therefore never expected and Time.Add() panics if
// it happens.
//
// The Clock type is a clock of a fixed frequency, such as the CPU clock,
// anchored to a point in virtual time. It converts between its own ticks and
// virtual time.
package clocks
