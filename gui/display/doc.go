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

// Package display presents the frames produced by the framebuffer sink in a
// window. The window is implemented with ebiten.
//
// The Run() function must be called from the main goroutine and will not
// return until the window has been closed or Stop() has been called. The
// emulation should therefore be run in another goroutine:
//
//	sink := framebuffer.NewSink(2)
//	disp := display.NewDisplay(sink.Frames, 2.0, false)
//
//	go func() {
//		m.Run(func() bool {
//			select {
//			case <-disp.Done():
//				return false
//			default:
//				return true
//			}
//		})
//		disp.Stop()
//	}()
//
//	err := disp.Run("gophermsx")
//
// Frames that arrive faster than the window can present them are discarded.
// Only the most recent frame is ever drawn.
package display
