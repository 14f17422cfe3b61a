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

package performance

// CalcFPS takes the number of frames emulated over a period of time (in
// seconds) and returns the frames per second and the accuracy of that rate as
// a percentage of the expected refresh rate.
func CalcFPS(refreshRate float32, numFrames int, duration float64) (fps float64, accuracy float64) {
	if duration <= 0 || refreshRate <= 0 {
		return 0, 0
	}
	fps = float64(numFrames) / duration
	accuracy = 100 * fps / float64(refreshRate)
	return fps, accuracy
}
