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

// Package framebuffer implements the rasterizer used by the video renderer.
// The output is an image.RGBA covering the whole raster, including the
// blanking and border zones, at a resolution of one pixel for every four UC
// ticks horizontally and one pixel per line vertically.
//
// Only the bitmap display modes are drawn. The pattern display modes draw the
// backdrop colour in the display area. The YJK and YUV colour modes are
// treated as palette indexed.
//
// Finished frames are sent on the Frames channel. Ownership of the image is
// transferred to the receiver: the sink never touches an image once it has
// been sent. If the receiver is not ready the frame is dropped.
package framebuffer
