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

package digest

import (
	"crypto/sha1"
	"fmt"
	"image"

	"github.com/jetsetilly/gophermsx/video/framebuffer"
)

// Video generates a SHA-1 value from a sequence of images. The value for each
// frame includes the value of the previous frame so that the final value
// depends on every frame and the order they arrived in.
//
// Note that the use of SHA-1 is fine for this application because this is not
// a cryptographic task.
type Video struct {
	digest [sha1.Size]byte
	buffer []byte
	frames int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	return &Video{}
}

func (dig *Video) String() string {
	return fmt.Sprintf("%s (%d frames)", dig.Hash(), dig.frames)
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
	dig.frames = 0
}

// Frames returns the number of frames that have contributed to the digest.
func (dig *Video) Frames() int {
	return dig.frames
}

// AddImage updates the digest with the pixels of the image.
func (dig *Video) AddImage(img *image.RGBA) {
	b := img.Bounds()
	rowBytes := b.Dx() * 4

	// chain fingerprints by copying the value of the last fingerprint to the
	// head of the buffer
	dig.buffer = append(dig.buffer[:0], dig.digest[:]...)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		dig.buffer = append(dig.buffer, img.Pix[i:i+rowBytes]...)
	}

	dig.digest = sha1.Sum(dig.buffer)
	dig.frames++
}

// Drain adds every frame waiting in the channel to the digest. It does not
// wait for more frames to arrive. Returns the most recent frame received, if
// any.
func (dig *Video) Drain(frames <-chan framebuffer.Frame) (framebuffer.Frame, bool) {
	var last framebuffer.Frame
	var ok bool
	for {
		select {
		case f := <-frames:
			dig.AddImage(f.Image)
			last = f
			ok = true
		default:
			return last, ok
		}
	}
}
