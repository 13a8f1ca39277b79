// seehuhn.de/go/stereo - single-image random-dot stereograms
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package stereo converts grayscale depth maps into single-image
// random-dot stereograms ("magic eye" images).
package stereo

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"slices"
)

// depthScale relates depth values to pattern geometry: the repeating
// pattern band is width/depthScale columns wide, and a depth value d
// shifts the copy source by d/depthScale columns. The two divisions
// must use the same constant: the shift is then at most
// 255/depthScale = 25, which is below the pattern width for every
// image at least 260 pixels wide, keeping all copy sources inside the
// already-written part of the output. Narrower images with large
// depth values fail the bounds check in synthesise instead.
const depthScale = 10

var (
	// ErrInvalidDimension indicates a depth grid too small to carry a
	// pattern band (width < 10, or a non-positive dimension).
	ErrInvalidDimension = errors.New("stereo: invalid depth grid dimensions")

	// ErrShiftRange indicates that a depth shift moved a copy source
	// outside the already-written part of the output grid. This cannot
	// happen with the shared depthScale constant and is checked to
	// catch invariant violations rather than silently corrupting the
	// depth encoding.
	ErrShiftRange = errors.New("stereo: depth shift out of range")
)

// Synthesiser converts depth maps to random-dot stereograms. The
// caller creates one instance and reuses it for multiple images.
// The internal pattern buffer grows as needed but never shrinks.
//
// A Synthesiser is not safe for concurrent use.
type Synthesiser struct {
	// Rand supplies the noise for the pattern band. Must be non-nil.
	// Seed it explicitly for reproducible output.
	Rand *rand.Rand

	pattern []byte // pattern band, patternWidth*height, reused across calls
}

// NewSynthesiser returns a Synthesiser drawing pattern noise from rng.
func NewSynthesiser(rng *rand.Rand) *Synthesiser {
	return &Synthesiser{Rand: rng}
}

// Synthesise converts a depth map to a stereogram. The depth map is
// given as grayscale bytes in row-major order with the given stride,
// 0 = far, 255 = near. The result is a width×height grayscale image
// with stride width.
//
// The first width/10 columns of the result are uniform random noise;
// every following pixel is copied from a column one pattern period
// back, moved closer by depth/10 columns. Under stereo fusion the
// modulated period is perceived as distance from the viewing plane.
func (s *Synthesiser) Synthesise(depth []byte, width, height, stride int) ([]byte, error) {
	return s.synthesise(depth, width, height, stride, depthScale, depthScale)
}

// synthesise is the implementation of Synthesise, with the two
// divisors as parameters so that the shift bounds check can be
// exercised in tests. Production code always passes depthScale twice.
func (s *Synthesiser) synthesise(depth []byte, width, height, stride, patternDiv, shiftDiv int) ([]byte, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, width, height)
	}
	patternWidth := width / patternDiv
	if patternWidth < 1 {
		return nil, fmt.Errorf("%w: width %d gives empty pattern band",
			ErrInvalidDimension, width)
	}

	// Generate the pattern band. It repeats across the image and
	// carries no depth information by itself.
	n := patternWidth * height
	s.pattern = slices.Grow(s.pattern[:0], n)[:n]
	for i := range s.pattern {
		s.pattern[i] = byte(s.Rand.UintN(256))
	}

	out := make([]byte, width*height)

	// Columns must be filled in increasing x order: every pixel at
	// x >= patternWidth reads an output pixel in an earlier column.
	for x := range width {
		if x < patternWidth {
			for y := range height {
				out[y*width+x] = s.pattern[y*patternWidth+x]
			}
			continue
		}
		for y := range height {
			shift := int(depth[y*stride+x]) / shiftDiv
			src := x - patternWidth + shift
			if src < 0 || src >= x {
				return nil, fmt.Errorf("%w: column %d, row %d references column %d",
					ErrShiftRange, x, y, src)
			}
			out[y*width+x] = out[y*width+src]
		}
	}
	return out, nil
}

// SynthesiseImage converts a depth map image to a stereogram image of
// the same dimensions.
func (s *Synthesiser) SynthesiseImage(depth *image.Gray) (*image.Gray, error) {
	b := depth.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := depth.Pix[depth.PixOffset(b.Min.X, b.Min.Y):]
	out, err := s.Synthesise(pix, w, h, depth.Stride)
	if err != nil {
		return nil, err
	}
	return &image.Gray{
		Pix:    out,
		Stride: w,
		Rect:   image.Rect(0, 0, w, h),
	}, nil
}
