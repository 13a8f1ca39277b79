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

package stereo

import (
	"fmt"
	"testing"
)

// BenchmarkSynthesise measures steady-state performance by reusing a
// single Synthesiser across iterations, so the pattern buffer is
// allocated only once per size.
func BenchmarkSynthesise(b *testing.B) {
	sizes := []int{400, 800, 1600}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			depth := rampDepth(size, size)
			s := NewSynthesiser(newRand(1))

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				if _, err := s.Synthesise(depth, size, size, size); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
