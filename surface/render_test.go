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

package surface

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r3"
)

// tiltedPlane is a square tilted around the y axis, seen from straight
// above: the +x side is raised towards the camera.
func tiltedPlane() Surface {
	return Surface{
		Name: "tilted_plane",
		Eval: func(u, v float64) r3.Vec {
			return r3.Vec{X: u, Y: v, Z: 0.5 * u}
		},
		UMin: -1, UMax: 1,
		VMin: -1, VMax: 1,
		USteps: 40, VSteps: 40,
		Camera: Camera{
			Eye:    r3.Vec{Z: 3},
			Target: r3.Vec{},
			Up:     r3.Vec{Y: 1},
			FOV:    50,
		},
	}
}

func TestRenderDepthSize(t *testing.T) {
	r := NewRenderer()
	for _, s := range All {
		t.Run(s.Name, func(t *testing.T) {
			img, err := r.RenderDepth(s, 80, 60)
			if err != nil {
				t.Fatal(err)
			}
			b := img.Bounds()
			if b.Dx() != 80 || b.Dy() != 60 {
				t.Fatalf("got %dx%d, want 80x60", b.Dx(), b.Dy())
			}

			hits := 0
			for _, p := range img.Pix {
				if p > 0 {
					hits++
				}
			}
			if hits == 0 {
				t.Error("surface not visible: depth map is all zero")
			}
		})
	}
}

func TestRenderDeterminism(t *testing.T) {
	s := Higgs()

	first, err := NewRenderer().RenderDepth(s, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewRenderer().RenderDepth(s, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first.Pix, second.Pix); diff != "" {
		t.Errorf("renders differ (-first +second):\n%s", diff)
	}
}

// TestNearerIsBrighter renders a plane tilted towards the camera on
// its +x side and checks that the near half of the image is brighter
// on average than the far half.
func TestNearerIsBrighter(t *testing.T) {
	r := NewRenderer()
	r.Supersample = 1
	r.Smooth = false

	img, err := r.RenderDepth(tiltedPlane(), 100, 100)
	if err != nil {
		t.Fatal(err)
	}

	mean := func(x0, x1 int) float64 {
		var sum, n int
		for y := range 100 {
			for x := x0; x < x1; x++ {
				if p := img.GrayAt(x, y).Y; p > 0 {
					sum += int(p)
					n++
				}
			}
		}
		if n == 0 {
			t.Fatal("no hit pixels in half")
		}
		return float64(sum) / float64(n)
	}

	far, near := mean(0, 50), mean(50, 100)
	if near <= far {
		t.Errorf("near half mean %.1f not brighter than far half mean %.1f", near, far)
	}
}

// TestRenderFullRange checks that the shading uses the full intensity
// range: the nearest pixel is 255 and some hit pixel is substantially
// darker.
func TestRenderFullRange(t *testing.T) {
	r := NewRenderer()
	r.Supersample = 1
	r.Smooth = false

	img, err := r.RenderDepth(tiltedPlane(), 100, 100)
	if err != nil {
		t.Fatal(err)
	}

	maxV, minHit := byte(0), byte(255)
	for _, p := range img.Pix {
		if p == 0 {
			continue
		}
		maxV = max(maxV, p)
		minHit = min(minHit, p)
	}
	if maxV != 255 {
		t.Errorf("brightest hit pixel is %d, want 255", maxV)
	}
	if minHit > 64 {
		t.Errorf("darkest hit pixel is %d, want a wide range", minHit)
	}
}

func TestRenderDepthErrors(t *testing.T) {
	r := NewRenderer()

	if _, err := r.RenderDepth(Higgs(), 0, 10); err == nil {
		t.Error("zero width accepted")
	}
	if _, err := r.RenderDepth(Surface{Name: "empty"}, 10, 10); err == nil {
		t.Error("surface without evaluator accepted")
	}

	bad := Higgs()
	bad.USteps = 0
	if _, err := r.RenderDepth(bad, 10, 10); err == nil {
		t.Error("zero tessellation accepted")
	}
}

// BenchmarkRenderDepth measures steady-state performance by reusing a
// single Renderer across iterations.
func BenchmarkRenderDepth(b *testing.B) {
	sizes := []int{100, 400}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := NewRenderer()
			s := Wormhole()

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				if _, err := r.RenderDepth(s, size, size); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
