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
	"image"
	"math"
	"slices"

	"golang.org/x/image/draw"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// edge represents a quad boundary segment in device coordinates.
type edge struct {
	x0, y0 float64 // start point
	x1, y1 float64 // end point
	dxdy   float64 // (x1-x0)/(y1-y0), precomputed for x-intercept calculation
}

// Renderer converts parametric surfaces to grayscale depth maps.
// The caller creates one instance and reuses it for multiple surfaces.
// Internal buffers grow as needed but never shrink.
//
// A Renderer is not safe for concurrent use.
type Renderer struct {
	// Supersample is the oversampling factor: the surface is rendered
	// at Supersample times the requested resolution and downscaled.
	// Must be >= 1.
	Supersample int

	// Smooth enables a 3×3 Gaussian pass over the shaded depth map
	// before downscaling.
	Smooth bool

	// Near is the near clip distance. Geometry closer to the camera
	// plane than this is discarded. Must be > 0.
	Near float64

	// Internal buffers (reused across calls)
	dist      []float64 // per-pixel nearest camera distance; +Inf where empty
	pts       []vec.Vec2
	depths    []float64
	visible   []bool
	crossings []float64 // x values where quad edges cross the scanline
	gray      []byte
	blurred   []byte

	clip rect.Rect // device bounds of the current render
}

// NewRenderer returns a Renderer with default quality settings:
// 2× supersampling, Gaussian smoothing, near clip at 1e-3.
func NewRenderer() *Renderer {
	return &Renderer{
		Supersample: 2,
		Smooth:      true,
		Near:        1e-3,
	}
}

// RenderDepth renders the surface into a width×height grayscale depth
// map. Intensity encodes camera distance: 255 for the nearest hit
// pixel, 0 for the farthest; pixels not covered by the surface are 0.
// The output is deterministic: rendering the same surface twice gives
// identical images.
func (r *Renderer) RenderDepth(s Surface, width, height int) (*image.Gray, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("surface: invalid image size %dx%d", width, height)
	}
	if s.Eval == nil {
		return nil, fmt.Errorf("surface %q: no evaluator", s.Name)
	}
	if s.USteps < 1 || s.VSteps < 1 {
		return nil, fmt.Errorf("surface %q: invalid tessellation %dx%d",
			s.Name, s.USteps, s.VSteps)
	}

	ss := max(r.Supersample, 1)
	w, h := width*ss, height*ss
	r.clip = rect.Rect{LLx: 0, LLy: 0, URx: float64(w), URy: float64(h)}

	// Device transform: NDC [-1,1] to pixels, y pointing down,
	// square aspect centred on the canvas.
	half := float64(min(w, h)) / 2
	ctm := matrix.Matrix{half, 0, 0, -half, float64(w) / 2, float64(h) / 2}

	size := w * h
	r.dist = slices.Grow(r.dist[:0], size)[:size]
	for i := range r.dist {
		r.dist[i] = math.Inf(1)
	}

	// Evaluate and project the tessellation grid once; quads share
	// corners with their neighbours.
	nu, nv := s.USteps+1, s.VSteps+1
	n := nu * nv
	r.pts = slices.Grow(r.pts[:0], n)[:n]
	r.depths = slices.Grow(r.depths[:0], n)[:n]
	r.visible = slices.Grow(r.visible[:0], n)[:n]

	f := s.Camera.frame()
	du := (s.UMax - s.UMin) / float64(s.USteps)
	dv := (s.VMax - s.VMin) / float64(s.VSteps)
	for i := range nu {
		u := s.UMin + float64(i)*du
		for j := range nv {
			v := s.VMin + float64(j)*dv
			idx := i*nv + j
			ndcX, ndcY, dist, ok := f.project(s.Eval(u, v), r.Near)
			r.visible[idx] = ok
			if !ok {
				continue
			}
			r.pts[idx] = vec.Vec2{
				X: ctm[0]*ndcX + ctm[2]*ndcY + ctm[4],
				Y: ctm[1]*ndcX + ctm[3]*ndcY + ctm[5],
			}
			r.depths[idx] = dist
		}
	}

	for i := range s.USteps {
		for j := range s.VSteps {
			c := [4]int{
				i*nv + j,
				(i+1)*nv + j,
				(i+1)*nv + j + 1,
				i*nv + j + 1,
			}
			if !r.visible[c[0]] || !r.visible[c[1]] || !r.visible[c[2]] || !r.visible[c[3]] {
				continue
			}
			quad := [4]vec.Vec2{r.pts[c[0]], r.pts[c[1]], r.pts[c[2]], r.pts[c[3]]}
			depth := (r.depths[c[0]] + r.depths[c[1]] + r.depths[c[2]] + r.depths[c[3]]) / 4
			r.fillQuad(quad, depth, w)
		}
	}

	r.shade(w, h)
	if r.Smooth {
		r.blur(w, h)
	}

	full := &image.Gray{Pix: r.gray, Stride: w, Rect: image.Rect(0, 0, w, h)}
	if ss == 1 {
		out := image.NewGray(image.Rect(0, 0, width, height))
		copy(out.Pix, full.Pix)
		return out, nil
	}
	out := image.NewGray(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(out, out.Bounds(), full, full.Bounds(), draw.Src, nil)
	return out, nil
}

// fillQuad rasterises a single projected quad into the distance
// buffer, keeping the nearest depth per pixel. Pixels are covered when
// their centre lies inside the quad (even-odd rule on scanline
// crossings).
func (r *Renderer) fillQuad(quad [4]vec.Vec2, depth float64, w int) {
	var edges [4]edge
	ne := 0
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for i := range 4 {
		p0, p1 := quad[i], quad[(i+1)%4]
		yMin = min(yMin, p0.Y)
		yMax = max(yMax, p0.Y)

		// Skip horizontal edges: they never cross a scanline centre.
		dy := p1.Y - p0.Y
		if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
			continue
		}
		edges[ne] = edge{
			x0: p0.X, y0: p0.Y,
			x1: p1.X, y1: p1.Y,
			dxdy: (p1.X - p0.X) / dy,
		}
		ne++
	}
	if ne < 2 {
		return // degenerate projection
	}

	// Clamp the scanline range to the clip rectangle.
	row0 := max(int(math.Floor(yMin)), int(r.clip.LLy))
	row1 := min(int(math.Floor(yMax))+1, int(r.clip.URy))

	for row := row0; row < row1; row++ {
		yc := float64(row) + 0.5

		// Collect the x positions where edges cross this scanline.
		r.crossings = r.crossings[:0]
		for i := range ne {
			e := &edges[i]
			eyMin, eyMax := e.y0, e.y1
			if eyMin > eyMax {
				eyMin, eyMax = eyMax, eyMin
			}
			if yc < eyMin || yc >= eyMax {
				continue
			}
			r.crossings = append(r.crossings, e.x0+e.dxdy*(yc-e.y0))
		}
		if len(r.crossings) < 2 {
			continue
		}
		slices.Sort(r.crossings)

		// Fill between crossing pairs.
		for i := 0; i+1 < len(r.crossings); i += 2 {
			x0 := max(int(math.Ceil(r.crossings[i]-0.5)), int(r.clip.LLx))
			x1 := min(int(math.Ceil(r.crossings[i+1]-0.5)), int(r.clip.URx))
			rowOffset := row * w
			for x := x0; x < x1; x++ {
				if depth < r.dist[rowOffset+x] {
					r.dist[rowOffset+x] = depth
				}
			}
		}
	}
}

// shade converts the distance buffer to grayscale bytes in r.gray.
// Distances are normalised linearly over the hit pixels, near mapping
// to 255 and far to 0; empty pixels stay 0.
func (r *Renderer) shade(w, h int) {
	size := w * h
	r.gray = slices.Grow(r.gray[:0], size)[:size]

	dMin, dMax := math.Inf(1), math.Inf(-1)
	for _, d := range r.dist {
		if math.IsInf(d, 1) {
			continue
		}
		dMin = min(dMin, d)
		dMax = max(dMax, d)
	}
	if dMin > dMax {
		clear(r.gray) // surface entirely outside the view
		return
	}

	span := dMax - dMin
	for i, d := range r.dist {
		switch {
		case math.IsInf(d, 1):
			r.gray[i] = 0
		case span == 0:
			r.gray[i] = 255
		default:
			r.gray[i] = byte(math.Round(255 * (dMax - d) / span))
		}
	}
}

// blur applies a single 3×3 Gaussian pass to r.gray, leaving the
// one-pixel border untouched.
func (r *Renderer) blur(w, h int) {
	size := w * h
	r.blurred = slices.Grow(r.blurred[:0], size)[:size]
	copy(r.blurred, r.gray)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var sum int
			sum += int(r.gray[(y-1)*w+x-1]) + 2*int(r.gray[(y-1)*w+x]) + int(r.gray[(y-1)*w+x+1])
			sum += 2*int(r.gray[y*w+x-1]) + 4*int(r.gray[y*w+x]) + 2*int(r.gray[y*w+x+1])
			sum += int(r.gray[(y+1)*w+x-1]) + 2*int(r.gray[(y+1)*w+x]) + int(r.gray[(y+1)*w+x+1])
			r.blurred[y*w+x] = byte(sum / 16)
		}
	}
	r.gray, r.blurred = r.blurred, r.gray
}

// horizontalEdgeThreshold is the minimum vertical extent for an edge
// to contribute scanline crossings. Edges with |y1 - y0| below this
// threshold are skipped as horizontal.
const horizontalEdgeThreshold = 1e-10
