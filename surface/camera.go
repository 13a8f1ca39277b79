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
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera describes a perspective viewpoint.
type Camera struct {
	// Eye is the camera position in world space.
	Eye r3.Vec

	// Target is the point the camera looks at.
	// Must differ from Eye.
	Target r3.Vec

	// Up fixes the roll of the camera. Must not be parallel to the
	// viewing direction.
	Up r3.Vec

	// FOV is the vertical field of view in degrees. Must be in (0, 180).
	FOV float64
}

// frame is the orthonormal viewing basis derived from a Camera,
// precomputed once per render.
type frame struct {
	eye                r3.Vec
	right, up, forward r3.Vec
	scale              float64 // 1/tan(FOV/2), NDC units per tangent
}

func (c Camera) frame() frame {
	forward := r3.Unit(r3.Sub(c.Target, c.Eye))
	right := r3.Unit(r3.Cross(forward, c.Up))
	up := r3.Cross(right, forward)
	return frame{
		eye:     c.Eye,
		right:   right,
		up:      up,
		forward: forward,
		scale:   1 / math.Tan(c.FOV/2*math.Pi/180),
	}
}

// project maps a world-space point to normalized device coordinates,
// where the vertical field of view spans [-1, 1]. It also returns the
// Euclidean camera distance, used for shading. ok is false for points
// behind (or too close to) the camera plane.
func (f frame) project(p r3.Vec, near float64) (ndcX, ndcY, dist float64, ok bool) {
	d := r3.Sub(p, f.eye)
	z := r3.Dot(d, f.forward)
	if z < near {
		return 0, 0, 0, false
	}
	ndcX = r3.Dot(d, f.right) / z * f.scale
	ndcY = r3.Dot(d, f.up) / z * f.scale
	return ndcX, ndcY, r3.Norm(d), true
}
