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

// Package surface produces grayscale depth maps of parametric 3D
// surfaces, shaded by camera distance: 255 is the nearest hit pixel,
// 0 the farthest (and the empty background).
package surface

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Surface is a parametric surface together with the viewpoint it is
// rendered from.
type Surface struct {
	Name string

	// Eval maps parameters (u, v) to a point in world space.
	Eval func(u, v float64) r3.Vec

	// Parameter ranges.
	UMin, UMax float64
	VMin, VMax float64

	// Tessellation resolution: the surface is split into
	// USteps×VSteps quads. Both must be >= 1.
	USteps, VSteps int

	// Camera is the viewpoint used by Renderer.RenderDepth.
	Camera Camera
}

// All contains the surfaces selectable on the command line,
// keyed by name.
var All = map[string]Surface{
	"higgs":    Higgs(),
	"wormhole": Wormhole(),
}

// Higgs returns the "sombrero" potential surface
//
//	z(r) = λ r⁴ − µ² r²
//
// over a disc, with a central bump at r = 0 and a circular valley at
// r = sqrt(µ²/2λ).
func Higgs() Surface {
	const (
		mu2    = 2.0 // µ², coefficient of the quadratic term
		lambda = 1.0 // λ, coefficient of the quartic term
	)
	return Surface{
		Name: "higgs",
		Eval: func(u, v float64) r3.Vec {
			r2 := u * u
			return r3.Vec{
				X: u * math.Cos(v),
				Y: u * math.Sin(v),
				Z: lambda*r2*r2 - mu2*r2,
			}
		},
		UMin: 0, UMax: 1.5,
		VMin: 0, VMax: 2 * math.Pi,
		USteps: 120, VSteps: 240,
		Camera: Camera{
			Eye:    r3.Vec{X: 2.6, Y: -2.6, Z: 2.2},
			Target: r3.Vec{Z: -0.4},
			Up:     r3.Vec{Z: 1},
			FOV:    40,
		},
	}
}

// Wormhole returns the embedding surface of an Ellis wormhole with
// throat radius b = 1: a tube of radius b·cosh(z/b), narrowest at
// z = 0.
func Wormhole() Surface {
	const b = 1.0 // throat radius
	return Surface{
		Name: "wormhole",
		Eval: func(u, v float64) r3.Vec {
			r := b * math.Cosh(u/b)
			return r3.Vec{
				X: r * math.Cos(v),
				Y: r * math.Sin(v),
				Z: u,
			}
		},
		UMin: -2, UMax: 2,
		VMin: 0, VMax: 2 * math.Pi,
		USteps: 160, VSteps: 240,
		Camera: Camera{
			Eye:    r3.Vec{X: 8, Y: -8, Z: 5.5},
			Target: r3.Vec{},
			Up:     r3.Vec{Z: 1},
			FOV:    40,
		},
	}
}
