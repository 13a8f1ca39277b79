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

// Magiceye renders a parametric surface as a random-dot stereogram.
//
// Usage:
//
//	magiceye higgs [flags]
//	magiceye wormhole [flags]
//
// The stereogram is written to magic-<shape>.png in the current
// directory.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"maps"
	"math/rand/v2"
	"os"
	"slices"
	"time"

	"seehuhn.de/go/stereo"
	"seehuhn.de/go/stereo/surface"
)

func usage() {
	names := slices.Sorted(maps.Keys(surface.All))
	fmt.Fprintf(os.Stderr, "usage: %s <shape> [flags]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "shapes: %v\n", names)
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("magiceye: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	shape := os.Args[1]
	s, ok := surface.All[shape]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown shape %q\n", shape)
		usage()
		os.Exit(2)
	}

	fs := flag.NewFlagSet(shape, flag.ExitOnError)
	size := fs.Int("size", 1600, "output image edge length in pixels")
	seed := fs.Uint64("seed", 0, "pattern noise seed (0 = time-based)")
	saveDepth := fs.Bool("depth", false, "also write the intermediate depth map")
	fs.Parse(os.Args[2:])

	depth, err := surface.NewRenderer().RenderDepth(s, *size, *size)
	if err != nil {
		log.Fatalf("rendering depth map: %v", err)
	}
	if *saveDepth {
		name := fmt.Sprintf("depth-%s.png", shape)
		if err := writePNG(name, depth); err != nil {
			log.Fatalf("writing %s: %v", name, err)
		}
		log.Printf("wrote %s", name)
	}

	if *seed == 0 {
		*seed = uint64(time.Now().UnixNano())
	}
	syn := stereo.NewSynthesiser(rand.New(rand.NewPCG(*seed, 0)))
	img, err := syn.SynthesiseImage(depth)
	if err != nil {
		log.Fatalf("synthesising stereogram: %v", err)
	}

	name := fmt.Sprintf("magic-%s.png", shape)
	if err := writePNG(name, img); err != nil {
		log.Fatalf("writing %s: %v", name, err)
	}
	log.Printf("wrote %s", name)
}

func writePNG(name string, img image.Image) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
