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

// Depthprofile plots the intensity profile of one row of a grayscale
// depth map as a line chart. Useful for checking the depth range and
// smoothness of rendered maps before feeding them to the synthesiser.
//
// Usage:
//
//	depthprofile -in depth-higgs.png [-row 800] [-out profile.png]
package main

import (
	"flag"
	"fmt"
	"image/color"
	"image/png"
	"log"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("depthprofile: ")

	in := flag.String("in", "", "input depth map (grayscale PNG)")
	row := flag.Int("row", -1, "row to plot (-1 = middle row)")
	out := flag.String("out", "profile.png", "output chart file")
	flag.Parse()
	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	gray, w, h, err := loadGray(*in)
	if err != nil {
		log.Fatalf("loading %s: %v", *in, err)
	}

	y := *row
	if y < 0 {
		y = h / 2
	}
	if y >= h {
		log.Fatalf("row %d out of range (height %d)", y, h)
	}

	pts := make(plotter.XYs, w)
	for x := range w {
		pts[x] = plotter.XY{X: float64(x), Y: float64(gray[y*w+x])}
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s, row %d", *in, y)
	p.X.Label.Text = "column"
	p.Y.Label.Text = "intensity"
	p.Y.Min, p.Y.Max = 0, 255

	line, err := plotter.NewLine(pts)
	if err != nil {
		log.Fatalf("building line: %v", err)
	}
	line.Width = vg.Points(1)
	p.Add(line, plotter.NewGrid())

	if err := p.Save(10*vg.Inch, 4*vg.Inch, *out); err != nil {
		log.Fatalf("saving %s: %v", *out, err)
	}
	log.Printf("wrote %s", *out)
}

func loadGray(name string) (gray []byte, w, h int, err error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, 0, 0, err
	}

	bounds := img.Bounds()
	w, h = bounds.Dx(), bounds.Dy()
	gray = make([]byte, w*h)
	for y := range h {
		for x := range w {
			c := color.GrayModel.Convert(img.At(x+bounds.Min.X, y+bounds.Min.Y)).(color.Gray)
			gray[y*w+x] = c.Y
		}
	}
	return gray, w, h, nil
}
