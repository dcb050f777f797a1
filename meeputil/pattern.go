/*
Copyright © 2026 the Meep authors.
This file is part of Meep.

Meep is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Meep is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Meep.  If not, see <http://www.gnu.org/licenses/>.
*/

package meeputil

import (
	"fmt"
	"math"

	"github.com/davidwilby/meep"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// writePattern evaluates the 2D radiation pattern of s on a circle of
// the given radius and writes radial power versus angle to a PNG file.
func writePattern(s *meep.Spectrum, radius float64, n int, freq float64, filename string) error {
	ffs, err := s.FarFieldsCircle(meep.Vec{}, radius, n, freq)
	if err != nil {
		return err
	}

	pts := make(plotter.XYs, n)
	for i, ff := range ffs {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		sv := ff.Poynting()
		pts[i].X = 360 * float64(i) / float64(n)
		pts[i].Y = (sv.X*cos + sv.Y*sin) * radius
	}

	p, err := plot.New()
	if err != nil {
		return fmt.Errorf("meep: creating radiation pattern plot: %v", err)
	}
	p.Title.Text = fmt.Sprintf("Radiation pattern, freq=%g", freq)
	p.X.Label.Text = "angle [degrees]"
	p.Y.Label.Text = "radial power per unit angle"
	p.X.Min, p.X.Max = 0, 360

	l, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("meep: creating radiation pattern plot: %v", err)
	}
	p.Add(l)
	p.Add(plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("meep: saving radiation pattern plot: %v", err)
	}
	return nil
}
