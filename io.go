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

package meep

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// WriteNetCDF writes the gridded far-field result to a NetCDF file.
// The file holds one coordinate variable per grid dimension, the
// registered frequencies, and one real and one imaginary variable per
// field component with dimensions (freq, x, y, z).
func (g *Grid) WriteNetCDF(filename string) error {
	h := cdf.NewHeader([]string{"freq", "x", "y", "z"},
		[]int{len(g.Freqs), g.Nx, g.Ny, g.Nz})

	h.AddVariable("freq", []string{"freq"}, []float64{0.})
	h.AddAttribute("freq", "description", "Frequencies at which far fields were evaluated")
	for _, dim := range []string{"x", "y", "z"} {
		h.AddVariable(dim, []string{dim}, []float64{0.})
		h.AddAttribute(dim, "description", fmt.Sprintf("Grid point %s coordinates", dim))
	}
	for c := Ex; c <= Hz; c++ {
		for _, part := range []string{"re", "im"} {
			v := fmt.Sprintf("%s_%s", c, part)
			h.AddVariable(v, []string{"freq", "x", "y", "z"}, []float64{0.})
			h.AddAttribute(v, "description",
				fmt.Sprintf("Far-field %s component, %s part", c, part))
		}
	}
	h.AddAttribute("", "dims", []int32{int32(g.Dims)})

	h.Define()
	for _, err := range h.Check() {
		return fmt.Errorf("meep: creating netcdf header: %v", err)
	}

	ff, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("meep: creating netcdf file: %v", err)
	}
	defer ff.Close()
	f, err := cdf.Create(ff, h)
	if err != nil {
		return fmt.Errorf("meep: creating netcdf file: %v", err)
	}

	w := f.Writer("freq", []int{0}, []int{len(g.Freqs)})
	if _, err := w.Write(g.Freqs); err != nil {
		return fmt.Errorf("meep: writing netcdf frequencies: %v", err)
	}
	coords := map[string][]float64{
		"x": g.coords(X), "y": g.coords(Y), "z": g.coords(Z),
	}
	for _, dim := range []string{"x", "y", "z"} {
		w := f.Writer(dim, []int{0}, []int{len(coords[dim])})
		if _, err := w.Write(coords[dim]); err != nil {
			return fmt.Errorf("meep: writing netcdf coordinate %s: %v", dim, err)
		}
	}
	for c := Ex; c <= Hz; c++ {
		for fi := range g.Freqs {
			for i, arr := range []*sparse.DenseArray{g.Re[c][fi], g.Im[c][fi]} {
				v := fmt.Sprintf("%s_%s", c, []string{"re", "im"}[i])
				w := f.Writer(v, []int{fi, 0, 0, 0}, []int{fi + 1, g.Nx, g.Ny, g.Nz})
				if _, err := w.Write(arr.Elements); err != nil {
					return fmt.Errorf("meep: writing netcdf variable %s: %v", v, err)
				}
			}
		}
	}
	return nil
}

func (g *Grid) coords(d Direction) []float64 {
	n := []int{g.Nx, g.Ny, g.Nz}[d.axis()]
	out := make([]float64, n)
	for i := range out {
		out[i] = gridCoord(g.Center.Get(d), g.Size.Get(d), n, i)
	}
	return out
}
