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

import "math"

// Region is one axis-aligned rectangular patch of a near-field
// surface. The patch lies in the plane selected by its zero-extent
// dimension (or by Dir, if given), and Weight scales all samples on
// the patch. For a closed surface the weight encodes the outward
// normal: +1 on faces whose outward normal points along +Dir and -1 on
// faces whose outward normal points along -Dir.
type Region struct {
	// Center and Size define the patch extents. Exactly the dimension
	// normal to the patch must have zero size (and, in 2D, Size.Z must
	// be zero as well).
	Center, Size Vec

	// Weight scales all field samples on the patch. The zero value is
	// treated as +1 so that Region literals without an explicit weight
	// behave as expected.
	Weight float64

	// Dir is the patch normal. Auto infers the normal from the
	// zero-extent dimension of Size.
	Dir Direction
}

// BoxRegions returns the patches of a closed axis-aligned box (a
// rectangle in 2D) centered at center with the given size, weighted so
// that all patch normals point outward. For dims == 2 the box has four
// edges; for dims == 3 it has six faces.
func BoxRegions(dims int, center, size Vec) []Region {
	regions := make([]Region, 0, 2*dims)
	for _, d := range directions(dims) {
		face := size
		face.Set(d, 0)
		for _, sign := range []float64{-1, 1} {
			c := center
			c.Set(d, center.Get(d)+sign*size.Get(d)/2)
			regions = append(regions, Region{Center: c, Size: face, Weight: sign, Dir: d})
		}
	}
	return regions
}

// weight returns the patch weight, with the zero value defaulting
// to +1.
func (r *Region) weight() float64 {
	if r.Weight == 0 {
		return 1
	}
	return r.Weight
}

// normal determines the patch normal direction, inferring it from the
// zero-extent dimension of Size when Dir is Auto.
func (r *Region) normal(dims int) (Direction, error) {
	if r.Dir != Auto {
		if r.Dir.axis() >= dims {
			return 0, errConfig("region normal %v does not exist in %d dimensions", r.Dir, dims)
		}
		if r.Size.Get(r.Dir) != 0 {
			return 0, errConfig("region size must be zero along its normal %v", r.Dir)
		}
		return r.Dir, nil
	}
	found := Auto
	for _, d := range directions(dims) {
		if r.Size.Get(d) == 0 {
			if found != Auto {
				return 0, errConfig("region normal is ambiguous: more than one zero extent")
			}
			found = d
		}
	}
	if found == Auto {
		return 0, errConfig("cannot determine region normal: no zero extent")
	}
	return found, nil
}

// sample is one discretized point on a near-field surface. Its
// accumulators hold the running Fourier sums of the four tangential
// field components, ordered E_t1, E_t2, H_t1, H_t2, where (normal, t1,
// t2) form a right-handed cyclic triple.
type sample struct {
	Pos    Vec
	Dir    Direction // patch normal
	Weight float64
	DS     float64 // quadrature measure (length in 2D, area in 3D)
	F      [4][]complex128
}

// discretize splits the region into samples at the given spatial
// resolution, using midpoint quadrature in each tangential dimension.
func (r *Region) discretize(dims int, resolution float64, nfreq int) ([]*sample, error) {
	dir, err := r.normal(dims)
	if err != nil {
		return nil, err
	}
	if dims == 2 && r.Size.Z != 0 {
		return nil, errConfig("region size must be zero in z in a 2D simulation")
	}
	t1, t2 := dir.tangentials()
	for _, t := range []Direction{t1, t2} {
		if t.axis() < dims && r.Size.Get(t) <= 0 {
			return nil, errConfig("region at %+v is degenerate: zero extent along tangential direction %v", r.Center, t)
		}
	}
	n1, h1 := cellCounts(r.Size.Get(t1), resolution, dims, t1)
	n2, h2 := cellCounts(r.Size.Get(t2), resolution, dims, t2)
	ds := 1.
	if h1 > 0 {
		ds *= h1
	}
	if h2 > 0 {
		ds *= h2
	}
	w := r.weight()
	samples := make([]*sample, 0, n1*n2)
	for i := 0; i < n1; i++ {
		for j := 0; j < n2; j++ {
			p := r.Center
			if h1 > 0 {
				p.Set(t1, r.Center.Get(t1)-r.Size.Get(t1)/2+(float64(i)+0.5)*h1)
			}
			if h2 > 0 {
				p.Set(t2, r.Center.Get(t2)-r.Size.Get(t2)/2+(float64(j)+0.5)*h2)
			}
			s := &sample{Pos: p, Dir: dir, Weight: w, DS: ds}
			for k := range s.F {
				s.F[k] = make([]complex128, nfreq)
			}
			samples = append(samples, s)
		}
	}
	return samples, nil
}

// cellCounts returns the number of quadrature cells and the cell width
// for a tangential dimension. A zero-extent tangential dimension
// contributes a single cell of zero width (it is excluded from the
// quadrature measure); in 2D the out-of-plane direction always does.
func cellCounts(size, resolution float64, dims int, d Direction) (int, float64) {
	if size == 0 || (dims == 2 && d == Z) {
		return 1, 0
	}
	n := int(math.Round(size * resolution))
	if n < 1 {
		n = 1
	}
	return n, size / float64(n)
}

// tangentialComponents returns the four field components stored for a
// patch with the given normal, in accumulator order.
func tangentialComponents(dir Direction) [4]Component {
	t1, t2 := dir.tangentials()
	return [4]Component{
		ElectricComponent(t1), ElectricComponent(t2),
		MagneticComponent(t1), MagneticComponent(t2),
	}
}
