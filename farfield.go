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
	"log"
	"math"
	"runtime"
	"sync"

	"github.com/ctessum/sparse"
)

// FarField holds the six complex field components at one query point
// and frequency. The components are complex even when the time-domain
// source was purely real, because the frozen surface spectrum is
// inherently complex.
type FarField struct {
	E, H [3]complex128
}

// Component returns the requested field component.
func (ff *FarField) Component(c Component) complex128 {
	if c.IsElectric() {
		return ff.E[c.Dir().axis()]
	}
	return ff.H[c.Dir().axis()]
}

// Poynting returns the time-averaged Poynting vector Re(E* × H).
func (ff *FarField) Poynting() Vec {
	var s Vec
	for d := X; d <= Z; d++ {
		t1, t2 := d.tangentials()
		s.Set(d, real(cmul(ff.E[t1.axis()], ff.H[t2.axis()])-cmul(ff.E[t2.axis()], ff.H[t1.axis()])))
	}
	return s
}

// EnergyDensity returns the time-averaged electromagnetic energy
// density (ε|E|² + μ|H|²)/2 in the exterior medium.
func (ff *FarField) EnergyDensity(eps, mu float64) float64 {
	var e, h float64
	for d := X; d <= Z; d++ {
		e += real(cmul(ff.E[d.axis()], ff.E[d.axis()]))
		h += real(cmul(ff.H[d.axis()], ff.H[d.axis()]))
	}
	return (eps*e + mu*h) / 2
}

// cmul returns conj(a)*b.
func cmul(a, b complex128) complex128 {
	return complex(real(a), -imag(a)) * b
}

// FarField evaluates the field at point p and the given frequency by
// integrating the equivalent surface currents J = n̂×H and M = -n̂×E
// against the free-space Green's function. The point may be at any
// distance outside the near surface: the integral is exact at finite
// distances and reduces to the radiation pattern in the asymptotic
// limit. Points inside the enclosed volume are not rejected, but the
// result there is not meaningful.
//
// The frequency must be one of the registered frequencies; otherwise
// an UnsupportedFrequencyError is returned.
func (s *Spectrum) FarField(p Vec, freq float64) (*FarField, error) {
	if err := s.checkQuery(p); err != nil {
		return nil, err
	}
	fi, err := freqIndex(s.Freqs, freq)
	if err != nil {
		return nil, err
	}
	return s.farFieldIndexed(p, fi), nil
}

func (s *Spectrum) checkQuery(p Vec) error {
	if len(s.Samples) == 0 {
		return errConfig("spectrum has no surface samples")
	}
	if s.Dims == 2 && p.Z != 0 {
		return errConfig("query point %+v has nonzero z in a 2D simulation", p)
	}
	if s.Steps == 0 {
		s.warnOnce.Do(func() {
			log.Printf("meep: evaluating far fields from a spectrum that absorbed no timesteps; " +
				"results are identically zero")
		})
	}
	return nil
}

// farFieldIndexed sums the Bloch-periodic tile contributions for one
// query point and frequency index. The per-tile terms are independent,
// so the tiling is expressed as a reduction over translated-and-phased
// copies of the surface.
func (s *Spectrum) farFieldIndexed(p Vec, fi int) *FarField {
	eh := reduceTiles(s.tiles(), func(t tile) [6]complex128 {
		var part [6]complex128
		s.integrate(&part, p.Sub(t.offset), fi)
		for i := range part {
			part[i] *= t.phase
		}
		return part
	})
	ff := new(FarField)
	for d := X; d <= Z; d++ {
		ff.E[d.axis()] = eh[ElectricComponent(d)]
		ff.H[d.axis()] = eh[MagneticComponent(d)]
	}
	return ff
}

// tile is one translated-and-phased copy of the near surface.
type tile struct {
	offset Vec
	phase  complex128
}

// tiles returns the Bloch-periodic copies of the surface: the identity
// copy for an untiled spectrum, or 2·NPeriods+1 phased translates.
func (s *Spectrum) tiles() []tile {
	if s.NPeriods == 0 {
		return []tile{{phase: 1}}
	}
	phase := s.Phase
	if phase == 0 {
		phase = 1
	}
	ts := make([]tile, 0, 2*s.NPeriods+1)
	for n := -s.NPeriods; n <= s.NPeriods; n++ {
		ts = append(ts, tile{
			offset: s.Period.Scale(float64(n)),
			phase:  cpow(phase, n),
		})
	}
	return ts
}

// reduceTiles sums the per-tile field contributions. The terms are
// associative and independent, which is what makes the periodic sum
// (and bulk evaluation generally) embarrassingly parallel.
func reduceTiles(tiles []tile, f func(tile) [6]complex128) [6]complex128 {
	var total [6]complex128
	for _, t := range tiles {
		part := f(t)
		for i := range total {
			total[i] += part[i]
		}
	}
	return total
}

// cpow returns z**n for integer n, with z assumed on (or near) the
// unit circle so that negative powers are well conditioned.
func cpow(z complex128, n int) complex128 {
	if n < 0 {
		z = complex(real(z), -imag(z)) / complex(real(z)*real(z)+imag(z)*imag(z), 0)
		n = -n
	}
	out := complex(1, 0)
	for i := 0; i < n; i++ {
		out *= z
	}
	return out
}

// integrate adds to eh the radiation integral of the surface currents
// over a single copy of the surface, evaluated at point p for
// frequency index fi.
func (s *Spectrum) integrate(eh *[6]complex128, p Vec, fi int) {
	eps, mu := s.medium()
	freq := s.Freqs[fi]
	green := green3D
	if s.Dims == 2 {
		green = green2D
	}
	for i := range s.Samples {
		smp := &s.Samples[i]
		t1, t2 := smp.Dir.tangentials()
		w := complex(smp.Weight*smp.DS, 0)
		// J = n̂×H and M = -n̂×E with n̂ = weight·d̂:
		// J_t1 = -w·H_t2, J_t2 = +w·H_t1, M_t1 = +w·E_t2, M_t2 = -w·E_t1.
		green(eh, p, freq, eps, mu, smp.Pos, ElectricComponent(t1), -w*smp.F[3][fi])
		green(eh, p, freq, eps, mu, smp.Pos, ElectricComponent(t2), w*smp.F[2][fi])
		green(eh, p, freq, eps, mu, smp.Pos, MagneticComponent(t1), w*smp.F[1][fi])
		green(eh, p, freq, eps, mu, smp.Pos, MagneticComponent(t2), -w*smp.F[0][fi])
	}
}

// Grid is a bulk far-field result over a rectangular volume of query
// points: for every field component and registered frequency, one real
// and one imaginary dense array indexed by grid position. This is the
// shape consumed by external analysis tooling; WriteNetCDF persists
// it.
type Grid struct {
	Center, Size Vec
	Dims         int
	Nx, Ny, Nz   int
	Freqs        []float64

	// Re and Im are indexed by [component][frequency index]; each
	// array has shape [Nx][Ny][Nz].
	Re, Im [6][]*sparse.DenseArray
}

// Point returns the spatial location of grid index (ix, iy, iz).
func (g *Grid) Point(ix, iy, iz int) Vec {
	return Vec{
		X: gridCoord(g.Center.X, g.Size.X, g.Nx, ix),
		Y: gridCoord(g.Center.Y, g.Size.Y, g.Ny, iy),
		Z: gridCoord(g.Center.Z, g.Size.Z, g.Nz, iz),
	}
}

// At returns the complex field value at grid index (ix, iy, iz) for
// the given component and frequency index.
func (g *Grid) At(ix, iy, iz int, c Component, fi int) complex128 {
	return complex(g.Re[c][fi].Get(ix, iy, iz), g.Im[c][fi].Get(ix, iy, iz))
}

func gridCoord(center, size float64, n, i int) float64 {
	if n <= 1 {
		return center
	}
	return center - size/2 + float64(i)*size/float64(n-1)
}

func gridPoints(size float64, resolution float64) int {
	if size <= 0 {
		return 1
	}
	return int(math.Floor(size*resolution)) + 1
}

// FarFields evaluates the far field over a rectangular volume centered
// at center with the given size, discretized at the given resolution
// (points per unit length, endpoints included), for all registered
// frequencies. Evaluation is independent point by point and runs in
// parallel.
func (s *Spectrum) FarFields(center, size Vec, resolution float64) (*Grid, error) {
	if err := s.checkQuery(center); err != nil {
		return nil, err
	}
	if resolution <= 0 || math.IsInf(resolution, 0) || math.IsNaN(resolution) {
		return nil, errConfig("resolution must be positive and finite, got %g", resolution)
	}
	if s.Dims == 2 && size.Z != 0 {
		return nil, errConfig("query volume must have zero z extent in a 2D simulation")
	}
	g := &Grid{
		Center: center,
		Size:   size,
		Dims:   s.Dims,
		Nx:     gridPoints(size.X, resolution),
		Ny:     gridPoints(size.Y, resolution),
		Nz:     gridPoints(size.Z, resolution),
		Freqs:  append([]float64(nil), s.Freqs...),
	}
	for c := Ex; c <= Hz; c++ {
		g.Re[c] = make([]*sparse.DenseArray, len(s.Freqs))
		g.Im[c] = make([]*sparse.DenseArray, len(s.Freqs))
		for fi := range s.Freqs {
			g.Re[c][fi] = sparse.ZerosDense(g.Nx, g.Ny, g.Nz)
			g.Im[c][fi] = sparse.ZerosDense(g.Nx, g.Ny, g.Nz)
		}
	}

	npts := g.Nx * g.Ny * g.Nz
	nprocs := runtime.GOMAXPROCS(0)
	var wg sync.WaitGroup
	wg.Add(nprocs)
	for pp := 0; pp < nprocs; pp++ {
		go func(pp int) {
			defer wg.Done()
			for ii := pp; ii < npts; ii += nprocs {
				ix := ii / (g.Ny * g.Nz)
				iy := (ii / g.Nz) % g.Ny
				iz := ii % g.Nz
				p := g.Point(ix, iy, iz)
				for fi := range s.Freqs {
					ff := s.farFieldIndexed(p, fi)
					for c := Ex; c <= Hz; c++ {
						v := ff.Component(c)
						g.Re[c][fi].Set(real(v), ix, iy, iz)
						g.Im[c][fi].Set(imag(v), ix, iy, iz)
					}
				}
			}
		}(pp)
	}
	wg.Wait()
	return g, nil
}

// FarFieldsCircle evaluates the far field at n equally spaced angles
// on a circle of the given radius around center, at the given
// frequency. It is the 2D radiation-pattern sampling used for antenna
// and grating analyses; the i-th point is at angle 2πi/n from the +x
// axis.
func (s *Spectrum) FarFieldsCircle(center Vec, radius float64, n int, freq float64) ([]*FarField, error) {
	if s.Dims != 2 {
		return nil, errConfig("circle far-field sampling requires a 2D simulation, got %d dimensions", s.Dims)
	}
	if radius <= 0 || n <= 0 {
		return nil, errConfig("circle sampling requires positive radius and point count, got %g, %d", radius, n)
	}
	if err := s.checkQuery(center); err != nil {
		return nil, err
	}
	fi, err := freqIndex(s.Freqs, freq)
	if err != nil {
		return nil, err
	}
	out := make([]*FarField, n)
	for i := range out {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		p := Vec{X: center.X + radius*cos, Y: center.Y + radius*sin}
		out[i] = s.farFieldIndexed(p, fi)
	}
	return out, nil
}
