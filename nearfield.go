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
	"math"

	"gonum.org/v1/gonum/floats"
)

// NearField holds the accumulation state for one near-field surface:
// the discretized surface samples, the registered frequencies, and the
// running Fourier sums that are updated once per timestep. Create one
// with NewNearField, feed it with UpdateDFT (or the Accumulate step
// function), and freeze it with Finalize once time stepping stops.
//
// Distinct NearField objects are fully independent and may be updated
// concurrently with each other, but calls against a single NearField
// must be sequential: the transform phase depends on the time ordering
// of the updates.
type NearField struct {
	dims       int
	resolution float64
	freqs      []float64
	samples    []*sample
	steps      int

	// exterior medium
	eps, mu float64

	// Bloch-periodic tiling
	period   Vec
	phase    complex128
	nperiods int
}

// LinFreqs returns nfreq frequencies equally spaced over
// [fcen-df/2, fcen+df/2]. If nfreq is 1 the result is {fcen}.
func LinFreqs(fcen, df float64, nfreq int) []float64 {
	if nfreq == 1 {
		return []float64{fcen}
	}
	return floats.Span(make([]float64, nfreq), fcen-df/2, fcen+df/2)
}

// NewNearField registers a near-field surface made up of the given
// patches, discretized at the given spatial resolution (samples per
// unit length), with Fourier sums kept at the given frequencies.
// dims selects a 2D or 3D simulation and fixes the dimensionality of
// the Green's function used for far-field evaluation.
//
// The patches should jointly form (or deliberately approximate) a
// closed surface enclosing all sources and scatterers in the
// directions of interest, with weights encoding the outward normals;
// see BoxRegions.
func NewNearField(dims int, resolution float64, freqs []float64, regions ...Region) (*NearField, error) {
	if dims != 2 && dims != 3 {
		return nil, errConfig("dims must be 2 or 3, got %d", dims)
	}
	if resolution <= 0 || math.IsInf(resolution, 0) || math.IsNaN(resolution) {
		return nil, errConfig("resolution must be positive and finite, got %g", resolution)
	}
	if len(freqs) == 0 {
		return nil, errConfig("empty frequency set")
	}
	for _, f := range freqs {
		if f < 0 || math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, errConfig("frequencies must be non-negative and finite, got %g", f)
		}
	}
	if len(regions) == 0 {
		return nil, errConfig("no near-field regions given")
	}
	nf := &NearField{
		dims:       dims,
		resolution: resolution,
		freqs:      append([]float64(nil), freqs...),
		eps:        1,
		mu:         1,
		phase:      1,
	}
	for i := range regions {
		samples, err := regions[i].discretize(dims, resolution, len(freqs))
		if err != nil {
			return nil, err
		}
		nf.samples = append(nf.samples, samples...)
	}
	return nf, nil
}

// Freqs returns the registered frequencies.
func (nf *NearField) Freqs() []float64 { return append([]float64(nil), nf.freqs...) }

// NumSamples returns the number of discretized surface samples.
func (nf *NearField) NumSamples() int { return len(nf.samples) }

// Steps returns the number of timesteps absorbed so far.
func (nf *NearField) Steps() int { return nf.steps }

// SetMedium sets the relative permittivity and permeability of the
// homogeneous exterior medium that the far fields propagate through.
// The default for both is 1.
func (nf *NearField) SetMedium(eps, mu float64) error {
	if eps <= 0 || mu <= 0 {
		return errConfig("exterior medium must have positive eps and mu, got %g, %g", eps, mu)
	}
	nf.eps, nf.mu = eps, mu
	return nil
}

// SetPeriodicity declares that the surface is one unit cell of a
// finite periodic structure with lattice vector a and per-period Bloch
// phase factor phase (use BlochPhase to derive it from a wavevector).
// Far-field evaluation will sum 2*nperiods+1 translated copies of the
// surface, the n-th copy shifted by n*a and multiplied by phase**n.
// nperiods == 0 means the surface is used exactly once.
func (nf *NearField) SetPeriodicity(a Vec, phase complex128, nperiods int) error {
	if nperiods < 0 {
		return errConfig("nperiods must be >= 0, got %d", nperiods)
	}
	if nperiods > 0 && a.Norm() == 0 {
		return errConfig("periodic tiling requires a nonzero lattice vector")
	}
	nf.period = a
	nf.phase = phase
	nf.nperiods = nperiods
	return nil
}

// BlochPhase returns the per-period phase factor exp(i k·a) for Bloch
// wavevector k and lattice vector a.
func BlochPhase(k, a Vec) complex128 {
	return cis(2 * math.Pi * k.Dot(a))
}

// Merge adds the accumulators of other into nf. The two states must
// have identical geometry and frequencies. This is the associative
// reduction used to combine partial accumulations from
// domain-decomposed subdomains, each of which absorbed only the
// samples it owns.
func (nf *NearField) Merge(other *NearField) error {
	if err := nf.compatible(other); err != nil {
		return err
	}
	for i, s := range nf.samples {
		o := other.samples[i]
		for k := range s.F {
			for fi := range s.F[k] {
				s.F[k][fi] += o.F[k][fi]
			}
		}
	}
	if other.steps > nf.steps {
		nf.steps = other.steps
	}
	return nil
}

func (nf *NearField) compatible(other *NearField) error {
	if nf.dims != other.dims {
		return errConfig("cannot merge: dimensionality %d != %d", nf.dims, other.dims)
	}
	if len(nf.samples) != len(other.samples) {
		return errConfig("cannot merge: sample counts %d != %d differ", len(nf.samples), len(other.samples))
	}
	if len(nf.freqs) != len(other.freqs) || floats.Distance(nf.freqs, other.freqs, math.Inf(1)) != 0 {
		return errConfig("cannot merge: frequency sets differ")
	}
	for i, s := range nf.samples {
		o := other.samples[i]
		if s.Pos != o.Pos || s.Dir != o.Dir || s.Weight != o.Weight || s.DS != o.DS {
			return errConfig("cannot merge: sample %d geometry differs", i)
		}
	}
	return nil
}

// freqIndex returns the index of freq in the registered frequency set,
// matching within a small relative tolerance. No interpolation is
// performed.
func freqIndex(freqs []float64, freq float64) (int, error) {
	const tol = 1e-9
	for i, f := range freqs {
		if math.Abs(f-freq) <= tol*math.Max(1, math.Abs(f)) {
			return i, nil
		}
	}
	return 0, &UnsupportedFrequencyError{Freq: freq, Available: freqs}
}

// cis returns exp(i*x).
func cis(x float64) complex128 {
	s, c := math.Sincos(x)
	return complex(c, s)
}
