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
	"sync"

	"gonum.org/v1/gonum/floats"
)

// SpectrumSample is one frozen surface sample: the accumulated
// frequency-domain tangential fields at one point of the near surface.
// The four accumulator slots hold E_t1, E_t2, H_t1 and H_t2, one value
// per registered frequency, where (Dir, t1, t2) form a right-handed
// cyclic triple.
type SpectrumSample struct {
	Pos    Vec
	Dir    Direction
	Weight float64
	DS     float64
	F      [4][]complex128
}

// Spectrum is a frozen frequency-domain near-field dataset: the
// equivalent surface currents of one accumulation pass. It is
// read-only with respect to far-field evaluation, which makes
// concurrent queries safe; Add and Scale mutate it and must not run
// concurrently with queries.
type Spectrum struct {
	Dims    int
	Freqs   []float64
	Samples []SpectrumSample

	// Steps records how many timesteps the source accumulation
	// absorbed. Zero means the spectrum is identically zero and far
	// fields computed from it are meaningless.
	Steps int

	// Eps and Mu describe the homogeneous exterior medium.
	Eps, Mu float64

	// Period, Phase and NPeriods describe Bloch-periodic tiling; see
	// NearField.SetPeriodicity.
	Period   Vec
	Phase    complex128
	NPeriods int

	warnOnce sync.Once
}

// Add adds the surface currents of other into s. The two spectra must
// have identical geometry and frequency sets. Together with Scale this
// supports source-subtraction workflows: accumulate a reference run,
// scale it by -1, and add it to the scattered-field run.
func (s *Spectrum) Add(other *Spectrum) error {
	if s.Dims != other.Dims {
		return errConfig("cannot add spectra: dimensionality %d != %d", s.Dims, other.Dims)
	}
	if len(s.Samples) != len(other.Samples) {
		return errConfig("cannot add spectra: sample counts %d != %d differ", len(s.Samples), len(other.Samples))
	}
	if len(s.Freqs) != len(other.Freqs) || floats.Distance(s.Freqs, other.Freqs, math.Inf(1)) != 0 {
		return errConfig("cannot add spectra: frequency sets differ")
	}
	for i := range s.Samples {
		a, b := &s.Samples[i], &other.Samples[i]
		if a.Pos != b.Pos || a.Dir != b.Dir || a.Weight != b.Weight || a.DS != b.DS {
			return errConfig("cannot add spectra: sample %d geometry differs", i)
		}
		for k := range a.F {
			for fi := range a.F[k] {
				a.F[k][fi] += b.F[k][fi]
			}
		}
	}
	if other.Steps > s.Steps {
		s.Steps = other.Steps
	}
	return nil
}

// Scale multiplies all surface currents by the complex factor c.
func (s *Spectrum) Scale(c complex128) {
	for i := range s.Samples {
		for k := range s.Samples[i].F {
			f := s.Samples[i].F[k]
			for fi := range f {
				f[fi] *= c
			}
		}
	}
}

// medium returns the exterior medium, defaulting to vacuum for spectra
// constructed without one (e.g. decoded from an old file).
func (s *Spectrum) medium() (eps, mu float64) {
	if s.Eps <= 0 || s.Mu <= 0 {
		return 1, 1
	}
	return s.Eps, s.Mu
}
