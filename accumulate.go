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
)

// UpdateDFT absorbs the instantaneous tangential fields at time t into
// the running Fourier sums:
//
//	F[s,c,f] += field(s,c,t) · exp(i·2πf·t) · dt
//
// It must be called exactly once per timestep, in time order, for the
// duration of the run; the accumulation is a streaming update with
// constant memory per sample and frequency, independent of run length.
// The caller is responsible for running long enough that the fields on
// the surface have decayed to negligible amplitude (see
// StopWhenDecayed).
func (nf *NearField) UpdateDFT(sampler FieldSampler, t, dt float64) error {
	if dt <= 0 || math.IsInf(dt, 0) || math.IsNaN(dt) {
		return errConfig("timestep must be positive and finite, got %g", dt)
	}
	// Phase factors are shared by all samples at a given frequency.
	phases := make([]complex128, len(nf.freqs))
	for fi, f := range nf.freqs {
		phases[fi] = cis(2*math.Pi*f*t) * complex(dt, 0)
	}
	for _, s := range nf.samples {
		comps := tangentialComponents(s.Dir)
		for k, c := range comps {
			v := sampler.Field(c, s.Pos)
			if v == 0 {
				continue
			}
			acc := s.F[k]
			for fi := range acc {
				acc[fi] += v * phases[fi]
			}
		}
	}
	nf.steps++
	return nil
}

// Accumulate returns a step function that absorbs the engine's fields
// into the near-field Fourier sums once per timestep.
func (nf *NearField) Accumulate() StepFunc {
	return func(cl *Collector) error {
		return nf.UpdateDFT(cl.Engine, cl.Engine.Time(), cl.Engine.Dt())
	}
}

// Finalize freezes the accumulation state into a read-only Spectrum.
// The NearField may keep accumulating afterwards; the returned
// Spectrum is an independent copy.
//
// Finalizing a state that never absorbed a timestep is not an error,
// but the resulting all-zero spectrum produces a meaningless far
// field; a warning is logged.
func (nf *NearField) Finalize() *Spectrum {
	if nf.steps == 0 {
		log.Printf("meep: finalizing a near-field surface that absorbed no timesteps; " +
			"the resulting spectrum is identically zero")
	}
	s := &Spectrum{
		Dims:     nf.dims,
		Freqs:    append([]float64(nil), nf.freqs...),
		Steps:    nf.steps,
		Eps:      nf.eps,
		Mu:       nf.mu,
		Period:   nf.period,
		Phase:    nf.phase,
		NPeriods: nf.nperiods,
		Samples:  make([]SpectrumSample, len(nf.samples)),
	}
	for i, smp := range nf.samples {
		out := &s.Samples[i]
		out.Pos = smp.Pos
		out.Dir = smp.Dir
		out.Weight = smp.Weight
		out.DS = smp.DS
		for k := range smp.F {
			out.F[k] = append([]complex128(nil), smp.F[k]...)
		}
	}
	return s
}
