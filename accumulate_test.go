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
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/dsp/fourier"
)

// funcSampler adapts a plain function to the FieldSampler interface.
type funcSampler struct {
	t float64
	f func(c Component, p Vec) complex128
}

func (s *funcSampler) Time() float64                        { return s.t }
func (s *funcSampler) Field(c Component, p Vec) complex128 { return s.f(c, p) }

func constSampler(v complex128) *funcSampler {
	return &funcSampler{f: func(Component, Vec) complex128 { return v }}
}

func testRegion() Region {
	return Region{Size: Vec{X: 1, Y: 1}, Dir: Z}
}

// The streaming accumulator must agree with an FFT of the same signal:
// for a signal sampled at t_j = j·dt and frequencies f_k = k/(n·dt),
// the accumulated sum is dt times the conjugate of the k-th FFT
// coefficient.
func TestUpdateDFTMatchesFFT(t *testing.T) {
	const (
		testTolerance = 1.e-12
		n             = 32
		dt            = 0.25
	)

	freqs := make([]float64, 5)
	bins := []int{1, 2, 3, 5, 9}
	for i, k := range bins {
		freqs[i] = float64(k) / (n * dt)
	}
	nf, err := NewNearField(3, 1, freqs, testRegion())
	if err != nil {
		t.Fatal(err)
	}

	signal := make([]complex128, n)
	for j := range signal {
		tj := float64(j) * dt
		signal[j] = complex(math.Sin(2*math.Pi*0.3*tj)*math.Exp(-0.05*tj), 0)
	}

	smp := constSampler(0)
	for j := 0; j < n; j++ {
		smp.f = func(Component, Vec) complex128 { return signal[j] }
		if err := nf.UpdateDFT(smp, float64(j)*dt, dt); err != nil {
			t.Fatal(err)
		}
	}
	if nf.Steps() != n {
		t.Errorf("absorbed %d steps, want %d", nf.Steps(), n)
	}

	coeffs := make([]complex128, n)
	fourier.NewCmplxFFT(n).Coefficients(coeffs, signal)

	s := nf.Finalize()
	for i, k := range bins {
		want := complex(dt, 0) * cmplx.Conj(coeffs[k])
		for slot := range s.Samples[0].F {
			got := s.Samples[0].F[slot][i]
			if cmplx.Abs(got-want) > testTolerance {
				t.Errorf("bin %d slot %d: accumulated %v, FFT gives %v", k, slot, got, want)
			}
		}
	}
}

// The transform is linear in the fields, so accumulating two signals
// separately and adding the spectra must equal accumulating their sum.
func TestAccumulationLinearity(t *testing.T) {
	const testTolerance = 1.e-13
	freqs := LinFreqs(1, 0.4, 3)

	build := func(f func(c Component, p Vec) complex128) *Spectrum {
		nf, err := NewNearField(3, 2, freqs, testRegion())
		if err != nil {
			t.Fatal(err)
		}
		smp := &funcSampler{f: f}
		for j := 0; j < 10; j++ {
			if err := nf.UpdateDFT(smp, float64(j)*0.1, 0.1); err != nil {
				t.Fatal(err)
			}
		}
		return nf.Finalize()
	}

	fa := func(c Component, p Vec) complex128 { return complex(p.X+0.3, 0.1*float64(c)) }
	fb := func(c Component, p Vec) complex128 { return complex(math.Cos(p.Y), -0.2) }
	sa := build(fa)
	sb := build(fb)
	sum := build(func(c Component, p Vec) complex128 { return fa(c, p) + fb(c, p) })

	if err := sa.Add(sb); err != nil {
		t.Fatal(err)
	}
	for i := range sum.Samples {
		for k := range sum.Samples[i].F {
			for fi := range sum.Samples[i].F[k] {
				got := sa.Samples[i].F[k][fi]
				want := sum.Samples[i].F[k][fi]
				if cmplx.Abs(got-want) > testTolerance {
					t.Errorf("sample %d slot %d freq %d: %v != %v", i, k, fi, got, want)
				}
			}
		}
	}
}

// Merge combines partial accumulations from subdomains; it must refuse
// mismatched geometry.
func TestMerge(t *testing.T) {
	freqs := []float64{1}
	a, err := NewNearField(3, 2, freqs, testRegion())
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewNearField(3, 2, freqs, testRegion())
	if err != nil {
		t.Fatal(err)
	}
	if err := a.UpdateDFT(constSampler(1), 0, 1); err != nil {
		t.Fatal(err)
	}
	if err := b.UpdateDFT(constSampler(complex(0, 2)), 0, 1); err != nil {
		t.Fatal(err)
	}
	if err := a.Merge(b); err != nil {
		t.Fatal(err)
	}
	s := a.Finalize()
	want := complex(1, 2)
	if got := s.Samples[0].F[0][0]; got != want {
		t.Errorf("merged accumulator = %v, want %v", got, want)
	}

	c, err := NewNearField(3, 3, freqs, testRegion())
	if err != nil {
		t.Fatal(err)
	}
	var ice *InvalidConfigurationError
	if err := a.Merge(c); !errors.As(err, &ice) {
		t.Errorf("merging mismatched geometry: got %v, want InvalidConfigurationError", err)
	}
}

func TestNewNearFieldValidation(t *testing.T) {
	freqs := []float64{1}
	cases := []struct {
		name       string
		dims       int
		resolution float64
		freqs      []float64
		regions    []Region
	}{
		{"bad dims", 4, 10, freqs, []Region{testRegion()}},
		{"zero resolution", 3, 0, freqs, []Region{testRegion()}},
		{"NaN resolution", 3, math.NaN(), freqs, []Region{testRegion()}},
		{"no freqs", 3, 10, nil, []Region{testRegion()}},
		{"negative freq", 3, 10, []float64{-1}, []Region{testRegion()}},
		{"no regions", 3, 10, freqs, nil},
		{"ambiguous normal", 3, 10, freqs, []Region{{Size: Vec{X: 1}}}},
		{"degenerate region", 3, 10, freqs, []Region{{Size: Vec{X: 1}, Dir: Y}}},
		{"2D with z extent", 2, 10, freqs, []Region{{Size: Vec{X: 1, Z: 1}, Dir: Y}}},
		{"2D z normal", 2, 10, freqs, []Region{{Size: Vec{X: 1, Y: 1}, Dir: Z}}},
	}
	for _, c := range cases {
		_, err := NewNearField(c.dims, c.resolution, c.freqs, c.regions...)
		var ice *InvalidConfigurationError
		if !errors.As(err, &ice) {
			t.Errorf("%s: got %v, want InvalidConfigurationError", c.name, err)
		}
	}
}

func TestUpdateDFTBadTimestep(t *testing.T) {
	nf, err := NewNearField(3, 2, []float64{1}, testRegion())
	if err != nil {
		t.Fatal(err)
	}
	var ice *InvalidConfigurationError
	if err := nf.UpdateDFT(constSampler(1), 0, 0); !errors.As(err, &ice) {
		t.Errorf("zero dt: got %v, want InvalidConfigurationError", err)
	}
	if nf.Steps() != 0 {
		t.Errorf("failed update still counted a step")
	}
}

// A spectrum that absorbed no timesteps yields identically zero far
// fields, not an error.
func TestZeroStepSpectrum(t *testing.T) {
	nf, err := NewNearField(3, 2, []float64{1}, testRegion())
	if err != nil {
		t.Fatal(err)
	}
	s := nf.Finalize()
	ff, err := s.FarField(Vec{Z: 5}, 1)
	if err != nil {
		t.Fatal(err)
	}
	for c := Ex; c <= Hz; c++ {
		if ff.Component(c) != 0 {
			t.Errorf("zero-step far field has %v = %v", c, ff.Component(c))
		}
	}
	for _, flux := range s.Flux() {
		if flux != 0 {
			t.Errorf("zero-step flux = %g", flux)
		}
	}
}

// Scaling a spectrum by -1 and adding it back to a copy cancels
// exactly; this is the source-subtraction workflow.
func TestScaleSubtraction(t *testing.T) {
	nf, err := NewNearField(3, 2, []float64{1, 2}, testRegion())
	if err != nil {
		t.Fatal(err)
	}
	if err := nf.UpdateDFT(constSampler(complex(0.3, 0.7)), 0.2, 0.1); err != nil {
		t.Fatal(err)
	}
	a := nf.Finalize()
	b := nf.Finalize()
	b.Scale(-1)
	if err := a.Add(b); err != nil {
		t.Fatal(err)
	}
	for i := range a.Samples {
		for k := range a.Samples[i].F {
			for fi, v := range a.Samples[i].F[k] {
				if v != 0 {
					t.Errorf("sample %d slot %d freq %d: residual %v after subtraction", i, k, fi, v)
				}
			}
		}
	}
}

func TestLinFreqs(t *testing.T) {
	if got := LinFreqs(1.5, 1, 1); len(got) != 1 || got[0] != 1.5 {
		t.Errorf("LinFreqs(1.5, 1, 1) = %v", got)
	}
	got := LinFreqs(1, 0.5, 3)
	want := []float64{0.75, 1, 1.25}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-14 {
			t.Errorf("LinFreqs(1, 0.5, 3)[%d] = %g, want %g", i, got[i], want[i])
		}
	}
}
