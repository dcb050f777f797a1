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
	"testing"
)

// The power of a z-directed point dipole with unit current amplitude
// in vacuum: P = (ωμ)²/(6πZ) with the Re(E*×H) flux convention.
func analyticDipolePower3D(freq float64) float64 {
	omega := 2 * math.Pi * freq
	return omega * omega / (6 * math.Pi)
}

// The power per unit length of a z-directed line current with unit
// amplitude in vacuum: P = ω/4.
func analyticLinePower2D(freq float64) float64 {
	return 2 * math.Pi * freq / 4
}

// The near-surface flux of a closed box around a dipole must equal the
// analytic radiated power and the far-field flux through any larger
// surface.
func TestFluxEquivalence3D(t *testing.T) {
	const (
		testTolerance = 0.05
		freq          = 1.0
	)
	s := dipoleSpectrum(t, 3, 20, freq, Ez, Vec{X: 1, Y: 1, Z: 1})

	want := analyticDipolePower3D(freq)
	near := s.Flux()
	if len(near) != 1 {
		t.Fatalf("got %d flux values, want 1", len(near))
	}
	if math.Abs(near[0]-want)/want > testTolerance {
		t.Errorf("near flux = %g, analytic dipole power = %g", near[0], want)
	}

	far, err := s.FarFluxBox(Vec{}, Vec{X: 4, Y: 4, Z: 4}, 5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(far[0]-near[0])/near[0] > testTolerance {
		t.Errorf("far flux %g does not match near flux %g", far[0], near[0])
	}
}

func TestFluxEquivalence2D(t *testing.T) {
	const (
		testTolerance = 0.05
		freq          = 1.0
	)
	s := dipoleSpectrum(t, 2, 20, freq, Ez, Vec{X: 1, Y: 1})

	want := analyticLinePower2D(freq)
	near := s.Flux()
	if math.Abs(near[0]-want)/want > testTolerance {
		t.Errorf("near flux = %g, analytic line-source power = %g", near[0], want)
	}

	far, err := s.FarFluxCircle(Vec{}, 30, 360)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(far[0]-near[0])/near[0] > testTolerance {
		t.Errorf("circle flux %g does not match near flux %g", far[0], near[0])
	}
}

// A single flux plane captures the directional part of the radiation;
// opposing planes of a symmetric source capture equal power.
func TestFarFluxPlane(t *testing.T) {
	const (
		testTolerance = 1.e-6
		freq          = 1.0
	)
	s := dipoleSpectrum(t, 3, 10, freq, Ez, Vec{X: 1, Y: 1, Z: 1})

	up, err := s.FarFlux(X, Vec{X: 3}, Vec{Y: 4, Z: 4}, 4)
	if err != nil {
		t.Fatal(err)
	}
	down, err := s.FarFlux(X, Vec{X: -3}, Vec{Y: 4, Z: 4}, 4)
	if err != nil {
		t.Fatal(err)
	}
	// +x power equals -x power by symmetry; the -x plane measures it
	// with opposite sign.
	if math.Abs(up[0]+down[0]) > testTolerance*math.Abs(up[0]) {
		t.Errorf("mirror flux planes disagree: %g vs %g", up[0], down[0])
	}
	if up[0] <= 0 {
		t.Errorf("outward flux plane reads %g, want positive", up[0])
	}
}

func TestFarFluxValidation(t *testing.T) {
	s := dipoleSpectrum(t, 3, 5, 1, Ez, Vec{X: 1, Y: 1, Z: 1})
	if _, err := s.FarFlux(Auto, Vec{X: 3}, Vec{Y: 1, Z: 1}, 2); err == nil {
		t.Error("flux plane without explicit normal: want error")
	}
	if _, err := s.FarFlux(X, Vec{X: 3}, Vec{X: 1, Y: 1}, 2); err == nil {
		t.Error("flux plane with extent along its normal: want error")
	}
	s2 := dipoleSpectrum(t, 2, 5, 1, Ez, Vec{X: 1, Y: 1})
	if _, err := s2.FarFlux(Z, Vec{}, Vec{X: 1, Y: 1}, 2); err == nil {
		t.Error("z-normal flux plane in 2D: want error")
	}
	if _, err := s.FarFluxCircle(Vec{}, 10, 100); err == nil {
		t.Error("circle flux on a 3D spectrum: want error")
	}
}

func TestPoyntingAndEnergyDensity(t *testing.T) {
	const testTolerance = 1.e-14
	ff := &FarField{
		E: [3]complex128{1, 0, 0},
		H: [3]complex128{0, 1, 0},
	}
	sv := ff.Poynting()
	if math.Abs(sv.X) > testTolerance || math.Abs(sv.Y) > testTolerance ||
		math.Abs(sv.Z-1) > testTolerance {
		t.Errorf("Poynting of crossed unit fields = %+v, want +z unit", sv)
	}
	if u := ff.EnergyDensity(1, 1); math.Abs(u-1) > testTolerance {
		t.Errorf("EnergyDensity = %g, want 1", u)
	}
	if u := ff.EnergyDensity(2, 4); math.Abs(u-3) > testTolerance {
		t.Errorf("EnergyDensity(2, 4) = %g, want 3", u)
	}
}
