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
	"math/cmplx"
	"testing"
)

func vecAbs(v [3]complex128) float64 {
	var sum float64
	for _, c := range v {
		sum += real(c)*real(c) + imag(c)*imag(c)
	}
	return math.Sqrt(sum)
}

func cdot(v [3]complex128, w Vec) complex128 {
	return v[0]*complex(w.X, 0) + v[1]*complex(w.Y, 0) + v[2]*complex(w.Z, 0)
}

// In the radiation zone the fields of any point current are transverse
// to the propagation direction, mutually orthogonal, and related by
// the wave impedance of the medium.
func TestGreen3DRadiationZone(t *testing.T) {
	const (
		testTolerance = 1.e-3
		freq          = 1.3
		eps           = 2.0
		mu            = 1.0
		r             = 1000.
	)
	impedance := math.Sqrt(mu / eps)

	points := []Vec{
		{X: r}, {Y: r}, {Z: r},
		{X: r / 2, Y: r / 2, Z: r / math.Sqrt2},
		{X: -r / 3, Y: 2 * r / 3, Z: -2 * r / 3},
	}
	for _, src := range []Component{Ex, Ez, Hy} {
		for _, p := range points {
			var eh [6]complex128
			green3D(&eh, p, freq, eps, mu, Vec{}, src, 1)
			e := [3]complex128{eh[Ex], eh[Ey], eh[Ez]}
			h := [3]complex128{eh[Hx], eh[Hy], eh[Hz]}
			rhat := p.Scale(1 / p.Norm())

			eNorm, hNorm := vecAbs(e), vecAbs(h)
			if eNorm == 0 || hNorm == 0 {
				// On-axis nulls of the dipole pattern.
				continue
			}
			if radial := cmplx.Abs(cdot(e, rhat)) / eNorm; radial > testTolerance {
				t.Errorf("src %v at %+v: E has radial fraction %g", src, p, radial)
			}
			if radial := cmplx.Abs(cdot(h, rhat)) / hNorm; radial > testTolerance {
				t.Errorf("src %v at %+v: H has radial fraction %g", src, p, radial)
			}
			if ratio := eNorm / hNorm; math.Abs(ratio-impedance)/impedance > testTolerance {
				t.Errorf("src %v at %+v: |E|/|H| = %g, want %g", src, p, ratio, impedance)
			}
		}
	}
}

// Far fields fall off as 1/r in 3D, so r·E approaches a constant.
func TestGreen3DDistanceScaling(t *testing.T) {
	const testTolerance = 1.e-3
	p := Vec{X: 0.3, Y: 0.8, Z: 0.52}
	p = p.Scale(1 / p.Norm())

	var near, far [6]complex128
	green3D(&near, p.Scale(2000), 1, 1, 1, Vec{}, Ez, 1)
	green3D(&far, p.Scale(4000), 1, 1, 1, Vec{}, Ez, 1)

	a := 2000 * vecAbs([3]complex128{near[Ex], near[Ey], near[Ez]})
	b := 4000 * vecAbs([3]complex128{far[Ex], far[Ey], far[Ez]})
	if math.Abs(a-b)/a > testTolerance {
		t.Errorf("r·|E| not constant: %g at r=2000, %g at r=4000", a, b)
	}
}

// In 2D the fields of a line current fall off as 1/√ρ, and the
// out-of-plane polarization keeps the impedance relation.
func TestGreen2DRadiationZone(t *testing.T) {
	const (
		testTolerance = 1.e-2
		freq          = 1.0
		rho           = 500.
	)
	p := Vec{X: rho * math.Cos(0.71), Y: rho * math.Sin(0.71)}

	var eh [6]complex128
	green2D(&eh, p, freq, 1, 1, Vec{}, Ez, 1)

	ez := cmplx.Abs(eh[Ez])
	ht := vecAbs([3]complex128{eh[Hx], eh[Hy], 0})
	if ez == 0 || ht == 0 {
		t.Fatal("zero fields in 2D radiation zone")
	}
	if ratio := ez / ht; math.Abs(ratio-1) > testTolerance {
		t.Errorf("|Ez|/|H| = %g, want 1", ratio)
	}

	var eh2 [6]complex128
	green2D(&eh2, p.Scale(4), freq, 1, 1, Vec{}, Ez, 1)
	a := math.Sqrt(rho) * ez
	b := math.Sqrt(4*rho) * cmplx.Abs(eh2[Ez])
	if math.Abs(a-b)/a > testTolerance {
		t.Errorf("√ρ·|Ez| not constant: %g at ρ=%g, %g at ρ=%g", a, rho, b, 4*rho)
	}
}

// Electromagnetic duality: exchanging J→M and ε↔μ maps (E,H) to
// (H,-E). The Green's functions implement both current types from the
// same dyadic, so this must hold to machine precision.
func TestGreenDuality(t *testing.T) {
	const testTolerance = 1.e-13
	points := []Vec{
		{X: 1.7, Y: -0.4, Z: 2.2},
		{X: 0.1, Y: 3.0, Z: -0.6},
	}
	const eps, mu = 3.0, 1.5
	f := complex(0.8, -0.3)

	for d := X; d <= Z; d++ {
		for _, p := range points {
			var a, b [6]complex128
			green3D(&a, p, 1.1, eps, mu, Vec{}, ElectricComponent(d), f)
			green3D(&b, p, 1.1, mu, eps, Vec{}, MagneticComponent(d), f)
			for dd := X; dd <= Z; dd++ {
				if diff := cmplx.Abs(b[MagneticComponent(dd)] - a[ElectricComponent(dd)]); diff > testTolerance {
					t.Errorf("dir %v: dual H%v differs from E%v by %g", d, dd, dd, diff)
				}
				if diff := cmplx.Abs(b[ElectricComponent(dd)] + a[MagneticComponent(dd)]); diff > testTolerance {
					t.Errorf("dir %v: dual E%v differs from -H%v by %g", d, dd, dd, diff)
				}
			}
		}
	}
}

// A sample coincident with the query point is singular and must be
// skipped rather than poisoning the sum with NaNs.
func TestGreenSingularPoint(t *testing.T) {
	var eh [6]complex128
	green3D(&eh, Vec{X: 1}, 1, 1, 1, Vec{X: 1}, Ez, 1)
	green2D(&eh, Vec{X: 1}, 1, 1, 1, Vec{X: 1}, Ez, 1)
	for c := Ex; c <= Hz; c++ {
		if eh[c] != 0 {
			t.Errorf("singular evaluation produced %v = %v", c, eh[c])
		}
	}
}
