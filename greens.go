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
)

// Free-space Green's functions for point currents in a homogeneous
// medium with relative permittivity eps and permeability mu, using the
// exp(-iωt) time convention so that outgoing waves carry exp(+ikr).
// The expressions are exact at any distance and reduce to the standard
// radiation-pattern formulas in the asymptotic limit kr >> 1.

// green3D adds to eh the six field components (Ex..Hz) at x radiated
// by a point current of complex amplitude f directed along the
// component c0 at x0. Electric components of c0 denote electric
// currents J, magnetic components denote magnetic currents M.
func green3D(eh *[6]complex128, x Vec, freq, eps, mu float64, x0 Vec, c0 Component, f complex128) {
	if f == 0 || freq == 0 {
		return
	}
	rv := x.Sub(x0)
	r := rv.Norm()
	if r == 0 {
		// The query point coincides with a source sample; the Green's
		// function is singular there and the sample contributes
		// nothing meaningful.
		return
	}
	rhat := rv.Scale(1 / r)
	omega := 2 * math.Pi * freq
	k := omega * math.Sqrt(eps*mu)
	kr := k * r

	g := cmplx.Exp(complex(0, kr)) / complex(4*math.Pi*r, 0)
	ikr := complex(0, 1) / complex(kr, 0)   // i/(kr)
	ikr2 := complex(-1/(kr*kr), 0)          // (i/(kr))²
	term1 := 1 + ikr + ikr2                 // coefficient of p
	term2 := -1 - 3*ikr - 3*ikr2            // coefficient of r̂(r̂·p)
	curl := complex(0, k) * (1 + ikr) * g * f // coefficient of r̂×p

	p := c0.Dir().Unit()
	pdotr := p.Dot(rhat)
	cross := Vec{
		rhat.Y*p.Z - rhat.Z*p.Y,
		rhat.Z*p.X - rhat.X*p.Z,
		rhat.X*p.Y - rhat.Y*p.X,
	}

	for d := X; d <= Z; d++ {
		dyadic := g * f * (term1*complex(p.Get(d), 0) + term2*complex(pdotr*rhat.Get(d), 0))
		rotated := curl * complex(cross.Get(d), 0)
		if c0.IsElectric() {
			// E = iωμ (I + ∇∇/k²) g J;  H = ∇g × J
			eh[ElectricComponent(d)] += complex(0, omega*mu) * dyadic
			eh[MagneticComponent(d)] += rotated
		} else {
			// H = iωε (I + ∇∇/k²) g M;  E = -∇g × M
			eh[MagneticComponent(d)] += complex(0, omega*eps) * dyadic
			eh[ElectricComponent(d)] -= rotated
		}
	}
}

// green2D is the two-dimensional analog of green3D for z-invariant
// problems: the scalar Green's function is (i/4)·H0⁽¹⁾(kρ) with ρ the
// in-plane distance. Currents along z and in-plane currents couple to
// the out-of-plane and in-plane field polarizations respectively.
func green2D(eh *[6]complex128, x Vec, freq, eps, mu float64, x0 Vec, c0 Component, f complex128) {
	if f == 0 || freq == 0 {
		return
	}
	rv := Vec{X: x.X - x0.X, Y: x.Y - x0.Y}
	rho := rv.Norm()
	if rho == 0 {
		return
	}
	rhat := rv.Scale(1 / rho)
	omega := 2 * math.Pi * freq
	k := omega * math.Sqrt(eps*mu)
	krho := k * rho

	h0 := complex(math.J0(krho), math.Y0(krho))
	h1 := complex(math.J1(krho), math.Y1(krho))
	g := complex(0, 0.25) * h0                             // (i/4) H0(kρ)
	gp := complex(0, -0.25*k) * h1                         // dg/dρ
	gpp := complex(0, -0.25*k*k) * (h0 - h1/complex(krho, 0)) // d²g/dρ²

	iwm := complex(0, omega*mu)
	iwe := complex(0, omega*eps)

	if c0.Dir() == Z {
		// Out-of-plane current: scalar wave for the z field component,
		// the curl term supplies the in-plane partner fields.
		rot := gp * f
		if c0 == Ez { // electric current Jz
			eh[Ez] += iwm * g * f
			eh[Hx] += rot * complex(rhat.Y, 0)
			eh[Hy] -= rot * complex(rhat.X, 0)
		} else { // magnetic current Mz
			eh[Hz] += iwe * g * f
			eh[Ex] -= rot * complex(rhat.Y, 0)
			eh[Ey] += rot * complex(rhat.X, 0)
		}
		return
	}

	// In-plane current: dyadic Green's function restricted to the
	// plane, with the curl term along z.
	p := c0.Dir().Unit()
	pdotr := p.Dot(rhat)
	k2 := complex(k*k, 0)
	rho64 := complex(rho, 0)
	a := g + gp/(k2*rho64)
	b := gpp/k2 - gp/(k2*rho64)
	zrot := gp * complex(rhat.X*p.Y-rhat.Y*p.X, 0) * f

	for _, d := range []Direction{X, Y} {
		dyadic := f * (a*complex(p.Get(d), 0) + b*complex(pdotr*rhat.Get(d), 0))
		if c0.IsElectric() {
			eh[ElectricComponent(d)] += iwm * dyadic
		} else {
			eh[MagneticComponent(d)] += iwe * dyadic
		}
	}
	if c0.IsElectric() {
		eh[Hz] += zrot
	} else {
		eh[Ez] -= zrot
	}
}
