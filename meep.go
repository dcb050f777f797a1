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

// Package meep implements the near-to-far-field transformation for
// finite-difference time-domain (FDTD) electromagnetic simulations.
// It accumulates running discrete Fourier transforms of the tangential
// fields on one or more near-field surfaces while an external
// time-stepping engine advances, and evaluates the resulting
// frequency-domain surface currents at arbitrary exterior points using
// the free-space dyadic Green's function (equivalence principle).
// Finite periodic structures are supported through Bloch-periodic
// tiling of a unit-cell surface.
//
// The transformation is only exact when the registered surfaces
// together form a closed surface, with correct orientation weights,
// enclosing all sources and scatterers in the directions of interest;
// this is a caller responsibility. The exterior medium is assumed
// homogeneous, lossless and isotropic.
package meep

// Version gives the version number of this version of Meep.
const Version = "0.1.0"
