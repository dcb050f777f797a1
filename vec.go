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
	"fmt"
	"math"
)

// Vec is a point or displacement in simulation coordinates.
// In two-dimensional simulations the Z coordinate is unused and must
// be zero.
type Vec struct {
	X, Y, Z float64
}

// Add returns v + w.
func (v Vec) Add(w Vec) Vec { return Vec{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Sub returns v - w.
func (v Vec) Sub(w Vec) Vec { return Vec{v.X - w.X, v.Y - w.Y, v.Z - w.Z} }

// Scale returns a*v.
func (v Vec) Scale(a float64) Vec { return Vec{a * v.X, a * v.Y, a * v.Z} }

// Dot returns the dot product v·w.
func (v Vec) Dot(w Vec) float64 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Norm returns the Euclidean length of v.
func (v Vec) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Get returns the component of v in direction d.
func (v Vec) Get(d Direction) float64 {
	switch d {
	case X:
		return v.X
	case Y:
		return v.Y
	default:
		return v.Z
	}
}

// Set sets the component of v in direction d.
func (v *Vec) Set(d Direction, val float64) {
	switch d {
	case X:
		v.X = val
	case Y:
		v.Y = val
	default:
		v.Z = val
	}
}

// Direction is an axis-aligned coordinate direction.
type Direction int

// The coordinate directions. Auto requests that a surface patch infer
// its normal direction from its zero-extent dimension; it is the zero
// value so that Region literals without an explicit Dir infer their
// normal.
const (
	Auto Direction = iota
	X
	Y
	Z
)

func (d Direction) String() string {
	switch d {
	case Auto:
		return "auto"
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Unit returns the unit vector along d.
func (d Direction) Unit() Vec {
	var v Vec
	v.Set(d, 1)
	return v
}

// tangentials returns the two directions transverse to d, ordered so
// that (d, t1, t2) form a right-handed cyclic triple.
func (d Direction) tangentials() (t1, t2 Direction) {
	return X + (d-X+1)%3, X + (d-X+2)%3
}

// axis returns the zero-based coordinate index of d, for indexing
// three-element arrays.
func (d Direction) axis() int { return int(d - X) }

// directions returns the coordinate directions that exist in a
// simulation with the given dimensionality.
func directions(dims int) []Direction {
	return []Direction{X, Y, Z}[:dims]
}

// Component identifies an electromagnetic field component.
type Component int

// The six Cartesian field components.
const (
	Ex Component = iota
	Ey
	Ez
	Hx
	Hy
	Hz
)

func (c Component) String() string {
	switch c {
	case Ex:
		return "Ex"
	case Ey:
		return "Ey"
	case Ez:
		return "Ez"
	case Hx:
		return "Hx"
	case Hy:
		return "Hy"
	case Hz:
		return "Hz"
	default:
		return fmt.Sprintf("Component(%d)", int(c))
	}
}

// Dir returns the coordinate direction of the component.
func (c Component) Dir() Direction { return X + Direction(c%3) }

// IsElectric reports whether c is an electric field component.
func (c Component) IsElectric() bool { return c < Hx }

// ElectricComponent returns the electric field component along d.
func ElectricComponent(d Direction) Component { return Ex + Component(d.axis()) }

// MagneticComponent returns the magnetic field component along d.
func MagneticComponent(d Direction) Component { return Hx + Component(d.axis()) }
