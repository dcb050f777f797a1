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
	"io"
	"math"
	"time"
)

// FieldSampler provides point access to the instantaneous
// electromagnetic field of a running simulation. Implementations are
// expected to interpolate to the requested position; the accumulator
// samples at subpixel surface quadrature points.
type FieldSampler interface {
	// Time returns the current simulation time.
	Time() float64

	// Field returns the value of component c at position p at the
	// current time. Real time-domain solvers return values with zero
	// imaginary part; complex fields arise under Bloch-periodic
	// boundaries.
	Field(c Component, p Vec) complex128
}

// Engine is a time-stepping field solver that a Collector can drive.
type Engine interface {
	FieldSampler

	// Dt returns the timestep length.
	Dt() float64

	// Step advances the fields by one timestep.
	Step() error
}

// StepFunc is a function that operates on the simulation state once
// per timestep (or once at initialization or cleanup).
type StepFunc func(c *Collector) error

// Collector composes an Engine with per-step operations such as DFT
// accumulation, stopping criteria, and progress logging. The zero
// value is not usable; Engine must be set.
type Collector struct {
	Engine Engine

	// InitFuncs run once, in order, before stepping begins.
	InitFuncs []StepFunc

	// RunFuncs run in order after every timestep.
	RunFuncs []StepFunc

	// CleanupFuncs run once, in order, after stepping finishes.
	CleanupFuncs []StepFunc

	// Done is set by a stopping criterion to end the run.
	Done bool
}

// Init runs the initialization functions.
func (c *Collector) Init() error {
	if c.Engine == nil {
		return errConfig("collector has no engine")
	}
	for _, f := range c.InitFuncs {
		if err := f(c); err != nil {
			return err
		}
	}
	return nil
}

// Run steps the engine until a stopping criterion sets Done, running
// the run functions after every step.
func (c *Collector) Run() error {
	if c.Engine == nil {
		return errConfig("collector has no engine")
	}
	for !c.Done {
		if err := c.Engine.Step(); err != nil {
			return err
		}
		for _, f := range c.RunFuncs {
			if err := f(c); err != nil {
				return err
			}
		}
	}
	return nil
}

// Cleanup runs the cleanup functions.
func (c *Collector) Cleanup() error {
	for _, f := range c.CleanupFuncs {
		if err := f(c); err != nil {
			return err
		}
	}
	return nil
}

// StopAfter returns a stopping criterion that ends the run once the
// simulation time reaches t.
func StopAfter(t float64) StepFunc {
	return func(c *Collector) error {
		if c.Engine.Time() >= t {
			c.Done = true
		}
		return nil
	}
}

// StopWhenDecayed returns a stopping criterion that ends the run when
// |component| at point pt has decayed by the factor decayBy from its
// running maximum. The field is examined every checkEvery time units;
// the run continues at least until the first nonzero maximum has been
// seen, so sources that switch on late do not trigger an immediate
// stop.
func StopWhenDecayed(comp Component, pt Vec, checkEvery, decayBy float64) StepFunc {
	var maxAbs, nextCheck float64
	return func(c *Collector) error {
		t := c.Engine.Time()
		if t < nextCheck {
			return nil
		}
		nextCheck = t + checkEvery
		v := c.Engine.Field(comp, pt)
		abs := math.Hypot(real(v), imag(v))
		if abs > maxAbs {
			maxAbs = abs
		}
		if maxAbs > 0 && abs <= maxAbs*decayBy {
			c.Done = true
		}
		return nil
	}
}

// LogProgress writes a status line to w after every timestep.
func LogProgress(w io.Writer) StepFunc {
	startTime := time.Now()
	stepTime := time.Now()
	iteration := 0
	return func(c *Collector) error {
		iteration++
		fmt.Fprintf(w, "Iteration %-6d  walltime=%6.3gh  Δwalltime=%4.2gs  "+
			"dt=%-8.3g  t=%.4g\n",
			iteration, time.Since(startTime).Hours(),
			time.Since(stepTime).Seconds(), c.Engine.Dt(), c.Engine.Time())
		stepTime = time.Now()
		return nil
	}
}
