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

import "fmt"

// InvalidConfigurationError reports degenerate or inconsistent input
// detected at registration or query time: zero-size surfaces, empty or
// non-finite frequency sets, or mismatched dimensionality between a
// surface and a query. It is fatal for the operation that raised it and
// is never retried.
type InvalidConfigurationError struct {
	Reason string
}

func (e *InvalidConfigurationError) Error() string {
	return "meep: invalid configuration: " + e.Reason
}

func errConfig(format string, args ...interface{}) error {
	return &InvalidConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

// UnsupportedFrequencyError reports a far-field query at a frequency
// that is not part of the frequency set the near-field surface was
// registered with. No interpolation is performed; other queries against
// the same spectrum are unaffected.
type UnsupportedFrequencyError struct {
	Freq      float64
	Available []float64
}

func (e *UnsupportedFrequencyError) Error() string {
	return fmt.Sprintf("meep: frequency %g is not among the %d registered frequencies",
		e.Freq, len(e.Available))
}
