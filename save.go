package meep

import (
	"encoding/gob"
	"fmt"
	"io"
)

// Save writes the spectrum to w as a gob stream
// (format description at https://golang.org/pkg/encoding/gob/).
// Saved spectra can be reloaded with LoadSpectrum, added together for
// source subtraction, or fed to far-field evaluation without the
// original simulation.
func (s *Spectrum) Save(w io.Writer) error {
	e := gob.NewEncoder(w)
	if err := e.Encode(s); err != nil {
		return fmt.Errorf("meep.Spectrum.Save: %v", err)
	}
	return nil
}

// LoadSpectrum reads a spectrum previously written by Save.
func LoadSpectrum(r io.Reader) (*Spectrum, error) {
	dec := gob.NewDecoder(r)
	s := new(Spectrum)
	if err := dec.Decode(s); err != nil {
		return nil, fmt.Errorf("meep.LoadSpectrum: %v", err)
	}
	return s, nil
}
