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

package meeputil

import (
	"fmt"
	"os"
	"time"

	"github.com/davidwilby/meep"
	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var logger *logrus.Logger

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	})

	// Options are the configuration options available to Meep.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "SpectrumFile",
			usage: `
              SpectrumFile specifies the location of the saved surface
              spectrum (written by Spectrum.Save) to operate on.`,
			shorthand:  "i",
			defaultVal: "spectrum.gob",
			flagsets: []*pflag.FlagSet{farfieldCmd.Flags(), fluxCmd.Flags(),
				patternCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile specifies the location of the output file. The
              farfield command writes NetCDF; the pattern command writes
              a PNG figure.`,
			shorthand:  "o",
			defaultVal: "farfield.nc",
			flagsets:   []*pflag.FlagSet{farfieldCmd.Flags(), patternCmd.Flags()},
		},
		{
			name: "FarField.Center",
			usage: `
              FarField.Center specifies the center of the far-field query
              volume as a comma-separated coordinate list.`,
			defaultVal: []string{"0", "0", "0"},
			flagsets:   []*pflag.FlagSet{farfieldCmd.Flags(), fluxCmd.Flags()},
		},
		{
			name: "FarField.Size",
			usage: `
              FarField.Size specifies the extent of the far-field query
              volume as a comma-separated coordinate list. Zero-extent
              dimensions collapse to a plane, line, or point.`,
			defaultVal: []string{"0", "0", "0"},
			flagsets:   []*pflag.FlagSet{farfieldCmd.Flags(), fluxCmd.Flags()},
		},
		{
			name: "FarField.Resolution",
			usage: `
              FarField.Resolution specifies the number of query points per
              unit length in the far-field query volume.`,
			defaultVal: 10.0,
			flagsets:   []*pflag.FlagSet{farfieldCmd.Flags(), fluxCmd.Flags()},
		},
		{
			name: "Flux.Far",
			usage: `
              Flux.Far specifies whether the flux command should also
              integrate the far-field Poynting flux over the box defined
              by FarField.Center and FarField.Size, in addition to the
              near-surface flux.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{fluxCmd.Flags()},
		},
		{
			name: "Pattern.Radius",
			usage: `
              Pattern.Radius specifies the circle radius at which the 2D
              radiation pattern is evaluated.`,
			defaultVal: 1000.0,
			flagsets:   []*pflag.FlagSet{patternCmd.Flags()},
		},
		{
			name: "Pattern.NumAngles",
			usage: `
              Pattern.NumAngles specifies the number of equally spaced
              angles on the radiation-pattern circle.`,
			defaultVal: 360,
			flagsets:   []*pflag.FlagSet{patternCmd.Flags()},
		},
		{
			name: "Pattern.Freq",
			usage: `
              Pattern.Freq specifies the frequency at which the radiation
              pattern is evaluated. It must be one of the frequencies
              registered in the spectrum; the default of -1 selects the
              center frequency of the registered list.`,
			defaultVal: -1.0,
			flagsets:   []*pflag.FlagSet{patternCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("MEEP")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(farfieldCmd)
	Root.AddCommand(fluxCmd)
	Root.AddCommand(patternCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("meep: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "meep",
	Short: "Near-to-far-field transformation for time-domain electromagnetics.",
	Long: `Meep transforms frequency-domain fields accumulated on a closed surface
during a time-domain electromagnetic simulation into fields, fluxes, and
radiation patterns anywhere in the homogeneous exterior region.
Use the subcommands specified below to access the functionality.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the format
'MEEP_var' where 'var' is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of Meep.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("Meep v%s\n", meep.Version)
	},
	DisableAutoGenTag: true,
}

// farfieldCmd evaluates the far field over a rectangular volume and
// writes the result to a NetCDF file.
var farfieldCmd = &cobra.Command{
	Use:   "farfield",
	Short: "Evaluate far fields over a volume.",
	Long: `farfield loads a saved surface spectrum, evaluates the far field over
the query volume defined by FarField.Center, FarField.Size, and
FarField.Resolution for every registered frequency, and writes the result
to a NetCDF file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSpectrum(Cfg.GetString("SpectrumFile"))
		if err != nil {
			return err
		}
		center, err := vecFromConfig("FarField.Center")
		if err != nil {
			return err
		}
		size, err := vecFromConfig("FarField.Size")
		if err != nil {
			return err
		}
		resolution := Cfg.GetFloat64("FarField.Resolution")
		logger.Infof("evaluating far fields over %+v ± %+v at resolution %g", center, size, resolution)
		start := time.Now()
		g, err := s.FarFields(center, size, resolution)
		if err != nil {
			return err
		}
		logger.Infof("evaluated %d points × %d frequencies in %v",
			g.Nx*g.Ny*g.Nz, len(g.Freqs), time.Since(start))
		outfile := Cfg.GetString("OutputFile")
		if err := g.WriteNetCDF(outfile); err != nil {
			return err
		}
		logger.Infof("wrote %s", outfile)
		return nil
	},
	DisableAutoGenTag: true,
}

// fluxCmd prints the spectrally resolved power through the near
// surface, and optionally the far-field flux through a query box.
var fluxCmd = &cobra.Command{
	Use:   "flux",
	Short: "Compute radiated power per frequency.",
	Long: `flux loads a saved surface spectrum and prints the net power flowing
through the near surface at each registered frequency. With Flux.Far set,
it additionally integrates the far-field Poynting flux over the box defined
by FarField.Center and FarField.Size, which should agree with the
near-surface flux when both enclose the same sources.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSpectrum(Cfg.GetString("SpectrumFile"))
		if err != nil {
			return err
		}
		near := s.Flux()
		var far []float64
		if Cfg.GetBool("Flux.Far") {
			center, err := vecFromConfig("FarField.Center")
			if err != nil {
				return err
			}
			size, err := vecFromConfig("FarField.Size")
			if err != nil {
				return err
			}
			far, err = s.FarFluxBox(center, size, Cfg.GetFloat64("FarField.Resolution"))
			if err != nil {
				return err
			}
		}
		for fi, freq := range s.Freqs {
			if far == nil {
				cmd.Printf("freq=%-12g flux=%g\n", freq, near[fi])
			} else {
				cmd.Printf("freq=%-12g flux=%-12g farflux=%g\n", freq, near[fi], far[fi])
			}
		}
		return nil
	},
	DisableAutoGenTag: true,
}

// patternCmd writes a 2D radiation-pattern figure.
var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "Plot a 2D radiation pattern.",
	Long: `pattern loads a saved 2D surface spectrum, evaluates the far field on
a circle of radius Pattern.Radius at Pattern.NumAngles equally spaced
angles, and writes the radial power versus angle as a PNG figure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSpectrum(Cfg.GetString("SpectrumFile"))
		if err != nil {
			return err
		}
		freq := Cfg.GetFloat64("Pattern.Freq")
		if freq < 0 {
			freq = s.Freqs[len(s.Freqs)/2]
			logger.Infof("no frequency specified; using %g", freq)
		}
		outfile := Cfg.GetString("OutputFile")
		err = writePattern(s, Cfg.GetFloat64("Pattern.Radius"),
			Cfg.GetInt("Pattern.NumAngles"), freq, outfile)
		if err != nil {
			return err
		}
		logger.Infof("wrote %s", outfile)
		return nil
	},
	DisableAutoGenTag: true,
}

// loadSpectrum reads a saved spectrum from filename.
func loadSpectrum(filename string) (*meep.Spectrum, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("meep: opening spectrum file: %v", err)
	}
	defer f.Close()
	return meep.LoadSpectrum(f)
}

// vecFromConfig parses a comma-separated coordinate list from the
// configuration into a vector.
func vecFromConfig(name string) (meep.Vec, error) {
	ss, err := cast.ToStringSliceE(Cfg.Get(name))
	if err != nil {
		return meep.Vec{}, fmt.Errorf("meep: parsing %s: %v", name, err)
	}
	if len(ss) > 3 {
		return meep.Vec{}, fmt.Errorf("meep: %s has %d coordinates; want at most 3", name, len(ss))
	}
	var v meep.Vec
	for i, s := range ss {
		c, err := cast.ToFloat64E(s)
		if err != nil {
			return meep.Vec{}, fmt.Errorf("meep: parsing %s coordinate %d: %v", name, i, err)
		}
		v.Set(meep.X+meep.Direction(i), c)
	}
	return v, nil
}
