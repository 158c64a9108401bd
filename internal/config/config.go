// Package config holds the configuration options of flowplot. Options can be
// set by command line flags, FLOWPLOT_* environment variables or a YAML,
// TOML or JSON configuration file, in decreasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gonum.org/v1/plot/vg"

	"github.com/gruppe-adler/flowplot/internal/flow"
	"github.com/gruppe-adler/flowplot/internal/render"
)

// DefaultImageOutfile is written when no output path is configured.
const DefaultImageOutfile = "./image.png"

// ErrInvalidOption indicates an option value outside of its allowed range.
var ErrInvalidOption = errors.New("config: invalid option")

// Option is a single configuration option.
type Option struct {
	Name, Usage, Shorthand string
	Default                interface{}
}

// Options are the configuration options available to flowplot.
var Options = []Option{
	{
		Name: "config",
		Usage: `
              config specifies the configuration file location.`,
		Default: "",
	},
	{
		Name: "log-level",
		Usage: `
              log-level sets the logging verbosity (debug, info, warn, error).`,
		Default: "info",
	},
	{
		Name: "warp",
		Usage: `
              warp is the factor by which to warp the terrain height.
              It must not be negative.`,
		Default: 1.0,
	},
	{
		Name: "thresh",
		Usage: `
              thresh is the minimum flow thickness. Any flow thickness
              smaller than the threshold is not plotted.`,
		Default: flow.DefaultThreshold,
	},
	{
		Name:      "out",
		Shorthand: "o",
		Usage: `
              out is the path to the output file. If not set, an image
              called image.png is created in the working directory.`,
		Default: "",
	},
	{
		Name:      "interactive",
		Shorthand: "i",
		Usage: `
              interactive opens the result in the system image viewer.`,
		Default: false,
	},
	{
		Name: "levels",
		Usage: `
              levels is the number of filled terrain bands of the contour plot.`,
		Default: 50,
	},
	{
		Name: "dpi",
		Usage: `
              dpi is the resolution of the contour plot.`,
		Default: 300,
	},
	{
		Name: "width",
		Usage: `
              width is the width of the contour plot in centimeters.`,
		Default: 16.0,
	},
	{
		Name: "height",
		Usage: `
              height is the height of the contour plot in centimeters.`,
		Default: 12.0,
	},
	{
		Name: "pixels",
		Usage: `
              pixels is the width of the shaded relief image. 0 renders one
              pixel per grid cell.`,
		Default: uint(1024),
	},
	{
		Name: "azimuth",
		Usage: `
              azimuth is the direction of the light in degrees clockwise
              from north.`,
		Default: 315.0,
	},
	{
		Name: "altitude",
		Usage: `
              altitude is the elevation of the light above the horizon in degrees.`,
		Default: 45.0,
	},
}

// New returns a viper instance that reads FLOWPLOT_* environment variables
// and knows the default of every option.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("flowplot")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, option := range Options {
		v.SetDefault(option.Name, option.Default)
	}
	return v
}

// Register adds the named options as flags to the flag set and binds them to v.
func Register(v *viper.Viper, flags *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		option, ok := lookup(name)
		if !ok {
			return fmt.Errorf("config: unknown option %q", name)
		}

		usage := strings.TrimSpace(strings.Join(strings.Fields(option.Usage), " "))
		switch d := option.Default.(type) {
		case string:
			flags.StringP(option.Name, option.Shorthand, d, usage)
		case bool:
			flags.BoolP(option.Name, option.Shorthand, d, usage)
		case int:
			flags.IntP(option.Name, option.Shorthand, d, usage)
		case uint:
			flags.UintP(option.Name, option.Shorthand, d, usage)
		case float64:
			flags.Float64P(option.Name, option.Shorthand, d, usage)
		default:
			return fmt.Errorf("config: option %q has unsupported type %T", name, d)
		}

		if err := v.BindPFlag(option.Name, flags.Lookup(option.Name)); err != nil {
			return err
		}
	}
	return nil
}

func lookup(name string) (Option, bool) {
	for _, option := range Options {
		if option.Name == name {
			return option, true
		}
	}
	return Option{}, false
}

// ReadFile loads the configuration file named by the config option, if any.
func ReadFile(v *viper.Viper) error {
	path := v.GetString("config")
	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	return nil
}

// Settings are the options passed through to the renderers and exporters.
type Settings struct {
	Warp         float64
	Threshold    float64
	ImageOutfile string
	Interactive  bool
	Contour      render.ContourOptions
	Shaded       render.ShadedOptions
}

// Load reads and validates the settings from v.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		Warp:         v.GetFloat64("warp"),
		Threshold:    v.GetFloat64("thresh"),
		ImageOutfile: v.GetString("out"),
		Interactive:  v.GetBool("interactive"),
		Contour: render.ContourOptions{
			Levels: v.GetInt("levels"),
			Width:  vg.Length(v.GetFloat64("width")) * vg.Centimeter,
			Height: vg.Length(v.GetFloat64("height")) * vg.Centimeter,
			DPI:    v.GetInt("dpi"),
		},
		Shaded: render.ShadedOptions{
			Warp:     v.GetFloat64("warp"),
			Azimuth:  v.GetFloat64("azimuth"),
			Altitude: v.GetFloat64("altitude"),
			Width:    v.GetUint("pixels"),
		},
	}

	if s.Warp < 0 {
		return s, fmt.Errorf("%w: warp must not be negative, got %g", ErrInvalidOption, s.Warp)
	}
	if s.Contour.Levels < 2 {
		return s, fmt.Errorf("%w: levels must be at least 2, got %d", ErrInvalidOption, s.Contour.Levels)
	}
	if s.Contour.DPI <= 0 || s.Contour.Width <= 0 || s.Contour.Height <= 0 {
		return s, fmt.Errorf("%w: dpi, width and height must be positive", ErrInvalidOption)
	}
	if s.Shaded.Altitude < 0 || s.Shaded.Altitude > 90 {
		return s, fmt.Errorf("%w: altitude must be within [0, 90], got %g", ErrInvalidOption, s.Shaded.Altitude)
	}

	return s, nil
}

// Outfile returns the configured output path or fallback if none is set.
func (s Settings) Outfile(fallback string) string {
	if s.ImageOutfile != "" {
		return s.ImageOutfile
	}
	return fallback
}
