package main

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/gruppe-adler/flowplot/internal/config"
	"github.com/gruppe-adler/flowplot/internal/pipeline"
)

// newRoot builds the command tree. Every tree has its own configuration.
func newRoot(logger *logrus.Logger) *cobra.Command {
	v := config.New()

	root := &cobra.Command{
		Use:   "flowplot",
		Short: "Visualize flow deposits from two elevation grids.",
		Long: `flowplot compares an initial and a final ESRI ASCII elevation grid of the
same area and visualizes the thickness of the deposited flow.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'FLOWPLOT_var' where 'var'
is the name of the option with dashes replaced by underscores.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if err := config.ReadFile(v); err != nil {
				return err
			}
			level, err := logrus.ParseLevel(v.GetString("log-level"))
			if err != nil {
				return fmt.Errorf("%w: %v", config.ErrInvalidOption, err)
			}
			logger.SetLevel(level)
			return nil
		},
	}
	must(config.Register(v, root.PersistentFlags(), "config", "log-level", "thresh", "out", "interactive"))

	// load turns the current configuration into a pipeline.
	load := func() (*pipeline.Pipeline, error) {
		settings, err := config.Load(v)
		if err != nil {
			return nil, err
		}
		return pipeline.New(settings, logger), nil
	}

	contourCmd := &cobra.Command{
		Use:   "contour INITIAL FINAL",
		Short: "Plot the flow over the terrain contours.",
		Long: `contour renders the terrain of the initial grid as filled gray contour bands
and overlays the visible flow thickness with a color scale.`,
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := load()
			if err != nil {
				return err
			}
			_, err = p.Contour(cmd.Context(), args[0], args[1])
			return err
		},
	}
	must(config.Register(v, contourCmd.Flags(), "levels", "dpi", "width", "height"))

	surfaceCmd := &cobra.Command{
		Use:   "surface INITIAL FINAL",
		Short: "Render the flow on the shaded terrain surface.",
		Long: `surface renders a hill-shaded relief of the final grid with the terrain
height warped by --warp and colors the visible flow by its thickness.`,
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := load()
			if err != nil {
				return err
			}
			_, err = p.Surface(cmd.Context(), args[0], args[1])
			return err
		},
	}
	must(config.Register(v, surfaceCmd.Flags(), "warp", "pixels", "azimuth", "altitude"))

	thicknessCmd := &cobra.Command{
		Use:   "thickness INITIAL FINAL",
		Short: "Write the flow thickness as an ESRI ASCII grid.",
		Long: `thickness writes the visible flow thickness as an ESRI ASCII grid. Cells
where the flow is not visible are written as no-data.`,
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := load()
			if err != nil {
				return err
			}
			_, err = p.Thickness(cmd.Context(), args[0], args[1])
			return err
		},
	}

	outlineCmd := &cobra.Command{
		Use:   "outline INITIAL FINAL",
		Short: "Write the flow outline and thickness peaks as GeoJSON.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := load()
			if err != nil {
				return err
			}
			_, err = p.Outline(cmd.Context(), args[0], args[1])
			return err
		},
		DisableAutoGenTag: true,
	}

	terrainCmd := &cobra.Command{
		Use:   "terrainrgb GRID",
		Short: "Encode a grid as a Terrain-RGB image.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := load()
			if err != nil {
				return err
			}
			_, err = p.TerrainRGB(cmd.Context(), args[0])
			return err
		},
		DisableAutoGenTag: true,
	}

	statsCmd := &cobra.Command{
		Use:   "stats INITIAL FINAL",
		Short: "Print statistics of both grids and the flow as JSON.",
		Long: `stats prints the height range of both grids and the area, volume and
thickness of the visible flow. With --out the JSON is written to a file.`,
		Args:              cobra.ExactArgs(2),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := load()
			if err != nil {
				return err
			}
			return p.Stats(cmd.Context(), args[0], args[1], cmd.OutOrStdout())
		},
	}

	probeCmd := &cobra.Command{
		Use:               "probe INITIAL FINAL X Y",
		Short:             "Print both heights and the flow thickness at a point.",
		Args:              cobra.ExactArgs(4),
		DisableAutoGenTag: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := cast.ToFloat64E(args[2])
			if err != nil {
				return fmt.Errorf("invalid x coordinate %q: %w", args[2], err)
			}
			y, err := cast.ToFloat64E(args[3])
			if err != nil {
				return fmt.Errorf("invalid y coordinate %q: %w", args[3], err)
			}

			p, err := load()
			if err != nil {
				return err
			}
			probe, err := p.Probe(cmd.Context(), args[0], args[1], x, y)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "    ")
			return enc.Encode(probe)
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "version prints the version number of this version of flowplot.",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flowplot %s\n", version)
		},
		DisableAutoGenTag: true,
	}

	root.AddCommand(contourCmd, surfaceCmd, thicknessCmd, outlineCmd, terrainCmd, statsCmd, probeCmd, versionCmd)
	return root
}

// must panics on errors in the static option table.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
