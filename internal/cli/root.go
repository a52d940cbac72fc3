// Package cli implements the plotshape command-line interface.
//
// The main commands are:
//   - generate: build plot polygons from a design table and write the
//     shapefiles, previews and spatial index
//   - locate: find the plot containing a point
//   - box: list plots intersecting a bounding box
//   - export: push generated polygons into PostGIS
//
// All commands support --verbose (-v) for debug-level logging. Loggers
// are passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version,
// typically injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the plotshape CLI and returns an error if any command
// fails.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "plotshape",
		Short:        "plotshape turns field-trial design tables into plot polygons",
		Long:         `plotshape reads a tabular experimental design (plot, range, row, label) plus two surveyed AB points and produces oriented plot polygon shapefiles, buffered harvest areas, review figures and a spatial index for in-field plot lookup.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("plotshape %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newLocateCmd())
	root.AddCommand(newBoxCmd())
	root.AddCommand(newExportCmd())

	return root.ExecuteContext(context.Background())
}
