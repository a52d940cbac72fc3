package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldtrial/plotshape/pkg/config"
	"github.com/fieldtrial/plotshape/pkg/export/geojson"
	"github.com/fieldtrial/plotshape/pkg/export/shapefile"
	"github.com/fieldtrial/plotshape/pkg/index"
	"github.com/fieldtrial/plotshape/pkg/pipeline"
	"github.com/fieldtrial/plotshape/pkg/render"
	"github.com/fieldtrial/plotshape/pkg/table"
)

// newGenerateCmd builds the generate command: design table in, shapefiles,
// previews and index out.
func newGenerateCmd() *cobra.Command {
	var (
		configPath   string
		writeGeoJSON bool
		skipPreviews bool
		indexPath    string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate plot polygons from a design table",
		Long:  `Read a trial config (TOML), load its design table, and write the plot shapefile, the buffered shapefile, review figures and optionally a GeoJSON copy and a spatial index file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			design, err := table.LoadFile(cfg.Design)
			if err != nil {
				return err
			}
			logger.Debug("loaded design table", "path", cfg.Design, "rows", design.Len())

			params := cfg.Params()
			prog := newProgress(logger)
			res, err := pipeline.Build(design, params)
			if err != nil {
				return err
			}
			for _, w := range res.Warnings {
				logger.Warn(w.Message, "code", w.Code)
			}

			base := params.BaseName()
			if err := shapefile.Write(shapefile.PlotPath(base), res.Plots, res.CRS); err != nil {
				return err
			}
			if err := shapefile.Write(shapefile.BufferPath(base), res.Buffered, res.CRS); err != nil {
				return err
			}
			logger.Debug("wrote shapefiles", "plots", shapefile.PlotPath(base), "buffered", shapefile.BufferPath(base))

			if writeGeoJSON {
				if err := geojson.WriteFile(base+".geojson", res.Plots, res.CRS); err != nil {
					return err
				}
			}
			if !skipPreviews {
				if err := render.SquarePlots(render.SquarePath(base), res.Squares, res.SquaresBuffered); err != nil {
					return err
				}
				if err := render.RotatedPlots(render.RotatedPath(base), res.Plots, res.Buffered); err != nil {
					return err
				}
			}
			if indexPath != "" {
				idx := index.NewPlotIndex()
				if err := idx.IndexPolygons(res.Plots); err != nil {
					return err
				}
				if err := idx.SaveToFile(indexPath, res.CRS); err != nil {
					return err
				}
				logger.Debug("wrote spatial index", "path", indexPath, "plots", idx.Count())
			}

			prog.done(fmt.Sprintf("Generated %d plots (%s)", len(res.Plots), base))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "trial config file (TOML)")
	cmd.Flags().BoolVar(&writeGeoJSON, "geojson", false, "also write a GeoJSON copy of the plot polygons")
	cmd.Flags().BoolVar(&skipPreviews, "no-previews", false, "skip the square and rotated review figures")
	cmd.Flags().StringVar(&indexPath, "index", "", "write a spatial index (gob) to this path")
	cmd.MarkFlagRequired("config")

	return cmd
}
