package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldtrial/plotshape/pkg/index"
)

// newBoxCmd builds the box command: bounding box in, plot labels out.
func newBoxCmd() *cobra.Command {
	var (
		indexPath              string
		minE, minN, maxE, maxN float64
	)

	cmd := &cobra.Command{
		Use:   "box",
		Short: "List plots intersecting a bounding box",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			idx := index.NewPlotIndex()
			crs, err := idx.LoadFromFile(indexPath)
			if err != nil {
				return err
			}
			logger.Debug("loaded index", "path", indexPath, "plots", idx.Count(), "crs", crs)

			results, err := idx.QueryBox(minE, minN, maxE, maxN)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintln(cmd.OutOrStdout(), r.Label)
			}
			logger.Info("box query complete", "hits", len(results))
			return nil
		},
	}

	cmd.Flags().StringVarP(&indexPath, "index", "i", "", "spatial index file (gob)")
	cmd.Flags().Float64Var(&minE, "min-easting", 0, "box minimum easting (m)")
	cmd.Flags().Float64Var(&minN, "min-northing", 0, "box minimum northing (m)")
	cmd.Flags().Float64Var(&maxE, "max-easting", 0, "box maximum easting (m)")
	cmd.Flags().Float64Var(&maxN, "max-northing", 0, "box maximum northing (m)")
	cmd.MarkFlagRequired("index")

	return cmd
}
