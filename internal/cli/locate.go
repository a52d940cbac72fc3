package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldtrial/plotshape/pkg/index"
	"github.com/fieldtrial/plotshape/pkg/models"
)

// newLocateCmd builds the locate command: point in, plot labels out.
func newLocateCmd() *cobra.Command {
	var (
		indexPath string
		easting   float64
		northing  float64
	)

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Find the plot containing a point",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			idx := index.NewPlotIndex()
			crs, err := idx.LoadFromFile(indexPath)
			if err != nil {
				return err
			}
			logger.Debug("loaded index", "path", indexPath, "plots", idx.Count(), "crs", crs)

			hits := idx.Locate(models.GeoPoint{Easting: easting, Northing: northing})
			if len(hits) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no plot at (%g, %g)\n", easting, northing)
				return nil
			}
			for _, hit := range hits {
				fmt.Fprintln(cmd.OutOrStdout(), hit.Label)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&indexPath, "index", "i", "", "spatial index file (gob)")
	cmd.Flags().Float64VarP(&easting, "easting", "e", 0, "point easting (m)")
	cmd.Flags().Float64VarP(&northing, "northing", "n", 0, "point northing (m)")
	cmd.MarkFlagRequired("index")
	cmd.MarkFlagRequired("easting")
	cmd.MarkFlagRequired("northing")

	return cmd
}
