package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldtrial/plotshape/pkg/index"
	"github.com/fieldtrial/plotshape/pkg/postgis"
)

// newExportCmd builds the export command: previously generated polygons
// (from a spatial index file) into a PostGIS table.
func newExportCmd() *cobra.Command {
	var (
		indexPath string
		host      string
		port      int
		user      string
		password  string
		dbname    string
		initDB    bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export generated plots into PostGIS",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			idx := index.NewPlotIndex()
			crs, err := idx.LoadFromFile(indexPath)
			if err != nil {
				return err
			}
			polygons := idx.All()
			logger.Debug("loaded index", "path", indexPath, "plots", len(polygons))

			store, err := postgis.NewStore(host, user, password, dbname, port, sridFromCRS(crs))
			if err != nil {
				return err
			}
			defer store.Close()

			if initDB {
				if err := store.InitSchema(); err != nil {
					return err
				}
			}

			prog := newProgress(logger)
			if err := store.BulkInsert(polygons); err != nil {
				return err
			}
			if initDB {
				if err := store.CreateSpatialIndex(); err != nil {
					return err
				}
			}
			prog.done(fmt.Sprintf("Exported %d plots to %s/%s", len(polygons), host, dbname))
			return nil
		},
	}

	cmd.Flags().StringVarP(&indexPath, "index", "i", "", "spatial index file (gob)")
	cmd.Flags().StringVar(&host, "host", "localhost", "PostGIS host")
	cmd.Flags().IntVar(&port, "port", 5432, "PostGIS port")
	cmd.Flags().StringVar(&user, "user", "postgres", "database user")
	cmd.Flags().StringVar(&password, "password", "", "database password")
	cmd.Flags().StringVar(&dbname, "dbname", "plots", "database name")
	cmd.Flags().BoolVar(&initDB, "init", false, "create the table and spatial index first")
	cmd.MarkFlagRequired("index")

	return cmd
}

// sridFromCRS derives the EPSG code for a NAD83 UTM proj4 string
// (EPSG 269xx north of the equator). Unknown strings map to SRID 0.
func sridFromCRS(crs string) int {
	if !strings.Contains(crs, "+proj=utm") || !strings.Contains(crs, "+datum=NAD83") {
		return 0
	}
	for _, part := range strings.Fields(crs) {
		if z, ok := strings.CutPrefix(part, "+zone="); ok {
			zone, err := strconv.Atoi(z)
			if err != nil || zone < 1 || zone > 60 {
				return 0
			}
			if strings.Contains(crs, "+south") {
				return 0 // NAD83 has no southern UTM zones
			}
			return 26900 + zone
		}
	}
	return 0
}
