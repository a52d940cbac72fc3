// Package config loads run parameters from a TOML file, so a trial's
// settings can live next to its design table and be rerun verbatim.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/fieldtrial/plotshape/pkg/models"
	"github.com/fieldtrial/plotshape/pkg/perrors"
	"github.com/fieldtrial/plotshape/pkg/pipeline"
)

// Config mirrors pipeline.Params in TOML form.
//
//	design = "cs20_design.csv"
//	output = "trial"
//	field = "cs20"
//	utm_zone = "14"
//
//	[ab_line]
//	a_easting = 746239.817
//	a_northing = 3382052.264
//	b_easting = 746334.224
//	b_northing = 3382152.870
//
//	[plots]
//	nrowplot = 2
//	row_spacing = 2.5
type Config struct {
	Design  string `toml:"design"`
	Output  string `toml:"output"`
	Field   string `toml:"field"`
	UTMZone string `toml:"utm_zone"`
	Hemi    string `toml:"hemisphere"`

	ABLine ABLineConfig  `toml:"ab_line"`
	Plots  PlotsConfig   `toml:"plots"`
	Stag   *StaggerBlock `toml:"stagger"`
}

// ABLineConfig is the pair of survey points fixing origin and heading.
type ABLineConfig struct {
	AEasting  float64 `toml:"a_easting"`
	ANorthing float64 `toml:"a_northing"`
	BEasting  float64 `toml:"b_easting"`
	BNorthing float64 `toml:"b_northing"`
}

// PlotsConfig carries plot dimensions and row grouping. The buffers are
// pointers so a written "row_buffer = 0.0" means no buffer, while an absent
// key falls back to the pipeline default.
type PlotsConfig struct {
	NRowPlot     int      `toml:"nrowplot"`
	MultiRowInd  bool     `toml:"multirowind"`
	PlotSubset   int      `toml:"plotsubset"`
	RowSpacing   float64  `toml:"row_spacing"`
	RowBuffer    *float64 `toml:"row_buffer"`
	RangeSpacing float64  `toml:"range_spacing"`
	RangeBuffer  *float64 `toml:"range_buffer"`
	Unit         string   `toml:"unit"`
}

// StaggerBlock is the optional alternating-pass offset.
type StaggerBlock struct {
	StartRow    int     `toml:"start_row"`
	RowsPerPass int     `toml:"rows_per_pass"`
	Offset      float64 `toml:"offset"`
}

// Load reads and parses a TOML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, perrors.Wrap(perrors.CodeInvalidInput, err, "reading %s", path)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, perrors.Wrap(perrors.CodeInvalidInput, err, "parsing %s", path)
	}
	if cfg.Design == "" {
		return nil, perrors.New(perrors.CodeInvalidInput, "%s: design table path is required", path)
	}
	if cfg.Output == "" {
		return nil, perrors.New(perrors.CodeInvalidInput, "%s: output name is required", path)
	}
	return &cfg, nil
}

// Params converts the file contents into pipeline parameters. Pipeline
// defaults apply to anything left unset.
func (c *Config) Params() pipeline.Params {
	p := pipeline.Params{
		A:            models.GeoPoint{Easting: c.ABLine.AEasting, Northing: c.ABLine.ANorthing},
		B:            models.GeoPoint{Easting: c.ABLine.BEasting, Northing: c.ABLine.BNorthing},
		UTMZone:      c.UTMZone,
		Hemisphere:   c.Hemi,
		NRowPlot:     c.Plots.NRowPlot,
		MultiRowInd:  c.Plots.MultiRowInd,
		PlotSubset:   c.Plots.PlotSubset,
		RowSpacing:   c.Plots.RowSpacing,
		RowBuffer:    c.Plots.RowBuffer,
		RangeSpacing: c.Plots.RangeSpacing,
		RangeBuffer:  c.Plots.RangeBuffer,
		Unit:         c.Plots.Unit,
		Field:        c.Field,
		Output:       c.Output,
	}
	if c.Stag != nil {
		p.Stagger = &models.StaggerSpec{
			StartRow:    c.Stag.StartRow,
			RowsPerPass: c.Stag.RowsPerPass,
			Offset:      c.Stag.Offset,
		}
	}
	return p
}
