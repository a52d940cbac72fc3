package index

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/fieldtrial/plotshape/pkg/models"
)

// indexData is the serializable form of the index: the polygons plus the
// CRS they are expressed in. The tree is rebuilt on load.
type indexData struct {
	CRS      string
	Polygons []models.PolygonRecord
}

// SaveToFile writes the index contents to a gob file.
func (x *PlotIndex) SaveToFile(filename, crs string) error {
	data := indexData{
		CRS:      crs,
		Polygons: x.All(),
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(data); err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}
	return nil
}

// LoadFromFile replaces the index contents with those stored in a gob
// file and returns the CRS they were saved with.
func (x *PlotIndex) LoadFromFile(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var data indexData
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode index: %w", err)
	}

	x.Clear()
	if err := x.IndexPolygons(data.Polygons); err != nil {
		return "", fmt.Errorf("failed to rebuild index: %w", err)
	}
	return data.CRS, nil
}
