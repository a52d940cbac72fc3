package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
design = "design.csv"
output = "trial"
field = "cs20"
utm_zone = "14"

[ab_line]
a_easting = 746239.817
a_northing = 3382052.264
b_easting = 746334.224
b_northing = 3382152.870
`

const testDesign = `Plot,Range,Row,Label
101,1,1,BC001
102,1,2,BC002
103,2,2,BC003
104,2,1,BC004
`

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(old) })
	return dir
}

func writeInputs(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trial.toml"), []byte(testConfig), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "design.csv"), []byte(testDesign), 0644))
}

func TestGenerateCommand(t *testing.T) {
	dir := inTempDir(t)
	writeInputs(t, dir)

	cmd := newGenerateCmd()
	cmd.SetArgs([]string{"--config", "trial.toml", "--geojson", "--index", "plots.gob"})
	require.NoError(t, cmd.Execute())

	for _, name := range []string{
		"cs20_trial.shp",
		"cs20_trial.prj",
		"cs20_trial_buff.shp",
		"cs20_trial.geojson",
		"cs20_trial_Square_plots.pdf",
		"cs20_trial_Rotated_plots.pdf",
		"plots.gob",
	} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestGenerateNoPreviews(t *testing.T) {
	dir := inTempDir(t)
	writeInputs(t, dir)

	cmd := newGenerateCmd()
	cmd.SetArgs([]string{"--config", "trial.toml", "--no-previews"})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(dir, "cs20_trial_Square_plots.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocateCommand(t *testing.T) {
	dir := inTempDir(t)
	writeInputs(t, dir)

	gen := newGenerateCmd()
	gen.SetArgs([]string{"--config", "trial.toml", "--no-previews", "--index", "plots.gob"})
	require.NoError(t, gen.Execute())

	// The first plot's bottom-left corner sits exactly on A; probe a
	// point 0.3m up each local axis from it.
	var out bytes.Buffer
	loc := newLocateCmd()
	loc.SetOut(&out)
	loc.SetArgs([]string{"--index", "plots.gob", "--easting", "746240.241", "--northing", "3382052.277"})
	require.NoError(t, loc.Execute())
	assert.Contains(t, out.String(), "BC001")
}

func TestLocateCommandNoHit(t *testing.T) {
	dir := inTempDir(t)
	writeInputs(t, dir)

	gen := newGenerateCmd()
	gen.SetArgs([]string{"--config", "trial.toml", "--no-previews", "--index", "plots.gob"})
	require.NoError(t, gen.Execute())

	var out bytes.Buffer
	loc := newLocateCmd()
	loc.SetOut(&out)
	loc.SetArgs([]string{"--index", "plots.gob", "--easting", "0", "--northing", "0"})
	require.NoError(t, loc.Execute())
	assert.Contains(t, out.String(), "no plot")
}

func TestBoxCommand(t *testing.T) {
	dir := inTempDir(t)
	writeInputs(t, dir)

	gen := newGenerateCmd()
	gen.SetArgs([]string{"--config", "trial.toml", "--no-previews", "--index", "plots.gob"})
	require.NoError(t, gen.Execute())

	var out bytes.Buffer
	box := newBoxCmd()
	box.SetOut(&out)
	box.SetArgs([]string{
		"--index", "plots.gob",
		"--min-easting", "746200", "--min-northing", "3382000",
		"--max-easting", "746400", "--max-northing", "3382200",
	})
	require.NoError(t, box.Execute())
	for _, label := range []string{"BC001", "BC002", "BC003", "BC004"} {
		assert.Contains(t, out.String(), label)
	}
}

func TestSridFromCRS(t *testing.T) {
	assert.Equal(t, 26914, sridFromCRS("+proj=utm +zone=14 +datum=NAD83 +units=m +no_defs +ellps=GRS80"))
	assert.Equal(t, 0, sridFromCRS(""))
	assert.Equal(t, 0, sridFromCRS("+proj=utm +zone=14 +south +datum=NAD83 +units=m +no_defs +ellps=GRS80"))
	assert.Equal(t, 0, sridFromCRS("+proj=longlat +datum=WGS84"))
}

func TestGenerateMissingConfig(t *testing.T) {
	inTempDir(t)

	cmd := newGenerateCmd()
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", "absent.toml"})
	assert.Error(t, cmd.Execute())
}
