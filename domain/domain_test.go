package domain

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/gralgui/go-contour/classify"
	"github.com/gralgui/go-contour/drawing"
	"github.com/gralgui/go-contour/geospatialfiles/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGrid(t *testing.T, dir, name, rows string) string {
	t.Helper()
	fileName := filepath.Join(dir, name)
	contents := "ncols 3\nnrows 3\nxllcorner 0\nyllcorner 0\ncellsize 1\nNODATA_value -9999\n" + rows
	require.NoError(t, os.WriteFile(fileName, []byte(contents), 0644))
	return fileName
}

const isolatedCell = "0 0 0\n0 5 0\n0 0 0\n"

func TestResolveSourceKind(t *testing.T) {
	cases := map[string]classify.SourceKind{
		"/p/Computation/building_heights.txt": classify.Buildings,
		"old_building_heights.txt":            classify.Generic,
		"00001_steady_state.txt":              classify.SteadyState,
		"TPI_STDI.txt":                        classify.TpiCombined,
		"TPI_Base.txt":                        classify.TpiBase,
		"TPI_SlopeMax.txt":                    classify.TpiSlope,
		"TPI_SlopeMin.txt":                    classify.TpiSlope,
		"PrognosticSubDomainAreas.txt":        classify.SubDomainAreas,
		"RoughnessLengthsGral.txt":            classify.RoughnessLength,
		"Mean_NOx_101.txt":                    classify.Generic,
		"tpi_base.txt":                        classify.Generic,
	}
	for path, kind := range cases {
		assert.Equal(t, kind, ResolveSourceKind(path), path)
	}
}

func TestCreateContourMap(t *testing.T) {
	var buf bytes.Buffer
	fileName := writeGrid(t, t.TempDir(), "Mean_NOx_1.txt", isolatedCell)
	o, err := CreateContourMap(fileName, Options{Logger: log.New(&buf, "", 0)})
	require.NoError(t, err)

	assert.Equal(t, "CM: Mean_NOx_1", o.Name)
	assert.Equal(t, fileName, o.ContourFilename)
	assert.Equal(t, classify.Generic, o.Kind())
	c := o.Classification
	require.Len(t, c.Breaks, classify.GenericBreakCount)
	assert.Equal(t, 5.0, c.Breaks[8])
	assert.Equal(t, classify.UnitConcentration, c.Legend.Unit)

	rings := o.Contours.Rings(8)
	require.Len(t, rings, 1)
	assert.Equal(t, [2]float64{1.5, 1.5}, [2]float64(rings[0].Points.Bound().Center()))
	assert.Contains(t, buf.String(), "rings traced")
}

func TestCreateContourMapWithoutNoData(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "Mean_NOx_9.txt")
	require.NoError(t, os.WriteFile(fileName, []byte("ncols 3\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n0 0 4\n"), 0644))
	o, err := CreateContourMap(fileName, Options{})
	require.NoError(t, err)

	breaks := o.Classification.Breaks
	require.Len(t, breaks, classify.GenericBreakCount)
	assert.InDelta(t, 4.0/256, breaks[0], 1e-12)
	assert.Equal(t, 4.0, breaks[8])
	assert.Len(t, o.Contours.Rings(8), 1)
}

func TestCreateContourMapErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := CreateContourMap(filepath.Join(dir, "missing.txt"), Options{})
	assert.ErrorIs(t, err, ErrRasterDecode)
	assert.ErrorIs(t, err, raster.FileDoesNotExistError)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("ncols 3\nnrows 3\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n"), 0644))
	_, err = CreateContourMap(bad, Options{})
	assert.ErrorIs(t, err, ErrRasterDecode)

	flat := writeGrid(t, dir, "Mean_NOx_2.txt", "7 7 7\n7 7 7\n7 7 7\n")
	var l drawing.List
	_, err = AddContourMap(&l, flat, Options{})
	assert.ErrorIs(t, err, ErrBlankDataset)
	assert.Equal(t, 0, l.Len())
}

func TestSubDomainAreasAreNeverBlank(t *testing.T) {
	fileName := writeGrid(t, t.TempDir(), "PrognosticSubDomainAreas.txt", "1 1 1\n1 1 1\n1 1 1\n")
	o, err := CreateContourMap(fileName, Options{})
	require.NoError(t, err)
	assert.Equal(t, classify.SubDomainAreas, o.Kind())
	assert.True(t, o.ShowFill())
	assert.Len(t, o.Contours.Rings(1), 1)
}

func TestKindOverrideAndRecolor(t *testing.T) {
	dir := t.TempDir()
	fileName := writeGrid(t, dir, "heights.txt", isolatedCell)

	kind := classify.Buildings
	o, err := CreateContourMap(fileName, Options{Kind: &kind})
	require.NoError(t, err)
	assert.Equal(t, classify.Buildings, o.Kind())
	assert.Equal(t, []float64{3, 6, 9, 12, 15, 18}, o.Classification.Breaks)

	o, err = CreateContourMap(fileName, Options{Recolor: true, Ramp: classify.RampHSLuv})
	require.NoError(t, err)
	fill := o.Classification.FillColors
	assert.Equal(t, classify.Yellow, fill[0])
	assert.Equal(t, classify.Red, fill[len(fill)-1])
	assert.Equal(t, fill, o.Classification.LineColors)
}

func TestAddContourMapOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeGrid(t, dir, "Mean_PM10_1.txt", isolatedCell)
	second := writeGrid(t, dir, "Deposition_PM10_1.txt", isolatedCell)

	var l drawing.List
	_, err := AddContourMap(&l, first, Options{})
	require.NoError(t, err)
	o, err := AddContourMap(&l, second, Options{})
	require.NoError(t, err)
	assert.Equal(t, classify.UnitDeposition, o.Classification.Legend.Unit)

	items := l.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "CM: Deposition_PM10_1", items[0].Name)
	assert.Equal(t, "CM: Mean_PM10_1", items[1].Name)
}
