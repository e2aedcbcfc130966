package drawing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gralgui/go-contour/classify"
	"github.com/gralgui/go-contour/contour"
	"github.com/gralgui/go-contour/geospatialfiles/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contourMap(t *testing.T, fileName string, kind classify.SourceKind, values ...float64) Object {
	t.Helper()
	r, err := raster.CreateRasterFromGrid(raster.NewHeader(3, 3, 500, 600, 10), values)
	require.NoError(t, err)
	c := classify.Classify(r.GetMinimumValue(), r.GetMaximumValue(),
		classify.Header{Rows: 3, Columns: 3, FileName: fileName}, kind, classify.Canvas{Width: 800, Height: 600})
	set, err := contour.Build(r, c.Breaks, contour.Options{Categorical: kind == classify.SubDomainAreas})
	require.NoError(t, err)
	return Assemble(fileName, c, set)
}

func TestAssemble(t *testing.T) {
	o := contourMap(t, "/data/Maps/Mean_NOx_101.txt", classify.Generic, 0, 0, 0, 0, 5, 0, 0, 0, 0)
	assert.Equal(t, "CM: Mean_NOx_101", o.Name)
	assert.Equal(t, "/data/Maps/Mean_NOx_101.txt", o.ContourFilename)
	assert.Equal(t, classify.Generic, o.Kind())
	assert.False(t, o.ShowFill())
	assert.True(t, o.ShowLines())
	require.NotNil(t, o.Contours)
	assert.Len(t, o.Contours.Rings(8), 1)
}

func TestList(t *testing.T) {
	var l List
	l.InsertFront(Object{Name: "CM: a"})
	l.InsertFront(Object{Name: "CM: b"})
	l.InsertFront(Object{Name: "CM: c"})
	require.Equal(t, 3, l.Len())

	names := func() []string {
		var out []string
		for _, o := range l.Items() {
			out = append(out, o.Name)
		}
		return out
	}
	assert.Equal(t, []string{"CM: c", "CM: b", "CM: a"}, names())

	o, ok := l.Find("CM: b")
	assert.True(t, ok)
	assert.Equal(t, "CM: b", o.Name)
	_, ok = l.Find("CM: z")
	assert.False(t, ok)

	assert.True(t, l.Remove("CM: b"))
	assert.False(t, l.Remove("CM: b"))
	assert.Equal(t, []string{"CM: c", "CM: a"}, names())

	items := l.Items()
	items[0].Name = "changed"
	assert.Equal(t, []string{"CM: c", "CM: a"}, names())
}

func TestProjectRoundTrip(t *testing.T) {
	var l List
	l.InsertFront(contourMap(t, "Mean_NOx_101.txt", classify.Generic, 1, 2, 3, 4, 5, 6, 7, 8, 9))
	l.InsertFront(contourMap(t, "RoughnessLengthsGral.txt", classify.RoughnessLength, 0.1, 0.3, 0.5, 0.7, 0.9, 1.1, 1.3, 1.5, 1.7))
	l.InsertFront(contourMap(t, "PrognosticSubDomainAreas.txt", classify.SubDomainAreas, 1, 1, 1, 1, 1, 1, 1, 1, 1))
	l.InsertFront(Object{
		Name:            "CM: empty",
		ContourFilename: "empty.txt",
		Classification:  classify.Classify(0, 1, classify.Header{}, classify.Buildings, classify.Canvas{}),
	})

	dir := filepath.Join(t.TempDir(), "Settings")
	require.NoError(t, SaveProject(dir, &l))
	assert.FileExists(t, filepath.Join(dir, SettingsFile))
	assert.FileExists(t, filepath.Join(dir, "contour_001.geojson"))
	assert.NoFileExists(t, filepath.Join(dir, "contour_000.geojson"))

	back, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, l.Items(), back.Items())
}

func TestSaveProjectRemovesStaleSidecars(t *testing.T) {
	var l List
	l.InsertFront(contourMap(t, "Mean_NOx_101.txt", classify.Generic, 1, 2, 3, 4, 5, 6, 7, 8, 9))
	l.InsertFront(contourMap(t, "Mean_NOx_102.txt", classify.Generic, 1, 2, 3, 4, 5, 6, 7, 8, 9))
	l.InsertFront(contourMap(t, "Mean_NOx_103.txt", classify.Generic, 1, 2, 3, 4, 5, 6, 7, 8, 9))

	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("kept"), 0o644))
	require.NoError(t, SaveProject(dir, &l))
	assert.FileExists(t, filepath.Join(dir, "contour_002.geojson"))

	require.True(t, l.Remove("CM: Mean_NOx_102"))
	require.NoError(t, SaveProject(dir, &l))
	assert.FileExists(t, filepath.Join(dir, "contour_000.geojson"))
	assert.FileExists(t, filepath.Join(dir, "contour_001.geojson"))
	assert.NoFileExists(t, filepath.Join(dir, "contour_002.geojson"))
	assert.FileExists(t, notes)

	back, err := LoadProject(dir)
	require.NoError(t, err)
	assert.Equal(t, l.Items(), back.Items())
}

func TestLoadProjectErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadProject(dir)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFile), []byte("version: 7\n"), 0o644))
	_, err = LoadProject(dir)
	assert.ErrorIs(t, err, ErrProjectFormat)

	bad := "version: 1\nobjects:\n- name: x\n  classification:\n    breaks: [1, 2]\n    fill_colors: []\n    line_colors: []\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, SettingsFile), []byte(bad), 0o644))
	_, err = LoadProject(dir)
	assert.ErrorIs(t, err, ErrProjectFormat)
}
