package receptors

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const receptorFile = `3
R1,1000.5,2000,4,0
R2,1100,2100,1.5,12.25
R3,-50,-60,999,-3
`

func projectFile(t *testing.T, contents string) string {
	t.Helper()
	fileName := filepath.Join(t.TempDir(), FileName)
	if contents != "" {
		require.NoError(t, os.MkdirAll(filepath.Dir(fileName), 0755))
		require.NoError(t, os.WriteFile(fileName, []byte(contents), 0644))
	}
	return fileName
}

func TestLoadSave(t *testing.T) {
	fileName := projectFile(t, receptorFile)
	items, err := Load(fileName)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, Receptor{Name: "R2", X: 1100, Y: 2100, Height: 1.5, DisplayValue: 12.25}, items[1])

	out := filepath.Join(t.TempDir(), "copy", "Receptor.dat")
	require.NoError(t, Save(out, items))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, receptorFile, string(data))

	back, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, items, back)
}

func TestLoadErrors(t *testing.T) {
	for name, contents := range map[string]string{
		"count":  "x\nR1,1,2,3,4\n",
		"short":  "2\nR1,1,2,3,4\n",
		"fields": "1\nR1,1,2,3\n",
		"number": "1\nR1,1,north,3,4\n",
	} {
		_, err := decode(strings.NewReader(contents))
		assert.ErrorIs(t, err, ErrReceptorFile, name)
	}
	items, err := decode(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestEditorSave(t *testing.T) {
	e, err := NewEditor(projectFile(t, ""), 2)
	require.NoError(t, err)
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, 1, e.Slots())

	assert.ErrorIs(t, e.Save(Form{Name: " ", X: "1", Y: "2"}), ErrInvalidReceptor)
	assert.ErrorIs(t, e.Save(Form{Name: "a", X: "1", Y: ""}), ErrInvalidReceptor)
	assert.Equal(t, 0, e.Len())

	require.NoError(t, e.Save(Form{Name: "Re;cep,tor\t1", X: " 10.5", Y: "20", Height: 0.5, DisplayValue: 5e6}))
	require.Equal(t, 1, e.Len())
	r, isNew := e.Current()
	assert.False(t, isNew)
	assert.Equal(t, Receptor{Name: "Receptor1", X: 10.5, Y: 20, Height: 2, DisplayValue: 1e6}, r)

	require.NoError(t, e.Save(Form{Name: "changed", X: "1", Y: "2", Height: 5000}))
	assert.Equal(t, 1, e.Len())
	r, _ = e.Current()
	assert.Equal(t, "changed", r.Name)
	assert.Equal(t, float32(MaxHeight), r.Height)
}

func TestEditorAppend(t *testing.T) {
	e, err := NewEditor(projectFile(t, ""), 0)
	require.NoError(t, err)
	require.NoError(t, e.Append(Form{Name: "a", X: "1", Y: "1"}))
	require.NoError(t, e.Append(Form{Name: "b", X: "2", Y: "2"}))
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, 2, e.Slots())
	assert.Equal(t, 2, e.Position())

	assert.ErrorIs(t, e.Append(Form{Name: "c", X: "x", Y: "3"}), ErrInvalidReceptor)
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, 2, e.Position())

	e.Locked = true
	assert.ErrorIs(t, e.Append(Form{Name: "c", X: "3", Y: "3"}), ErrProjectLocked)
}

func TestEditorNavigation(t *testing.T) {
	e, err := NewEditor(projectFile(t, receptorFile), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, e.Slots())
	assert.Equal(t, 1, e.Position())

	assert.False(t, e.Previous())
	assert.True(t, e.Next())
	assert.True(t, e.Next())
	assert.False(t, e.Next())
	assert.Equal(t, 3, e.Position())
	assert.False(t, e.Select(0))
	assert.False(t, e.Select(4))
	assert.True(t, e.Select(2))
	r, _ := e.Current()
	assert.Equal(t, "R2", r.Name)

	// Add ignores a form without x coordinate
	require.NoError(t, e.Add(Form{Name: "R4"}))
	assert.Equal(t, 3, e.Len())

	require.NoError(t, e.Add(Form{Name: "R2b", X: "1", Y: "1", Height: 3}))
	assert.Equal(t, 3, e.Len(), "saved over the current item")
	assert.Equal(t, 4, e.Slots())
	assert.Equal(t, 4, e.Position())
	r, isNew := e.Current()
	assert.True(t, isNew)
	assert.Equal(t, "R3", r.Name, "a fresh slot shows the last receptor")

	require.NoError(t, e.Add(Form{Name: "R4", X: "7", Y: "8", Height: 3}))
	assert.Equal(t, 4, e.Len())
	assert.Equal(t, "R4", e.Items()[3].Name)
	assert.Equal(t, 5, e.Slots())
}

func TestEditorRemove(t *testing.T) {
	e, err := NewEditor(projectFile(t, receptorFile), 0)
	require.NoError(t, err)

	require.True(t, e.Select(2))
	require.NoError(t, e.RemoveCurrent())
	assert.Equal(t, 2, e.Len())
	assert.Equal(t, 2, e.Position())
	r, _ := e.Current()
	assert.Equal(t, "R3", r.Name)

	require.NoError(t, e.RemoveCurrent())
	assert.Equal(t, 1, e.Position())
	r, _ = e.Current()
	assert.Equal(t, "R1", r.Name)

	require.NoError(t, e.RemoveCurrent())
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, 1, e.Slots())
	r, isNew := e.Current()
	assert.True(t, isNew)
	assert.Equal(t, Receptor{}, r)

	require.NoError(t, e.Reset())
	assert.Equal(t, 3, e.Len())
	require.NoError(t, e.RemoveAll())
	assert.Equal(t, 0, e.Len())
	assert.Equal(t, 1, e.Slots())
}

func TestEditorLocked(t *testing.T) {
	fileName := projectFile(t, receptorFile)
	e, err := NewEditor(fileName, 0)
	require.NoError(t, err)
	e.Locked = true

	form := Form{Name: "x", X: "1", Y: "2"}
	assert.ErrorIs(t, e.Save(form), ErrProjectLocked)
	assert.ErrorIs(t, e.Add(form), ErrProjectLocked)
	assert.ErrorIs(t, e.RemoveCurrent(), ErrProjectLocked)
	assert.ErrorIs(t, e.RemoveAll(), ErrProjectLocked)
	assert.ErrorIs(t, e.Commit(), ErrProjectLocked)
	assert.True(t, e.Next(), "browsing is allowed")
	assert.Equal(t, 3, e.Len())
}

func TestEditorCommitAndReset(t *testing.T) {
	fileName := projectFile(t, receptorFile)
	e, err := NewEditor(fileName, 0)
	require.NoError(t, err)

	require.NoError(t, e.RemoveAll())
	require.NoError(t, e.Reset())
	assert.Equal(t, 3, e.Len(), "reset discards edits")

	require.NoError(t, e.RemoveCurrent())
	require.NoError(t, e.Commit())
	items, err := Load(fileName)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "R2", items[0].Name)
}

func TestNearest(t *testing.T) {
	e, err := NewEditor(projectFile(t, receptorFile), 0)
	require.NoError(t, err)

	i, ok := e.Nearest(1090, 2090, 50)
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = e.Nearest(0, 0, 10)
	assert.False(t, ok)

	require.NoError(t, e.RemoveAll())
	_, ok = e.Nearest(0, 0, 1e9)
	assert.False(t, ok)
}
