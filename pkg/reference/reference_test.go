package reference

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeSheet(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}

	path := filepath.Join(t.TempDir(), "Villages.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"Region", "Commune", "Village"},
		{"R1", "C1", "V1"},
		{"R1", "C1", "V2"},
		{"R1", "C2", "V3"},
		{"R2", "C3", "V4"},
		{"R1", "C1", "V1"}, // duplicate
		{"", "C9", "V9"},   // blank region, skipped
	})

	set, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 4, set.Len())
	assert.True(t, set.Contains("R1", "C1", "V1"))
	assert.True(t, set.Contains("R2", "C3", "V4"))
	assert.False(t, set.Contains("R1", "C2", "V1"))
	assert.False(t, set.Contains("", "C9", "V9"))

	assert.Equal(t, []string{"R1", "R2"}, set.Regions())
	assert.Equal(t, []string{"C1", "C2"}, set.Communes("R1"))
	assert.Equal(t, []string{"V1", "V2"}, set.Villages("R1", "C1"))
}

func TestLoadFileHeaderIsCaseInsensitive(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"VILLAGE", "REGION", "COMMUNE"},
		{"V1", "R1", "C1"},
	})

	set, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, set.Contains("R1", "C1", "V1"))
}

func TestLoadFileMissingColumn(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"Region", "Village"},
		{"R1", "V1"},
	})

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "commune")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}

func TestLoadFileNoUsableRows(t *testing.T) {
	path := writeSheet(t, [][]interface{}{
		{"Region", "Commune", "Village"},
	})

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestCatalogReplace(t *testing.T) {
	first := NewSet([]Location{{Region: "R1", Commune: "C1", Village: "V1"}})
	second := NewSet([]Location{{Region: "R2", Commune: "C2", Village: "V2"}})

	catalog := NewCatalog(first)
	assert.True(t, catalog.Current().Contains("R1", "C1", "V1"))

	catalog.Replace(second)
	assert.False(t, catalog.Current().Contains("R1", "C1", "V1"))
	assert.True(t, catalog.Current().Contains("R2", "C2", "V2"))
}
