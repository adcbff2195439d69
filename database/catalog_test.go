package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCatalogFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadCatalog_EmptyPathReturnsSeed(t *testing.T) {
	catalog, err := LoadCatalog("")
	require.NoError(t, err)
	require.Len(t, catalog, 5)
	assert.Equal(t, "t-001", catalog[0].ID)
	assert.Equal(t, "Dr. Sarah Mitchell", catalog[0].Name)
}

func TestLoadCatalog_FromFile(t *testing.T) {
	path := writeCatalogFile(t, `[
		{
			"id": "t-100",
			"name": "Dr. Test",
			"specialties": ["Anxiety"],
			"availability": [{"day": "Monday", "hours": "9:00 - 11:00"}]
		}
	]`)

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "t-100", catalog[0].ID)
	assert.Equal(t, []string{"Anxiety"}, catalog[0].Specialties)
	hours, ok := catalog[0].AvailabilityFor("Monday")
	require.True(t, ok)
	assert.Equal(t, "9:00 - 11:00", hours)
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadCatalog_InvalidJSON(t *testing.T) {
	path := writeCatalogFile(t, `{"not": "a list"`)
	_, err := LoadCatalog(path)
	assert.Error(t, err)
}

func TestLoadCatalog_RejectsEntryWithoutID(t *testing.T) {
	path := writeCatalogFile(t, `[{"name": "Dr. Anonymous"}]`)
	_, err := LoadCatalog(path)
	assert.ErrorContains(t, err, "missing an id or name")
}
