package migration_test

import (
	"os"
	"path/filepath"
	"testing"

	migration "Foodgram-Backend/cmd/database/migrate"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIngredients(t *testing.T) {
	db := testutil.SetupTestDB(t)

	path := filepath.Join(t.TempDir(), "ingredients.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"name": "flour", "measurement_unit": "г"},
		{"name": "egg", "measurement_unit": "шт"},
		{"name": "flour", "measurement_unit": "г"},
		{"name": "", "measurement_unit": "г"}
	]`), 0o600))

	inserted, err := migration.SeedIngredients(db, path)
	require.NoError(t, err)
	assert.Equal(t, int64(2), inserted)

	inserted, err = migration.SeedIngredients(db, path)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Equal(t, int64(2), testutil.CountRows(t, db, &entities.Ingredient{}, ""))
}

func TestSeedIngredients_BadInput(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := migration.SeedIngredients(db, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0o600))
	_, err = migration.SeedIngredients(db, path)
	require.Error(t, err)
}
