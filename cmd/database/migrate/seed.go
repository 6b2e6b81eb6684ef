package migration

import (
	"fmt"
	"os"

	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/logging"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const seedBatchSize = 500

type ingredientRecord struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// SeedIngredients loads a JSON array of {name, measurement_unit} objects.
// Rows already present are skipped, so the import can be repeated.
func SeedIngredients(db *gorm.DB, path string) (int64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read ingredient seed: %w", err)
	}

	var records []ingredientRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return 0, fmt.Errorf("parse ingredient seed: %w", err)
	}

	ingredients := make([]entities.Ingredient, 0, len(records))
	for _, r := range records {
		if r.Name == "" || r.MeasurementUnit == "" {
			continue
		}
		ingredients = append(ingredients, entities.Ingredient{
			Name:            r.Name,
			MeasurementUnit: r.MeasurementUnit,
		})
	}
	if len(ingredients) == 0 {
		return 0, nil
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&ingredients, seedBatchSize)
	if result.Error != nil {
		return 0, fmt.Errorf("insert ingredients: %w", result.Error)
	}

	logging.Info().
		Int("records", len(records)).
		Int64("inserted", result.RowsAffected).
		Msg("ingredient seed loaded")
	return result.RowsAffected, nil
}
