package migration

import (
	"fmt"

	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/logging"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"subscription", &entities.Subscribe{}},
		{"ingredient", &entities.Ingredient{}},
		{"tag", &entities.Tag{}},
		{"recipe", &entities.Recipe{}},
		{"ingredient quantity", &entities.IngredientQuantity{}},
		{"favorite", &entities.Favorite{}},
		{"shopping cart", &entities.ShoppingCart{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", m.name, err)
		}
	}

	logging.Info().Msg("database migration complete")
	return nil
}
