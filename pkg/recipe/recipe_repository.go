package recipe

import (
	"context"
	"errors"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe, quantities []entities.IngredientQuantity, tagIDs []uuid.UUID) error
		UpdateRecipe(ctx context.Context, recipeID uuid.UUID, fields map[string]any, quantities []entities.IngredientQuantity, tagIDs []uuid.UUID) error
		DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error
		GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, query RecipeQuery) ([]*entities.Recipe, int64, error)

		AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
		RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
		IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
		AddToShoppingCart(ctx context.Context, userID, recipeID uuid.UUID) error
		RemoveFromShoppingCart(ctx context.Context, userID, recipeID uuid.UUID) error
		IsInShoppingCart(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)

		GetShoppingList(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingListItem, error)
	}

	// RecipeQuery is a resolved list filter. Zero ids disable the matching
	// condition.
	RecipeQuery struct {
		AuthorID    uuid.UUID
		TagSlugs    []string
		FavoritedBy uuid.UUID
		InCartOf    uuid.UUID
		Offset      int
		Limit       int
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// CreateRecipe writes the recipe row, its ingredient quantities and its tag
// links in one transaction. Name uniqueness is left to the unique index.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe, quantities []entities.IngredientQuantity, tagIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := loadTags(tx, tagIDs)
		if err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(recipe).Error; err != nil {
			return translateRecipeError(err)
		}

		if err := replaceQuantities(tx, recipe.ID, quantities); err != nil {
			return err
		}

		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
}

// UpdateRecipe applies the given column values. Non-nil quantities and
// tagIDs replace the stored sets entirely.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipeID uuid.UUID, fields map[string]any, quantities []entities.IngredientQuantity, tagIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			res := tx.Model(&entities.Recipe{}).Where("id = ?", recipeID).Updates(fields)
			if res.Error != nil {
				return translateRecipeError(res.Error)
			}
			if res.RowsAffected == 0 {
				return domain.ErrRecipeNotFound
			}
		}

		if quantities != nil {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(&entities.IngredientQuantity{}).Error; err != nil {
				return err
			}
			if err := replaceQuantities(tx, recipeID, quantities); err != nil {
				return err
			}
		}

		if tagIDs != nil {
			tags, err := loadTags(tx, tagIDs)
			if err != nil {
				return err
			}
			if err := tx.Model(&entities.Recipe{ID: recipeID}).Association("Tags").Replace(tags); err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, recipeID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, dependent := range []any{&entities.Favorite{}, &entities.ShoppingCart{}, &entities.IngredientQuantity{}} {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(dependent).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&entities.Recipe{ID: recipeID}).Association("Tags").Clear(); err != nil {
			return err
		}

		res := tx.Where("id = ?", recipeID).Delete(&entities.Recipe{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrRecipeNotFound
		}
		return nil
	})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uuid.UUID) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Ingredients.Ingredient").
		Preload("Tags").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, query RecipeQuery) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64

	if err := r.filtered(ctx, query).Model(&entities.Recipe{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.filtered(ctx, query).
		Preload("Author").
		Preload("Ingredients.Ingredient").
		Preload("Tags").
		Offset(query.Offset).
		Limit(query.Limit).
		Order("created_at desc").
		Order("name").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) filtered(ctx context.Context, query RecipeQuery) *gorm.DB {
	q := r.db.WithContext(ctx)

	if query.AuthorID != uuid.Nil {
		q = q.Where("author_id = ?", query.AuthorID)
	}
	if len(query.TagSlugs) > 0 {
		q = q.Where("id IN (?)", r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", query.TagSlugs))
	}
	if query.FavoritedBy != uuid.Nil {
		q = q.Where("id IN (?)", r.db.Model(&entities.Favorite{}).
			Select("recipe_id").
			Where("user_id = ?", query.FavoritedBy))
	}
	if query.InCartOf != uuid.Nil {
		q = q.Where("id IN (?)", r.db.Model(&entities.ShoppingCart{}).
			Select("recipe_id").
			Where("user_id = ?", query.InCartOf))
	}
	return q
}

func (r *recipeRepository) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.addMembership(ctx, &entities.Favorite{UserID: userID, RecipeID: recipeID}, domain.ErrFavoriteExists)
}

func (r *recipeRepository) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.removeMembership(ctx, &entities.Favorite{}, userID, recipeID, domain.ErrFavoriteNotFound)
}

func (r *recipeRepository) IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	return r.membershipExists(ctx, &entities.Favorite{}, userID, recipeID)
}

func (r *recipeRepository) AddToShoppingCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.addMembership(ctx, &entities.ShoppingCart{UserID: userID, RecipeID: recipeID}, domain.ErrShoppingCartExists)
}

func (r *recipeRepository) RemoveFromShoppingCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	return r.removeMembership(ctx, &entities.ShoppingCart{}, userID, recipeID, domain.ErrShoppingCartNotFound)
}

func (r *recipeRepository) IsInShoppingCart(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	return r.membershipExists(ctx, &entities.ShoppingCart{}, userID, recipeID)
}

// GetShoppingList sums the amounts of every ingredient used by the recipes
// in the user's cart, grouped by ingredient name and measurement unit.
func (r *recipeRepository) GetShoppingList(ctx context.Context, userID uuid.UUID) ([]domain.ShoppingListItem, error) {
	items := []domain.ShoppingListItem{}
	if err := r.db.WithContext(ctx).
		Table("ingredient_quantities AS iq").
		Select("i.name AS name, i.measurement_unit AS measurement_unit, SUM(iq.amount) AS total_amount").
		Joins("JOIN ingredients AS i ON i.id = iq.ingredient_id").
		Joins("JOIN shopping_carts AS sc ON sc.recipe_id = iq.recipe_id").
		Where("sc.user_id = ?", userID).
		Group("i.name, i.measurement_unit").
		Order("i.name ASC, i.measurement_unit ASC").
		Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// addMembership relies on the pair's unique index to reject duplicates.
func (r *recipeRepository) addMembership(ctx context.Context, row any, existsErr error) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return existsErr
	}
	return err
}

func (r *recipeRepository) removeMembership(ctx context.Context, model any, userID, recipeID uuid.UUID, notFoundErr error) error {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFoundErr
	}
	return nil
}

func (r *recipeRepository) membershipExists(ctx context.Context, model any, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func loadTags(tx *gorm.DB, tagIDs []uuid.UUID) ([]entities.Tag, error) {
	tags := []entities.Tag{}
	if len(tagIDs) == 0 {
		return tags, nil
	}
	if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, domain.ErrRecipeTagAbsent
	}
	return tags, nil
}

func replaceQuantities(tx *gorm.DB, recipeID uuid.UUID, quantities []entities.IngredientQuantity) error {
	if len(quantities) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(quantities))
	for i := range quantities {
		quantities[i].RecipeID = recipeID
		ids = append(ids, quantities[i].IngredientID)
	}

	var found int64
	if err := tx.Model(&entities.Ingredient{}).Where("id IN ?", ids).Count(&found).Error; err != nil {
		return err
	}
	if found != int64(len(ids)) {
		return domain.ErrRecipeIngredientAbsent
	}

	if err := tx.Omit(clause.Associations).Create(&quantities).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewValidationError("ingredients", domain.ErrDuplicateEntry, "ingredient listed twice")
		}
		return translateRecipeError(err)
	}
	return nil
}

func translateRecipeError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrRecipeNameExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrRecipeIngredientAbsent
	default:
		return err
	}
}
