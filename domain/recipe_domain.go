package domain

import (
	"fmt"
	"time"
)

const (
	MaxSmallInt = 32767

	ShoppingListHeader   = "Shopping list"
	ShoppingListFilename = "shopping_list.txt"
)

var (
	MessageSuccessGetRecipes         = "success get recipes"
	MessageSuccessGetRecipeDetail    = "success get recipe detail"
	MessageSuccessCreateRecipe       = "recipe created successfully"
	MessageSuccessUpdateRecipe       = "recipe updated successfully"
	MessageSuccessDeleteRecipe       = "recipe deleted successfully"
	MessageSuccessAddFavorite        = "recipe added to favorites"
	MessageSuccessRemoveFavorite     = "recipe removed from favorites"
	MessageSuccessAddShoppingCart    = "recipe added to shopping cart"
	MessageSuccessRemoveShoppingCart = "recipe removed from shopping cart"

	MessageFailedGetRecipes           = "failed to get recipes"
	MessageFailedGetRecipeDetail      = "failed to get recipe detail"
	MessageFailedCreateRecipe         = "failed to create recipe"
	MessageFailedUpdateRecipe         = "failed to update recipe"
	MessageFailedDeleteRecipe         = "failed to delete recipe"
	MessageFailedAddFavorite          = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite       = "failed to remove recipe from favorites"
	MessageFailedAddShoppingCart      = "failed to add recipe to shopping cart"
	MessageFailedRemoveShoppingCart   = "failed to remove recipe from shopping cart"
	MessageFailedDownloadShoppingCart = "failed to download shopping cart"

	ErrRecipeNotFound         = fmt.Errorf("%w: recipe not found", ErrNotFound)
	ErrRecipeNameExists       = fmt.Errorf("%w: recipe name exists", ErrConflict)
	ErrUnauthorizedRecipe     = fmt.Errorf("%w: only the author or an admin can change this recipe", ErrForbidden)
	ErrFavoriteExists         = fmt.Errorf("%w: recipe is already in favorites", ErrConflict)
	ErrFavoriteNotFound       = fmt.Errorf("%w: recipe is not in favorites", ErrNotFound)
	ErrShoppingCartExists     = fmt.Errorf("%w: recipe is already in shopping cart", ErrConflict)
	ErrShoppingCartNotFound   = fmt.Errorf("%w: recipe is not in shopping cart", ErrNotFound)
	ErrRecipeIngredientAbsent = fmt.Errorf("%w: ingredient does not exist", ErrNotFound)
	ErrRecipeTagAbsent        = fmt.Errorf("%w: tag does not exist", ErrNotFound)
)

type (
	IngredientAmountRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount"`
	}

	CreateRecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=255"`
		Text        string                    `json:"text" validate:"required"`
		Image       string                    `json:"image" validate:"required"`
		CookingTime int                       `json:"cooking_time"`
		Ingredients []IngredientAmountRequest `json:"ingredients" validate:"dive"`
		Tags        []string                  `json:"tags" validate:"dive,uuid"`
	}

	// UpdateRecipeRequest carries a partial update. Nil fields keep their
	// stored value; a non-nil list replaces the stored set.
	UpdateRecipeRequest struct {
		Name        *string                   `json:"name" validate:"omitempty,min=1,max=255"`
		Text        *string                   `json:"text" validate:"omitempty,min=1"`
		Image       *string                   `json:"image" validate:"omitempty,min=1"`
		CookingTime *int                      `json:"cooking_time"`
		Ingredients []IngredientAmountRequest `json:"ingredients" validate:"omitempty,dive"`
		Tags        []string                  `json:"tags" validate:"omitempty,dive,uuid"`
	}

	RecipeFilter struct {
		AuthorID         string
		TagSlugs         []string
		IsFavorited      bool
		IsInShoppingCart bool
		Page             int
		Limit            int
	}

	RecipeIngredientResponse struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	RecipeResponse struct {
		ID               string                     `json:"id"`
		Tags             []TagResponse              `json:"tags"`
		Author           UserResponse               `json:"author"`
		Ingredients      []RecipeIngredientResponse `json:"ingredients"`
		IsFavorited      bool                       `json:"is_favorited"`
		IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
		Name             string                     `json:"name"`
		Image            string                     `json:"image"`
		Text             string                     `json:"text"`
		CookingTime      int                        `json:"cooking_time"`
		CreatedAt        time.Time                  `json:"created_at"`
	}

	// RecipeShortResponse is the compact view used by membership endpoints
	// and subscription listings.
	RecipeShortResponse struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	RecipeListResponse struct {
		Recipes    []RecipeResponse `json:"recipes"`
		Pagination Pagination       `json:"pagination"`
	}

	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		TotalAmount     int    `json:"total_amount"`
	}
)
