package recipe

import (
	"fmt"

	"Foodgram-Backend/domain"

	"github.com/google/uuid"
)

// ValidateRecipeGraph checks the parts of a recipe that a struct tag cannot
// express. A nil cookingTime or a nil list means the value was not supplied
// and is skipped. Duplicate checks run before range checks so a request with
// both problems reports the duplicate.
func ValidateRecipeGraph(cookingTime *int, ingredients []domain.IngredientAmountRequest, tagIDs []string) error {
	seenIngredients := make(map[string]struct{}, len(ingredients))
	for _, item := range ingredients {
		key := idKey(item.ID)
		if _, ok := seenIngredients[key]; ok {
			return domain.NewValidationError("ingredients", domain.ErrDuplicateEntry,
				fmt.Sprintf("ingredient %s listed twice", item.ID))
		}
		seenIngredients[key] = struct{}{}
	}

	seenTags := make(map[string]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		key := idKey(id)
		if _, ok := seenTags[key]; ok {
			return domain.NewValidationError("tags", domain.ErrDuplicateEntry,
				fmt.Sprintf("tag %s listed twice", id))
		}
		seenTags[key] = struct{}{}
	}

	if cookingTime != nil && !inSmallIntRange(*cookingTime) {
		return domain.NewValidationError("cooking_time", domain.ErrOutOfRange,
			fmt.Sprintf("cooking time must be between 1 and %d", domain.MaxSmallInt))
	}

	for _, item := range ingredients {
		if !inSmallIntRange(item.Amount) {
			return domain.NewValidationError("amount", domain.ErrOutOfRange,
				fmt.Sprintf("amount must be between 1 and %d", domain.MaxSmallInt))
		}
	}

	return nil
}

func validateCreate(req domain.CreateRecipeRequest) error {
	if len(req.Ingredients) == 0 {
		return domain.NewValidationError("ingredients", domain.ErrRequired, "at least one ingredient is required")
	}
	if len(req.Tags) == 0 {
		return domain.NewValidationError("tags", domain.ErrRequired, "at least one tag is required")
	}
	return ValidateRecipeGraph(&req.CookingTime, req.Ingredients, req.Tags)
}

func validateUpdate(req domain.UpdateRecipeRequest) error {
	if req.Name != nil && *req.Name == "" {
		return domain.NewValidationError("name", domain.ErrRequired, "name cannot be empty")
	}
	if req.Text != nil && *req.Text == "" {
		return domain.NewValidationError("text", domain.ErrRequired, "text cannot be empty")
	}
	if req.Ingredients != nil && len(req.Ingredients) == 0 {
		return domain.NewValidationError("ingredients", domain.ErrRequired, "at least one ingredient is required")
	}
	if req.Tags != nil && len(req.Tags) == 0 {
		return domain.NewValidationError("tags", domain.ErrRequired, "at least one tag is required")
	}
	return ValidateRecipeGraph(req.CookingTime, req.Ingredients, req.Tags)
}

// idKey folds the accepted spellings of one uuid (case, braces, urn prefix)
// into its canonical form. Unparseable ids are left as-is; they are rejected
// later as an invalid format.
func idKey(raw string) string {
	if id, err := uuid.Parse(raw); err == nil {
		return id.String()
	}
	return raw
}

func inSmallIntRange(v int) bool {
	return v >= 1 && v <= domain.MaxSmallInt
}
