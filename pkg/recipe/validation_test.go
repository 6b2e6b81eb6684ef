package recipe

import (
	"strings"
	"testing"

	"Foodgram-Backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestValidateRecipeGraph(t *testing.T) {
	flour := "8c4fa6a0-6e1e-4f2b-9d4e-0d8b7a6c0001"
	egg := "8c4fa6a0-6e1e-4f2b-9d4e-0d8b7a6c0002"
	tagA := "8c4fa6a0-6e1e-4f2b-9d4e-0d8b7a6c0101"
	tagB := "8c4fa6a0-6e1e-4f2b-9d4e-0d8b7a6c0102"

	tests := []struct {
		name        string
		cookingTime *int
		ingredients []domain.IngredientAmountRequest
		tags        []string
		field       string
		kind        error
	}{
		{
			name:        "valid graph",
			cookingTime: intPtr(30),
			ingredients: []domain.IngredientAmountRequest{{ID: flour, Amount: 200}, {ID: egg, Amount: 2}},
			tags:        []string{tagA, tagB},
		},
		{
			name:        "nothing supplied",
			cookingTime: nil,
		},
		{
			name:        "repeated ingredient",
			cookingTime: intPtr(30),
			ingredients: []domain.IngredientAmountRequest{{ID: flour, Amount: 200}, {ID: flour, Amount: 100}},
			tags:        []string{tagA},
			field:       "ingredients",
			kind:        domain.ErrDuplicateEntry,
		},
		{
			name:        "repeated tag",
			cookingTime: intPtr(30),
			ingredients: []domain.IngredientAmountRequest{{ID: flour, Amount: 200}},
			tags:        []string{tagA, tagA},
			field:       "tags",
			kind:        domain.ErrDuplicateEntry,
		},
		{
			name:        "same ingredient in another letter case",
			cookingTime: intPtr(30),
			ingredients: []domain.IngredientAmountRequest{{ID: flour, Amount: 200}, {ID: strings.ToUpper(flour), Amount: 100}},
			tags:        []string{tagA},
			field:       "ingredients",
			kind:        domain.ErrDuplicateEntry,
		},
		{
			name:        "same tag braced",
			cookingTime: intPtr(30),
			ingredients: []domain.IngredientAmountRequest{{ID: flour, Amount: 200}},
			tags:        []string{tagB, "{" + tagB + "}"},
			field:       "tags",
			kind:        domain.ErrDuplicateEntry,
		},
		{
			name:        "zero cooking time",
			cookingTime: intPtr(0),
			field:       "cooking_time",
			kind:        domain.ErrOutOfRange,
		},
		{
			name:        "cooking time above small int",
			cookingTime: intPtr(domain.MaxSmallInt + 1),
			field:       "cooking_time",
			kind:        domain.ErrOutOfRange,
		},
		{
			name:        "zero amount",
			ingredients: []domain.IngredientAmountRequest{{ID: flour, Amount: 0}},
			field:       "amount",
			kind:        domain.ErrOutOfRange,
		},
		{
			name:        "upper bound amount is allowed",
			ingredients: []domain.IngredientAmountRequest{{ID: flour, Amount: domain.MaxSmallInt}},
		},
		{
			name:        "duplicate reported before range",
			cookingTime: intPtr(-5),
			ingredients: []domain.IngredientAmountRequest{{ID: egg, Amount: 0}, {ID: egg, Amount: 0}},
			field:       "ingredients",
			kind:        domain.ErrDuplicateEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecipeGraph(tt.cookingTime, tt.ingredients, tt.tags)
			if tt.kind == nil {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, domain.ErrValidation)
			require.ErrorIs(t, err, tt.kind)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateCreate_RequiresLists(t *testing.T) {
	req := domain.CreateRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		CookingTime: 20,
		Tags:        []string{"8c4fa6a0-6e1e-4f2b-9d4e-0d8b7a6c0101"},
	}

	err := validateCreate(req)
	require.ErrorIs(t, err, domain.ErrRequired)

	req.Ingredients = []domain.IngredientAmountRequest{{ID: "8c4fa6a0-6e1e-4f2b-9d4e-0d8b7a6c0001", Amount: 1}}
	req.Tags = nil
	err = validateCreate(req)
	require.ErrorIs(t, err, domain.ErrRequired)
}

func TestValidateUpdate_OnlyPresentFields(t *testing.T) {
	require.NoError(t, validateUpdate(domain.UpdateRecipeRequest{}))

	name := "Renamed"
	require.NoError(t, validateUpdate(domain.UpdateRecipeRequest{Name: &name}))

	empty := ""
	require.ErrorIs(t, validateUpdate(domain.UpdateRecipeRequest{Name: &empty}), domain.ErrRequired)

	err := validateUpdate(domain.UpdateRecipeRequest{Ingredients: []domain.IngredientAmountRequest{}})
	require.ErrorIs(t, err, domain.ErrRequired)

	err = validateUpdate(domain.UpdateRecipeRequest{CookingTime: intPtr(0)})
	require.ErrorIs(t, err, domain.ErrOutOfRange)
}

func TestRenderShoppingList(t *testing.T) {
	got := RenderShoppingList([]domain.ShoppingListItem{
		{Name: "egg", MeasurementUnit: "шт", TotalAmount: 2},
		{Name: "flour", MeasurementUnit: "г", TotalAmount: 500},
	})
	assert.Equal(t, "Shopping list\negg: 2 шт\nflour: 500 г\n", got)

	assert.Equal(t, "Shopping list\n", RenderShoppingList(nil))
}
