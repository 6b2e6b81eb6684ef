package ingredient

import (
	"context"
	"testing"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/authz"
	"Foodgram-Backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIngredients_PrefixSearch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	enforcer, err := authz.NewEnforcer()
	require.NoError(t, err)
	svc := NewIngredientService(NewIngredientRepository(db), enforcer)

	testutil.CreateIngredient(t, db, "sugar", "g")
	testutil.CreateIngredient(t, db, "Salt", "g")
	testutil.CreateIngredient(t, db, "salmon", "g")
	testutil.CreateIngredient(t, db, "basil", "g")
	testutil.CreateIngredient(t, db, "50%_cream", "ml")

	names := func(items []domain.IngredientResponse) []string {
		out := make([]string, 0, len(items))
		for _, i := range items {
			out = append(out, i.Name)
		}
		return out
	}

	all, err := svc.GetIngredients(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 5)

	got, err := svc.GetIngredients(context.Background(), "SAL")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Salt", "salmon"}, names(got))

	got, err = svc.GetIngredients(context.Background(), "50%_")
	require.NoError(t, err)
	assert.Equal(t, []string{"50%_cream"}, names(got))

	got, err = svc.GetIngredients(context.Background(), "%")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCreateIngredient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	enforcer, err := authz.NewEnforcer()
	require.NoError(t, err)
	svc := NewIngredientService(NewIngredientRepository(db), enforcer)

	admin := testutil.Requester(testutil.CreateUser(t, db, "admin", domain.RoleAdmin))
	cook := testutil.Requester(testutil.CreateUser(t, db, "cook", domain.RoleUser))
	req := domain.CreateIngredientRequest{Name: "flour", MeasurementUnit: "g"}

	_, err = svc.CreateIngredient(context.Background(), cook, req)
	require.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.CreateIngredient(context.Background(), domain.Requester{}, req)
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	created, err := svc.CreateIngredient(context.Background(), admin, req)
	require.NoError(t, err)
	assert.Equal(t, "flour", created.Name)

	_, err = svc.CreateIngredient(context.Background(), admin, req)
	require.ErrorIs(t, err, domain.ErrIngredientExists)

	_, err = svc.CreateIngredient(context.Background(), admin, domain.CreateIngredientRequest{Name: "flour", MeasurementUnit: "kg"})
	require.NoError(t, err)

	got, err := svc.GetIngredient(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.GetIngredient(context.Background(), "bogus")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteIngredient(t *testing.T) {
	db := testutil.SetupTestDB(t)
	enforcer, err := authz.NewEnforcer()
	require.NoError(t, err)
	svc := NewIngredientService(NewIngredientRepository(db), enforcer)

	admin := testutil.CreateUser(t, db, "admin", domain.RoleAdmin)
	flour := testutil.CreateIngredient(t, db, "flour", "g")
	salt := testutil.CreateIngredient(t, db, "salt", "g")

	recipe := &entities.Recipe{AuthorID: admin.ID, Name: "Bread", Text: "Bake.", Image: "img", CookingTime: 60}
	require.NoError(t, db.Create(recipe).Error)
	require.NoError(t, db.Create(&entities.IngredientQuantity{RecipeID: recipe.ID, IngredientID: flour.ID, Amount: 500}).Error)

	err = svc.DeleteIngredient(context.Background(), testutil.Requester(admin), flour.ID.String())
	require.ErrorIs(t, err, domain.ErrIngredientInUse)
	assert.Equal(t, int64(2), testutil.CountRows(t, db, &entities.Ingredient{}, ""))

	require.NoError(t, svc.DeleteIngredient(context.Background(), testutil.Requester(admin), salt.ID.String()))
	require.ErrorIs(t, svc.DeleteIngredient(context.Background(), testutil.Requester(admin), salt.ID.String()), domain.ErrNotFound)
}
