package config

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/testutil"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Field   string          `json:"field"`
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("RATE_LIMIT_MAX", "1000")

	db := testutil.SetupTestDB(t)
	app, err := NewApp(db, testutil.NewFakeStorage(), io.Discard)
	require.NoError(t, err)
	return app, db
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	if resp.Header.Get(fiber.HeaderContentType) == fiber.MIMEApplicationJSON {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	resp, env := call(t, app, http.MethodPost, "/api/auth/token/login", "", domain.LoginRequest{
		Email:    email,
		Password: testutil.TestPassword,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Error)

	var res domain.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	return "Bearer " + res.AuthToken
}

func TestRegisterAndLogin(t *testing.T) {
	app, _ := newTestApp(t)

	resp, env := call(t, app, http.MethodPost, "/api/users", "", domain.RegisterRequest{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Ann",
		LastName:  "Cook",
		Password:  testutil.TestPassword,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Error)

	resp, env = call(t, app, http.MethodPost, "/api/users", "", domain.RegisterRequest{
		Email:     "other@example.com",
		Username:  "me",
		FirstName: "Ann",
		LastName:  "Cook",
		Password:  testutil.TestPassword,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username", env.Field)

	token := login(t, app, "cook@example.com")

	resp, env = call(t, app, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var me domain.UserResponse
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "cook", me.Username)

	resp, _ = call(t, app, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/users/me", "Bearer garbage", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRecipeFlow(t *testing.T) {
	app, db := newTestApp(t)

	author := testutil.CreateUser(t, db, "author", domain.RoleUser)
	reader := testutil.CreateUser(t, db, "reader", domain.RoleUser)
	flour := testutil.CreateIngredient(t, db, "flour", "г")
	egg := testutil.CreateIngredient(t, db, "egg", "шт")
	breakfast := testutil.CreateTag(t, db, "Breakfast", "breakfast", "#E26C2D")

	authorToken := login(t, app, author.Email)
	readerToken := "Token " + login(t, app, reader.Email)[len("Bearer "):]

	body := domain.CreateRecipeRequest{
		Name:        "Pancakes",
		Text:        "Mix and fry.",
		Image:       testutil.PNGDataURI(),
		CookingTime: 20,
		Ingredients: []domain.IngredientAmountRequest{
			{ID: flour.ID.String(), Amount: 200},
			{ID: egg.ID.String(), Amount: 2},
		},
		Tags: []string{breakfast.ID.String()},
	}

	resp, _ := call(t, app, http.MethodPost, "/api/recipes", "", body)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, env := call(t, app, http.MethodPost, "/api/recipes", authorToken, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Error)
	var created domain.RecipeResponse
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "author", created.Author.Username)

	resp, env = call(t, app, http.MethodPost, "/api/recipes", authorToken, body)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, env.Error)

	dup := body
	dup.Name = "Double egg"
	dup.Ingredients = []domain.IngredientAmountRequest{{ID: egg.ID.String(), Amount: 1}, {ID: egg.ID.String(), Amount: 2}}
	resp, env = call(t, app, http.MethodPost, "/api/recipes", authorToken, dup)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ingredients", env.Field)

	text := "Stolen."
	resp, _ = call(t, app, http.MethodPatch, "/api/recipes/"+created.ID, readerToken, domain.UpdateRecipeRequest{Text: &text})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/recipes?tags=breakfast&tags=lunch", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/recipes/not-a-uuid", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = call(t, app, http.MethodGet, "/api/recipes/download_shopping_cart", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, env = call(t, app, http.MethodPost, "/api/recipes/"+created.ID+"/shopping_cart", readerToken, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Error)

	resp, _ = call(t, app, http.MethodPost, "/api/recipes/"+created.ID+"/shopping_cart", readerToken, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/recipes/download_shopping_cart", nil)
	req.Header.Set(fiber.HeaderAuthorization, readerToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "shopping_list.txt")
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "text/plain")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Shopping list\negg: 2 шт\nflour: 200 г\n", string(raw))

	resp, _ = call(t, app, http.MethodDelete, "/api/recipes/"+created.ID, authorToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, http.MethodDelete, "/api/recipes/"+created.ID+"/shopping_cart", readerToken, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubscriptionRoutes(t *testing.T) {
	app, db := newTestApp(t)

	follower := testutil.CreateUser(t, db, "follower", domain.RoleUser)
	author := testutil.CreateUser(t, db, "author", domain.RoleUser)
	token := login(t, app, follower.Email)

	resp, env := call(t, app, http.MethodPost, "/api/users/"+follower.ID.String()+"/subscribe", token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, env.Error)

	resp, env = call(t, app, http.MethodPost, "/api/users/"+author.ID.String()+"/subscribe?recipes_limit=3", token, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Error)

	resp, _ = call(t, app, http.MethodPost, "/api/users/"+author.ID.String()+"/subscribe", token, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, env = call(t, app, http.MethodGet, "/api/users/subscriptions", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var subs domain.SubscriptionListResponse
	require.NoError(t, json.Unmarshal(env.Data, &subs))
	require.Len(t, subs.Authors, 1)
	assert.Equal(t, "author", subs.Authors[0].Username)

	resp, _ = call(t, app, http.MethodDelete, "/api/users/"+author.ID.String()+"/subscribe", token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = call(t, app, http.MethodDelete, "/api/users/"+author.ID.String()+"/subscribe", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestReferenceDataRoutes(t *testing.T) {
	app, db := newTestApp(t)

	admin := testutil.CreateUser(t, db, "admin", domain.RoleAdmin)
	cook := testutil.CreateUser(t, db, "cook", domain.RoleUser)
	adminToken := login(t, app, admin.Email)
	cookToken := login(t, app, cook.Email)

	ingredient := domain.CreateIngredientRequest{Name: "Sugar", MeasurementUnit: "г"}
	resp, _ := call(t, app, http.MethodPost, "/api/ingredients", cookToken, ingredient)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, env := call(t, app, http.MethodPost, "/api/ingredients", adminToken, ingredient)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Error)

	resp, env = call(t, app, http.MethodGet, "/api/ingredients?name=su", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var ingredients []domain.IngredientResponse
	require.NoError(t, json.Unmarshal(env.Data, &ingredients))
	require.Len(t, ingredients, 1)
	assert.Equal(t, "Sugar", ingredients[0].Name)

	resp, env = call(t, app, http.MethodPost, "/api/tags", adminToken, domain.CreateTagRequest{Name: "Lunch", Slug: "lunch!", Color: "#112233"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Slug", env.Field)

	resp, env = call(t, app, http.MethodPost, "/api/tags", adminToken, domain.CreateTagRequest{Name: "Lunch", Slug: "lunch", Color: "#112233"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Error)

	resp, _ = call(t, app, http.MethodPost, "/api/tags", adminToken, domain.CreateTagRequest{Name: "Brunch", Slug: "lunch", Color: "#445566"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}
