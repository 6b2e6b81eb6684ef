package routes

import (
	"Foodgram-Backend/internal/api/handlers"
	"Foodgram-Backend/internal/middleware"
	"Foodgram-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App               *fiber.App
	UserHandler       handlers.UserHandler
	RecipeHandler     handlers.RecipeHandler
	IngredientHandler handlers.IngredientHandler
	TagHandler        handlers.TagHandler
	Middleware        middleware.Middleware
	JWTService        jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Auth()
	c.User()
	c.Ingredients()
	c.Tags()
	c.Recipes()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) Auth() {
	auth := c.App.Group("/api/auth")
	auth.Post("/token/login", c.UserHandler.Login)
}

func (c *Config) User() {
	required := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	user := c.App.Group("/api/users")
	// static paths first so they are not captured by /:id
	{
		user.Post("", c.UserHandler.Register)
		user.Get("", optional, c.UserHandler.GetUsers)
		user.Get("/me", required, c.UserHandler.Me)
		user.Post("/set_password", required, c.UserHandler.SetPassword)
		user.Get("/subscriptions", required, c.UserHandler.GetSubscriptions)
		user.Get("/:id", optional, c.UserHandler.GetUser)
		user.Post("/:id/subscribe", required, c.UserHandler.Subscribe)
		user.Delete("/:id/subscribe", required, c.UserHandler.Unsubscribe)
	}
}

func (c *Config) Ingredients() {
	required := c.Middleware.AuthMiddleware(c.JWTService)

	ingredients := c.App.Group("/api/ingredients")
	ingredients.Get("", c.IngredientHandler.GetIngredients)
	ingredients.Get("/:id", c.IngredientHandler.GetIngredient)
	ingredients.Post("", required, c.IngredientHandler.CreateIngredient)
	ingredients.Delete("/:id", required, c.IngredientHandler.DeleteIngredient)
}

func (c *Config) Tags() {
	required := c.Middleware.AuthMiddleware(c.JWTService)

	tags := c.App.Group("/api/tags")
	tags.Get("", c.TagHandler.GetTags)
	tags.Get("/:id", c.TagHandler.GetTag)
	tags.Post("", required, c.TagHandler.CreateTag)
	tags.Delete("/:id", required, c.TagHandler.DeleteTag)
}

func (c *Config) Recipes() {
	required := c.Middleware.AuthMiddleware(c.JWTService)
	optional := c.Middleware.OptionalAuthMiddleware(c.JWTService)

	recipes := c.App.Group("/api/recipes")
	recipes.Get("/download_shopping_cart", required, c.RecipeHandler.DownloadShoppingCart)

	// Basic CRUD operations
	recipes.Get("", optional, c.RecipeHandler.GetRecipes)
	recipes.Post("", required, c.RecipeHandler.CreateRecipe)
	recipes.Get("/:id", optional, c.RecipeHandler.GetRecipeDetail)
	recipes.Patch("/:id", required, c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", required, c.RecipeHandler.DeleteRecipe)

	// Membership
	recipes.Post("/:id/favorite", required, c.RecipeHandler.AddFavorite)
	recipes.Delete("/:id/favorite", required, c.RecipeHandler.RemoveFavorite)
	recipes.Post("/:id/shopping_cart", required, c.RecipeHandler.AddToShoppingCart)
	recipes.Delete("/:id/shopping_cart", required, c.RecipeHandler.RemoveFromShoppingCart)
}
