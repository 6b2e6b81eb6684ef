package recipe

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/authz"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/internal/utils/storage"
	"Foodgram-Backend/pkg/user"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const imageFolder = "recipes"

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, requester domain.Requester, req domain.CreateRecipeRequest) (domain.RecipeResponse, error)
		UpdateRecipe(ctx context.Context, requester domain.Requester, recipeID string, req domain.UpdateRecipeRequest) (domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, requester domain.Requester, recipeID string) error
		GetRecipeDetail(ctx context.Context, requester domain.Requester, recipeID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, requester domain.Requester, filter domain.RecipeFilter) (domain.RecipeListResponse, error)

		AddFavorite(ctx context.Context, requester domain.Requester, recipeID string) (domain.RecipeShortResponse, error)
		RemoveFavorite(ctx context.Context, requester domain.Requester, recipeID string) error
		AddToShoppingCart(ctx context.Context, requester domain.Requester, recipeID string) (domain.RecipeShortResponse, error)
		RemoveFromShoppingCart(ctx context.Context, requester domain.Requester, recipeID string) error

		GetShoppingList(ctx context.Context, requester domain.Requester) ([]domain.ShoppingListItem, error)
		DownloadShoppingList(ctx context.Context, requester domain.Requester) (string, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		userRepository   user.UserRepository
		s3               storage.AwsS3
		policy           authz.Policy
		log              zerolog.Logger
	}
)

func NewRecipeService(recipeRepository RecipeRepository, userRepository user.UserRepository, s3 storage.AwsS3, policy authz.Policy) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
		s3:               s3,
		policy:           policy,
		log:              logging.Component("recipe"),
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, requester domain.Requester, req domain.CreateRecipeRequest) (domain.RecipeResponse, error) {
	if err := s.policy.Authorize(requester, authz.ObjectRecipe, authz.ActionCreate, ""); err != nil {
		return domain.RecipeResponse{}, err
	}

	authorID, err := requester.ID()
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	if err := validateCreate(req); err != nil {
		return domain.RecipeResponse{}, err
	}

	quantities, err := toQuantities(req.Ingredients)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	tagIDs, err := toTagIDs(req.Tags)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	objectKey, err := s.uploadImage(ctx, req.Image)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	recipe := &entities.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		Image:       s.s3.GetPublicLinkKey(objectKey),
		CookingTime: req.CookingTime,
	}
	if err := s.recipeRepository.CreateRecipe(ctx, recipe, quantities, tagIDs); err != nil {
		s.discardImage(ctx, objectKey)
		return domain.RecipeResponse{}, err
	}

	s.log.Info().
		Str("recipe_id", recipe.ID.String()).
		Str("author_id", authorID.String()).
		Int("ingredients", len(quantities)).
		Msg("recipe created")

	return s.GetRecipeDetail(ctx, requester, recipe.ID.String())
}

func (s *recipeService) UpdateRecipe(ctx context.Context, requester domain.Requester, recipeID string, req domain.UpdateRecipeRequest) (domain.RecipeResponse, error) {
	recipe, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}

	if err := s.authorizeWrite(requester, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}

	if err := validateUpdate(req); err != nil {
		return domain.RecipeResponse{}, err
	}

	var quantities []entities.IngredientQuantity
	if req.Ingredients != nil {
		if quantities, err = toQuantities(req.Ingredients); err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	var tagIDs []uuid.UUID
	if req.Tags != nil {
		if tagIDs, err = toTagIDs(req.Tags); err != nil {
			return domain.RecipeResponse{}, err
		}
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Text != nil {
		fields["text"] = *req.Text
	}
	if req.CookingTime != nil {
		fields["cooking_time"] = *req.CookingTime
	}

	var objectKey string
	if req.Image != nil {
		if objectKey, err = s.uploadImage(ctx, *req.Image); err != nil {
			return domain.RecipeResponse{}, err
		}
		fields["image"] = s.s3.GetPublicLinkKey(objectKey)
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe.ID, fields, quantities, tagIDs); err != nil {
		if objectKey != "" {
			s.discardImage(ctx, objectKey)
		}
		return domain.RecipeResponse{}, err
	}

	if objectKey != "" {
		if oldKey, ok := s.s3.GetObjectKeyFromLink(recipe.Image); ok {
			s.discardImage(ctx, oldKey)
		}
	}

	s.log.Info().Str("recipe_id", recipe.ID.String()).Msg("recipe updated")
	return s.GetRecipeDetail(ctx, requester, recipe.ID.String())
}

func (s *recipeService) DeleteRecipe(ctx context.Context, requester domain.Requester, recipeID string) error {
	recipe, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return err
	}

	if err := s.authorizeWrite(requester, recipe); err != nil {
		return err
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID); err != nil {
		return err
	}

	if key, ok := s.s3.GetObjectKeyFromLink(recipe.Image); ok {
		s.discardImage(ctx, key)
	}

	s.log.Info().Str("recipe_id", recipe.ID.String()).Msg("recipe deleted")
	return nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, requester domain.Requester, recipeID string) (domain.RecipeResponse, error) {
	recipe, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeResponse{}, err
	}
	return s.toRecipeResponse(ctx, requester, recipe)
}

func (s *recipeService) GetRecipes(ctx context.Context, requester domain.Requester, filter domain.RecipeFilter) (domain.RecipeListResponse, error) {
	page, limit := domain.NormalizePage(filter.Page, filter.Limit)
	res := domain.RecipeListResponse{
		Recipes:    []domain.RecipeResponse{},
		Pagination: domain.NewPagination(page, limit, 0),
	}

	query := RecipeQuery{
		TagSlugs: filter.TagSlugs,
		Offset:   domain.PageOffset(page, limit),
		Limit:    limit,
	}

	if filter.AuthorID != "" {
		authorID, err := uuid.Parse(filter.AuthorID)
		if err != nil {
			return res, nil
		}
		query.AuthorID = authorID
	}

	if filter.IsFavorited || filter.IsInShoppingCart {
		userID, err := requester.ID()
		if err != nil {
			return res, nil
		}
		if filter.IsFavorited {
			query.FavoritedBy = userID
		}
		if filter.IsInShoppingCart {
			query.InCartOf = userID
		}
	}

	recipes, count, err := s.recipeRepository.GetRecipes(ctx, query)
	if err != nil {
		return domain.RecipeListResponse{}, err
	}

	res.Pagination = domain.NewPagination(page, limit, count)
	for _, recipe := range recipes {
		view, err := s.toRecipeResponse(ctx, requester, recipe)
		if err != nil {
			return domain.RecipeListResponse{}, err
		}
		res.Recipes = append(res.Recipes, view)
	}
	return res, nil
}

func (s *recipeService) AddFavorite(ctx context.Context, requester domain.Requester, recipeID string) (domain.RecipeShortResponse, error) {
	return s.addMembership(ctx, requester, recipeID,
		s.recipeRepository.IsFavorited, s.recipeRepository.AddFavorite, domain.ErrFavoriteExists)
}

func (s *recipeService) RemoveFavorite(ctx context.Context, requester domain.Requester, recipeID string) error {
	return s.removeMembership(ctx, requester, recipeID, s.recipeRepository.RemoveFavorite)
}

func (s *recipeService) AddToShoppingCart(ctx context.Context, requester domain.Requester, recipeID string) (domain.RecipeShortResponse, error) {
	return s.addMembership(ctx, requester, recipeID,
		s.recipeRepository.IsInShoppingCart, s.recipeRepository.AddToShoppingCart, domain.ErrShoppingCartExists)
}

func (s *recipeService) RemoveFromShoppingCart(ctx context.Context, requester domain.Requester, recipeID string) error {
	return s.removeMembership(ctx, requester, recipeID, s.recipeRepository.RemoveFromShoppingCart)
}

func (s *recipeService) GetShoppingList(ctx context.Context, requester domain.Requester) ([]domain.ShoppingListItem, error) {
	if err := s.policy.Authorize(requester, authz.ObjectMembership, authz.ActionRead, requester.UserID); err != nil {
		return nil, err
	}

	userID, err := requester.ID()
	if err != nil {
		return nil, err
	}
	return s.recipeRepository.GetShoppingList(ctx, userID)
}

func (s *recipeService) DownloadShoppingList(ctx context.Context, requester domain.Requester) (string, error) {
	items, err := s.GetShoppingList(ctx, requester)
	if err != nil {
		return "", err
	}
	return RenderShoppingList(items), nil
}

// RenderShoppingList formats the aggregated cart as plain text, one
// "name: total unit" line per ingredient below a header line.
func RenderShoppingList(items []domain.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString(domain.ShoppingListHeader)
	b.WriteString("\n")
	for _, item := range items {
		fmt.Fprintf(&b, "%s: %d %s\n", item.Name, item.TotalAmount, item.MeasurementUnit)
	}
	return b.String()
}

type (
	membershipCheck func(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	membershipWrite func(ctx context.Context, userID, recipeID uuid.UUID) error
)

func (s *recipeService) addMembership(ctx context.Context, requester domain.Requester, recipeID string, exists membershipCheck, add membershipWrite, existsErr error) (domain.RecipeShortResponse, error) {
	userID, err := s.authorizeMembership(requester)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}

	recipe, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}

	found, err := exists(ctx, userID, recipe.ID)
	if err != nil {
		return domain.RecipeShortResponse{}, err
	}
	if found {
		return domain.RecipeShortResponse{}, existsErr
	}

	if err := add(ctx, userID, recipe.ID); err != nil {
		return domain.RecipeShortResponse{}, err
	}
	return toRecipeShort(recipe), nil
}

func (s *recipeService) removeMembership(ctx context.Context, requester domain.Requester, recipeID string, remove membershipWrite) error {
	userID, err := s.authorizeMembership(requester)
	if err != nil {
		return err
	}

	recipe, err := s.loadRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	return remove(ctx, userID, recipe.ID)
}

func (s *recipeService) authorizeMembership(requester domain.Requester) (uuid.UUID, error) {
	if err := s.policy.Authorize(requester, authz.ObjectMembership, authz.ActionWrite, requester.UserID); err != nil {
		return uuid.Nil, err
	}
	return requester.ID()
}

func (s *recipeService) authorizeWrite(requester domain.Requester, recipe *entities.Recipe) error {
	err := s.policy.Authorize(requester, authz.ObjectRecipe, authz.ActionWrite, recipe.AuthorID.String())
	if errors.Is(err, domain.ErrForbidden) {
		return domain.ErrUnauthorizedRecipe
	}
	return err
}

func (s *recipeService) loadRecipe(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	id, err := domain.ParseID(recipeID, domain.ErrRecipeNotFound)
	if err != nil {
		return nil, err
	}
	return s.recipeRepository.GetRecipeByID(ctx, id)
}

func (s *recipeService) uploadImage(ctx context.Context, payload string) (string, error) {
	image, err := storage.DecodeBase64Image(payload)
	if err != nil {
		return "", err
	}

	filename := uuid.New().String() + image.Extension
	objectKey, err := s.s3.UploadFile(ctx, filename, image.Data, image.ContentType, imageFolder)
	if err != nil {
		return "", fmt.Errorf("upload recipe image: %w", err)
	}
	return objectKey, nil
}

// discardImage removes an object that no recipe references. Failures only
// leave an orphaned object behind.
func (s *recipeService) discardImage(ctx context.Context, objectKey string) {
	if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
		s.log.Warn().Err(err).Str("object_key", objectKey).Msg("failed to delete recipe image")
	}
}

func (s *recipeService) toRecipeResponse(ctx context.Context, requester domain.Requester, recipe *entities.Recipe) (domain.RecipeResponse, error) {
	res := domain.RecipeResponse{
		ID:          recipe.ID.String(),
		Tags:        make([]domain.TagResponse, 0, len(recipe.Tags)),
		Ingredients: make([]domain.RecipeIngredientResponse, 0, len(recipe.Ingredients)),
		Name:        recipe.Name,
		Image:       recipe.Image,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		CreatedAt:   recipe.CreatedAt,
	}

	for _, tag := range recipe.Tags {
		res.Tags = append(res.Tags, domain.TagResponse{
			ID:    tag.ID.String(),
			Name:  tag.Name,
			Slug:  tag.Slug,
			Color: tag.Color,
		})
	}
	sort.SliceStable(res.Tags, func(i, j int) bool { return res.Tags[i].Name < res.Tags[j].Name })

	for _, q := range recipe.Ingredients {
		item := domain.RecipeIngredientResponse{ID: q.IngredientID.String(), Amount: q.Amount}
		if q.Ingredient != nil {
			item.Name = q.Ingredient.Name
			item.MeasurementUnit = q.Ingredient.MeasurementUnit
		}
		res.Ingredients = append(res.Ingredients, item)
	}
	sort.SliceStable(res.Ingredients, func(i, j int) bool { return res.Ingredients[i].Name < res.Ingredients[j].Name })

	viewerID, err := requester.ID()
	anonymous := err != nil

	if recipe.Author != nil {
		subscribed := false
		if !anonymous {
			if subscribed, err = s.userRepository.IsSubscribed(ctx, viewerID, recipe.AuthorID); err != nil {
				return domain.RecipeResponse{}, err
			}
		}
		res.Author = user.ToUserResponse(recipe.Author, subscribed)
	}

	if anonymous {
		return res, nil
	}

	if res.IsFavorited, err = s.recipeRepository.IsFavorited(ctx, viewerID, recipe.ID); err != nil {
		return domain.RecipeResponse{}, err
	}
	if res.IsInShoppingCart, err = s.recipeRepository.IsInShoppingCart(ctx, viewerID, recipe.ID); err != nil {
		return domain.RecipeResponse{}, err
	}
	return res, nil
}

func toQuantities(items []domain.IngredientAmountRequest) ([]entities.IngredientQuantity, error) {
	quantities := make([]entities.IngredientQuantity, 0, len(items))
	for _, item := range items {
		id, err := uuid.Parse(item.ID)
		if err != nil {
			return nil, domain.NewValidationError("ingredients", domain.ErrInvalidFormat,
				fmt.Sprintf("ingredient id %q is not a valid id", item.ID))
		}
		quantities = append(quantities, entities.IngredientQuantity{IngredientID: id, Amount: item.Amount})
	}
	return quantities, nil
}

func toTagIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, domain.NewValidationError("tags", domain.ErrInvalidFormat,
				fmt.Sprintf("tag id %q is not a valid id", r))
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func toRecipeShort(recipe *entities.Recipe) domain.RecipeShortResponse {
	return domain.RecipeShortResponse{
		ID:          recipe.ID.String(),
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}
