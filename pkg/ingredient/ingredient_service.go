package ingredient

import (
	"context"
	"strings"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/authz"
	"Foodgram-Backend/internal/logging"

	"github.com/rs/zerolog"
)

type (
	IngredientService interface {
		GetIngredients(ctx context.Context, namePrefix string) ([]domain.IngredientResponse, error)
		GetIngredient(ctx context.Context, id string) (domain.IngredientResponse, error)
		CreateIngredient(ctx context.Context, requester domain.Requester, req domain.CreateIngredientRequest) (domain.IngredientResponse, error)
		DeleteIngredient(ctx context.Context, requester domain.Requester, id string) error
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
		policy               authz.Policy
		log                  zerolog.Logger
	}
)

func NewIngredientService(ingredientRepository IngredientRepository, policy authz.Policy) IngredientService {
	return &ingredientService{
		ingredientRepository: ingredientRepository,
		policy:               policy,
		log:                  logging.Component("ingredient"),
	}
}

func (s *ingredientService) GetIngredients(ctx context.Context, namePrefix string) ([]domain.IngredientResponse, error) {
	ingredients, err := s.ingredientRepository.GetIngredients(ctx, strings.TrimSpace(namePrefix))
	if err != nil {
		return nil, err
	}

	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		res = append(res, toIngredientResponse(ingredient))
	}
	return res, nil
}

func (s *ingredientService) GetIngredient(ctx context.Context, id string) (domain.IngredientResponse, error) {
	ingredientID, err := domain.ParseID(id, domain.ErrIngredientNotFound)
	if err != nil {
		return domain.IngredientResponse{}, err
	}

	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, ingredientID)
	if err != nil {
		return domain.IngredientResponse{}, err
	}
	return toIngredientResponse(ingredient), nil
}

func (s *ingredientService) CreateIngredient(ctx context.Context, requester domain.Requester, req domain.CreateIngredientRequest) (domain.IngredientResponse, error) {
	if err := s.policy.Authorize(requester, authz.ObjectIngredient, authz.ActionCreate, ""); err != nil {
		return domain.IngredientResponse{}, err
	}

	ingredient := &entities.Ingredient{
		Name:            strings.TrimSpace(req.Name),
		MeasurementUnit: strings.TrimSpace(req.MeasurementUnit),
	}
	if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}

	s.log.Info().Str("ingredient_id", ingredient.ID.String()).Str("name", ingredient.Name).Msg("ingredient created")
	return toIngredientResponse(ingredient), nil
}

func (s *ingredientService) DeleteIngredient(ctx context.Context, requester domain.Requester, id string) error {
	if err := s.policy.Authorize(requester, authz.ObjectIngredient, authz.ActionWrite, ""); err != nil {
		return err
	}

	ingredientID, err := domain.ParseID(id, domain.ErrIngredientNotFound)
	if err != nil {
		return err
	}
	return s.ingredientRepository.DeleteIngredient(ctx, ingredientID)
}

func toIngredientResponse(ingredient *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:              ingredient.ID.String(),
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}
