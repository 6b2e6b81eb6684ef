package user

import (
	"context"
	"errors"

	"Foodgram-Backend/domain"
	"Foodgram-Backend/entities"
	"Foodgram-Backend/internal/authz"
	"Foodgram-Backend/internal/logging"
	"Foodgram-Backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, requester domain.Requester) (domain.UserResponse, error)
		GetUser(ctx context.Context, requester domain.Requester, id string) (domain.UserResponse, error)
		GetUsers(ctx context.Context, requester domain.Requester, page, limit int) (domain.UserListResponse, error)
		SetPassword(ctx context.Context, requester domain.Requester, req domain.SetPasswordRequest) error

		Subscribe(ctx context.Context, requester domain.Requester, authorID string, recipesLimit int) (domain.SubscriptionResponse, error)
		Unsubscribe(ctx context.Context, requester domain.Requester, authorID string) error
		GetSubscriptions(ctx context.Context, requester domain.Requester, page, limit, recipesLimit int) (domain.SubscriptionListResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		policy         authz.Policy
		hashCost       int
		log            zerolog.Logger
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, policy authz.Policy) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		policy:         policy,
		hashCost:       bcrypt.DefaultCost,
		log:            logging.Component("user"),
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	if err := s.userRepository.CheckUserExists(ctx, req.Email, req.Username); err != nil {
		return domain.UserResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  string(hash),
		Role:      domain.RoleUser,
	}
	if err := s.userRepository.RegisterUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}

	s.log.Info().Str("user_id", user.ID.String()).Str("username", user.Username).Msg("user registered")
	return ToUserResponse(user, false), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{AuthToken: token}, nil
}

func (s *userService) Me(ctx context.Context, requester domain.Requester) (domain.UserResponse, error) {
	id, err := requester.ID()
	if err != nil {
		return domain.UserResponse{}, err
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return ToUserResponse(user, false), nil
}

func (s *userService) GetUser(ctx context.Context, requester domain.Requester, id string) (domain.UserResponse, error) {
	userID, err := domain.ParseID(id, domain.ErrUserNotFound)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}

	subscribed, err := s.isSubscribed(ctx, requester, user.ID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	return ToUserResponse(user, subscribed), nil
}

func (s *userService) GetUsers(ctx context.Context, requester domain.Requester, page, limit int) (domain.UserListResponse, error) {
	page, limit = domain.NormalizePage(page, limit)

	users, count, err := s.userRepository.GetUsers(ctx, domain.PageOffset(page, limit), limit)
	if err != nil {
		return domain.UserListResponse{}, err
	}

	res := domain.UserListResponse{
		Users:      make([]domain.UserResponse, 0, len(users)),
		Pagination: domain.NewPagination(page, limit, count),
	}
	for _, user := range users {
		subscribed, err := s.isSubscribed(ctx, requester, user.ID)
		if err != nil {
			return domain.UserListResponse{}, err
		}
		res.Users = append(res.Users, ToUserResponse(user, subscribed))
	}
	return res, nil
}

func (s *userService) SetPassword(ctx context.Context, requester domain.Requester, req domain.SetPasswordRequest) error {
	id, err := requester.ID()
	if err != nil {
		return err
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrWrongCurrentPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.hashCost)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, id, string(hash))
}

func (s *userService) Subscribe(ctx context.Context, requester domain.Requester, authorID string, recipesLimit int) (domain.SubscriptionResponse, error) {
	followerID, err := s.authorizeMembership(requester)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	authorUUID, err := domain.ParseID(authorID, domain.ErrUserNotFound)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	author, err := s.userRepository.GetUserByID(ctx, authorUUID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	if author.ID == followerID {
		return domain.SubscriptionResponse{}, domain.ErrSelfSubscription
	}

	subscribed, err := s.userRepository.IsSubscribed(ctx, followerID, author.ID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}
	if subscribed {
		return domain.SubscriptionResponse{}, domain.ErrSubscriptionExists
	}

	if err := s.userRepository.CreateSubscription(ctx, followerID, author.ID); err != nil {
		return domain.SubscriptionResponse{}, err
	}

	s.log.Info().Str("user_id", followerID.String()).Str("author_id", author.ID.String()).Msg("subscribed")
	return s.subscriptionView(ctx, author, recipesLimit)
}

func (s *userService) Unsubscribe(ctx context.Context, requester domain.Requester, authorID string) error {
	followerID, err := s.authorizeMembership(requester)
	if err != nil {
		return err
	}

	authorUUID, err := domain.ParseID(authorID, domain.ErrUserNotFound)
	if err != nil {
		return err
	}

	if _, err := s.userRepository.GetUserByID(ctx, authorUUID); err != nil {
		return err
	}

	return s.userRepository.DeleteSubscription(ctx, followerID, authorUUID)
}

func (s *userService) GetSubscriptions(ctx context.Context, requester domain.Requester, page, limit, recipesLimit int) (domain.SubscriptionListResponse, error) {
	followerID, err := s.authorizeMembership(requester)
	if err != nil {
		return domain.SubscriptionListResponse{}, err
	}

	page, limit = domain.NormalizePage(page, limit)

	authors, count, err := s.userRepository.GetSubscribedAuthors(ctx, followerID, domain.PageOffset(page, limit), limit)
	if err != nil {
		return domain.SubscriptionListResponse{}, err
	}

	res := domain.SubscriptionListResponse{
		Authors:    make([]domain.SubscriptionResponse, 0, len(authors)),
		Pagination: domain.NewPagination(page, limit, count),
	}
	for _, author := range authors {
		view, err := s.subscriptionView(ctx, author, recipesLimit)
		if err != nil {
			return domain.SubscriptionListResponse{}, err
		}
		res.Authors = append(res.Authors, view)
	}
	return res, nil
}

// authorizeMembership checks that the requester may manage their own
// subscriptions and returns their id.
func (s *userService) authorizeMembership(requester domain.Requester) (uuid.UUID, error) {
	if err := s.policy.Authorize(requester, authz.ObjectMembership, authz.ActionWrite, requester.UserID); err != nil {
		return uuid.Nil, err
	}
	return requester.ID()
}

// subscriptionView renders an author the requester follows. A negative
// recipesLimit includes every recipe.
func (s *userService) subscriptionView(ctx context.Context, author *entities.User, recipesLimit int) (domain.SubscriptionResponse, error) {
	recipes, err := s.userRepository.GetAuthorRecipes(ctx, author.ID, recipesLimit)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	count, err := s.userRepository.CountAuthorRecipes(ctx, author.ID)
	if err != nil {
		return domain.SubscriptionResponse{}, err
	}

	view := domain.SubscriptionResponse{
		UserResponse: ToUserResponse(author, true),
		Recipes:      make([]domain.RecipeShortResponse, 0, len(recipes)),
		RecipesCount: count,
	}
	for _, recipe := range recipes {
		view.Recipes = append(view.Recipes, domain.RecipeShortResponse{
			ID:          recipe.ID.String(),
			Name:        recipe.Name,
			Image:       recipe.Image,
			CookingTime: recipe.CookingTime,
		})
	}
	return view, nil
}

func (s *userService) isSubscribed(ctx context.Context, requester domain.Requester, authorID uuid.UUID) (bool, error) {
	followerID, err := requester.ID()
	if err != nil {
		return false, nil
	}
	return s.userRepository.IsSubscribed(ctx, followerID, authorID)
}

func ToUserResponse(user *entities.User, subscribed bool) domain.UserResponse {
	return domain.UserResponse{
		ID:           user.ID.String(),
		Email:        user.Email,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsSubscribed: subscribed,
	}
}
