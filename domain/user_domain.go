package domain

import "fmt"

var (
	MessageSuccessRegister         = "user registered successfully"
	MessageSuccessLogin            = "login successful"
	MessageSuccessGetUser          = "success get user"
	MessageSuccessGetUsers         = "success get users"
	MessageSuccessSetPassword      = "password changed successfully"
	MessageSuccessSubscribe        = "subscribed successfully"
	MessageSuccessUnsubscribe      = "unsubscribed successfully"
	MessageSuccessGetSubscriptions = "success get subscriptions"

	MessageFailedRegister         = "failed to register user"
	MessageFailedLogin            = "failed to login"
	MessageFailedGetUser          = "failed to get user"
	MessageFailedGetUsers         = "failed to get users"
	MessageFailedSetPassword      = "failed to change password"
	MessageFailedSubscribe        = "failed to subscribe"
	MessageFailedUnsubscribe      = "failed to unsubscribe"
	MessageFailedGetSubscriptions = "failed to get subscriptions"

	ErrUserNotFound         = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrEmailExists          = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrUsernameExists       = fmt.Errorf("%w: username already taken", ErrConflict)
	ErrInvalidCredentials   = fmt.Errorf("%w: invalid email or password", ErrValidation)
	ErrWrongCurrentPassword = fmt.Errorf("%w: current password is wrong", ErrValidation)
	ErrSubscriptionExists   = fmt.Errorf("%w: already subscribed to this author", ErrConflict)
	ErrSubscriptionNotFound = fmt.Errorf("%w: not subscribed to this author", ErrNotFound)
	ErrSelfSubscription     = NewValidationError("author", ErrSelfReference, "cannot subscribe to yourself")
)

type (
	RegisterRequest struct {
		Email     string `json:"email" validate:"required,email,max=254"`
		Username  string `json:"username" validate:"required,max=150,username"`
		FirstName string `json:"first_name" validate:"required,max=150"`
		LastName  string `json:"last_name" validate:"required,max=150"`
		Password  string `json:"password" validate:"required,min=8,max=150"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		AuthToken string `json:"auth_token"`
	}

	SetPasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=8,max=150"`
	}

	UserResponse struct {
		ID           string `json:"id"`
		Email        string `json:"email"`
		Username     string `json:"username"`
		FirstName    string `json:"first_name"`
		LastName     string `json:"last_name"`
		IsSubscribed bool   `json:"is_subscribed"`
	}

	UserListResponse struct {
		Users      []UserResponse `json:"users"`
		Pagination Pagination     `json:"pagination"`
	}

	SubscriptionResponse struct {
		UserResponse
		Recipes      []RecipeShortResponse `json:"recipes"`
		RecipesCount int64                 `json:"recipes_count"`
	}

	SubscriptionListResponse struct {
		Authors    []SubscriptionResponse `json:"authors"`
		Pagination Pagination             `json:"pagination"`
	}
)
