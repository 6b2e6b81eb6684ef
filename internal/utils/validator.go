package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	Validate *validator.Validate

	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

func InitValidator() {
	if Validate != nil {
		return
	}
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("username", validateUsername)
	_ = v.RegisterValidation("slug", validateSlug)
	Validate = v
}

// "me" is reserved for the /users/me route.
func validateUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return usernamePattern.MatchString(value) && !strings.EqualFold(value, "me")
}

func validateSlug(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}
