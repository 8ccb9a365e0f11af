package utils

import (
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

// InitValidator registers the custom validation rules with gin's binding
// engine: "password" for account credentials and "intensity" for the
// exercise intensity answer.
func InitValidator() {
	Validate = validator.New()
	Validate.RegisterValidation("password", ValidatePasswordRule)
	Validate.RegisterValidation("intensity", ValidateIntensityRule)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("password", ValidatePasswordRule)
		v.RegisterValidation("intensity", ValidateIntensityRule)
	}
}

func ValidatePasswordRule(fl validator.FieldLevel) bool {
	return ValidatePassword(fl.Field().String())
}

// ValidateIntensityRule accepts the empty string (intensity is optional at
// the binding layer; the calculator enforces presence when exercise days
// are reported) or one of the three known levels.
func ValidateIntensityRule(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "light", "moderate", "intense":
		return true
	}
	return false
}

// ValidatePassword requires at least 6 characters with at least one number
// and one special character.
func ValidatePassword(password string) bool {
	if len(password) < 6 {
		return false
	}

	hasNumber := false
	hasSpecial := false
	for _, char := range password {
		switch {
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}
	return hasNumber && hasSpecial
}
