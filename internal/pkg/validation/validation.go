package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperror "eventra/internal/errors"
)

// Validator valida payloads de formulário pelas tags `validate`.
type Validator struct {
	v *validator.Validate
}

// New cria um Validator com required-struct habilitado.
func New() *Validator {
	return &Validator{v: validator.New(validator.WithRequiredStructEnabled())}
}

// Struct valida s e traduz as falhas em um único ValidationError legível.
func (val *Validator) Struct(s interface{}) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		messages := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			messages = append(messages, message(fe))
		}
		return apperror.NewValidationError(strings.Join(messages, "; "))
	}
	return apperror.NewInternalError("validation failed", err)
}

// message reproduz as mensagens exibidas nos formulários de login e cadastro.
func message(fe validator.FieldError) string {
	switch fe.Field() + "." + fe.Tag() {
	case "Name.required":
		return "Full name is required"
	case "Email.required":
		return "Email is required"
	case "Email.email":
		return "Email format is invalid"
	case "Password.required":
		return "Password is required"
	case "Password.min":
		return fmt.Sprintf("Password must be at least %s characters", fe.Param())
	case "ConfirmPassword.eqfield":
		return "Passwords do not match"
	case "Role.required":
		return "Role is required"
	case "AcceptTerms.required":
		return "You must accept the Terms & Conditions"
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}
