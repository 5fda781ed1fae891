package validators

import (
	"grammable/internal/errs"
	"grammable/internal/models"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLength = 6

func ValidateRegistration(body *models.RegisterRequestBody) []error {
	var errors []error
	if body == nil {
		errors = append(errors, errs.ErrInvalidRequestBody)
		return errors
	}

	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	if !ValidateEmail(body.Email) {
		errors = append(errors, errs.ErrInvalidEmail)
	}

	if !ValidatePassword(body.Password) {
		errors = append(errors, errs.ErrInvalidPassword)
	}

	if body.Password != body.PasswordConfirmation {
		errors = append(errors, errs.ErrPasswordMismatch)
	}
	return errors
}

func ValidateEmail(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}

func ValidatePassword(password string) bool {
	return len(password) >= minPasswordLength
}
