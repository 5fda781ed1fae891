package validators

import (
	"errors"
	"grammable/internal/errs"
	"grammable/internal/models"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateGram trims the message in place; a whitespace-only message is blank.
func ValidateGram(form *models.GramForm) []error {
	if form == nil {
		return []error{errs.ErrMessageBlank}
	}
	form.Message = strings.TrimSpace(form.Message)
	return translate(validate.Struct(form), errs.ErrMessageBlank, errs.ErrMessageTooLong)
}

func ValidateComment(form *models.CommentForm) []error {
	if form == nil {
		return []error{errs.ErrCommentBlank}
	}
	form.Message = strings.TrimSpace(form.Message)
	return translate(validate.Struct(form), errs.ErrCommentBlank, errs.ErrMessageTooLong)
}

func translate(err error, blank, tooLong errs.Error) []error {
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []error{errs.ErrInvalidRequest}
	}
	var result []error
	for _, fieldErr := range validationErrors {
		switch fieldErr.Tag() {
		case "required":
			result = append(result, blank)
		case "max":
			result = append(result, tooLong)
		default:
			result = append(result, errs.ErrInvalidRequest)
		}
	}
	return result
}
