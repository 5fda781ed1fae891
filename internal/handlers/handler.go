package handlers

import (
	"errors"
	"grammable/internal/errs"
	"grammable/internal/models"
	"grammable/internal/msgs"
	"grammable/internal/utils"
	"grammable/internal/web"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const (
	RootPath   = "/"
	SignInPath = "/users/sign_in"
)

func wantsJSON(ctx *gin.Context) bool {
	return ctx.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// render writes the JSON envelope for JSON clients and the page component for everyone else.
func render(ctx *gin.Context, status int, component templ.Component, payload any, errors []error) {
	if wantsJSON(ctx) {
		ctx.JSON(status, newResponse(status, "", payload, errors))
		return
	}
	ctx.HTML(status, "", component)
}

func redirect(ctx *gin.Context, location string, message string, payload any) {
	if wantsJSON(ctx) {
		ctx.Header("Location", location)
		ctx.JSON(http.StatusFound, newResponse(http.StatusFound, message, payload, nil))
		return
	}
	ctx.Redirect(http.StatusFound, location)
}

func renderError(ctx *gin.Context, errors []error) {
	status := httpStatus(errors)
	public := publicErrors(errors)
	render(ctx, status, web.ErrorPage(newPage(ctx, http.StatusText(status), public), status), nil, public)
}

func newResponse(status int, message string, payload any, errors []error) models.Response {
	success := status < http.StatusBadRequest && len(errors) == 0
	if message == "" {
		message = msgs.MsgOperationSuccessful
		if !success {
			message = msgs.MsgOperationFailed
		}
	}
	return models.Response{
		Success: success,
		Message: message,
		Errors:  errors,
		Data:    payload,
	}
}

func newPage(ctx *gin.Context, title string, errors []error) web.Page {
	userID := utils.GetUserIdFromContext(ctx)
	return web.Page{
		Title:    title,
		Errors:   errors,
		SignedIn: userID != 0,
		UserID:   userID,
		Email:    ctx.GetString("user_email"),
	}
}

// httpStatus picks the status for a set of service errors. Lookup failures win over
// authorization failures, which win over validation failures.
func httpStatus(errors []error) int {
	switch {
	case containsAny(errors, errs.ErrGramNotFound, errs.ErrUserNotFound, errs.ErrRouteNotFound):
		return http.StatusNotFound
	case containsAny(errors, errs.ErrForbidden):
		return http.StatusForbidden
	case containsAny(errors, errs.ErrUnauthorized, errs.ErrInvalidToken, errs.ErrTokenRevoked, errs.ErrWrongPassword):
		return http.StatusUnauthorized
	case containsAny(errors, errs.ErrTooManyRequests):
		return http.StatusTooManyRequests
	case containsAny(errors, errs.ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge
	case containsAny(errors, errs.ErrInvalidRequestBody, errs.ErrInvalidRequest):
		return http.StatusBadRequest
	}
	if len(errors) > 0 && allValidation(errors) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func containsAny(list []error, targets ...error) bool {
	for _, err := range list {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
	}
	return false
}

func allValidation(list []error) bool {
	for _, err := range list {
		if !errs.IsValidation(err) {
			return false
		}
	}
	return true
}

// bindError tells an oversized body apart from a malformed one.
func bindError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errs.ErrRequestTooLarge
	}
	return errs.ErrInvalidRequestBody
}

// publicErrors hides anything that is not one of our own error values.
func publicErrors(list []error) []error {
	result := make([]error, 0, len(list))
	for _, err := range list {
		var known errs.Error
		if errors.As(err, &known) {
			result = append(result, known)
			continue
		}
		log.WithError(err).Error("Unexpected error")
		result = append(result, errs.ErrInternal)
	}
	return result
}
