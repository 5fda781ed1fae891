package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody = Error("invalid request body")
	ErrInvalidRequest     = Error("invalid request")
	ErrInternal           = Error("something went wrong")
	ErrTooManyRequests    = Error("too many requests")
	ErrRouteNotFound      = Error("page not found")
	ErrRequestTooLarge    = Error("request body is too large")

	ErrUserAlreadyExists = Error("email has already been taken")
	ErrUserNotFound      = Error("user not found")
	ErrWrongPassword     = Error("invalid email or password")
	ErrInvalidEmail      = Error("email is invalid")
	ErrInvalidPassword   = Error("password is too short (minimum is 6 characters)")
	ErrPasswordMismatch  = Error("password confirmation doesn't match password")
	ErrUnauthorized      = Error("you need to sign in or sign up before continuing")
	ErrInvalidToken      = Error("invalid token")
	ErrTokenRevoked      = Error("token has been revoked")

	ErrGramNotFound       = Error("gram not found")
	ErrForbidden          = Error("you are not allowed to do that")
	ErrMessageBlank       = Error("message can't be blank")
	ErrMessageTooLong     = Error("message is too long")
	ErrInvalidPictureType = Error("picture must be a jpeg, png, gif or webp image")
	ErrPictureTooLarge    = Error("picture is too large")
	ErrUnableToUploadFile = Error("unable to upload picture")
	ErrCommentBlank       = Error("comment can't be blank")
)

var validation = map[Error]struct{}{
	ErrUserAlreadyExists:  {},
	ErrInvalidEmail:       {},
	ErrInvalidPassword:    {},
	ErrPasswordMismatch:   {},
	ErrMessageBlank:       {},
	ErrMessageTooLong:     {},
	ErrInvalidPictureType: {},
	ErrPictureTooLarge:    {},
	ErrCommentBlank:       {},
}

// IsValidation reports whether err is a user input error that should be shown next to the form.
func IsValidation(err error) bool {
	e, ok := err.(Error)
	if !ok {
		return false
	}
	_, ok = validation[e]
	return ok
}
