package handlers

import (
	"grammable/internal/models"
	"grammable/internal/msgs"
	"grammable/internal/services"
	"grammable/internal/utils"
	"grammable/internal/web"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type AuthHandler struct {
	authService  *services.AuthenticationService
	secureCookie bool
}

func NewAuthHandler(authService *services.AuthenticationService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

// SignUp godoc
// @Summary      Registration form
// @Tags         accounts
// @Produce      html
// @Success      200
// @Router       /users/sign_up [get]
func (ah *AuthHandler) SignUp(ctx *gin.Context) {
	render(ctx, http.StatusOK, web.SignUp(newPage(ctx, "Sign up", nil), ""), nil, nil)
}

// Register godoc
// @Summary      Register a new account
// @Description  Creates the account and signs it in
// @Tags         accounts
// @Accept       json,x-www-form-urlencoded
// @Produce      json,html
// @Param        body  body      models.RegisterRequestBody  true  "Registration"
// @Success      302   {object}  models.Response{data=models.LoginResponse}
// @Failure      400   {object}  models.Response
// @Failure      422   {object}  models.Response
// @Router       /users [post]
func (ah *AuthHandler) Register(ctx *gin.Context) {
	var body models.RegisterRequestBody
	if err := ctx.ShouldBind(&body); err != nil {
		log.WithError(err).Debug("Error registration data binding")
		renderError(ctx, []error{bindError(err)})
		return
	}

	user, errors := ah.authService.Register(&body)
	if len(errors) > 0 {
		render(ctx, httpStatus(errors), web.SignUp(newPage(ctx, "Sign up", errors), body.Email), nil, errors)
		return
	}

	session, errors := ah.authService.IssueToken(user)
	if len(errors) > 0 {
		renderError(ctx, errors)
		return
	}
	ah.setSessionCookie(ctx, session.Token)
	redirect(ctx, RootPath, msgs.MsgSignedUp, session)
}

// SignIn godoc
// @Summary      Sign in form
// @Tags         accounts
// @Produce      html
// @Success      200
// @Router       /users/sign_in [get]
func (ah *AuthHandler) SignIn(ctx *gin.Context) {
	render(ctx, http.StatusOK, web.SignIn(newPage(ctx, "Sign in", nil), ""), nil, nil)
}

// Login godoc
// @Summary      Login user to account
// @Description  Issues a session token, stored in the jwt_token cookie and returned in the body
// @Tags         accounts
// @Accept       json,x-www-form-urlencoded
// @Produce      json,html
// @Param        body  body      models.LoginRequestBody  true  "Credentials"
// @Success      302   {object}  models.Response{data=models.LoginResponse}
// @Failure      400   {object}  models.Response
// @Failure      401   {object}  models.Response
// @Router       /users/sign_in [post]
func (ah *AuthHandler) Login(ctx *gin.Context) {
	var loginData models.LoginRequestBody
	if err := ctx.ShouldBind(&loginData); err != nil {
		log.WithError(err).Debug("Error login data binding")
		renderError(ctx, []error{bindError(err)})
		return
	}

	session, errors := ah.authService.Login(&loginData)
	if len(errors) > 0 {
		render(ctx, httpStatus(errors), web.SignIn(newPage(ctx, "Sign in", errors), loginData.Email), nil, errors)
		return
	}

	ah.setSessionCookie(ctx, session.Token)
	redirect(ctx, RootPath, msgs.MsgSignedIn, session)
}

// Logout godoc
// @Summary      Sign out
// @Description  Revokes the current session token and clears the cookie
// @Tags         accounts
// @Produce      json,html
// @Success      302  {object}  models.Response
// @Router       /users/sign_out [delete]
func (ah *AuthHandler) Logout(ctx *gin.Context) {
	if err := ah.authService.Logout(ctx.Request.Context(), utils.GetClaimsFromContext(ctx)); err != nil {
		log.WithError(err).Error("Failed to revoke session token")
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(utils.JwtCookieName, "", -1, "/", "", ah.secureCookie, true)
	redirect(ctx, RootPath, msgs.MsgSignedOut, nil)
}

func (ah *AuthHandler) setSessionCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(
		utils.JwtCookieName,
		token,
		int(ah.authService.TokenTTL().Seconds()),
		"/",
		"",
		ah.secureCookie,
		true,
	)
}
