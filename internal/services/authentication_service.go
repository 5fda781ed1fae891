package services

import (
	"context"
	"errors"
	"grammable/configs"
	"grammable/internal/errs"
	"grammable/internal/interfaces"
	"grammable/internal/models"
	"grammable/internal/repositories"
	"grammable/internal/utils"
	"grammable/internal/validators"
	"time"

	log "github.com/sirupsen/logrus"
)

type AuthenticationService struct {
	authRepo   *repositories.AuthenticationRepository
	tokenStore interfaces.TokenStore
	config     *configs.Config
}

func NewAuthenticationService(
	authRepo *repositories.AuthenticationRepository,
	tokenStore interfaces.TokenStore,
	config *configs.Config,
) *AuthenticationService {
	return &AuthenticationService{
		authRepo:   authRepo,
		tokenStore: tokenStore,
		config:     config,
	}
}

func (as *AuthenticationService) Register(body *models.RegisterRequestBody) (*models.User, []error) {
	var errors []error
	validationErrs := validators.ValidateRegistration(body)
	if len(validationErrs) > 0 {
		errors = append(errors, validationErrs...)
		return nil, errors
	}
	if as.CheckIfUserExists(body.Email) {
		errors = append(errors, errs.ErrUserAlreadyExists)
		return nil, errors
	}
	password, err := utils.HashPassword(body.Password)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		errors = append(errors, errs.ErrInternal)
		return nil, errors
	}
	return as.authRepo.CreateUser(&models.User{
		Email:        body.Email,
		PasswordHash: password,
	})
}

func (as *AuthenticationService) Login(loginData *models.LoginRequestBody) (*models.LoginResponse, []error) {
	var errors []error

	user, err := as.authRepo.Login(loginData)
	if err != nil {
		errors = append(errors, err...)
		return nil, errors
	}

	return as.IssueToken(user)
}

// IssueToken signs a session token for an already authenticated user.
func (as *AuthenticationService) IssueToken(user *models.User) (*models.LoginResponse, []error) {
	expiresAt := time.Now().Add(time.Duration(as.config.Viper.GetInt("jwt.expiration_time")) * time.Second)
	token, _, jwtErr := utils.CreateJwtToken(user.ID, user.Email, as.jwtKey(), expiresAt)
	if jwtErr != nil {
		log.WithError(jwtErr).Error("Failed to sign jwt")
		return nil, []error{errs.ErrInternal}
	}

	return &models.LoginResponse{
		User:      *user.ToUserResponse(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate verifies the token signature and expiry and rejects revoked sessions.
func (as *AuthenticationService) Authenticate(ctx context.Context, token string) (*models.Claims, error) {
	if token == "" {
		return nil, errs.ErrUnauthorized
	}
	claims, err := utils.VerifyToken(token, as.jwtKey())
	if err != nil {
		return nil, errs.ErrInvalidToken
	}
	if claims.UserID == 0 {
		return nil, errs.ErrInvalidToken
	}
	revoked, err := as.tokenStore.IsRevoked(ctx, claims.RegisteredClaims.ID)
	if err != nil {
		log.WithError(err).Warn("Failed to check token revocation")
		return nil, errs.ErrInternal
	}
	if revoked {
		return nil, errs.ErrTokenRevoked
	}

	// a token outlives its user when the account is removed
	if _, err := as.authRepo.GetUserByID(claims.UserID); err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrInvalidToken
		}
		log.WithError(err).Warn("Failed to load session user")
		return nil, errs.ErrInternal
	}
	return claims, nil
}

func (as *AuthenticationService) Logout(ctx context.Context, claims *models.Claims) error {
	if claims == nil {
		return nil
	}
	var ttl time.Duration
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return as.tokenStore.Revoke(ctx, claims.RegisteredClaims.ID, ttl)
}

func (as *AuthenticationService) CheckIfUserExists(email string) bool {
	return as.authRepo.CheckIfUserExists(email) != nil
}

func (as *AuthenticationService) TokenTTL() time.Duration {
	return time.Duration(as.config.Viper.GetInt("jwt.expiration_time")) * time.Second
}

func (as *AuthenticationService) jwtKey() []byte {
	return []byte(as.config.Viper.GetString("jwt.secret"))
}
