package service

import (
	"context"
	"errors"

	commoncrypto "github.com/inkwellhq/inkwell/internal/common/crypto"
	commonerrors "github.com/inkwellhq/inkwell/internal/common/errors"
	"github.com/inkwellhq/inkwell/internal/common/logger"
	"github.com/inkwellhq/inkwell/internal/observability/metrics"
	userdomain "github.com/inkwellhq/inkwell/internal/user/domain"
	userrepo "github.com/inkwellhq/inkwell/internal/user/repository"
)

type AuthService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	tokenIssuer *TokenIssuer
	log         *logger.Logger
}

func NewAuthService(
	repo userrepo.Repository,
	hasher commoncrypto.PasswordHasher,
	tokenIssuer *TokenIssuer,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:        repo,
		hasher:      hasher,
		tokenIssuer: tokenIssuer,
		log:         log,
	}
}

type RegisterInput struct {
	Username    string
	Password    string
	DisplayName string
	Bio         string
	AvatarURL   string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token string
	User  userdomain.Profile
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "register_attempt",
	}).Info("register attempt")

	if err := validateCredentials(input.Username, input.Password); err != nil {
		metrics.RegistrationsTotal.WithLabelValues("validation_failed").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return AuthResult{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.Username
	}

	user, err := s.repo.Create(ctx, userdomain.User{
		Username:     input.Username,
		DisplayName:  displayName,
		PasswordHash: hash,
		Bio:          input.Bio,
		AvatarURL:    input.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, userrepo.ErrUsernameAlreadyExists) {
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "register_username_exists",
			}).Warn("register failed: username already exists")
			return AuthResult{}, ErrUsernameTaken
		}
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "register_create_failed",
		}).Errorf("register failed: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	token, err := s.tokenIssuer.IssueAccessToken(user)
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  string(user.ID),
			"action":   "register_token_issue_failed",
		}).Errorf("register failed: token issue error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "register_success",
	}).Info("register success")

	return AuthResult{Token: token, User: user.Profile()}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	if err := validateCredentials(input.Username, input.Password); err != nil {
		metrics.LoginsTotal.WithLabelValues("validation_failed").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_validation_failed",
		}).Warnf("login validation failed: %v", err)
		return AuthResult{}, err
	}

	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			s.log.WithFields(ctx, logger.Fields{
				"username": input.Username,
				"action":   "login_user_not_found",
			}).Warn("login failed: not found")
			return AuthResult{}, ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"action":   "login_invalid_password",
		}).Warn("login failed: invalid password")
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.tokenIssuer.IssueAccessToken(user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"username": input.Username,
			"user_id":  string(user.ID),
			"action":   "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "login_success",
	}).Info("login success")

	return AuthResult{Token: token, User: user.Profile()}, nil
}

// Profile resolves the public profile of an authenticated user.
func (s *AuthService) Profile(ctx context.Context, id userdomain.UserID) (userdomain.Profile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return userdomain.Profile{}, commonerrors.ErrUserNotFound
		}
		return userdomain.Profile{}, commonerrors.ErrInternalError.WithCause(err)
	}
	return user.Profile(), nil
}
