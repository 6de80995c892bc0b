package service

import (
	commonerrors "github.com/inkwellhq/inkwell/internal/common/errors"
)

var (
	ErrInvalidCredentials = commonerrors.NewDomainError(
		"INVALID_CREDENTIALS",
		commonerrors.CategoryUnauthorized,
		401,
		"invalid username or password",
	)

	ErrUsernameTaken = commonerrors.NewDomainError(
		"USERNAME_TAKEN",
		commonerrors.CategoryConflict,
		409,
		"username already exists",
	)

	ErrValidationUsernameLength = commonerrors.NewDomainError(
		"VALIDATION_USERNAME_LENGTH",
		commonerrors.CategoryValidation,
		400,
		"username must be between 3 and 32 characters",
	)

	ErrValidationUsernameChars = commonerrors.NewDomainError(
		"VALIDATION_USERNAME_CHARS",
		commonerrors.CategoryValidation,
		400,
		"username may only contain letters, digits, underscores and hyphens",
	)

	ErrValidationPasswordLength = commonerrors.NewDomainError(
		"VALIDATION_PASSWORD_LENGTH",
		commonerrors.CategoryValidation,
		400,
		"password must be between 8 and 72 characters",
	)

	ErrValidationPasswordWeak = commonerrors.NewDomainError(
		"VALIDATION_PASSWORD_WEAK",
		commonerrors.CategoryValidation,
		400,
		"password must contain at least one letter and one digit",
	)
)
