package service

import (
	commonerrors "github.com/inkwellhq/inkwell/internal/common/errors"
)

var (
	ErrEmptyContent = commonerrors.NewDomainError(
		"ASSIST_EMPTY_CONTENT",
		commonerrors.CategoryValidation,
		400,
		"content is required",
	)

	ErrContentTooLong = commonerrors.NewDomainError(
		"ASSIST_CONTENT_TOO_LONG",
		commonerrors.CategoryValidation,
		400,
		"content exceeds the maximum length",
	)

	ErrUnknownAction = commonerrors.NewDomainError(
		"ASSIST_UNKNOWN_ACTION",
		commonerrors.CategoryValidation,
		400,
		"action must be one of: improve, expand, summarize",
	)

	// ErrAssistanceFailed is deliberately opaque: upstream details go to the
	// log, never to the caller.
	ErrAssistanceFailed = commonerrors.NewDomainError(
		"ASSISTANCE_FAILED",
		commonerrors.CategoryExternal,
		502,
		"assistance failed, try again later",
	)
)
