package service

import (
	commonerrors "github.com/inkwellhq/inkwell/internal/common/errors"
)

var ErrNotPostAuthor = commonerrors.NewDomainError(
	"NOT_POST_AUTHOR",
	commonerrors.CategoryUnauthorized,
	403,
	"you are not the author of this post",
)
