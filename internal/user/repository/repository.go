package repository

import (
	"context"
	"errors"

	"github.com/inkwellhq/inkwell/internal/user/domain"
)

// Repository owns identity records. Create assigns the identifier; users are
// immutable afterwards and never deleted.
type Repository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id domain.UserID) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
}

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)
