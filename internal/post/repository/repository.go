package repository

import (
	"context"
	"errors"

	"github.com/inkwellhq/inkwell/internal/post/domain"
	userdomain "github.com/inkwellhq/inkwell/internal/user/domain"
)

// Repository owns post records. It is mechanism, not policy: callers
// guarantee the author exists on create and perform ownership checks before
// update and delete.
type Repository interface {
	Create(ctx context.Context, draft domain.Draft, authorID userdomain.UserID) (domain.Post, error)
	FindByID(ctx context.Context, id domain.PostID) (domain.Post, error)
	FindWithAuthor(ctx context.Context, id domain.PostID) (domain.PostWithAuthor, error)
	ListAll(ctx context.Context) ([]domain.PostWithAuthor, error)
	ListByAuthor(ctx context.Context, authorID userdomain.UserID) ([]domain.PostWithAuthor, error)
	Update(ctx context.Context, id domain.PostID, patch domain.Patch) (domain.Post, error)
	Delete(ctx context.Context, id domain.PostID) (bool, error)
}

var ErrPostNotFound = errors.New("post not found")
