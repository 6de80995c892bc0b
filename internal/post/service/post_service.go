package service

import (
	"context"
	"errors"

	commonerrors "github.com/inkwellhq/inkwell/internal/common/errors"
	"github.com/inkwellhq/inkwell/internal/common/logger"
	"github.com/inkwellhq/inkwell/internal/observability/metrics"
	"github.com/inkwellhq/inkwell/internal/post/domain"
	postrepo "github.com/inkwellhq/inkwell/internal/post/repository"
	userdomain "github.com/inkwellhq/inkwell/internal/user/domain"
)

// PostService is the policy layer over the content repository: it owns the
// ownership checks the repository deliberately does not perform.
type PostService struct {
	repo postrepo.Repository
	log  *logger.Logger
}

func NewPostService(repo postrepo.Repository, log *logger.Logger) *PostService {
	return &PostService{repo: repo, log: log}
}

func (s *PostService) Create(ctx context.Context, authorID userdomain.UserID, draft domain.Draft) (domain.Post, error) {
	post, err := s.repo.Create(ctx, draft, authorID)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"author_id": string(authorID),
			"action":    "post_create_failed",
		}).Errorf("post create failed: %v", err)
		return domain.Post{}, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.PostsCreated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"post_id":   string(post.ID),
		"author_id": string(authorID),
		"action":    "post_created",
	}).Info("post created")

	return post, nil
}

func (s *PostService) Feed(ctx context.Context) ([]domain.PostWithAuthor, error) {
	metrics.FeedRequestsTotal.WithLabelValues("global").Inc()

	posts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, commonerrors.ErrInternalError.WithCause(err)
	}
	return posts, nil
}

func (s *PostService) FeedByAuthor(ctx context.Context, authorID userdomain.UserID) ([]domain.PostWithAuthor, error) {
	metrics.FeedRequestsTotal.WithLabelValues("author").Inc()

	posts, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, commonerrors.ErrInternalError.WithCause(err)
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, id domain.PostID) (domain.PostWithAuthor, error) {
	post, err := s.repo.FindWithAuthor(ctx, id)
	if err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			return domain.PostWithAuthor{}, commonerrors.ErrPostNotFound
		}
		return domain.PostWithAuthor{}, commonerrors.ErrInternalError.WithCause(err)
	}
	return post, nil
}

func (s *PostService) Update(ctx context.Context, callerID userdomain.UserID, id domain.PostID, patch domain.Patch) (domain.Post, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			return domain.Post{}, commonerrors.ErrPostNotFound
		}
		return domain.Post{}, commonerrors.ErrInternalError.WithCause(err)
	}

	if existing.AuthorID != callerID {
		s.log.WithFields(ctx, logger.Fields{
			"post_id":   string(id),
			"caller_id": string(callerID),
			"action":    "post_update_forbidden",
		}).Warn("post update rejected: caller is not the author")
		return domain.Post{}, ErrNotPostAuthor
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			return domain.Post{}, commonerrors.ErrPostNotFound
		}
		return domain.Post{}, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.PostsUpdated.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"post_id": string(id),
		"action":  "post_updated",
	}).Info("post updated")

	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, callerID userdomain.UserID, id domain.PostID) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, postrepo.ErrPostNotFound) {
			return commonerrors.ErrPostNotFound
		}
		return commonerrors.ErrInternalError.WithCause(err)
	}

	if existing.AuthorID != callerID {
		s.log.WithFields(ctx, logger.Fields{
			"post_id":   string(id),
			"caller_id": string(callerID),
			"action":    "post_delete_forbidden",
		}).Warn("post delete rejected: caller is not the author")
		return ErrNotPostAuthor
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return commonerrors.ErrInternalError.WithCause(err)
	}
	if !deleted {
		return commonerrors.ErrPostNotFound
	}

	metrics.PostsDeleted.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"post_id": string(id),
		"action":  "post_deleted",
	}).Info("post deleted")

	return nil
}
