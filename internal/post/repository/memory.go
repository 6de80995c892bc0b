package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/inkwellhq/inkwell/internal/common/clock"
	commoncrypto "github.com/inkwellhq/inkwell/internal/common/crypto"
	"github.com/inkwellhq/inkwell/internal/post/domain"
	userdomain "github.com/inkwellhq/inkwell/internal/user/domain"
)

// AuthorResolver looks up post authors for joined views.
type AuthorResolver interface {
	FindByID(ctx context.Context, id userdomain.UserID) (userdomain.User, error)
}

// MemoryRepository keeps posts in a mutex-guarded map. Mutations serialize on
// the write lock; joined reads snapshot under the read lock and resolve
// authors afterwards, so no store lock is held across the identity lookup.
type MemoryRepository struct {
	mu    sync.RWMutex
	posts map[domain.PostID]domain.Post

	authors     AuthorResolver
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
}

func NewMemoryRepository(authors AuthorResolver, idGenerator commoncrypto.IDGenerator, clk clock.Clock) *MemoryRepository {
	return &MemoryRepository{
		posts:       make(map[domain.PostID]domain.Post),
		authors:     authors,
		idGenerator: idGenerator,
		clock:       clk,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, draft domain.Draft, authorID userdomain.UserID) (domain.Post, error) {
	id, err := r.idGenerator.NewID()
	if err != nil {
		return domain.Post{}, fmt.Errorf("failed to generate post id: %w", err)
	}

	now := r.clock.Now()
	post := domain.Post{
		ID:         domain.PostID(id),
		AuthorID:   authorID,
		Title:      draft.Title,
		Content:    draft.Content,
		Excerpt:    draft.Excerpt,
		CoverImage: draft.CoverImage,
		Category:   draft.Category,
		Tags:       append([]string(nil), draft.Tags...),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	r.mu.Lock()
	r.posts[post.ID] = post
	r.mu.Unlock()

	return post, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id domain.PostID) (domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return domain.Post{}, ErrPostNotFound
	}
	return post, nil
}

func (r *MemoryRepository) FindWithAuthor(ctx context.Context, id domain.PostID) (domain.PostWithAuthor, error) {
	post, err := r.FindByID(ctx, id)
	if err != nil {
		return domain.PostWithAuthor{}, err
	}

	author, err := r.authors.FindByID(ctx, post.AuthorID)
	if err != nil {
		// A dangling author reference reads as absence, not corruption.
		return domain.PostWithAuthor{}, ErrPostNotFound
	}

	return domain.PostWithAuthor{Post: post, Author: author.Profile()}, nil
}

func (r *MemoryRepository) ListAll(ctx context.Context) ([]domain.PostWithAuthor, error) {
	snapshot := r.snapshot(nil)

	joined := make([]domain.PostWithAuthor, 0, len(snapshot))
	for _, post := range snapshot {
		author, err := r.authors.FindByID(ctx, post.AuthorID)
		if err != nil {
			// Posts whose author no longer resolves are omitted from the feed.
			continue
		}
		joined = append(joined, domain.PostWithAuthor{Post: post, Author: author.Profile()})
	}

	sortNewestFirst(joined)
	return joined, nil
}

func (r *MemoryRepository) ListByAuthor(ctx context.Context, authorID userdomain.UserID) ([]domain.PostWithAuthor, error) {
	author, err := r.authors.FindByID(ctx, authorID)
	if err != nil {
		return []domain.PostWithAuthor{}, nil
	}

	snapshot := r.snapshot(func(p domain.Post) bool { return p.AuthorID == authorID })

	joined := make([]domain.PostWithAuthor, 0, len(snapshot))
	for _, post := range snapshot {
		joined = append(joined, domain.PostWithAuthor{Post: post, Author: author.Profile()})
	}

	sortNewestFirst(joined)
	return joined, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id domain.PostID, patch domain.Patch) (domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.posts[id]
	if !ok {
		return domain.Post{}, ErrPostNotFound
	}

	updated := patch.Apply(existing)
	updated.UpdatedAt = r.clock.Now()
	r.posts[id] = updated

	return updated, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id domain.PostID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return false, nil
	}
	delete(r.posts, id)
	return true, nil
}

func (r *MemoryRepository) snapshot(keep func(domain.Post) bool) []domain.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Post, 0, len(r.posts))
	for _, post := range r.posts {
		if keep == nil || keep(post) {
			out = append(out, post)
		}
	}
	return out
}

// sortNewestFirst orders by creation time descending. The ID tiebreak keeps
// the ordering deterministic for posts created at the same instant.
func sortNewestFirst(posts []domain.PostWithAuthor) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID < posts[j].ID
	})
}
