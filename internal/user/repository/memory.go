package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/inkwellhq/inkwell/internal/common/clock"
	commoncrypto "github.com/inkwellhq/inkwell/internal/common/crypto"
	"github.com/inkwellhq/inkwell/internal/user/domain"
)

// MemoryRepository keeps users in mutex-guarded maps. The username index is
// case-sensitive and enforced atomically with the insert, so a duplicate
// registration never mutates state.
type MemoryRepository struct {
	mu         sync.RWMutex
	byID       map[domain.UserID]domain.User
	byUsername map[string]domain.UserID

	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
}

func NewMemoryRepository(idGenerator commoncrypto.IDGenerator, clk clock.Clock) *MemoryRepository {
	return &MemoryRepository{
		byID:        make(map[domain.UserID]domain.User),
		byUsername:  make(map[string]domain.UserID),
		idGenerator: idGenerator,
		clock:       clk,
	}
}

func (r *MemoryRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	id, err := r.idGenerator.NewID()
	if err != nil {
		return domain.User{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[user.Username]; taken {
		return domain.User{}, ErrUsernameAlreadyExists
	}

	user.ID = domain.UserID(id)
	user.CreatedAt = r.clock.Now()

	r.byID[user.ID] = user
	r.byUsername[user.Username] = user.ID

	return user, nil
}

func (r *MemoryRepository) FindByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return user, nil
}

func (r *MemoryRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	return r.byID[id], nil
}
