package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/inkwellhq/inkwell/internal/common/clock"
	commoncrypto "github.com/inkwellhq/inkwell/internal/common/crypto"
	"github.com/inkwellhq/inkwell/internal/post/domain"
	userdomain "github.com/inkwellhq/inkwell/internal/user/domain"
	userrepo "github.com/inkwellhq/inkwell/internal/user/repository"
)

func setupRepo(t *testing.T) (*MemoryRepository, *userrepo.MemoryRepository, *clock.MockClock) {
	t.Helper()
	clk := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	idGen := commoncrypto.NewUUIDGenerator()
	users := userrepo.NewMemoryRepository(idGen, clk)
	return NewMemoryRepository(users, idGen, clk), users, clk
}

func mustCreateUser(t *testing.T, users *userrepo.MemoryRepository, username string) userdomain.User {
	t.Helper()
	user, err := users.Create(context.Background(), userdomain.User{Username: username, DisplayName: username})
	if err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func TestMemoryRepository_CreateAssignsDistinctIDs(t *testing.T) {
	repo, users, _ := setupRepo(t)
	alice := mustCreateUser(t, users, "alice")
	ctx := context.Background()

	seen := make(map[domain.PostID]bool)
	for i := 0; i < 20; i++ {
		post, err := repo.Create(ctx, domain.Draft{Title: "t", Content: "c"}, alice.ID)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		if seen[post.ID] {
			t.Fatalf("duplicate post id %s", post.ID)
		}
		seen[post.ID] = true

		if !post.CreatedAt.Equal(post.UpdatedAt) {
			t.Errorf("expected both timestamps equal at insert, got %v / %v", post.CreatedAt, post.UpdatedAt)
		}
	}
}

func TestMemoryRepository_ListAllNewestFirst(t *testing.T) {
	repo, users, clk := setupRepo(t)
	alice := mustCreateUser(t, users, "alice")
	ctx := context.Background()

	p1, _ := repo.Create(ctx, domain.Draft{Title: "first", Content: "c"}, alice.ID)
	clk.Advance(time.Minute)
	p2, _ := repo.Create(ctx, domain.Draft{Title: "second", Content: "c"}, alice.ID)
	clk.Advance(time.Minute)
	p3, _ := repo.Create(ctx, domain.Draft{Title: "third", Content: "c"}, alice.ID)

	posts, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	want := []domain.PostID{p3.ID, p2.ID, p1.ID}
	if len(posts) != len(want) {
		t.Fatalf("expected %d posts, got %d", len(want), len(posts))
	}
	for i, id := range want {
		if posts[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, posts[i].ID)
		}
	}
}

func TestMemoryRepository_ListAllStableForFixedState(t *testing.T) {
	repo, users, _ := setupRepo(t)
	alice := mustCreateUser(t, users, "alice")
	ctx := context.Background()

	// Same mock time for every insert: only the deterministic tiebreak orders
	// them.
	for i := 0; i < 10; i++ {
		if _, err := repo.Create(ctx, domain.Draft{Title: "t", Content: "c"}, alice.ID); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	first, _ := repo.ListAll(ctx)
	for i := 0; i < 5; i++ {
		again, _ := repo.ListAll(ctx)
		for j := range first {
			if first[j].ID != again[j].ID {
				t.Fatalf("ordering changed between calls at position %d", j)
			}
		}
	}
}

func TestMemoryRepository_UpdateMergesOnlySuppliedFields(t *testing.T) {
	repo, users, clk := setupRepo(t)
	alice := mustCreateUser(t, users, "alice")
	ctx := context.Background()

	post, _ := repo.Create(ctx, domain.Draft{
		Title:   "Hello",
		Content: "v1",
		Tags:    []string{"go"},
	}, alice.ID)

	clk.Advance(time.Second)

	newContent := "v2"
	updated, err := repo.Update(ctx, post.ID, domain.Patch{Content: &newContent})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Title != "Hello" {
		t.Errorf("expected title unchanged, got %q", updated.Title)
	}
	if updated.Content != "v2" {
		t.Errorf("expected content v2, got %q", updated.Content)
	}
	if len(updated.Tags) != 1 || updated.Tags[0] != "go" {
		t.Errorf("expected tags unchanged, got %v", updated.Tags)
	}
	if !updated.UpdatedAt.After(post.UpdatedAt) {
		t.Errorf("expected modification timestamp to advance: %v -> %v", post.UpdatedAt, updated.UpdatedAt)
	}
	if !updated.CreatedAt.Equal(post.CreatedAt) {
		t.Errorf("expected creation timestamp fixed, got %v", updated.CreatedAt)
	}
}

func TestMemoryRepository_UpdateMissingPost(t *testing.T) {
	repo, _, _ := setupRepo(t)

	title := "X"
	if _, err := repo.Update(context.Background(), "missing", domain.Patch{Title: &title}); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestMemoryRepository_DeleteReportsRemoval(t *testing.T) {
	repo, users, _ := setupRepo(t)
	alice := mustCreateUser(t, users, "alice")
	ctx := context.Background()

	post, _ := repo.Create(ctx, domain.Draft{Title: "t", Content: "c"}, alice.ID)

	deleted, err := repo.Delete(ctx, post.ID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !deleted {
		t.Error("expected first delete to report true")
	}

	deleted, err = repo.Delete(ctx, post.ID)
	if err != nil {
		t.Fatalf("second delete failed: %v", err)
	}
	if deleted {
		t.Error("expected second delete to report false")
	}
}

func TestMemoryRepository_DanglingAuthor(t *testing.T) {
	repo, users, clk := setupRepo(t)
	alice := mustCreateUser(t, users, "alice")
	ctx := context.Background()

	// A post whose author never resolves: simulate by pointing at an unknown
	// author id.
	post, err := repo.Create(ctx, domain.Draft{Title: "orphan", Content: "c"}, "ghost")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := repo.FindWithAuthor(ctx, post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound for dangling author, got %v", err)
	}

	// The raw record is still readable.
	if _, err := repo.FindByID(ctx, post.ID); err != nil {
		t.Fatalf("expected raw read to succeed, got %v", err)
	}

	clk.Advance(time.Minute)
	visible, _ := repo.Create(ctx, domain.Draft{Title: "visible", Content: "c"}, alice.ID)

	posts, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != visible.ID {
		t.Fatalf("expected only the resolvable post in the feed, got %d posts", len(posts))
	}
}

func TestMemoryRepository_ListByAuthor(t *testing.T) {
	repo, users, clk := setupRepo(t)
	alice := mustCreateUser(t, users, "alice")
	bob := mustCreateUser(t, users, "bob")
	ctx := context.Background()

	repo.Create(ctx, domain.Draft{Title: "a1", Content: "c"}, alice.ID)
	clk.Advance(time.Minute)
	repo.Create(ctx, domain.Draft{Title: "b1", Content: "c"}, bob.ID)
	clk.Advance(time.Minute)
	a2, _ := repo.Create(ctx, domain.Draft{Title: "a2", Content: "c"}, alice.ID)

	posts, err := repo.ListByAuthor(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts for alice, got %d", len(posts))
	}
	if posts[0].ID != a2.ID {
		t.Errorf("expected newest post first, got %s", posts[0].Title)
	}
	for _, p := range posts {
		if p.Author.Username != "alice" {
			t.Errorf("expected author alice, got %s", p.Author.Username)
		}
	}
}

func TestMemoryRepository_ListByAuthorUnknown(t *testing.T) {
	repo, _, _ := setupRepo(t)

	posts, err := repo.ListByAuthor(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("expected no error for unknown author, got %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected empty sequence, got %d posts", len(posts))
	}
}

func TestMemoryRepository_ConcurrentCreates(t *testing.T) {
	repo, users, _ := setupRepo(t)
	alice := mustCreateUser(t, users, "alice")
	bob := mustCreateUser(t, users, "bob")
	ctx := context.Background()

	var wg sync.WaitGroup
	var aliceErr, bobErr error
	var alicePost, bobPost domain.Post

	wg.Add(2)
	go func() {
		defer wg.Done()
		alicePost, aliceErr = repo.Create(ctx, domain.Draft{Title: "from alice", Content: "c"}, alice.ID)
	}()
	go func() {
		defer wg.Done()
		bobPost, bobErr = repo.Create(ctx, domain.Draft{Title: "from bob", Content: "c"}, bob.ID)
	}()
	wg.Wait()

	if aliceErr != nil || bobErr != nil {
		t.Fatalf("concurrent creates failed: %v / %v", aliceErr, bobErr)
	}

	posts, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	found := map[domain.PostID]bool{}
	for _, p := range posts {
		found[p.ID] = true
	}
	if !found[alicePost.ID] || !found[bobPost.ID] {
		t.Fatalf("expected both concurrent posts in the feed, got %d posts", len(posts))
	}
}
