package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inkwellhq/inkwell/internal/common/clock"
	"github.com/inkwellhq/inkwell/internal/common/logger"
	userdomain "github.com/inkwellhq/inkwell/internal/user/domain"
	userrepo "github.com/inkwellhq/inkwell/internal/user/repository"
)

const testJWTSecret = "test-secret-key-0123456789-abcdef"

func setupAuthService(t *testing.T) (*AuthService, *mockUserRepo, *mockHasher, *clock.MockClock) {
	t.Helper()

	repo := &mockUserRepo{}
	hasher := &mockHasher{}
	idGen := &mockIDGenerator{}
	clk := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	log, _ := logger.New("", "test", "error")

	issuer := NewTokenIssuer(testJWTSecret, idGen, 30*time.Minute, clk)
	return NewAuthService(repo, hasher, issuer, log), repo, hasher, clk
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo, hasher, _ := setupAuthService(t)

	hasher.hashFunc = func(p string) (string, error) {
		return "hashed_password123", nil
	}

	repo.createFunc = func(ctx context.Context, user userdomain.User) (userdomain.User, error) {
		if user.Username != "testuser" {
			t.Errorf("expected username testuser, got %s", user.Username)
		}
		if user.PasswordHash != "hashed_password123" {
			t.Errorf("expected stored hash, got %s", user.PasswordHash)
		}
		if user.DisplayName != "Test User" {
			t.Errorf("expected display name, got %s", user.DisplayName)
		}
		user.ID = "user-123"
		return user, nil
	}

	result, err := svc.Register(context.Background(), RegisterInput{
		Username:    "testuser",
		Password:    "password123",
		DisplayName: "Test User",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.Token == "" {
		t.Error("expected access token to be set")
	}
	if result.User.ID != "user-123" {
		t.Errorf("expected user id in profile, got %s", result.User.ID)
	}
}

func TestAuthService_Register_DefaultsDisplayName(t *testing.T) {
	svc, repo, _, _ := setupAuthService(t)

	repo.createFunc = func(ctx context.Context, user userdomain.User) (userdomain.User, error) {
		if user.DisplayName != "testuser" {
			t.Errorf("expected display name to default to username, got %s", user.DisplayName)
		}
		user.ID = "user-123"
		return user, nil
	}

	if _, err := svc.Register(context.Background(), RegisterInput{
		Username: "testuser",
		Password: "password123",
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	svc, repo, _, _ := setupAuthService(t)

	repo.createFunc = func(ctx context.Context, user userdomain.User) (userdomain.User, error) {
		return userdomain.User{}, userrepo.ErrUsernameAlreadyExists
	}

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "testuser",
		Password: "password123",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)

	testCases := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"short username", "ab", "password123", ErrValidationUsernameLength},
		{"long username", "a-very-long-username-over-thirty-two-characters", "password123", ErrValidationUsernameLength},
		{"short password", "testuser", "short1", ErrValidationPasswordLength},
		{"bad username chars", "test user!", "password123", ErrValidationUsernameChars},
		{"leading hyphen", "-testuser", "password123", ErrValidationUsernameChars},
		{"password without digit", "testuser", "passwordonly", ErrValidationPasswordWeak},
		{"password without letter", "testuser", "123456789", ErrValidationPasswordWeak},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), RegisterInput{
				Username: tc.username,
				Password: tc.password,
			})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, repo, hasher, _ := setupAuthService(t)

	repo.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return userdomain.User{
			ID:           "user-123",
			Username:     "testuser",
			PasswordHash: "stored-hash",
		}, nil
	}

	hasher.compareFunc = func(hash string, password string) error {
		if hash != "stored-hash" || password != "password123" {
			t.Errorf("unexpected compare inputs %q %q", hash, password)
		}
		return nil
	}

	result, err := svc.Login(context.Background(), LoginInput{
		Username: "testuser",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Token == "" {
		t.Error("expected access token to be set")
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc, _, _, _ := setupAuthService(t)

	_, err := svc.Login(context.Background(), LoginInput{
		Username: "testuser",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, repo, hasher, _ := setupAuthService(t)

	repo.findByUsernameFunc = func(ctx context.Context, username string) (userdomain.User, error) {
		return userdomain.User{ID: "user-123", Username: "testuser", PasswordHash: "stored-hash"}, nil
	}
	hasher.compareFunc = func(hash string, password string) error {
		return errors.New("mismatch")
	}

	_, err := svc.Login(context.Background(), LoginInput{
		Username: "testuser",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	idGen := &mockIDGenerator{}
	clk := clock.NewMockClock(time.Now())
	issuer := NewTokenIssuer(testJWTSecret, idGen, 30*time.Minute, clk)

	token, err := issuer.IssueAccessToken(userdomain.User{ID: "user-123", Username: "testuser"})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	claims, err := issuer.ParseToken(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Errorf("expected subject user-123, got %s", claims.UserID)
	}
	if claims.Username != "testuser" {
		t.Errorf("expected username testuser, got %s", claims.Username)
	}
}
