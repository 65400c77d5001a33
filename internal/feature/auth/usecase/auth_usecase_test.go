package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"auth_backend/internal/feature/auth/domain/entity"
)

// mockUserRepository is a mock implementation of the UserRepository interface.
// It simulates database operations during testing.
type mockUserRepository struct {
	// CreateFunc is called when the Create method is invoked.
	CreateFunc func(ctx context.Context, user *entity.User) error
	// FindByEmailFunc is called when the FindByEmail method is invoked.
	FindByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	// FindByIDFunc is called when the FindByID method is invoked.
	FindByIDFunc func(ctx context.Context, id uint) (*entity.User, error)
	// FindByBiometricKeyFunc is called when the FindByBiometricKey method is invoked.
	FindByBiometricKeyFunc func(ctx context.Context, key string) (*entity.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil // Default: success
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) FindByBiometricKey(ctx context.Context, key string) (*entity.User, error) {
	if m.FindByBiometricKeyFunc != nil {
		return m.FindByBiometricKeyFunc(ctx, key)
	}
	return nil, ErrUserNotFound
}

// mockHasher is a deterministic PasswordHasher for tests.
type mockHasher struct {
	// HashFunc overrides the default hashing behavior when set.
	HashFunc func(plaintext string) (string, error)
}

func (m *mockHasher) Hash(plaintext string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(plaintext)
	}
	return "hashed:" + plaintext, nil
}

func (m *mockHasher) Verify(plaintext, hash string) bool {
	return hash == "hashed:"+plaintext
}

// mockIssuer is a mock implementation of the TokenIssuer interface.
type mockIssuer struct {
	// IssueFunc is called when the Issue method is invoked.
	IssueFunc func(userID uint, email string) (string, string, error)
}

func (m *mockIssuer) Issue(userID uint, email string) (string, string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(userID, email)
	}
	return "Bearer mock-access", "Bearer mock-refresh", nil
}

func TestAuthUsecase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("successful registration", func(t *testing.T) {
		var created *entity.User
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				// Simulate the persistence layer assigning an ID
				user.ID = 1
				created = user
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockHasher{}, &mockIssuer{})
		user, err := uc.Register(ctx, "test@example.com", "12345")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != 1 {
			t.Errorf("expected ID 1, got %d", user.ID)
		}
		if created.Password != "hashed:12345" {
			t.Errorf("password was not hashed before persisting: %q", created.Password)
		}
		if created.Password == "12345" {
			t.Error("plaintext password was persisted")
		}
		if created.BiometricKey == nil || *created.BiometricKey == "" {
			t.Error("biometric key was not generated")
		}
		if created.BiometricKey != nil && strings.Contains(*created.BiometricKey, "12345") {
			t.Error("biometric key must be independent of the password")
		}
	})

	t.Run("biometric keys are unique per registration", func(t *testing.T) {
		keys := map[string]bool{}
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				keys[*user.BiometricKey] = true
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockHasher{}, &mockIssuer{})
		for i := 0; i < 5; i++ {
			if _, err := uc.Register(ctx, "test@example.com", "12345"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}

		if len(keys) != 5 {
			t.Errorf("expected 5 distinct biometric keys, got %d", len(keys))
		}
	})

	t.Run("email already registered", func(t *testing.T) {
		mockRepo := &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				return &entity.User{ID: 1, Email: email}, nil
			},
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				t.Error("Create must not be called when the email is taken")
				return nil
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockHasher{}, &mockIssuer{})
		_, err := uc.Register(ctx, "taken@example.com", "12345")

		if !errors.Is(err, ErrUserAlreadyExists) {
			t.Errorf("expected ErrUserAlreadyExists, got: %v", err)
		}
	})

	t.Run("concurrent registration race surfaces as conflict", func(t *testing.T) {
		// The pre-check passes but the insert hits the unique constraint
		mockRepo := &mockUserRepository{
			CreateFunc: func(ctx context.Context, user *entity.User) error {
				return ErrUserAlreadyExists
			},
		}

		uc := NewAuthUsecase(mockRepo, &mockHasher{}, &mockIssuer{})
		_, err := uc.Register(ctx, "raced@example.com", "12345")

		if !errors.Is(err, ErrUserAlreadyExists) {
			t.Errorf("expected ErrUserAlreadyExists, got: %v", err)
		}
	})

	t.Run("hasher failure", func(t *testing.T) {
		hasher := &mockHasher{
			HashFunc: func(plaintext string) (string, error) {
				return "", errors.New("hash failure")
			},
		}

		uc := NewAuthUsecase(&mockUserRepository{}, hasher, &mockIssuer{})
		_, err := uc.Register(ctx, "test@example.com", "12345")

		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestAuthUsecase_Login(t *testing.T) {
	ctx := context.Background()
	testUser := &entity.User{
		ID:       1,
		Email:    "test@example.com",
		Password: "hashed:12345",
	}
	repoWithUser := func() *mockUserRepository {
		return &mockUserRepository{
			FindByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
				if email == testUser.Email {
					return testUser, nil
				}
				return nil, ErrUserNotFound
			},
		}
	}

	t.Run("successful login", func(t *testing.T) {
		issuer := &mockIssuer{
			IssueFunc: func(userID uint, email string) (string, string, error) {
				if userID != testUser.ID || email != testUser.Email {
					t.Errorf("unexpected userID or email: got userID=%d, email=%s", userID, email)
				}
				return "Bearer access-token", "Bearer refresh-token", nil
			},
		}

		uc := NewAuthUsecase(repoWithUser(), &mockHasher{}, issuer)
		res, err := uc.Login(ctx, "test@example.com", "12345")

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.User.ID != testUser.ID {
			t.Errorf("expected user ID %d, got %d", testUser.ID, res.User.ID)
		}
		if res.Token.AccessToken != "Bearer access-token" {
			t.Errorf("unexpected access token: %q", res.Token.AccessToken)
		}
		if res.Token.RefreshToken != "Bearer refresh-token" {
			t.Errorf("unexpected refresh token: %q", res.Token.RefreshToken)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		uc := NewAuthUsecase(repoWithUser(), &mockHasher{}, &mockIssuer{})
		_, err := uc.Login(ctx, "test@example.com", "wrong")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		uc := NewAuthUsecase(repoWithUser(), &mockHasher{}, &mockIssuer{})
		_, err := uc.Login(ctx, "unknown@example.com", "12345")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		uc := NewAuthUsecase(repoWithUser(), &mockHasher{}, &mockIssuer{})

		_, errUnknown := uc.Login(ctx, "unknown@example.com", "12345")
		_, errWrong := uc.Login(ctx, "test@example.com", "wrong")

		if !errors.Is(errUnknown, errWrong) {
			t.Errorf("expected identical errors, got %v and %v", errUnknown, errWrong)
		}
	})

	t.Run("issuer failure", func(t *testing.T) {
		issuer := &mockIssuer{
			IssueFunc: func(userID uint, email string) (string, string, error) {
				return "", "", errors.New("missing secret")
			},
		}

		uc := NewAuthUsecase(repoWithUser(), &mockHasher{}, issuer)
		_, err := uc.Login(ctx, "test@example.com", "12345")

		if err == nil {
			t.Fatal("expected error")
		}
		if errors.Is(err, ErrInvalidCredentials) {
			t.Error("issuer failure must not be reported as invalid credentials")
		}
	})
}

func TestAuthUsecase_BiometricLogin(t *testing.T) {
	ctx := context.Background()
	key := "7e9c1ab2-2f5d-4a17-9f0e-1f2d3c4b5a69"
	testUser := &entity.User{
		ID:           2,
		Email:        "bio@example.com",
		Password:     "hashed:12345",
		BiometricKey: &key,
	}
	repo := &mockUserRepository{
		FindByBiometricKeyFunc: func(ctx context.Context, k string) (*entity.User, error) {
			if k == key {
				return testUser, nil
			}
			return nil, ErrUserNotFound
		},
	}

	t.Run("successful biometric login", func(t *testing.T) {
		uc := NewAuthUsecase(repo, &mockHasher{}, &mockIssuer{})
		res, err := uc.BiometricLogin(ctx, key)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.User.ID != testUser.ID {
			t.Errorf("expected user ID %d, got %d", testUser.ID, res.User.ID)
		}
		if res.Token.AccessToken == "" || res.Token.RefreshToken == "" {
			t.Error("expected a token pair")
		}
	})

	t.Run("unknown biometric key", func(t *testing.T) {
		uc := NewAuthUsecase(repo, &mockHasher{}, &mockIssuer{})
		_, err := uc.BiometricLogin(ctx, "unknown-key")

		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got: %v", err)
		}
	})
}

func TestAuthUsecase_CurrentUser(t *testing.T) {
	ctx := context.Background()
	testUser := &entity.User{ID: 3, Email: "current@example.com"}
	repo := &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.User, error) {
			if id == testUser.ID {
				return testUser, nil
			}
			return nil, ErrUserNotFound
		},
	}

	t.Run("existing user", func(t *testing.T) {
		uc := NewAuthUsecase(repo, &mockHasher{}, &mockIssuer{})
		user, err := uc.CurrentUser(ctx, 3)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Email != testUser.Email {
			t.Errorf("expected email %q, got %q", testUser.Email, user.Email)
		}
	})

	t.Run("deleted user", func(t *testing.T) {
		uc := NewAuthUsecase(repo, &mockHasher{}, &mockIssuer{})
		_, err := uc.CurrentUser(ctx, 999)

		if !errors.Is(err, ErrUserNotFound) {
			t.Errorf("expected ErrUserNotFound, got: %v", err)
		}
	})
}
