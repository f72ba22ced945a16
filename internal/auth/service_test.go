package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"clubhub/internal/shared/config"
	"clubhub/internal/users"
)

type stubRepository struct {
	usersByEmail map[string]*users.User
	usersByID    map[string]*users.User
	lastLogin    map[string]time.Time
}

func newStubRepository() *stubRepository {
	return &stubRepository{
		usersByEmail: map[string]*users.User{},
		usersByID:    map[string]*users.User{},
		lastLogin:    map[string]time.Time{},
	}
}

func (s *stubRepository) add(user *users.User) {
	s.usersByEmail[user.Email] = user
	s.usersByID[user.ID.String()] = user
}

func (s *stubRepository) CreateUser(ctx context.Context, user *users.User) error {
	user.ID = uuid.New()
	s.add(user)
	return nil
}

func (s *stubRepository) GetUserByEmail(ctx context.Context, email string) (*users.User, error) {
	user, ok := s.usersByEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *stubRepository) GetUserByID(ctx context.Context, id string) (*users.User, error) {
	user, ok := s.usersByID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *stubRepository) UpdateUserPassword(ctx context.Context, userID string, hashedPassword string) error {
	user, ok := s.usersByID[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (s *stubRepository) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	s.lastLogin[userID] = at
	return nil
}

func (s *stubRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := s.usersByEmail[email]
	return ok, nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			JWTExpiresIn:     15 * time.Minute,
			RefreshExpiresIn: 24 * time.Hour,
		},
	}
}

func seedUser(t *testing.T, repo *stubRepository, email, password string, active bool) *users.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	user := &users.User{
		ID:       uuid.New(),
		FullName: "Test User",
		Email:    email,
		Password: string(hashed),
		Role:     users.RoleClient,
		IsActive: active,
	}
	repo.add(user)
	return user
}

func TestRegisterIssuesTokens(t *testing.T) {
	repo := newStubRepository()
	svc := NewService(repo, testConfig())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		FullName: "Dana K.",
		Email:    "dana@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}
	if resp.User.Role != string(users.RoleClient) {
		t.Errorf("role = %s, want CLIENT", resp.User.Role)
	}

	claims, err := svc.ValidateToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("access token did not validate: %v", err)
	}
	if claims.Type != "access" || claims.Email != "dana@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := newStubRepository()
	seedUser(t, repo, "dana@example.com", "secret123", true)
	svc := NewService(repo, testConfig())

	_, err := svc.Register(context.Background(), &RegisterRequest{
		FullName: "Dana K.",
		Email:    "dana@example.com",
		Password: "secret123",
	})
	if err != ErrUserAlreadyExists {
		t.Errorf("got %v, want ErrUserAlreadyExists", err)
	}
}

func TestRegisterIgnoresBogusRole(t *testing.T) {
	repo := newStubRepository()
	svc := NewService(repo, testConfig())

	resp, err := svc.Register(context.Background(), &RegisterRequest{
		FullName: "Dana K.",
		Email:    "dana@example.com",
		Password: "secret123",
		Role:     "SUPERUSER",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.User.Role != string(users.RoleClient) {
		t.Errorf("role = %s, want CLIENT", resp.User.Role)
	}
}

func TestLogin(t *testing.T) {
	repo := newStubRepository()
	user := seedUser(t, repo, "dana@example.com", "secret123", true)
	svc := NewService(repo, testConfig())

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: "dana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.User.ID != user.ID.String() {
		t.Errorf("user id = %s, want %s", resp.User.ID, user.ID)
	}
	if _, ok := repo.lastLogin[user.ID.String()]; !ok {
		t.Error("last login was not touched")
	}
}

func TestLoginFailures(t *testing.T) {
	repo := newStubRepository()
	seedUser(t, repo, "dana@example.com", "secret123", true)
	seedUser(t, repo, "gone@example.com", "secret123", false)
	svc := NewService(repo, testConfig())

	cases := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"wrong password", "dana@example.com", "nope", ErrInvalidCredentials},
		{"unknown email", "who@example.com", "secret123", ErrInvalidCredentials},
		{"deactivated account", "gone@example.com", "secret123", ErrUserInactive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &LoginRequest{Email: tc.email, Password: tc.password})
			if err != tc.want {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	repo := newStubRepository()
	seedUser(t, repo, "dana@example.com", "secret123", true)
	svc := NewService(repo, testConfig())

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: "dana@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.RefreshToken(context.Background(), resp.AccessToken); err != ErrInvalidToken {
		t.Errorf("access token as refresh: got %v, want ErrInvalidToken", err)
	}

	pair, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if pair.AccessToken == "" {
		t.Error("expected a fresh access token")
	}
}

func TestChangePassword(t *testing.T) {
	repo := newStubRepository()
	user := seedUser(t, repo, "dana@example.com", "secret123", true)
	svc := NewService(repo, testConfig())

	err := svc.ChangePassword(context.Background(), user.ID.String(), &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newsecret",
	})
	if err != ErrInvalidCredentials {
		t.Errorf("wrong current password: got %v, want ErrInvalidCredentials", err)
	}

	err = svc.ChangePassword(context.Background(), user.ID.String(), &ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newsecret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newsecret")) != nil {
		t.Error("password was not updated")
	}
}
