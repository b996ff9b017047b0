// Package admin manages administrator accounts: registration, login and
// profile lookup.
package admin

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/JuzzThyne/ERI-backend/models"
	"github.com/JuzzThyne/ERI-backend/utils"
)

var (
	ErrMissingFields      = errors.New("all fields are required")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNotFound           = errors.New("admin not found")
)

// Store persists admins. Implementations hold a unique constraint on the
// username, reported as ErrUsernameTaken, and report misses as ErrNotFound.
type Store interface {
	AdminByUsername(ctx context.Context, username string) (*models.Admin, error)
	AdminByID(ctx context.Context, id string) (*models.Admin, error)
	// CreateAdmin assigns ID, CreatedAt and UpdatedAt.
	CreateAdmin(ctx context.Context, a *models.Admin) error
}

type Service struct {
	store  Store
	tokens *utils.TokenManager
}

func NewService(store Store, tokens *utils.TokenManager) *Service {
	return &Service{store: store, tokens: tokens}
}

// Register creates an admin with a bcrypt-hashed password. Registration is open.
func (s *Service) Register(ctx context.Context, in models.AdminRegister) (*models.Admin, error) {
	a := &models.Admin{
		AdminName: strings.TrimSpace(in.AdminName),
		Username:  strings.TrimSpace(in.Username),
		AdminType: strings.TrimSpace(in.AdminType),
	}
	if a.AdminName == "" || a.Username == "" || in.Password == "" || a.AdminType == "" {
		return nil, ErrMissingFields
	}

	_, err := s.store.AdminByUsername(ctx, a.Username)
	switch {
	case err == nil:
		return nil, ErrUsernameTaken
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("find admin: %w", err)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	a.PasswordHash = hash

	if err := s.store.CreateAdmin(ctx, a); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return a, nil
}

// Login checks the password and issues a bearer token.
func (s *Service) Login(ctx context.Context, in models.AdminLogin) (string, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return "", ErrMissingFields
	}

	a, err := s.store.AdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find admin: %w", err)
	}
	if !utils.CheckPassword(a.PasswordHash, in.Password) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.GenerateJWT(a.ID)
}

func (s *Service) Profile(ctx context.Context, id string) (*models.Admin, error) {
	return s.store.AdminByID(ctx, id)
}
