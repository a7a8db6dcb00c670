package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"stayhub/internal/domain"
)

type AccountService struct {
	users domain.UserRepository
}

func NewAccountService(u domain.UserRepository) *AccountService {
	return &AccountService{users: u}
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required"`
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return domain.User{}, err
	}
	if role == domain.RoleAdmin {
		return domain.User{}, domain.E(domain.ErrForbidden, "cannot self-register as admin")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.User{}, domain.E(domain.ErrConflict, "email already registered")
		}
		return domain.User{}, err
	}
	return u, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.User{}, domain.E(domain.ErrForbidden, "invalid email or password")
		}
		return domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return domain.User{}, domain.E(domain.ErrForbidden, "invalid email or password")
	}
	return u, nil
}
