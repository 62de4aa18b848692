package users

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skylinetravels/flightbooking/internal/auth"
	"github.com/skylinetravels/flightbooking/internal/authz"
	"github.com/skylinetravels/flightbooking/internal/domain"
	"github.com/skylinetravels/flightbooking/internal/repository"
	"github.com/skylinetravels/flightbooking/internal/validation"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	Authenticate(ctx context.Context, token string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*domain.User, error)
	ChangePassword(ctx context.Context, userID string, input ChangePasswordInput) error
	List(ctx context.Context) ([]domain.User, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, actor authz.Principal, id string, input UpdateInput) (*domain.User, error)
}

// TokenIssuer is satisfied by *auth.Tokens.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
	Verify(raw string) (string, error)
}

type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ProfileInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
	Phone *string `json:"phone"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UpdateInput is the body of an update by id. Only admins may set IsAdmin.
type UpdateInput struct {
	Name    *string `json:"name"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	IsAdmin *bool   `json:"isAdmin"`
}

type AuthResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

var errInvalidCredentials = domain.Unauthorized("Invalid credentials")

type UserService struct {
	users      repository.UserRepository
	tokens     TokenIssuer
	bcryptCost int
	logger     *slog.Logger
}

func NewUserService(users repository.UserRepository, tokens TokenIssuer, bcryptCost int, logger *slog.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, bcryptCost: bcryptCost, logger: logger}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(input.Phone),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return s.issue(user)
}

func (s *UserService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !auth.VerifyPassword(user.PasswordHash, input.Password) {
		return nil, errInvalidCredentials
	}
	return s.issue(user)
}

// Authenticate resolves a bearer token to the stored user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domain.Unauthorized("Invalid token")
	}
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.Unauthorized("Invalid token")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*domain.User, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	return s.update(ctx, userID, domain.UserPatch{Name: input.Name, Email: input.Email, Phone: input.Phone})
}

func (s *UserService) ChangePassword(ctx context.Context, userID string, input ChangePasswordInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(user.PasswordHash, input.CurrentPassword) {
		return domain.Invalid("Current password is incorrect")
	}

	hash, err := auth.HashPassword(input.NewPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, userID, hash)
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.users.Count(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// Update changes another user's profile. The caller must be that user or an admin.
func (s *UserService) Update(ctx context.Context, actor authz.Principal, id string, input UpdateInput) (*domain.User, error) {
	if actor.ID != id && !actor.Admin {
		return nil, domain.Forbidden("Unauthorized")
	}
	if input.IsAdmin != nil && !actor.Admin {
		return nil, domain.Forbidden("Unauthorized")
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	return s.update(ctx, id, domain.UserPatch{Name: input.Name, Email: input.Email, Phone: input.Phone, IsAdmin: input.IsAdmin})
}

// CreateAdmin creates an admin account, or promotes the existing account with that email.
func (s *UserService) CreateAdmin(ctx context.Context, input RegisterInput) (user *domain.User, created bool, err error) {
	existing, err := s.users.GetByEmail(ctx, input.Email)
	switch {
	case err == nil:
		existing.IsAdmin = true
		if err := s.users.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, false, err
	}

	if err := validation.Struct(input); err != nil {
		return nil, false, err
	}
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, false, err
	}
	user = &domain.User{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *UserService) update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Apply(patch)
	user.Name = strings.TrimSpace(user.Name)
	user.Email = strings.TrimSpace(user.Email)
	if user.Name == "" {
		return nil, domain.Invalid("name is required")
	}
	if user.Email == "" {
		return nil, domain.Invalid("email is required")
	}
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) issue(user *domain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

var _ UserUseCase = (*UserService)(nil)
