package user

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/boardlyhq/boardly/internal/perrors"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

const minPasswordLength = 8

// UserService contains registration, authentication and lookup logic
type UserService struct {
	repo *UserRepo
}

func NewUserService(repo *UserRepo) *UserService {
	return &UserService{repo: repo}
}

// ValidateRegistration checks payload shape only; email uniqueness is
// checked against the store in Register.
func ValidateRegistration(req *RegisterRequest) error {
	if strings.TrimSpace(req.Fullname) == "" {
		return perrors.NewFieldError("fullname", "This field is required.")
	}
	if !validEmail(req.Email) {
		return perrors.NewFieldError("email", "Enter a valid email address.")
	}
	if len(req.Password) < minPasswordLength {
		return perrors.NewFieldError("password", fmt.Sprintf("Ensure this field has at least %d characters.", minPasswordLength))
	}
	if req.Password != req.RepeatedPassword {
		return perrors.NewFieldError("repeated_password", "Passwords do not match.")
	}

	return nil
}

// Register creates a user with a hashed password and returns the auth
// payload with a freshly minted token.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if err := ValidateRegistration(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, perrors.NewFieldError("email", "A user with this email already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, req.Email, strings.TrimSpace(req.Fullname), string(hash))
	if err != nil {
		return nil, err
	}

	token, err := s.repo.GetOrCreateToken(ctx, created.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:    token,
		Fullname: created.FullName,
		Email:    created.Email,
		UserID:   created.ID,
	}, nil
}

// Login verifies credentials and returns the user's reusable token.
func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.repo.GetOrCreateToken(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		Token:    token,
		Fullname: u.FullName,
		Email:    u.Email,
		UserID:   u.ID,
	}, nil
}

// GetByToken resolves a bearer token to a user
func (s *UserService) GetByToken(ctx context.Context, token string) (*User, error) {
	return s.repo.GetByToken(ctx, token)
}

// CheckEmail looks up a user by email and returns their brief.
func (s *UserService) CheckEmail(ctx context.Context, email string) (*Brief, error) {
	if !validEmail(email) {
		return nil, perrors.NewFieldError("email", "Enter a valid email address.")
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return NewBrief(u), nil
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}

	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
