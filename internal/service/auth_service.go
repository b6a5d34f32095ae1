package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"diabcar/internal/auth"
	"diabcar/internal/db"
	"diabcar/internal/entities"
	apperrors "diabcar/internal/errors"
	"diabcar/internal/validation"
)

type UserAuthStore interface {
	Create(ctx context.Context, user *db.User) error
	GetByEmail(ctx context.Context, email string) (*db.User, error)
}

type AuthService struct {
	users     UserAuthStore
	secret    string
	validator *validation.Validator
}

func NewAuthService(users UserAuthStore, secret string) *AuthService {
	return &AuthService{users: users, secret: secret, validator: validation.New()}
}

// Register creates the user and signs them in immediately. A duplicate
// email surfaces as a duplicate error, not a generic failure.
func (s *AuthService) Register(ctx context.Context, req *entities.RegisterRequest) (*entities.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	// Public registration always creates customers. Admin accounts are
	// provisioned directly, never through this endpoint.
	user := &db.User{
		Name:         req.Name,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		PasswordHash: string(hash),
		Role:         db.RoleCustomer,
		Status:       db.UserPending,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.authResponse(user)
}

// Login checks the password hash and issues a bearer token. Unknown
// email and wrong password deliberately look the same to the client.
func (s *AuthService) Login(ctx context.Context, req *entities.LoginRequest) (*entities.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	return s.authResponse(user)
}

func (s *AuthService) authResponse(user *db.User) (*entities.AuthResponse, error) {
	token, err := auth.GenerateToken(s.secret, user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("error signing token: %w", err)
	}
	return &entities.AuthResponse{
		Token: token,
		User: entities.UserResponse{
			ID:          user.ID,
			Name:        user.Name,
			Email:       user.Email,
			PhoneNumber: user.PhoneNumber,
			Role:        user.Role,
			Status:      user.Status,
			CreatedAt:   user.CreatedAt,
		},
	}, nil
}
