package service

import (
	"context"

	"diabcar/internal/db"
	"diabcar/internal/entities"
	apperrors "diabcar/internal/errors"
	"diabcar/internal/repository"
	"diabcar/internal/validation"
)

type UserService struct {
	repo      *repository.UserRepository
	validator *validation.Validator
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{repo: repo, validator: validation.New()}
}

func (s *UserService) ListUsers(ctx context.Context) ([]entities.UserResponse, error) {
	return s.repo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id int) (*entities.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entities.UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        user.Role,
		Status:      user.Status,
		CreatedAt:   user.CreatedAt,
	}, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id int, req *entities.UserUpdateRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, req)
}

func (s *UserService) UpdateUserStatus(ctx context.Context, id int, status string) error {
	if status != db.UserApproved && status != db.UserPending {
		return apperrors.Validation(apperrors.FieldError{
			Field:   "status",
			Message: "must be one of: approved, pending",
		})
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
