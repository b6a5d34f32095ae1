package service

import (
	"context"

	"diabcar/internal/db"
	"diabcar/internal/entities"
	"diabcar/internal/repository"
	"diabcar/internal/validation"
)

type ContactService struct {
	repo      *repository.ContactRepository
	validator *validation.Validator
}

func NewContactService(repo *repository.ContactRepository) *ContactService {
	return &ContactService{repo: repo, validator: validation.New()}
}

func (s *ContactService) SubmitMessage(ctx context.Context, req *entities.ContactRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return err
	}
	msg := &db.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	return s.repo.Create(ctx, msg)
}
