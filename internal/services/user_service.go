package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/project-tracker-api/internal/models"
	"github.com/yukikurage/project-tracker-api/internal/repository"
)

// UserService exposes user directory lookups
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListProgrammers lists every programmer ordered by name
func (s *UserService) ListProgrammers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.ListByType(ctx, models.UserTypeProgrammer)
	if err != nil {
		return nil, fmt.Errorf("failed to list programmers: %w", err)
	}
	return users, nil
}
