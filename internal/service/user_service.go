package service

import (
	"context"
	"fmt"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo     repository.UserRepository
	presenceRepo repository.PresenceRepository
}

func NewUserService(userRepo repository.UserRepository, presenceRepo repository.PresenceRepository) *UserService {
	return &UserService{userRepo: userRepo, presenceRepo: presenceRepo}
}

func (s *UserService) GetProfile(userID uint) (*models.User, error) {
	return s.userRepo.FindByID(userID)
}

func (s *UserService) UpdateProfile(userID uint, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// GetStatus returns the presence status for a known user
func (s *UserService) GetStatus(ctx context.Context, userID uint) (string, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return "", err
	}
	return s.presenceRepo.GetStatus(ctx, userID)
}

func (s *UserService) Search(query string) ([]models.UserResponse, error) {
	users, err := s.userRepo.Search(query, 20)
	if err != nil {
		return nil, err
	}
	results := make([]models.UserResponse, 0, len(users))
	for i := range users {
		results = append(results, models.NewUserResponse(&users[i]))
	}
	return results, nil
}
