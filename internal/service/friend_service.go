package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/repository"

	"gorm.io/gorm"
)

var ErrFriendRequestExists = errors.New("friend request already exists")

type FriendService struct {
	friendRepo   repository.FriendRepository
	presenceRepo repository.PresenceRepository
}

func NewFriendService(friendRepo repository.FriendRepository, presenceRepo repository.PresenceRepository) *FriendService {
	return &FriendService{
		friendRepo:   friendRepo,
		presenceRepo: presenceRepo,
	}
}

func (s *FriendService) SendRequest(userID, friendID uint) error {
	if _, err := s.friendRepo.Find(userID, friendID); err == nil {
		return ErrFriendRequestExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing friendship: %w", err)
	}

	return s.friendRepo.Create(&models.Friend{
		UserID:   userID,
		FriendID: friendID,
		Status:   models.FriendStatusPending,
	})
}

// Accept marks the request accepted and mirrors the edge so lookups
// work from both sides
func (s *FriendService) Accept(userID, requesterID uint) error {
	if _, err := s.friendRepo.Find(requesterID, userID); err != nil {
		return fmt.Errorf("no pending request from %d: %w", requesterID, err)
	}
	if err := s.friendRepo.UpdateStatus(requesterID, userID, models.FriendStatusAccepted); err != nil {
		return err
	}
	if _, err := s.friendRepo.Find(userID, requesterID); errors.Is(err, gorm.ErrRecordNotFound) {
		return s.friendRepo.Create(&models.Friend{
			UserID:   userID,
			FriendID: requesterID,
			Status:   models.FriendStatusAccepted,
		})
	}
	return nil
}

func (s *FriendService) List(userID uint) ([]models.FriendResponse, error) {
	friends, err := s.friendRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	results := make([]models.FriendResponse, 0, len(friends))
	for _, f := range friends {
		results = append(results, models.FriendResponse{
			ID:        f.FriendID,
			Username:  f.FriendUser.Username,
			FirstName: f.FriendUser.FirstName,
			Email:     f.FriendUser.Email,
			Status:    f.Status,
		})
	}
	return results, nil
}

// OnlineFriends returns the accepted friends currently online per the
// Redis presence keys
func (s *FriendService) OnlineFriends(ctx context.Context, userID uint) ([]uint, error) {
	friendIDs, err := s.friendRepo.ListAcceptedIDs(userID)
	if err != nil {
		return nil, err
	}
	return s.presenceRepo.FilterOnline(ctx, friendIDs)
}

func (s *FriendService) Remove(userID, friendID uint) error {
	if err := s.friendRepo.Delete(userID, friendID); err != nil {
		return err
	}
	return s.friendRepo.Delete(friendID, userID)
}
