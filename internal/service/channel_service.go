package service

import (
	"errors"
	"fmt"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/repository"
)

var ErrNotChannelOwner = errors.New("only the channel owner may do this")

type ChannelService struct {
	channelRepo repository.ChannelRepository
	messageRepo repository.MessageRepository
}

func NewChannelService(channelRepo repository.ChannelRepository, messageRepo repository.MessageRepository) *ChannelService {
	return &ChannelService{
		channelRepo: channelRepo,
		messageRepo: messageRepo,
	}
}

// Create builds the channel with the owner as first member plus any
// requested members
func (s *ChannelService) Create(ownerID uint, req *models.CreateChannelRequest) (*models.Channel, error) {
	channel := &models.Channel{
		Name:    req.Name,
		OwnerID: ownerID,
		Type:    req.Type,
	}
	if err := s.channelRepo.Create(channel); err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}

	if err := s.channelRepo.AddMember(channel.ID, ownerID); err != nil {
		return nil, fmt.Errorf("failed to add owner to channel: %w", err)
	}
	for _, memberID := range req.MemberIDs {
		if memberID == ownerID {
			continue
		}
		if err := s.channelRepo.AddMember(channel.ID, memberID); err != nil {
			return nil, fmt.Errorf("failed to add member %d: %w", memberID, err)
		}
	}

	return s.channelRepo.FindByID(channel.ID)
}

func (s *ChannelService) ListByUser(userID uint) ([]models.ChannelResponse, error) {
	channels, err := s.channelRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	results := make([]models.ChannelResponse, 0, len(channels))
	for i := range channels {
		results = append(results, models.NewChannelResponse(&channels[i]))
	}
	return results, nil
}

func (s *ChannelService) GetDetail(channelID uint) (*models.ChannelDetailResponse, error) {
	channel, err := s.channelRepo.FindByID(channelID)
	if err != nil {
		return nil, err
	}
	detail := models.NewChannelDetailResponse(channel)
	return &detail, nil
}

func (s *ChannelService) AddMember(channelID, requesterID, userID uint) error {
	channel, err := s.channelRepo.FindByID(channelID)
	if err != nil {
		return err
	}
	if channel.OwnerID != requesterID {
		return ErrNotChannelOwner
	}
	return s.channelRepo.AddMember(channelID, userID)
}

func (s *ChannelService) RemoveMember(channelID, requesterID, userID uint) error {
	channel, err := s.channelRepo.FindByID(channelID)
	if err != nil {
		return err
	}
	// Members may remove themselves; only the owner removes others
	if requesterID != userID && channel.OwnerID != requesterID {
		return ErrNotChannelOwner
	}
	return s.channelRepo.RemoveMember(channelID, userID)
}

// History returns a page of channel messages, oldest first
func (s *ChannelService) History(channelID uint, limit, offset int) ([]models.MessageResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	messages, err := s.messageRepo.ListByChannel(channelID, limit, offset)
	if err != nil {
		return nil, err
	}
	results := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		results = append(results, models.NewMessageResponse(&messages[i]))
	}
	return results, nil
}

func (s *ChannelService) IsMember(channelID, userID uint) (bool, error) {
	return s.channelRepo.IsMember(channelID, userID)
}
