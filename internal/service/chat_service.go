package service

import (
	"context"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/repository"
)

// ChatService implements realtime.ChatStore: the narrow persistence
// surface the realtime subsystem calls while handling frames.
type ChatService struct {
	userRepo     repository.UserRepository
	channelRepo  repository.ChannelRepository
	messageRepo  repository.MessageRepository
	reactionRepo repository.ReactionRepository
}

func NewChatService(
	userRepo repository.UserRepository,
	channelRepo repository.ChannelRepository,
	messageRepo repository.MessageRepository,
	reactionRepo repository.ReactionRepository,
) *ChatService {
	return &ChatService{
		userRepo:     userRepo,
		channelRepo:  channelRepo,
		messageRepo:  messageRepo,
		reactionRepo: reactionRepo,
	}
}

func (s *ChatService) IsChannelMember(ctx context.Context, channelID, userID uint) (bool, error) {
	return s.channelRepo.IsMember(channelID, userID)
}

func (s *ChatService) GetUserChannelIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.channelRepo.GetUserChannelIDs(userID)
}

func (s *ChatService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.FindByID(userID)
}

func (s *ChatService) CreateMessage(ctx context.Context, senderID, channelID uint, content string, replyToID *uint) (*models.Message, error) {
	message := &models.Message{
		ChannelID: channelID,
		SenderID:  senderID,
		Content:   content,
		ReplyToID: replyToID,
	}
	return s.messageRepo.Create(message)
}

func (s *ChatService) GetMessage(ctx context.Context, messageID uint) (*models.Message, error) {
	return s.messageRepo.FindByID(messageID)
}

func (s *ChatService) AddReaction(ctx context.Context, messageID, userID uint, emoji string) error {
	return s.reactionRepo.Add(messageID, userID, emoji)
}

func (s *ChatService) RemoveReaction(ctx context.Context, messageID, userID uint, emoji string) error {
	return s.reactionRepo.Remove(messageID, userID, emoji)
}
