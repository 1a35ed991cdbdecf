package repository

import (
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"

	"gorm.io/gorm"
)

type MessageRepository interface {
	Create(message *models.Message) (*models.Message, error)
	FindByID(id uint) (*models.Message, error)
	ListByChannel(channelID uint, limit, offset int) ([]models.Message, error)
	Delete(id uint) error
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create persists the message and reloads it with sender and reactions
// so callers broadcast the canonical record
func (r *messageRepository) Create(message *models.Message) (*models.Message, error) {
	if err := r.db.Create(message).Error; err != nil {
		return nil, err
	}
	return r.FindByID(message.ID)
}

func (r *messageRepository) FindByID(id uint) (*models.Message, error) {
	var message models.Message
	err := r.db.
		Preload("Sender").
		Preload("Reactions").
		First(&message, id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) ListByChannel(channelID uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.
		Preload("Sender").
		Preload("Reactions").
		Where("channel_id = ?", channelID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}

func (r *messageRepository) Delete(id uint) error {
	return r.db.Delete(&models.Message{}, id).Error
}
