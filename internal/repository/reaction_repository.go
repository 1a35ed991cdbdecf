package repository

import (
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"

	"gorm.io/gorm"
)

type ReactionRepository interface {
	Add(messageID, userID uint, emoji string) error
	Remove(messageID, userID uint, emoji string) error
	ListByMessage(messageID uint) ([]models.Reaction, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Add is idempotent: re-adding the same (message, user, emoji) triple
// is a no-op thanks to FirstOrCreate against the unique index
func (r *reactionRepository) Add(messageID, userID uint, emoji string) error {
	reaction := models.Reaction{
		MessageID: messageID,
		UserID:    userID,
		Emoji:     emoji,
	}
	return r.db.
		Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
		FirstOrCreate(&reaction).Error
}

func (r *reactionRepository) Remove(messageID, userID uint, emoji string) error {
	return r.db.
		Where("message_id = ? AND user_id = ? AND emoji = ?", messageID, userID, emoji).
		Delete(&models.Reaction{}).Error
}

func (r *reactionRepository) ListByMessage(messageID uint) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.Where("message_id = ?", messageID).Find(&reactions).Error
	return reactions, err
}
