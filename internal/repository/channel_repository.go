package repository

import (
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"

	"gorm.io/gorm"
)

type ChannelRepository interface {
	Create(channel *models.Channel) error
	Update(channel *models.Channel) error
	Delete(channelID uint) error
	FindByID(channelID uint) (*models.Channel, error)
	ListByUser(userID uint) ([]models.Channel, error)
	GetUserChannelIDs(userID uint) ([]uint, error)
	IsMember(channelID, userID uint) (bool, error)
	AddMember(channelID, userID uint) error
	RemoveMember(channelID, userID uint) error
}

type channelRepository struct {
	db *gorm.DB
}

func NewChannelRepository(db *gorm.DB) ChannelRepository {
	return &channelRepository{db: db}
}

func (r *channelRepository) Create(channel *models.Channel) error {
	return r.db.Create(channel).Error
}

func (r *channelRepository) Update(channel *models.Channel) error {
	return r.db.Save(channel).Error
}

func (r *channelRepository) Delete(channelID uint) error {
	return r.db.Delete(&models.Channel{}, channelID).Error
}

func (r *channelRepository) FindByID(channelID uint) (*models.Channel, error) {
	var channel models.Channel
	if err := r.db.Preload("Members").First(&channel, channelID).Error; err != nil {
		return nil, err
	}
	return &channel, nil
}

func (r *channelRepository) ListByUser(userID uint) ([]models.Channel, error) {
	var channels []models.Channel
	err := r.db.
		Joins("JOIN channel_members cm ON cm.channel_id = channels.id").
		Where("cm.user_id = ?", userID).
		Find(&channels).Error
	return channels, err
}

func (r *channelRepository) GetUserChannelIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.
		Table("channel_members").
		Where("user_id = ?", userID).
		Pluck("channel_id", &ids).Error
	return ids, err
}

func (r *channelRepository) IsMember(channelID, userID uint) (bool, error) {
	var count int64
	err := r.db.
		Table("channel_members").
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *channelRepository) AddMember(channelID, userID uint) error {
	return r.db.
		Model(&models.Channel{Model: gorm.Model{ID: channelID}}).
		Association("Members").
		Append(&models.User{Model: gorm.Model{ID: userID}})
}

func (r *channelRepository) RemoveMember(channelID, userID uint) error {
	return r.db.
		Model(&models.Channel{Model: gorm.Model{ID: channelID}}).
		Association("Members").
		Delete(&models.User{Model: gorm.Model{ID: userID}})
}
