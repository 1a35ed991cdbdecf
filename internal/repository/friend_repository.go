package repository

import (
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"

	"gorm.io/gorm"
)

type FriendRepository interface {
	Create(friend *models.Friend) error
	UpdateStatus(userID, friendID uint, status string) error
	Find(userID, friendID uint) (*models.Friend, error)
	ListByUser(userID uint) ([]models.Friend, error)
	ListAcceptedIDs(userID uint) ([]uint, error)
	Delete(userID, friendID uint) error
}

type friendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &friendRepository{db: db}
}

func (r *friendRepository) Create(friend *models.Friend) error {
	return r.db.Create(friend).Error
}

func (r *friendRepository) UpdateStatus(userID, friendID uint, status string) error {
	return r.db.
		Model(&models.Friend{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Update("status", status).Error
}

func (r *friendRepository) Find(userID, friendID uint) (*models.Friend, error) {
	var friend models.Friend
	err := r.db.
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		First(&friend).Error
	if err != nil {
		return nil, err
	}
	return &friend, nil
}

func (r *friendRepository) ListByUser(userID uint) ([]models.Friend, error) {
	var friends []models.Friend
	err := r.db.
		Preload("FriendUser").
		Where("user_id = ? OR (friend_id = ? AND status = ?)", userID, userID, models.FriendStatusAccepted).
		Find(&friends).Error
	return friends, err
}

func (r *friendRepository) ListAcceptedIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.
		Model(&models.Friend{}).
		Where("user_id = ? AND status = ?", userID, models.FriendStatusAccepted).
		Pluck("friend_id", &ids).Error
	return ids, err
}

func (r *friendRepository) Delete(userID, friendID uint) error {
	return r.db.
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&models.Friend{}).Error
}
