package repository

import (
	"context"
	"errors"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations.
type LikeRepository interface {
	Find(ctx context.Context, userID, postID uint) (*models.Like, error)
	// Toggle flips the like state for (userID, postID) in a single
	// transaction and returns the resulting state: true when a like was
	// created, false when an existing like was removed. The delete runs
	// first so the existing state decides the branch atomically; the unique
	// (user_id, post_id) index rejects the losing insert under a race.
	Toggle(ctx context.Context, userID, postID uint) (bool, error)
	CountForPost(ctx context.Context, postID uint) (int64, error)
}

// likeRepository implements LikeRepository
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Find(ctx context.Context, userID, postID uint) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&like).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) Toggle(ctx context.Context, userID, postID uint) (bool, error) {
	var liked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			liked = false
			return nil
		}

		liked = true
		return tx.Create(&models.Like{UserID: userID, PostID: postID}).Error
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

func (r *likeRepository) CountForPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}
