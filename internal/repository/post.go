package repository

import (
	"context"
	"errors"

	"chirp/internal/models"

	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations. All reads
// eagerly resolve the author, likes, and hashtags of each post.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	// GetByAuthor returns the author's posts newest first, windowed by
	// limit/offset. Ties on created_at break on id so pages are stable.
	GetByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error)
	// ListByAuthors returns every post authored by any id in the set, in no
	// particular order. Ordering and windowing are the caller's concern.
	ListByAuthors(ctx context.Context, authorIDs []uint) ([]*models.Post, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Likes").
		Preload("Likes.User").
		Preload("Hashtags")
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withAssociations(r.db.WithContext(ctx)).First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetByAuthor(ctx context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withAssociations(r.db.WithContext(ctx)).
		Where("user_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) ListByAuthors(ctx context.Context, authorIDs []uint) ([]*models.Post, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	var posts []*models.Post
	err := r.withAssociations(r.db.WithContext(ctx)).
		Where("user_id IN ?", authorIDs).
		Find(&posts).Error
	return posts, err
}
