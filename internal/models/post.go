package models

import (
	"time"
)

// Post represents a single authored content item.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Author  User   `gorm:"foreignKey:UserID" json:"author"`
	// CreatedAt is stamped by the service at creation time, not by the store.
	CreatedAt time.Time `json:"created_at"`
	Hashtags  []Hashtag `gorm:"many2many:post_hashtags" json:"hashtags"`
	Likes     []Like    `gorm:"foreignKey:PostID" json:"likes"`
}
