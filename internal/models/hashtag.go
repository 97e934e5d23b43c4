package models

// Hashtag is a `#word` token attached to posts. Tags are recognized during
// the content scan but topic indexing is handled outside this service; the
// association is loaded eagerly with each post.
type Hashtag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
