package models

// User is an author reference. The record is owned by the external identity
// service; this service reads it by id or handle and never writes it.
type User struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Handle      string `gorm:"uniqueIndex;not null" json:"handle"`
	DisplayName string `json:"display_name"`
}
