package models

import (
	"time"

	"github.com/google/uuid"
)

// MentionEvent is the transient payload handed to the notification sink
// when a post mentions a known user. It is never persisted.
type MentionEvent struct {
	EventID         string    `json:"event_id"`
	PostID          uint      `json:"post_id"`
	SourceAuthorID  uint      `json:"source_author_id"`
	MentionedUserID uint      `json:"mentioned_user_id"`
	EmittedAt       time.Time `json:"emitted_at"`
}

// NewMentionEvent builds a MentionEvent with a fresh event id and timestamp.
func NewMentionEvent(postID, sourceAuthorID, mentionedUserID uint) MentionEvent {
	return MentionEvent{
		EventID:         uuid.NewString(),
		PostID:          postID,
		SourceAuthorID:  sourceAuthorID,
		MentionedUserID: mentionedUserID,
		EmittedAt:       time.Now().UTC(),
	}
}
