package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	AuthorFeedKeyPrefix = "feed:author:%d"
	PostKeyPrefix       = "post:%d"
)

const (
	AuthorFeedTTL = 2 * time.Minute
	PostTTL       = 30 * time.Minute
)

// AuthorFeedKey is the cache key for the first page of an author's feed.
func AuthorFeedKey(authorID uint) string {
	return fmt.Sprintf(AuthorFeedKeyPrefix, authorID)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(PostKeyPrefix, postID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateAuthorFeed drops the cached hot page after a write touches it.
func InvalidateAuthorFeed(ctx context.Context, authorID uint) {
	Invalidate(ctx, AuthorFeedKey(authorID))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
}
