package service

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePosts(authorID uint, n int) []*models.Post {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		posts = append(posts, &models.Post{
			ID:        uint(i + 1),
			UserID:    authorID,
			Content:   "post",
			CreatedAt: base.Add(-time.Duration(i) * time.Hour),
		})
	}
	return posts
}

func TestFeedByAuthor(t *testing.T) {
	alice := &models.User{ID: 1, Handle: "alice"}

	t.Run("returns posts newest first", func(t *testing.T) {
		posts := &postRepoStub{
			getByAuthorFn: func(_ context.Context, authorID uint, limit, offset int) ([]*models.Post, error) {
				assert.Equal(t, uint(1), authorID)
				return makePosts(authorID, 5), nil
			},
		}
		svc := NewFeedService(posts, knownUsers(alice), rand.NewSource(1))

		got, err := svc.FeedByAuthor(context.Background(), "1", 0, DefaultPageSize)
		require.NoError(t, err)
		require.Len(t, got, 5)
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].CreatedAt.After(got[i-1].CreatedAt),
				"posts must be in non-increasing recency order")
		}
	})

	t.Run("resolves author by handle", func(t *testing.T) {
		var resolvedBy string
		users := &userRepoStub{
			getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
				resolvedBy = "id"
				return alice, nil
			},
			getByHandleFn: func(_ context.Context, handle string) (*models.User, error) {
				resolvedBy = "handle"
				assert.Equal(t, "alice", handle)
				return alice, nil
			},
		}
		svc := NewFeedService(&postRepoStub{}, users, rand.NewSource(1))

		_, err := svc.FeedByAuthor(context.Background(), "alice", 0, 10)
		require.NoError(t, err)
		assert.Equal(t, "handle", resolvedBy)

		_, err = svc.FeedByAuthor(context.Background(), "1", 0, 10)
		require.NoError(t, err)
		assert.Equal(t, "id", resolvedBy)
	})

	t.Run("unknown author yields NOT_FOUND", func(t *testing.T) {
		svc := NewFeedService(&postRepoStub{}, knownUsers(alice), rand.NewSource(1))

		_, err := svc.FeedByAuthor(context.Background(), "nobody", 0, 10)
		var appErr *models.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})

	t.Run("windowing maps page to limit and offset", func(t *testing.T) {
		var gotLimit, gotOffset int
		posts := &postRepoStub{
			getByAuthorFn: func(_ context.Context, _ uint, limit, offset int) ([]*models.Post, error) {
				gotLimit, gotOffset = limit, offset
				return nil, nil
			},
		}
		svc := NewFeedService(posts, knownUsers(alice), rand.NewSource(1))

		_, err := svc.FeedByAuthor(context.Background(), "1", 3, 15)
		require.NoError(t, err)
		assert.Equal(t, 15, gotLimit)
		assert.Equal(t, 45, gotOffset)
	})

	t.Run("page size is clamped", func(t *testing.T) {
		var gotLimit int
		posts := &postRepoStub{
			getByAuthorFn: func(_ context.Context, _ uint, limit, _ int) ([]*models.Post, error) {
				gotLimit = limit
				return nil, nil
			},
		}
		svc := NewFeedService(posts, knownUsers(alice), rand.NewSource(1))

		_, err := svc.FeedByAuthor(context.Background(), "1", 1, 1000)
		require.NoError(t, err)
		assert.Equal(t, MaxPageSize, gotLimit)

		_, err = svc.FeedByAuthor(context.Background(), "1", 1, -5)
		require.NoError(t, err)
		assert.Equal(t, DefaultPageSize, gotLimit)
	})
}

func TestTimeline(t *testing.T) {
	alice := &models.User{ID: 1, Handle: "alice"}
	bob := &models.User{ID: 2, Handle: "bob"}

	// timelinePosts returns a fresh slice per call so the in-place shuffle of
	// one call cannot leak into the next.
	timelinePosts := func(n int) func(context.Context, []uint) ([]*models.Post, error) {
		return func(_ context.Context, authorIDs []uint) ([]*models.Post, error) {
			posts := make([]*models.Post, 0, n)
			for i := 0; i < n; i++ {
				posts = append(posts, &models.Post{
					ID:     uint(i + 1),
					UserID: authorIDs[i%len(authorIDs)],
				})
			}
			return posts, nil
		}
	}

	t.Run("returns only posts by the requested authors", func(t *testing.T) {
		posts := &postRepoStub{listByAuthorsFn: timelinePosts(10)}
		svc := NewFeedService(posts, knownUsers(alice, bob), rand.NewSource(1))

		got, err := svc.Timeline(context.Background(), []uint{1, 2}, 0, 20)
		require.NoError(t, err)
		require.Len(t, got, 10)
		for _, p := range got {
			assert.Contains(t, []uint{1, 2}, p.UserID)
		}
	})

	t.Run("same seed gives the same order", func(t *testing.T) {
		posts := &postRepoStub{listByAuthorsFn: timelinePosts(12)}

		a := NewFeedService(posts, knownUsers(alice, bob), rand.NewSource(7))
		b := NewFeedService(posts, knownUsers(alice, bob), rand.NewSource(7))

		gotA, err := a.Timeline(context.Background(), []uint{1, 2}, 0, 20)
		require.NoError(t, err)
		gotB, err := b.Timeline(context.Background(), []uint{1, 2}, 0, 20)
		require.NoError(t, err)

		require.Len(t, gotB, len(gotA))
		for i := range gotA {
			assert.Equal(t, gotA[i].ID, gotB[i].ID)
		}
	})

	t.Run("each call reshuffles", func(t *testing.T) {
		posts := &postRepoStub{listByAuthorsFn: timelinePosts(50)}
		svc := NewFeedService(posts, knownUsers(alice, bob), rand.NewSource(7))

		first, err := svc.Timeline(context.Background(), []uint{1, 2}, 0, 50)
		require.NoError(t, err)
		second, err := svc.Timeline(context.Background(), []uint{1, 2}, 0, 50)
		require.NoError(t, err)

		same := true
		for i := range first {
			if first[i].ID != second[i].ID {
				same = false
				break
			}
		}
		assert.False(t, same, "consecutive calls should not produce the same permutation of 50 posts")
	})

	t.Run("window bounds", func(t *testing.T) {
		posts := &postRepoStub{listByAuthorsFn: timelinePosts(10)}
		svc := NewFeedService(posts, knownUsers(alice, bob), rand.NewSource(1))

		got, err := svc.Timeline(context.Background(), []uint{1, 2}, 1, 3)
		require.NoError(t, err)
		assert.Len(t, got, 3)

		got, err = svc.Timeline(context.Background(), []uint{1, 2}, 3, 3)
		require.NoError(t, err)
		assert.Len(t, got, 1)

		got, err = svc.Timeline(context.Background(), []uint{1, 2}, 9, 3)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("empty author set yields empty timeline", func(t *testing.T) {
		posts := &postRepoStub{
			listByAuthorsFn: func(_ context.Context, authorIDs []uint) ([]*models.Post, error) {
				assert.Empty(t, authorIDs)
				return nil, nil
			},
		}
		svc := NewFeedService(posts, knownUsers(alice), rand.NewSource(1))

		got, err := svc.Timeline(context.Background(), nil, 0, 20)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
