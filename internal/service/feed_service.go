package service

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"chirp/internal/cache"
	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/repository"
)

const (
	// DefaultPageSize is used when a caller passes a non-positive page size.
	DefaultPageSize = 20
	// MaxPageSize caps a single feed page.
	MaxPageSize = 100
)

// FeedService assembles author feeds and multi-author timelines.
type FeedService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository

	// rng drives the timeline shuffle. rand.Rand is not safe for concurrent
	// use, so it is guarded by mu.
	mu  sync.Mutex
	rng *rand.Rand
}

// NewFeedService creates a new feed service. A nil source seeds the shuffle
// from the clock; tests pass a fixed source to pin the timeline order.
func NewFeedService(postRepo repository.PostRepository, userRepo repository.UserRepository, src rand.Source) *FeedService {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &FeedService{
		postRepo: postRepo,
		userRepo: userRepo,
		rng:      rand.New(src),
	}
}

// FeedByAuthor returns one author's posts newest first, windowed by page and
// pageSize. The author may be given as a numeric id or a handle. The first
// page is served through the cache.
func (s *FeedService) FeedByAuthor(ctx context.Context, handleOrID string, page, pageSize int) ([]*models.Post, error) {
	author, err := s.resolveAuthor(ctx, handleOrID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("author", handleOrID)
	}

	page, pageSize = normalizeWindow(page, pageSize)
	offset := page * pageSize

	var posts []*models.Post
	if page == 0 && pageSize == DefaultPageSize {
		key := cache.AuthorFeedKey(author.ID)
		err = cache.Aside(ctx, key, &posts, cache.AuthorFeedTTL, func() error {
			var fetchErr error
			posts, fetchErr = s.postRepo.GetByAuthor(ctx, author.ID, pageSize, offset)
			return fetchErr
		})
	} else {
		posts, err = s.postRepo.GetByAuthor(ctx, author.ID, pageSize, offset)
	}
	if err != nil {
		return nil, err
	}

	middleware.FeedPagesServed.WithLabelValues("author").Inc()
	return posts, nil
}

// Timeline returns posts by the given set of authors in a fresh random order
// on every call, windowed by page and pageSize after the shuffle. Because the
// full order is re-randomized per call, windows from separate calls can
// repeat or omit posts relative to each other.
func (s *FeedService) Timeline(ctx context.Context, authorIDs []uint, page, pageSize int) ([]*models.Post, error) {
	posts, err := s.postRepo.ListByAuthors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.rng.Shuffle(len(posts), func(i, j int) {
		posts[i], posts[j] = posts[j], posts[i]
	})
	s.mu.Unlock()

	page, pageSize = normalizeWindow(page, pageSize)
	start := page * pageSize
	if start >= len(posts) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(posts) {
		end = len(posts)
	}

	middleware.FeedPagesServed.WithLabelValues("timeline").Inc()
	return posts[start:end], nil
}

func (s *FeedService) resolveAuthor(ctx context.Context, handleOrID string) (*models.User, error) {
	if id, err := strconv.ParseUint(handleOrID, 10, 64); err == nil {
		return s.userRepo.GetByID(ctx, uint(id))
	}
	return s.userRepo.GetByHandle(ctx, handleOrID)
}

func normalizeWindow(page, pageSize int) (int, int) {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}
