// Package service implements the domain rules for posts, likes, and feeds.
package service

import (
	"context"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"chirp/internal/cache"
	"chirp/internal/mentions"
	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/repository"
)

// NotificationSink receives mention events. Delivery is fire-and-forget from
// the service's perspective; the sink owns retries and transport.
type NotificationSink interface {
	EmitMention(ctx context.Context, ev models.MentionEvent) error
}

// PostService orchestrates post creation and like toggling.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	likeRepo repository.LikeRepository
	sink     NotificationSink
}

// CreatePostInput carries the fields for a new post.
type CreatePostInput struct {
	AuthorID uint
	Content  string
}

// NewPostService creates a new post service.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	likeRepo repository.LikeRepository,
	sink NotificationSink,
) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		likeRepo: likeRepo,
		sink:     sink,
	}
}

// CreatePost validates the input, persists the post, and scans its content
// for mentions once the write has committed. The mention scan is best-effort:
// its failures are logged and never affect the created post.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	author, err := s.userRepo.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("author", in.AuthorID)
	}

	post := &models.Post{
		Content:   in.Content,
		UserID:    author.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	cache.InvalidateAuthorFeed(ctx, author.ID)

	s.notifyMentions(ctx, post)

	full, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil || full == nil {
		// The write committed; return the sparse post rather than failing.
		post.Author = *author
		return post, nil
	}
	return full, nil
}

// ToggleLike flips the like state of (userID, postID) and reports the
// resulting state: true when the like now exists, false when it does not.
// A missing user or post is a silent no-op reported as false, matching the
// historical contract of this endpoint.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, nil
	}

	liked, err := s.likeRepo.Toggle(ctx, userID, postID)
	if err != nil {
		return false, err
	}

	cache.InvalidatePost(ctx, postID)
	cache.InvalidateAuthorFeed(ctx, post.UserID)

	return liked, nil
}

// notifyMentions resolves every distinct @handle in the post content and
// emits one mention event per resolved handle. Unknown handles are skipped.
// Self-mentions are emitted like any other mention.
func (s *PostService) notifyMentions(ctx context.Context, post *models.Post) {
	defer func() {
		if r := recover(); r != nil {
			middleware.Logger.ErrorContext(ctx, "panic in mention scan",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	tokens := mentions.Extract(post.Content)
	for _, handle := range mentions.Handles(tokens) {
		user, err := s.userRepo.GetByHandle(ctx, handle)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "mention lookup failed",
				slog.String("handle", handle),
				slog.String("error", err.Error()),
			)
			continue
		}
		if user == nil {
			continue
		}

		ev := models.NewMentionEvent(post.ID, post.UserID, user.ID)
		if err := s.sink.EmitMention(ctx, ev); err != nil {
			middleware.Logger.WarnContext(ctx, "mention emit failed",
				slog.String("event_id", ev.EventID),
				slog.String("error", err.Error()),
			)
		}
	}
}
