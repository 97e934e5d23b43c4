// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"chirp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options control the amount and shape of generated data.
type Options struct {
	Users        int
	PostsPerUser int
	MaxDays      int
}

// Defaults returns sensible development defaults.
func Defaults() Options {
	return Options{Users: 10, PostsPerUser: 8, MaxDays: 60}
}

// Run populates the database with fake users, posts, likes, and mentions.
// Existing users (matched by handle) are reused so runs are repeatable.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user := &models.User{
			Handle:      strings.ToLower(gofakeit.Username()),
			DisplayName: gofakeit.Name(),
		}
		if err := db.Where("handle = ?", user.Handle).FirstOrCreate(user).Error; err != nil {
			return fmt.Errorf("seed user %q: %w", user.Handle, err)
		}
		users = append(users, user)
	}

	maxDays := opts.MaxDays
	if maxDays <= 0 {
		maxDays = 60
	}

	var posts []*models.Post
	for _, u := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			content := gofakeit.Sentence(r.Intn(12) + 4)
			// Sprinkle in mentions and hashtags so the scanner has material.
			if r.Intn(3) == 0 {
				target := users[r.Intn(len(users))]
				content = fmt.Sprintf("%s @%s", content, target.Handle)
			}
			if r.Intn(4) == 0 {
				content = fmt.Sprintf("%s #%s", content, gofakeit.BuzzWord())
			}

			back := time.Duration(r.Intn(maxDays*24)) * time.Hour
			posts = append(posts, &models.Post{
				Content:   content,
				UserID:    u.ID,
				CreatedAt: time.Now().UTC().Add(-back),
			})
		}
	}
	if len(posts) > 0 {
		if err := db.Create(&posts).Error; err != nil {
			return fmt.Errorf("seed posts: %w", err)
		}
	}

	// Random likes, skipping duplicates on the unique (user_id, post_id) index.
	likes := 0
	for _, p := range posts {
		for _, u := range users {
			if r.Intn(5) != 0 {
				continue
			}
			res := db.Where(models.Like{UserID: u.ID, PostID: p.ID}).
				FirstOrCreate(&models.Like{UserID: u.ID, PostID: p.ID})
			if res.Error != nil {
				return fmt.Errorf("seed like: %w", res.Error)
			}
			likes++
		}
	}

	log.Printf("seeded %d users, %d posts, %d likes", len(users), len(posts), likes)
	return nil
}
