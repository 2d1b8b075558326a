// Package seed provides helpers to create demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"spotlight/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options controls how much data a seeding run generates.
type Options struct {
	Users        int
	PostsPerUser int
	// MaxDays spreads created_at timestamps over this many days back.
	MaxDays int
}

// DefaultOptions returns a modest dataset suitable for local development.
func DefaultOptions() Options {
	return Options{Users: 12, PostsPerUser: 4, MaxDays: 60}
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	opts Options
	rnd  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		opts: opts,
		rnd:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (f *Factory) backdate() time.Time {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 60
	}
	back := time.Duration(f.rnd.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rnd.Intn(24))*time.Hour +
		time.Duration(f.rnd.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

// CreateUser persists a fake user. Accounts get synthetic Clerk ids so
// they can never collide with real federated identities.
func (f *Factory) CreateUser() (*models.User, error) {
	username := fmt.Sprintf("%s%d", gofakeit.Username(), f.rnd.Intn(10000))
	user := &models.User{
		ClerkID:  "seed_" + gofakeit.UUID(),
		Username: username,
		Fullname: gofakeit.Name(),
		Email:    username + "@example.com",
		Bio:      gofakeit.Sentence(8),
		Image:    fmt.Sprintf("https://i.pravatar.cc/300?u=%s", username),
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("seeding user: %w", err)
	}
	return user, nil
}

// CreatePost persists a fake post for the user and bumps their posts
// counter so seeded counters agree with seeded rows.
func (f *Factory) CreatePost(user *models.User) (*models.Post, error) {
	key := fmt.Sprintf("posts/%d/%s", user.ID, gofakeit.UUID())
	post := &models.Post{
		UserID:     user.ID,
		ImageURL:   fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
		StorageKey: key,
		Caption:    gofakeit.Sentence(f.rnd.Intn(10) + 2),
		CreatedAt:  f.backdate(),
	}
	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("id = ?", user.ID).
			UpdateColumn("posts", gorm.Expr("posts + 1")).Error
	})
	if err != nil {
		return nil, fmt.Errorf("seeding post: %w", err)
	}
	return post, nil
}

// Run populates the database with a connected social mesh: users,
// posts, follows, likes, comments, and bookmarks, with every
// denormalized counter matching its rows and the notifications the
// mutations would have fanned out.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	var posts []*models.Post
	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := f.CreatePost(user)
			if err != nil {
				return err
			}
			posts = append(posts, post)
		}
	}

	for _, follower := range users {
		for _, followee := range users {
			if follower.ID == followee.ID || f.rnd.Intn(4) != 0 {
				continue
			}
			if err := f.follow(follower, followee); err != nil {
				return err
			}
		}
	}

	for _, user := range users {
		for _, post := range posts {
			if f.rnd.Intn(5) == 0 {
				if err := f.like(user, post); err != nil {
					return err
				}
			}
			if f.rnd.Intn(8) == 0 {
				if err := f.comment(user, post); err != nil {
					return err
				}
			}
			if f.rnd.Intn(10) == 0 {
				if err := db.Create(&models.Bookmark{UserID: user.ID, PostID: post.ID}).Error; err != nil {
					return fmt.Errorf("seeding bookmark: %w", err)
				}
			}
		}
	}

	log.Printf("Seeded %d users and %d posts", len(users), len(posts))
	return nil
}

func (f *Factory) follow(follower, followee *models.User) error {
	return f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Follow{FollowerID: follower.ID, FollowingID: followee.ID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", follower.ID).
			UpdateColumn("following", gorm.Expr("following + 1")).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", followee.ID).
			UpdateColumn("followers", gorm.Expr("followers + 1")).Error; err != nil {
			return err
		}
		return tx.Create(&models.Notification{
			ReceiverID: followee.ID,
			SenderID:   follower.ID,
			Type:       models.NotificationTypeFollow,
		}).Error
	})
}

func (f *Factory) like(user *models.User, post *models.Post) error {
	return f.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Like{UserID: user.ID, PostID: post.ID}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("likes", gorm.Expr("likes + 1")).Error; err != nil {
			return err
		}
		if post.UserID == user.ID {
			return nil
		}
		return tx.Create(&models.Notification{
			ReceiverID: post.UserID,
			SenderID:   user.ID,
			Type:       models.NotificationTypeLike,
			PostID:     &post.ID,
		}).Error
	})
}

func (f *Factory) comment(user *models.User, post *models.Post) error {
	return f.db.Transaction(func(tx *gorm.DB) error {
		comment := &models.Comment{
			PostID:  post.ID,
			UserID:  user.ID,
			Content: gofakeit.Sentence(f.rnd.Intn(12) + 2),
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", post.ID).
			UpdateColumn("comments", gorm.Expr("comments + 1")).Error; err != nil {
			return err
		}
		if post.UserID == user.ID {
			return nil
		}
		return tx.Create(&models.Notification{
			ReceiverID: post.UserID,
			SenderID:   user.ID,
			Type:       models.NotificationTypeComment,
			PostID:     &post.ID,
			CommentID:  &comment.ID,
		}).Error
	})
}
