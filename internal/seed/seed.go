// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"tapestry/internal/repository"
	"tapestry/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers   int
	NumThreads int
	NumReplies int
	// ReplyDepthBias is the chance (0..1) that a reply attaches to another
	// reply instead of a top-level thread, producing deeper trees.
	ReplyDepthBias float64
}

// DefaultOptions returns a small but representative data set.
func DefaultOptions() Options {
	return Options{
		NumUsers:       25,
		NumThreads:     60,
		NumReplies:     200,
		ReplyDepthBias: 0.35,
	}
}

// Run populates the database through the service layer so seeded data obeys
// the same validation and write paths as real traffic.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	userRepo := repository.NewUserRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	userService := service.NewUserService(userRepo)
	threadService := service.NewThreadService(threadRepo, userRepo)

	userIDs := make([]string, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		externalID := "seed-" + uuid.NewString()
		username := strings.ToLower(gofakeit.Username())
		if len(username) < 2 {
			username = "user" + username
		}
		if len(username) > 30 {
			username = username[:30]
		}
		_, err := userService.UpsertProfile(ctx, service.UpsertProfileInput{
			UserID:   externalID,
			Username: username,
			Name:     gofakeit.Name(),
			Bio:      gofakeit.Sentence(8),
			Image:    fmt.Sprintf("https://picsum.photos/seed/%s/200/200", uuid.NewString()),
		})
		if err != nil {
			return fmt.Errorf("seed user %d: %w", i, err)
		}
		userIDs = append(userIDs, externalID)
	}

	threadIDs := make([]uint, 0, opts.NumThreads)
	for i := 0; i < opts.NumThreads; i++ {
		author := userIDs[rng.Intn(len(userIDs))]
		thread, err := threadService.CreateThread(ctx, service.CreateThreadInput{
			Text:     gofakeit.Paragraph(1, 2, 8, " "),
			AuthorID: author,
		})
		if err != nil {
			return fmt.Errorf("seed thread %d: %w", i, err)
		}
		threadIDs = append(threadIDs, thread.ID)
	}

	// Replies may land under other replies, growing multi-level trees.
	replyIDs := make([]uint, 0, opts.NumReplies)
	for i := 0; i < opts.NumReplies; i++ {
		parent := threadIDs[rng.Intn(len(threadIDs))]
		if len(replyIDs) > 0 && rng.Float64() < opts.ReplyDepthBias {
			parent = replyIDs[rng.Intn(len(replyIDs))]
		}
		author := userIDs[rng.Intn(len(userIDs))]
		reply, err := threadService.AddReply(ctx, service.AddReplyInput{
			ParentID: parent,
			Text:     gofakeit.Sentence(12),
			AuthorID: author,
		})
		if err != nil {
			return fmt.Errorf("seed reply %d: %w", i, err)
		}
		replyIDs = append(replyIDs, reply.ID)
	}

	return nil
}
