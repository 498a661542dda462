package service

import (
	"context"
	"strings"

	"tapestry/internal/models"
	"tapestry/internal/observability"
	"tapestry/internal/repository"
)

const (
	// DefaultExpansionDepth is how many reply levels below the root a
	// thread expands to when the caller does not ask for a depth.
	DefaultExpansionDepth = 2
	// MaxExpansionDepth bounds caller-supplied depths.
	MaxExpansionDepth = 10

	maxThreadTextLen = 10000
)

// ThreadService exposes the thread graph, feed, expansion, and activity
// operations.
type ThreadService struct {
	threadRepo repository.ThreadRepository
	userRepo   repository.UserRepository
}

// CreateThreadInput carries a new top-level post.
type CreateThreadInput struct {
	Text     string
	AuthorID string
	// CommunityID is accepted for interface stability but ignored;
	// community scoping is an unused extension point.
	CommunityID string
}

// AddReplyInput carries a reply to an existing thread.
type AddReplyInput struct {
	ParentID uint
	Text     string
	AuthorID string
}

// NewThreadService returns a new ThreadService.
func NewThreadService(threadRepo repository.ThreadRepository, userRepo repository.UserRepository) *ThreadService {
	return &ThreadService{threadRepo: threadRepo, userRepo: userRepo}
}

func (s *ThreadService) validateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return models.NewValidationError("Thread text is required")
	}
	if len(text) > maxThreadTextLen {
		return models.NewValidationError("Thread text too long (max 10000 characters)")
	}
	return nil
}

func (s *ThreadService) resolveAuthor(ctx context.Context, authorID string) (*models.User, error) {
	if strings.TrimSpace(authorID) == "" {
		return nil, models.NewValidationError("Author id is required")
	}
	return s.userRepo.GetByExternalID(ctx, authorID)
}

// CreateThread creates a new top-level thread for the given author. The
// community reference is always left null in this scope.
func (s *ThreadService) CreateThread(ctx context.Context, in CreateThreadInput) (*models.Thread, error) {
	if err := s.validateText(in.Text); err != nil {
		return nil, err
	}
	author, err := s.resolveAuthor(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}

	thread := &models.Thread{
		Text:     in.Text,
		AuthorID: author.ID,
		Author:   author,
	}
	if err := s.threadRepo.Create(ctx, thread); err != nil {
		return nil, err
	}

	observability.ThreadsCreated.WithLabelValues("root").Inc()
	return thread, nil
}

// AddReply attaches a reply under an existing thread. A missing parent is a
// NOT_FOUND failure and performs no write.
func (s *ThreadService) AddReply(ctx context.Context, in AddReplyInput) (*models.Thread, error) {
	if in.ParentID == 0 {
		return nil, models.NewValidationError("Parent thread id is required")
	}
	if err := s.validateText(in.Text); err != nil {
		return nil, err
	}
	author, err := s.resolveAuthor(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}

	reply := &models.Thread{
		Text:     in.Text,
		AuthorID: author.ID,
		Author:   author,
	}
	if err := s.threadRepo.CreateReply(ctx, in.ParentID, reply); err != nil {
		return nil, err
	}

	observability.ThreadsCreated.WithLabelValues("reply").Inc()
	return reply, nil
}

// FetchFeed returns one page of top-level threads, newest first, each with
// one level of reply expansion, plus whether more pages follow.
func (s *ThreadService) FetchFeed(ctx context.Context, page, pageSize int) ([]models.Thread, bool, error) {
	if page <= 0 {
		return nil, false, models.NewValidationError("Page number must be positive")
	}
	if pageSize <= 0 {
		return nil, false, models.NewValidationError("Page size must be positive")
	}

	offset := (page - 1) * pageSize
	threads, total, err := s.threadRepo.ListRoots(ctx, pageSize, offset)
	if err != nil {
		return nil, false, err
	}

	hasNext := total > int64(offset+len(threads))
	return threads, hasNext, nil
}

// ExpandThread resolves the nested structure of a single thread down to
// maxDepth reply levels below the root. Depth 0 selects the default.
func (s *ThreadService) ExpandThread(ctx context.Context, threadID uint, maxDepth int) (*models.Thread, error) {
	if threadID == 0 {
		return nil, models.NewValidationError("Thread id is required")
	}
	if maxDepth < 0 || maxDepth > MaxExpansionDepth {
		return nil, models.NewValidationError("Expansion depth out of range")
	}
	if maxDepth == 0 {
		maxDepth = DefaultExpansionDepth
	}
	return s.threadRepo.GetTree(ctx, threadID, maxDepth)
}

// FetchActivity returns the replies other users have posted under any thread
// authored by userID, self-replies excluded, authors resolved.
func (s *ThreadService) FetchActivity(ctx context.Context, userID string) ([]models.Thread, error) {
	user, err := s.resolveAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	authored, err := s.threadRepo.ListByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	// Dedupe defensively; the data model guarantees unique child links.
	parentIDs := make([]uint, 0, len(authored))
	seen := make(map[uint]struct{}, len(authored))
	for _, t := range authored {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}
		parentIDs = append(parentIDs, t.ID)
	}

	return s.threadRepo.ListRepliesTo(ctx, parentIDs, user.ID)
}
