package repository

import (
	"context"
	"errors"

	"tapestry/internal/cache"
	"tapestry/internal/models"
	"tapestry/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ThreadRepository defines persistence operations for the reply graph.
type ThreadRepository interface {
	Create(ctx context.Context, thread *models.Thread) error
	CreateReply(ctx context.Context, parentID uint, reply *models.Thread) error
	GetByID(ctx context.Context, id uint) (*models.Thread, error)
	ListRoots(ctx context.Context, limit, offset int) ([]models.Thread, int64, error)
	GetTree(ctx context.Context, id uint, maxDepth int) (*models.Thread, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]models.Thread, error)
	ListRepliesTo(ctx context.Context, parentIDs []uint, excludeAuthorID uint) ([]models.Thread, error)
}

type threadRepository struct {
	db *gorm.DB
}

// NewThreadRepository creates a new ThreadRepository
func NewThreadRepository(db *gorm.DB) ThreadRepository {
	return &threadRepository{db: db}
}

// authorSummary limits the author join to the display projection; the full
// profile is never needed when rendering a thread.
func authorSummary(db *gorm.DB) *gorm.DB {
	return db.Select("id", "external_id", "username", "name", "image")
}

func childrenInOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

// Create inserts a top-level thread. The author association is expected to be
// populated by the caller and is never written here.
func (r *threadRepository) Create(ctx context.Context, thread *models.Thread) error {
	defer observability.TrackQuery("create", "threads")()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(thread).Error; err != nil {
		return models.NewStoreWriteError("create/update thread", err)
	}

	// The author's thread list is derived from this row, so their cached
	// profile is now stale.
	if thread.Author != nil {
		cache.InvalidateUser(ctx, thread.Author.ExternalID)
	}
	return nil
}

// CreateReply attaches a reply under parentID. The parent-existence check and
// the insert run in one store transaction; the reply row itself is the link
// into the parent's children, so a concurrent reply to the same parent can
// never be lost.
func (r *threadRepository) CreateReply(ctx context.Context, parentID uint, reply *models.Thread) error {
	defer observability.TrackQuery("create_reply", "threads")()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var parent models.Thread
		if err := tx.Select("id").First(&parent, parentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Thread", parentID)
			}
			return models.NewStoreReadError("fetch parent thread", err)
		}

		reply.ParentID = &parent.ID
		if err := tx.Omit(clause.Associations).Create(reply).Error; err != nil {
			return models.NewStoreWriteError("add comment", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateThread(ctx, parentID)
	if reply.Author != nil {
		cache.InvalidateUser(ctx, reply.Author.ExternalID)
	}
	return nil
}

// GetByID fetches a single thread record with its author resolved. Children
// are not loaded; use GetTree for expansion.
func (r *threadRepository) GetByID(ctx context.Context, id uint) (*models.Thread, error) {
	defer observability.TrackQuery("get", "threads")()

	var thread models.Thread
	err := cache.Aside(ctx, cache.ThreadKey(id), &thread, cache.ThreadTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Author", authorSummary).
			First(&thread, id).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Thread", id)
		}
		return nil, models.NewStoreReadError("fetch thread", err)
	}
	return &thread, nil
}

// ListRoots returns one feed page of top-level threads, newest first, with
// exactly one level of reply expansion, plus the total count of roots.
func (r *threadRepository) ListRoots(ctx context.Context, limit, offset int) ([]models.Thread, int64, error) {
	defer observability.TrackQuery("list_roots", "threads")()

	base := r.db.WithContext(ctx).Model(&models.Thread{}).Where("parent_id IS NULL")

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewStoreReadError("count posts", err)
	}

	var threads []models.Thread
	err := r.db.WithContext(ctx).
		Preload("Author", authorSummary).
		Preload("Children", childrenInOrder).
		Preload("Children.Author", authorSummary).
		Where("parent_id IS NULL").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&threads).Error
	if err != nil {
		return nil, 0, models.NewStoreReadError("fetch posts", err)
	}
	return threads, total, nil
}

// GetTree expands the full reply subtree under id, at most maxDepth levels
// below the root, resolving the author projection at every node. Each level
// is fetched as one batched query; the reply graph is a tree by invariant,
// so the walk terminates without a cycle guard.
func (r *threadRepository) GetTree(ctx context.Context, id uint, maxDepth int) (*models.Thread, error) {
	defer observability.TrackQuery("get_tree", "threads")()

	var root models.Thread
	err := r.db.WithContext(ctx).
		Preload("Author", authorSummary).
		First(&root, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Thread", id)
		}
		return nil, models.NewStoreReadError("fetch thread", err)
	}

	frontier := map[uint]*models.Thread{root.ID: &root}
	for depth := 0; depth < maxDepth && len(frontier) > 0; depth++ {
		parentIDs := make([]uint, 0, len(frontier))
		for pid := range frontier {
			parentIDs = append(parentIDs, pid)
		}

		var children []models.Thread
		err := r.db.WithContext(ctx).
			Preload("Author", authorSummary).
			Where("parent_id IN ?", parentIDs).
			Order("parent_id ASC, created_at ASC, id ASC").
			Find(&children).Error
		if err != nil {
			return nil, models.NewStoreReadError("fetch thread replies", err)
		}

		byParent := make(map[uint][]models.Thread, len(frontier))
		for _, child := range children {
			byParent[*child.ParentID] = append(byParent[*child.ParentID], child)
		}

		// Assign each parent's slice in full before taking element pointers
		// so later levels attach to the live nodes.
		next := make(map[uint]*models.Thread, len(children))
		for pid, kids := range byParent {
			parent := frontier[pid]
			parent.Children = kids
			for i := range parent.Children {
				next[parent.Children[i].ID] = &parent.Children[i]
			}
		}
		frontier = next
	}

	return &root, nil
}

// ListByAuthor returns every thread authored by the given user, roots and
// replies alike, in creation order.
func (r *threadRepository) ListByAuthor(ctx context.Context, authorID uint) ([]models.Thread, error) {
	defer observability.TrackQuery("list_by_author", "threads")()

	var threads []models.Thread
	err := r.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at ASC, id ASC").
		Find(&threads).Error
	if err != nil {
		return nil, models.NewStoreReadError("fetch user threads", err)
	}
	return threads, nil
}

// ListRepliesTo returns the replies attached under any of parentIDs, skipping
// those authored by excludeAuthorID. Ordering follows the flattened child
// collection: parents in creation order, then each parent's replies in
// creation order.
func (r *threadRepository) ListRepliesTo(ctx context.Context, parentIDs []uint, excludeAuthorID uint) ([]models.Thread, error) {
	defer observability.TrackQuery("list_replies", "threads")()

	if len(parentIDs) == 0 {
		return nil, nil
	}

	var replies []models.Thread
	err := r.db.WithContext(ctx).
		Preload("Author", authorSummary).
		Where("parent_id IN ? AND author_id <> ?", parentIDs, excludeAuthorID).
		Order("parent_id ASC, created_at ASC, id ASC").
		Find(&replies).Error
	if err != nil {
		return nil, models.NewStoreReadError("fetch activity", err)
	}
	return replies, nil
}
