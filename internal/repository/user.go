// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"tapestry/internal/cache"
	"tapestry/internal/models"
	"tapestry/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListUsersFilter narrows and pages a user directory listing.
type ListUsersFilter struct {
	// ExcludeExternalID drops the requesting user from the results.
	ExcludeExternalID string
	// Search is matched case-insensitively as a literal substring of
	// username or name. LIKE metacharacters in it are escaped, never
	// interpreted.
	Search     string
	Limit      int
	Offset     int
	Descending bool
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Upsert(ctx context.Context, user *models.User) error
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
	List(ctx context.Context, filter ListUsersFilter) ([]models.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Upsert writes the profile keyed by external id, creating it on first save.
// Repeating the same write leaves the same final state.
func (r *userRepository) Upsert(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("upsert", "users")()

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "external_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"username", "name", "bio", "image", "onboarded", "updated_at",
			}),
		}).
		Create(user).Error
	if err != nil {
		return models.NewStoreWriteError("create/update user", err)
	}

	cache.InvalidateUser(ctx, user.ExternalID)
	return nil
}

// GetByExternalID fetches a full profile, including the authored threads in
// creation order. Missing users are a first-class NOT_FOUND result so callers
// can detect first-time users.
func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	defer observability.TrackQuery("get", "users")()

	var user models.User
	err := cache.Aside(ctx, cache.UserKey(externalID), &user, cache.UserTTL, func() error {
		return r.db.WithContext(ctx).
			Preload("Threads", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at ASC, id ASC")
			}).
			Where("external_id = ?", externalID).
			First(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", externalID)
		}
		return nil, models.NewStoreReadError("fetch user", err)
	}
	return &user, nil
}

// List returns one page of the directory plus the total matching count.
func (r *userRepository) List(ctx context.Context, filter ListUsersFilter) ([]models.User, int64, error) {
	defer observability.TrackQuery("list", "users")()

	base := r.db.WithContext(ctx).Model(&models.User{})
	if filter.ExcludeExternalID != "" {
		base = base.Where("external_id <> ?", filter.ExcludeExternalID)
	}
	if filter.Search != "" {
		pattern := "%" + EscapeLike(strings.ToLower(filter.Search)) + "%"
		base = base.Where(
			`LOWER(username) LIKE ? ESCAPE '\' OR LOWER(name) LIKE ? ESCAPE '\'`,
			pattern, pattern,
		)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewStoreReadError("count users", err)
	}

	order := "created_at ASC, id ASC"
	if filter.Descending {
		order = "created_at DESC, id DESC"
	}

	var users []models.User
	if err := base.
		Order(order).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&users).Error; err != nil {
		return nil, 0, models.NewStoreReadError("list users", err)
	}
	return users, total, nil
}

// EscapeLike escapes LIKE metacharacters so user input matches literally.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
