// Package service implements the application's business operations on top of
// the repository layer.
package service

import (
	"context"
	"strings"

	"tapestry/internal/models"
	"tapestry/internal/repository"
	"tapestry/internal/validation"
)

// SortAscending and SortDescending are the accepted directory sort directions.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// UserService exposes the user directory operations.
type UserService struct {
	userRepo repository.UserRepository
}

// UpsertProfileInput carries a profile save. UserID is the opaque external id
// asserted by the identity provider.
type UpsertProfileInput struct {
	UserID   string
	Username string
	Name     string
	Bio      string
	Image    string
}

// ListUsersInput pages the user directory. Page is 1-based.
type ListUsersInput struct {
	RequestingUserID string
	Search           string
	Page             int
	PageSize         int
	SortDirection    string
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// UpsertProfile creates or updates the profile keyed by the external user id,
// normalizing the username to lowercase and marking the user onboarded.
// Calling it twice with the same arguments leaves the same final state.
func (s *UserService) UpsertProfile(ctx context.Context, in UpsertProfileInput) (*models.User, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, models.NewValidationError("User id is required")
	}
	if err := validation.ValidateProfile(in.Username, in.Name, in.Bio, in.Image); err != nil {
		return nil, err
	}

	user := &models.User{
		ExternalID: in.UserID,
		Username:   strings.ToLower(in.Username),
		Name:       in.Name,
		Bio:        in.Bio,
		Image:      in.Image,
		Onboarded:  true,
	}
	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, err
	}

	return s.userRepo.GetByExternalID(ctx, in.UserID)
}

// FetchProfile looks up a profile by external id. A missing user surfaces as
// a NOT_FOUND error callers can branch on; first-time users have no profile
// until their first save.
func (s *UserService) FetchProfile(ctx context.Context, userID string) (*models.User, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, models.NewValidationError("User id is required")
	}
	return s.userRepo.GetByExternalID(ctx, userID)
}

// ListUsers returns one page of the directory, excluding the requesting user,
// and whether more pages follow.
func (s *UserService) ListUsers(ctx context.Context, in ListUsersInput) ([]models.User, bool, error) {
	if in.Page <= 0 {
		return nil, false, models.NewValidationError("Page number must be positive")
	}
	if in.PageSize <= 0 {
		return nil, false, models.NewValidationError("Page size must be positive")
	}

	descending := true
	switch in.SortDirection {
	case "", SortDescending:
	case SortAscending:
		descending = false
	default:
		return nil, false, models.NewValidationError("Sort direction must be \"asc\" or \"desc\"")
	}

	offset := (in.Page - 1) * in.PageSize
	users, total, err := s.userRepo.List(ctx, repository.ListUsersFilter{
		ExcludeExternalID: in.RequestingUserID,
		Search:            strings.TrimSpace(in.Search),
		Limit:             in.PageSize,
		Offset:            offset,
		Descending:        descending,
	})
	if err != nil {
		return nil, false, err
	}

	hasNext := total > int64(offset+len(users))
	return users, hasNext, nil
}
