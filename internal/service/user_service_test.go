package service

import (
	"context"
	"testing"

	"tapestry/internal/models"
	"tapestry/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, models.IsValidation(err), "expected validation error, got %v", err)
}

func validProfileInput(userID string) UpsertProfileInput {
	return UpsertProfileInput{
		UserID:   userID,
		Username: "Weaver",
		Name:     "Wendy Weaver",
		Bio:      "threads all the way down",
		Image:    "https://cdn.example.com/avatars/wendy.png",
	}
}

func TestUserService_UpsertProfile_Validation(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo())
	ctx := context.Background()

	t.Run("empty user id", func(t *testing.T) {
		t.Parallel()
		in := validProfileInput("")
		_, err := svc.UpsertProfile(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("username too short", func(t *testing.T) {
		t.Parallel()
		in := validProfileInput("user-1")
		in.Username = "a"
		_, err := svc.UpsertProfile(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("bio too short", func(t *testing.T) {
		t.Parallel()
		in := validProfileInput("user-1")
		in.Bio = "hi"
		_, err := svc.UpsertProfile(ctx, in)
		assertValidationError(t, err)
	})

	t.Run("image not a url", func(t *testing.T) {
		t.Parallel()
		in := validProfileInput("user-1")
		in.Image = "not a url"
		_, err := svc.UpsertProfile(ctx, in)
		assertValidationError(t, err)
	})
}

func TestUserService_UpsertProfile_NormalizesUsername(t *testing.T) {
	t.Parallel()

	var written *models.User
	repo := noopUserRepo()
	repo.upsertFn = func(_ context.Context, u *models.User) error {
		written = u
		return nil
	}
	repo.getFn = func(_ context.Context, externalID string) (*models.User, error) {
		return written, nil
	}

	svc := NewUserService(repo)
	user, err := svc.UpsertProfile(context.Background(), validProfileInput("user-1"))
	require.NoError(t, err)
	assert.Equal(t, "weaver", user.Username)
	assert.True(t, user.Onboarded)
	assert.Equal(t, "user-1", user.ExternalID)
}

func TestUserService_FetchProfile(t *testing.T) {
	t.Parallel()

	t.Run("empty id rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo())
		_, err := svc.FetchProfile(context.Background(), "  ")
		assertValidationError(t, err)
	})

	t.Run("missing user is a branchable not-found", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.getFn = func(_ context.Context, externalID string) (*models.User, error) {
			return nil, models.NewNotFoundError("User", externalID)
		}
		svc := NewUserService(repo)
		_, err := svc.FetchProfile(context.Background(), "ghost")
		assert.True(t, models.IsNotFound(err))
	})
}

func TestUserService_ListUsers_Validation(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo())
	ctx := context.Background()

	_, _, err := svc.ListUsers(ctx, ListUsersInput{Page: 0, PageSize: 10})
	assertValidationError(t, err)

	_, _, err = svc.ListUsers(ctx, ListUsersInput{Page: 1, PageSize: 0})
	assertValidationError(t, err)

	_, _, err = svc.ListUsers(ctx, ListUsersInput{Page: 1, PageSize: 10, SortDirection: "sideways"})
	assertValidationError(t, err)
}

func TestUserService_ListUsers_PassesFilterAndComputesHasNext(t *testing.T) {
	t.Parallel()

	var captured repository.ListUsersFilter
	repo := noopUserRepo()
	repo.listFn = func(_ context.Context, f repository.ListUsersFilter) ([]models.User, int64, error) {
		captured = f
		return []models.User{{ID: 2}, {ID: 3}}, 5, nil
	}

	svc := NewUserService(repo)
	users, hasNext, err := svc.ListUsers(context.Background(), ListUsersInput{
		RequestingUserID: "user-1",
		Search:           "wen",
		Page:             2,
		PageSize:         2,
	})
	require.NoError(t, err)
	assert.Len(t, users, 2)
	// total 5 > offset 2 + returned 2
	assert.True(t, hasNext)

	assert.Equal(t, "user-1", captured.ExcludeExternalID)
	assert.Equal(t, "wen", captured.Search)
	assert.Equal(t, 2, captured.Limit)
	assert.Equal(t, 2, captured.Offset)
	assert.True(t, captured.Descending)
}

func TestUserService_ListUsers_LastPageHasNoNext(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.listFn = func(_ context.Context, f repository.ListUsersFilter) ([]models.User, int64, error) {
		return []models.User{{ID: 5}}, 5, nil
	}

	svc := NewUserService(repo)
	_, hasNext, err := svc.ListUsers(context.Background(), ListUsersInput{
		Page: 3, PageSize: 2, SortDirection: SortAscending,
	})
	require.NoError(t, err)
	assert.False(t, hasNext)
}
