package service

import (
	"context"
	"strings"
	"testing"

	"tapestry/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThreadService_CreateThread_Validation(t *testing.T) {
	t.Parallel()

	svc := NewThreadService(noopThreadRepo(), noopUserRepo())
	ctx := context.Background()

	t.Run("empty text", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateThread(ctx, CreateThreadInput{AuthorID: "user-1"})
		assertValidationError(t, err)
	})

	t.Run("text too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateThread(ctx, CreateThreadInput{
			Text:     strings.Repeat("x", 10001),
			AuthorID: "user-1",
		})
		assertValidationError(t, err)
	})

	t.Run("empty author id", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateThread(ctx, CreateThreadInput{Text: "hello"})
		assertValidationError(t, err)
	})

	t.Run("unknown author propagates not-found", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.getFn = func(_ context.Context, externalID string) (*models.User, error) {
			return nil, models.NewNotFoundError("User", externalID)
		}
		svc2 := NewThreadService(noopThreadRepo(), userRepo)
		_, err := svc2.CreateThread(ctx, CreateThreadInput{Text: "hello", AuthorID: "ghost"})
		assert.True(t, models.IsNotFound(err))
	})
}

func TestThreadService_CreateThread_IgnoresCommunity(t *testing.T) {
	t.Parallel()

	var created *models.Thread
	threadRepo := noopThreadRepo()
	threadRepo.createFn = func(_ context.Context, th *models.Thread) error {
		th.ID = 7
		created = th
		return nil
	}

	svc := NewThreadService(threadRepo, noopUserRepo())
	thread, err := svc.CreateThread(context.Background(), CreateThreadInput{
		Text:        "hello",
		AuthorID:    "user-1",
		CommunityID: "community-9",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), thread.ID)
	assert.Nil(t, created.CommunityID)
	assert.Nil(t, created.ParentID)
	require.NotNil(t, created.Author)
	assert.Equal(t, "user-1", created.Author.ExternalID)
}

func TestThreadService_AddReply(t *testing.T) {
	t.Parallel()

	t.Run("zero parent id rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewThreadService(noopThreadRepo(), noopUserRepo())
		_, err := svc.AddReply(context.Background(), AddReplyInput{Text: "hi", AuthorID: "user-1"})
		assertValidationError(t, err)
	})

	t.Run("missing parent propagates not-found without write", func(t *testing.T) {
		t.Parallel()
		threadRepo := noopThreadRepo()
		threadRepo.createReplyFn = func(_ context.Context, parentID uint, _ *models.Thread) error {
			return models.NewNotFoundError("Thread", parentID)
		}
		svc := NewThreadService(threadRepo, noopUserRepo())
		_, err := svc.AddReply(context.Background(), AddReplyInput{
			ParentID: 99, Text: "hi", AuthorID: "user-1",
		})
		assert.True(t, models.IsNotFound(err))
	})

	t.Run("success resolves author", func(t *testing.T) {
		t.Parallel()
		threadRepo := noopThreadRepo()
		threadRepo.createReplyFn = func(_ context.Context, parentID uint, reply *models.Thread) error {
			reply.ID = 11
			reply.ParentID = &parentID
			return nil
		}
		svc := NewThreadService(threadRepo, noopUserRepo())
		reply, err := svc.AddReply(context.Background(), AddReplyInput{
			ParentID: 3, Text: "hi", AuthorID: "user-2",
		})
		require.NoError(t, err)
		assert.Equal(t, uint(11), reply.ID)
		require.NotNil(t, reply.ParentID)
		assert.Equal(t, uint(3), *reply.ParentID)
		require.NotNil(t, reply.Author)
		assert.Equal(t, "user-2", reply.Author.ExternalID)
	})
}

func TestThreadService_FetchFeed(t *testing.T) {
	t.Parallel()

	t.Run("rejects non-positive paging", func(t *testing.T) {
		t.Parallel()
		svc := NewThreadService(noopThreadRepo(), noopUserRepo())
		_, _, err := svc.FetchFeed(context.Background(), 0, 10)
		assertValidationError(t, err)
		_, _, err = svc.FetchFeed(context.Background(), 1, 0)
		assertValidationError(t, err)
	})

	t.Run("computes offset and hasNext", func(t *testing.T) {
		t.Parallel()
		var gotLimit, gotOffset int
		threadRepo := noopThreadRepo()
		threadRepo.listRootsFn = func(_ context.Context, limit, offset int) ([]models.Thread, int64, error) {
			gotLimit, gotOffset = limit, offset
			return []models.Thread{{ID: 1}}, 2, nil
		}
		svc := NewThreadService(threadRepo, noopUserRepo())
		posts, hasNext, err := svc.FetchFeed(context.Background(), 1, 1)
		require.NoError(t, err)
		assert.Len(t, posts, 1)
		assert.True(t, hasNext)
		assert.Equal(t, 1, gotLimit)
		assert.Equal(t, 0, gotOffset)
	})
}

func TestThreadService_ExpandThread_DepthHandling(t *testing.T) {
	t.Parallel()

	var gotDepth int
	threadRepo := noopThreadRepo()
	threadRepo.getTreeFn = func(_ context.Context, id uint, maxDepth int) (*models.Thread, error) {
		gotDepth = maxDepth
		return &models.Thread{ID: id}, nil
	}
	svc := NewThreadService(threadRepo, noopUserRepo())
	ctx := context.Background()

	_, err := svc.ExpandThread(ctx, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultExpansionDepth, gotDepth)

	_, err = svc.ExpandThread(ctx, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, gotDepth)

	_, err = svc.ExpandThread(ctx, 1, MaxExpansionDepth+1)
	assertValidationError(t, err)

	_, err = svc.ExpandThread(ctx, 0, 0)
	assertValidationError(t, err)
}

func TestThreadService_FetchActivity_DedupesAndExcludesSelf(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getFn = func(_ context.Context, externalID string) (*models.User, error) {
		return &models.User{ID: 42, ExternalID: externalID}, nil
	}

	var gotParents []uint
	var gotExclude uint
	threadRepo := noopThreadRepo()
	threadRepo.listByAuthorFn = func(_ context.Context, authorID uint) ([]models.Thread, error) {
		// Duplicate id exercises the defensive dedupe.
		return []models.Thread{{ID: 1}, {ID: 2}, {ID: 1}}, nil
	}
	threadRepo.listRepliesToFn = func(_ context.Context, parentIDs []uint, excludeAuthorID uint) ([]models.Thread, error) {
		gotParents = parentIDs
		gotExclude = excludeAuthorID
		return []models.Thread{{ID: 9, AuthorID: 7}}, nil
	}

	svc := NewThreadService(threadRepo, userRepo)
	replies, err := svc.FetchActivity(context.Background(), "user-42")
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, gotParents)
	assert.Equal(t, uint(42), gotExclude)
	require.Len(t, replies, 1)
	assert.Equal(t, uint(9), replies[0].ID)
}
