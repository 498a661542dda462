package service

import (
	"context"

	"tapestry/internal/models"
	"tapestry/internal/repository"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	upsertFn func(context.Context, *models.User) error
	getFn    func(context.Context, string) (*models.User, error)
	listFn   func(context.Context, repository.ListUsersFilter) ([]models.User, int64, error)
}

func (s *userRepoStub) Upsert(ctx context.Context, user *models.User) error {
	return s.upsertFn(ctx, user)
}
func (s *userRepoStub) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	return s.getFn(ctx, externalID)
}
func (s *userRepoStub) List(ctx context.Context, filter repository.ListUsersFilter) ([]models.User, int64, error) {
	return s.listFn(ctx, filter)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		upsertFn: func(_ context.Context, _ *models.User) error { return nil },
		getFn: func(_ context.Context, externalID string) (*models.User, error) {
			return &models.User{ID: 1, ExternalID: externalID, Onboarded: true}, nil
		},
		listFn: func(_ context.Context, _ repository.ListUsersFilter) ([]models.User, int64, error) {
			return nil, 0, nil
		},
	}
}

// threadRepoStub is a stub for repository.ThreadRepository.
type threadRepoStub struct {
	createFn        func(context.Context, *models.Thread) error
	createReplyFn   func(context.Context, uint, *models.Thread) error
	getByIDFn       func(context.Context, uint) (*models.Thread, error)
	listRootsFn     func(context.Context, int, int) ([]models.Thread, int64, error)
	getTreeFn       func(context.Context, uint, int) (*models.Thread, error)
	listByAuthorFn  func(context.Context, uint) ([]models.Thread, error)
	listRepliesToFn func(context.Context, []uint, uint) ([]models.Thread, error)
}

func (s *threadRepoStub) Create(ctx context.Context, thread *models.Thread) error {
	return s.createFn(ctx, thread)
}
func (s *threadRepoStub) CreateReply(ctx context.Context, parentID uint, reply *models.Thread) error {
	return s.createReplyFn(ctx, parentID, reply)
}
func (s *threadRepoStub) GetByID(ctx context.Context, id uint) (*models.Thread, error) {
	return s.getByIDFn(ctx, id)
}
func (s *threadRepoStub) ListRoots(ctx context.Context, limit, offset int) ([]models.Thread, int64, error) {
	return s.listRootsFn(ctx, limit, offset)
}
func (s *threadRepoStub) GetTree(ctx context.Context, id uint, maxDepth int) (*models.Thread, error) {
	return s.getTreeFn(ctx, id, maxDepth)
}
func (s *threadRepoStub) ListByAuthor(ctx context.Context, authorID uint) ([]models.Thread, error) {
	return s.listByAuthorFn(ctx, authorID)
}
func (s *threadRepoStub) ListRepliesTo(ctx context.Context, parentIDs []uint, excludeAuthorID uint) ([]models.Thread, error) {
	return s.listRepliesToFn(ctx, parentIDs, excludeAuthorID)
}

func noopThreadRepo() *threadRepoStub {
	return &threadRepoStub{
		createFn:      func(_ context.Context, _ *models.Thread) error { return nil },
		createReplyFn: func(_ context.Context, _ uint, _ *models.Thread) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Thread, error) {
			return &models.Thread{ID: id}, nil
		},
		listRootsFn: func(_ context.Context, _, _ int) ([]models.Thread, int64, error) {
			return nil, 0, nil
		},
		getTreeFn: func(_ context.Context, id uint, _ int) (*models.Thread, error) {
			return &models.Thread{ID: id}, nil
		},
		listByAuthorFn: func(_ context.Context, _ uint) ([]models.Thread, error) { return nil, nil },
		listRepliesToFn: func(_ context.Context, _ []uint, _ uint) ([]models.Thread, error) {
			return nil, nil
		},
	}
}
