package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%s"
	ThreadKeyPrefix = "thread:%d"
)

const (
	UserTTL   = 5 * time.Minute
	ThreadTTL = 2 * time.Minute
)

// UserKey builds the cache key for a user profile by external id.
func UserKey(externalID string) string {
	return fmt.Sprintf(UserKeyPrefix, externalID)
}

// ThreadKey builds the cache key for a single thread record.
func ThreadKey(threadID uint) string {
	return fmt.Sprintf(ThreadKeyPrefix, threadID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, externalID string) {
	Invalidate(ctx, UserKey(externalID))
}

func InvalidateThread(ctx context.Context, threadID uint) {
	Invalidate(ctx, ThreadKey(threadID))
}
