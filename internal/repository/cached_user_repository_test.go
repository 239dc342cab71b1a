package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devnice/usuarios-api/internal/domain"
)

// fakeRedis answers GET, SET and DEL from a map so no server is needed.
type fakeRedis struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeRedisClient(t *testing.T) (*redis.Client, *fakeRedis) {
	t.Helper()

	store := &fakeRedis{values: map[string]string{}}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	client.AddHook(store)
	t.Cleanup(func() { _ = client.Close() })

	return client, store
}

func (f *fakeRedis) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (f *fakeRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (f *fakeRedis) ProcessHook(_ redis.ProcessHook) redis.ProcessHook {
	return func(_ context.Context, cmd redis.Cmder) error {
		f.mu.Lock()
		defer f.mu.Unlock()

		args := cmd.Args()
		switch c := cmd.(type) {
		case *redis.StringCmd:
			value, ok := f.values[args[1].(string)]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(value)
		case *redis.StatusCmd:
			switch value := args[2].(type) {
			case []byte:
				f.values[args[1].(string)] = string(value)
			case string:
				f.values[args[1].(string)] = value
			}
			c.SetVal("OK")
		case *redis.IntCmd:
			var deleted int64
			for _, key := range args[1:] {
				if _, ok := f.values[key.(string)]; ok {
					delete(f.values, key.(string))
					deleted++
				}
			}
			c.SetVal(deleted)
		}
		return nil
	}
}

func (f *fakeRedis) get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.values[key]
	return value, ok
}

type countingUserRepository struct {
	UserRepository
	lists int
}

func (r *countingUserRepository) List(ctx context.Context) ([]domain.User, error) {
	r.lists++
	return r.UserRepository.List(ctx)
}

func TestCachedUserRepository_ServesHitsFromCache(t *testing.T) {
	ctx := context.Background()
	client, store := newFakeRedisClient(t)
	base := &countingUserRepository{UserRepository: NewMemoryUserRepository()}
	repo := NewCachedUserRepository(base, client, time.Minute, nil)

	require.NoError(t, base.Create(ctx, &domain.User{Name: "alice", Email: "alice@example.com", PasswordHash: "secret-hash"}))

	first, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, base.lists)

	cached, ok := store.get(userListCacheKey)
	require.True(t, ok)
	assert.Contains(t, cached, "alice@example.com")
	assert.NotContains(t, cached, "secret-hash")

	second, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, "alice", second[0].Name)
	assert.Equal(t, 1, base.lists, "cache hit must not reach the wrapped repository")
}

func TestCachedUserRepository_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	client, store := newFakeRedisClient(t)
	base := &countingUserRepository{UserRepository: NewMemoryUserRepository()}
	repo := NewCachedUserRepository(base, client, time.Minute, nil)

	alice := &domain.User{Name: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, alice))

	_, err := repo.List(ctx)
	require.NoError(t, err)
	_, ok := store.get(userListCacheKey)
	require.True(t, ok)

	t.Run("Create", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, &domain.User{Name: "bob", Email: "bob@example.com", PasswordHash: "hash"}))

		_, ok := store.get(userListCacheKey)
		assert.False(t, ok)

		users, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("Update", func(t *testing.T) {
		alice.Phone = "5511999999999"
		require.NoError(t, repo.Update(ctx, alice))

		_, ok := store.get(userListCacheKey)
		assert.False(t, ok)

		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "5511999999999", users[0].Phone)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, alice.ID))

		_, ok := store.get(userListCacheKey)
		assert.False(t, ok)

		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "bob", users[0].Name)
	})

	t.Run("FailedWriteKeepsEntry", func(t *testing.T) {
		lists := base.lists

		assert.ErrorIs(t, repo.Delete(ctx, 999), ErrUserNotFound)

		_, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, lists, base.lists)
	})
}

func TestCachedUserRepository_FallsBackWhenRedisIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	base := NewMemoryUserRepository()
	repo := NewCachedUserRepository(base, client, time.Minute, nil)

	user := &domain.User{Name: "alice", Email: "alice@example.com", PasswordHash: "hash"}
	require.NoError(t, repo.Create(ctx, user))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Name)

	require.NoError(t, repo.Delete(ctx, user.ID))

	users, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCachedUserRepository_PassesThroughErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	repo := NewCachedUserRepository(NewMemoryUserRepository(), client, time.Minute, nil)

	assert.ErrorIs(t, repo.Delete(context.Background(), 42), ErrUserNotFound)
}
