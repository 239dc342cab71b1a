package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/devnice/usuarios-api/internal/domain"
)

const userListCacheKey = "usuarios:list"

// cachedUserRepository caches List in Redis and drops the entry on every write.
// Redis failures are logged and the wrapped repository is used instead.
type cachedUserRepository struct {
	UserRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedUserRepository wraps base with a Redis read-through cache of the user list.
func NewCachedUserRepository(base UserRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) UserRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedUserRepository{UserRepository: base, client: client, ttl: ttl, logger: logger}
}

func (r *cachedUserRepository) List(ctx context.Context) ([]domain.User, error) {
	cached, err := r.client.Get(ctx, userListCacheKey).Bytes()
	switch {
	case err == nil:
		var users []domain.User
		if jsonErr := json.Unmarshal(cached, &users); jsonErr == nil {
			return users, nil
		}
		r.logger.Warn("discarding undecodable user list cache entry")
	case err != redis.Nil:
		r.logger.Warn("user list cache read failed", zap.Error(err))
	}

	users, err := r.UserRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(users); jsonErr == nil {
		if setErr := r.client.Set(ctx, userListCacheKey, payload, r.ttl).Err(); setErr != nil {
			r.logger.Warn("user list cache write failed", zap.Error(setErr))
		}
	}
	return users, nil
}

func (r *cachedUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.UserRepository.Create(ctx, user); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedUserRepository) Update(ctx context.Context, user *domain.User) error {
	if err := r.UserRepository.Update(ctx, user); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedUserRepository) Delete(ctx context.Context, id int64) error {
	if err := r.UserRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

func (r *cachedUserRepository) invalidate(ctx context.Context) {
	if err := r.client.Del(ctx, userListCacheKey).Err(); err != nil {
		r.logger.Warn("user list cache invalidation failed", zap.Error(err))
	}
}
