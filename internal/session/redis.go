package session

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session in a hash at <prefix>:<id> with a TTL.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "session"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) key(id string) string { return s.prefix + ":" + id }

func (s *RedisStore) Create(ctx context.Context, d Data, ttl time.Duration) (string, error) {
	id, err := newID()
	if err != nil {
		return "", err
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	key := s.key(id)
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key,
			"user_id", strconv.FormatUint(d.UserID, 10),
			"is_admin", strconv.FormatBool(d.IsAdmin),
			"full_name", d.FullName,
			"created_at", strconv.FormatInt(d.CreatedAt.Unix(), 10),
		)
		p.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Data, error) {
	m, err := s.rdb.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Data{}, ErrNotFound
		}
		return Data{}, err
	}
	if len(m) == 0 {
		return Data{}, ErrNotFound
	}
	uid, err := strconv.ParseUint(m["user_id"], 10, 64)
	if err != nil {
		return Data{}, ErrNotFound
	}
	admin, _ := strconv.ParseBool(m["is_admin"])
	created, _ := strconv.ParseInt(m["created_at"], 10, 64)
	return Data{
		UserID:    uid,
		IsAdmin:   admin,
		FullName:  m["full_name"],
		CreatedAt: time.Unix(created, 0).UTC(),
	}, nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}
