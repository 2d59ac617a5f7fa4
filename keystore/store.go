package keystore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps every Redis transport or command failure.
var ErrRedisUnavailable = errors.New("redis unavailable")

// ErrKeyMaterialRequired is returned by Save when the record carries no JWK.
var ErrKeyMaterialRequired = errors.New("key record requires key material")

// KeyRecord is a stored verification key. Key holds a JSON-encoded JWK.
type KeyRecord struct {
	KID string
	Key string
}

// Store is the read contract consumed by the validator. A miss is (nil, nil);
// a non-nil error means the backend itself failed.
type Store interface {
	GetKeyByID(ctx context.Context, kid string) (*KeyRecord, error)
}

// deleteKeyLua atomically removes a key and its index entry.
// KEYS[1] = key record, KEYS[2] = index set, ARGV[1] = kid.
// Returns 1 when the record existed.
var deleteKeyLua = redis.NewScript(`
local existed = redis.call("EXISTS", KEYS[1])
if existed == 1 then
  redis.call("DEL", KEYS[1])
end
redis.call("SREM", KEYS[2], ARGV[1])
return existed
`)

// RedisStore is a Redis-backed key store. Records live under
// "<prefix>:<kid>" with a set index of known kids.
type RedisStore struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisStore creates a [RedisStore] on the given client. prefix sets the
// Redis key namespace; empty defaults to "jwk".
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "jwk"
	}
	return &RedisStore{
		redis:  client,
		prefix: prefix,
	}
}

func (s *RedisStore) key(kid string) string {
	return s.prefix + ":" + kid
}

func (s *RedisStore) indexKey() string {
	return "jwkidx:" + s.prefix
}

// Save persists a key record and indexes its kid. When rec.KID is empty a
// generated UUID is assigned; the effective kid is returned. ttl <= 0 stores
// without expiry.
func (s *RedisStore) Save(ctx context.Context, rec *KeyRecord, ttl time.Duration) (string, error) {
	if rec == nil || rec.Key == "" {
		return "", ErrKeyMaterialRequired
	}

	kid := rec.KID
	if kid == "" {
		kid = uuid.NewString()
	}
	if ttl < 0 {
		ttl = 0
	}

	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(kid), rec.Key, ttl)
		pipe.SAdd(ctx, s.indexKey(), kid)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return kid, nil
}

// GetKeyByID resolves a key record by kid. A missing key returns (nil, nil).
//
//	Performance: 1 Redis GET.
func (s *RedisStore) GetKeyByID(ctx context.Context, kid string) (*KeyRecord, error) {
	if kid == "" {
		return nil, nil
	}

	raw, err := s.redis.Get(ctx, s.key(kid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return &KeyRecord{KID: kid, Key: raw}, nil
}

// Delete removes a key record and its index entry. Deleting an absent kid is
// a no-op.
func (s *RedisStore) Delete(ctx context.Context, kid string) error {
	_, err := deleteKeyLua.Run(ctx, s.redis, []string{s.key(kid), s.indexKey()}, kid).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// KeyIDs returns the indexed kids. Expired records may linger in the index
// until Delete is called for them.
func (s *RedisStore) KeyIDs(ctx context.Context) ([]string, error) {
	ids, err := s.redis.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return ids, nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (s *RedisStore) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}
