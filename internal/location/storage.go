// Package location holds the buyer-location store: the one stateful piece of
// the deliverability subsystem. The resolver and policy layer stay pure; all
// persistence and device-location I/O is isolated here behind small
// interfaces injected into whatever needs them.
package location

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"kraal-bknd/internal/models"
)

// keyPrefix is the fixed namespace buyer locations are persisted under.
const keyPrefix = "kraal:loc:"

// record is the persisted envelope. The shape is fixed; there is no
// versioning or migration scheme for this record.
type record struct {
	Loc models.BuyerLocation `json:"loc"`
}

// Storage is the durable key-value medium behind the store. Load returns
// (nil, nil) when no record exists for the buyer.
type Storage interface {
	Load(ctx context.Context, buyerID string) (*models.BuyerLocation, error)
	Save(ctx context.Context, buyerID string, loc models.BuyerLocation) error
	Delete(ctx context.Context, buyerID string) error
}

// MemoryStorage is an in-process Storage for tests and single-node dev.
type MemoryStorage struct {
	mu   sync.RWMutex
	recs map[string]models.BuyerLocation
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{recs: make(map[string]models.BuyerLocation)}
}

func (m *MemoryStorage) Load(_ context.Context, buyerID string) (*models.BuyerLocation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.recs[buyerID]
	if !ok {
		return nil, nil
	}
	return &loc, nil
}

func (m *MemoryStorage) Save(_ context.Context, buyerID string, loc models.BuyerLocation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs[buyerID] = loc
	return nil
}

func (m *MemoryStorage) Delete(_ context.Context, buyerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, buyerID)
	return nil
}

// RedisStorage persists buyer locations in Redis under the fixed namespace.
type RedisStorage struct {
	client *redis.Client
}

func NewRedisStorage(client *redis.Client) *RedisStorage {
	return &RedisStorage{client: client}
}

func (r *RedisStorage) Load(ctx context.Context, buyerID string) (*models.BuyerLocation, error) {
	data, err := r.client.Get(ctx, keyPrefix+buyerID).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load buyer location: %w", err)
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode buyer location: %w", err)
	}
	return &rec.Loc, nil
}

func (r *RedisStorage) Save(ctx context.Context, buyerID string, loc models.BuyerLocation) error {
	data, err := json.Marshal(record{Loc: loc})
	if err != nil {
		return fmt.Errorf("encode buyer location: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+buyerID, data, 0).Err(); err != nil {
		return fmt.Errorf("save buyer location: %w", err)
	}
	return nil
}

func (r *RedisStorage) Delete(ctx context.Context, buyerID string) error {
	if err := r.client.Del(ctx, keyPrefix+buyerID).Err(); err != nil {
		return fmt.Errorf("delete buyer location: %w", err)
	}
	return nil
}
