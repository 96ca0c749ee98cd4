package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"fakestore/storefront/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Persister stores and restores the cart snapshot. Implementations may fail;
// the cart store treats every failure as non-fatal.
type Persister interface {
	Load(ctx context.Context) (domain.CartState, error)
	Save(ctx context.Context, state domain.CartState) error
}

// snapshot is the wire format of the persisted cart.
type snapshot struct {
	Cart domain.CartState `json:"cart"`
}

type redisPersister struct {
	redisClient *redis.Client
	key         string
}

// NewRedisPersister keeps the snapshot under a single key.
func NewRedisPersister(redisClient *redis.Client, keyPrefix string) Persister {
	return &redisPersister{
		redisClient: redisClient,
		key:         keyPrefix + "cart",
	}
}

func (p *redisPersister) Load(ctx context.Context) (domain.CartState, error) {
	empty := domain.CartState{Items: []domain.CartLine{}}

	val, err := p.redisClient.Get(ctx, p.key).Result()
	if err != nil {
		if err == redis.Nil {
			return empty, nil // nothing persisted yet
		}
		return empty, fmt.Errorf("failed to load cart snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return empty, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}

	return snap.Cart, nil
}

func (p *redisPersister) Save(ctx context.Context, state domain.CartState) error {
	data, err := json.Marshal(snapshot{Cart: state})
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}

	if err := p.redisClient.Set(ctx, p.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot: %w", err)
	}
	return nil
}

// memoryPersister keeps the snapshot in process memory. It backs tests and
// redis-less runs.
type memoryPersister struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryPersister() Persister {
	return &memoryPersister{}
}

func (p *memoryPersister) Load(ctx context.Context) (domain.CartState, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.data == nil {
		return domain.CartState{Items: []domain.CartLine{}}, nil
	}

	var snap snapshot
	if err := json.Unmarshal(p.data, &snap); err != nil {
		return domain.CartState{Items: []domain.CartLine{}}, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}
	return snap.Cart, nil
}

func (p *memoryPersister) Save(ctx context.Context, state domain.CartState) error {
	data, err := json.Marshal(snapshot{Cart: state})
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.data = data
	return nil
}
