package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Backend is the persistent key/value space holding the raw session
// fields. Implementations store strings only; the Store owns all
// serialization and interpretation.
type Backend interface {
	// Write persists all three fields so that no reader of the same
	// backend observes one updated and the others stale.
	Write(ctx context.Context, credential, userJSON, adminTier string) error
	Read(ctx context.Context) (credential, userJSON, adminTier string, err error)
	Clear(ctx context.Context) error
}

type redisBackend struct {
	client    *redis.Client
	namespace string
}

// NewRedisBackend stores session fields in Redis under the given
// namespace. Multiple gateway instances pointed at the same namespace
// share one session origin.
func NewRedisBackend(client *redis.Client, namespace string) Backend {
	return &redisBackend{client: client, namespace: namespace}
}

func (b *redisBackend) Write(ctx context.Context, credential, userJSON, adminTier string) error {
	pipe := b.client.TxPipeline()
	pipe.Set(ctx, fmt.Sprintf(KeyCredential, b.namespace), credential, TTLSession)
	pipe.Set(ctx, fmt.Sprintf(KeyUser, b.namespace), userJSON, TTLSession)
	pipe.Set(ctx, fmt.Sprintf(KeyAdminTier, b.namespace), adminTier, TTLSession)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write session: %v", err)
	}
	return nil
}

func (b *redisBackend) Read(ctx context.Context) (string, string, string, error) {
	pipe := b.client.Pipeline()
	credCmd := pipe.Get(ctx, fmt.Sprintf(KeyCredential, b.namespace))
	userCmd := pipe.Get(ctx, fmt.Sprintf(KeyUser, b.namespace))
	adminCmd := pipe.Get(ctx, fmt.Sprintf(KeyAdminTier, b.namespace))

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return "", "", "", fmt.Errorf("failed to read session: %v", err)
	}

	credential, _ := credCmd.Result()
	userJSON, _ := userCmd.Result()
	adminTier, _ := adminCmd.Result()

	return credential, userJSON, adminTier, nil
}

func (b *redisBackend) Clear(ctx context.Context) error {
	err := b.client.Del(ctx,
		fmt.Sprintf(KeyCredential, b.namespace),
		fmt.Sprintf(KeyUser, b.namespace),
		fmt.Sprintf(KeyAdminTier, b.namespace),
	).Err()
	if err != nil {
		return fmt.Errorf("failed to clear session: %v", err)
	}
	return nil
}

type memoryBackend struct {
	mu         sync.RWMutex
	credential string
	userJSON   string
	adminTier  string
}

// NewMemoryBackend keeps session fields in process memory. It is the
// degraded mode used when Redis is unreachable at startup: sessions
// survive for the process lifetime only.
func NewMemoryBackend() Backend {
	return &memoryBackend{}
}

func (b *memoryBackend) Write(_ context.Context, credential, userJSON, adminTier string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.credential = credential
	b.userJSON = userJSON
	b.adminTier = adminTier
	return nil
}

func (b *memoryBackend) Read(context.Context) (string, string, string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.credential, b.userJSON, b.adminTier, nil
}

func (b *memoryBackend) Clear(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.credential = ""
	b.userJSON = ""
	b.adminTier = ""
	return nil
}
