package redis

import (
	"context"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Provider health statuses as stored under provider_health:<provider>.
const (
	HealthUp   = "up"
	HealthDown = "down"

	healthKeyPrefix = "provider_health:"
)

// HealthStore reads the provider health snapshot maintained externally in
// Redis. An absent key is treated as "up".
type HealthStore struct {
	client  *goredis.Client
	timeout time.Duration
}

// NewHealthStore creates a health snapshot reader using the shared client.
func NewHealthStore(timeout time.Duration) *HealthStore {
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	return &HealthStore{client: client, timeout: timeout}
}

// NewHealthStoreWithClient creates a health reader on an explicit client
// (used for tests).
func NewHealthStoreWithClient(c *goredis.Client, timeout time.Duration) *HealthStore {
	hs := NewHealthStore(timeout)
	hs.client = c
	return hs
}

// Status returns the health of a single provider name (lowercased).
func (h *HealthStore) Status(ctx context.Context, provider string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	val, err := h.client.Get(ctx, healthKeyPrefix+strings.ToLower(provider)).Result()
	if err == goredis.Nil {
		return HealthUp, nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Snapshot returns the health of every listed provider in one map.
// Read failures degrade to "up" so a health outage never blocks routing.
func (h *HealthStore) Snapshot(ctx context.Context, providers []string) map[string]string {
	out := make(map[string]string, len(providers))
	for _, p := range providers {
		status, err := h.Status(ctx, p)
		if err != nil || status == "" {
			status = HealthUp
		}
		out[strings.ToLower(p)] = status
	}
	return out
}

// SetStatus writes a provider health flag. Used by ops tooling and tests.
func (h *HealthStore) SetStatus(ctx context.Context, provider, status string) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.client.Set(ctx, healthKeyPrefix+strings.ToLower(provider), status, 0).Err()
}
