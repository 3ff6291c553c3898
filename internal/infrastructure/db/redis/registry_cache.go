package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/banco-obrero/comuna-api/internal/core/ports"
)

const cacheTTL = 24 * time.Hour

// RegistryCache stores national-registry answers in Redis so repeated
// lookups for the same cedula do not burn the upstream rate limit.
// Only registry prefill data is cached here; accounts are never cached,
// the user store stays authoritative.
type RegistryCache struct {
	client *redis.Client
}

func NewRegistryCache(client *redis.Client) *RegistryCache {
	return &RegistryCache{client: client}
}

type cachedPerson struct {
	Found   bool   `json:"found"`
	Name    string `json:"name,omitempty"`
	Surname string `json:"surname,omitempty"`
}

// Get returns the cached answer for a cedula. The second return value
// reports whether anything was cached; a cached negative comes back as
// (nil, true, nil).
func (c *RegistryCache) Get(ctx context.Context, cedula string) (*ports.RegistryPerson, bool, error) {
	raw, err := c.client.Get(ctx, c.key(cedula)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("registry cache get: %w", err)
	}

	var entry cachedPerson
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, false, fmt.Errorf("registry cache decode: %w", err)
	}
	if !entry.Found {
		return nil, true, nil
	}
	return &ports.RegistryPerson{Name: entry.Name, Surname: entry.Surname}, true, nil
}

// Put records a registry answer (person == nil caches the negative) with a
// fixed TTL.
func (c *RegistryCache) Put(ctx context.Context, cedula string, person *ports.RegistryPerson) error {
	entry := cachedPerson{Found: person != nil}
	if person != nil {
		entry.Name = person.Name
		entry.Surname = person.Surname
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("registry cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(cedula), raw, cacheTTL).Err()
}

func (c *RegistryCache) key(cedula string) string {
	return "registry:" + cedula
}
