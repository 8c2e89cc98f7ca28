package agentboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultTTL is how long a cached record set is served before it is re-fetched.
const DefaultTTL = 5 * time.Minute

type cache struct {
	*redis.Client
	serviceName string
	ttl         time.Duration
}

func newCache(conn *redis.Client, serviceName string, ttl time.Duration) *cache {
	if conn == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &cache{
		Client:      conn,
		serviceName: serviceName,
		ttl:         ttl,
	}
}

// keyName returns the cache key for a resource e.g. `service:agentboard|records|resource=leads`
func (c *cache) keyName(resource Resource) string {
	return fmt.Sprintf("service:%s|records|resource=%v", c.serviceName, resource)
}

func (c *cache) get(ctx context.Context, key string, value interface{}) error {
	str, err := c.Get(ctx, key).Result()
	if err != nil {
		// returns err redis.Nil if key does not exist
		return err
	}

	return json.Unmarshal([]byte(str), value)
}

func (c *cache) set(ctx context.Context, key string, value interface{}) error {
	str, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.Set(ctx, key, str, c.ttl).Err()
}

// getRecords returns the cached record set for resource, or redis.Nil on a miss.
func (c *cache) getRecords(ctx context.Context, resource Resource) ([]Record, error) {
	recs := []Record{}
	err := c.get(ctx, c.keyName(resource), &recs)
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *cache) setRecords(ctx context.Context, resource Resource, recs []Record) error {
	return c.set(ctx, c.keyName(resource), recs)
}

// invalidate drops the cached record sets; the next read goes to the row store regardless of TTL.
func (c *cache) invalidate(ctx context.Context, resources ...Resource) error {
	if len(resources) == 0 {
		return nil
	}
	keys := make([]string, 0, len(resources))
	for _, r := range resources {
		keys = append(keys, c.keyName(r))
	}
	return c.Del(ctx, keys...).Err()
}
