package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/go-social-feed/domain"
	"github.com/Guyuepp/go-social-feed/internal/repository/cache"
)

const (
	KeyPost = "post:%s"
)

type postCache struct {
	client *redis.Client
}

var _ domain.PostCache = (*postCache)(nil)

func NewPostCache(client *redis.Client) *postCache {
	return &postCache{client}
}

func (c *postCache) GetPost(ctx context.Context, id string) (domain.Post, bool, error) {
	data, err := c.client.Get(ctx, fmt.Sprintf(KeyPost, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Post{}, false, domain.ErrCacheMiss
	} else if err != nil {
		return domain.Post{}, false, err
	}

	var envelope cache.DataWithLogicalExpire[domain.Post]
	if err := json.Unmarshal(data, &envelope); err != nil {
		return domain.Post{}, false, err
	}
	return envelope.Data, envelope.IsLogicalExpired(), nil
}

// SetPost stores the post without a redis TTL; ttl only sets the logical deadline.
func (c *postCache) SetPost(ctx context.Context, p *domain.Post, ttl time.Duration) error {
	data, err := json.Marshal(cache.NewDataWithLogicalExpire(*p, ttl))
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fmt.Sprintf(KeyPost, p.ID), string(data), 0).Err()
}

func (c *postCache) DeletePost(ctx context.Context, id string) error {
	return c.client.Del(ctx, fmt.Sprintf(KeyPost, id)).Err()
}
