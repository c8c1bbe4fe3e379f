package cache

import "time"

// DataWithLogicalExpire wraps a cached value with a soft deadline. The key
// itself never expires in redis; readers serve the stale value and trigger a
// rebuild once ExpireAt has passed.
type DataWithLogicalExpire[T any] struct {
	Data      T         `json:"data"`
	ExpireAt  time.Time `json:"expire_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsLogicalExpired reports whether the soft deadline has passed.
func (d *DataWithLogicalExpire[T]) IsLogicalExpired() bool {
	return time.Now().After(d.ExpireAt)
}

func NewDataWithLogicalExpire[T any](data T, ttl time.Duration) *DataWithLogicalExpire[T] {
	now := time.Now()
	return &DataWithLogicalExpire[T]{
		Data:      data,
		ExpireAt:  now.Add(ttl),
		CreatedAt: now,
	}
}
