package redis

import (
	"context"
	"hash/crc32"
	"hash/fnv"

	"github.com/redis/go-redis/v9"

	"github.com/Guyuepp/go-social-feed/domain"
)

const (
	KeyPostBloom = "bloom:post:ids"

	bloomHashes      = 4
	defaultBloomBits = 1 << 24
)

// redisBloomRepo is a bloom filter over post ids kept in one redis bitmap.
type redisBloomRepo struct {
	client *redis.Client
	bits   uint64
}

var _ domain.BloomRepository = (*redisBloomRepo)(nil)

func NewRedisBloomRepo(client *redis.Client, bitSize uint64) *redisBloomRepo {
	if bitSize == 0 {
		bitSize = defaultBloomBits
	}
	return &redisBloomRepo{
		client: client,
		bits:   bitSize,
	}
}

func (r *redisBloomRepo) Add(ctx context.Context, id string) error {
	return r.BulkAdd(ctx, []string{id})
}

func (r *redisBloomRepo) BulkAdd(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range ids {
			for _, off := range r.offsets(id) {
				pipe.SetBit(ctx, KeyPostBloom, off, 1)
			}
		}
		return nil
	})
	return err
}

func (r *redisBloomRepo) Exists(ctx context.Context, id string) (bool, error) {
	offsets := r.offsets(id)
	cmds := make([]*redis.IntCmd, len(offsets))
	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, off := range offsets {
			cmds[i] = pipe.GetBit(ctx, KeyPostBloom, off)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	for _, cmd := range cmds {
		if cmd.Val() == 0 {
			return false, nil
		}
	}
	return true, nil
}

// offsets picks bloomHashes bits with double hashing: h1 + i*h2 mod bits.
// h2 is forced odd so the bit positions never collapse onto one.
func (r *redisBloomRepo) offsets(id string) []int64 {
	f := fnv.New64a()
	_, _ = f.Write([]byte(id))
	h1 := f.Sum64()
	h2 := uint64(crc32.ChecksumIEEE([]byte(id))) | 1

	out := make([]int64, bloomHashes)
	for i := range out {
		out[i] = int64((h1 + uint64(i)*h2) % r.bits)
	}
	return out
}
