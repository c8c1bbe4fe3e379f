package repository

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Guyuepp/go-social-feed/domain"
)

const (
	defaultPostCacheTTL = 10 * time.Minute
	generationStripes   = 256
)

// postRepository fronts the post store with a logically expiring cache.
// Every mutation drops the cached copy before returning, so a caller that
// writes and then reads sees its own write.
type postRepository struct {
	db            domain.PostRepository
	cache         domain.PostCache
	ttl           time.Duration
	rebuildGroup  singleflight.Group
	mu            sync.Mutex
	rebuildingMap map[string]bool

	// generations counts mutations per id stripe. A load that overlaps a
	// mutation of its stripe must not leave its snapshot in the cache.
	generations [generationStripes]atomic.Uint64
}

var _ domain.PostRepository = (*postRepository)(nil)

// NewPostRepository wraps db with cache. A non-positive ttl uses the default.
func NewPostRepository(db domain.PostRepository, cache domain.PostCache, ttl time.Duration) *postRepository {
	if ttl <= 0 {
		ttl = defaultPostCacheTTL
	}
	return &postRepository{
		db:            db,
		cache:         cache,
		ttl:           ttl,
		rebuildingMap: make(map[string]bool),
	}
}

// GetByID serves from cache when it can. An expired entry is still served
// while a single background rebuild refreshes it; a miss is loaded once per
// id no matter how many callers race on it.
func (r *postRepository) GetByID(ctx context.Context, id string) (domain.Post, error) {
	post, expired, err := r.cache.GetPost(ctx, id)
	if err == nil {
		if expired {
			go r.rebuildPostCache(context.WithoutCancel(ctx), id)
		}
		return post, nil
	}
	if !errors.Is(err, domain.ErrCacheMiss) {
		logrus.Warnf("post cache read failed for %s: %v", id, err)
	}

	result, err, _ := r.rebuildGroup.Do("post:"+id, func() (any, error) {
		gen := r.generation(id).Load()
		p, err := r.db.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := r.cachePost(ctx, &p, gen); err != nil {
			logrus.Warnf("failed to cache post %s: %v", id, err)
		}
		return p, nil
	})
	if err != nil {
		return domain.Post{}, err
	}
	return result.(domain.Post), nil
}

func (r *postRepository) Store(ctx context.Context, p *domain.Post) error {
	return r.db.Store(ctx, p)
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	err := r.db.Delete(ctx, id)
	r.invalidate(ctx, id)
	return err
}

func (r *postRepository) AddLike(ctx context.Context, postID, userID string) (bool, error) {
	ok, err := r.db.AddLike(ctx, postID, userID)
	r.invalidate(ctx, postID)
	return ok, err
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	ok, err := r.db.RemoveLike(ctx, postID, userID)
	r.invalidate(ctx, postID)
	return ok, err
}

func (r *postRepository) AppendReply(ctx context.Context, parentID, replyID string) error {
	err := r.db.AppendReply(ctx, parentID, replyID)
	r.invalidate(ctx, parentID)
	return err
}

func (r *postRepository) RemoveReply(ctx context.Context, parentID, replyID string) error {
	err := r.db.RemoveReply(ctx, parentID, replyID)
	r.invalidate(ctx, parentID)
	return err
}

func (r *postRepository) FetchIDs(ctx context.Context, afterID string, limit int64) ([]string, error) {
	return r.db.FetchIDs(ctx, afterID, limit)
}

// Listings always come from the store; only single posts are cached.

func (r *postRepository) Fetch(ctx context.Context, excludeAuthorIDs []string, after domain.Cursor, num int64) ([]domain.Post, error) {
	return r.db.Fetch(ctx, excludeAuthorIDs, after, num)
}

func (r *postRepository) FetchByAuthors(ctx context.Context, authorIDs []string, after domain.Cursor, num int64) ([]domain.Post, error) {
	return r.db.FetchByAuthors(ctx, authorIDs, after, num)
}

func (r *postRepository) FetchLikedBy(ctx context.Context, userID string, after domain.Cursor, num int64) ([]domain.Post, error) {
	return r.db.FetchLikedBy(ctx, userID, after, num)
}

// Uncached exposes the backing store for reads that must not be served from
// a snapshot, such as the direction of a like toggle or a cascade walk.
func (r *postRepository) Uncached() domain.PostRepository {
	return r.db
}

// invalidate runs even when the store call failed or did not apply: the
// cached copy may be what misled the caller. The generation moves before the
// delete so a load already in flight drops what it caches.
func (r *postRepository) invalidate(ctx context.Context, id string) {
	r.generation(id).Add(1)
	if err := r.cache.DeletePost(context.WithoutCancel(ctx), id); err != nil {
		logrus.Errorf("failed to invalidate cached post %s: %v", id, err)
	}
}

func (r *postRepository) generation(id string) *atomic.Uint64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &r.generations[h.Sum32()%generationStripes]
}

// cachePost stores p, loaded when the id's generation was gen. If a mutation
// landed since, the entry is removed again.
func (r *postRepository) cachePost(ctx context.Context, p *domain.Post, gen uint64) error {
	if err := r.cache.SetPost(ctx, p, r.ttl); err != nil {
		return err
	}
	if r.generation(p.ID).Load() == gen {
		return nil
	}
	return r.cache.DeletePost(ctx, p.ID)
}

func (r *postRepository) rebuildPostCache(ctx context.Context, id string) {
	r.mu.Lock()
	if r.rebuildingMap[id] {
		r.mu.Unlock()
		return
	}
	r.rebuildingMap[id] = true
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.rebuildingMap, id)
		r.mu.Unlock()
	}()

	_, err, _ := r.rebuildGroup.Do("rebuild:"+id, func() (any, error) {
		gen := r.generation(id).Load()
		p, err := r.db.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				_ = r.cache.DeletePost(ctx, id)
			}
			return nil, err
		}
		return nil, r.cachePost(ctx, &p, gen)
	})
	if err != nil {
		logrus.Errorf("rebuildPostCache failed for id %s: %v", id, err)
	}
}
