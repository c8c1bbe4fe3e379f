package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/go-social-feed/domain"
	"github.com/Guyuepp/go-social-feed/domain/mocks"
	"github.com/Guyuepp/go-social-feed/internal/repository"
	"github.com/Guyuepp/go-social-feed/internal/repository/memory"
)

func cachedPost() domain.Post {
	return domain.Post{ID: "p1", Author: domain.Author{ID: "u1"}, Text: "hello", Date: time.Now()}
}

func TestPostRepository_GetByID_Hit(t *testing.T) {
	db := mocks.NewPostRepository(t)
	cache := mocks.NewPostCache(t)
	cache.On("GetPost", mock.Anything, "p1").Return(cachedPost(), false, nil).Once()

	repo := repository.NewPostRepository(db, cache, time.Minute)
	p, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	db.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestPostRepository_GetByID_MissLoadsAndCaches(t *testing.T) {
	db := mocks.NewPostRepository(t)
	cache := mocks.NewPostCache(t)
	cache.On("GetPost", mock.Anything, "p1").Return(domain.Post{}, false, domain.ErrCacheMiss).Once()
	db.On("GetByID", mock.Anything, "p1").Return(cachedPost(), nil).Once()
	cache.On("SetPost", mock.Anything, mock.AnythingOfType("*domain.Post"), time.Minute).Return(nil).Once()

	repo := repository.NewPostRepository(db, cache, time.Minute)
	p, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "hello", p.Text)
}

func TestPostRepository_GetByID_CacheDownFallsThrough(t *testing.T) {
	db := mocks.NewPostRepository(t)
	cache := mocks.NewPostCache(t)
	cache.On("GetPost", mock.Anything, "p1").Return(domain.Post{}, false, errors.New("dial tcp: refused")).Once()
	db.On("GetByID", mock.Anything, "p1").Return(cachedPost(), nil).Once()
	cache.On("SetPost", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("dial tcp: refused")).Once()

	repo := repository.NewPostRepository(db, cache, time.Minute)
	_, err := repo.GetByID(context.Background(), "p1")
	assert.NoError(t, err)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := mocks.NewPostRepository(t)
	cache := mocks.NewPostCache(t)
	cache.On("GetPost", mock.Anything, "ghost").Return(domain.Post{}, false, domain.ErrCacheMiss).Once()
	db.On("GetByID", mock.Anything, "ghost").Return(domain.Post{}, domain.ErrNotFound).Once()

	repo := repository.NewPostRepository(db, cache, time.Minute)
	_, err := repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostRepository_GetByID_ExpiredRebuildsInBackground(t *testing.T) {
	db := mocks.NewPostRepository(t)
	cache := mocks.NewPostCache(t)
	stale := cachedPost()
	fresh := cachedPost()
	fresh.Text = "edited"

	rebuilt := make(chan struct{})
	cache.On("GetPost", mock.Anything, "p1").Return(stale, true, nil).Once()
	db.On("GetByID", mock.Anything, "p1").Return(fresh, nil).Once()
	cache.On("SetPost", mock.Anything, mock.AnythingOfType("*domain.Post"), time.Minute).
		Run(func(mock.Arguments) { close(rebuilt) }).
		Return(nil).Once()

	repo := repository.NewPostRepository(db, cache, time.Minute)
	p, err := repo.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "hello", p.Text)

	select {
	case <-rebuilt:
	case <-time.After(time.Second):
		t.Fatal("cache was not rebuilt")
	}
}

func TestPostRepository_ConcurrentMissesLoadOnce(t *testing.T) {
	db := mocks.NewPostRepository(t)
	cache := mocks.NewPostCache(t)
	release := make(chan struct{})

	cache.On("GetPost", mock.Anything, "p1").Return(domain.Post{}, false, domain.ErrCacheMiss)
	db.On("GetByID", mock.Anything, "p1").
		Run(func(mock.Arguments) { <-release }).
		Return(cachedPost(), nil)
	cache.On("SetPost", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	repo := repository.NewPostRepository(db, cache, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.GetByID(context.Background(), "p1")
			assert.NoError(t, err)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	db.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestPostRepository_MutationsInvalidate(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewPostRepository(t)
	cache := mocks.NewPostCache(t)
	repo := repository.NewPostRepository(db, cache, time.Minute)

	db.On("AddLike", mock.Anything, "p1", "u2").Return(true, nil).Once()
	db.On("RemoveLike", mock.Anything, "p1", "u2").Return(false, nil).Once()
	db.On("AppendReply", mock.Anything, "p1", "r1").Return(nil).Once()
	db.On("RemoveReply", mock.Anything, "p1", "r1").Return(nil).Once()
	db.On("Delete", mock.Anything, "p1").Return(nil).Once()
	cache.On("DeletePost", mock.Anything, "p1").Return(nil).Times(5)

	ok, err := repo.AddLike(ctx, "p1", "u2")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.RemoveLike(ctx, "p1", "u2")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, repo.AppendReply(ctx, "p1", "r1"))
	require.NoError(t, repo.RemoveReply(ctx, "p1", "r1"))
	require.NoError(t, repo.Delete(ctx, "p1"))
}

func TestPostRepository_StoreAndFetchIDsPassThrough(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewPostRepository(t)
	cache := mocks.NewPostCache(t)
	repo := repository.NewPostRepository(db, cache, 0)

	p := cachedPost()
	db.On("Store", mock.Anything, &p).Return(nil).Once()
	db.On("FetchIDs", mock.Anything, "", int64(10)).Return([]string{"p1"}, nil).Once()

	require.NoError(t, repo.Store(ctx, &p))
	ids, err := repo.FetchIDs(ctx, "", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)
}

func TestPostRepository_ListingsPassThrough(t *testing.T) {
	ctx := context.Background()
	db := mocks.NewPostRepository(t)
	repo := repository.NewPostRepository(db, mocks.NewPostCache(t), time.Minute)
	after := domain.Cursor{Date: time.Now(), ID: "p9"}
	page := []domain.Post{cachedPost()}

	db.On("Fetch", mock.Anything, []string{"u3"}, after, int64(5)).Return(page, nil).Once()
	db.On("FetchByAuthors", mock.Anything, []string{"u1"}, after, int64(5)).Return(page, nil).Once()
	db.On("FetchLikedBy", mock.Anything, "u2", after, int64(5)).Return(page, nil).Once()

	res, err := repo.Fetch(ctx, []string{"u3"}, after, 5)
	require.NoError(t, err)
	assert.Equal(t, page, res)
	res, err = repo.FetchByAuthors(ctx, []string{"u1"}, after, 5)
	require.NoError(t, err)
	assert.Equal(t, page, res)
	res, err = repo.FetchLikedBy(ctx, "u2", after, 5)
	require.NoError(t, err)
	assert.Equal(t, page, res)
}

func TestPostRepository_Uncached(t *testing.T) {
	db := memory.NewPostRepository()
	repo := repository.NewPostRepository(db, newMapCache(), time.Minute)
	assert.Same(t, db, domain.Uncached(repo))
	assert.Same(t, db, domain.Uncached(db))
}

// heldPosts reads a snapshot on the first GetByID, then holds it until
// released, so a write can land between the read and the cache fill.
type heldPosts struct {
	domain.PostRepository
	once    sync.Once
	read    chan struct{}
	release chan struct{}
}

func (h *heldPosts) GetByID(ctx context.Context, id string) (domain.Post, error) {
	p, err := h.PostRepository.GetByID(ctx, id)
	h.once.Do(func() {
		close(h.read)
		<-h.release
	})
	return p, err
}

type mapCache struct {
	mu    sync.Mutex
	posts map[string]domain.Post
}

func newMapCache() *mapCache {
	return &mapCache{posts: make(map[string]domain.Post)}
}

func (c *mapCache) GetPost(_ context.Context, id string) (domain.Post, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.posts[id]
	if !ok {
		return domain.Post{}, false, domain.ErrCacheMiss
	}
	return p, false, nil
}

func (c *mapCache) SetPost(_ context.Context, p *domain.Post, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts[p.ID] = *p
	return nil
}

func (c *mapCache) DeletePost(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.posts, id)
	return nil
}

func TestPostRepository_LoadOverlappingWriteIsNotCached(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewPostRepository()
	root := cachedPost()
	require.NoError(t, mem.Store(ctx, &root))

	db := &heldPosts{PostRepository: mem, read: make(chan struct{}), release: make(chan struct{})}
	cache := newMapCache()
	repo := repository.NewPostRepository(db, cache, time.Minute)

	loaded := make(chan domain.Post)
	go func() {
		p, err := repo.GetByID(ctx, "p1")
		assert.NoError(t, err)
		loaded <- p
	}()

	<-db.read
	require.NoError(t, repo.AppendReply(ctx, "p1", "r1"))
	close(db.release)
	assert.Empty(t, (<-loaded).Replies)

	_, _, err := cache.GetPost(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrCacheMiss)

	p, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, p.Replies)
}
