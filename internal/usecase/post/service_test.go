package post_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/go-social-feed/domain"
	"github.com/Guyuepp/go-social-feed/domain/mocks"
	"github.com/Guyuepp/go-social-feed/internal/repository"
	"github.com/Guyuepp/go-social-feed/internal/repository/memory"
	"github.com/Guyuepp/go-social-feed/internal/usecase/post"
)

type fixture struct {
	users         domain.UserRepository
	posts         domain.PostRepository
	notifications domain.NotificationRepository
	svc           *post.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		users:         memory.NewUserRepository(),
		posts:         memory.NewPostRepository(),
		notifications: memory.NewNotificationRepository(),
	}
	f.svc = post.NewService(f.posts, f.users, f.notifications, nil)
	return f
}

func (f fixture) newUser(t *testing.T) domain.User {
	t.Helper()
	u := domain.User{
		ID:          domain.NewID(),
		Username:    domain.NewID()[:8],
		DisplayName: faker.Name(),
		JoinDate:    time.Now(),
	}
	require.NoError(t, f.users.Store(context.Background(), &u))
	return u
}

func (f fixture) exists(t *testing.T, id string) bool {
	t.Helper()
	_, err := f.posts.GetByID(context.Background(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	author := f.newUser(t)

	p, err := f.svc.Create(ctx, author.ID, "hello world", "")
	require.NoError(t, err)
	assert.Equal(t, author.AsAuthor(), p.Author)
	assert.False(t, p.IsReply)
	assert.Zero(t, p.LikeCounter)

	got, err := f.svc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	t.Run("unknown author", func(t *testing.T) {
		_, err := f.svc.Create(ctx, "missing", "hello", "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("empty text", func(t *testing.T) {
		_, err := f.svc.Create(ctx, author.ID, "", "")
		assert.ErrorIs(t, err, domain.ErrBadParamInput)
	})
}

func TestAddReply(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.newUser(t)
	bob := f.newUser(t)

	root, err := f.svc.Create(ctx, alice.ID, "root", "")
	require.NoError(t, err)

	reply, err := f.svc.AddReply(ctx, root.ID, bob.ID, "nice", "")
	require.NoError(t, err)
	assert.True(t, reply.IsReply)
	assert.Equal(t, root.ID, reply.ParentPostID)

	parent, err := f.posts.GetByID(ctx, root.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{reply.ID}, parent.Replies)

	notes, err := f.notifications.FetchByOwner(ctx, alice.ID, domain.Cursor{}, 10)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.KindReply, notes[0].Kind)
	assert.Equal(t, bob.ID, notes[0].FromUserID)
	assert.Equal(t, "/post/"+root.ID, notes[0].SubjectPath)

	t.Run("own reply sends nothing", func(t *testing.T) {
		_, err := f.svc.AddReply(ctx, root.ID, alice.ID, "thanks", "")
		require.NoError(t, err)
		notes, err := f.notifications.FetchByOwner(ctx, alice.ID, domain.Cursor{}, 10)
		require.NoError(t, err)
		assert.Len(t, notes, 1)
	})

	t.Run("missing parent", func(t *testing.T) {
		_, err := f.svc.AddReply(ctx, "missing", bob.ID, "hello", "")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAddReply_DropsReplyWhenLinkFails(t *testing.T) {
	ctx := context.Background()
	users := memory.NewUserRepository()
	author := domain.User{ID: "u1", Username: "u1", DisplayName: "U1", JoinDate: time.Now()}
	require.NoError(t, users.Store(ctx, &author))

	parent := domain.Post{ID: "p1", Author: author.AsAuthor(), Text: "root", Date: time.Now()}
	posts := mocks.NewPostRepository(t)
	posts.On("GetByID", mock.Anything, "p1").Return(parent, nil).Once()
	var storedID string
	posts.On("Store", mock.Anything, mock.AnythingOfType("*domain.Post")).
		Run(func(args mock.Arguments) { storedID = args.Get(1).(*domain.Post).ID }).
		Return(nil).Once()
	posts.On("AppendReply", mock.Anything, "p1", mock.AnythingOfType("string")).Return(domain.ErrNotFound).Once()
	posts.On("Delete", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { assert.Equal(t, storedID, args.String(1)) }).
		Return(nil).Once()

	svc := post.NewService(posts, users, mocks.NewNotificationRepository(t), nil)
	_, err := svc.AddReply(ctx, "p1", "u1", "reply", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// builds root -> (a -> (a1, a2), b -> (b1 -> (b11)))
func buildTree(t *testing.T, f fixture, author domain.User) map[string]domain.Post {
	t.Helper()
	ctx := context.Background()
	tree := map[string]domain.Post{}

	root, err := f.svc.Create(ctx, author.ID, "root", "")
	require.NoError(t, err)
	tree["root"] = root

	add := func(name, parent string) {
		p, err := f.svc.AddReply(ctx, tree[parent].ID, author.ID, name, "")
		require.NoError(t, err)
		tree[name] = p
	}
	add("a", "root")
	add("a1", "a")
	add("a2", "a")
	add("b", "root")
	add("b1", "b")
	add("b11", "b1")
	return tree
}

func TestDeleteCascade_RemovesWholeTree(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	author := f.newUser(t)
	tree := buildTree(t, f, author)

	require.NoError(t, f.svc.DeleteCascade(ctx, tree["root"].ID, author.ID))

	for name, p := range tree {
		assert.False(t, f.exists(t, p.ID), "%s still exists", name)
	}
}

func TestDeleteCascade_SubtreeUnlinksFromParent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	author := f.newUser(t)
	tree := buildTree(t, f, author)

	require.NoError(t, f.svc.DeleteCascade(ctx, tree["b"].ID, author.ID))

	for _, name := range []string{"b", "b1", "b11"} {
		assert.False(t, f.exists(t, tree[name].ID), "%s still exists", name)
	}
	for _, name := range []string{"root", "a", "a1", "a2"} {
		assert.True(t, f.exists(t, tree[name].ID), "%s was removed", name)
	}

	root, err := f.posts.GetByID(ctx, tree["root"].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{tree["a"].ID}, root.Replies)
}

func TestDeleteCascade_LeafReply(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	author := f.newUser(t)
	tree := buildTree(t, f, author)

	require.NoError(t, f.svc.DeleteCascade(ctx, tree["a2"].ID, author.ID))

	assert.False(t, f.exists(t, tree["a2"].ID))
	a, err := f.posts.GetByID(ctx, tree["a"].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{tree["a1"].ID}, a.Replies)
}

func TestDeleteCascade_Unauthorized(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	author := f.newUser(t)
	stranger := f.newUser(t)
	tree := buildTree(t, f, author)

	err := f.svc.DeleteCascade(ctx, tree["root"].ID, stranger.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	for name, p := range tree {
		assert.True(t, f.exists(t, p.ID), "%s was removed", name)
	}
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

// heldPosts holds the first GetByID after it has read its snapshot.
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

func TestDeleteCascade_ReplyLinkedDuringCacheFill(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	author := f.newUser(t)

	root := domain.Post{ID: domain.NewID(), Author: author.AsAuthor(), Text: "root", Date: time.Now()}
	require.NoError(t, f.posts.Store(ctx, &root))

	held := &heldPosts{PostRepository: f.posts, read: make(chan struct{}), release: make(chan struct{})}
	cached := repository.NewPostRepository(held, newMapCache(), time.Minute)
	svc := post.NewService(cached, f.users, f.notifications, nil)

	loaded := make(chan struct{})
	go func() {
		defer close(loaded)
		_, err := svc.GetByID(ctx, root.ID)
		assert.NoError(t, err)
	}()

	<-held.read
	reply := domain.Post{
		ID:           domain.NewID(),
		Author:       author.AsAuthor(),
		Text:         "reply",
		Date:         time.Now(),
		IsReply:      true,
		ParentPostID: root.ID,
	}
	require.NoError(t, f.posts.Store(ctx, &reply))
	require.NoError(t, cached.AppendReply(ctx, root.ID, reply.ID))
	close(held.release)
	<-loaded

	require.NoError(t, svc.DeleteCascade(ctx, root.ID, author.ID))
	assert.False(t, f.exists(t, root.ID))
	assert.False(t, f.exists(t, reply.ID))
}

func TestDeleteCascade_IgnoresStaleCachedTree(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	author := f.newUser(t)
	tree := buildTree(t, f, author)

	cache := newMapCache()
	stale := tree["root"]
	stale.Replies = nil
	require.NoError(t, cache.SetPost(ctx, &stale, time.Minute))

	svc := post.NewService(repository.NewPostRepository(f.posts, cache, time.Minute), f.users, f.notifications, nil)
	require.NoError(t, svc.DeleteCascade(ctx, stale.ID, author.ID))

	for name, p := range tree {
		assert.False(t, f.exists(t, p.ID), "%s still exists", name)
	}
}

func TestDeleteCascade_NotFound(t *testing.T) {
	f := newFixture(t)
	err := f.svc.DeleteCascade(context.Background(), "missing", "anyone")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteCascade_SkipsMissingChild(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	author := f.newUser(t)
	tree := buildTree(t, f, author)

	// a1 vanished without being unlinked from a
	require.NoError(t, f.posts.Delete(ctx, tree["a1"].ID))

	require.NoError(t, f.svc.DeleteCascade(ctx, tree["root"].ID, author.ID))
	for name, p := range tree {
		assert.False(t, f.exists(t, p.ID), "%s still exists", name)
	}
}

func TestDeleteCascade_CycleTerminates(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	author := f.newUser(t)
	tree := buildTree(t, f, author)

	// corrupt link pointing b11 back at its ancestor b
	require.NoError(t, f.posts.AppendReply(ctx, tree["b11"].ID, tree["b"].ID))

	require.NoError(t, f.svc.DeleteCascade(ctx, tree["b"].ID, author.ID))
	for _, name := range []string{"b", "b1", "b11"} {
		assert.False(t, f.exists(t, tree[name].ID), "%s still exists", name)
	}
	assert.True(t, f.exists(t, tree["root"].ID))
}

func TestDeleteCascade_DeletesChildrenBeforeParents(t *testing.T) {
	ctx := context.Background()
	author := domain.Author{ID: "u1"}
	root := domain.Post{ID: "root", Author: author, Replies: []string{"c1", "c2"}}
	c1 := domain.Post{ID: "c1", Author: author, IsReply: true, ParentPostID: "root", Replies: []string{"g1"}}
	c2 := domain.Post{ID: "c2", Author: author, IsReply: true, ParentPostID: "root"}
	g1 := domain.Post{ID: "g1", Author: author, IsReply: true, ParentPostID: "c1"}

	posts := mocks.NewPostRepository(t)
	for _, p := range []domain.Post{root, c1, c2, g1} {
		posts.On("GetByID", mock.Anything, p.ID).Return(p, nil).Once()
	}
	var order []string
	posts.On("Delete", mock.Anything, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) { order = append(order, args.String(1)) }).
		Return(nil).Times(4)

	svc := post.NewService(posts, memory.NewUserRepository(), mocks.NewNotificationRepository(t), nil)
	require.NoError(t, svc.DeleteCascade(ctx, "root", "u1"))
	assert.Equal(t, []string{"g1", "c1", "c2", "root"}, order)
}

func TestDeleteCascade_StoreFailureStops(t *testing.T) {
	ctx := context.Background()
	author := domain.Author{ID: "u1"}
	root := domain.Post{ID: "root", Author: author, Replies: []string{"c1"}}
	c1 := domain.Post{ID: "c1", Author: author, IsReply: true, ParentPostID: "root"}

	posts := mocks.NewPostRepository(t)
	posts.On("GetByID", mock.Anything, "root").Return(root, nil).Once()
	posts.On("GetByID", mock.Anything, "c1").Return(c1, nil).Once()
	posts.On("Delete", mock.Anything, "c1").Return(domain.ErrUnavailable).Once()

	svc := post.NewService(posts, memory.NewUserRepository(), mocks.NewNotificationRepository(t), nil)
	err := svc.DeleteCascade(ctx, "root", "u1")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestInitBloomFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	author := f.newUser(t)
	var ids []string
	for i := 0; i < 3; i++ {
		p, err := f.svc.Create(ctx, author.ID, faker.Sentence(), "")
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	bloom := mocks.NewBloomRepository(t)
	sort.Strings(ids)
	bloom.On("BulkAdd", mock.Anything, ids).Return(nil).Once()

	svc := post.NewService(f.posts, f.users, f.notifications, bloom)
	require.NoError(t, svc.InitBloomFilter(ctx))
}

func TestGetByID_BloomShortCircuit(t *testing.T) {
	posts := mocks.NewPostRepository(t)
	bloom := mocks.NewBloomRepository(t)
	bloom.On("Exists", mock.Anything, "ghost").Return(false, nil).Once()

	svc := post.NewService(posts, memory.NewUserRepository(), mocks.NewNotificationRepository(t), bloom)
	_, err := svc.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	posts.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
