package memory

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/Guyuepp/go-social-feed/domain"
)

type postRepository struct {
	mu    sync.RWMutex
	posts map[string]*domain.Post
}

var _ domain.PostRepository = (*postRepository)(nil)

func NewPostRepository() *postRepository {
	return &postRepository{posts: make(map[string]*domain.Post)}
}

func (r *postRepository) GetByID(_ context.Context, id string) (domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return domain.Post{}, domain.ErrNotFound
	}
	return clonePost(p), nil
}

func (r *postRepository) Store(_ context.Context, p *domain.Post) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[p.ID]; ok {
		return domain.ErrConflict
	}
	stored := clonePost(p)
	r.posts[p.ID] = &stored
	return nil
}

func (r *postRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *postRepository) AddLike(_ context.Context, postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok || slices.Contains(p.LikedBy, userID) {
		return false, nil
	}
	p.LikedBy = append(p.LikedBy, userID)
	p.LikeCounter++
	return true, nil
}

func (r *postRepository) RemoveLike(_ context.Context, postID, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok || !slices.Contains(p.LikedBy, userID) {
		return false, nil
	}
	p.LikedBy = removeMember(p.LikedBy, userID)
	p.LikeCounter--
	return true, nil
}

func (r *postRepository) AppendReply(_ context.Context, parentID, replyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[parentID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Replies = addMember(p.Replies, replyID)
	return nil
}

func (r *postRepository) RemoveReply(_ context.Context, parentID, replyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[parentID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Replies = removeMember(p.Replies, replyID)
	return nil
}

func (r *postRepository) FetchIDs(_ context.Context, afterID string, limit int64) ([]string, error) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.posts))
	for id := range r.posts {
		if id > afterID {
			ids = append(ids, id)
		}
	}
	r.mu.RUnlock()

	sort.Strings(ids)
	if int64(len(ids)) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (r *postRepository) Fetch(_ context.Context, excludeAuthorIDs []string, after domain.Cursor, num int64) ([]domain.Post, error) {
	return r.list(after, num, func(p *domain.Post) bool {
		return !p.IsReply && !slices.Contains(excludeAuthorIDs, p.Author.ID)
	}), nil
}

func (r *postRepository) FetchByAuthors(_ context.Context, authorIDs []string, after domain.Cursor, num int64) ([]domain.Post, error) {
	return r.list(after, num, func(p *domain.Post) bool {
		return slices.Contains(authorIDs, p.Author.ID)
	}), nil
}

func (r *postRepository) FetchLikedBy(_ context.Context, userID string, after domain.Cursor, num int64) ([]domain.Post, error) {
	return r.list(after, num, func(p *domain.Post) bool {
		return slices.Contains(p.LikedBy, userID)
	}), nil
}

// list returns up to num matching posts newest first, starting after the cursor.
func (r *postRepository) list(after domain.Cursor, num int64, match func(p *domain.Post) bool) []domain.Post {
	r.mu.RLock()
	res := make([]domain.Post, 0)
	for _, p := range r.posts {
		if match(p) && after.Admits(p.Date, p.ID) {
			res = append(res, clonePost(p))
		}
	}
	r.mu.RUnlock()

	sort.Slice(res, func(i, j int) bool {
		return domain.NewestFirst(res[i].Date, res[i].ID, res[j].Date, res[j].ID)
	})
	if int64(len(res)) > num {
		res = res[:num]
	}
	return res
}

func clonePost(p *domain.Post) domain.Post {
	c := *p
	c.LikedBy = slices.Clone(p.LikedBy)
	c.Replies = slices.Clone(p.Replies)
	return c
}
