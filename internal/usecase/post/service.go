package post

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/go-social-feed/domain"
)

const bloomInitPageSize = 1000

type Service struct {
	postRepo         domain.PostRepository
	postStore        domain.PostRepository
	userRepo         domain.UserRepository
	notificationRepo domain.NotificationRepository
	bloomRepo        domain.BloomRepository
	now              func() time.Time
}

var _ domain.PostUsecase = (*Service)(nil)

// NewService will create a new post service object. bloom may be nil.
func NewService(p domain.PostRepository, u domain.UserRepository, n domain.NotificationRepository, bloom domain.BloomRepository) *Service {
	return &Service{
		postRepo:         p,
		postStore:        domain.Uncached(p),
		userRepo:         u,
		notificationRepo: n,
		bloomRepo:        bloom,
		now:              time.Now,
	}
}

func (s *Service) Create(ctx context.Context, authorID, text, imageURL string) (domain.Post, error) {
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return domain.Post{}, err
	}
	p := domain.Post{
		ID:       domain.NewID(),
		Author:   author.AsAuthor(),
		Text:     text,
		ImageURL: imageURL,
		Date:     s.now(),
	}
	if err := s.postRepo.Store(ctx, &p); err != nil {
		return domain.Post{}, err
	}
	s.track(ctx, p.ID)
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Post, error) {
	if err := s.mustExist(ctx, id); err != nil {
		return domain.Post{}, err
	}
	return s.postRepo.GetByID(ctx, id)
}

// AddReply stores the reply before linking it into the parent, so a failure in
// between leaves an unlinked reply rather than a dangling child id.
func (s *Service) AddReply(ctx context.Context, parentPostID, authorID, text, imageURL string) (domain.Post, error) {
	if err := s.mustExist(ctx, parentPostID); err != nil {
		return domain.Post{}, err
	}
	parent, err := s.postRepo.GetByID(ctx, parentPostID)
	if err != nil {
		return domain.Post{}, err
	}
	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return domain.Post{}, err
	}

	reply := domain.Post{
		ID:           domain.NewID(),
		Author:       author.AsAuthor(),
		Text:         text,
		ImageURL:     imageURL,
		Date:         s.now(),
		IsReply:      true,
		ParentPostID: parent.ID,
	}
	if err := s.postRepo.Store(ctx, &reply); err != nil {
		return domain.Post{}, err
	}
	if err := s.postRepo.AppendReply(ctx, parent.ID, reply.ID); err != nil {
		s.dropOrphan(ctx, reply.ID)
		return domain.Post{}, err
	}
	s.track(ctx, reply.ID)

	if reply.Author.ID != parent.Author.ID {
		n := domain.NewReplyNotification(reply, parent, s.now())
		if err := s.notificationRepo.Store(ctx, &n); err != nil {
			logrus.WithFields(logrus.Fields{"post": parent.ID, "reply": reply.ID}).
				Errorf("failed to store reply notification: %v", err)
		}
	}
	return reply, nil
}

// DeleteCascade removes the post and all of its descendant replies, children
// before parents, then unlinks the post from its own parent. The tree is read
// from the store, not the cache, so a reply linked a moment ago is not missed.
func (s *Service) DeleteCascade(ctx context.Context, postID, requesterID string) error {
	root, err := s.postStore.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if root.Author.ID != requesterID {
		return domain.ErrUnauthorized
	}

	if err := s.deleteTree(ctx, root); err != nil {
		return err
	}

	if root.IsReply {
		err := s.postRepo.RemoveReply(ctx, root.ParentPostID, root.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return err
		}
	}
	return nil
}

type frame struct {
	post     domain.Post
	expanded bool
}

// deleteTree walks the reply tree depth first with an explicit stack and
// deletes in post-order. Missing descendants are skipped; the visited set
// stops the walk if a corrupted link ever forms a cycle.
func (s *Service) deleteTree(ctx context.Context, root domain.Post) error {
	visited := map[string]bool{root.ID: true}
	stack := []frame{{post: root}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.expanded {
			id := top.post.ID
			stack = stack[:len(stack)-1]
			if err := s.postRepo.Delete(ctx, id); err != nil && !(errors.Is(err, domain.ErrNotFound) && id != root.ID) {
				return err
			}
			continue
		}
		top.expanded = true

		children := top.post.Replies
		for i := len(children) - 1; i >= 0; i-- {
			childID := children[i]
			if visited[childID] {
				logrus.Warnf("reply %s reached twice while deleting %s, skipping", childID, root.ID)
				continue
			}
			visited[childID] = true

			child, err := s.postStore.GetByID(ctx, childID)
			if errors.Is(err, domain.ErrNotFound) {
				logrus.Warnf("reply %s of %s is missing, skipping", childID, root.ID)
				continue
			}
			if err != nil {
				return err
			}
			stack = append(stack, frame{post: child})
		}
	}
	return nil
}

func (s *Service) InitBloomFilter(ctx context.Context) error {
	if s.bloomRepo == nil {
		return nil
	}
	var after string
	for {
		ids, err := s.postRepo.FetchIDs(ctx, after, bloomInitPageSize)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := s.bloomRepo.BulkAdd(ctx, ids); err != nil {
			return err
		}
		after = ids[len(ids)-1]
	}
}

func (s *Service) mustExist(ctx context.Context, id string) error {
	if s.bloomRepo == nil {
		return nil
	}
	exists, err := s.bloomRepo.Exists(ctx, id)
	if err == nil && !exists {
		logrus.Warnf("bloom filter says post %s does not exist", id)
		return domain.ErrNotFound
	}
	return nil
}

func (s *Service) track(ctx context.Context, id string) {
	if s.bloomRepo == nil {
		return
	}
	if err := s.bloomRepo.Add(ctx, id); err != nil {
		logrus.Errorf("failed to add post %s to bloom filter: %v", id, err)
	}
}

func (s *Service) dropOrphan(ctx context.Context, id string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.postRepo.Delete(ctx, id); err != nil && !errors.Is(err, domain.ErrNotFound) {
		logrus.Errorf("failed to drop unlinked reply %s: %v", id, err)
	}
}
