// Package memory keeps users, posts and notifications in process memory.
// Each repository guards its documents with one mutex, which gives the same
// single-document atomicity the real stores offer.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/Guyuepp/go-social-feed/domain"
)

type userRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

var _ domain.UserRepository = (*userRepository)(nil)

func NewUserRepository() *userRepository {
	return &userRepository{users: make(map[string]*domain.User)}
}

func (r *userRepository) GetByID(_ context.Context, id string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (r *userRepository) Store(_ context.Context, u *domain.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; ok {
		return domain.ErrConflict
	}
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return domain.ErrConflict
		}
	}
	stored := cloneUser(u)
	r.users[u.ID] = &stored
	return nil
}

func (r *userRepository) AddFollower(_ context.Context, userID, followerID string) error {
	return r.mutate(userID, func(u *domain.User) { u.Followers = addMember(u.Followers, followerID) })
}

func (r *userRepository) RemoveFollower(_ context.Context, userID, followerID string) error {
	return r.mutate(userID, func(u *domain.User) { u.Followers = removeMember(u.Followers, followerID) })
}

func (r *userRepository) AddFollowing(_ context.Context, userID, followingID string) error {
	return r.mutate(userID, func(u *domain.User) { u.Following = addMember(u.Following, followingID) })
}

func (r *userRepository) RemoveFollowing(_ context.Context, userID, followingID string) error {
	return r.mutate(userID, func(u *domain.User) { u.Following = removeMember(u.Following, followingID) })
}

func (r *userRepository) AddBlocked(_ context.Context, userID, blockedID string) error {
	return r.mutate(userID, func(u *domain.User) { u.BlockedIDs = addMember(u.BlockedIDs, blockedID) })
}

func (r *userRepository) RemoveBlocked(_ context.Context, userID, blockedID string) error {
	return r.mutate(userID, func(u *domain.User) { u.BlockedIDs = removeMember(u.BlockedIDs, blockedID) })
}

func (r *userRepository) FetchBlockerIDs(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0)
	for id, u := range r.users {
		if slices.Contains(u.BlockedIDs, userID) {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

func (r *userRepository) mutate(userID string, fn func(u *domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrNotFound
	}
	fn(u)
	return nil
}

func cloneUser(u *domain.User) domain.User {
	c := *u
	c.Followers = slices.Clone(u.Followers)
	c.Following = slices.Clone(u.Following)
	c.BlockedIDs = slices.Clone(u.BlockedIDs)
	return c
}

func addMember(set []string, id string) []string {
	if slices.Contains(set, id) {
		return set
	}
	return append(set, id)
}

func removeMember(set []string, id string) []string {
	return slices.DeleteFunc(set, func(v string) bool { return v == id })
}
