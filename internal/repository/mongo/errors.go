// Package mongo stores users, posts and notifications as MongoDB documents.
// Every mutation is a single filtered update on one document, so the store
// needs no multi-document transactions.
package mongo

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Guyuepp/go-social-feed/domain"
)

const (
	usersCollection         = "users"
	postsCollection         = "posts"
	notificationsCollection = "notifications"
)

func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrConflict
	default:
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
}
