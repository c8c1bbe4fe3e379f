package domain

import "github.com/google/uuid"

// NewID returns a fresh opaque identifier for users, posts and notifications.
func NewID() string {
	return uuid.NewString()
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
