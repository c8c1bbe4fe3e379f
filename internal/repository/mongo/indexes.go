package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique username index and the listing indexes.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return translateError(err)
	}

	_, err = db.Collection(notificationsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerUserId", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "fromUserId", Value: 1}, {Key: "ownerUserId", Value: 1}, {Key: "subjectPath", Value: 1}}},
	})
	if err != nil {
		return translateError(err)
	}

	_, err = db.Collection(postsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}},
		{Keys: bson.D{{Key: "author.id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "likedBy", Value: 1}}},
	})
	if err != nil {
		return translateError(err)
	}

	_, err = db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "blockedIds", Value: 1}},
	})
	return translateError(err)
}
