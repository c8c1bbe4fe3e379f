package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Guyuepp/go-social-feed/domain"
)

type userDoc struct {
	ID             string    `bson:"_id"`
	Username       string    `bson:"username"`
	DisplayName    string    `bson:"displayName"`
	ProfilePicture string    `bson:"profilePicture,omitempty"`
	Bio            string    `bson:"bio,omitempty"`
	Location       string    `bson:"location,omitempty"`
	JoinDate       time.Time `bson:"joinDate"`
	Followers      []string  `bson:"followers"`
	Following      []string  `bson:"following"`
	BlockedIDs     []string  `bson:"blockedIds"`
}

func (d *userDoc) toDomain() domain.User {
	return domain.User{
		ID:             d.ID,
		Username:       d.Username,
		DisplayName:    d.DisplayName,
		ProfilePicture: d.ProfilePicture,
		Bio:            d.Bio,
		Location:       d.Location,
		JoinDate:       d.JoinDate,
		Followers:      d.Followers,
		Following:      d.Following,
		BlockedIDs:     d.BlockedIDs,
	}
}

func newUserDoc(u *domain.User) *userDoc {
	return &userDoc{
		ID:             u.ID,
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		ProfilePicture: u.ProfilePicture,
		Bio:            u.Bio,
		Location:       u.Location,
		JoinDate:       u.JoinDate,
		Followers:      nonNil(u.Followers),
		Following:      nonNil(u.Following),
		BlockedIDs:     nonNil(u.BlockedIDs),
	}
}

// nonNil keeps arrays present in stored documents so $addToSet and $push
// never meet a null field.
func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

type userRepository struct {
	col *mongo.Collection
}

var _ domain.UserRepository = (*userRepository)(nil)

func NewUserRepository(db *mongo.Database) *userRepository {
	return &userRepository{col: db.Collection(usersCollection)}
}

func (r *userRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *userRepository) findOne(ctx context.Context, filter bson.M) (domain.User, error) {
	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		return domain.User{}, translateError(err)
	}
	return doc.toDomain(), nil
}

// FetchBlockerIDs lists the users whose block list contains userID.
func (r *userRepository) FetchBlockerIDs(ctx context.Context, userID string) ([]string, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetProjection(bson.M{"_id": 1})
	cur, err := r.col.Find(ctx, bson.M{"blockedIds": userID}, opts)
	if err != nil {
		return nil, translateError(err)
	}

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, translateError(err)
	}
	ids := make([]string, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	return ids, nil
}

func (r *userRepository) Store(ctx context.Context, u *domain.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	_, err := r.col.InsertOne(ctx, newUserDoc(u))
	return translateError(err)
}

func (r *userRepository) AddFollower(ctx context.Context, userID, followerID string) error {
	return r.update(ctx, userID, bson.M{"$addToSet": bson.M{"followers": followerID}})
}

func (r *userRepository) RemoveFollower(ctx context.Context, userID, followerID string) error {
	return r.update(ctx, userID, bson.M{"$pull": bson.M{"followers": followerID}})
}

func (r *userRepository) AddFollowing(ctx context.Context, userID, followingID string) error {
	return r.update(ctx, userID, bson.M{"$addToSet": bson.M{"following": followingID}})
}

func (r *userRepository) RemoveFollowing(ctx context.Context, userID, followingID string) error {
	return r.update(ctx, userID, bson.M{"$pull": bson.M{"following": followingID}})
}

func (r *userRepository) AddBlocked(ctx context.Context, userID, blockedID string) error {
	return r.update(ctx, userID, bson.M{"$addToSet": bson.M{"blockedIds": blockedID}})
}

func (r *userRepository) RemoveBlocked(ctx context.Context, userID, blockedID string) error {
	return r.update(ctx, userID, bson.M{"$pull": bson.M{"blockedIds": blockedID}})
}

func (r *userRepository) update(ctx context.Context, userID string, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
