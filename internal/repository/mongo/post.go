package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Guyuepp/go-social-feed/domain"
)

type authorDoc struct {
	ID             string `bson:"id"`
	Username       string `bson:"username"`
	DisplayName    string `bson:"displayName"`
	ProfilePicture string `bson:"profilePicture,omitempty"`
}

type postDoc struct {
	ID           string    `bson:"_id"`
	Author       authorDoc `bson:"author"`
	Text         string    `bson:"text"`
	ImageURL     string    `bson:"imageUrl,omitempty"`
	Date         time.Time `bson:"date"`
	LikeCounter  int64     `bson:"likeCounter"`
	LikedBy      []string  `bson:"likedBy"`
	IsReply      bool      `bson:"isReply"`
	ParentPostID string    `bson:"parentPostId,omitempty"`
	Replies      []string  `bson:"replies"`
}

func (d *postDoc) toDomain() domain.Post {
	return domain.Post{
		ID: d.ID,
		Author: domain.Author{
			ID:             d.Author.ID,
			Username:       d.Author.Username,
			DisplayName:    d.Author.DisplayName,
			ProfilePicture: d.Author.ProfilePicture,
		},
		Text:         d.Text,
		ImageURL:     d.ImageURL,
		Date:         d.Date,
		LikeCounter:  d.LikeCounter,
		LikedBy:      d.LikedBy,
		IsReply:      d.IsReply,
		ParentPostID: d.ParentPostID,
		Replies:      d.Replies,
	}
}

func newPostDoc(p *domain.Post) *postDoc {
	return &postDoc{
		ID: p.ID,
		Author: authorDoc{
			ID:             p.Author.ID,
			Username:       p.Author.Username,
			DisplayName:    p.Author.DisplayName,
			ProfilePicture: p.Author.ProfilePicture,
		},
		Text:         p.Text,
		ImageURL:     p.ImageURL,
		Date:         p.Date,
		LikeCounter:  p.LikeCounter,
		LikedBy:      nonNil(p.LikedBy),
		IsReply:      p.IsReply,
		ParentPostID: p.ParentPostID,
		Replies:      nonNil(p.Replies),
	}
}

type postRepository struct {
	col *mongo.Collection
}

var _ domain.PostRepository = (*postRepository)(nil)

func NewPostRepository(db *mongo.Database) *postRepository {
	return &postRepository{col: db.Collection(postsCollection)}
}

func (r *postRepository) GetByID(ctx context.Context, id string) (domain.Post, error) {
	var doc postDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return domain.Post{}, translateError(err)
	}
	return doc.toDomain(), nil
}

func (r *postRepository) Store(ctx context.Context, p *domain.Post) error {
	if err := p.Validate(); err != nil {
		return err
	}
	_, err := r.col.InsertOne(ctx, newPostDoc(p))
	return translateError(err)
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translateError(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddLike matches only when userID is absent, so the push and the increment
// land together or not at all.
func (r *postRepository) AddLike(ctx context.Context, postID, userID string) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": postID, "likedBy": bson.M{"$ne": userID}},
		bson.M{
			"$push": bson.M{"likedBy": userID},
			"$inc":  bson.M{"likeCounter": 1},
		})
	if err != nil {
		return false, translateError(err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *postRepository) RemoveLike(ctx context.Context, postID, userID string) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": postID, "likedBy": userID},
		bson.M{
			"$pull": bson.M{"likedBy": userID},
			"$inc":  bson.M{"likeCounter": -1},
		})
	if err != nil {
		return false, translateError(err)
	}
	return res.ModifiedCount == 1, nil
}

func (r *postRepository) AppendReply(ctx context.Context, parentID, replyID string) error {
	return r.update(ctx, parentID, bson.M{"$addToSet": bson.M{"replies": replyID}})
}

func (r *postRepository) RemoveReply(ctx context.Context, parentID, replyID string) error {
	return r.update(ctx, parentID, bson.M{"$pull": bson.M{"replies": replyID}})
}

func (r *postRepository) update(ctx context.Context, id string, update bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postRepository) FetchIDs(ctx context.Context, afterID string, limit int64) ([]string, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(limit).
		SetProjection(bson.M{"_id": 1})
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$gt": afterID}}, opts)
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

// Fetch lists root posts whose author is not in excludeAuthorIDs.
func (r *postRepository) Fetch(ctx context.Context, excludeAuthorIDs []string, after domain.Cursor, num int64) ([]domain.Post, error) {
	filter := bson.M{"isReply": false}
	if len(excludeAuthorIDs) > 0 {
		filter["author.id"] = bson.M{"$nin": excludeAuthorIDs}
	}
	return r.list(ctx, filter, after, num)
}

func (r *postRepository) FetchByAuthors(ctx context.Context, authorIDs []string, after domain.Cursor, num int64) ([]domain.Post, error) {
	if len(authorIDs) == 0 {
		return []domain.Post{}, nil
	}
	return r.list(ctx, bson.M{"author.id": bson.M{"$in": authorIDs}}, after, num)
}

func (r *postRepository) FetchLikedBy(ctx context.Context, userID string, after domain.Cursor, num int64) ([]domain.Post, error) {
	return r.list(ctx, bson.M{"likedBy": userID}, after, num)
}

func (r *postRepository) list(ctx context.Context, filter bson.M, after domain.Cursor, num int64) ([]domain.Post, error) {
	cur, err := r.col.Find(ctx, newestAfter(filter, after), newestFirst(num))
	if err != nil {
		return nil, translateError(err)
	}
	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translateError(err)
	}
	res := make([]domain.Post, len(docs))
	for i := range docs {
		res[i] = docs[i].toDomain()
	}
	return res, nil
}
