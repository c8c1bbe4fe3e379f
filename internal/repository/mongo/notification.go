package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Guyuepp/go-social-feed/domain"
)

type notificationDoc struct {
	ID          string    `bson:"_id"`
	FromUserID  string    `bson:"fromUserId"`
	OwnerUserID string    `bson:"ownerUserId"`
	Text        string    `bson:"text"`
	Kind        string    `bson:"kind"`
	SubjectPath string    `bson:"subjectPath"`
	Date        time.Time `bson:"date"`
	Read        bool      `bson:"read"`
}

func (d *notificationDoc) toDomain() domain.Notification {
	return domain.Notification{
		ID:          d.ID,
		FromUserID:  d.FromUserID,
		OwnerUserID: d.OwnerUserID,
		Text:        d.Text,
		Kind:        domain.NotificationKind(d.Kind),
		SubjectPath: d.SubjectPath,
		Date:        d.Date,
		Read:        d.Read,
	}
}

type notificationRepository struct {
	col *mongo.Collection
}

var _ domain.NotificationRepository = (*notificationRepository)(nil)

func NewNotificationRepository(db *mongo.Database) *notificationRepository {
	return &notificationRepository{col: db.Collection(notificationsCollection)}
}

func (r *notificationRepository) Store(ctx context.Context, n *domain.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	_, err := r.col.InsertOne(ctx, notificationDoc{
		ID:          n.ID,
		FromUserID:  n.FromUserID,
		OwnerUserID: n.OwnerUserID,
		Text:        n.Text,
		Kind:        string(n.Kind),
		SubjectPath: n.SubjectPath,
		Date:        n.Date,
		Read:        n.Read,
	})
	return translateError(err)
}

func (r *notificationRepository) DeleteLike(ctx context.Context, fromUserID, ownerUserID, subjectPath string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{
		"kind":        string(domain.KindLike),
		"fromUserId":  fromUserID,
		"ownerUserId": ownerUserID,
		"subjectPath": subjectPath,
	})
	if err != nil {
		return 0, translateError(err)
	}
	return res.DeletedCount, nil
}

func (r *notificationRepository) FetchByOwner(ctx context.Context, ownerUserID string, after domain.Cursor, num int64) ([]domain.Notification, error) {
	filter := newestAfter(bson.M{"ownerUserId": ownerUserID}, after)
	cur, err := r.col.Find(ctx, filter, newestFirst(num))
	if err != nil {
		return nil, translateError(err)
	}
	var docs []notificationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translateError(err)
	}

	res := make([]domain.Notification, len(docs))
	for i := range docs {
		res[i] = docs[i].toDomain()
	}
	return res, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, ownerUserID string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "ownerUserId": ownerUserID},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return translateError(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
