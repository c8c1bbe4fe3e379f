package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Guyuepp/go-social-feed/domain"
)

// newestAfter narrows filter to documents strictly after the cursor in
// (date, _id) descending order.
func newestAfter(filter bson.M, after domain.Cursor) bson.M {
	if after.IsZero() {
		return filter
	}
	filter["$or"] = bson.A{
		bson.M{"date": bson.M{"$lt": after.Date}},
		bson.M{"date": after.Date, "_id": bson.M{"$lt": after.ID}},
	}
	return filter
}

func newestFirst(num int64) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(num)
}
