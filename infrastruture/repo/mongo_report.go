package repo

import (
	"context"
	"errors"

	dmn "github.com/beka-birhanu/vinom-wayout/domain"
	"github.com/beka-birhanu/vinom-wayout/service/i"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.ReportRepo = &MongoReportRepo{}

// MongoReportRepo handles the persistence of run reports in MongoDB.
type MongoReportRepo struct {
	collection *mongo.Collection
}

// NewMongoReportRepo creates a new MongoReportRepo with the given MongoDB client, database name, and collection name.
func NewMongoReportRepo(client *mongo.Client, dbName, collectionName string) *MongoReportRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MongoReportRepo{
		collection: collection,
	}
}

// Save inserts a run report.
func (r *MongoReportRepo) Save(ctx context.Context, report *dmn.RunReport) error {
	if _, err := r.collection.InsertOne(ctx, report); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("report already exists")
		}
		return errors.New("unexpected error: " + err.Error())
	}
	return nil
}

// Recent returns up to limit reports ordered by finish time, newest first.
func (r *MongoReportRepo) Recent(ctx context.Context, limit int) ([]*dmn.RunReport, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "finishedAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	defer cursor.Close(ctx)

	reports := make([]*dmn.RunReport, 0, limit)
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return reports, nil
}
