package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizdesk/internal/model"
)

// ErrVersionConflict is returned when a versioned replace loses the race with a
// concurrent writer. Callers re-read and retry.
var ErrVersionConflict = errors.New("attempt result was modified concurrently")

// ResultRepo handles MongoDB operations for attempt results
type ResultRepo interface {
	Create(ctx context.Context, result *model.AttemptResult) error
	GetByID(ctx context.Context, id string) (*model.AttemptResult, error)
	ReplaceVersioned(ctx context.Context, result *model.AttemptResult) error
	SetPublished(ctx context.Context, id string) (bool, error)
	PublishAllEvaluated(ctx context.Context, quizID string) (int64, error)
	ListByUser(ctx context.Context, userID string, publishedOnly bool) ([]*model.AttemptResult, error)
	ListPublishedByQuiz(ctx context.Context, quizID string) ([]*model.AttemptResult, error)
	ListPendingEvaluation(ctx context.Context) ([]*model.AttemptResult, error)
	ListAll(ctx context.Context) ([]*model.AttemptResult, error)
}

type resultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a new attempt result repository
func NewResultRepo(db *mongo.Database) ResultRepo {
	return &resultRepo{
		collection: db.Collection("quiz_results"),
	}
}

func (r *resultRepo) Create(ctx context.Context, result *model.AttemptResult) error {
	_, err := r.collection.InsertOne(ctx, result)
	return err
}

func (r *resultRepo) GetByID(ctx context.Context, id string) (*model.AttemptResult, error) {
	var result model.AttemptResult
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&result)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ReplaceVersioned swaps the whole document in a single atomic write, guarded
// by the version stamp the caller read. On success the in-memory version is
// bumped to match the stored one.
func (r *resultRepo) ReplaceVersioned(ctx context.Context, result *model.AttemptResult) error {
	readVersion := result.Version
	result.Version = readVersion + 1

	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": result.ID, "version": readVersion}, result)
	if err != nil {
		result.Version = readVersion
		return err
	}
	if res.MatchedCount == 0 {
		result.Version = readVersion
		return ErrVersionConflict
	}
	return nil
}

func (r *resultRepo) SetPublished(ctx context.Context, id string) (bool, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_published": true}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// PublishAllEvaluated publishes every evaluated, still-unpublished result of a
// quiz and reports how many documents were touched.
func (r *resultRepo) PublishAllEvaluated(ctx context.Context, quizID string) (int64, error) {
	filter := bson.M{"quiz_id": quizID, "is_evaluated": true, "is_published": false}
	res, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"is_published": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (r *resultRepo) ListByUser(ctx context.Context, userID string, publishedOnly bool) ([]*model.AttemptResult, error) {
	filter := bson.M{"user_id": userID}
	if publishedOnly {
		filter["is_published"] = true
	}
	return r.list(ctx, filter, options.Find().SetSort(bson.M{"completed_at": -1}))
}

func (r *resultRepo) ListPublishedByQuiz(ctx context.Context, quizID string) ([]*model.AttemptResult, error) {
	filter := bson.M{"quiz_id": quizID, "is_published": true}
	return r.list(ctx, filter, options.Find().SetSort(bson.M{"percentage": -1}))
}

func (r *resultRepo) ListPendingEvaluation(ctx context.Context) ([]*model.AttemptResult, error) {
	return r.list(ctx, bson.M{"is_evaluated": false}, options.Find().SetSort(bson.M{"completed_at": 1}))
}

func (r *resultRepo) ListAll(ctx context.Context) ([]*model.AttemptResult, error) {
	return r.list(ctx, bson.M{}, options.Find().SetSort(bson.M{"completed_at": -1}))
}

func (r *resultRepo) list(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.AttemptResult, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*model.AttemptResult
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
