package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizdesk/internal/model"
)

// QuizRepo handles MongoDB operations for quizzes
type QuizRepo interface {
	Create(ctx context.Context, quiz *model.Quiz) error
	GetByID(ctx context.Context, id string) (*model.Quiz, error)
	ListActive(ctx context.Context) ([]*model.Quiz, error)
	Deactivate(ctx context.Context, id string) (bool, error)
}

type quizRepo struct {
	collection *mongo.Collection
}

// NewQuizRepo creates a new quiz repository
func NewQuizRepo(db *mongo.Database) QuizRepo {
	return &quizRepo{
		collection: db.Collection("quizzes"),
	}
}

func (r *quizRepo) Create(ctx context.Context, quiz *model.Quiz) error {
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now()
	}
	_, err := r.collection.InsertOne(ctx, quiz)
	return err
}

func (r *quizRepo) GetByID(ctx context.Context, id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&quiz)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// ListActive returns active quizzes without their question lists. The derived
// counts are stored on the document, so the projection stays listing-safe.
func (r *quizRepo) ListActive(ctx context.Context) ([]*model.Quiz, error) {
	opts := options.Find().SetProjection(bson.M{"questions": 0})
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var quizzes []*model.Quiz
	if err := cursor.All(ctx, &quizzes); err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepo) Deactivate(ctx context.Context, id string) (bool, error) {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"is_active": false}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}
