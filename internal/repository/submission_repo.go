package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"beetacademy/internal/model"
)

// ErrAlreadyEvaluated means the submission has already left the pending state.
// The evaluator writes each submission exactly once.
var ErrAlreadyEvaluated = errors.New("submission already evaluated")

// SubmissionRepo handles MongoDB operations for prompt submissions
type SubmissionRepo interface {
	Create(ctx context.Context, sub *model.PromptSubmission) (string, error)
	GetByID(ctx context.Context, id string) (*model.PromptSubmission, error)
	GetByTraineeID(ctx context.Context, traineeID string) ([]*model.PromptSubmission, error)
	SetEvaluation(ctx context.Context, id string, status model.SubmissionStatus, feedback string) error
}

type submissionRepo struct {
	collection *mongo.Collection
}

// NewSubmissionRepo creates a new submission repository
func NewSubmissionRepo(db *mongo.Database) SubmissionRepo {
	return &submissionRepo{
		collection: db.Collection("submissions"),
	}
}

func (r *submissionRepo) Create(ctx context.Context, sub *model.PromptSubmission) (string, error) {
	sub.CreatedAt = time.Now()

	doc := bson.M{
		"traineeId":       sub.TraineeID,
		"submitter_name":  sub.SubmitterName,
		"submitter_email": sub.SubmitterEmail,
		"prompt_text":     sub.PromptText,
		"submission_type": sub.SubmissionType,
		"attachment_urls": sub.AttachmentURLs,
		"status":          sub.Status,
		"feedback":        sub.Feedback,
		"createdAt":       sub.CreatedAt,
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return "", err
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", nil
	}
	sub.ID = oid.Hex()
	return sub.ID, nil
}

func (r *submissionRepo) GetByID(ctx context.Context, id string) (*model.PromptSubmission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var sub model.PromptSubmission
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&sub)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sub.ID = id
	return &sub, nil
}

func (r *submissionRepo) GetByTraineeID(ctx context.Context, traineeID string) ([]*model.PromptSubmission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"traineeId": traineeID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var subs []*model.PromptSubmission
	if err := cursor.All(ctx, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *submissionRepo) SetEvaluation(ctx context.Context, id string, status model.SubmissionStatus, feedback string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	// Match on pending so the transition happens at most once.
	update := bson.M{"$set": bson.M{
		"status":      status,
		"feedback":    feedback,
		"evaluatedAt": time.Now(),
	}}
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": oid, "status": model.SubmissionPending}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrAlreadyEvaluated
	}
	return nil
}
