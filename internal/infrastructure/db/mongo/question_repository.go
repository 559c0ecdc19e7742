package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/crackit360/practice-platform/internal/core/domain"
	"github.com/crackit360/practice-platform/internal/security"
)

const collectionQuestions = "questions"

type QuestionRepository struct {
	col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{col: db.Collection(collectionQuestions)}
}

type mongoQuestion struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Section       string             `bson:"section"`
	Stage         string             `bson:"stage,omitempty"`
	Topic         string             `bson:"topic"`
	Level         string             `bson:"level,omitempty"`
	Difficulty    string             `bson:"difficulty"`
	Question      string             `bson:"question"`
	Options       []string           `bson:"options"`
	CorrectAnswer int                `bson:"correct_answer"`
	Solution      string             `bson:"solution,omitempty"`
}

func (r *QuestionRepository) FindBySectionTopic(ctx context.Context, section, topic string, limit int) ([]domain.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.col.Find(ctx, bson.M{"section": section, "topic": topic}, opts)
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	return decodeQuestions(ctx, cur)
}

// Sample runs a $match + $sample pipeline so practice sets differ per attempt.
func (r *QuestionRepository) Sample(ctx context.Context, section, topic, difficulty string, limit int) ([]domain.Question, error) {
	return r.sample(ctx, bson.M{"section": section, "topic": topic, "difficulty": difficulty}, limit)
}

func (r *QuestionRepository) SampleSpeedTest(ctx context.Context, topic, level string, limit int) ([]domain.Question, error) {
	return r.sample(ctx, bson.M{"topic": topic, "level": level}, limit)
}

func (r *QuestionRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Question, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := security.SafeObjectID(id)
		if err != nil {
			return nil, domain.ErrQuestionNotFound
		}
		oids = append(oids, oid)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find questions by id: %w", err)
	}
	return decodeQuestions(ctx, cur)
}

func (r *QuestionRepository) sample(ctx context.Context, match bson.M, limit int) ([]domain.Question, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: match}},
		bson.D{{Key: "$sample", Value: bson.D{{Key: "size", Value: limit}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("sample questions: %w", err)
	}
	return decodeQuestions(ctx, cur)
}

// EnsureIndexes creates the filter indexes used by practice and speed-test
// queries.
func (r *QuestionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "section", Value: 1}, {Key: "topic", Value: 1}, {Key: "difficulty", Value: 1}}},
		{Keys: bson.D{{Key: "topic", Value: 1}, {Key: "level", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func decodeQuestions(ctx context.Context, cur *mongo.Cursor) ([]domain.Question, error) {
	defer cur.Close(ctx)

	var out []domain.Question
	for cur.Next(ctx) {
		var mq mongoQuestion
		if err := cur.Decode(&mq); err != nil {
			return nil, fmt.Errorf("decode question: %w", err)
		}
		out = append(out, domain.Question{
			ID:            mq.ID.Hex(),
			Section:       mq.Section,
			Stage:         mq.Stage,
			Topic:         mq.Topic,
			Level:         mq.Level,
			Difficulty:    mq.Difficulty,
			Question:      mq.Question,
			Options:       mq.Options,
			CorrectAnswer: mq.CorrectAnswer,
			Solution:      mq.Solution,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return out, nil
}
