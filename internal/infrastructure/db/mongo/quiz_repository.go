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
)

const collectionQuizSubmissions = "daily_quiz_submissions"

type QuizRepository struct {
	col *mongo.Collection
}

func NewQuizRepository(db *mongo.Database) *QuizRepository {
	return &QuizRepository{col: db.Collection(collectionQuizSubmissions)}
}

type mongoQuizSubmission struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          string             `bson:"user_id"`
	UserName        string             `bson:"user_name"`
	Track           string             `bson:"track"`
	QuestionIDs     []string           `bson:"question_ids"`
	SelectedAnswers []int              `bson:"selected_answers"`
	CorrectAnswers  []int              `bson:"correct_answers"`
	Score           float64            `bson:"score"`
	Accuracy        float64            `bson:"accuracy"`
	TotalQuestions  int                `bson:"total_questions"`
	TimeTaken       int                `bson:"time_taken"`
	Date            time.Time          `bson:"date"`
}

func (r *QuizRepository) Save(ctx context.Context, s *domain.QuizSubmission) (*domain.QuizSubmission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoQuizSubmission{
		UserID:          s.UserID,
		UserName:        s.UserName,
		Track:           s.Track,
		QuestionIDs:     s.QuestionIDs,
		SelectedAnswers: s.SelectedAnswers,
		CorrectAnswers:  s.CorrectAnswers,
		Score:           s.Score,
		Accuracy:        s.Accuracy,
		TotalQuestions:  s.TotalQuestions,
		TimeTaken:       s.TimeTaken,
		Date:            s.Date,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert quiz submission: %w", err)
	}

	saved := *s
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		saved.ID = oid.Hex()
	}
	return &saved, nil
}

func (r *QuizRepository) FindByUser(ctx context.Context, userID string, limit int) ([]domain.QuizSubmission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find quiz submissions: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.QuizSubmission
	for cur.Next(ctx) {
		var ms mongoQuizSubmission
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode quiz submission: %w", err)
		}
		out = append(out, domain.QuizSubmission{
			ID:              ms.ID.Hex(),
			UserID:          ms.UserID,
			UserName:        ms.UserName,
			Track:           ms.Track,
			QuestionIDs:     ms.QuestionIDs,
			SelectedAnswers: ms.SelectedAnswers,
			CorrectAnswers:  ms.CorrectAnswers,
			Score:           ms.Score,
			Accuracy:        ms.Accuracy,
			TotalQuestions:  ms.TotalQuestions,
			TimeTaken:       ms.TimeTaken,
			Date:            ms.Date,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate quiz submissions: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the per-user results index.
func (r *QuizRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}},
	})
	return err
}
