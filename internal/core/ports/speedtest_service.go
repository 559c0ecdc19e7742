package ports

import (
	"context"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

// SpeedTestSubmission carries a completed speed test for grading.
type SpeedTestSubmission struct {
	UserID      string
	Topic       string
	Level       string
	QuestionIDs []string
	// Answers are option indexes aligned with QuestionIDs; -1 marks an
	// unanswered question.
	Answers []int
}

// SpeedTestResult is the graded outcome of a submission.
type SpeedTestResult struct {
	Score          float64 `json:"score"`
	Accuracy       float64 `json:"accuracy"`
	TotalQuestions int     `json:"total_questions"`
	CorrectAnswers []int   `json:"correct_answers"`
}

// SpeedTestService serves timed quantitative tests.
type SpeedTestService interface {
	// TimeLimit returns the total allowed seconds for a test: a fixed
	// per-question budget by level (easy 60, intermediate 45, hard 30).
	TimeLimit(level string, questions int) int
	Questions(ctx context.Context, topic, level string, limit int) ([]domain.Question, error)
	Submit(ctx context.Context, in SpeedTestSubmission) (*SpeedTestResult, error)
}
