package ports

import (
	"context"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

// QuizSubmissionInput carries a daily-quiz attempt from the transport layer.
type QuizSubmissionInput struct {
	UserID      string
	UserName    string
	Track       string
	QuestionIDs []string
	// Answers are option indexes aligned with QuestionIDs; -1 marks an
	// unanswered question.
	Answers   []int
	TimeTaken int
}

// QuizService grades and records daily quizzes.
type QuizService interface {
	Submit(ctx context.Context, in QuizSubmissionInput) (*domain.QuizSubmission, error)
	Results(ctx context.Context, userID string, limit int) ([]domain.QuizSubmission, error)
}

// QuizRepository persists graded submissions.
type QuizRepository interface {
	Save(ctx context.Context, submission *domain.QuizSubmission) (*domain.QuizSubmission, error)
	FindByUser(ctx context.Context, userID string, limit int) ([]domain.QuizSubmission, error)
}
