package service

import (
	"context"
	"strings"

	"github.com/crackit360/practice-platform/internal/core/domain"
	"github.com/crackit360/practice-platform/internal/core/ports"
)

const defaultSpeedTestSize = 10

// secondsPerQuestion is the deterministic time budget by level.
var secondsPerQuestion = map[string]int{
	"easy":         60,
	"intermediate": 45,
	"hard":         30,
}

// SpeedTestService serves timed quantitative tests and grades submissions.
type SpeedTestService struct {
	questions ports.QuestionRepository
}

func NewSpeedTestService(questions ports.QuestionRepository) *SpeedTestService {
	return &SpeedTestService{questions: questions}
}

// TimeLimit returns the total allowed seconds for a test of the given size.
// Unknown levels fall back to the intermediate budget.
func (s *SpeedTestService) TimeLimit(level string, questions int) int {
	per, ok := secondsPerQuestion[strings.ToLower(level)]
	if !ok {
		per = secondsPerQuestion["intermediate"]
	}
	if questions < 0 {
		questions = 0
	}
	return per * questions
}

func (s *SpeedTestService) Questions(ctx context.Context, topic, level string, limit int) ([]domain.Question, error) {
	if topic == "" || level == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultSpeedTestSize
	}
	return s.questions.SampleSpeedTest(ctx, topic, level, limit)
}

// Submit grades answer indexes against the question bank and reveals the
// correct answers for review. Speed-test attempts are not persisted.
func (s *SpeedTestService) Submit(ctx context.Context, in ports.SpeedTestSubmission) (*ports.SpeedTestResult, error) {
	graded, err := grade(ctx, s.questions, in.QuestionIDs, in.Answers)
	if err != nil {
		return nil, err
	}
	return &ports.SpeedTestResult{
		Score:          graded.score,
		Accuracy:       graded.accuracy,
		TotalQuestions: graded.total,
		CorrectAnswers: graded.correct,
	}, nil
}
