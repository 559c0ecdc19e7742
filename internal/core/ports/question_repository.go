package ports

import (
	"context"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

// QuestionRepository defines read access to the question bank.
type QuestionRepository interface {
	// FindBySectionTopic returns questions for a section/topic pair,
	// at most limit when limit is positive.
	FindBySectionTopic(ctx context.Context, section, topic string, limit int) ([]domain.Question, error)
	// Sample returns up to limit random questions matching the filter.
	Sample(ctx context.Context, section, topic, difficulty string, limit int) ([]domain.Question, error)
	// SampleSpeedTest returns up to limit random speed-test questions.
	SampleSpeedTest(ctx context.Context, topic, level string, limit int) ([]domain.Question, error)
	FindByIDs(ctx context.Context, ids []string) ([]domain.Question, error)
}
