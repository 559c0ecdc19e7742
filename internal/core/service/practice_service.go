package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/crackit360/practice-platform/internal/core/domain"
	"github.com/crackit360/practice-platform/internal/core/ports"
)

const (
	defaultPracticeSetSize = 15
	maxPracticeSetSize     = 50

	// Free practice is uncapped per-topic in the UI but the query is not:
	// a runaway topic must not stream the whole bank.
	maxFreePracticeResults = 1000
)

// PracticeService serves the free-practice and practice-set modes from the
// question bank.
type PracticeService struct {
	questions ports.QuestionRepository
	log       zerolog.Logger
}

func NewPracticeService(questions ports.QuestionRepository, log zerolog.Logger) *PracticeService {
	return &PracticeService{questions: questions, log: log}
}

func (s *PracticeService) FreePractice(ctx context.Context, section, topic string) ([]domain.Question, error) {
	if section == "" || topic == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.questions.FindBySectionTopic(ctx, section, topic, maxFreePracticeResults)
}

// PracticeSet returns a random sample for timed and advanced practice.
func (s *PracticeService) PracticeSet(ctx context.Context, section, topic, difficulty string, limit int) ([]domain.Question, error) {
	if section == "" || topic == "" || difficulty == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultPracticeSetSize
	}
	if limit > maxPracticeSetSize {
		limit = maxPracticeSetSize
	}

	qs, err := s.questions.Sample(ctx, section, topic, difficulty, limit)
	if err != nil {
		s.log.Error().Err(err).Str("section", section).Str("topic", topic).Msg("practice sample failed")
		return nil, err
	}
	return qs, nil
}
