package service

import (
	"context"

	"github.com/crackit360/practice-platform/internal/core/domain"
	"github.com/crackit360/practice-platform/internal/core/ports"
)

// Unanswered marks a skipped question in an answer slice.
const Unanswered = -1

type gradedSet struct {
	score    float64
	accuracy float64
	total    int
	// correct holds the correct option index per question, in order.
	correct []int
}

// grade scores answer indexes against the question bank. The answers slice
// must align one-to-one with questionIDs.
func grade(ctx context.Context, repo ports.QuestionRepository, questionIDs []string, answers []int) (*gradedSet, error) {
	if len(questionIDs) == 0 || len(questionIDs) != len(answers) {
		return nil, domain.ErrInvalidInput
	}

	bank, err := repo.FindByIDs(ctx, questionIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Question, len(bank))
	for _, q := range bank {
		byID[q.ID] = q
	}

	result := &gradedSet{
		total:   len(questionIDs),
		correct: make([]int, len(questionIDs)),
	}

	hits := 0
	for i, id := range questionIDs {
		q, ok := byID[id]
		if !ok {
			return nil, domain.ErrQuestionNotFound
		}
		result.correct[i] = q.CorrectAnswer
		if answers[i] != Unanswered && answers[i] == q.CorrectAnswer {
			hits++
		}
	}

	result.score = float64(hits)
	result.accuracy = float64(hits) / float64(result.total) * 100
	return result, nil
}
