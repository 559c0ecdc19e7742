package ports

import (
	"context"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

// PracticeService serves the free-practice and practice-set modes.
type PracticeService interface {
	FreePractice(ctx context.Context, section, topic string) ([]domain.Question, error)
	PracticeSet(ctx context.Context, section, topic, difficulty string, limit int) ([]domain.Question, error)
}
