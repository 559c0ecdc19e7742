package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/crackit360/practice-platform/internal/core/domain"
	"github.com/crackit360/practice-platform/internal/core/ports"
)

type activityService struct {
	repo ports.ActivityRepository
	log  zerolog.Logger
}

// NewActivityService returns the ActivityService consumed by the dispatcher
// workers; it appends each event to the audit collection.
func NewActivityService(repo ports.ActivityRepository, log zerolog.Logger) ports.ActivityService {
	return &activityService{repo: repo, log: log}
}

func (s *activityService) Process(ctx context.Context, event domain.ActivityEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("process activity: %w", err)
	}
	s.log.Debug().Str("user_id", event.UserID).Str("kind", event.Kind).Msg("activity recorded")
	return nil
}
