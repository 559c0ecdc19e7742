package ports

import (
	"context"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

// ActivityService processes activity events dequeued by the dispatcher.
type ActivityService interface {
	Process(ctx context.Context, event domain.ActivityEvent) error
}

// ActivityRepository appends to the activity audit collection.
type ActivityRepository interface {
	Insert(ctx context.Context, event *domain.ActivityEvent) error
}

// ProfileRepository persists the minimal connectivity-check profile records.
type ProfileRepository interface {
	Insert(ctx context.Context, name string, age int) (string, error)
}
