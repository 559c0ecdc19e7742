package queue

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

type recordingActivityService struct {
	mu     sync.Mutex
	events []domain.ActivityEvent
}

func (s *recordingActivityService) Process(_ context.Context, event domain.ActivityEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func (s *recordingActivityService) byUser(userID string) []domain.ActivityEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.ActivityEvent
	for _, e := range s.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

func TestDispatcher_StopDrainsBufferedEvents(t *testing.T) {
	svc := &recordingActivityService{}
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(context.Background())

	const total = 100
	for i := 0; i < total; i++ {
		d.Enqueue(domain.ActivityEvent{UserID: "user_" + string(rune('a'+i%7)), Kind: "quiz_submission"})
	}
	d.Stop()

	svc.mu.Lock()
	processed := len(svc.events)
	svc.mu.Unlock()
	if processed != total {
		t.Fatalf("expected every enqueued event processed, got %d of %d", processed, total)
	}
}

func TestDispatcher_PerUserOrdering(t *testing.T) {
	svc := &recordingActivityService{}
	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 50; i++ {
		d.Enqueue(domain.ActivityEvent{UserID: "user_1", Score: float64(i)})
		d.Enqueue(domain.ActivityEvent{UserID: "user_2", Score: float64(i)})
	}
	d.Stop()

	for _, user := range []string{"user_1", "user_2"} {
		events := svc.byUser(user)
		if len(events) != 50 {
			t.Fatalf("%s: expected 50 events, got %d", user, len(events))
		}
		for i, e := range events {
			if e.Score != float64(i) {
				t.Fatalf("%s: events out of order at %d: %v", user, i, e.Score)
			}
		}
	}
}
