package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

func TestPracticeService_FreePractice(t *testing.T) {
	repo := newStubQuestionRepo()
	repo.sampled = []domain.Question{{ID: "q1"}, {ID: "q2"}, {ID: "q3"}}
	svc := NewPracticeService(repo, zerolog.Nop())

	qs, err := svc.FreePractice(context.Background(), "quant", "algebra")
	if err != nil {
		t.Fatalf("FreePractice: %v", err)
	}
	if len(qs) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(qs))
	}
	if repo.lastSection != "quant" || repo.lastTopic != "algebra" {
		t.Fatalf("filter not forwarded: section=%q topic=%q", repo.lastSection, repo.lastTopic)
	}
	if repo.lastLimit != maxFreePracticeResults {
		t.Fatalf("expected free-practice cap %d, got %d", maxFreePracticeResults, repo.lastLimit)
	}

	if _, err := svc.FreePractice(context.Background(), "", "algebra"); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for missing section, got %v", err)
	}
}

func TestPracticeService_PracticeSet_Limits(t *testing.T) {
	repo := newStubQuestionRepo()
	svc := NewPracticeService(repo, zerolog.Nop())

	if _, err := svc.PracticeSet(context.Background(), "quant", "algebra", "easy", 0); err != nil {
		t.Fatalf("PracticeSet: %v", err)
	}
	if repo.lastLimit != defaultPracticeSetSize {
		t.Fatalf("expected default size %d, got %d", defaultPracticeSetSize, repo.lastLimit)
	}

	if _, err := svc.PracticeSet(context.Background(), "quant", "algebra", "easy", 500); err != nil {
		t.Fatalf("PracticeSet: %v", err)
	}
	if repo.lastLimit != maxPracticeSetSize {
		t.Fatalf("expected cap %d, got %d", maxPracticeSetSize, repo.lastLimit)
	}
	if repo.lastDifficulty != "easy" {
		t.Fatalf("difficulty not forwarded: %q", repo.lastDifficulty)
	}
}

func TestPracticeService_PracticeSet_Validation(t *testing.T) {
	svc := NewPracticeService(newStubQuestionRepo(), zerolog.Nop())

	if _, err := svc.PracticeSet(context.Background(), "quant", "algebra", "", 10); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for missing difficulty, got %v", err)
	}
}
