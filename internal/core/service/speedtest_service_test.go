package service

import (
	"context"
	"testing"

	"github.com/crackit360/practice-platform/internal/core/domain"
	"github.com/crackit360/practice-platform/internal/core/ports"
)

func TestSpeedTestService_TimeLimit(t *testing.T) {
	svc := NewSpeedTestService(newStubQuestionRepo())

	cases := []struct {
		level     string
		questions int
		want      int
	}{
		{"easy", 10, 600},
		{"intermediate", 10, 450},
		{"hard", 10, 300},
		{"HARD", 4, 120},     // case-insensitive
		{"unknown", 10, 450}, // falls back to intermediate
		{"easy", 0, 0},
		{"easy", -5, 0},
	}
	for _, tc := range cases {
		if got := svc.TimeLimit(tc.level, tc.questions); got != tc.want {
			t.Fatalf("TimeLimit(%q, %d) = %d, want %d", tc.level, tc.questions, got, tc.want)
		}
	}
}

func TestSpeedTestService_Questions(t *testing.T) {
	repo := newStubQuestionRepo()
	repo.sampled = []domain.Question{{ID: "q1"}, {ID: "q2"}}
	svc := NewSpeedTestService(repo)

	qs, err := svc.Questions(context.Background(), "algebra", "hard", 0)
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if repo.lastLimit != defaultSpeedTestSize {
		t.Fatalf("expected default limit %d, got %d", defaultSpeedTestSize, repo.lastLimit)
	}
	if repo.lastTopic != "algebra" || repo.lastLevel != "hard" {
		t.Fatalf("filter not forwarded: topic=%q level=%q", repo.lastTopic, repo.lastLevel)
	}

	if _, err := svc.Questions(context.Background(), "", "hard", 5); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for missing topic, got %v", err)
	}
}

func TestSpeedTestService_Submit(t *testing.T) {
	svc := NewSpeedTestService(newStubQuestionRepo(1, 0, 3))

	result, err := svc.Submit(context.Background(), ports.SpeedTestSubmission{
		UserID:      "user_1",
		Topic:       "algebra",
		Level:       "easy",
		QuestionIDs: []string{"q1", "q2", "q3"},
		Answers:     []int{1, Unanswered, 2},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if result.Score != 1 {
		t.Fatalf("expected score 1, got %v", result.Score)
	}
	if result.TotalQuestions != 3 {
		t.Fatalf("expected 3 questions, got %d", result.TotalQuestions)
	}
	want := []int{1, 0, 3}
	for i, c := range result.CorrectAnswers {
		if c != want[i] {
			t.Fatalf("correct answers mismatch: %v", result.CorrectAnswers)
		}
	}
}

func TestSpeedTestService_Submit_Misaligned(t *testing.T) {
	svc := NewSpeedTestService(newStubQuestionRepo(0))

	if _, err := svc.Submit(context.Background(), ports.SpeedTestSubmission{
		QuestionIDs: []string{"q1"},
		Answers:     []int{0, 1},
	}); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
