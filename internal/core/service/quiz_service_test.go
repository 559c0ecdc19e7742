package service

import (
	"context"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/crackit360/practice-platform/internal/core/domain"
	"github.com/crackit360/practice-platform/internal/core/ports"
)

type stubQuestionRepo struct {
	questions map[string]domain.Question
	sampled   []domain.Question

	lastSection    string
	lastTopic      string
	lastDifficulty string
	lastLevel      string
	lastLimit      int
}

func newStubQuestionRepo(correct ...int) *stubQuestionRepo {
	r := &stubQuestionRepo{questions: make(map[string]domain.Question)}
	for i, c := range correct {
		id := "q" + strconv.Itoa(i+1)
		r.questions[id] = domain.Question{ID: id, CorrectAnswer: c}
	}
	return r
}

func (r *stubQuestionRepo) FindBySectionTopic(_ context.Context, section, topic string, limit int) ([]domain.Question, error) {
	r.lastSection, r.lastTopic, r.lastLimit = section, topic, limit
	return r.sampled, nil
}

func (r *stubQuestionRepo) Sample(_ context.Context, section, topic, difficulty string, limit int) ([]domain.Question, error) {
	r.lastSection, r.lastTopic, r.lastDifficulty, r.lastLimit = section, topic, difficulty, limit
	return r.sampled, nil
}

func (r *stubQuestionRepo) SampleSpeedTest(_ context.Context, topic, level string, limit int) ([]domain.Question, error) {
	r.lastTopic, r.lastLevel, r.lastLimit = topic, level, limit
	return r.sampled, nil
}

func (r *stubQuestionRepo) FindByIDs(_ context.Context, ids []string) ([]domain.Question, error) {
	var out []domain.Question
	for _, id := range ids {
		if q, ok := r.questions[id]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

type stubQuizRepo struct {
	saved []*domain.QuizSubmission
}

func (r *stubQuizRepo) Save(_ context.Context, s *domain.QuizSubmission) (*domain.QuizSubmission, error) {
	copy := *s
	copy.ID = "sub_" + strconv.Itoa(len(r.saved)+1)
	r.saved = append(r.saved, &copy)
	return &copy, nil
}

func (r *stubQuizRepo) FindByUser(_ context.Context, userID string, limit int) ([]domain.QuizSubmission, error) {
	var out []domain.QuizSubmission
	for i := len(r.saved) - 1; i >= 0 && len(out) < limit; i-- {
		if r.saved[i].UserID == userID {
			out = append(out, *r.saved[i])
		}
	}
	return out, nil
}

type recordingEnqueuer struct {
	events []domain.ActivityEvent
}

func (e *recordingEnqueuer) Enqueue(event domain.ActivityEvent) {
	e.events = append(e.events, event)
}

type stubRecorder struct {
	observations int
	tracks       []string
}

func (r *stubRecorder) ObserveGrading(float64) { r.observations++ }

func (r *stubRecorder) CountSubmission(track string) { r.tracks = append(r.tracks, track) }

func TestQuizService_Submit_Grading(t *testing.T) {
	questions := newStubQuestionRepo(0, 2, 1, 3)
	quizzes := &stubQuizRepo{}
	activity := &recordingEnqueuer{}
	svc := NewQuizService(questions, quizzes, activity, nil, zerolog.Nop())

	saved, err := svc.Submit(context.Background(), ports.QuizSubmissionInput{
		UserID:      "user_1",
		UserName:    "Alice",
		Track:       "quant",
		QuestionIDs: []string{"q1", "q2", "q3", "q4"},
		Answers:     []int{0, 2, 0, Unanswered},
		TimeTaken:   120,
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if saved.Score != 2 {
		t.Fatalf("expected score 2, got %v", saved.Score)
	}
	if saved.Accuracy != 50 {
		t.Fatalf("expected accuracy 50, got %v", saved.Accuracy)
	}
	if saved.TotalQuestions != 4 {
		t.Fatalf("expected 4 questions, got %d", saved.TotalQuestions)
	}
	wantCorrect := []int{0, 2, 1, 3}
	for i, c := range saved.CorrectAnswers {
		if c != wantCorrect[i] {
			t.Fatalf("correct answers mismatch at %d: got %v", i, saved.CorrectAnswers)
		}
	}
	if saved.ID == "" {
		t.Fatalf("expected persisted submission id")
	}
}

func TestQuizService_Submit_EmitsActivityEvent(t *testing.T) {
	questions := newStubQuestionRepo(1)
	activity := &recordingEnqueuer{}
	svc := NewQuizService(questions, &stubQuizRepo{}, activity, nil, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), ports.QuizSubmissionInput{
		UserID:      "user_7",
		Track:       "verbal",
		QuestionIDs: []string{"q1"},
		Answers:     []int{1},
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(activity.events) != 1 {
		t.Fatalf("expected 1 activity event, got %d", len(activity.events))
	}
	event := activity.events[0]
	if event.UserID != "user_7" || event.Kind != "quiz_submission" || event.Track != "verbal" || event.Score != 1 {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestQuizService_Submit_ReportsTelemetry(t *testing.T) {
	recorder := &stubRecorder{}
	svc := NewQuizService(newStubQuestionRepo(1), &stubQuizRepo{}, nil, recorder, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), ports.QuizSubmissionInput{
		UserID:      "user_1",
		Track:       "verbal",
		QuestionIDs: []string{"q1"},
		Answers:     []int{1},
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if recorder.observations != 1 {
		t.Fatalf("expected 1 grading observation, got %d", recorder.observations)
	}
	if len(recorder.tracks) != 1 || recorder.tracks[0] != "verbal" {
		t.Fatalf("unexpected submission counts: %v", recorder.tracks)
	}
}

func TestQuizService_Submit_Validation(t *testing.T) {
	svc := NewQuizService(newStubQuestionRepo(0), &stubQuizRepo{}, nil, nil, zerolog.Nop())

	cases := []ports.QuizSubmissionInput{
		{Track: "quant", QuestionIDs: []string{"q1"}, Answers: []int{0}},                  // missing user
		{UserID: "u", QuestionIDs: []string{"q1"}, Answers: []int{0}},                     // missing track
		{UserID: "u", Track: "quant"},                                                     // empty set
		{UserID: "u", Track: "quant", QuestionIDs: []string{"q1"}, Answers: []int{0, 1}}, // misaligned
	}
	for i, in := range cases {
		if _, err := svc.Submit(context.Background(), in); err != domain.ErrInvalidInput {
			t.Fatalf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestQuizService_Submit_UnknownQuestion(t *testing.T) {
	svc := NewQuizService(newStubQuestionRepo(0), &stubQuizRepo{}, nil, nil, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), ports.QuizSubmissionInput{
		UserID:      "u",
		Track:       "quant",
		QuestionIDs: []string{"q1", "missing"},
		Answers:     []int{0, 0},
	}); err != domain.ErrQuestionNotFound {
		t.Fatalf("expected ErrQuestionNotFound, got %v", err)
	}
}

func TestQuizService_Results(t *testing.T) {
	quizzes := &stubQuizRepo{}
	questions := newStubQuestionRepo(0)
	svc := NewQuizService(questions, quizzes, nil, nil, zerolog.Nop())

	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(context.Background(), ports.QuizSubmissionInput{
			UserID:      "user_1",
			Track:       "quant",
			QuestionIDs: []string{"q1"},
			Answers:     []int{0},
		}); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	results, err := svc.Results(context.Background(), "user_1", 2)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected limit to cap results, got %d", len(results))
	}

	if _, err := svc.Results(context.Background(), "", 10); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for missing user, got %v", err)
	}
}
