package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/crackit360/practice-platform/internal/core/domain"
	"github.com/crackit360/practice-platform/internal/core/ports"
)

const defaultResultsLimit = 50

// ActivityEnqueuer hands audit events to the async dispatcher.
type ActivityEnqueuer interface {
	Enqueue(event domain.ActivityEvent)
}

// SubmissionRecorder reports grading telemetry. The transport layer
// supplies a Prometheus-backed implementation; the service stays
// ignorant of the metrics backend.
type SubmissionRecorder interface {
	ObserveGrading(seconds float64)
	CountSubmission(track string)
}

// QuizService grades daily quizzes, persists submissions and emits
// activity events for the async audit trail.
type QuizService struct {
	questions ports.QuestionRepository
	quizzes   ports.QuizRepository
	activity  ActivityEnqueuer
	recorder  SubmissionRecorder
	log       zerolog.Logger
}

func NewQuizService(questions ports.QuestionRepository, quizzes ports.QuizRepository, activity ActivityEnqueuer, recorder SubmissionRecorder, log zerolog.Logger) *QuizService {
	return &QuizService{questions: questions, quizzes: quizzes, activity: activity, recorder: recorder, log: log}
}

func (s *QuizService) Submit(ctx context.Context, in ports.QuizSubmissionInput) (*domain.QuizSubmission, error) {
	if in.UserID == "" || in.Track == "" {
		return nil, domain.ErrInvalidInput
	}

	start := time.Now()
	graded, err := grade(ctx, s.questions, in.QuestionIDs, in.Answers)
	if err != nil {
		return nil, err
	}
	if s.recorder != nil {
		s.recorder.ObserveGrading(time.Since(start).Seconds())
	}

	submission := &domain.QuizSubmission{
		UserID:          in.UserID,
		UserName:        in.UserName,
		Track:           in.Track,
		QuestionIDs:     in.QuestionIDs,
		SelectedAnswers: in.Answers,
		CorrectAnswers:  graded.correct,
		Score:           graded.score,
		Accuracy:        graded.accuracy,
		TotalQuestions:  graded.total,
		TimeTaken:       in.TimeTaken,
		Date:            time.Now().UTC(),
	}

	saved, err := s.quizzes.Save(ctx, submission)
	if err != nil {
		s.log.Error().Err(err).Str("user_id", in.UserID).Msg("failed to save quiz submission")
		return nil, err
	}

	if s.recorder != nil {
		s.recorder.CountSubmission(in.Track)
	}

	if s.activity != nil {
		s.activity.Enqueue(domain.ActivityEvent{
			UserID:    saved.UserID,
			Kind:      "quiz_submission",
			Track:     saved.Track,
			Score:     saved.Score,
			Timestamp: saved.Date,
		})
	}

	s.log.Info().
		Str("user_id", saved.UserID).
		Str("track", saved.Track).
		Float64("accuracy", saved.Accuracy).
		Msg("quiz submitted")

	return saved, nil
}

func (s *QuizService) Results(ctx context.Context, userID string, limit int) ([]domain.QuizSubmission, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > defaultResultsLimit {
		limit = defaultResultsLimit
	}
	return s.quizzes.FindByUser(ctx, userID, limit)
}
