package domain

import "time"

// QuizSubmission is the persisted record of a graded daily quiz.
type QuizSubmission struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	UserID          string    `json:"user_id" bson:"user_id"`
	UserName        string    `json:"user_name" bson:"user_name"`
	Track           string    `json:"track" bson:"track"`
	QuestionIDs     []string  `json:"question_ids" bson:"question_ids"`
	SelectedAnswers []int     `json:"selected_answers" bson:"selected_answers"`
	CorrectAnswers  []int     `json:"correct_answers" bson:"correct_answers"`
	Score           float64   `json:"score" bson:"score"`
	Accuracy        float64   `json:"accuracy" bson:"accuracy"`
	TotalQuestions  int       `json:"total_questions" bson:"total_questions"`
	TimeTaken       int       `json:"time_taken" bson:"time_taken"`
	Date            time.Time `json:"date" bson:"date"`
}

// ActivityEvent is the async audit record emitted after each submission.
type ActivityEvent struct {
	UserID    string    `bson:"user_id"`
	Kind      string    `bson:"kind"`
	Track     string    `bson:"track,omitempty"`
	Score     float64   `bson:"score,omitempty"`
	Timestamp time.Time `bson:"timestamp"`
}
