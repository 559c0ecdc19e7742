package domain

// Question is a single entry in the practice question bank.
// The same collection backs free practice, practice sets and speed tests;
// speed-test questions carry a level instead of a stage.
type Question struct {
	ID            string   `json:"id" bson:"_id,omitempty"`
	Section       string   `json:"section" bson:"section"`
	Stage         string   `json:"stage,omitempty" bson:"stage,omitempty"`
	Topic         string   `json:"topic" bson:"topic"`
	Level         string   `json:"level,omitempty" bson:"level,omitempty"`
	Difficulty    string   `json:"difficulty" bson:"difficulty"`
	Question      string   `json:"question" bson:"question"`
	Options       []string `json:"options" bson:"options"`
	CorrectAnswer int      `json:"-" bson:"correct_answer"`
	Solution      string   `json:"solution,omitempty" bson:"solution,omitempty"`
}
