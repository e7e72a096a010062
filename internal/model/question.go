package model

// QuestionType defines the type of question
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple_choice" // auto-scored at submission
	QuestionTypeText           QuestionType = "text"            // free text, graded by an admin
)

// Question is an authored question inside a quiz. Immutable once the quiz is created.
type Question struct {
	ID            string       `json:"id" bson:"id"`
	Text          string       `json:"question_text" bson:"question_text"`
	Type          QuestionType `json:"question_type" bson:"question_type"`
	Points        int          `json:"points" bson:"points"`
	Options       []string     `json:"options,omitempty" bson:"options,omitempty"`               // multiple_choice only
	CorrectAnswer string       `json:"correct_answer,omitempty" bson:"correct_answer,omitempty"` // multiple_choice only
	Explanation   string       `json:"explanation,omitempty" bson:"explanation,omitempty"`
}

// SafeQuestion is the learner-facing projection of a Question. It never carries
// the correct answer or the explanation.
type SafeQuestion struct {
	ID      string       `json:"id"`
	Text    string       `json:"question_text"`
	Type    QuestionType `json:"question_type"`
	Points  int          `json:"points"`
	Options []string     `json:"options,omitempty"`
}

// Sanitize strips the answer key from a question. Every question handed out for
// quiz taking must pass through here.
func (q Question) Sanitize() SafeQuestion {
	safe := SafeQuestion{
		ID:     q.ID,
		Text:   q.Text,
		Type:   q.Type,
		Points: q.Points,
	}
	if q.Type == QuestionTypeMultipleChoice {
		safe.Options = append([]string(nil), q.Options...)
	}
	return safe
}
