package model

import "time"

// Quiz is an authored quiz. Immutable after creation except for IsActive (soft delete).
type Quiz struct {
	ID                 string     `json:"id" bson:"_id,omitempty"`
	Title              string     `json:"title" bson:"title"`
	Subject            string     `json:"subject" bson:"subject"`
	Description        string     `json:"description,omitempty" bson:"description,omitempty"`
	Questions          []Question `json:"questions" bson:"questions"`
	TimeLimit          int        `json:"time_limit,omitempty" bson:"time_limit,omitempty"` // minutes, 0 = unlimited
	TotalQuestions     int        `json:"total_questions" bson:"total_questions"`
	TotalPoints        int        `json:"total_points" bson:"total_points"`
	RequiresEvaluation bool       `json:"requires_evaluation" bson:"requires_evaluation"`
	IsActive           bool       `json:"is_active" bson:"is_active"`
	CreatedBy          string     `json:"created_by" bson:"created_by"`
	CreatedAt          time.Time  `json:"created_at" bson:"created_at"`
}

// QuizSummary is the listing projection, without questions.
type QuizSummary struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Subject            string    `json:"subject"`
	Description        string    `json:"description,omitempty"`
	TotalQuestions     int       `json:"total_questions"`
	TotalPoints        int       `json:"total_points"`
	TimeLimit          int       `json:"time_limit,omitempty"`
	RequiresEvaluation bool      `json:"requires_evaluation"`
	CreatedAt          time.Time `json:"created_at"`
}

// SafeQuiz is the quiz-taking projection with all answer keys stripped.
type SafeQuiz struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Subject        string         `json:"subject"`
	Description    string         `json:"description,omitempty"`
	Questions      []SafeQuestion `json:"questions"`
	TimeLimit      int            `json:"time_limit,omitempty"`
	TotalQuestions int            `json:"total_questions"`
	TotalPoints    int            `json:"total_points"`
}

// Summary returns the listing projection of the quiz.
func (q *Quiz) Summary() QuizSummary {
	return QuizSummary{
		ID:                 q.ID,
		Title:              q.Title,
		Subject:            q.Subject,
		Description:        q.Description,
		TotalQuestions:     q.TotalQuestions,
		TotalPoints:        q.TotalPoints,
		TimeLimit:          q.TimeLimit,
		RequiresEvaluation: q.RequiresEvaluation,
		CreatedAt:          q.CreatedAt,
	}
}

// Sanitized projects the quiz for taking, passing every question through Sanitize.
func (q *Quiz) Sanitized() SafeQuiz {
	safe := SafeQuiz{
		ID:             q.ID,
		Title:          q.Title,
		Subject:        q.Subject,
		Description:    q.Description,
		TimeLimit:      q.TimeLimit,
		TotalQuestions: q.TotalQuestions,
		TotalPoints:    q.TotalPoints,
		Questions:      make([]SafeQuestion, 0, len(q.Questions)),
	}
	for _, question := range q.Questions {
		safe.Questions = append(safe.Questions, question.Sanitize())
	}
	return safe
}

// QuestionByID looks up a question in the quiz. The second return value reports
// whether the id is known, so callers handle malformed submissions explicitly.
func (q *Quiz) QuestionByID(id string) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}
