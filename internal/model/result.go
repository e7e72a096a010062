package model

import (
	"math"
	"time"
)

// Response is a learner's answer to one question. Exactly one of SelectedAnswer
// (multiple_choice) or FreeText (text) is meaningful.
type Response struct {
	QuestionID     string `json:"question_id" bson:"question_id"`
	SelectedAnswer string `json:"selected_answer,omitempty" bson:"selected_answer,omitempty"`
	FreeText       string `json:"free_text,omitempty" bson:"free_text,omitempty"`
}

// DetailedResult is the per-response breakdown stored on an attempt result.
// Only the result owner and admins ever see it, so it may carry the correct
// answer and the explanation.
type DetailedResult struct {
	QuestionID      string       `json:"question_id" bson:"question_id"`
	QuestionText    string       `json:"question_text,omitempty" bson:"question_text,omitempty"`
	QuestionType    QuestionType `json:"question_type,omitempty" bson:"question_type,omitempty"`
	SelectedAnswer  string       `json:"selected_answer,omitempty" bson:"selected_answer,omitempty"`
	FreeText        string       `json:"free_text,omitempty" bson:"free_text,omitempty"`
	CorrectAnswer   string       `json:"correct_answer,omitempty" bson:"correct_answer,omitempty"`
	Explanation     string       `json:"explanation,omitempty" bson:"explanation,omitempty"`
	IsCorrect       bool         `json:"is_correct" bson:"is_correct"`
	PointsEarned    int          `json:"points_earned" bson:"points_earned"`
	PointsPossible  int          `json:"points_possible" bson:"points_possible"`
	IsEvaluated     bool         `json:"is_evaluated" bson:"is_evaluated"`
	Feedback        string       `json:"feedback,omitempty" bson:"feedback,omitempty"`
	UnknownQuestion bool         `json:"unknown_question,omitempty" bson:"unknown_question,omitempty"`
}

// Award is an admin's grade for one free-text answer.
type Award struct {
	QuestionID    string `json:"question_id" bson:"question_id"`
	PointsAwarded int    `json:"points_awarded" bson:"points_awarded"`
	Feedback      string `json:"feedback,omitempty" bson:"feedback,omitempty"`
}

// Evaluation records an applied award.
type Evaluation struct {
	Award       `bson:",inline"`
	EvaluatedBy string    `json:"evaluated_by" bson:"evaluated_by"`
	EvaluatedAt time.Time `json:"evaluated_at" bson:"evaluated_at"`
}

// AttemptResult is one learner's submission of a quiz, from automatic scoring
// through manual evaluation to publication.
type AttemptResult struct {
	ID               string           `json:"id" bson:"_id,omitempty"`
	QuizID           string           `json:"quiz_id" bson:"quiz_id"`
	QuizTitle        string           `json:"quiz_title" bson:"quiz_title"`
	UserID           string           `json:"user_id" bson:"user_id"`
	UserName         string           `json:"user_name" bson:"user_name"`
	Responses        []Response       `json:"responses" bson:"responses"`
	AutoScore        int              `json:"auto_score" bson:"auto_score"`
	ManualScore      int              `json:"manual_score" bson:"manual_score"`
	TotalScore       int              `json:"total_score" bson:"total_score"`
	MaxPossibleScore int              `json:"max_possible_score" bson:"max_possible_score"`
	Percentage       float64          `json:"percentage" bson:"percentage"`
	IsEvaluated      bool             `json:"is_evaluated" bson:"is_evaluated"`
	IsPublished      bool             `json:"is_published" bson:"is_published"`
	DetailedResults  []DetailedResult `json:"detailed_results" bson:"detailed_results"`
	Evaluations      []Evaluation     `json:"evaluations,omitempty" bson:"evaluations,omitempty"`
	TimeTaken        int              `json:"time_taken,omitempty" bson:"time_taken,omitempty"` // seconds
	CompletedAt      time.Time        `json:"completed_at" bson:"completed_at"`
	Version          int64            `json:"-" bson:"version"`
}

// Percentage computes total/max as a percentage rounded to 2 decimals.
// A zero maximum yields 0, not a division error.
func Percentage(totalScore, maxPossibleScore int) float64 {
	if maxPossibleScore == 0 {
		return 0
	}
	return math.Round(float64(totalScore)/float64(maxPossibleScore)*10000) / 100
}

// Recalculate restores the derived score fields from auto and manual score.
func (r *AttemptResult) Recalculate() {
	r.TotalScore = r.AutoScore + r.ManualScore
	r.Percentage = Percentage(r.TotalScore, r.MaxPossibleScore)
}
