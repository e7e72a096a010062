package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"quizdesk/internal/model"
	"quizdesk/internal/repository"
)

// QuestionDefinition is the authoring input for one question.
type QuestionDefinition struct {
	Text          string             `json:"question_text"`
	Type          model.QuestionType `json:"question_type"`
	Points        int                `json:"points,omitempty"` // defaults to 1
	Options       []string           `json:"options,omitempty"`
	CorrectAnswer string             `json:"correct_answer,omitempty"`
	Explanation   string             `json:"explanation,omitempty"`
}

// QuizDefinition is the authoring input for a quiz.
type QuizDefinition struct {
	Title       string               `json:"title"`
	Subject     string               `json:"subject"`
	Description string               `json:"description,omitempty"`
	TimeLimit   int                  `json:"time_limit,omitempty"`
	Questions   []QuestionDefinition `json:"questions"`
}

// QuizService owns the quiz catalog: creation, listing and the sanitized
// quiz-taking projection.
type QuizService struct {
	quizzes repository.QuizRepo
}

// NewQuizService creates a new quiz service
func NewQuizService(quizzes repository.QuizRepo) *QuizService {
	return &QuizService{
		quizzes: quizzes,
	}
}

// Create validates a quiz definition, derives the stored totals and persists
// the quiz atomically as a single document.
func (s *QuizService) Create(ctx context.Context, def QuizDefinition, createdBy string) (*model.Quiz, error) {
	if strings.TrimSpace(def.Title) == "" {
		return nil, fmt.Errorf("%w: title required", ErrValidation)
	}
	if len(def.Questions) == 0 {
		return nil, fmt.Errorf("%w: at least one question required", ErrValidation)
	}

	quiz := &model.Quiz{
		ID:          uuid.New().String(),
		Title:       strings.TrimSpace(def.Title),
		Subject:     strings.TrimSpace(def.Subject),
		Description: strings.TrimSpace(def.Description),
		TimeLimit:   def.TimeLimit,
		Questions:   make([]model.Question, 0, len(def.Questions)),
		IsActive:    true,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}

	for i, qd := range def.Questions {
		question, err := buildQuestion(i, qd)
		if err != nil {
			return nil, err
		}
		quiz.Questions = append(quiz.Questions, question)
		quiz.TotalPoints += question.Points
		if question.Type == model.QuestionTypeText {
			quiz.RequiresEvaluation = true
		}
	}
	quiz.TotalQuestions = len(quiz.Questions)

	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func buildQuestion(index int, def QuestionDefinition) (model.Question, error) {
	if strings.TrimSpace(def.Text) == "" {
		return model.Question{}, fmt.Errorf("%w: question %d has empty text", ErrValidation, index+1)
	}

	points := def.Points
	if points == 0 {
		points = 1
	}
	if points < 1 {
		return model.Question{}, fmt.Errorf("%w: question %d has invalid point value %d", ErrValidation, index+1, def.Points)
	}

	question := model.Question{
		ID:          uuid.New().String(),
		Text:        strings.TrimSpace(def.Text),
		Type:        def.Type,
		Points:      points,
		Explanation: def.Explanation,
	}

	switch def.Type {
	case model.QuestionTypeMultipleChoice:
		if len(def.Options) < 2 {
			return model.Question{}, fmt.Errorf("%w: question %d needs at least 2 options", ErrValidation, index+1)
		}
		if !containsOption(def.Options, def.CorrectAnswer) {
			return model.Question{}, fmt.Errorf("%w: question %d correct answer must be one of its options", ErrValidation, index+1)
		}
		question.Options = append([]string(nil), def.Options...)
		question.CorrectAnswer = def.CorrectAnswer
	case model.QuestionTypeText:
		// no answer key
	default:
		return model.Question{}, fmt.Errorf("%w: question %d has unknown type %q", ErrValidation, index+1, def.Type)
	}

	return question, nil
}

func containsOption(options []string, answer string) bool {
	for _, option := range options {
		if option == answer {
			return true
		}
	}
	return false
}

// ListActive returns summaries of all active quizzes.
func (s *QuizService) ListActive(ctx context.Context) ([]model.QuizSummary, error) {
	quizzes, err := s.quizzes.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.QuizSummary, 0, len(quizzes))
	for _, quiz := range quizzes {
		summaries = append(summaries, quiz.Summary())
	}
	return summaries, nil
}

// GetForTaking returns the sanitized projection of an active quiz.
func (s *QuizService) GetForTaking(ctx context.Context, id string) (*model.SafeQuiz, error) {
	quiz, err := s.quizzes.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quiz == nil || !quiz.IsActive {
		return nil, ErrQuizNotFound
	}

	safe := quiz.Sanitized()
	return &safe, nil
}

// Deactivate soft-deletes a quiz.
func (s *QuizService) Deactivate(ctx context.Context, id string) error {
	matched, err := s.quizzes.Deactivate(ctx, id)
	if err != nil {
		return err
	}
	if !matched {
		return ErrQuizNotFound
	}
	return nil
}
