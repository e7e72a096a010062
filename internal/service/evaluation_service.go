package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quizdesk/internal/model"
	"quizdesk/internal/repository"
)

// Evaluate retries this many times when losing the optimistic-concurrency race.
const maxEvaluateRetries = 3

// EvaluationService applies admin point awards to free-text answers. Each call
// replaces the manual-grading state wholesale: scores are recomputed from the
// supplied award set, not accumulated across calls.
type EvaluationService struct {
	quizzes     repository.QuizRepo
	results     repository.ResultRepo
	broadcaster Broadcaster
}

// NewEvaluationService creates a new evaluation service
func NewEvaluationService(quizzes repository.QuizRepo, results repository.ResultRepo) *EvaluationService {
	return &EvaluationService{
		quizzes: quizzes,
		results: results,
	}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *EvaluationService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Evaluate grades a result with the given award set and marks it evaluated.
// The write goes through a version-stamped replace so readers never observe
// the manual score without the matching per-question updates.
func (s *EvaluationService) Evaluate(ctx context.Context, resultID string, awards []model.Award, evaluatedBy string) (*model.AttemptResult, error) {
	var lastErr error
	for attempt := 0; attempt < maxEvaluateRetries; attempt++ {
		result, err := s.results.GetByID(ctx, resultID)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, ErrResultNotFound
		}

		quiz, err := s.quizzes.GetByID(ctx, result.QuizID)
		if err != nil {
			return nil, err
		}
		if err := validateAwards(quiz, awards); err != nil {
			return nil, err
		}

		applyAwards(result, awards, evaluatedBy)

		err = s.results.ReplaceVersioned(ctx, result)
		if err == nil {
			if s.broadcaster != nil {
				s.broadcaster.BroadcastToAdmins("result_evaluated", map[string]interface{}{
					"resultId":    result.ID,
					"quizId":      result.QuizID,
					"totalScore":  result.TotalScore,
					"percentage":  result.Percentage,
					"evaluatedBy": evaluatedBy,
				})
			}
			return result, nil
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// validateAwards enforces that every award targets a text question of the
// result's quiz and stays within that question's point value.
func validateAwards(quiz *model.Quiz, awards []model.Award) error {
	for _, award := range awards {
		if award.PointsAwarded < 0 {
			return fmt.Errorf("%w: negative award for question %s", ErrValidation, award.QuestionID)
		}
		if quiz == nil {
			return fmt.Errorf("%w: quiz for result no longer exists", ErrValidation)
		}
		question, ok := quiz.QuestionByID(award.QuestionID)
		if !ok {
			return fmt.Errorf("%w: unknown question %s", ErrValidation, award.QuestionID)
		}
		if question.Type != model.QuestionTypeText {
			return fmt.Errorf("%w: question %s is not manually graded", ErrValidation, award.QuestionID)
		}
		if award.PointsAwarded > question.Points {
			return fmt.Errorf("%w: award %d exceeds %d points for question %s",
				ErrValidation, award.PointsAwarded, question.Points, award.QuestionID)
		}
	}
	return nil
}

func applyAwards(result *model.AttemptResult, awards []model.Award, evaluatedBy string) {
	// Reset the manual-grading state; this call's awards replace any earlier ones.
	for i := range result.DetailedResults {
		entry := &result.DetailedResults[i]
		if entry.QuestionType != model.QuestionTypeText {
			continue
		}
		entry.PointsEarned = 0
		entry.Feedback = ""
		entry.IsEvaluated = false
	}

	now := time.Now()
	manualScore := 0
	evaluations := make([]model.Evaluation, 0, len(awards))
	for _, award := range awards {
		manualScore += award.PointsAwarded
		evaluations = append(evaluations, model.Evaluation{
			Award:       award,
			EvaluatedBy: evaluatedBy,
			EvaluatedAt: now,
		})

		for i := range result.DetailedResults {
			entry := &result.DetailedResults[i]
			if entry.QuestionType == model.QuestionTypeText && entry.QuestionID == award.QuestionID {
				entry.PointsEarned = award.PointsAwarded
				entry.Feedback = award.Feedback
				entry.IsEvaluated = true
			}
		}
	}

	result.ManualScore = manualScore
	result.Evaluations = evaluations
	// Marked evaluated even when some text questions received no award; a later
	// call with a fuller award set replaces this one.
	result.IsEvaluated = true
	result.Recalculate()
}
