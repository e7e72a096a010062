package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"quizdesk/internal/model"
	"quizdesk/internal/repository"
)

// AttemptService scores submitted attempts and serves result views under the
// ownership and publication visibility rules.
type AttemptService struct {
	quizzes     repository.QuizRepo
	results     repository.ResultRepo
	broadcaster Broadcaster
}

// NewAttemptService creates a new attempt service
func NewAttemptService(quizzes repository.QuizRepo, results repository.ResultRepo) *AttemptService {
	return &AttemptService{
		quizzes: quizzes,
		results: results,
	}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *AttemptService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit scores an attempt against the authoritative quiz and persists the
// result. Multiple-choice answers are scored immediately; text answers stay
// unevaluated until an admin grades them, which also keeps the result
// unpublished.
func (s *AttemptService) Submit(ctx context.Context, quizID string, requester *model.Claims, responses []model.Response, timeTaken int) (*model.AttemptResult, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil || !quiz.IsActive {
		return nil, ErrQuizNotFound
	}

	result := &model.AttemptResult{
		ID:               uuid.New().String(),
		QuizID:           quiz.ID,
		QuizTitle:        quiz.Title,
		UserID:           requester.UserID,
		UserName:         requester.Name,
		Responses:        responses,
		MaxPossibleScore: quiz.TotalPoints, // frozen at submission time
		DetailedResults:  make([]model.DetailedResult, 0, len(responses)),
		TimeTaken:        timeTaken,
		CompletedAt:      time.Now(),
		Version:          1,
	}

	for _, response := range responses {
		result.DetailedResults = append(result.DetailedResults, scoreResponse(quiz, response))
	}
	for _, entry := range result.DetailedResults {
		if entry.QuestionType == model.QuestionTypeMultipleChoice {
			result.AutoScore += entry.PointsEarned
		}
	}

	result.IsEvaluated = !quiz.RequiresEvaluation
	result.IsPublished = result.IsEvaluated
	result.Recalculate()

	if err := s.results.Create(ctx, result); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAdmins("attempt_submitted", map[string]interface{}{
			"resultId":           result.ID,
			"quizId":             result.QuizID,
			"quizTitle":          result.QuizTitle,
			"userName":           result.UserName,
			"requiresEvaluation": !result.IsEvaluated,
		})
	}

	return result, nil
}

// scoreResponse grades a single response. Responses referencing unknown
// question ids are kept as explicit zero-score entries rather than dropped.
func scoreResponse(quiz *model.Quiz, response model.Response) model.DetailedResult {
	question, ok := quiz.QuestionByID(response.QuestionID)
	if !ok {
		return model.DetailedResult{
			QuestionID:      response.QuestionID,
			SelectedAnswer:  response.SelectedAnswer,
			FreeText:        response.FreeText,
			IsEvaluated:     true,
			UnknownQuestion: true,
		}
	}

	entry := model.DetailedResult{
		QuestionID:     question.ID,
		QuestionText:   question.Text,
		QuestionType:   question.Type,
		PointsPossible: question.Points,
	}

	switch question.Type {
	case model.QuestionTypeMultipleChoice:
		entry.SelectedAnswer = response.SelectedAnswer
		entry.CorrectAnswer = question.CorrectAnswer
		entry.Explanation = question.Explanation
		entry.IsCorrect = response.SelectedAnswer == question.CorrectAnswer
		entry.IsEvaluated = true
		if entry.IsCorrect {
			entry.PointsEarned = question.Points
		}
	case model.QuestionTypeText:
		entry.FreeText = response.FreeText
		entry.IsEvaluated = false
	}

	return entry
}

// GetResult returns a result to its owner or to an admin.
func (s *AttemptService) GetResult(ctx context.Context, resultID string, requester *model.Claims) (*model.AttemptResult, error) {
	result, err := s.results.GetByID(ctx, resultID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrResultNotFound
	}
	if requester.Role != model.RoleAdmin && result.UserID != requester.UserID {
		return nil, ErrForbidden
	}
	return result, nil
}

// ListMine returns the requester's published results.
func (s *AttemptService) ListMine(ctx context.Context, userID string) ([]*model.AttemptResult, error) {
	return s.results.ListByUser(ctx, userID, true)
}

// ListAll returns every result regardless of publication state.
func (s *AttemptService) ListAll(ctx context.Context) ([]*model.AttemptResult, error) {
	return s.results.ListAll(ctx)
}

// ListPendingEvaluation returns results still waiting on manual grading.
func (s *AttemptService) ListPendingEvaluation(ctx context.Context) ([]*model.AttemptResult, error) {
	return s.results.ListPendingEvaluation(ctx)
}
