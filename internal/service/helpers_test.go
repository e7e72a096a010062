package service_test

import (
	"context"
	"testing"

	"quizdesk/internal/model"
	"quizdesk/internal/service"
)

type env struct {
	quizzes    *fakeQuizRepo
	results    *fakeResultRepo
	lb         *fakeLeaderboard
	quizSvc    *service.QuizService
	attemptSvc *service.AttemptService
	evalSvc    *service.EvaluationService
	pubSvc     *service.PublicationService
}

func newTestEnv() *env {
	quizzes := newFakeQuizRepo()
	results := newFakeResultRepo()
	lb := newFakeLeaderboard()
	return &env{
		quizzes:    quizzes,
		results:    results,
		lb:         lb,
		quizSvc:    service.NewQuizService(quizzes),
		attemptSvc: service.NewAttemptService(quizzes, results),
		evalSvc:    service.NewEvaluationService(quizzes, results),
		pubSvc:     service.NewPublicationService(results, lb),
	}
}

func learner(id, name string) *model.Claims {
	return &model.Claims{UserID: id, Name: name, Role: model.RoleLearner}
}

func admin(id string) *model.Claims {
	return &model.Claims{UserID: id, Name: "Admin", Role: model.RoleAdmin}
}

// createMCQQuiz builds a 3-question multiple-choice quiz worth 3 points.
func createMCQQuiz(t *testing.T, e *env) *model.Quiz {
	t.Helper()
	quiz, err := e.quizSvc.Create(context.Background(), service.QuizDefinition{
		Title:   "Introduction to Python Programming",
		Subject: "Computer Science",
		Questions: []service.QuestionDefinition{
			{
				Text:          "What is the correct way to create a list in Python?",
				Type:          model.QuestionTypeMultipleChoice,
				Options:       []string{"list = []", "list = {}", "list = ()", "list = <>"},
				CorrectAnswer: "list = []",
				Explanation:   "Square brackets [] are used to create lists in Python",
			},
			{
				Text:          "Which keyword is used to define a function in Python?",
				Type:          model.QuestionTypeMultipleChoice,
				Options:       []string{"function", "def", "func", "define"},
				CorrectAnswer: "def",
			},
			{
				Text:          "What does the len() function return?",
				Type:          model.QuestionTypeMultipleChoice,
				Options:       []string{"The length of an object", "The type of an object"},
				CorrectAnswer: "The length of an object",
			},
		},
	}, "admin-1")
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz
}

// createMixedQuiz builds 2 MCQ questions at 2 points each plus 2 text
// questions at 5 and 6 points, 15 points total.
func createMixedQuiz(t *testing.T, e *env) *model.Quiz {
	t.Helper()
	quiz, err := e.quizSvc.Create(context.Background(), service.QuizDefinition{
		Title:   "Databases Midterm",
		Subject: "Computer Science",
		Questions: []service.QuestionDefinition{
			{
				Text:          "Which statement retrieves rows from a table?",
				Type:          model.QuestionTypeMultipleChoice,
				Points:        2,
				Options:       []string{"SELECT", "EXTRACT"},
				CorrectAnswer: "SELECT",
			},
			{
				Text:          "Which clause filters rows?",
				Type:          model.QuestionTypeMultipleChoice,
				Points:        2,
				Options:       []string{"WHERE", "FILTER"},
				CorrectAnswer: "WHERE",
			},
			{
				Text:   "Explain the purpose of an index.",
				Type:   model.QuestionTypeText,
				Points: 5,
			},
			{
				Text:   "Describe how a transaction guarantees atomicity.",
				Type:   model.QuestionTypeText,
				Points: 6,
			},
		},
	}, "admin-1")
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz
}

// submitMixedAttempt answers both MCQ questions correctly and both text
// questions with free text, matching the mixed quiz above.
func submitMixedAttempt(t *testing.T, e *env, quiz *model.Quiz, who *model.Claims) *model.AttemptResult {
	t.Helper()
	result, err := e.attemptSvc.Submit(context.Background(), quiz.ID, who, []model.Response{
		{QuestionID: quiz.Questions[0].ID, SelectedAnswer: "SELECT"},
		{QuestionID: quiz.Questions[1].ID, SelectedAnswer: "WHERE"},
		{QuestionID: quiz.Questions[2].ID, FreeText: "Indexes speed up lookups."},
		{QuestionID: quiz.Questions[3].ID, FreeText: "All writes commit or none do."},
	}, 300)
	if err != nil {
		t.Fatalf("submit attempt: %v", err)
	}
	return result
}
