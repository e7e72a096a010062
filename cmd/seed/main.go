package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizdesk/internal/config"
	"quizdesk/internal/model"
	"quizdesk/internal/repository"
	"quizdesk/internal/service"
)

// Seeds a demo admin account and a sample quiz for local development.
func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)

	userRepo := repository.NewUserRepo(db)
	quizRepo := repository.NewQuizRepo(db)

	authSvc := service.NewAuthService(userRepo, []byte(cfg.JWTSecret))
	quizSvc := service.NewQuizService(quizRepo)

	admin, err := authSvc.Register(ctx, model.RegisterRequest{
		Email:    "admin@quizdesk.local",
		Password: "admin123",
		FullName: "Demo Admin",
		Role:     model.RoleAdmin,
	})
	if err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	quiz, err := quizSvc.Create(ctx, service.QuizDefinition{
		Title:       "Introduction to Python Programming",
		Subject:     "Computer Science",
		Description: "Basic concepts and syntax of Python programming language",
		TimeLimit:   30,
		Questions: []service.QuestionDefinition{
			{
				Text:          "What is the correct way to create a list in Python?",
				Type:          model.QuestionTypeMultipleChoice,
				Points:        1,
				Options:       []string{"list = []", "list = {}", "list = ()", "list = <>"},
				CorrectAnswer: "list = []",
				Explanation:   "Square brackets [] are used to create lists in Python",
			},
			{
				Text:          "Which keyword is used to define a function in Python?",
				Type:          model.QuestionTypeMultipleChoice,
				Points:        1,
				Options:       []string{"function", "def", "func", "define"},
				CorrectAnswer: "def",
				Explanation:   "The 'def' keyword is used to define functions in Python",
			},
			{
				Text:   "Explain the difference between a list and a tuple.",
				Type:   model.QuestionTypeText,
				Points: 5,
			},
		},
	}, admin.ID)
	if err != nil {
		log.Fatalf("Failed to seed quiz: %v", err)
	}

	fmt.Printf("Seeded admin %s and quiz %s (%d questions, %d points)\n",
		admin.Email, quiz.ID, quiz.TotalQuestions, quiz.TotalPoints)
}
