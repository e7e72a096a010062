package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"quizdesk/internal/model"
	"quizdesk/internal/service"
)

func TestPublishIsIdempotent(t *testing.T) {
	e := newTestEnv()
	quiz := createMixedQuiz(t, e)
	result := submitMixedAttempt(t, e, quiz, learner("u1", "Alice"))
	ctx := context.Background()

	first, err := e.pubSvc.Publish(ctx, result.ID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !first.IsPublished {
		t.Fatalf("result must be published")
	}

	second, err := e.pubSvc.Publish(ctx, result.ID)
	if err != nil {
		t.Fatalf("second publish must be a no-op success: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("double publish changed state:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestPublishUnknownResult(t *testing.T) {
	e := newTestEnv()

	if _, err := e.pubSvc.Publish(context.Background(), "no-such-result"); !errors.Is(err, service.ErrResultNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPublishAllowsUnevaluatedResult(t *testing.T) {
	e := newTestEnv()
	quiz := createMixedQuiz(t, e)
	result := submitMixedAttempt(t, e, quiz, learner("u1", "Alice"))

	// Publication is independent of evaluation: releasing the auto-scored
	// portion early is allowed.
	published, err := e.pubSvc.Publish(context.Background(), result.ID)
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if published.IsEvaluated {
		t.Fatalf("publishing must not mark the result evaluated")
	}
	if !published.IsPublished {
		t.Fatalf("result must be published")
	}
}

func TestPublishAllSkipsUnevaluated(t *testing.T) {
	e := newTestEnv()
	quiz := createMixedQuiz(t, e)
	ctx := context.Background()

	graded1 := submitMixedAttempt(t, e, quiz, learner("u1", "Alice"))
	graded2 := submitMixedAttempt(t, e, quiz, learner("u2", "Bob"))
	submitMixedAttempt(t, e, quiz, learner("u3", "Cara")) // never evaluated

	awards := []model.Award{{QuestionID: quiz.Questions[2].ID, PointsAwarded: 5}}
	if _, err := e.evalSvc.Evaluate(ctx, graded1.ID, awards, "a1"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if _, err := e.evalSvc.Evaluate(ctx, graded2.ID, awards, "a1"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	count, err := e.pubSvc.PublishAll(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("publish all: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 published, got %d", count)
	}

	// Unevaluated result silently skipped, not an error.
	mine, err := e.attemptSvc.ListMine(ctx, "u3")
	if err != nil {
		t.Fatalf("list mine: %v", err)
	}
	if len(mine) != 0 {
		t.Fatalf("unevaluated result must stay unpublished, got %+v", mine)
	}

	// Re-running finds nothing left to publish.
	count, err = e.pubSvc.PublishAll(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("publish all again: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 on rerun, got %d", count)
	}
}

func TestLeaderboardOrdersByPercentage(t *testing.T) {
	e := newTestEnv()
	quiz := createMCQQuiz(t, e)
	ctx := context.Background()

	submit := func(who *model.Claims, answers []string) {
		t.Helper()
		responses := make([]model.Response, len(answers))
		for i, a := range answers {
			responses[i] = model.Response{QuestionID: quiz.Questions[i].ID, SelectedAnswer: a}
		}
		if _, err := e.attemptSvc.Submit(ctx, quiz.ID, who, responses, 0); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	// All-MCQ attempts publish on submission.
	submit(learner("u1", "Alice"), []string{"list = []", "def", "The length of an object"}) // 3/3
	submit(learner("u2", "Bob"), []string{"list = []", "func", "The type of an object"})    // 1/3
	submit(learner("u3", "Cara"), []string{"list = []", "def", "The type of an object"})    // 2/3

	entries, err := e.pubSvc.Leaderboard(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Name != "Alice" || entries[1].Name != "Cara" || entries[2].Name != "Bob" {
		t.Fatalf("wrong ordering: %+v", entries)
	}
	if entries[0].Rank != 1 || entries[2].Rank != 3 {
		t.Fatalf("ranks must be assigned in order: %+v", entries)
	}
}

func TestLeaderboardFallsBackToStore(t *testing.T) {
	e := newTestEnv()
	quiz := createMCQQuiz(t, e)
	ctx := context.Background()

	if _, err := e.attemptSvc.Submit(ctx, quiz.ID, learner("u1", "Alice"), []model.Response{
		{QuestionID: quiz.Questions[0].ID, SelectedAnswer: "list = []"},
	}, 0); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Simulate a cold cache; the read must warm it from the store.
	if err := e.lb.Clear(ctx, quiz.ID); err != nil {
		t.Fatalf("clear: %v", err)
	}

	entries, err := e.pubSvc.Leaderboard(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Alice" {
		t.Fatalf("expected store fallback to find Alice, got %+v", entries)
	}

	cached, err := e.lb.Top(ctx, quiz.ID, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(cached) != 1 {
		t.Fatalf("fallback read must warm the cache, got %+v", cached)
	}
}
