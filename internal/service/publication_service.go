package service

import (
	"context"
	"log"

	"quizdesk/internal/cache"
	"quizdesk/internal/model"
	"quizdesk/internal/repository"
)

// How many leaderboard rows a single request may return.
const leaderboardLimit = 100

// PublicationService controls learner visibility of results. Publication is
// independent of evaluation: an admin may publish an unevaluated result, and
// publishing never rolls back.
type PublicationService struct {
	results     repository.ResultRepo
	leaderboard cache.LeaderboardCache
	broadcaster Broadcaster
}

// NewPublicationService creates a new publication service
func NewPublicationService(results repository.ResultRepo, leaderboard cache.LeaderboardCache) *PublicationService {
	return &PublicationService{
		results:     results,
		leaderboard: leaderboard,
	}
}

// SetBroadcaster injects the WebSocket broadcaster
func (s *PublicationService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Publish makes one result visible to its owner. Publishing an already
// published result is a no-op success.
func (s *PublicationService) Publish(ctx context.Context, resultID string) (*model.AttemptResult, error) {
	matched, err := s.results.SetPublished(ctx, resultID)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, ErrResultNotFound
	}

	result, err := s.results.GetByID(ctx, resultID)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, ErrResultNotFound
	}

	s.cacheEntry(ctx, result)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToAdmins("result_published", map[string]interface{}{
			"resultId": result.ID,
			"quizId":   result.QuizID,
			"userName": result.UserName,
		})
	}
	return result, nil
}

// PublishAll publishes every evaluated result of a quiz, silently skipping
// unevaluated ones, and reports the number of results affected.
func (s *PublicationService) PublishAll(ctx context.Context, quizID string) (int64, error) {
	count, err := s.results.PublishAllEvaluated(ctx, quizID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		if err := s.warmLeaderboard(ctx, quizID); err != nil {
			log.Printf("leaderboard refresh for quiz %s failed: %v", quizID, err)
		}
	}
	return count, nil
}

// Leaderboard returns the published results of a quiz ordered by percentage
// descending. Reads are served from the cache, falling back to the store and
// warming the cache when empty.
func (s *PublicationService) Leaderboard(ctx context.Context, quizID string) ([]cache.LeaderboardEntry, error) {
	entries, err := s.leaderboard.Top(ctx, quizID, leaderboardLimit)
	if err == nil && len(entries) > 0 {
		return entries, nil
	}
	if err != nil {
		log.Printf("leaderboard cache read for quiz %s failed: %v", quizID, err)
	}

	results, err := s.results.ListPublishedByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	entries = make([]cache.LeaderboardEntry, 0, len(results))
	for i, result := range results {
		entry := leaderboardEntry(result)
		entry.Rank = i + 1
		entries = append(entries, entry)
		s.cacheEntry(ctx, result)
	}
	return entries, nil
}

func (s *PublicationService) warmLeaderboard(ctx context.Context, quizID string) error {
	results, err := s.results.ListPublishedByQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	for _, result := range results {
		s.cacheEntry(ctx, result)
	}
	return nil
}

// Cache failures never fail the operation; the store remains authoritative.
func (s *PublicationService) cacheEntry(ctx context.Context, result *model.AttemptResult) {
	if err := s.leaderboard.Add(ctx, result.QuizID, leaderboardEntry(result)); err != nil {
		log.Printf("leaderboard cache write for result %s failed: %v", result.ID, err)
	}
}

func leaderboardEntry(result *model.AttemptResult) cache.LeaderboardEntry {
	return cache.LeaderboardEntry{
		ResultID:   result.ID,
		Name:       result.UserName,
		Score:      result.TotalScore,
		Percentage: result.Percentage,
	}
}
