package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// LeaderboardCache handles Redis ZSET operations for published-result leaderboards
type LeaderboardCache interface {
	Add(ctx context.Context, quizID string, entry LeaderboardEntry) error
	Top(ctx context.Context, quizID string, limit int) ([]LeaderboardEntry, error)
	Clear(ctx context.Context, quizID string) error
}

// LeaderboardEntry is the public projection of one published result.
type LeaderboardEntry struct {
	ResultID   string  `json:"result_id"`
	Name       string  `json:"name"`
	Score      int     `json:"score"`
	Percentage float64 `json:"percentage"`
	Rank       int     `json:"rank,omitempty"`
}

type leaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &leaderboardCache{
		client: client,
	}
}

func (c *leaderboardCache) key(quizID string) string {
	return fmt.Sprintf("quiz:%s:lb", quizID)
}

// Add upserts an entry scored by percentage. The member encoding is stable, so
// republishing the same result never creates a duplicate.
func (c *leaderboardCache) Add(ctx context.Context, quizID string, entry LeaderboardEntry) error {
	entry.Rank = 0
	member, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.client.ZAdd(ctx, c.key(quizID), redis.Z{
		Score:  entry.Percentage,
		Member: string(member),
	}).Err()
}

func (c *leaderboardCache) Top(ctx context.Context, quizID string, limit int) ([]LeaderboardEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(quizID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(results))
	for i, z := range results {
		var entry LeaderboardEntry
		if err := json.Unmarshal([]byte(z.Member.(string)), &entry); err != nil {
			continue
		}
		entry.Rank = i + 1
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *leaderboardCache) Clear(ctx context.Context, quizID string) error {
	return c.client.Del(ctx, c.key(quizID)).Err()
}
