package cache

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// LeaderboardKey is the sorted set of post ids scored by endorsement count.
const LeaderboardKey = "leaderboard:posts"

// Entry is one leaderboard row.
type Entry struct {
	PostID       int `json:"post_id"`
	Endorsements int `json:"endorsements"`
}

// Leaderboard ranks endorsable posts by their direct endorsement count.
type Leaderboard interface {
	// SetScore records the current count for a post, adding it if missing.
	SetScore(ctx context.Context, postID, endorsements int) error

	// Remove drops posts from the ranking. Unknown ids are ignored.
	Remove(ctx context.Context, postIDs ...int) error

	// Score returns (count, found, error) for one post.
	Score(ctx context.Context, postID int) (int, bool, error)

	// Top returns up to n entries, highest count first.
	Top(ctx context.Context, n int) ([]Entry, error)

	// Rebuild atomically replaces the whole ranking.
	Rebuild(ctx context.Context, scores map[int]int) error

	Clear(ctx context.Context) error
}

// RedisLeaderboard implements Leaderboard using a Redis sorted set.
type RedisLeaderboard struct {
	client *redis.Client
	key    string
}

func NewLeaderboard(client *redis.Client) Leaderboard {
	return &RedisLeaderboard{client: client, key: LeaderboardKey}
}

func member(postID int) string {
	return strconv.Itoa(postID)
}

func (l *RedisLeaderboard) SetScore(ctx context.Context, postID, endorsements int) error {
	err := l.client.ZAdd(ctx, l.key, redis.Z{
		Score:  float64(endorsements),
		Member: member(postID),
	}).Err()
	if err != nil {
		log.Printf("[Leaderboard] SetScore FAILED: post=%d err=%v", postID, err)
		return fmt.Errorf("set leaderboard score: %w", err)
	}

	log.Printf("[Leaderboard] SetScore OK: post=%d endorsements=%d", postID, endorsements)
	return nil
}

func (l *RedisLeaderboard) Remove(ctx context.Context, postIDs ...int) error {
	if len(postIDs) == 0 {
		return nil
	}

	members := make([]interface{}, len(postIDs))
	for i, id := range postIDs {
		members[i] = member(id)
	}

	removed, err := l.client.ZRem(ctx, l.key, members...).Result()
	if err != nil {
		log.Printf("[Leaderboard] Remove FAILED: posts=%v err=%v", postIDs, err)
		return fmt.Errorf("remove from leaderboard: %w", err)
	}

	log.Printf("[Leaderboard] Remove OK: posts=%v removed=%d", postIDs, removed)
	return nil
}

func (l *RedisLeaderboard) Score(ctx context.Context, postID int) (int, bool, error) {
	score, err := l.client.ZScore(ctx, l.key, member(postID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get leaderboard score: %w", err)
	}
	return int(score), true, nil
}

func (l *RedisLeaderboard) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	startTime := time.Now()

	results, err := l.client.ZRevRangeWithScores(ctx, l.key, 0, int64(n-1)).Result()
	if err != nil {
		log.Printf("[Leaderboard] Top FAILED: n=%d err=%v", n, err)
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}

	entries := make([]Entry, 0, len(results))
	for _, z := range results {
		s, ok := z.Member.(string)
		if !ok {
			continue
		}
		id, err := strconv.Atoi(s)
		if err != nil {
			log.Printf("[Leaderboard] Top: skipping bad member %q", s)
			continue
		}
		entries = append(entries, Entry{PostID: id, Endorsements: int(z.Score)})
	}

	log.Printf("[Leaderboard] Top OK: n=%d returned=%d duration=%v", n, len(entries), time.Since(startTime))
	return entries, nil
}

// Rebuild runs DEL + ZADD in a MULTI so readers never see a partial ranking.
func (l *RedisLeaderboard) Rebuild(ctx context.Context, scores map[int]int) error {
	startTime := time.Now()

	pipe := l.client.TxPipeline()
	pipe.Del(ctx, l.key)
	if len(scores) > 0 {
		members := make([]redis.Z, 0, len(scores))
		for id, count := range scores {
			members = append(members, redis.Z{Score: float64(count), Member: member(id)})
		}
		pipe.ZAdd(ctx, l.key, members...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[Leaderboard] Rebuild FAILED: posts=%d err=%v", len(scores), err)
		return fmt.Errorf("rebuild leaderboard: %w", err)
	}

	log.Printf("[Leaderboard] Rebuild OK: posts=%d duration=%v", len(scores), time.Since(startTime))
	return nil
}

func (l *RedisLeaderboard) Clear(ctx context.Context) error {
	if err := l.client.Del(ctx, l.key).Err(); err != nil {
		return fmt.Errorf("clear leaderboard: %w", err)
	}
	return nil
}
