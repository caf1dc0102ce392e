package worker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"socialmedia/internal/cache"
	"socialmedia/internal/model"
	"socialmedia/internal/queue"
)

// EndorsementCounter reads live counts from the platform. Workers never touch
// the platform directly.
type EndorsementCounter interface {
	// EndorsementCount returns model.ErrPostNotFound for a post that no longer exists.
	EndorsementCount(ctx context.Context, postID int) (int, error)
	// EndorsementCounts covers every endorsable post.
	EndorsementCounts(ctx context.Context) (map[int]int, error)
}

// Handler keeps the leaderboard in step with platform events.
type Handler struct {
	leaderboard cache.Leaderboard
	counter     EndorsementCounter
}

func NewHandler(leaderboard cache.Leaderboard, counter EndorsementCounter) *Handler {
	return &Handler{
		leaderboard: leaderboard,
		counter:     counter,
	}
}

// HandleEvent routes an event to the appropriate handler based on type.
func (h *Handler) HandleEvent(ctx context.Context, event queue.PlatformEvent) error {
	startTime := time.Now()
	var err error

	switch event.Type {
	case queue.EventPostCreated, queue.EventPostCommented:
		err = h.handleNewThread(ctx, event)
	case queue.EventPostEndorsed:
		err = h.handlePostEndorsed(ctx, event)
	case queue.EventPostDeleted, queue.EventAccountRemoved, queue.EventPlatformErased, queue.EventPlatformLoaded:
		// cascades can touch any number of posts, so recount everything
		err = h.rebuild(ctx, event)
	case queue.EventAccountCreated:
		return nil
	default:
		log.Printf("[Worker] Unknown event type: %s", event.Type)
		return fmt.Errorf("unknown event type: %s", event.Type)
	}

	if err != nil {
		log.Printf("[Worker] HandleEvent FAILED: type=%s id=%s duration=%v err=%v",
			event.Type, event.ID, time.Since(startTime), err)
		return err
	}

	log.Printf("[Worker] HandleEvent OK: type=%s id=%s duration=%v", event.Type, event.ID, time.Since(startTime))
	return nil
}

// handleNewThread enters a fresh original post or comment with no endorsements.
func (h *Handler) handleNewThread(ctx context.Context, event queue.PlatformEvent) error {
	return h.leaderboard.SetScore(ctx, event.PostID, 0)
}

// handlePostEndorsed re-reads the target's count instead of incrementing, so
// replayed events stay idempotent.
func (h *Handler) handlePostEndorsed(ctx context.Context, event queue.PlatformEvent) error {
	count, err := h.counter.EndorsementCount(ctx, event.TargetID)
	if errors.Is(err, model.ErrPostNotFound) {
		log.Printf("[Worker] PostEndorsed: target=%d is gone, removing", event.TargetID)
		return h.leaderboard.Remove(ctx, event.TargetID)
	}
	if err != nil {
		return fmt.Errorf("count endorsements: %w", err)
	}
	return h.leaderboard.SetScore(ctx, event.TargetID, count)
}

func (h *Handler) rebuild(ctx context.Context, event queue.PlatformEvent) error {
	counts, err := h.counter.EndorsementCounts(ctx)
	if err != nil {
		return fmt.Errorf("count endorsements: %w", err)
	}
	log.Printf("[Worker] %s: rebuilding leaderboard posts=%d", event.Type, len(counts))
	return h.leaderboard.Rebuild(ctx, counts)
}
