package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"

	"socialmedia/internal/cache"
	"socialmedia/internal/model"
	"socialmedia/internal/platform"
	"socialmedia/internal/queue"
	"socialmedia/internal/snapshot"
)

// ErrStoreNotConfigured is returned by Save and Load when no snapshot store was wired.
var ErrStoreNotConfigured = errors.New("snapshot store not configured")

// Stats is the aggregate view served by /stats.
type Stats struct {
	Accounts            int `json:"accounts"`
	OriginalPosts       int `json:"original_posts"`
	Comments            int `json:"comments"`
	Endorsements        int `json:"endorsements"`
	MostEndorsedPost    int `json:"most_endorsed_post"`
	MostEndorsedAccount int `json:"most_endorsed_account"`
}

// AccountSummary is one row of the account listing.
type AccountSummary struct {
	ID           int    `json:"id"`
	Handle       string `json:"handle"`
	Posts        int    `json:"posts"`
	Endorsements int    `json:"endorsements"`
}

// TreeNode is a detached copy of one thread node and its comment subtree.
type TreeNode struct {
	ID           int         `json:"id"`
	Handle       string      `json:"handle"`
	Message      string      `json:"message"`
	Endorsements int         `json:"endorsements"`
	Comments     []*TreeNode `json:"comments,omitempty"`
}

// PlatformService serializes every call into the single-threaded platform and
// publishes an event after each successful mutation.
type PlatformService struct {
	mu       sync.Mutex
	platform *platform.Platform

	publisher   queue.Publisher   // optional
	store       snapshot.Store    // optional
	leaderboard cache.Leaderboard // optional
}

func NewPlatformService(p *platform.Platform, publisher queue.Publisher, store snapshot.Store) *PlatformService {
	if p == nil {
		p = platform.New()
	}
	return &PlatformService{
		platform:  p,
		publisher: publisher,
		store:     store,
	}
}

// SetLeaderboard makes Leaderboard read from the cache instead of recounting.
func (s *PlatformService) SetLeaderboard(lb cache.Leaderboard) {
	s.leaderboard = lb
}

// publish is best-effort: the mutation already happened and the worker
// rebuilds on the next bulk event.
func (s *PlatformService) publish(ctx context.Context, event queue.PlatformEvent) {
	if s.publisher == nil {
		return
	}
	msgID, err := s.publisher.Publish(ctx, queue.StreamPlatform, event)
	if err != nil {
		log.Printf("[PlatformService] Failed to publish %s event: id=%s err=%v", event.Type, event.ID, err)
		return
	}
	log.Printf("[PlatformService] Published %s: msgID=%s", event.Type, msgID)
}

// =============================================================================
// Accounts
// =============================================================================

func (s *PlatformService) CreateAccount(ctx context.Context, handle, description string) (int, error) {
	s.mu.Lock()
	id, err := s.platform.CreateAccount(handle, description)
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}

	s.publish(ctx, queue.NewAccountCreatedEvent(id, handle))
	return id, nil
}

func (s *PlatformService) RemoveAccount(ctx context.Context, handle string) error {
	s.mu.Lock()
	a, err := s.platform.Account(handle)
	if err == nil {
		err = s.platform.RemoveAccount(handle)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.publish(ctx, queue.NewAccountRemovedEvent(a.ID(), handle))
	return nil
}

func (s *PlatformService) RemoveAccountByID(ctx context.Context, id int) error {
	s.mu.Lock()
	a, err := s.platform.AccountByID(id)
	var handle string
	if err == nil {
		handle = a.Handle()
		err = s.platform.RemoveAccountByID(id)
	}
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.publish(ctx, queue.NewAccountRemovedEvent(id, handle))
	return nil
}

func (s *PlatformService) ChangeAccountHandle(ctx context.Context, oldHandle, newHandle string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.platform.ChangeAccountHandle(oldHandle, newHandle)
}

func (s *PlatformService) UpdateAccountDescription(ctx context.Context, handle, description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.platform.UpdateAccountDescription(handle, description)
}

func (s *PlatformService) ShowAccount(ctx context.Context, handle string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.platform.ShowAccount(handle)
}

// =============================================================================
// Posts
// =============================================================================

func (s *PlatformService) CreatePost(ctx context.Context, handle, message string) (int, error) {
	s.mu.Lock()
	id, err := s.platform.CreatePost(handle, message)
	authorID := s.authorOf(id)
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}

	s.publish(ctx, queue.NewPostCreatedEvent(id, authorID))
	return id, nil
}

func (s *PlatformService) EndorsePost(ctx context.Context, handle string, targetID int) (int, error) {
	s.mu.Lock()
	id, err := s.platform.EndorsePost(handle, targetID)
	authorID := s.authorOf(id)
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}

	s.publish(ctx, queue.NewPostEndorsedEvent(id, targetID, authorID))
	return id, nil
}

func (s *PlatformService) CommentPost(ctx context.Context, handle string, targetID int, message string) (int, error) {
	s.mu.Lock()
	id, err := s.platform.CommentPost(handle, targetID, message)
	authorID := s.authorOf(id)
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}

	s.publish(ctx, queue.NewPostCommentedEvent(id, targetID, authorID))
	return id, nil
}

func (s *PlatformService) DeletePost(ctx context.Context, id int) error {
	s.mu.Lock()
	err := s.platform.DeletePost(id)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.publish(ctx, queue.NewPostDeletedEvent(id))
	return nil
}

// authorOf must be called with mu held. Returns 0 for unknown posts.
func (s *PlatformService) authorOf(postID int) int {
	post, err := s.platform.Post(postID)
	if err != nil {
		return 0
	}
	return post.AuthorID()
}

// Accounts lists live accounts in creation order.
func (s *PlatformService) Accounts(ctx context.Context) []AccountSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts := s.platform.Accounts()
	out := make([]AccountSummary, 0, len(accounts))
	for _, a := range accounts {
		endorsements, _ := s.platform.AccountEndorsementCount(a.Handle())
		out = append(out, AccountSummary{
			ID:           a.ID(),
			Handle:       a.Handle(),
			Posts:        len(a.PostIDs()),
			Endorsements: endorsements,
		})
	}
	return out
}

// PostTree copies the comment tree rooted at id out of the platform.
func (s *PlatformService) PostTree(ctx context.Context, id int) (*TreeNode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, err := s.platform.Post(id)
	if err != nil {
		return nil, fmt.Errorf("post tree %d: %w", id, err)
	}
	if !model.Endorsable(post) {
		return nil, fmt.Errorf("post tree %d: %s has no children: %w", id, post.Kind(), model.ErrNotActionable)
	}

	// stack[d] is the last node seen at depth d
	var root *TreeNode
	var stack []*TreeNode
	for depth, node := range s.platform.Walk(id) {
		n := &TreeNode{
			ID:           node.ID(),
			Message:      node.Message(),
			Endorsements: len(node.(model.Thread).EndorsementIDs()),
		}
		if a, err := s.platform.AccountByID(node.AuthorID()); err == nil {
			n.Handle = a.Handle()
		}

		stack = append(stack[:depth], n)
		if depth == 0 {
			root = n
			continue
		}
		parent := stack[depth-1]
		parent.Comments = append(parent.Comments, n)
	}
	return root, nil
}

func (s *PlatformService) ShowIndividualPost(ctx context.Context, id int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.platform.ShowIndividualPost(id)
}

func (s *PlatformService) ShowPostChildrenDetails(ctx context.Context, id int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.platform.ShowPostChildrenDetails(id)
}

// =============================================================================
// Statistics
// =============================================================================

func (s *PlatformService) Stats(ctx context.Context) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Accounts:            s.platform.NumberOfAccounts(),
		OriginalPosts:       s.platform.TotalOriginalPosts(),
		Comments:            s.platform.TotalCommentPosts(),
		Endorsements:        s.platform.TotalEndorsementPosts(),
		MostEndorsedPost:    s.platform.MostEndorsedPost(),
		MostEndorsedAccount: s.platform.MostEndorsedAccount(),
	}
}

func (s *PlatformService) EndorsementCount(ctx context.Context, postID int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.platform.EndorsementCount(postID)
}

func (s *PlatformService) EndorsementCounts(ctx context.Context) (map[int]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.platform.EndorsementCounts(), nil
}

// Leaderboard returns the n most endorsed posts. The Redis ranking is used
// when wired; on a cache error the ranking is recomputed from the platform.
func (s *PlatformService) Leaderboard(ctx context.Context, n int) ([]cache.Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	if s.leaderboard != nil {
		entries, err := s.leaderboard.Top(ctx, n)
		if err == nil {
			return entries, nil
		}
		log.Printf("[PlatformService] Leaderboard cache failed, recomputing: err=%v", err)
	}

	counts, _ := s.EndorsementCounts(ctx)
	return rank(counts, n), nil
}

// rank orders by count descending, then id ascending.
func rank(counts map[int]int, n int) []cache.Entry {
	entries := make([]cache.Entry, 0, len(counts))
	for id, c := range counts {
		entries = append(entries, cache.Entry{PostID: id, Endorsements: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Endorsements != entries[j].Endorsements {
			return entries[i].Endorsements > entries[j].Endorsements
		}
		return entries[i].PostID < entries[j].PostID
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// =============================================================================
// Whole-platform operations
// =============================================================================

// Erase clears everything, the sentinel account and post included.
func (s *PlatformService) Erase(ctx context.Context) {
	s.mu.Lock()
	s.platform.Erase()
	s.mu.Unlock()

	s.publish(ctx, queue.NewPlatformErasedEvent())
}

// Reset erases and re-seeds the sentinel account and post.
func (s *PlatformService) Reset(ctx context.Context) {
	s.mu.Lock()
	s.platform.Reset()
	s.mu.Unlock()

	s.publish(ctx, queue.NewPlatformErasedEvent())
}

// Save captures the platform under the lock and writes it outside of it.
func (s *PlatformService) Save(ctx context.Context) error {
	if s.store == nil {
		return ErrStoreNotConfigured
	}

	s.mu.Lock()
	snap := snapshot.Capture(s.platform)
	s.mu.Unlock()

	if err := s.store.Save(ctx, snap); err != nil {
		log.Printf("[PlatformService] Save FAILED: err=%v", err)
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load replaces the current platform with the stored snapshot. On any error
// the current platform is left untouched.
func (s *PlatformService) Load(ctx context.Context) error {
	if s.store == nil {
		return ErrStoreNotConfigured
	}

	snap, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	restored, err := snapshot.Restore(snap)
	if err != nil {
		log.Printf("[PlatformService] Load FAILED: err=%v", err)
		return fmt.Errorf("restore snapshot: %w", err)
	}

	s.mu.Lock()
	s.platform = restored
	s.mu.Unlock()

	log.Printf("[PlatformService] Load OK: accounts=%d posts=%d", len(snap.Accounts), len(snap.Posts))
	s.publish(ctx, queue.NewPlatformLoadedEvent())
	return nil
}
