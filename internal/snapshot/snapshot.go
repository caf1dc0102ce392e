// Package snapshot serializes the whole platform forest and restores it with
// one instance per account and post, so every reference in the rebuilt graph
// points at the same object.
package snapshot

import (
	"errors"
	"fmt"
	"time"

	"socialmedia/internal/model"
	"socialmedia/internal/platform"
)

// FormatVersion is bumped whenever the encoded layout changes.
const FormatVersion = 1

var (
	// ErrNotFound is returned by stores that have nothing saved yet
	ErrNotFound = errors.New("snapshot not found")

	// ErrCorrupt is returned when a snapshot fails its checksum or does not
	// describe a consistent graph
	ErrCorrupt = errors.New("snapshot corrupt")
)

// Snapshot is the serialized platform. Accounts come first, then the flat
// post collection, both in creation order.
type Snapshot struct {
	Version       int       `json:"version"`
	TakenAt       time.Time `json:"taken_at"`
	LastAccountID int       `json:"last_account_id"`
	LastPostID    int       `json:"last_post_id"`
	Accounts      []Account `json:"accounts"`
	Posts         []Post    `json:"posts"`
}

type Account struct {
	ID          int    `json:"id" db:"id"`
	Handle      string `json:"handle" db:"handle"`
	Description string `json:"description" db:"description"`
	PostIDs     []int  `json:"posts" db:"-"`
}

// Post carries every variant. Parent is zero for original posts; the child
// lists are empty for endorsements.
type Post struct {
	Kind           string `json:"kind" db:"kind"`
	ID             int    `json:"id" db:"id"`
	AuthorID       int    `json:"author" db:"author_id"`
	Message        string `json:"message" db:"message"`
	Parent         int    `json:"parent,omitempty" db:"parent_id"`
	CommentIDs     []int  `json:"comments,omitempty" db:"-"`
	EndorsementIDs []int  `json:"endorsements,omitempty" db:"-"`
}

// Capture copies the platform into a Snapshot.
func Capture(p *platform.Platform) *Snapshot {
	lastAccount, lastPost := p.Sequences()
	s := &Snapshot{
		Version:       FormatVersion,
		TakenAt:       time.Now().UTC(),
		LastAccountID: lastAccount,
		LastPostID:    lastPost,
	}

	for _, a := range p.Accounts() {
		s.Accounts = append(s.Accounts, Account{
			ID:          a.ID(),
			Handle:      a.Handle(),
			Description: a.Description(),
			PostIDs:     append([]int(nil), a.PostIDs()...),
		})
	}

	for _, post := range p.Posts() {
		sp := Post{
			Kind:     post.Kind().String(),
			ID:       post.ID(),
			AuthorID: post.AuthorID(),
			Message:  post.Message(),
		}
		if r, ok := post.(model.Reply); ok {
			sp.Parent = r.Parent()
		}
		if t, ok := post.(model.Thread); ok {
			sp.CommentIDs = append([]int(nil), t.CommentIDs()...)
			sp.EndorsementIDs = append([]int(nil), t.EndorsementIDs()...)
		}
		s.Posts = append(s.Posts, sp)
	}

	return s
}

// Restore rebuilds a platform from s.
func Restore(s *Snapshot) (*platform.Platform, error) {
	if s.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d: %w", s.Version, ErrCorrupt)
	}

	accounts := make([]*model.Account, 0, len(s.Accounts))
	for _, sa := range s.Accounts {
		a := model.NewAccount(sa.ID, sa.Handle, sa.Description)
		for _, id := range sa.PostIDs {
			a.AddPost(id)
		}
		accounts = append(accounts, a)
	}

	posts := make([]model.Post, 0, len(s.Posts))
	for _, sp := range s.Posts {
		post, err := sp.build()
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	p, err := platform.Assemble(accounts, posts, s.LastAccountID, s.LastPostID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return p, nil
}

func (sp Post) build() (model.Post, error) {
	kind, ok := model.ParseKind(sp.Kind)
	if !ok {
		return nil, fmt.Errorf("post %d has unknown kind %q: %w", sp.ID, sp.Kind, ErrCorrupt)
	}

	var t model.Thread
	switch kind {
	case model.KindOriginal:
		t = model.NewOriginalPost(sp.ID, sp.AuthorID, sp.Message)
	case model.KindComment:
		t = model.NewComment(sp.ID, sp.AuthorID, sp.Parent, sp.Message)
	case model.KindEndorsement:
		if len(sp.CommentIDs) > 0 || len(sp.EndorsementIDs) > 0 {
			return nil, fmt.Errorf("endorsement %d has children: %w", sp.ID, ErrCorrupt)
		}
		return model.NewEndorsement(sp.ID, sp.AuthorID, sp.Parent, sp.Message), nil
	}

	for _, id := range sp.CommentIDs {
		t.AddComment(id)
	}
	for _, id := range sp.EndorsementIDs {
		t.AddEndorsement(id)
	}
	return t, nil
}
