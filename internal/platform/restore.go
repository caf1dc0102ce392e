package platform

import (
	"errors"
	"fmt"

	"socialmedia/internal/model"
)

// ErrInconsistent is returned by Assemble when the supplied graph has
// duplicate ids or references that do not resolve.
var ErrInconsistent = errors.New("inconsistent platform graph")

// Assemble builds a platform from already constructed accounts and posts,
// keeping the given order as creation order. Every reference must resolve to
// one of the supplied instances.
func Assemble(accounts []*model.Account, posts []model.Post, lastAccountID, lastPostID int) (*Platform, error) {
	p := &Platform{}
	p.Erase()

	for _, a := range accounts {
		if _, dup := p.accounts[a.ID()]; dup {
			return nil, fmt.Errorf("account %d listed twice: %w", a.ID(), ErrInconsistent)
		}
		if p.handleTaken(a.Handle()) {
			return nil, fmt.Errorf("handle %q listed twice: %w", a.Handle(), ErrInconsistent)
		}
		p.addAccount(a)
	}
	for _, post := range posts {
		if _, dup := p.posts[post.ID()]; dup {
			return nil, fmt.Errorf("post %d listed twice: %w", post.ID(), ErrInconsistent)
		}
		p.addPost(post)
	}

	if err := p.check(); err != nil {
		return nil, err
	}
	p.detectSentinel()

	p.lastAccountID = max(p.lastAccountID, lastAccountID)
	p.lastPostID = max(p.lastPostID, lastPostID)
	return p, nil
}

// check verifies that every id stored in the graph resolves.
func (p *Platform) check() error {
	for _, id := range p.accountOrder {
		for _, pid := range p.accounts[id].PostIDs() {
			post, ok := p.posts[pid]
			if !ok || post.AuthorID() != id {
				return fmt.Errorf("account %d lists post %d: %w", id, pid, ErrInconsistent)
			}
		}
	}

	for _, id := range p.postOrder {
		post := p.posts[id]
		if _, ok := p.accounts[post.AuthorID()]; !ok {
			return fmt.Errorf("post %d author %d: %w", id, post.AuthorID(), ErrInconsistent)
		}
		if r, ok := post.(model.Reply); ok {
			_, detached := post.(*model.Comment)
			detached = detached && r.Parent() == model.DetachedParentID
			if _, ok := p.posts[r.Parent()]; !ok && !detached {
				return fmt.Errorf("post %d parent %d: %w", id, r.Parent(), ErrInconsistent)
			}
		}
		t, ok := post.(model.Thread)
		if !ok {
			continue
		}
		for _, cid := range t.CommentIDs() {
			if c, ok := p.posts[cid].(*model.Comment); !ok || c.Parent() != id {
				return fmt.Errorf("post %d lists comment %d: %w", id, cid, ErrInconsistent)
			}
		}
		for _, eid := range t.EndorsementIDs() {
			if e, ok := p.posts[eid].(*model.Endorsement); !ok || e.Parent() != id {
				return fmt.Errorf("post %d lists endorsement %d: %w", id, eid, ErrInconsistent)
			}
		}
	}
	return nil
}
