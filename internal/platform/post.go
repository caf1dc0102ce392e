package platform

import (
	"fmt"
	"log"
	"slices"
	"unicode/utf8"

	"socialmedia/internal/model"
)

func validateMessage(message string) error {
	if message == "" {
		return fmt.Errorf("message is empty: %w", model.ErrPostInvalid)
	}
	if utf8.RuneCountInString(message) > model.MaxMessageLength {
		return fmt.Errorf("message longer than %d characters: %w", model.MaxMessageLength, model.ErrPostInvalid)
	}
	return nil
}

// CreatePost publishes an original post for handle and returns its id.
func (p *Platform) CreatePost(handle, message string) (int, error) {
	if err := validateMessage(message); err != nil {
		return 0, err
	}
	author, err := p.Account(handle)
	if err != nil {
		return 0, fmt.Errorf("create post for %q: %w", handle, err)
	}

	post := model.NewOriginalPost(p.nextPostID(), author.ID(), message)
	p.addPost(post)
	author.AddPost(post.ID())
	return post.ID(), nil
}

// target resolves the post an endorsement or comment is aimed at.
func (p *Platform) target(op string, id int) (model.Thread, error) {
	post, ok := p.posts[id]
	if !ok {
		return nil, fmt.Errorf("%s %d: %w", op, id, model.ErrPostNotFound)
	}
	t, ok := post.(model.Thread)
	if !ok {
		return nil, fmt.Errorf("%s %d: %s cannot be targeted: %w", op, id, post.Kind(), model.ErrNotActionable)
	}
	return t, nil
}

// EndorsePost endorses targetID on behalf of handle and returns the id of
// the new endorsement.
func (p *Platform) EndorsePost(handle string, targetID int) (int, error) {
	author, err := p.Account(handle)
	if err != nil {
		return 0, fmt.Errorf("endorse post as %q: %w", handle, err)
	}
	target, err := p.target("endorse post", targetID)
	if err != nil {
		return 0, err
	}

	message := "EP@" + p.authorHandle(target) + ": " + target.Message()
	e := model.NewEndorsement(p.nextPostID(), author.ID(), targetID, message)
	p.addPost(e)
	author.AddPost(e.ID())
	target.AddEndorsement(e.ID())
	return e.ID(), nil
}

// CommentPost replies to targetID on behalf of handle and returns the id of
// the new comment.
func (p *Platform) CommentPost(handle string, targetID int, message string) (int, error) {
	if err := validateMessage(message); err != nil {
		return 0, err
	}
	author, err := p.Account(handle)
	if err != nil {
		return 0, fmt.Errorf("comment on post as %q: %w", handle, err)
	}
	target, err := p.target("comment on post", targetID)
	if err != nil {
		return 0, err
	}

	c := model.NewComment(p.nextPostID(), author.ID(), targetID, message)
	p.addPost(c)
	author.AddPost(c.ID())
	target.AddComment(c.ID())
	return c.ID(), nil
}

// DeletePost removes a post. Endorsements of the post are deleted with it;
// its direct comments are moved under the sentinel post together with their
// own subtrees.
func (p *Platform) DeletePost(id int) error {
	post, ok := p.posts[id]
	if !ok {
		return fmt.Errorf("delete post %d: %w", id, model.ErrPostNotFound)
	}
	if p.isSentinel(id) {
		return fmt.Errorf("delete post %d: sentinel post: %w", id, model.ErrNotActionable)
	}

	switch post := post.(type) {
	case *model.OriginalPost:
		p.deleteThread(post)
	case *model.Comment:
		p.deleteThread(post)
		if parent, ok := p.thread(post.Parent()); ok {
			parent.RemoveComment(post.ID())
		}
	case *model.Endorsement:
		p.unlink(post)
		if parent, ok := p.thread(post.Parent()); ok {
			parent.RemoveEndorsement(post.ID())
		}
	}
	return nil
}

// deleteThread handles the part shared by original posts and comments.
func (p *Platform) deleteThread(t model.Thread) {
	for _, eid := range slices.Clone(t.EndorsementIDs()) {
		if e, ok := p.posts[eid].(*model.Endorsement); ok {
			p.unlink(e)
		}
		t.RemoveEndorsement(eid)
	}

	for _, cid := range slices.Clone(t.CommentIDs()) {
		p.reparent(cid)
		t.RemoveComment(cid)
	}

	p.unlink(t)
}

// reparent points an orphaned comment at the sentinel post, or detaches it
// when the platform has none.
func (p *Platform) reparent(commentID int) {
	c, ok := p.posts[commentID].(*model.Comment)
	if !ok {
		return
	}
	if !p.hasSentinel {
		c.SetParent(model.DetachedParentID)
		log.Printf("[Platform] reparent: no sentinel post, comment=%d left detached", commentID)
		return
	}
	c.SetParent(model.SentinelPostID)
	sentinel, _ := p.thread(model.SentinelPostID)
	sentinel.AddComment(c.ID())
}

// unlink removes a post from its author and from the platform index.
func (p *Platform) unlink(post model.Post) {
	if a, ok := p.accounts[post.AuthorID()]; ok {
		a.RemovePost(post.ID())
	}
	p.dropPost(post.ID())
}
