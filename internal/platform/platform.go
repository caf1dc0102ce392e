// Package platform holds the in-memory forest of accounts and posts and the
// operations that keep it referentially consistent.
//
// A Platform is not safe for concurrent use; service.PlatformService guards it
// with a single lock.
package platform

import (
	"slices"

	"socialmedia/internal/model"
)

// Platform owns every account and post by identifier. Accounts and thread
// nodes only store ids which are resolved through these indexes.
type Platform struct {
	accounts     map[int]*model.Account
	accountOrder []int
	posts        map[int]model.Post
	postOrder    []int

	// last assigned ids; see nextAccountID
	lastAccountID int
	lastPostID    int

	// hasSentinel is set while post 1 is the admin's removed-content post.
	// After Erase id 1 goes to an ordinary post.
	hasSentinel bool
}

// New returns a platform seeded with the admin account and the sentinel post.
func New() *Platform {
	p := &Platform{}
	p.Erase()
	p.seed()
	return p
}

func (p *Platform) seed() {
	admin := model.NewAccount(model.AdminAccountID, model.AdminHandle, "")
	sentinel := model.NewOriginalPost(model.SentinelPostID, admin.ID(), model.RemovedContentMessage)
	admin.AddPost(sentinel.ID())

	p.addAccount(admin)
	p.addPost(sentinel)
	p.hasSentinel = true
}

// Erase clears both collections, the sentinel included.
func (p *Platform) Erase() {
	p.accounts = make(map[int]*model.Account)
	p.accountOrder = nil
	p.posts = make(map[int]model.Post)
	p.postOrder = nil
	p.lastAccountID = 0
	p.lastPostID = 0
	p.hasSentinel = false
}

// Reset erases the platform and seeds the sentinel account and post again.
func (p *Platform) Reset() {
	p.Erase()
	p.seed()
}

// Accounts returns live accounts in creation order. The returned accounts are
// the platform's own instances and must not be mutated.
func (p *Platform) Accounts() []*model.Account {
	out := make([]*model.Account, 0, len(p.accountOrder))
	for _, id := range p.accountOrder {
		out = append(out, p.accounts[id])
	}
	return out
}

// Posts returns live posts in creation order. Same ownership rule as Accounts.
func (p *Platform) Posts() []model.Post {
	out := make([]model.Post, 0, len(p.postOrder))
	for _, id := range p.postOrder {
		out = append(out, p.posts[id])
	}
	return out
}

// Sequences returns the last assigned account and post ids.
func (p *Platform) Sequences() (lastAccountID, lastPostID int) {
	return p.lastAccountID, p.lastPostID
}

// Account looks up a live account by handle.
func (p *Platform) Account(handle string) (*model.Account, error) {
	for _, id := range p.accountOrder {
		if a := p.accounts[id]; a.Handle() == handle {
			return a, nil
		}
	}
	return nil, model.ErrAccountNotFound
}

// AccountByID looks up a live account by id.
func (p *Platform) AccountByID(id int) (*model.Account, error) {
	a, ok := p.accounts[id]
	if !ok {
		return nil, model.ErrAccountNotFound
	}
	return a, nil
}

// Post looks up a live post by id.
func (p *Platform) Post(id int) (model.Post, error) {
	post, ok := p.posts[id]
	if !ok {
		return nil, model.ErrPostNotFound
	}
	return post, nil
}

// nextAccountID returns count+1 unless that id is still live, in which case
// ids continue from the last one assigned.
func (p *Platform) nextAccountID() int {
	if id := len(p.accountOrder) + 1; p.accounts[id] == nil {
		return id
	}
	return p.lastAccountID + 1
}

func (p *Platform) nextPostID() int {
	if id := len(p.postOrder) + 1; p.posts[id] == nil {
		return id
	}
	return p.lastPostID + 1
}

// isSentinel reports whether id names the protected removed-content post.
func (p *Platform) isSentinel(id int) bool {
	return p.hasSentinel && id == model.SentinelPostID
}

// detectSentinel sets hasSentinel when post 1 is the admin's removed-content
// original post.
func (p *Platform) detectSentinel() {
	post, ok := p.posts[model.SentinelPostID].(*model.OriginalPost)
	p.hasSentinel = ok &&
		post.AuthorID() == model.AdminAccountID &&
		post.Message() == model.RemovedContentMessage
}

func (p *Platform) addAccount(a *model.Account) {
	p.accounts[a.ID()] = a
	p.accountOrder = append(p.accountOrder, a.ID())
	p.lastAccountID = max(p.lastAccountID, a.ID())
}

func (p *Platform) dropAccount(id int) {
	delete(p.accounts, id)
	p.accountOrder = slices.DeleteFunc(p.accountOrder, func(v int) bool { return v == id })
}

func (p *Platform) addPost(post model.Post) {
	p.posts[post.ID()] = post
	p.postOrder = append(p.postOrder, post.ID())
	p.lastPostID = max(p.lastPostID, post.ID())
}

func (p *Platform) dropPost(id int) {
	delete(p.posts, id)
	p.postOrder = slices.DeleteFunc(p.postOrder, func(v int) bool { return v == id })
}

// thread resolves id to a post that can hold comments and endorsements.
func (p *Platform) thread(id int) (model.Thread, bool) {
	t, ok := p.posts[id].(model.Thread)
	return t, ok
}

// authorHandle returns the handle of the post's author, or "" when the
// author is gone (only possible on a hand-built platform).
func (p *Platform) authorHandle(post model.Post) string {
	if a, ok := p.accounts[post.AuthorID()]; ok {
		return a.Handle()
	}
	return ""
}
