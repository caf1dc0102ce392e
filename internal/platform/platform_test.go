package platform

import (
	"errors"
	"strings"
	"testing"

	"socialmedia/internal/model"
)

// =============================================================================
// HELPERS
// =============================================================================

func mustAccount(t *testing.T, p *Platform, handle string) int {
	t.Helper()
	id, err := p.CreateAccount(handle)
	if err != nil {
		t.Fatalf("CreateAccount(%q): %v", handle, err)
	}
	return id
}

func mustPost(t *testing.T, p *Platform, handle, message string) int {
	t.Helper()
	id, err := p.CreatePost(handle, message)
	if err != nil {
		t.Fatalf("CreatePost(%q): %v", handle, err)
	}
	return id
}

func mustComment(t *testing.T, p *Platform, handle string, target int, message string) int {
	t.Helper()
	id, err := p.CommentPost(handle, target, message)
	if err != nil {
		t.Fatalf("CommentPost(%q, %d): %v", handle, target, err)
	}
	return id
}

func mustEndorse(t *testing.T, p *Platform, handle string, target int) int {
	t.Helper()
	id, err := p.EndorsePost(handle, target)
	if err != nil {
		t.Fatalf("EndorsePost(%q, %d): %v", handle, target, err)
	}
	return id
}

func thread(t *testing.T, p *Platform, id int) model.Thread {
	t.Helper()
	post, err := p.Post(id)
	if err != nil {
		t.Fatalf("Post(%d): %v", id, err)
	}
	th, ok := post.(model.Thread)
	if !ok {
		t.Fatalf("post %d is a %s, want a thread node", id, post.Kind())
	}
	return th
}

// =============================================================================
// SEEDING
// =============================================================================

func TestNew_SeedsSentinel(t *testing.T) {
	p := New()

	if got := p.NumberOfAccounts(); got != 1 {
		t.Errorf("accounts = %d, want 1", got)
	}
	if got := p.TotalOriginalPosts(); got != 1 {
		t.Errorf("original posts = %d, want 1", got)
	}

	admin, err := p.AccountByID(model.AdminAccountID)
	if err != nil {
		t.Fatalf("admin account missing: %v", err)
	}
	if admin.Handle() != model.AdminHandle {
		t.Errorf("admin handle = %q, want %q", admin.Handle(), model.AdminHandle)
	}

	sentinel, err := p.Post(model.SentinelPostID)
	if err != nil {
		t.Fatalf("sentinel post missing: %v", err)
	}
	if sentinel.Message() != model.RemovedContentMessage {
		t.Errorf("sentinel message = %q", sentinel.Message())
	}
	if sentinel.AuthorID() != model.AdminAccountID {
		t.Errorf("sentinel author = %d, want %d", sentinel.AuthorID(), model.AdminAccountID)
	}
}

// =============================================================================
// ACCOUNT TESTS
// =============================================================================

func TestCreateAccount_AssignsSequentialIDs(t *testing.T) {
	p := New()

	alice := mustAccount(t, p, "alice")
	bob := mustAccount(t, p, "bob")

	if alice != 2 || bob != 3 {
		t.Errorf("ids = %d, %d, want 2, 3", alice, bob)
	}
}

func TestCreateAccount_HandleConflict(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")

	_, err := p.CreateAccount("alice")
	if !errors.Is(err, model.ErrHandleConflict) {
		t.Errorf("error = %v, want %v", err, model.ErrHandleConflict)
	}
	if got := p.NumberOfAccounts(); got != 2 {
		t.Errorf("accounts = %d, want 2", got)
	}
}

func TestCreateAccount_InvalidHandle(t *testing.T) {
	tests := []struct {
		name   string
		handle string
	}{
		{"empty", ""},
		{"too long", strings.Repeat("a", 31)},
		{"space", "al ice"},
		{"tab", "al\tice"},
		{"newline", "alice\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New()
			_, err := p.CreateAccount(tt.handle)
			if !errors.Is(err, model.ErrHandleInvalid) {
				t.Errorf("error = %v, want %v", err, model.ErrHandleInvalid)
			}
		})
	}
}

func TestCreateAccount_MaxLengthHandle(t *testing.T) {
	p := New()
	if _, err := p.CreateAccount(strings.Repeat("a", 30)); err != nil {
		t.Errorf("30 character handle rejected: %v", err)
	}
}

func TestCreateAccount_WithDescription(t *testing.T) {
	p := New()
	p.CreateAccount("alice", "hello there")

	a, err := p.Account("alice")
	if err != nil {
		t.Fatal(err)
	}
	if a.Description() != "hello there" {
		t.Errorf("description = %q", a.Description())
	}
}

func TestCreateAccount_IDsNotReusedAfterRemoval(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice") // 2
	mustAccount(t, p, "bob")   // 3
	mustAccount(t, p, "carol") // 4

	if err := p.RemoveAccount("bob"); err != nil {
		t.Fatal(err)
	}

	dave := mustAccount(t, p, "dave")
	if dave != 5 {
		t.Errorf("id = %d, want 5", dave)
	}
}

func TestRemoveAccountByID_MatchesIDNotPosition(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice") // 2
	mustAccount(t, p, "bob")   // 3
	carol := mustAccount(t, p, "carol")

	if err := p.RemoveAccount("alice"); err != nil {
		t.Fatal(err)
	}
	if err := p.RemoveAccountByID(carol); err != nil {
		t.Fatal(err)
	}

	if _, err := p.Account("bob"); err != nil {
		t.Errorf("bob should survive: %v", err)
	}
	if _, err := p.Account("carol"); !errors.Is(err, model.ErrAccountNotFound) {
		t.Errorf("carol should be gone, err = %v", err)
	}
}

func TestRemoveAccount_NotFound(t *testing.T) {
	p := New()

	if err := p.RemoveAccount("ghost"); !errors.Is(err, model.ErrAccountNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrAccountNotFound)
	}
	if err := p.RemoveAccountByID(42); !errors.Is(err, model.ErrAccountNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrAccountNotFound)
	}
}

func TestRemoveAccount_AdminRefused(t *testing.T) {
	p := New()

	err := p.RemoveAccount(model.AdminHandle)
	if !errors.Is(err, model.ErrNotActionable) {
		t.Errorf("error = %v, want %v", err, model.ErrNotActionable)
	}
	if _, err := p.Post(model.SentinelPostID); err != nil {
		t.Errorf("sentinel should survive: %v", err)
	}
}

func TestRemoveAccount_CascadesPosts(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	mustAccount(t, p, "bob")

	post := mustPost(t, p, "alice", "hello")
	reply := mustComment(t, p, "bob", post, "hi alice")
	bobPost := mustPost(t, p, "bob", "bob here")
	aliceEndorsement := mustEndorse(t, p, "alice", bobPost)
	mustEndorse(t, p, "alice", post) // self endorsement, removed with post

	if err := p.RemoveAccount("alice"); err != nil {
		t.Fatalf("RemoveAccount: %v", err)
	}

	if _, err := p.Post(post); !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("alice's post should be deleted")
	}
	if _, err := p.Post(aliceEndorsement); !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("alice's endorsement should be deleted")
	}
	if n := len(thread(t, p, bobPost).EndorsementIDs()); n != 0 {
		t.Errorf("bob's post endorsements = %d, want 0", n)
	}

	c, err := p.Post(reply)
	if err != nil {
		t.Fatalf("bob's comment should survive: %v", err)
	}
	if parent := c.(model.Reply).Parent(); parent != model.SentinelPostID {
		t.Errorf("comment parent = %d, want %d", parent, model.SentinelPostID)
	}
	if got := p.TotalEndorsementPosts(); got != 0 {
		t.Errorf("endorsements = %d, want 0", got)
	}
}

func TestChangeAccountHandle(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	mustAccount(t, p, "bob")

	if err := p.ChangeAccountHandle("alice", "alicia"); err != nil {
		t.Fatalf("ChangeAccountHandle: %v", err)
	}
	if _, err := p.Account("alicia"); err != nil {
		t.Errorf("renamed account missing: %v", err)
	}
	if _, err := p.Account("alice"); !errors.Is(err, model.ErrAccountNotFound) {
		t.Errorf("old handle still resolves")
	}

	if err := p.ChangeAccountHandle("alicia", "bob"); !errors.Is(err, model.ErrHandleConflict) {
		t.Errorf("error = %v, want %v", err, model.ErrHandleConflict)
	}
	if err := p.ChangeAccountHandle("alicia", "a b"); !errors.Is(err, model.ErrHandleInvalid) {
		t.Errorf("error = %v, want %v", err, model.ErrHandleInvalid)
	}
	if err := p.ChangeAccountHandle("ghost", "casper"); !errors.Is(err, model.ErrAccountNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrAccountNotFound)
	}
}

func TestUpdateAccountDescription(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")

	if err := p.UpdateAccountDescription("alice", "new bio"); err != nil {
		t.Fatal(err)
	}
	a, _ := p.Account("alice")
	if a.Description() != "new bio" {
		t.Errorf("description = %q, want %q", a.Description(), "new bio")
	}

	if err := p.UpdateAccountDescription("ghost", "x"); !errors.Is(err, model.ErrAccountNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrAccountNotFound)
	}
}

func TestShowAccount(t *testing.T) {
	p := New()
	p.CreateAccount("alice", "likes go")
	mustAccount(t, p, "bob")

	post := mustPost(t, p, "alice", "hello")
	reply := mustComment(t, p, "alice", post, "self reply")
	mustEndorse(t, p, "bob", post)
	mustEndorse(t, p, "bob", reply)

	got, err := p.ShowAccount("alice")
	if err != nil {
		t.Fatal(err)
	}
	want := "ID: 2\nHandle: alice\nDescription: likes go\nPost Count: 2\nEndorse Count: 2\n"
	if got != want {
		t.Errorf("ShowAccount =\n%q\nwant\n%q", got, want)
	}

	if _, err := p.ShowAccount("ghost"); !errors.Is(err, model.ErrAccountNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrAccountNotFound)
	}
}

// =============================================================================
// POST TESTS
// =============================================================================

func TestCreatePost(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")

	id := mustPost(t, p, "alice", "hello")
	if id != 2 {
		t.Errorf("id = %d, want 2", id)
	}

	got, err := p.ShowIndividualPost(id)
	if err != nil {
		t.Fatal(err)
	}
	want := "ID: 2\nAccount: alice\nNo. endorsements: 0 | No. Comments: 0\nhello"
	if got != want {
		t.Errorf("ShowIndividualPost =\n%q\nwant\n%q", got, want)
	}
}

func TestCreatePost_Errors(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")

	tests := []struct {
		name    string
		handle  string
		message string
		want    error
	}{
		{"empty message", "alice", "", model.ErrPostInvalid},
		{"long message", "alice", strings.Repeat("x", 101), model.ErrPostInvalid},
		{"unknown account", "ghost", "hello", model.ErrAccountNotFound},
		// message is validated before the account lookup
		{"both invalid", "ghost", "", model.ErrPostInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.CreatePost(tt.handle, tt.message)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := p.CreatePost("alice", strings.Repeat("x", 100)); err != nil {
		t.Errorf("100 character message rejected: %v", err)
	}
}

func TestEndorsePost(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	mustAccount(t, p, "bob")
	post := mustPost(t, p, "alice", "hello")

	e := mustEndorse(t, p, "bob", post)

	if n := len(thread(t, p, post).EndorsementIDs()); n != 1 {
		t.Errorf("endorsements = %d, want 1", n)
	}
	got, _ := p.Post(e)
	if got.Message() != "EP@alice: hello" {
		t.Errorf("message = %q, want %q", got.Message(), "EP@alice: hello")
	}
	if got.Kind() != model.KindEndorsement {
		t.Errorf("kind = %s, want endorsement", got.Kind())
	}
	bob, _ := p.Account("bob")
	if ids := bob.PostIDs(); len(ids) != 1 || ids[0] != e {
		t.Errorf("bob posts = %v, want [%d]", ids, e)
	}
}

func TestEndorsePost_Errors(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	post := mustPost(t, p, "alice", "hello")
	e := mustEndorse(t, p, "alice", post)

	if _, err := p.EndorsePost("alice", e); !errors.Is(err, model.ErrNotActionable) {
		t.Errorf("endorse endorsement: error = %v, want %v", err, model.ErrNotActionable)
	}
	if _, err := p.EndorsePost("alice", 99); !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrPostNotFound)
	}
	if _, err := p.EndorsePost("ghost", post); !errors.Is(err, model.ErrAccountNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrAccountNotFound)
	}
}

func TestCommentPost(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	mustAccount(t, p, "bob")
	post := mustPost(t, p, "alice", "hello")

	c := mustComment(t, p, "bob", post, "hi")
	nested := mustComment(t, p, "alice", c, "hi back")

	if ids := thread(t, p, post).CommentIDs(); len(ids) != 1 || ids[0] != c {
		t.Errorf("post comments = %v, want [%d]", ids, c)
	}
	if ids := thread(t, p, c).CommentIDs(); len(ids) != 1 || ids[0] != nested {
		t.Errorf("comment comments = %v, want [%d]", ids, nested)
	}
	got, _ := p.Post(nested)
	if parent := got.(model.Reply).Parent(); parent != c {
		t.Errorf("parent = %d, want %d", parent, c)
	}
	if got := p.TotalCommentPosts(); got != 2 {
		t.Errorf("comments = %d, want 2", got)
	}
}

func TestCommentPost_Errors(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	post := mustPost(t, p, "alice", "hello")
	e := mustEndorse(t, p, "alice", post)

	tests := []struct {
		name    string
		handle  string
		target  int
		message string
		want    error
	}{
		{"invalid message", "alice", post, "", model.ErrPostInvalid},
		{"unknown account", "ghost", post, "hi", model.ErrAccountNotFound},
		{"unknown post", "alice", 99, "hi", model.ErrPostNotFound},
		{"endorsement target", "alice", e, "hi", model.ErrNotActionable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.CommentPost(tt.handle, tt.target, tt.message)
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

// =============================================================================
// DELETE TESTS
// =============================================================================

func TestDeletePost_OriginalReparentsComments(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	mustAccount(t, p, "bob")
	post := mustPost(t, p, "alice", "hello")
	c := mustComment(t, p, "bob", post, "hi")
	nested := mustComment(t, p, "alice", c, "nested")
	e := mustEndorse(t, p, "bob", post)

	if err := p.DeletePost(post); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}

	if _, err := p.Post(post); !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("post should be gone")
	}
	if _, err := p.Post(e); !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("endorsement should be deleted with its target")
	}
	bob, _ := p.Account("bob")
	for _, id := range bob.PostIDs() {
		if id == e {
			t.Errorf("endorsement still listed on bob")
		}
	}

	got, _ := p.Post(c)
	if parent := got.(model.Reply).Parent(); parent != model.SentinelPostID {
		t.Errorf("comment parent = %d, want %d", parent, model.SentinelPostID)
	}
	if ids := thread(t, p, model.SentinelPostID).CommentIDs(); len(ids) != 1 || ids[0] != c {
		t.Errorf("sentinel comments = %v, want [%d]", ids, c)
	}
	// the subtree moves with the comment
	if ids := thread(t, p, c).CommentIDs(); len(ids) != 1 || ids[0] != nested {
		t.Errorf("comment children = %v, want [%d]", ids, nested)
	}

	tree, err := p.ShowPostChildrenDetails(model.SentinelPostID)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(tree, "| > ID: 3") {
		t.Errorf("sentinel tree does not show comment:\n%s", tree)
	}
}

func TestDeletePost_Comment(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	mustAccount(t, p, "bob")
	post := mustPost(t, p, "alice", "hello")
	c := mustComment(t, p, "bob", post, "hi")
	child := mustComment(t, p, "alice", c, "child")
	e := mustEndorse(t, p, "alice", c)

	if err := p.DeletePost(c); err != nil {
		t.Fatal(err)
	}

	if got := p.TotalCommentPosts(); got != 1 {
		t.Errorf("comments = %d, want 1", got)
	}
	if ids := thread(t, p, post).CommentIDs(); len(ids) != 0 {
		t.Errorf("former parent comments = %v, want none", ids)
	}
	got, err := p.Post(child)
	if err != nil {
		t.Fatalf("child should survive: %v", err)
	}
	if parent := got.(model.Reply).Parent(); parent != model.SentinelPostID {
		t.Errorf("child parent = %d, want %d", parent, model.SentinelPostID)
	}
	if ids := thread(t, p, model.SentinelPostID).CommentIDs(); len(ids) != 1 || ids[0] != child {
		t.Errorf("sentinel comments = %v, want [%d]", ids, child)
	}
	if _, err := p.Post(e); !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("endorsement of deleted comment should be gone")
	}
	bob, _ := p.Account("bob")
	if len(bob.PostIDs()) != 0 {
		t.Errorf("bob posts = %v, want none", bob.PostIDs())
	}
}

func TestDeletePost_Endorsement(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	mustAccount(t, p, "bob")
	post := mustPost(t, p, "alice", "hello")
	e := mustEndorse(t, p, "bob", post)

	if err := p.DeletePost(e); err != nil {
		t.Fatal(err)
	}

	if n := len(thread(t, p, post).EndorsementIDs()); n != 0 {
		t.Errorf("endorsements = %d, want 0", n)
	}
	if got := p.TotalEndorsementPosts(); got != 0 {
		t.Errorf("total endorsements = %d, want 0", got)
	}
	bob, _ := p.Account("bob")
	if len(bob.PostIDs()) != 0 {
		t.Errorf("bob posts = %v, want none", bob.PostIDs())
	}
}

func TestDeletePost_Errors(t *testing.T) {
	p := New()

	if err := p.DeletePost(42); !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrPostNotFound)
	}
	if err := p.DeletePost(model.SentinelPostID); !errors.Is(err, model.ErrNotActionable) {
		t.Errorf("error = %v, want %v", err, model.ErrNotActionable)
	}
}

func TestCreateAccount_CountPlusOneWhenFree(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")      // 2
	bob := mustAccount(t, p, "bob") // 3

	if err := p.RemoveAccountByID(bob); err != nil {
		t.Fatal(err)
	}
	if id := mustAccount(t, p, "dave"); id != 3 {
		t.Errorf("id = %d, want 3", id)
	}
}

func TestDeletePost_IDsNotReused(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	mustPost(t, p, "alice", "one")        // 2
	two := mustPost(t, p, "alice", "two") // 3
	mustPost(t, p, "alice", "three")      // 4

	if err := p.DeletePost(two); err != nil {
		t.Fatal(err)
	}
	if id := mustPost(t, p, "alice", "four"); id != 5 {
		t.Errorf("id = %d, want 5", id)
	}
}

// =============================================================================
// RENDERING TESTS
// =============================================================================

func TestShowIndividualPost_Endorsement(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	mustAccount(t, p, "bob")
	post := mustPost(t, p, "alice", "hello")
	mustComment(t, p, "bob", post, "hi")
	e := mustEndorse(t, p, "bob", post)

	got, err := p.ShowIndividualPost(e)
	if err != nil {
		t.Fatal(err)
	}
	want := "ID: 4\nAccount: bob\nNo. endorsements: 0 | No. Comments: 0\nEP@alice: hello"
	if got != want {
		t.Errorf("got\n%q\nwant\n%q", got, want)
	}

	if _, err := p.ShowIndividualPost(99); !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrPostNotFound)
	}
}

func TestShowPostChildrenDetails(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	mustAccount(t, p, "bob")
	mustAccount(t, p, "carol")

	post := mustPost(t, p, "alice", "hello")   // 2
	c1 := mustComment(t, p, "bob", post, "c1") // 3
	mustComment(t, p, "carol", c1, "c2")       // 4
	mustComment(t, p, "bob", post, "c3")       // 5

	got, err := p.ShowPostChildrenDetails(post)
	if err != nil {
		t.Fatal(err)
	}

	want := "ID: 2\nAccount: alice\nNo. endorsements: 0 | No. Comments: 2\nhello\n" +
		"|\n" +
		"| > ID: 3\n" +
		"    Account: bob\n" +
		"    No. endorsements: 0 | No. Comments: 1\n" +
		"    c1\n" +
		"    |\n" +
		"    | > ID: 4\n" +
		"        Account: carol\n" +
		"        No. endorsements: 0 | No. Comments: 0\n" +
		"        c2\n" +
		"| > ID: 5\n" +
		"    Account: bob\n" +
		"    No. endorsements: 0 | No. Comments: 0\n" +
		"    c3\n"
	if got != want {
		t.Errorf("tree =\n%s\nwant\n%s", got, want)
	}
}

func TestShowPostChildrenDetails_Leaf(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	post := mustPost(t, p, "alice", "hello")

	got, _ := p.ShowPostChildrenDetails(post)
	want, _ := p.ShowIndividualPost(post)
	if got != want {
		t.Errorf("leaf tree = %q, want %q", got, want)
	}
}

func TestShowPostChildrenDetails_Errors(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	post := mustPost(t, p, "alice", "hello")
	e := mustEndorse(t, p, "alice", post)

	if _, err := p.ShowPostChildrenDetails(e); !errors.Is(err, model.ErrNotActionable) {
		t.Errorf("error = %v, want %v", err, model.ErrNotActionable)
	}
	if _, err := p.ShowPostChildrenDetails(99); !errors.Is(err, model.ErrPostNotFound) {
		t.Errorf("error = %v, want %v", err, model.ErrPostNotFound)
	}
}

func TestWalk_StopsEarly(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	post := mustPost(t, p, "alice", "hello")
	mustComment(t, p, "alice", post, "a")
	mustComment(t, p, "alice", post, "b")

	var seen []int
	for _, node := range p.Walk(post) {
		seen = append(seen, node.ID())
		if len(seen) == 2 {
			break
		}
	}
	if len(seen) != 2 {
		t.Errorf("seen = %v, want two nodes", seen)
	}
}

// =============================================================================
// STATISTICS TESTS
// =============================================================================

func TestCounts(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	post := mustPost(t, p, "alice", "hello")
	mustComment(t, p, "alice", post, "a")
	mustEndorse(t, p, "alice", post)

	if got := p.NumberOfAccounts(); got != 2 {
		t.Errorf("accounts = %d, want 2", got)
	}
	if got := p.TotalOriginalPosts(); got != 2 {
		t.Errorf("original = %d, want 2", got)
	}
	if got := p.TotalCommentPosts(); got != 1 {
		t.Errorf("comments = %d, want 1", got)
	}
	if got := p.TotalEndorsementPosts(); got != 1 {
		t.Errorf("endorsements = %d, want 1", got)
	}
}

func TestMostEndorsed(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	mustAccount(t, p, "bob")
	mustAccount(t, p, "carol")

	if got := p.MostEndorsedPost(); got != NoneFound {
		t.Errorf("MostEndorsedPost without endorsements = %d, want %d", got, NoneFound)
	}

	a1 := mustPost(t, p, "alice", "one")
	b1 := mustPost(t, p, "bob", "two")
	b2 := mustComment(t, p, "bob", a1, "three")

	mustEndorse(t, p, "carol", a1)
	mustEndorse(t, p, "carol", b1)
	mustEndorse(t, p, "alice", b1)
	mustEndorse(t, p, "carol", b2)

	if got := p.MostEndorsedPost(); got != b1 {
		t.Errorf("MostEndorsedPost = %d, want %d", got, b1)
	}
	bob, _ := p.Account("bob")
	if got := p.MostEndorsedAccount(); got != bob.ID() {
		t.Errorf("MostEndorsedAccount = %d, want %d", got, bob.ID())
	}
}

func TestMostEndorsed_TieGoesToFirst(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	mustAccount(t, p, "bob")
	a := mustPost(t, p, "alice", "one")
	b := mustPost(t, p, "bob", "two")
	mustEndorse(t, p, "bob", a)
	mustEndorse(t, p, "alice", b)

	if got := p.MostEndorsedPost(); got != a {
		t.Errorf("MostEndorsedPost = %d, want %d", got, a)
	}
	alice, _ := p.Account("alice")
	if got := p.MostEndorsedAccount(); got != alice.ID() {
		t.Errorf("MostEndorsedAccount = %d, want %d", got, alice.ID())
	}
}

func TestErase(t *testing.T) {
	p := New()
	mustAccount(t, p, "alice")
	mustPost(t, p, "alice", "hello")

	p.Erase()

	if p.NumberOfAccounts() != 0 || len(p.Posts()) != 0 {
		t.Errorf("platform not empty after Erase")
	}
	if got := p.MostEndorsedPost(); got != NoneFound {
		t.Errorf("MostEndorsedPost = %d, want %d", got, NoneFound)
	}
	if got := p.MostEndorsedAccount(); got != NoneFound {
		t.Errorf("MostEndorsedAccount = %d, want %d", got, NoneFound)
	}
	if id := mustAccount(t, p, "fresh"); id != 1 {
		t.Errorf("first id after erase = %d, want 1", id)
	}

	p.Reset()
	if err := p.DeletePost(model.SentinelPostID); !errors.Is(err, model.ErrNotActionable) {
		t.Errorf("DeletePost(sentinel) after Reset error = %v, want %v", err, model.ErrNotActionable)
	}
	if _, err := p.Post(model.SentinelPostID); err != nil {
		t.Errorf("Reset should reseed the sentinel: %v", err)
	}
	if p.NumberOfAccounts() != 1 {
		t.Errorf("accounts after Reset = %d, want 1", p.NumberOfAccounts())
	}
}

func TestErase_PostOneIsOrdinary(t *testing.T) {
	p := New()
	p.Erase()

	mustAccount(t, p, "alice")
	mustAccount(t, p, "bob")
	hello := mustPost(t, p, "alice", "hello") // 1
	own := mustPost(t, p, "bob", "mine")       // 2
	reply := mustComment(t, p, "bob", own, "reply")
	if hello != 1 {
		t.Fatalf("first post id after erase = %d, want 1", hello)
	}

	if err := p.DeletePost(own); err != nil {
		t.Fatalf("DeletePost(%d): %v", own, err)
	}
	if got := thread(t, p, hello).CommentIDs(); len(got) != 0 {
		t.Errorf("orphan grafted under post 1: comments = %v", got)
	}
	c, err := p.Post(reply)
	if err != nil {
		t.Fatal(err)
	}
	if parent := c.(model.Reply).Parent(); parent != model.DetachedParentID {
		t.Errorf("orphan parent = %d, want %d", parent, model.DetachedParentID)
	}

	if err := p.DeletePost(hello); err != nil {
		t.Errorf("DeletePost(1) after Erase: %v", err)
	}
	mustPost(t, p, "alice", "again")
	if err := p.RemoveAccount("alice"); err != nil {
		t.Errorf("RemoveAccount(alice) after Erase: %v", err)
	}
	if err := p.DeletePost(reply); err != nil {
		t.Errorf("DeletePost(detached comment): %v", err)
	}
}
