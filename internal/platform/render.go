package platform

import (
	"fmt"
	"iter"
	"strings"

	"socialmedia/internal/model"
)

const indentWidth = 4

func formatAccount(a *model.Account, endorsements int) string {
	return fmt.Sprintf("ID: %d\nHandle: %s\nDescription: %s\nPost Count: %d\nEndorse Count: %d\n",
		a.ID(), a.Handle(), a.Description(), len(a.PostIDs()), endorsements)
}

func (p *Platform) formatPost(post model.Post) string {
	var endorsements, comments int
	if t, ok := post.(model.Thread); ok {
		endorsements = len(t.EndorsementIDs())
		comments = len(t.CommentIDs())
	}
	return fmt.Sprintf("ID: %d\nAccount: %s\nNo. endorsements: %d | No. Comments: %d\n%s",
		post.ID(), p.authorHandle(post), endorsements, comments, post.Message())
}

// ShowIndividualPost renders a single post without its descendants.
func (p *Platform) ShowIndividualPost(id int) (string, error) {
	post, err := p.Post(id)
	if err != nil {
		return "", fmt.Errorf("show post %d: %w", id, err)
	}
	return p.formatPost(post), nil
}

// Walk yields the comment tree below rootID depth first, children in
// insertion order. The root itself is yielded at depth 0. Walk yields
// nothing when rootID is not a live thread node.
func (p *Platform) Walk(rootID int) iter.Seq2[int, model.Post] {
	return func(yield func(int, model.Post) bool) {
		root, ok := p.thread(rootID)
		if !ok {
			return
		}
		p.walk(root, 0, yield)
	}
}

func (p *Platform) walk(t model.Thread, depth int, yield func(int, model.Post) bool) bool {
	if !yield(depth, t) {
		return false
	}
	for _, id := range t.CommentIDs() {
		child, ok := p.thread(id)
		if !ok {
			continue
		}
		if !p.walk(child, depth+1, yield) {
			return false
		}
	}
	return true
}

// ShowPostChildrenDetails renders the post followed by every descendant
// comment, indented by depth.
func (p *Platform) ShowPostChildrenDetails(id int) (string, error) {
	post, err := p.Post(id)
	if err != nil {
		return "", fmt.Errorf("show post tree %d: %w", id, err)
	}
	if !model.Endorsable(post) {
		return "", fmt.Errorf("show post tree %d: %s has no children: %w", id, post.Kind(), model.ErrNotActionable)
	}

	var b strings.Builder
	for depth, node := range p.Walk(id) {
		hasChildren := len(node.(model.Thread).CommentIDs()) > 0
		if depth == 0 {
			b.WriteString(p.formatPost(node))
			if hasChildren {
				b.WriteString("\n|\n")
			}
			continue
		}

		b.WriteString(indentNode(p.formatPost(node), depth))
		if hasChildren {
			b.WriteString(strings.Repeat(" ", depth*indentWidth))
			b.WriteString("|\n")
		}
	}
	return b.String(), nil
}

// indentNode shifts every line of text right by depth levels, terminates each
// line with a newline and marks the first "ID" line with a branch connector
// one level to the left.
func indentNode(text string, depth int) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) > 1 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	pad := strings.Repeat(" ", depth*indentWidth)
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(pad)
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.Replace(b.String(), "    ID", "| > ID", 1)
}
