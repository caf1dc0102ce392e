package model

// Kind discriminates the three post variants.
type Kind int

const (
	KindOriginal Kind = iota + 1
	KindComment
	KindEndorsement
)

func (k Kind) String() string {
	switch k {
	case KindOriginal:
		return "original"
	case KindComment:
		return "comment"
	case KindEndorsement:
		return "endorsement"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "original":
		return KindOriginal, true
	case "comment":
		return KindComment, true
	case "endorsement":
		return KindEndorsement, true
	}
	return 0, false
}

// Sentinel content seeded into every fresh platform.
const (
	SentinelPostID        = 1
	AdminAccountID        = 1
	AdminHandle           = "admin"
	RemovedContentMessage = "The original content was removed from the system and is no longer available."

	// DetachedParentID is the parent of a comment orphaned while the
	// platform has no sentinel post.
	DetachedParentID = 0
)

// Post is the capability set shared by every variant. Authors and parents are
// referenced by identifier and resolved through the platform index.
type Post interface {
	ID() int
	Message() string
	AuthorID() int
	Kind() Kind
}

// Thread is implemented by posts that can carry comments and endorsements
// (OriginalPost and Comment). The id slices are views over the platform index
// and are kept in insertion order.
type Thread interface {
	Post
	CommentIDs() []int
	EndorsementIDs() []int
	AddComment(id int)
	RemoveComment(id int) bool
	AddEndorsement(id int)
	RemoveEndorsement(id int) bool
}

// Reply is implemented by posts that point at another post (Comment and
// Endorsement).
type Reply interface {
	Post
	Parent() int
}

// Endorsable reports whether p may be endorsed or commented on.
func Endorsable(p Post) bool {
	_, ok := p.(Thread)
	return ok
}

type base struct {
	id       int
	message  string
	authorID int
}

func (b *base) ID() int         { return b.id }
func (b *base) Message() string { return b.message }
func (b *base) AuthorID() int   { return b.authorID }

// children holds the ordered comment and endorsement ids of a thread node.
type children struct {
	commentIDs     []int
	endorsementIDs []int
}

func (c *children) CommentIDs() []int     { return c.commentIDs }
func (c *children) EndorsementIDs() []int { return c.endorsementIDs }

func (c *children) AddComment(id int) {
	c.commentIDs = append(c.commentIDs, id)
}

func (c *children) AddEndorsement(id int) {
	c.endorsementIDs = append(c.endorsementIDs, id)
}

func (c *children) RemoveComment(id int) bool {
	var ok bool
	c.commentIDs, ok = removeID(c.commentIDs, id)
	return ok
}

func (c *children) RemoveEndorsement(id int) bool {
	var ok bool
	c.endorsementIDs, ok = removeID(c.endorsementIDs, id)
	return ok
}

func removeID(ids []int, id int) ([]int, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...), true
		}
	}
	return ids, false
}

// OriginalPost is the root of a post tree.
type OriginalPost struct {
	base
	children
}

func NewOriginalPost(id, authorID int, message string) *OriginalPost {
	return &OriginalPost{base: base{id: id, message: message, authorID: authorID}}
}

func (p *OriginalPost) Kind() Kind { return KindOriginal }

// Post limits
const (
	MaxMessageLength = 100
	MaxHandleLength  = 30
)
