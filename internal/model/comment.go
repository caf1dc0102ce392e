package model

// Comment is a non-root tree node. Its parent pointer moves to the sentinel
// post when the post it replied to is deleted.
type Comment struct {
	base
	children
	parentID int
}

func NewComment(id, authorID, parentID int, message string) *Comment {
	return &Comment{
		base:     base{id: id, message: message, authorID: authorID},
		parentID: parentID,
	}
}

func (c *Comment) Kind() Kind { return KindComment }

func (c *Comment) Parent() int { return c.parentID }

// SetParent re-points the comment. Only used when re-parenting orphans.
func (c *Comment) SetParent(id int) { c.parentID = id }

// Endorsement is always a leaf. Its target never changes after construction.
type Endorsement struct {
	base
	parentID int
}

func NewEndorsement(id, authorID, parentID int, message string) *Endorsement {
	return &Endorsement{
		base:     base{id: id, message: message, authorID: authorID},
		parentID: parentID,
	}
}

func (e *Endorsement) Kind() Kind { return KindEndorsement }

func (e *Endorsement) Parent() int { return e.parentID }
