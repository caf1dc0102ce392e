package model

// Account is a named identity. Posts are referenced by id in authoring order.
type Account struct {
	id          int
	handle      string
	description string
	postIDs     []int
}

func NewAccount(id int, handle, description string) *Account {
	return &Account{id: id, handle: handle, description: description}
}

func (a *Account) ID() int                    { return a.id }
func (a *Account) Handle() string             { return a.handle }
func (a *Account) SetHandle(h string)         { a.handle = h }
func (a *Account) Description() string        { return a.description }
func (a *Account) SetDescription(desc string) { a.description = desc }
func (a *Account) PostIDs() []int             { return a.postIDs }

func (a *Account) AddPost(id int) {
	a.postIDs = append(a.postIDs, id)
}

// RemovePost drops id from the account's posts, reporting whether it was there.
func (a *Account) RemovePost(id int) bool {
	var ok bool
	a.postIDs, ok = removeID(a.postIDs, id)
	return ok
}
