package platform

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"socialmedia/internal/model"
)

// validateHandle checks the handle format only. Uniqueness needs the
// platform and is checked by the callers.
func validateHandle(handle string) error {
	if handle == "" {
		return fmt.Errorf("handle is empty: %w", model.ErrHandleInvalid)
	}
	if utf8.RuneCountInString(handle) > model.MaxHandleLength {
		return fmt.Errorf("handle longer than %d characters: %w", model.MaxHandleLength, model.ErrHandleInvalid)
	}
	if strings.ContainsFunc(handle, unicode.IsSpace) {
		return fmt.Errorf("handle contains whitespace: %w", model.ErrHandleInvalid)
	}
	return nil
}

func (p *Platform) handleTaken(handle string) bool {
	_, err := p.Account(handle)
	return err == nil
}

// CreateAccount registers a new account and returns its id. The description
// is optional and defaults to empty.
func (p *Platform) CreateAccount(handle string, description ...string) (int, error) {
	if err := validateHandle(handle); err != nil {
		return 0, err
	}
	if p.handleTaken(handle) {
		return 0, fmt.Errorf("create account %q: %w", handle, model.ErrHandleConflict)
	}

	desc := ""
	if len(description) > 0 {
		desc = description[0]
	}

	a := model.NewAccount(p.nextAccountID(), handle, desc)
	p.addAccount(a)
	return a.ID(), nil
}

// RemoveAccount deletes the account with the given handle and every post it
// authored.
func (p *Platform) RemoveAccount(handle string) error {
	a, err := p.Account(handle)
	if err != nil {
		return fmt.Errorf("remove account %q: %w", handle, err)
	}
	return p.removeAccount(a)
}

// RemoveAccountByID is RemoveAccount keyed by account id.
func (p *Platform) RemoveAccountByID(id int) error {
	a, err := p.AccountByID(id)
	if err != nil {
		return fmt.Errorf("remove account %d: %w", id, err)
	}
	return p.removeAccount(a)
}

func (p *Platform) removeAccount(a *model.Account) error {
	if slices.ContainsFunc(a.PostIDs(), p.isSentinel) {
		return fmt.Errorf("remove account %q: owns the sentinel post: %w", a.Handle(), model.ErrNotActionable)
	}

	// Cascades below edit the account's own post list, so walk a copy. A
	// post may already be gone when an earlier deletion in this loop took it
	// (an endorsement of the account's own post).
	for _, id := range slices.Clone(a.PostIDs()) {
		if _, ok := p.posts[id]; !ok {
			continue
		}
		if err := p.DeletePost(id); err != nil {
			log.Printf("[Platform] RemoveAccount: skipping post=%d account=%d err=%v", id, a.ID(), err)
		}
	}

	p.dropAccount(a.ID())
	log.Printf("[Platform] RemoveAccount OK: account=%d handle=%s", a.ID(), a.Handle())
	return nil
}

// ChangeAccountHandle renames an account. newHandle must be valid and unused.
func (p *Platform) ChangeAccountHandle(oldHandle, newHandle string) error {
	if err := validateHandle(newHandle); err != nil {
		return err
	}
	if p.handleTaken(newHandle) {
		return fmt.Errorf("change handle to %q: %w", newHandle, model.ErrHandleConflict)
	}

	a, err := p.Account(oldHandle)
	if err != nil {
		return fmt.Errorf("change handle %q: %w", oldHandle, err)
	}
	a.SetHandle(newHandle)
	return nil
}

// UpdateAccountDescription overwrites an account's description.
func (p *Platform) UpdateAccountDescription(handle, description string) error {
	a, err := p.Account(handle)
	if err != nil {
		return fmt.Errorf("update description %q: %w", handle, err)
	}
	a.SetDescription(description)
	return nil
}

// ShowAccount renders the account summary.
func (p *Platform) ShowAccount(handle string) (string, error) {
	a, err := p.Account(handle)
	if err != nil {
		return "", fmt.Errorf("show account %q: %w", handle, err)
	}
	return formatAccount(a, p.accountEndorsements(a)), nil
}

// AccountEndorsementCount sums the direct endorsements of every post the
// account authored.
func (p *Platform) AccountEndorsementCount(handle string) (int, error) {
	a, err := p.Account(handle)
	if err != nil {
		return 0, err
	}
	return p.accountEndorsements(a), nil
}

func (p *Platform) accountEndorsements(a *model.Account) int {
	total := 0
	for _, id := range a.PostIDs() {
		if t, ok := p.thread(id); ok {
			total += len(t.EndorsementIDs())
		}
	}
	return total
}
