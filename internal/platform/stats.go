package platform

import "socialmedia/internal/model"

// NoneFound is returned by the most-endorsed queries when no post or account
// has any endorsement, including on an empty platform.
const NoneFound = -1

func (p *Platform) NumberOfAccounts() int {
	return len(p.accountOrder)
}

func (p *Platform) TotalOriginalPosts() int {
	return p.countKind(model.KindOriginal)
}

func (p *Platform) TotalEndorsementPosts() int {
	return p.countKind(model.KindEndorsement)
}

func (p *Platform) TotalCommentPosts() int {
	return p.countKind(model.KindComment)
}

func (p *Platform) countKind(k model.Kind) int {
	n := 0
	for _, id := range p.postOrder {
		if p.posts[id].Kind() == k {
			n++
		}
	}
	return n
}

// EndorsementCount returns the number of endorsements directly targeting the
// post. Endorsements themselves always report zero.
func (p *Platform) EndorsementCount(postID int) (int, error) {
	post, err := p.Post(postID)
	if err != nil {
		return 0, err
	}
	if t, ok := post.(model.Thread); ok {
		return len(t.EndorsementIDs()), nil
	}
	return 0, nil
}

// EndorsementCounts maps every endorsable post to its direct endorsement count.
func (p *Platform) EndorsementCounts() map[int]int {
	counts := make(map[int]int)
	for _, id := range p.postOrder {
		if t, ok := p.posts[id].(model.Thread); ok {
			counts[id] = len(t.EndorsementIDs())
		}
	}
	return counts
}

// MostEndorsedPost returns the id of the post with the most direct
// endorsements. Ties go to the earliest post.
func (p *Platform) MostEndorsedPost() int {
	best, bestCount := NoneFound, 0
	for _, id := range p.postOrder {
		t, ok := p.posts[id].(model.Thread)
		if !ok {
			continue
		}
		if n := len(t.EndorsementIDs()); n > bestCount {
			best, bestCount = id, n
		}
	}
	return best
}

// MostEndorsedAccount returns the id of the account whose posts collected
// the most endorsements. Ties go to the earliest account.
func (p *Platform) MostEndorsedAccount() int {
	best, bestCount := NoneFound, 0
	for _, id := range p.accountOrder {
		if n := p.accountEndorsements(p.accounts[id]); n > bestCount {
			best, bestCount = id, n
		}
	}
	return best
}
