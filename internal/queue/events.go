package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event types on the platform stream
const (
	EventAccountCreated = "account_created"
	EventAccountRemoved = "account_removed"
	EventPostCreated    = "post_created"
	EventPostCommented  = "post_commented"
	EventPostEndorsed   = "post_endorsed"
	EventPostDeleted    = "post_deleted"
	EventPlatformErased = "platform_erased"
	EventPlatformLoaded = "platform_loaded"
)

const (
	StreamPlatform = "stream:platform"

	ConsumerGroupLeaderboard = "leaderboard_workers"
)

// PlatformEvent is published after every successful mutation.
type PlatformEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`

	// PostID is the post that was created or deleted
	PostID int `json:"post_id,omitempty"`
	// TargetID is the post that was commented on or endorsed
	TargetID int `json:"target_id,omitempty"`

	AccountID int    `json:"account_id,omitempty"`
	Handle    string `json:"handle,omitempty"`
}

func newEvent(eventType string) PlatformEvent {
	return PlatformEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().Unix(),
	}
}

func NewAccountCreatedEvent(accountID int, handle string) PlatformEvent {
	e := newEvent(EventAccountCreated)
	e.AccountID = accountID
	e.Handle = handle
	return e
}

func NewAccountRemovedEvent(accountID int, handle string) PlatformEvent {
	e := newEvent(EventAccountRemoved)
	e.AccountID = accountID
	e.Handle = handle
	return e
}

func NewPostCreatedEvent(postID, authorID int) PlatformEvent {
	e := newEvent(EventPostCreated)
	e.PostID = postID
	e.AccountID = authorID
	return e
}

// NewPostCommentedEvent records a new comment (postID) on targetID.
func NewPostCommentedEvent(postID, targetID, authorID int) PlatformEvent {
	e := newEvent(EventPostCommented)
	e.PostID = postID
	e.TargetID = targetID
	e.AccountID = authorID
	return e
}

// NewPostEndorsedEvent records a new endorsement (postID) of targetID.
func NewPostEndorsedEvent(postID, targetID, authorID int) PlatformEvent {
	e := newEvent(EventPostEndorsed)
	e.PostID = postID
	e.TargetID = targetID
	e.AccountID = authorID
	return e
}

func NewPostDeletedEvent(postID int) PlatformEvent {
	e := newEvent(EventPostDeleted)
	e.PostID = postID
	return e
}

func NewPlatformErasedEvent() PlatformEvent {
	return newEvent(EventPlatformErased)
}

func NewPlatformLoadedEvent() PlatformEvent {
	return newEvent(EventPlatformLoaded)
}

// ToMap converts the event to stream field-value pairs. The full event is
// kept as JSON in "data".
func (e PlatformEvent) ToMap() (map[string]interface{}, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return map[string]interface{}{
		"type": e.Type,
		"data": string(data),
	}, nil
}

// ParsePlatformEvent parses an event from stream message values.
func ParsePlatformEvent(values map[string]interface{}) (PlatformEvent, error) {
	data, ok := values["data"].(string)
	if !ok {
		return PlatformEvent{}, fmt.Errorf("missing or invalid 'data' field")
	}

	var event PlatformEvent
	if err := json.Unmarshal([]byte(data), &event); err != nil {
		return PlatformEvent{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return event, nil
}
