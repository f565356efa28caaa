package model

import "github.com/google/uuid"

// FeedAction enumerates post mutations pushed to subscribers.
type FeedAction string

const (
	FeedActionCreate FeedAction = "create"
	FeedActionUpdate FeedAction = "update"
	FeedActionDelete FeedAction = "delete"
)

// FeedEvent is an ephemeral notification of a committed post mutation.
// Create and update carry the post snapshot; delete carries only the id.
type FeedEvent struct {
	Action FeedAction `json:"action"`
	Post   *Post      `json:"post,omitempty"`
	PostID uuid.UUID  `json:"postId,omitzero"`
}
