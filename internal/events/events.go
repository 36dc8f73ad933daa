package events

import "time"

const (
	ReviewCreated  = "review.created"
	ReviewUpdated  = "review.updated"
	ReviewDeleted  = "review.deleted"
	CommentCreated = "comment.created"
	CommentDeleted = "comment.deleted"
)

// Event is broadcast to websocket subscribers after a mutation commits.
type Event struct {
	Type      string    `json:"type"`
	ActorID   string    `json:"actor_id"`
	ItemID    string    `json:"item_id,omitempty"`
	ReviewID  string    `json:"review_id,omitempty"`
	CommentID string    `json:"comment_id,omitempty"`
	At        time.Time `json:"at"`
}
