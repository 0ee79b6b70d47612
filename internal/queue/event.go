// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

import "time"

// ActivityQueueName is the durable queue carrying recipe activity events.
const ActivityQueueName = "recipe.activity"

// Event types published by the page handlers.
const (
	EventRecipeCreated = "recipe_created"
	EventCommentAdded  = "comment_added"
	EventUpvoteToggled = "upvote_toggled"
)

// RecipeActivityEvent is published after the backend accepts a mutation.
// It carries enough information for downstream consumers to log or trigger
// notifications without calling the recipe backend again.
type RecipeActivityEvent struct {
	Type       string    `json:"type"`
	RecipeID   int64     `json:"recipe_id,omitempty"`
	Title      string    `json:"title,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	Comment    string    `json:"comment,omitempty"`
	Upvotes    int       `json:"upvotes,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
