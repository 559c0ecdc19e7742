package domain

import "time"

const (
	VoteUp   = "UPVOTE"
	VoteDown = "DOWNVOTE"
)

// Reply is a single answer inside a discussion thread.
type Reply struct {
	AuthorID   string    `json:"author_id" bson:"author_id"`
	AuthorName string    `json:"author_name" bson:"author_name"`
	Content    string    `json:"content" bson:"content"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// Discussion is a forum thread.
type Discussion struct {
	ID         string            `json:"id" bson:"_id,omitempty"`
	Title      string            `json:"title" bson:"title"`
	Content    string            `json:"content" bson:"content"`
	Category   string            `json:"category" bson:"category"`
	AuthorID   string            `json:"author_id" bson:"author_id"`
	AuthorName string            `json:"author_name" bson:"author_name"`
	Replies    []Reply           `json:"replies" bson:"replies"`
	Votes      map[string]string `json:"-" bson:"votes,omitempty"`
	Upvotes    int               `json:"upvotes" bson:"upvotes"`
	Downvotes  int               `json:"downvotes" bson:"downvotes"`
	CreatedAt  time.Time         `json:"created_at" bson:"created_at"`
}
