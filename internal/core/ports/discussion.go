package ports

import (
	"context"

	"github.com/crackit360/practice-platform/internal/core/domain"
)

// CreateDiscussionInput carries a new forum thread.
type CreateDiscussionInput struct {
	Author   domain.CurrentUser
	Title    string
	Content  string
	Category string
}

// ListDiscussionsInput carries list parameters. Filter is the raw
// client-supplied mapping; the service sanitizes it before querying.
type ListDiscussionsInput struct {
	Filter map[string]any
	Page   int
	Limit  int
}

// DiscussionPage is one page of threads plus the total count.
type DiscussionPage struct {
	Items      []domain.Discussion
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// DiscussionService defines forum use cases.
type DiscussionService interface {
	Create(ctx context.Context, in CreateDiscussionInput) (*domain.Discussion, error)
	List(ctx context.Context, in ListDiscussionsInput) (*DiscussionPage, error)
	Get(ctx context.Context, id string) (*domain.Discussion, error)
	AddReply(ctx context.Context, id string, author domain.CurrentUser, content string) (*domain.Discussion, error)
	// Vote records UPVOTE/DOWNVOTE; a user's second vote replaces the first.
	Vote(ctx context.Context, id, userID, vote string) (*domain.Discussion, error)
}

// DiscussionRepository defines forum persistence. The filter passed to List
// has already been reduced to allow-listed fields.
type DiscussionRepository interface {
	Create(ctx context.Context, d *domain.Discussion) (*domain.Discussion, error)
	FindByID(ctx context.Context, id string) (*domain.Discussion, error)
	List(ctx context.Context, filter map[string]any, page, limit int) ([]domain.Discussion, int64, error)
	AddReply(ctx context.Context, id string, reply domain.Reply) (*domain.Discussion, error)
	SetVote(ctx context.Context, id, userID, vote string) (*domain.Discussion, error)
}
