package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/crackit360/practice-platform/internal/core/domain"
	"github.com/crackit360/practice-platform/internal/core/ports"
	"github.com/crackit360/practice-platform/internal/security"
)

const (
	minTitleLen   = 5
	maxTitleLen   = 200
	minContentLen = 10

	defaultDiscussionPageSize = 20
	maxDiscussionPageSize     = 100
)

// discussionListFields is the allow-list for client-supplied list filters.
var discussionListFields = []string{"category", "author_id"}

// DiscussionService implements the forum use cases.
type DiscussionService struct {
	repo ports.DiscussionRepository
	log  zerolog.Logger
}

func NewDiscussionService(repo ports.DiscussionRepository, log zerolog.Logger) *DiscussionService {
	return &DiscussionService{repo: repo, log: log}
}

func (s *DiscussionService) Create(ctx context.Context, in ports.CreateDiscussionInput) (*domain.Discussion, error) {
	if len(in.Title) < minTitleLen || len(in.Title) > maxTitleLen {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Content) < minContentLen || in.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := s.rejectSuspiciousLinks(in.Content, in.Author.ID); err != nil {
		return nil, err
	}

	d := &domain.Discussion{
		Title:      in.Title,
		Content:    in.Content,
		Category:   in.Category,
		AuthorID:   in.Author.ID,
		AuthorName: in.Author.Name,
		Replies:    []domain.Reply{},
		CreatedAt:  time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, d)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("discussion_id", created.ID).Str("category", created.Category).Msg("discussion created")
	return created, nil
}

func (s *DiscussionService) List(ctx context.Context, in ports.ListDiscussionsInput) (*ports.DiscussionPage, error) {
	// Client filters never reach the database unsanitized.
	filter, err := security.BuildFilter(in.Filter, discussionListFields)
	if err != nil {
		return nil, err
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultDiscussionPageSize
	}
	if limit > maxDiscussionPageSize {
		limit = maxDiscussionPageSize
	}

	items, total, err := s.repo.List(ctx, map[string]any(filter), page, limit)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.DiscussionPage{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *DiscussionService) Get(ctx context.Context, id string) (*domain.Discussion, error) {
	if _, err := security.SafeObjectID(id); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *DiscussionService) AddReply(ctx context.Context, id string, author domain.CurrentUser, content string) (*domain.Discussion, error) {
	if content == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := security.SafeObjectID(id); err != nil {
		return nil, err
	}
	if err := s.rejectSuspiciousLinks(content, author.ID); err != nil {
		return nil, err
	}

	return s.repo.AddReply(ctx, id, domain.Reply{
		AuthorID:   author.ID,
		AuthorName: author.Name,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	})
}

// rejectSuspiciousLinks blocks forum content carrying phishing-shaped URLs
// (credential separators, doubled scheme separators, excessive length).
func (s *DiscussionService) rejectSuspiciousLinks(content, authorID string) error {
	scan := security.DetectPhishingLinks(content)
	if scan.Clean() {
		return nil
	}
	s.log.Warn().
		Str("author_id", authorID).
		Int("urls_found", scan.Found).
		Int("urls_suspicious", len(scan.Suspicious)).
		Msg("suspicious links rejected")
	return domain.ErrSuspiciousContent
}

func (s *DiscussionService) Vote(ctx context.Context, id, userID, vote string) (*domain.Discussion, error) {
	if vote != domain.VoteUp && vote != domain.VoteDown {
		return nil, domain.ErrInvalidInput
	}
	if _, err := security.SafeObjectID(id); err != nil {
		return nil, err
	}
	return s.repo.SetVote(ctx, id, userID, vote)
}
