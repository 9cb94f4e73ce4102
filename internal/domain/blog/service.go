package blog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"consultancy/internal/backend"
	"consultancy/internal/pkg/validator"
)

const (
	relatedLimit   = 3
	metaTitleLimit = 60
)

type Service struct {
	repo     Repository
	renderer *Renderer
	log      *zap.Logger
	now      func() time.Time
}

func NewService(repo Repository, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, renderer: NewRenderer(), log: log, now: time.Now}
}

// Create stores a new post authored by author.
func (s *Service) Create(ctx context.Context, author backend.Identity, in PostInput) (*Post, error) {
	slug, err := s.check(&in)
	if err != nil {
		return nil, err
	}

	p := &Post{
		Title:              strings.TrimSpace(in.Title),
		Slug:               slug,
		Content:            in.Content,
		Excerpt:            optional(in.Excerpt),
		FeaturedImageURL:   optional(in.FeaturedImageURL),
		Status:             statusOf(in.Status),
		AuthorID:           author.ID,
		AuthorName:         authorName(author),
		Tags:               normalizeTags(in.Tags),
		Category:           optional(in.Category),
		ReadingTimeMinutes: ReadingTime(in.Content),
		IsFeatured:         in.IsFeatured,
	}
	p.MetaTitle, p.MetaDescription = meta(in)
	if p.Status == StatusPublished {
		now := s.now().UTC()
		p.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, ErrSlugTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.log.Info("blog post created",
		zap.String("id", p.ID),
		zap.String("slug", p.Slug),
		zap.String("status", string(p.Status)),
	)
	return p, nil
}

// Update replaces the editable fields of a post. published_at is stamped the
// first time the post is published and kept afterwards.
func (s *Service) Update(ctx context.Context, id string, in PostInput) (*Post, error) {
	slug, err := s.check(&in)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	metaTitle, metaDesc := meta(in)
	status := statusOf(in.Status)
	patch := map[string]any{
		"title":                strings.TrimSpace(in.Title),
		"slug":                 slug,
		"content":              in.Content,
		"excerpt":              optional(in.Excerpt),
		"featured_image_url":   optional(in.FeaturedImageURL),
		"status":               string(status),
		"meta_title":           metaTitle,
		"meta_description":     metaDesc,
		"tags":                 normalizeTags(in.Tags),
		"category":             optional(in.Category),
		"reading_time_minutes": ReadingTime(in.Content),
		"is_featured":          in.IsFeatured,
		"updated_at":           s.now().UTC(),
	}
	if status == StatusPublished && current.PublishedAt == nil {
		patch["published_at"] = s.now().UTC()
	}

	if err := s.repo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, ErrSlugTaken) || errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	s.log.Info("blog post updated", zap.String("id", id), zap.String("status", string(status)))
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("blog post deleted", zap.String("id", id))
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Post, error) {
	return s.repo.GetByID(ctx, id)
}

// ListAll returns every post, newest first, for the editor.
func (s *Service) ListAll(ctx context.Context) ([]Post, error) {
	return s.repo.List(ctx, backend.Filter{Order: "created_at", Desc: true})
}

// ListPublished returns published posts, most recently published first.
func (s *Service) ListPublished(ctx context.Context, f PublicFilter) ([]Post, error) {
	filter := backend.Filter{
		Eq:    map[string]any{"status": string(StatusPublished)},
		Order: "published_at",
		Desc:  true,
	}
	if c := strings.TrimSpace(f.Category); c != "" && !strings.EqualFold(c, "all") {
		filter.Eq["category"] = c
	}
	posts, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return posts, nil
	}
	out := posts[:0]
	for _, p := range posts {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			(p.Excerpt != nil && strings.Contains(strings.ToLower(*p.Excerpt), q)) {
			out = append(out, p)
		}
	}
	return out, nil
}

// GetPublished returns a published post by slug with rendered HTML and up
// to three other published posts.
func (s *Service) GetPublished(ctx context.Context, slug string) (*PublishedPost, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p.Status != StatusPublished {
		return nil, ErrNotFound
	}

	html, err := s.renderer.Render(p.Content)
	if err != nil {
		return nil, fmt.Errorf("render post %s: %w", p.Slug, err)
	}

	related, err := s.repo.List(ctx, backend.Filter{
		Eq:    map[string]any{"status": string(StatusPublished)},
		Neq:   map[string]any{"id": p.ID},
		Order: "published_at",
		Desc:  true,
		Limit: relatedLimit,
	})
	if err != nil {
		// a post without related links is still worth showing
		s.log.Warn("related posts lookup failed", zap.String("slug", slug), zap.Error(err))
		related = nil
	}
	if related == nil {
		related = []Post{}
	}
	return &PublishedPost{Post: p, HTML: html, Related: related}, nil
}

func (s *Service) check(in *PostInput) (string, error) {
	if fields := validator.Validate(in); fields != nil {
		return "", &ValidationError{Fields: fields}
	}
	if strings.TrimSpace(in.Title) == "" {
		return "", &ValidationError{Fields: map[string]string{"title": "required"}}
	}
	if in.Category != "" && !slices.Contains(Categories, in.Category) {
		return "", ErrUnknownCategory
	}
	src := in.Slug
	if strings.TrimSpace(src) == "" {
		src = in.Title
	}
	slug := Slugify(src)
	if slug == "" {
		return "", ErrInvalidSlug
	}
	return slug, nil
}

func meta(in PostInput) (*string, *string) {
	title := strings.TrimSpace(in.MetaTitle)
	if title == "" {
		title = truncate(strings.TrimSpace(in.Title), metaTitleLimit)
	}
	desc := strings.TrimSpace(in.MetaDescription)
	if desc == "" {
		desc = strings.TrimSpace(in.Excerpt)
	}
	return &title, optional(desc)
}

func statusOf(s string) Status {
	if s == "" {
		return StatusDraft
	}
	return Status(s)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func authorName(id backend.Identity) string {
	if id.Email == "" {
		return "Admin"
	}
	return id.Email
}
