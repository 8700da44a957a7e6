// Package services – PostService
//
// This file implements the PostService, which manages the lifecycle of
// stories. It validates and normalizes titles, derives unique URL slugs,
// enforces draft visibility, and coordinates repository operations for
// creating, fetching, listing (with pagination), and searching posts.
//
// Service-level errors (e.g., ErrPostNotFound) are returned for predictable
// cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/quillhq/go-story-backend/internal/domain"
	"github.com/quillhq/go-story-backend/internal/repo"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// PostService provides story-level operations: creation with slug derivation,
// slug lookup, published listings, author listings, and search.
type PostService struct {
	// DB is the injected store handle.
	DB *gorm.DB

	// TitleMaxLen caps stored titles by rune length.
	TitleMaxLen int
	// SlugMaxLen caps the base slug (before any numeric suffix).
	SlugMaxLen int
	// SearchLimit caps search results; defaults to 10.
	SearchLimit int
}

// NewPostService constructs a PostService with sane defaults.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		DB:          db,
		TitleMaxLen: 255,
		SlugMaxLen:  80,
		SearchLimit: 10,
	}
}

// Create inserts a new story owned by userID. The slug is derived from the
// title; on collision a numeric suffix is appended ("my-story-2", "-3", …)
// until the unique index accepts it.
func (s *PostService) Create(ctx context.Context, userID, title, content, coverImage string, publish bool) (*domain.Post, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthorized
	}
	title = normalizeTitle(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	title = s.clip(title)

	base := s.slugify(title)
	slug := base
	// The unique index is the arbiter; the counter loop only picks the next
	// candidate after a collision.
	for attempt := 2; ; attempt++ {
		p, err := repo.CreatePost(ctx, s.DB, userID, title, content, slug, coverImage, publish)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, repo.ErrDuplicate) {
			return nil, err
		}
		slug = fmt.Sprintf("%s-%d", base, attempt)
	}
}

// GetBySlug fetches a story by slug. Drafts are only visible to their author;
// everyone else gets ErrPostNotFound rather than a hint that the draft exists.
func (s *PostService) GetBySlug(ctx context.Context, viewerID, slug string) (*domain.Post, error) {
	p, err := repo.GetPostBySlug(ctx, s.DB, slug)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if !p.Published && p.UserID != viewerID {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// ListPage returns a page of published stories, newest first, plus the total
// count. It applies defaults for invalid page/pageSize.
func (s *PostService) ListPage(ctx context.Context, page, pageSize int) ([]domain.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountPublished(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Post{}, 0, nil
	}

	items, err := repo.ListPublishedPage(ctx, s.DB, offset, pageSize)
	return items, total, err
}

// ListByAuthor returns userID's stories for profile pages. Drafts are
// included only when the viewer is the author.
func (s *PostService) ListByAuthor(ctx context.Context, viewerID, userID string) ([]domain.Post, error) {
	return repo.ListPostsByAuthor(ctx, s.DB, userID, viewerID == userID)
}

// Search returns published stories matching the query (case-insensitive
// substring over title and content), newest first, capped at SearchLimit.
// A blank query returns an empty result rather than everything.
func (s *PostService) Search(ctx context.Context, query string) ([]domain.Post, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Post{}, nil
	}
	limit := s.SearchLimit
	if limit <= 0 {
		limit = 10
	}
	return repo.SearchPosts(ctx, s.DB, query, limit)
}

// clip truncates a title to the configured maximum rune length.
func (s *PostService) clip(title string) string {
	if s.TitleMaxLen > 0 && utf8.RuneCountInString(title) > s.TitleMaxLen {
		return string([]rune(title)[:s.TitleMaxLen])
	}
	return title
}

// slugify lowercases, strips diacritics, and collapses every non-alphanumeric
// run into a single hyphen. An untitleable input falls back to "story".
func (s *PostService) slugify(title string) string {
	folded, _, err := transform.String(asciiFold, title)
	if err != nil {
		folded = title
	}
	slug := strings.ToLower(folded)
	slug = nonSlugRE.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if s.SlugMaxLen > 0 && len(slug) > s.SlugMaxLen {
		slug = strings.Trim(slug[:s.SlugMaxLen], "-")
	}
	if slug == "" {
		slug = "story"
	}
	return slug
}

// asciiFold decomposes to NFD and drops combining marks ("Café" → "Cafe").
var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// nonSlugRE collapses characters outside [a-z0-9] into hyphens.
var nonSlugRE = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeTitle trims whitespace and collapses multiple spaces to one.
func normalizeTitle(s string) string {
	s = whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
	return s
}

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)
