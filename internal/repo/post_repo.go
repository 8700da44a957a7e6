// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Post model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a post is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - A slug collision surfaces as ErrDuplicate so the service layer can
//     retry with a disambiguating suffix.
//   - On other DB errors (connectivity, constraints, etc.), the raw gorm
//     error is propagated.
//
// The counter primitive lives here too: AdjustCounter performs a store-level
// atomic increment/decrement (UPDATE … SET col = col + ?), never a
// read-modify-write, so concurrent writers cannot lose updates.
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quillhq/go-story-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates a uniqueness-constraint violation (slug, clap pair,
// follow pair, or idempotency key). Services translate it into either a
// retry (slugs) or a no-op success (engagement toggles).
var ErrDuplicate = errors.New("duplicate")

// isUniqueViolation detects unique-constraint violations across drivers that
// may not map to gorm.ErrDuplicatedKey. glebarez/sqlite often returns
// plain-text errors for UNIQUE violations.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint") ||
		strings.Contains(low, "constraint failed: unique") ||
		strings.Contains(low, "duplicate key")
}

// CreatePost inserts a new Post row owned by userID. The post ID is a
// randomly generated UUID and CreatedAt is set to UTC. A slug collision is
// returned as ErrDuplicate.
func CreatePost(ctx context.Context, db *gorm.DB, userID, title, content, slug, coverImage string, published bool) (*domain.Post, error) {
	p := &domain.Post{
		ID:         uuid.NewString(),
		UserID:     userID,
		Title:      title,
		Content:    content,
		Slug:       slug,
		Published:  published,
		CoverImage: coverImage,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return p, nil
}

// GetPost fetches a single post by ID, or ErrNotFound if missing.
func GetPost(ctx context.Context, db *gorm.DB, id string) (*domain.Post, error) {
	var p domain.Post
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetPostBySlug fetches a single post by its unique slug, or ErrNotFound.
func GetPostBySlug(ctx context.Context, db *gorm.DB, slug string) (*domain.Post, error) {
	var p domain.Post
	if err := db.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// SlugExists reports whether any post already uses the given slug.
func SlugExists(ctx context.Context, db *gorm.DB, slug string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("slug = ?", slug).
		Count(&n).Error
	return n > 0, err
}

// CountPublished returns the total number of published posts.
func CountPublished(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("published = ?", true).
		Count(&total).Error
	return total, err
}

// ListPublishedPage returns a paginated slice of published posts, most recent
// first. Use CountPublished to obtain the total for pagination metadata.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListPublishedPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Post, error) {
	var out []domain.Post
	err := db.WithContext(ctx).
		Where("published = ?", true).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListPostsByAuthor returns all posts by userID, newest first. When
// includeDrafts is false only published posts are returned (profile pages of
// other users must not expose drafts).
func ListPostsByAuthor(ctx context.Context, db *gorm.DB, userID string, includeDrafts bool) ([]domain.Post, error) {
	q := db.WithContext(ctx).Where("user_id = ?", userID)
	if !includeDrafts {
		q = q.Where("published = ?", true)
	}
	var out []domain.Post
	err := q.Order("created_at desc").Find(&out).Error
	return out, err
}

// SearchPosts returns published posts whose title or content contains the
// query (case-insensitive), newest first, capped at limit.
func SearchPosts(ctx context.Context, db *gorm.DB, query string, limit int) ([]domain.Post, error) {
	if limit <= 0 {
		limit = 10
	}
	like := "%" + strings.ToLower(query) + "%"
	var out []domain.Post
	err := db.WithContext(ctx).
		Where("published = ?", true).
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// AdjustCounter applies a store-level atomic delta to one of a post's
// aggregate counter columns. Decrements are guarded so the stored value never
// drops below zero even if a marker row was removed out of band.
//
// This is the only way counters change: callers must never read the current
// value, compute, and write back.
func AdjustCounter(ctx context.Context, db *gorm.DB, postID, column string, delta int64) error {
	q := db.WithContext(ctx).
		Model(&domain.Post{}).
		Where("id = ?", postID)
	if delta < 0 {
		q = q.Where(column+" >= ?", -delta)
	}
	res := q.UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
