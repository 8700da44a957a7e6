// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Comment
// model. Comments are append-only: there is no update or delete here on
// purpose.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quillhq/go-story-backend/internal/domain"
)

// CreateComment inserts a new comment row.
func CreateComment(ctx context.Context, db *gorm.DB, postID, userID, content string) (*domain.Comment, error) {
	m := &domain.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	return m, db.WithContext(ctx).Create(m).Error
}

// CountComments uses a raw COUNT so a missing table surfaces as an error.
// Note this counts rows for verification/tests; the displayed total is the
// aggregate column on the post, never this scan.
func CountComments(ctx context.Context, db *gorm.DB, postID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM comments WHERE post_id = ?", postID).
		Scan(&total).Error
	return total, err
}

// ListCommentsPage returns a paginated slice in submission order. Ties on
// CreatedAt break on the SQLite rowid, which is monotonic per insert; the
// random UUID ids would not preserve insertion order.
func ListCommentsPage(ctx context.Context, db *gorm.DB, postID string, offset, limit int) ([]domain.Comment, error) {
	var out []domain.Comment
	err := db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, rowid ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetComment fetches a comment by ID.
func GetComment(ctx context.Context, db *gorm.DB, id string) (*domain.Comment, error) {
	var m domain.Comment
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
