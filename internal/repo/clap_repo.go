// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Clap
// marker rows.
//
// The repository follows a "thin" approach: it performs persistence and simple
// query composition, leaving the toggle/counter coordination to the services
// package.
//
// Error semantics:
//   - A duplicate clap (same user_id, post_id) relies on the database unique
//     constraint and is returned as ErrDuplicate. The service layer treats it
//     as "the desired row already exists" rather than a failure.
//   - On other DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quillhq/go-story-backend/internal/domain"
)

// HasClapped reports whether a marker row exists for (userID, postID).
// This is the O(1) key lookup that answers "has this viewer already clapped"
// without scanning.
func HasClapped(ctx context.Context, db *gorm.DB, userID, postID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Clap{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&n).Error
	return n > 0, err
}

// CreateClap inserts a marker row for (userID, postID). The combination must
// be unique, enforced by the database schema; a violation is returned as
// ErrDuplicate.
func CreateClap(ctx context.Context, db *gorm.DB, userID, postID string) error {
	c := &domain.Clap{
		ID:        uuid.NewString(),
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// DeleteClap removes the marker row for (userID, postID) and returns the
// number of rows removed (0 or 1). Zero rows means a concurrent un-clap
// already won; the caller must then skip the counter decrement.
func DeleteClap(ctx context.Context, db *gorm.DB, userID, postID string) (int64, error) {
	res := db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&domain.Clap{})
	return res.RowsAffected, res.Error
}
