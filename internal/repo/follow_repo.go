// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Follow
// relationship rows.
//
// Error semantics mirror the clap repository: a duplicate (follower, followee)
// pair is returned as ErrDuplicate so the service can absorb concurrent
// toggles as no-op successes.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quillhq/go-story-backend/internal/domain"
)

// IsFollowing reports whether a Follow row exists for (followerID, followeeID).
func IsFollowing(ctx context.Context, db *gorm.DB, followerID, followeeID string) (bool, error) {
	var n int64
	err := db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&n).Error
	return n > 0, err
}

// CreateFollow inserts the relationship row. A violation of the composite
// unique index is returned as ErrDuplicate.
func CreateFollow(ctx context.Context, db *gorm.DB, followerID, followeeID string) error {
	f := &domain.Follow{
		ID:         uuid.NewString(),
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// DeleteFollow removes the relationship row and returns the number of rows
// removed (0 or 1).
func DeleteFollow(ctx context.Context, db *gorm.DB, followerID, followeeID string) (int64, error) {
	res := db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&domain.Follow{})
	return res.RowsAffected, res.Error
}

// CountFollowers returns how many users follow followeeID.
func CountFollowers(ctx context.Context, db *gorm.DB, followeeID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("followee_id = ?", followeeID).
		Count(&total).Error
	return total, err
}

// CountFollowing returns how many users followerID follows.
func CountFollowing(ctx context.Context, db *gorm.DB, followerID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("follower_id = ?", followerID).
		Count(&total).Error
	return total, err
}
