// Package services – FollowService
//
// This file implements the FollowService, which maintains the single boolean
// relationship between two identities. The toggle is a check-then-act pair
// treated as one atomic step per caller; the composite unique index on
// (follower_id, followee_id) is the backstop, and a conflict is absorbed as a
// no-op success because the desired row already exists.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/quillhq/go-story-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// FollowState is the authoritative relationship state returned by a toggle.
type FollowState struct {
	Following      bool  `json:"following"`
	FollowersCount int64 `json:"followers_count"`
}

// ProfileStats summarizes a user's follow graph for profile pages, including
// the viewer's relationship to them.
type ProfileStats struct {
	UserID         string `json:"user_id"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
	ViewerFollows  bool   `json:"viewer_follows"`
}

// FollowService implements the follow toggle and profile-count use-cases.
type FollowService struct {
	// DB is the injected store handle.
	DB *gorm.DB
}

// Toggle flips the follow relationship from followerID to followeeID.
//
// Semantics:
//   - followerID must be present; otherwise ErrUnauthorized.
//   - followeeID must be non-empty; otherwise ErrMissingFollowee.
//   - followerID == followeeID → ErrSelfFollow.
//   - Row absent → insert (follow); row present → delete (unfollow). Two
//     toggles in succession return the relationship to its original state.
//   - Concurrent duplicates (unique violation, zero-row delete) complete as
//     no-op successes rather than surfacing a conflict.
func (s *FollowService) Toggle(ctx context.Context, followerID, followeeID string) (*FollowState, error) {
	tr := otel.Tracer("services/FollowService")
	ctx, span := tr.Start(ctx, "Toggle",
		trace.WithAttributes(
			attribute.String("follower.id", followerID),
			attribute.String("followee.id", followeeID),
		),
	)
	defer span.End()

	if strings.TrimSpace(followerID) == "" {
		return nil, ErrUnauthorized
	}
	followeeID = strings.TrimSpace(followeeID)
	if followeeID == "" {
		return nil, ErrMissingFollowee
	}
	if followerID == followeeID {
		return nil, ErrSelfFollow
	}

	following, err := repo.IsFollowing(ctx, s.DB, followerID, followeeID)
	if err != nil {
		return nil, err
	}

	if following {
		// Zero rows affected means a concurrent unfollow already won; either
		// way the end state is "not following".
		if _, err := repo.DeleteFollow(ctx, s.DB, followerID, followeeID); err != nil {
			return nil, err
		}
		following = false
	} else {
		if err := repo.CreateFollow(ctx, s.DB, followerID, followeeID); err != nil {
			if !errors.Is(err, repo.ErrDuplicate) {
				return nil, err
			}
			// Desired row already exists (concurrent follow); no-op success.
		}
		following = true
	}

	count, err := repo.CountFollowers(ctx, s.DB, followeeID)
	if err != nil {
		return nil, err
	}
	return &FollowState{Following: following, FollowersCount: count}, nil
}

// Profile returns follower/following counts for userID and whether viewerID
// (possibly empty for anonymous viewers) follows them.
func (s *FollowService) Profile(ctx context.Context, viewerID, userID string) (*ProfileStats, error) {
	tr := otel.Tracer("services/FollowService")
	ctx, span := tr.Start(ctx, "Profile",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrMissingFollowee
	}

	followers, err := repo.CountFollowers(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	following, err := repo.CountFollowing(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}

	viewerFollows := false
	if viewerID != "" && viewerID != userID {
		viewerFollows, err = repo.IsFollowing(ctx, s.DB, viewerID, userID)
		if err != nil {
			return nil, err
		}
	}

	return &ProfileStats{
		UserID:         userID,
		FollowersCount: followers,
		FollowingCount: following,
		ViewerFollows:  viewerFollows,
	}, nil
}
