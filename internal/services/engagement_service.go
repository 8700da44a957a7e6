// Package services – EngagementService
//
// This file implements the EngagementService, the one correctness-critical
// component of the platform: it keeps the per-user marker rows (claps) and
// the denormalized aggregate counters on the post row consistent with each
// other. Marker mutation and counter adjustment always happen inside a single
// transaction; a crash between the two must never leave them observably
// separated.
//
// Concurrent duplicate toggles (double-click, retried request) are absorbed:
// when the insert half of a toggle hits the unique constraint, or the delete
// half removes zero rows, another request already produced the desired end
// state and the operation completes as a no-op success with the counter
// untouched. The caller always receives state read back from the store after
// commit, so applying the latest completed acknowledgment never regresses the
// displayed count.
//
// Observability: public methods are OpenTelemetry-instrumented; spans include
// post/user identifiers.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/quillhq/go-story-backend/internal/domain"
	"github.com/quillhq/go-story-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// counter column names on the posts table
const (
	colClaps    = "claps_count"
	colComments = "comments_count"
)

// errAlreadyApplied aborts a toggle transaction when a concurrent request
// already produced the desired end state. It never escapes the service.
var errAlreadyApplied = errors.New("already applied")

// ClapState is the authoritative engagement state returned after a toggle:
// whether the caller's marker row now exists and the fresh aggregate count.
type ClapState struct {
	Clapped bool  `json:"clapped"`
	Count   int64 `json:"claps_count"`
}

// CommentResult carries the appended comment and the fresh aggregate count.
type CommentResult struct {
	Comment *domain.Comment `json:"comment"`
	Count   int64           `json:"comments_count"`
}

// EngagementService implements the clap toggle and comment append use-cases.
// It is context-aware and opens its own transaction per mutating call.
type EngagementService struct {
	// DB is the injected store handle; constructed at process start, never a
	// package-level singleton.
	DB *gorm.DB

	// MaxCommentRunes caps comment length; 0 disables the cap.
	MaxCommentRunes int

	// IdempotencyTTL is how long a recorded Idempotency-Key stays valid for
	// comment replays.
	IdempotencyTTL time.Duration
}

// ToggleClap flips the caller's clap marker for postID and adjusts the
// post's aggregate counter by exactly one in the same transaction.
//
// Semantics:
//   - userID must be present; otherwise ErrUnauthorized, nothing changes.
//   - postID must exist; otherwise ErrPostNotFound.
//   - No marker row → insert + increment. Marker row → delete + decrement.
//   - Two calls in immediate succession return to the original state and the
//     original counter value (toggle, not increment-only).
//   - A concurrent duplicate (unique violation on insert, zero-row delete) is
//     a no-op success: the counter was already adjusted exactly once by the
//     winning request.
func (s *EngagementService) ToggleClap(ctx context.Context, userID, postID string) (*ClapState, error) {
	tr := otel.Tracer("services/EngagementService")
	ctx, span := tr.Start(ctx, "ToggleClap",
		trace.WithAttributes(
			attribute.String("post.id", postID),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthorized
	}
	if _, err := repo.GetPost(ctx, s.DB, postID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	clapped, err := repo.HasClapped(ctx, s.DB, userID, postID)
	if err != nil {
		return nil, err
	}
	if clapped {
		return s.removeClap(ctx, userID, postID)
	}
	return s.addClap(ctx, userID, postID)
}

// addClap inserts the marker and increments the aggregate atomically.
func (s *EngagementService) addClap(ctx context.Context, userID, postID string) (*ClapState, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.CreateClap(ctx, tx, userID, postID); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				// Lost the race against an identical clap; roll back so the
				// counter is not bumped a second time.
				return errAlreadyApplied
			}
			return err
		}
		return repo.AdjustCounter(ctx, tx, postID, colClaps, +1)
	})
	if err != nil && !errors.Is(err, errAlreadyApplied) {
		return nil, err
	}
	return s.clapState(ctx, true, postID)
}

// removeClap deletes the marker and decrements the aggregate atomically.
func (s *EngagementService) removeClap(ctx context.Context, userID, postID string) (*ClapState, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		n, err := repo.DeleteClap(ctx, tx, userID, postID)
		if err != nil {
			return err
		}
		if n == 0 {
			// A concurrent un-clap already removed the marker and took the
			// decrement with it.
			return errAlreadyApplied
		}
		return repo.AdjustCounter(ctx, tx, postID, colClaps, -1)
	})
	if err != nil && !errors.Is(err, errAlreadyApplied) {
		return nil, err
	}
	return s.clapState(ctx, false, postID)
}

// clapState reads the committed aggregate back so the caller reconciles
// against persisted state, never a client-side recomputation.
func (s *EngagementService) clapState(ctx context.Context, clapped bool, postID string) (*ClapState, error) {
	post, err := repo.GetPost(ctx, s.DB, postID)
	if err != nil {
		return nil, err
	}
	return &ClapState{Clapped: clapped, Count: post.ClapsCount}, nil
}

// AddComment validates and appends a comment to postID on behalf of userID,
// incrementing the post's comments_count in the same transaction.
//
// Semantics:
//   - text empty after trimming → ErrEmptyComment; nothing changes.
//   - userID absent → ErrUnauthorized; nothing changes.
//   - postID unknown → ErrPostNotFound.
//   - idemKey, when non-empty, deduplicates retries: a replayed key returns
//     the originally appended comment without a second append or increment.
func (s *EngagementService) AddComment(ctx context.Context, userID, postID, text, idemKey string) (*CommentResult, error) {
	tr := otel.Tracer("services/EngagementService")
	ctx, span := tr.Start(ctx, "AddComment",
		trace.WithAttributes(
			attribute.String("post.id", postID),
			attribute.String("user.id", userID),
		),
	)
	defer span.End()

	if strings.TrimSpace(userID) == "" {
		return nil, ErrUnauthorized
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}
	if s.MaxCommentRunes > 0 && utf8.RuneCountInString(text) > s.MaxCommentRunes {
		return nil, ErrCommentTooLong
	}
	if _, err := repo.GetPost(ctx, s.DB, postID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	// Replay: a still-valid idempotency record short-circuits the append.
	if idemKey != "" {
		if rec, err := repo.GetIdempotency(ctx, s.DB, userID, postID, idemKey, time.Now().UTC()); err == nil && rec != nil {
			return s.replayComment(ctx, rec.CommentID, postID)
		}
	}

	var created *domain.Comment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := repo.CreateComment(ctx, tx, postID, userID, text)
		if err != nil {
			return err
		}
		created = m
		if err := repo.AdjustCounter(ctx, tx, postID, colComments, +1); err != nil {
			return err
		}
		if idemKey != "" {
			if _, err := repo.CreateIdempotency(ctx, tx, userID, postID, idemKey, m.ID, 201, s.idemTTL()); err != nil {
				// A racing retry recorded the key first; surface its result
				// instead of double-appending.
				if errors.Is(err, repo.ErrDuplicate) {
					return errAlreadyApplied
				}
				return err
			}
		}
		return nil
	})
	if errors.Is(err, errAlreadyApplied) {
		rec, rerr := repo.GetIdempotency(ctx, s.DB, userID, postID, idemKey, time.Now().UTC())
		if rerr != nil {
			return nil, rerr
		}
		return s.replayComment(ctx, rec.CommentID, postID)
	}
	if err != nil {
		return nil, err
	}

	post, err := repo.GetPost(ctx, s.DB, postID)
	if err != nil {
		return nil, err
	}
	return &CommentResult{Comment: created, Count: post.CommentsCount}, nil
}

// ListComments returns paginated comments for a post in submission order.
func (s *EngagementService) ListComments(ctx context.Context, postID string, page, pageSize int) ([]domain.Comment, int64, error) {
	tr := otel.Tracer("services/EngagementService")
	ctx, span := tr.Start(ctx, "ListComments",
		trace.WithAttributes(
			attribute.String("post.id", postID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	post, err := repo.GetPost(ctx, s.DB, postID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, 0, ErrPostNotFound
		}
		return nil, 0, err
	}

	// The aggregate column is the displayed total; no COUNT scan per view.
	if post.CommentsCount == 0 {
		return []domain.Comment{}, 0, nil
	}
	items, err := repo.ListCommentsPage(ctx, s.DB, postID, offset, pageSize)
	return items, post.CommentsCount, err
}

// HasClapped answers whether userID has a marker row for postID. Anonymous
// viewers always read false.
func (s *EngagementService) HasClapped(ctx context.Context, userID, postID string) (bool, error) {
	if strings.TrimSpace(userID) == "" {
		return false, nil
	}
	return repo.HasClapped(ctx, s.DB, userID, postID)
}

// replayComment reloads a previously recorded comment plus the current count.
func (s *EngagementService) replayComment(ctx context.Context, commentID, postID string) (*CommentResult, error) {
	m, err := repo.GetComment(ctx, s.DB, commentID)
	if err != nil {
		return nil, err
	}
	post, err := repo.GetPost(ctx, s.DB, postID)
	if err != nil {
		return nil, err
	}
	return &CommentResult{Comment: m, Count: post.CommentsCount}, nil
}

func (s *EngagementService) idemTTL() time.Duration {
	if s.IdempotencyTTL > 0 {
		return s.IdempotencyTTL
	}
	return 24 * time.Hour
}
