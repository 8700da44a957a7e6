// Engagement HTTP handlers.
//
// This file exposes the REST endpoints for the counter-consistency core:
//   - POST /posts/{id}/clap      (toggle the caller's clap marker)
//   - GET  /posts/{id}/comments  (list, paginated)
//   - POST /posts/{id}/comments  (append a comment)
//
// Handlers are transport-thin: they validate input, delegate to the
// EngagementService, and translate service errors into HTTP results. The
// mutating endpoints return the authoritative post-commit state (flag +
// fresh aggregate count) so clients reconcile against the latest completed
// acknowledgment, never a speculative local bump.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quillhq/go-story-backend/internal/http/middleware"
	"github.com/quillhq/go-story-backend/internal/repo"
	"github.com/quillhq/go-story-backend/internal/services"
)

// AddCommentRequest is the JSON payload for appending a comment.
type AddCommentRequest struct {
	// Content is the comment body; must be non-empty after trimming.
	Content string `json:"content" binding:"required" example:"Nice!"`
}

// ListCommentsResponse wraps a page of comments and pagination information.
type ListCommentsResponse struct {
	Comments   []CommentView `json:"comments"`
	Pagination Pagination    `json:"pagination"`
}

// CommentView is the transport shape of one comment.
type CommentView struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// ToggleClap godoc
// @ID          toggleClap
// @Summary     Toggle the caller's clap on a post
// @Description Inserts or removes the caller's clap marker and adjusts the aggregate counter by exactly one, atomically. Returns the new state.
// @Tags        Engagement
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID (set by auth proxy)" example(user123)
// @Param       id         path    string  true  "Post ID (UUID)"              format(uuid)
//
// @Success     200  {object} services.ClapState
// @Failure     400  {object} handlers.ErrorResponse "Invalid post id"
// @Failure     401  {object} handlers.ErrorResponse "Authentication required"
// @Failure     404  {object} handlers.ErrorResponse "Post not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /posts/{id}/clap [post]
func (h *Handlers) ToggleClap(c *gin.Context) {
	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "post id must be a UUID")
		return
	}

	state, err := h.engSvc.ToggleClap(c.Request.Context(), currentUser(c), postID)
	if err != nil {
		switch err {
		case services.ErrUnauthorized:
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "please log in to clap")
		case services.ErrPostNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "post not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeToggleFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, state)
}

// ListComments godoc
// @ID          listComments
// @Summary     List comments on a post (paginated)
// @Description Returns comments in submission order (created_at, then insertion order). Supports weak ETag via If-None-Match and may return 304.
// @Tags        Engagement
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       id             path    string  true  "Post ID (UUID)" format(uuid)
// @Param       page           query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListCommentsResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     404  {object} handlers.ErrorResponse "Post not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /posts/{id}/comments [get]
func (h *Handlers) ListComments(c *gin.Context) {
	ctx := c.Request.Context()
	postID := c.Param("id")
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, ok := h.engSvc.(*services.EngagementService); ok {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.CommentsStats(ctx, db, postID)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"comments:%s:%d:%d"`, postID, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.engSvc.ListComments(ctx, postID, page, pageSize)
	if err != nil {
		if err == services.ErrPostNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "post not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	views := make([]CommentView, 0, len(items))
	for _, m := range items {
		views = append(views, CommentView{
			ID:        m.ID,
			UserID:    m.UserID,
			Content:   m.Content,
			CreatedAt: m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListCommentsResponse{
		Comments: views,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// AddComment godoc
// @ID          addComment
// @Summary     Append a comment to a post
// @Description Appends a comment and increments comments_count atomically. Supports Idempotency-Key for safe retries.
// @Tags        Engagement
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID        header  string  true   "User ID (set by auth proxy)" example(user123)
// @Param       Idempotency-Key  header  string  false  "Safe-retry key"
// @Param       id               path    string  true   "Post ID (UUID)"              format(uuid)
// @Param       body             body    handlers.AddCommentRequest true "Comment payload"
//
// @Success     201  {object} services.CommentResult
// @Failure     400  {object} handlers.ErrorResponse "Empty or oversized comment"
// @Failure     401  {object} handlers.ErrorResponse "Authentication required"
// @Failure     404  {object} handlers.ErrorResponse "Post not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /posts/{id}/comments [post]
func (h *Handlers) AddComment(c *gin.Context) {
	postID := c.Param("id")
	if _, err := uuid.Parse(postID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "post id must be a UUID")
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content is required")
		return
	}

	idemKey, _ := middleware.GetIdempotencyKey(c)

	res, err := h.engSvc.AddComment(c.Request.Context(), currentUser(c), postID, req.Content, idemKey)
	if err != nil {
		switch err {
		case services.ErrUnauthorized:
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "please log in to comment")
		case services.ErrEmptyComment:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "comment must not be empty")
		case services.ErrCommentTooLong:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "comment too long")
		case services.ErrPostNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "post not found")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, res)
}
