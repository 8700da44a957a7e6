// Story HTTP handlers.
//
// This file exposes REST endpoints for story resources:
//   - POST   /stories          (create)
//   - GET    /stories          (list published, paginated, ETag support)
//   - GET    /stories/{slug}   (fetch one, with viewer clap state)
//
// It also defines the service contracts the handler layer depends on and the
// identity helper shared by the other handler files. Handlers are
// transport-thin: they validate input, call application services, and
// translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quillhq/go-story-backend/internal/domain"
	"github.com/quillhq/go-story-backend/internal/repo"
	"github.com/quillhq/go-story-backend/internal/services"
	"github.com/quillhq/go-story-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// StoryService defines story lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type StoryService interface {
	// Create inserts a new story for userID, deriving a unique slug.
	Create(ctx context.Context, userID, title, content, coverImage string, publish bool) (*domain.Post, error)
	// GetBySlug fetches one story; drafts are visible only to their author.
	GetBySlug(ctx context.Context, viewerID, slug string) (*domain.Post, error)
	// ListPage returns a page of published stories and the total count.
	ListPage(ctx context.Context, page, pageSize int) ([]domain.Post, int64, error)
	// ListByAuthor returns a user's stories for profile pages.
	ListByAuthor(ctx context.Context, viewerID, userID string) ([]domain.Post, error)
	// Search returns published stories matching a free-text query.
	Search(ctx context.Context, query string) ([]domain.Post, error)
}

// EngagementService defines the clap/comment operations consumed by handlers.
//
// Every mutating method returns the authoritative post-commit state so the
// client reconciles against the latest completed acknowledgment.
type EngagementService interface {
	// ToggleClap flips the caller's clap marker and adjusts the aggregate.
	ToggleClap(ctx context.Context, userID, postID string) (*services.ClapState, error)
	// AddComment appends a comment and increments the aggregate atomically.
	AddComment(ctx context.Context, userID, postID, text, idemKey string) (*services.CommentResult, error)
	// ListComments returns a page of comments in submission order.
	ListComments(ctx context.Context, postID string, page, pageSize int) ([]domain.Comment, int64, error)
	// HasClapped answers the viewer's marker state with a key lookup.
	HasClapped(ctx context.Context, userID, postID string) (bool, error)
}

// FollowService defines follow-relationship operations consumed by handlers.
type FollowService interface {
	// Toggle flips the follower→followee relationship.
	Toggle(ctx context.Context, followerID, followeeID string) (*services.FollowState, error)
	// Profile returns follow-graph counts and the viewer's relationship.
	Profile(ctx context.Context, viewerID, userID string) (*services.ProfileStats, error)
}

//
// Handler wiring
//

// Handlers groups HTTP endpoints for stories, engagement, and follows.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	storySvc  StoryService
	engSvc    EngagementService
	followSvc FollowService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(storySvc StoryService, engSvc EngagementService, followSvc FollowService) *Handlers {
	return &Handlers{storySvc: storySvc, engSvc: engSvc, followSvc: followSvc}
}

// currentUser extracts the authenticated user id from the Gin context. The
// identity middleware is the only writer of that key; handlers never read the
// raw header themselves. It returns "" when the caller is anonymous; services
// refuse mutations for "".
func currentUser(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

//
// DTOs
//

// CreateStoryRequest is the JSON payload for creating a story.
type CreateStoryRequest struct {
	// Title is the story headline (1–255 chars).
	Title string `json:"title" binding:"required,min=1,max=255" example:"Why slugs beat IDs"`
	// Content is the opaque editor HTML.
	Content string `json:"content" binding:"required" example:"<p>Start writing…</p>"`
	// CoverImage optionally references a cover (URL).
	CoverImage string `json:"cover_image,omitempty" example:"https://cdn.example.com/cover.jpg"`
	// Publish makes the story public immediately; false keeps a draft.
	Publish bool `json:"publish" example:"true"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListStoriesResponse wraps a page of stories and pagination information.
type ListStoriesResponse struct {
	Stories    []domain.Post `json:"stories"`
	Pagination Pagination    `json:"pagination"`
}

// StoryResponse wraps one story plus the viewer's clap state.
type StoryResponse struct {
	Story   domain.Post `json:"story"`
	Clapped bool        `json:"clapped"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.ClampInt(utils.AtoiDefault(c.Query("page_size"), defaultPageSize), 1, maxPageSize)
	return
}

//
// Handlers
//

// CreateStory godoc
// @ID          createStory
// @Summary     Create a new story
// @Description Creates a story (draft or published) for the current user and returns the resource.
// @Tags        Stories
// @Accept      json
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID (set by auth proxy)"  example(user123)
// @Param       body       body    handlers.CreateStoryRequest  true  "Create story payload"
//
// @Success     201  {object}  domain.Post
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Authentication required"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /stories [post]
func (h *Handlers) CreateStory(c *gin.Context) {
	var req CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.storySvc.Create(c.Request.Context(), currentUser(c), req.Title, req.Content, req.CoverImage, req.Publish)
	if err != nil {
		switch err {
		case services.ErrUnauthorized:
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "authentication required")
		case services.ErrEmptyTitle, services.ErrEmptyContent:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, p)
}

// ListStories godoc
// @ID          listStories
// @Summary     List published stories (paginated)
// @Description Returns a page of published stories, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Stories
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"abc123\")
// @Param       page           query   int     false "Page number"                  minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"               minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListStoriesResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /stories [get]
func (h *Handlers) ListStories(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	// ETag pre-check (best effort).
	var db *gorm.DB
	if svc, ok := h.storySvc.(*services.PostService); ok {
		db = svc.DB
	}
	if db != nil {
		count, maxTS, err := repo.PostsStats(ctx, db)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"stories:%d:%d"`, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, total, err := h.storySvc.ListPage(ctx, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	resp := ListStoriesResponse{
		Stories: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	}
	ok(c, http.StatusOK, resp)
}

// GetStory godoc
// @ID          getStory
// @Summary     Fetch one story by slug
// @Description Returns the story plus whether the current viewer has clapped it.
// @Tags        Stories
// @Produce     json
//
// @Param       X-User-ID  header  string  false "User ID (set by auth proxy)" example(user123)
// @Param       slug       path    string  true  "Story slug"                  example(why-slugs-beat-ids)
//
// @Success     200  {object} handlers.StoryResponse
// @Failure     404  {object} handlers.ErrorResponse "Story not found"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /stories/{slug} [get]
func (h *Handlers) GetStory(c *gin.Context) {
	ctx := c.Request.Context()
	uid := currentUser(c)

	p, err := h.storySvc.GetBySlug(ctx, uid, c.Param("slug"))
	if err != nil {
		if err == services.ErrPostNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "story not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	clapped, err := h.engSvc.HasClapped(ctx, uid, p.ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, StoryResponse{Story: *p, Clapped: clapped})
}

// SearchStories godoc
// @ID          searchStories
// @Summary     Search published stories
// @Description Case-insensitive substring search over title and content, newest first, capped at 10.
// @Tags        Stories
// @Produce     json
//
// @Param       q  query  string  true  "Search query"  example(counters)
//
// @Success     200  {object} map[string][]domain.Post
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /search [get]
func (h *Handlers) SearchStories(c *gin.Context) {
	items, err := h.storySvc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, gin.H{"stories": items})
}
