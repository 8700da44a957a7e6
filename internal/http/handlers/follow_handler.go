// Follow HTTP handlers.
//
// This file exposes the REST endpoints for the follow relationship:
//   - POST /users/{id}/follow   (toggle)
//   - GET  /users/{id}/profile  (counts + viewer relationship + stories)
//
// Handlers are transport-thin: validation and error translation only; the
// toggle's atomicity lives in the FollowService and the database's composite
// unique index.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quillhq/go-story-backend/internal/domain"
	"github.com/quillhq/go-story-backend/internal/services"
)

// ProfileResponse combines follow-graph stats with the user's visible stories.
type ProfileResponse struct {
	Profile services.ProfileStats `json:"profile"`
	Stories []domain.Post         `json:"stories"`
}

// ToggleFollow godoc
// @ID          toggleFollow
// @Summary     Toggle following a user
// @Description Follows the target when no relationship exists, unfollows otherwise. Returns the new state and follower count.
// @Tags        Follows
// @Produce     json
//
// @Param       X-User-ID  header  string  true  "User ID (set by auth proxy)" example(user123)
// @Param       id         path    string  true  "Target user ID"              example(user456)
//
// @Success     200  {object} services.FollowState
// @Failure     400  {object} handlers.ErrorResponse "Self-follow or missing target"
// @Failure     401  {object} handlers.ErrorResponse "Authentication required"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/{id}/follow [post]
func (h *Handlers) ToggleFollow(c *gin.Context) {
	state, err := h.followSvc.Toggle(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		switch err {
		case services.ErrUnauthorized:
			fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "please log in to follow")
		case services.ErrSelfFollow:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "cannot follow yourself")
		case services.ErrMissingFollowee:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "target user is required")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeToggleFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusOK, state)
}

// GetProfile godoc
// @ID          getProfile
// @Summary     Fetch a user's public profile
// @Description Returns follower/following counts, whether the viewer follows them, and their visible stories.
// @Tags        Follows
// @Produce     json
//
// @Param       X-User-ID  header  string  false "Viewer ID (set by auth proxy)" example(user123)
// @Param       id         path    string  true  "Profile user ID"               example(user456)
//
// @Success     200  {object} handlers.ProfileResponse
// @Failure     400  {object} handlers.ErrorResponse "Missing user id"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /users/{id}/profile [get]
func (h *Handlers) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	viewer := currentUser(c)
	userID := c.Param("id")

	stats, err := h.followSvc.Profile(ctx, viewer, userID)
	if err != nil {
		if err == services.ErrMissingFollowee {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "user id is required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	stories, err := h.storySvc.ListByAuthor(ctx, viewer, userID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, ProfileResponse{Profile: *stats, Stories: stories})
}
