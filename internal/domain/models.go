// Package domain defines the persistence models for stories, claps, comments,
// and follows. These types are mapped with GORM and form the core data layer
// of the publishing platform.
package domain

import "time"

// Post represents a story written by a user. Each post carries denormalized
// aggregate counters (claps_count, comments_count) so page renders never scan
// the marker-row tables; the counters are only ever adjusted atomically
// alongside the marker rows (see services.EngagementService).
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID: identifier of the author; indexed for profile listings.
//   - Title / Content: story title and opaque editor HTML.
//   - Slug: unique URL slug derived from the title, with a numeric suffix on
//     collision ("my-story", "my-story-2", …).
//   - Published: visibility flag; drafts are only listed for their author.
//   - ClapsCount / CommentsCount: aggregate counters, one per engagement kind.
//   - CoverImage: optional cover reference (URL).
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Post struct {
	ID            string    `json:"id"             gorm:"type:char(36);primaryKey"`
	UserID        string    `json:"user_id"        gorm:"type:varchar(64);not null;index:idx_user_posts"`
	Title         string    `json:"title"          gorm:"type:varchar(255);not null"`
	Content       string    `json:"content"        gorm:"type:text;not null"`
	Slug          string    `json:"slug"           gorm:"type:varchar(255);not null;uniqueIndex:ux_post_slug"`
	Published     bool      `json:"published"      gorm:"not null;default:false;index"`
	ClapsCount    int64     `json:"claps_count"    gorm:"not null;default:0"`
	CommentsCount int64     `json:"comments_count" gorm:"not null;default:0"`
	CoverImage    string    `json:"cover_image,omitempty" gorm:"type:varchar(512)"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName returns the database table name for Post.
func (Post) TableName() string { return "posts" }

// Clap is a per-user engagement marker: at most one row per (user, post),
// enforced by the composite unique index rather than application logic.
// The marker answers "has this viewer clapped" with a key lookup; the
// displayed total lives on the post row.
type Clap struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;index;uniqueIndex:ux_clap_user_post"`
	PostID    string    `json:"post_id"    gorm:"type:char(36);not null;index;uniqueIndex:ux_clap_user_post"`
	CreatedAt time.Time `json:"created_at"`

	// Post is the clapped story. Marker rows are cascade-deleted with it.
	Post Post `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Clap.
func (Clap) TableName() string { return "claps" }

// Comment is an append-only response to a post. Comments are never edited or
// deleted; ordering is (created_at, id) so same-timestamp inserts keep
// submission order.
type Comment struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	PostID    string    `json:"post_id"    gorm:"type:char(36);not null;index:idx_post_comments,priority:1"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;index"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_post_comments,priority:2"`

	// Post is the commented story. Comments are cascade-deleted with it.
	Post Post `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// Follow records that FollowerID follows FolloweeID. Presence of the row is
// the relationship; unfollow deletes it. The composite unique index is the
// concurrency backstop for the check-then-act toggle.
type Follow struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	FollowerID string    `json:"follower_id" gorm:"type:varchar(64);not null;index;uniqueIndex:ux_follow_pair"`
	FolloweeID string    `json:"followee_id" gorm:"type:varchar(64);not null;index;uniqueIndex:ux_follow_pair"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName returns the database table name for Follow.
func (Follow) TableName() string { return "follows" }
