package domain

import (
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Enforce FKs so cascades actually execute.
	db.Exec("PRAGMA foreign_keys=ON;")
	return db
}

func TestTableNames(t *testing.T) {
	if (Post{}).TableName() != "posts" {
		t.Fatalf("Post.TableName() = %q; want %q", (Post{}).TableName(), "posts")
	}
	if (Clap{}).TableName() != "claps" {
		t.Fatalf("Clap.TableName() = %q; want %q", (Clap{}).TableName(), "claps")
	}
	if (Comment{}).TableName() != "comments" {
		t.Fatalf("Comment.TableName() = %q; want %q", (Comment{}).TableName(), "comments")
	}
	if (Follow{}).TableName() != "follows" {
		t.Fatalf("Follow.TableName() = %q; want %q", (Follow{}).TableName(), "follows")
	}
}

func TestMigrations_Indexes_AndCascades(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&Post{}, &Clap{}, &Comment{}, &Follow{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()

	// Tables exist
	for _, tbl := range []any{&Post{}, &Clap{}, &Comment{}, &Follow{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}

	// Indexes from tags exist
	if !m.HasIndex(&Post{}, "ux_post_slug") {
		t.Fatalf("expected unique index ux_post_slug on posts")
	}
	if !m.HasIndex(&Clap{}, "ux_clap_user_post") {
		t.Fatalf("expected unique index ux_clap_user_post on claps")
	}
	if !m.HasIndex(&Comment{}, "idx_post_comments") {
		t.Fatalf("expected index idx_post_comments on comments")
	}
	if !m.HasIndex(&Follow{}, "ux_follow_pair") {
		t.Fatalf("expected unique index ux_follow_pair on follows")
	}

	// Seed a post, a clap, and a comment tied to it
	now := time.Now().UTC()

	p := &Post{ID: "p1", UserID: "u1", Title: "T", Content: "c", Slug: "t", Published: true, CreatedAt: now, UpdatedAt: now}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("insert post: %v", err)
	}

	cl := &Clap{ID: "cl1", UserID: "u1", PostID: "p1", CreatedAt: now}
	if err := db.Create(cl).Error; err != nil {
		t.Fatalf("insert clap: %v", err)
	}
	cm := &Comment{ID: "cm1", PostID: "p1", UserID: "u2", Content: "hi", CreatedAt: now}
	if err := db.Create(cm).Error; err != nil {
		t.Fatalf("insert comment: %v", err)
	}

	// Unique marker pair: a second clap for the same (user, post) must fail.
	dup := &Clap{ID: "cl2", UserID: "u1", PostID: "p1", CreatedAt: now}
	if err := db.Create(dup).Error; err == nil {
		t.Fatalf("expected unique violation for duplicate clap pair")
	}

	// CASCADE: deleting the post should delete its claps and comments.
	if err := db.Unscoped().Delete(&Post{}, "id = ?", "p1").Error; err != nil {
		t.Fatalf("delete post: %v", err)
	}
	var cnt int64
	if err := db.Model(&Clap{}).Where("post_id = ?", "p1").Count(&cnt).Error; err != nil {
		t.Fatalf("count claps after post delete: %v", err)
	}
	if cnt != 0 {
		t.Fatalf("expected claps to cascade-delete with post, got count=%d", cnt)
	}
	if err := db.Model(&Comment{}).Where("post_id = ?", "p1").Count(&cnt).Error; err != nil {
		t.Fatalf("count comments after post delete: %v", err)
	}
	if cnt != 0 {
		t.Fatalf("expected comments to cascade-delete with post, got count=%d", cnt)
	}
}

func TestFollow_UniquePairAllowsReverseDirection(t *testing.T) {
	db := newDomainDB(t)
	if err := db.AutoMigrate(&Follow{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	now := time.Now().UTC()
	if err := db.Create(&Follow{ID: "f1", FollowerID: "a", FolloweeID: "b", CreatedAt: now}).Error; err != nil {
		t.Fatalf("insert follow: %v", err)
	}
	// Same pair again must violate ux_follow_pair.
	if err := db.Create(&Follow{ID: "f2", FollowerID: "a", FolloweeID: "b", CreatedAt: now}).Error; err == nil {
		t.Fatalf("expected unique violation for duplicate follow pair")
	}
	// The reverse direction is a different relationship and must insert.
	if err := db.Create(&Follow{ID: "f3", FollowerID: "b", FolloweeID: "a", CreatedAt: now}).Error; err != nil {
		t.Fatalf("insert reverse follow: %v", err)
	}
}
