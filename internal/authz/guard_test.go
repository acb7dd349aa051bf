package authz

import (
	"errors"
	"testing"

	"inkwell/internal/db"
	"inkwell/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.DB = gdb
}

type fixture struct {
	owner    models.User
	stranger models.User
	post     models.Post
	comment  models.Comment
}

// comment is authored by stranger on owner's post.
func seedFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		owner:    models.User{Name: "Owner", Email: "owner@example.com", Password: "x"},
		stranger: models.User{Name: "Stranger", Email: "stranger@example.com", Password: "x"},
	}
	if err := db.DB.Create(&f.owner).Error; err != nil {
		t.Fatalf("create owner: %v", err)
	}
	if err := db.DB.Create(&f.stranger).Error; err != nil {
		t.Fatalf("create stranger: %v", err)
	}
	f.post = models.Post{Title: "A", Content: "B", AuthorID: f.owner.ID}
	if err := db.DB.Create(&f.post).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	f.comment = models.Comment{Content: "hi", AuthorID: f.stranger.ID, PostID: f.post.ID}
	if err := db.DB.Create(&f.comment).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return f
}

func TestAuthorizePostMutate(t *testing.T) {
	setupDB(t)
	f := seedFixture(t)

	res, err := Authorize(Post, f.post.ID, &f.owner, ActionMutate)
	if err != nil {
		t.Fatalf("owner mutate: %v", err)
	}
	if res.(*models.Post).ID != f.post.ID {
		t.Errorf("Expected post %d back, got %d", f.post.ID, res.(*models.Post).ID)
	}

	if _, err := Authorize(Post, f.post.ID, &f.stranger, ActionMutate); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for stranger, got %v", err)
	}
}

func TestAuthorizePostDeleteNoTwoPartyRule(t *testing.T) {
	setupDB(t)
	f := seedFixture(t)

	// Only the post's own author may delete a post.
	if _, err := Authorize(Post, f.post.ID, &f.stranger, ActionDelete); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden, got %v", err)
	}
	if _, err := Authorize(Post, f.post.ID, &f.owner, ActionDelete); err != nil {
		t.Errorf("owner delete: %v", err)
	}
}

func TestAuthorizeCommentDeleteAsymmetry(t *testing.T) {
	setupDB(t)
	f := seedFixture(t)

	// Comment author may delete.
	if _, err := Authorize(Comment, f.comment.ID, &f.stranger, ActionDelete); err != nil {
		t.Errorf("comment author delete: %v", err)
	}
	// Hosting post's author may delete too.
	if _, err := Authorize(Comment, f.comment.ID, &f.owner, ActionDelete); err != nil {
		t.Errorf("post author delete: %v", err)
	}

	third := models.User{Name: "Third", Email: "third@example.com", Password: "x"}
	if err := db.DB.Create(&third).Error; err != nil {
		t.Fatalf("create third: %v", err)
	}
	if _, err := Authorize(Comment, f.comment.ID, &third, ActionDelete); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for third party, got %v", err)
	}
}

func TestAuthorizeCommentMutateIsStrict(t *testing.T) {
	setupDB(t)
	f := seedFixture(t)

	// The post-owner exception does not extend to updates.
	if _, err := Authorize(Comment, f.comment.ID, &f.owner, ActionMutate); !errors.Is(err, ErrForbidden) {
		t.Errorf("Expected ErrForbidden for post owner, got %v", err)
	}
	if _, err := Authorize(Comment, f.comment.ID, &f.stranger, ActionMutate); err != nil {
		t.Errorf("comment author mutate: %v", err)
	}
}

func TestAuthorizeNotFoundBeforeOwnership(t *testing.T) {
	setupDB(t)
	f := seedFixture(t)

	if _, err := Authorize(Post, 9999, &f.stranger, ActionMutate); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if _, err := Authorize(Comment, 9999, &f.stranger, ActionDelete); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
