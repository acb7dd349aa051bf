// Package authz enforces per-resource ownership. Each guarded resource
// is a Kind value carrying its own fetch and ownership predicate, so a
// new resource is a new variant, not a new switch branch.
package authz

import (
	"errors"
	"fmt"

	"inkwell/internal/db"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

type Action int

const (
	// ActionMutate covers updates: the resource's author only.
	ActionMutate Action = iota
	// ActionDelete additionally lets a post's author remove comments
	// hosted on that post. Posts themselves have no such exception.
	ActionDelete
)

var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")
)

type Kind struct {
	Name    string
	fetch   func(id uint) (interface{}, error)
	allowed func(resource interface{}, user *models.User, action Action) bool
}

var Post = Kind{
	Name: "Post",
	fetch: func(id uint) (interface{}, error) {
		var post models.Post
		if err := db.DB.First(&post, id).Error; err != nil {
			return nil, fetchErr("post", err)
		}
		return &post, nil
	},
	allowed: func(resource interface{}, user *models.User, _ Action) bool {
		return resource.(*models.Post).AuthorID == user.ID
	},
}

var Comment = Kind{
	Name: "Comment",
	fetch: func(id uint) (interface{}, error) {
		var comment models.Comment
		err := db.DB.
			Preload("Post", func(tx *gorm.DB) *gorm.DB {
				return tx.Select("id", "author_id")
			}).
			First(&comment, id).Error
		if err != nil {
			return nil, fetchErr("comment", err)
		}
		return &comment, nil
	},
	allowed: func(resource interface{}, user *models.User, action Action) bool {
		comment := resource.(*models.Comment)
		if comment.AuthorID == user.ID {
			return true
		}
		return action == ActionDelete && comment.Post.AuthorID == user.ID
	},
}

// Authorize fetches the resource and applies the kind's ownership
// predicate. Existence is checked first: a missing resource is
// ErrNotFound for every caller, owner or not. On success the fetched
// resource is returned so handlers don't load it twice.
func Authorize(kind Kind, id uint, user *models.User, action Action) (interface{}, error) {
	resource, err := kind.fetch(id)
	if err != nil {
		return nil, err
	}
	if !kind.allowed(resource, user, action) {
		return nil, ErrForbidden
	}
	return resource, nil
}

func fetchErr(name string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("fetch %s: %w", name, err)
}
