package handlers

import (
	"errors"
	"net/http"
	"time"

	"inkwell/internal/authz"
	"inkwell/internal/db"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const postListCacheKey = "posts:all"

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// List returns every post with its author and a flat comment list,
// newest first. The response is cached briefly; mutations invalidate.
func (h *PostHandler) List(c *gin.Context) {
	if cached := utils.GetCache().Get(postListCacheKey); cached != nil {
		if posts, ok := cached.([]models.Post); ok {
			c.JSON(http.StatusOK, posts)
			return
		}
	}

	var posts []models.Post
	err := db.DB.
		Preload("Author", selectAuthor).
		Preload("Comments").
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		Internal(c, "Error fetching posts", err)
		return
	}

	utils.GetCache().Set(postListCacheKey, posts, 1*time.Minute)

	c.JSON(http.StatusOK, posts)
}

// Get returns one post with author and its comment tree: root comments
// newest first, each with direct replies. Deeper levels stay collapsed.
func (h *PostHandler) Get(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	err := db.DB.
		Preload("Author", selectAuthor).
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Where("parent_id IS NULL").Order("created_at DESC")
		}).
		Preload("Comments.Author", selectAuthor).
		Preload("Comments.Replies").
		Preload("Comments.Replies.Author", selectAuthor).
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Error(c, http.StatusNotFound, "Post not found")
			return
		}
		Internal(c, "Error fetching post", err)
		return
	}

	post.ContentHTML = utils.RenderMarkdown(post.Content)

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		Error(c, http.StatusBadRequest, "Title is required")
		return
	}

	post := models.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: user.ID,
	}

	if err := db.DB.Create(&post).Error; err != nil {
		Internal(c, "Error creating post", err)
		return
	}

	utils.GetCache().Delete(postListCacheKey)

	c.JSON(http.StatusCreated, post)
}

func (h *PostHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	resource, err := authz.Authorize(authz.Post, id, user, authz.ActionMutate)
	if err != nil {
		guardError(c, authz.Post, err)
		return
	}
	post := resource.(*models.Post)

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		Error(c, http.StatusBadRequest, "Title is required")
		return
	}

	post.Title = req.Title
	post.Content = req.Content

	if err := db.DB.Save(post).Error; err != nil {
		Internal(c, "Error updating post", err)
		return
	}

	utils.GetCache().Delete(postListCacheKey)

	c.JSON(http.StatusOK, post)
}

func (h *PostHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	resource, err := authz.Authorize(authz.Post, id, user, authz.ActionDelete)
	if err != nil {
		guardError(c, authz.Post, err)
		return
	}
	post := resource.(*models.Post)

	// Hard delete; the store's cascade takes the comments with it.
	if err := db.DB.Delete(post).Error; err != nil {
		Internal(c, "Error deleting post", err)
		return
	}

	utils.GetCache().Delete(postListCacheKey)

	c.Status(http.StatusNoContent)
}
