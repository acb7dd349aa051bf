package handlers

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"inkwell/internal/authz"
	"inkwell/internal/db"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// Create attaches a comment to a post, or a reply to an existing
// comment when parent_id is set. Only parent existence is checked; the
// read paths never expand past one reply level regardless of how deep
// a stored chain goes.
func (h *CommentHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	postID := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Error(c, http.StatusNotFound, "Post not found")
			return
		}
		Internal(c, "Error creating comment", err)
		return
	}

	var req struct {
		Content  string `json:"content"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		Error(c, http.StatusBadRequest, "Content is required")
		return
	}

	if req.ParentID != nil {
		var parent models.Comment
		if err := db.DB.First(&parent, *req.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				Error(c, http.StatusNotFound, "Parent comment not found")
				return
			}
			Internal(c, "Error creating comment", err)
			return
		}
	}

	comment := models.Comment{
		Content:  req.Content,
		AuthorID: user.ID,
		PostID:   post.ID,
		ParentID: req.ParentID,
	}

	if err := db.DB.Create(&comment).Error; err != nil {
		Internal(c, "Error creating comment", err)
		return
	}

	utils.GetCache().Delete(postListCacheKey)

	c.JSON(http.StatusCreated, comment)
}

// List pages through a post's root comments, newest first, each with
// its direct replies and their authors. An optional search restricts
// roots to case-insensitive substring matches on content.
func (h *CommentHandler) List(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))

	if err := db.DB.First(&models.Post{}, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Error(c, http.StatusNotFound, "Post not found")
			return
		}
		Internal(c, "Error fetching comments", err)
		return
	}

	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit := utils.StringToInt(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	search := c.Query("search")

	rootFilter := func() *gorm.DB {
		tx := db.DB.Model(&models.Comment{}).
			Where("post_id = ? AND parent_id IS NULL", postID)
		if search != "" {
			tx = tx.Where("LOWER(content) LIKE ? ESCAPE '\\'", containsPattern(search))
		}
		return tx
	}

	var total int64
	if err := rootFilter().Count(&total).Error; err != nil {
		Internal(c, "Error fetching comments", err)
		return
	}
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	var comments []models.Comment
	err := rootFilter().
		Preload("Author", selectAuthor).
		Preload("Replies").
		Preload("Replies.Author", selectAuthor).
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&comments).Error
	if err != nil {
		Internal(c, "Error fetching comments", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": comments,
		"pagination": gin.H{
			"total_comments": total,
			"total_pages":    totalPages,
			"current_page":   page,
			"limit":          limit,
		},
	})
}

// Get returns one comment with author and direct replies.
func (h *CommentHandler) Get(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var comment models.Comment
	err := db.DB.
		Preload("Author", selectAuthor).
		Preload("Replies").
		Preload("Replies.Author", selectAuthor).
		First(&comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			Error(c, http.StatusNotFound, "Comment not found")
			return
		}
		Internal(c, "Error fetching comment", err)
		return
	}

	comment.ContentHTML = utils.RenderMarkdown(comment.Content)

	c.JSON(http.StatusOK, comment)
}

// Update is strictly author-only; the post-owner exception applies to
// deletion, not edits.
func (h *CommentHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	resource, err := authz.Authorize(authz.Comment, id, user, authz.ActionMutate)
	if err != nil {
		guardError(c, authz.Comment, err)
		return
	}
	comment := resource.(*models.Comment)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		Error(c, http.StatusBadRequest, "Content is required")
		return
	}

	comment.Content = req.Content
	comment.Post = models.Post{} // loaded for the guard, not for the response

	if err := db.DB.Save(comment).Error; err != nil {
		Internal(c, "Error updating comment", err)
		return
	}

	utils.GetCache().Delete(postListCacheKey)

	c.JSON(http.StatusOK, comment)
}

// Delete removes a comment for good. The guard admits the comment's
// author and the hosting post's author.
func (h *CommentHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	resource, err := authz.Authorize(authz.Comment, id, user, authz.ActionDelete)
	if err != nil {
		guardError(c, authz.Comment, err)
		return
	}
	comment := resource.(*models.Comment)

	if err := db.DB.Delete(comment).Error; err != nil {
		Internal(c, "Error deleting comment", err)
		return
	}

	utils.GetCache().Delete(postListCacheKey)

	c.Status(http.StatusNoContent)
}

// Search scans every comment on every post, newest 20 matches, with
// author and a post summary. q is required.
func (h *CommentHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		Error(c, http.StatusBadRequest, "Search query is required")
		return
	}

	var comments []models.Comment
	err := db.DB.
		Where("LOWER(content) LIKE ? ESCAPE '\\'", containsPattern(q)).
		Preload("Author", selectAuthor).
		Preload("Post", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "title")
		}).
		Order("created_at DESC").
		Limit(20).
		Find(&comments).Error
	if err != nil {
		Internal(c, "Error searching comments", err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

// containsPattern builds a case-insensitive LIKE pattern that behaves
// the same on postgres and sqlite.
func containsPattern(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
	return "%" + strings.ToLower(escaped) + "%"
}
