package handlers

import (
	"errors"
	"log"
	"net/http"

	"inkwell/internal/authz"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Error writes the uniform error body. Every non-2xx response carries
// only {"message": ...}.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// Internal logs the cause server-side and answers with a fixed generic
// message; store-level detail never reaches the client.
func Internal(c *gin.Context, message string, err error) {
	log.Printf("%s: %v", message, err)
	Error(c, http.StatusInternalServerError, message)
}

// guardError maps guard outcomes onto the wire: missing resource wins
// over ownership, ownership over anything else.
func guardError(c *gin.Context, kind authz.Kind, err error) {
	switch {
	case errors.Is(err, authz.ErrNotFound):
		Error(c, http.StatusNotFound, kind.Name+" not found")
	case errors.Is(err, authz.ErrForbidden):
		Error(c, http.StatusForbidden, "Unauthorized")
	default:
		Internal(c, "Permission check failed", err)
	}
}

// selectAuthor keeps embedded author objects down to id/name/email;
// secrets and timestamps stay out of related rows.
func selectAuthor(tx *gorm.DB) *gorm.DB {
	return tx.Select("id", "name", "email")
}
