package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/models"

	"github.com/gin-gonic/gin"
)

const UserKey = "user"

// AuthRequired verifies the bearer credential and resolves it to a
// persisted user, aborting with 401 otherwise. A valid token whose
// principal no longer exists is still a 401; only the logged cause
// differs.
func AuthRequired(cfg config.Config) gin.HandlerFunc {
	secret := []byte(cfg.JWTSecret)
	return func(c *gin.Context) {
		claims, err := auth.VerifyToken(bearerToken(c), secret)
		if err != nil {
			log.Printf("auth: credential rejected: %v", err)
			abortUnauthorized(c, err)
			return
		}

		var user models.User
		if err := db.DB.Where("email = ?", claims.Email).First(&user).Error; err != nil {
			log.Printf("auth: unknown identity %q: %v", claims.Email, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			return
		}

		c.Set(UserKey, &user)
		c.Next()
	}
}

// CurrentUser returns the identity resolved by AuthRequired. Only call
// it from handlers behind that middleware.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(UserKey).(*models.User)
}

// The credential is the second whitespace-separated token of the
// Authorization header ("Bearer <token>").
func bearerToken(c *gin.Context) string {
	fields := strings.Fields(c.GetHeader("Authorization"))
	if len(fields) < 2 {
		return ""
	}
	return fields[1]
}

func abortUnauthorized(c *gin.Context, err error) {
	message := "Invalid token"
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		message = "Authentication token is missing"
	case errors.Is(err, auth.ErrExpiredToken):
		message = "Token expired"
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
}
