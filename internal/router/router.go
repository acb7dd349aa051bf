package router

import (
	"inkwell/internal/config"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every endpoint onto r. Reads are public;
// anything that writes sits behind the bearer-token middleware.
func RegisterRoutes(r *gin.Engine, cfg config.Config) {
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler()

	// Public Routes
	r.GET("/posts", postHandler.List)
	r.GET("/posts/:id", postHandler.Get)
	r.GET("/posts/:id/comments", commentHandler.List)
	r.GET("/comments/search", commentHandler.Search)
	r.GET("/comments/:id", commentHandler.Get)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired(cfg))
	{
		authorized.POST("/posts", postHandler.Create)
		authorized.PUT("/posts/:id", postHandler.Update)
		authorized.DELETE("/posts/:id", postHandler.Delete)

		authorized.POST("/posts/:id/comments", commentHandler.Create)
		authorized.PUT("/comments/:id", commentHandler.Update)
		authorized.DELETE("/comments/:id", commentHandler.Delete)
	}
}
