package handlers_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/router"
	"inkwell/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testCfg = config.Config{
	JWTSecret: "test-secret",
	TokenTTL:  time.Hour,
}

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.DB = gdb
	utils.GetCache().Purge()

	r := gin.New()
	router.RegisterRoutes(r, testCfg)
	return r
}

func createUser(t *testing.T, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "not-a-real-hash"}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func bearer(t *testing.T, email string) string {
	t.Helper()
	token, err := auth.MintToken(email, []byte(testCfg.JWTSecret), testCfg.TokenTTL)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return "Bearer " + token
}

// do performs a request against the engine; the Authorization header
// is set when non-empty.
func do(t *testing.T, r *gin.Engine, method, path, body, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("Expected status %d, got %d (body: %s)", want, w.Code, w.Body.String())
	}
}

func comment(t *testing.T, post models.Post, author models.User, content string, parentID *uint, createdAt time.Time) models.Comment {
	t.Helper()
	c := models.Comment{
		Content:   content,
		AuthorID:  author.ID,
		PostID:    post.ID,
		ParentID:  parentID,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	if err := db.DB.Create(&c).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return c
}

func post(t *testing.T, author models.User, title, content string) models.Post {
	t.Helper()
	p := models.Post{Title: title, Content: content, AuthorID: author.ID}
	if err := db.DB.Create(&p).Error; err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}
