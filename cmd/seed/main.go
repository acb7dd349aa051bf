// Seeds a development database with users, posts and comments, and
// prints a usable bearer token per user. User creation lives here, not
// in the API.
package main

import (
	"fmt"
	"log"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/models"
	"inkwell/internal/utils"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg := config.Load()
	db.Init(cfg)

	users := seedUsers()
	seedContent(users)

	for _, u := range users {
		token, err := auth.MintToken(u.Email, []byte(cfg.JWTSecret), cfg.TokenTTL)
		if err != nil {
			log.Fatalf("Failed to mint token for %s: %v", u.Email, err)
		}
		fmt.Printf("%s\t%s\n", u.Email, token)
	}
}

func seedUsers() []models.User {
	var count int64
	db.DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("Users already seeded, loading existing")
		var users []models.User
		db.DB.Order("id ASC").Find(&users)
		return users
	}

	seeds := []struct {
		name, email, password string
	}{
		{"Ada", "ada@example.com", "ada-dev-password"},
		{"Bram", "bram@example.com", "bram-dev-password"},
		{"Cleo", "cleo@example.com", "cleo-dev-password"},
	}

	users := make([]models.User, 0, len(seeds))
	for _, s := range seeds {
		hash, err := utils.HashPassword(s.password)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		user := models.User{Name: s.name, Email: s.email, Password: hash}
		if err := db.DB.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", s.email, err)
		}
		users = append(users, user)
	}
	log.Println("Initial users created successfully")
	return users
}

func seedContent(users []models.User) {
	var count int64
	db.DB.Model(&models.Post{}).Count(&count)
	if count > 0 || len(users) < 2 {
		return
	}

	post := models.Post{
		Title:    "Welcome to inkwell",
		Content:  "First post. Markdown works, *including* emphasis.",
		AuthorID: users[0].ID,
	}
	if err := db.DB.Create(&post).Error; err != nil {
		log.Fatalf("Failed to create post: %v", err)
	}

	root := models.Comment{
		Content:  "First comment.",
		AuthorID: users[1].ID,
		PostID:   post.ID,
	}
	if err := db.DB.Create(&root).Error; err != nil {
		log.Fatalf("Failed to create comment: %v", err)
	}

	reply := models.Comment{
		Content:  "And a reply.",
		AuthorID: users[0].ID,
		PostID:   post.ID,
		ParentID: &root.ID,
	}
	if err := db.DB.Create(&reply).Error; err != nil {
		log.Fatalf("Failed to create reply: %v", err)
	}
	log.Println("Sample content created successfully")
}
