package models

import (
	"time"
)

type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"not null" json:"title,omitempty"`
	Content  string `gorm:"type:text" json:"content,omitempty"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author,omitzero"`
	// Includes every comment of the post, replies too; the nested
	// comments-with-replies shape lives on the comment endpoints.
	Comments  []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`

	// 非数据库字段，detail 读取时渲染
	ContentHTML string `gorm:"-" json:"content_html,omitempty"`
}
