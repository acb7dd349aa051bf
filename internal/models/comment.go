package models

import (
	"time"
)

type Comment struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	Post     Post   `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post,omitzero"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author,omitzero"`
	ParentID *uint  `gorm:"index" json:"parent_id"` // Nullable for top-level comments
	Content  string `gorm:"type:text;not null" json:"content"`
	// Direct replies only. A reply's own replies are never expanded,
	// so the wire shape is at most two levels deep.
	Replies   []Comment `gorm:"foreignKey:ParentID" json:"replies,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`

	// 非数据库字段，detail 读取时渲染
	ContentHTML string `gorm:"-" json:"content_html,omitempty"`
}
