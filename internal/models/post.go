package models

import "time"

// MaxPostContentLength is the maximum number of characters in a post.
const MaxPostContentLength = 300

// Post is a short text message on the dashboard.
// Likes caches the number of Like rows for the post and is only
// changed inside the transaction that inserts the Like.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"size:300;not null" json:"content"`
	Likes     int       `gorm:"not null;default:0" json:"likes"`
	UserID    *uint     `gorm:"index" json:"user_id,omitempty"`
	User      *User     `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Post) TableName() string {
	return "posts"
}
