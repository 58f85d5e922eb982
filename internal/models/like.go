package models

import "time"

// Like represents a user's like on a post.
// The combination of UserID and PostID must be unique.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_like_user_post" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}

// TableName specifies the table name for GORM.
func (Like) TableName() string {
	return "likes"
}

// LikeResult is the outcome of a like request.
type LikeResult string

const (
	// LikeResultLiked means a Like row was created and the post's count went up by one.
	LikeResultLiked LikeResult = "liked"
	// LikeResultAlreadyLiked means the user had already liked the post; nothing changed.
	LikeResultAlreadyLiked LikeResult = "already_liked"
)

// All returns every model that takes part in schema migration.
func All() []any {
	return []any{&User{}, &Post{}, &Like{}}
}
