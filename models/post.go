package models

type Post struct {
	ID          int64  `gorm:"primaryKey" json:"id"`
	PostID      int64  `gorm:"type:bigint;not null;unique" json:"post_id,string"`
	Title       string `gorm:"type:varchar(128);not null" json:"title"`
	Content     string `gorm:"type:text;not null" json:"content"`
	CommunityID int64  `gorm:"type:bigint;not null;index" json:"community_id,string"`
	AuthorID    int64  `gorm:"type:bigint;not null;index" json:"author_id,string"`
	VoteCount   int64  `gorm:"type:bigint;not null;default:0" json:"vote_count"`
	CreatedAt   Time   `json:"created_at"`
	UpdatedAt   Time   `json:"updated_at"`
}

type PostDTO struct {
	PostID         int64  `json:"post_id,string"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	CommunityID    int64  `json:"community_id,string"`
	CommunityName  string `json:"community_name"`
	AuthorID       int64  `json:"author_id,string"`
	AuthorNickname string `json:"author_nickname"`
	VoteCount      int64  `json:"vote_count"`
	CreatedAt      Time   `json:"created_at"`
}
