package models

// 投票方向，行不存在即 "没有投票"
const (
	VoteUp   int8 = 1
	VoteDown int8 = -1
)

type Vote struct {
	ID        int64 `gorm:"primaryKey" json:"id"`
	PostID    int64 `gorm:"type:bigint;not null;index;uniqueIndex:uk_post_user" json:"post_id,string"`
	UserID    int64 `gorm:"type:bigint;not null;uniqueIndex:uk_post_user" json:"user_id,string"`
	VoteType  int8  `gorm:"type:tinyint;not null" json:"vote_type"`
	CreatedAt Time  `json:"created_at"`
	UpdatedAt Time  `json:"updated_at"`
}
