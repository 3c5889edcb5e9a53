package models

type Community struct {
	ID          int64    `gorm:"primaryKey" json:"id"`
	CommunityID int64    `gorm:"type:bigint;not null;unique" json:"community_id,string"`
	Name        string   `gorm:"type:varchar(21);not null;unique" json:"name"`
	Description string   `gorm:"type:varchar(150);not null" json:"description"`
	Icon        string   `gorm:"type:varchar(32)" json:"icon"`
	Color       string   `gorm:"type:varchar(16)" json:"color"`
	Tags        []string `gorm:"serializer:json;type:varchar(256)" json:"tags"`
	CreatorID   int64    `gorm:"type:bigint;not null;index" json:"creator_id,string"`
	CreatedAt   Time     `json:"created_at"`
	UpdatedAt   Time     `json:"updated_at"`
}

// CommunityMembership (community_id, user_id) 对唯一，一个用户最多加入一次
type CommunityMembership struct {
	ID          int64 `gorm:"primaryKey" json:"id"`
	CommunityID int64 `gorm:"type:bigint;not null;index;uniqueIndex:uk_community_user" json:"community_id,string"`
	UserID      int64 `gorm:"type:bigint;not null;index;uniqueIndex:uk_community_user" json:"user_id,string"`
	CreatedAt   Time  `json:"created_at"`
}

type CommunityDTO struct {
	CommunityID     int64    `json:"community_id,string"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Icon            string   `json:"icon"`
	Color           string   `json:"color"`
	Tags            []string `json:"tags"`
	CreatorID       int64    `json:"creator_id,string"`
	CreatorNickname string   `json:"creator_nickname"`
	CreatedAt       Time     `json:"created_at"`
}
