package models

import "time"

type User struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"type:bigint;not null;unique" json:"user_id,string"`
	UserName  string    `gorm:"type:varchar(50);not null;unique" json:"username"`
	Email     string    `gorm:"type:varchar(64);not null;unique" json:"email"`
	Password  string    `gorm:"type:varchar(128);not null" json:"-"`
	Birthdate time.Time `gorm:"type:date;not null" json:"birthdate"`
	Nickname  string    `gorm:"type:varchar(150);not null" json:"nickname"`
	Bio       string    `gorm:"type:varchar(512)" json:"bio"`
	CreatedAt Time      `json:"created_at"`
	UpdatedAt Time      `json:"updated_at"`
}

type UserDTO struct {
	UserID   int64  `json:"user_id,string"`
	UserName string `json:"username"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Bio      string `json:"bio"`
}
