package logic

import "github.com/urdekcah/beacon/models"

// SessionStore 会话存储能力，生产实现在 dao/redis
type SessionStore interface {
	Create(userID int64, username, nickname string) (string, error)
	Get(cookieValue string) (*models.Session, error)
	Destroy(cookieValue string) error
}
