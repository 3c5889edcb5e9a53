package models

// Session 服务端会话里缓存的用户身份，由签名 cookie 定位
type Session struct {
	ID       string `json:"id"`
	UserID   int64  `json:"user_id,string"`
	UserName string `json:"username"`
	Nickname string `json:"nickname"`
}
