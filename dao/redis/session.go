package redis

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	beacon "github.com/urdekcah/beacon/errors"
	"github.com/urdekcah/beacon/models"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// SessionStore 服务端会话存储：内容放 redis hash，
// cookie 值是 "id.签名"，签名不对的 cookie 一律当作没有会话
type SessionStore struct {
	c       *Client
	ttl     time.Duration
	signKey []byte
}

func NewSessionStore(c *Client) *SessionStore {
	return &SessionStore{
		c:       c,
		ttl:     time.Duration(viper.GetInt64("service.session.expire_duration")) * time.Second,
		signKey: []byte(viper.GetString("service.session.sign_key")),
	}
}

// Create 生成新会话，返回要下发的 cookie 值
func (s *SessionStore) Create(userID int64, username, nickname string) (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", errors.Wrap(err, "redis:SessionStore.Create: rand")
	}
	id := hex.EncodeToString(raw)

	ctx, cancel := s.c.opCtx()
	defer cancel()

	key := KeySessionHashPF + id
	if err := s.c.rdb.HSet(ctx, key,
		"user_id", strconv.FormatInt(userID, 10),
		"username", username,
		"nickname", nickname,
	).Err(); err != nil {
		return "", errors.Wrap(err, "redis:SessionStore.Create: hset")
	}
	if err := s.c.rdb.Expire(ctx, key, s.ttl).Err(); err != nil {
		return "", errors.Wrap(err, "redis:SessionStore.Create: expire")
	}

	return id + "." + s.sign(id), nil
}

// Get 校验签名并加载会话，顺带续期；任何异常形态都归结为 "没有会话"
func (s *SessionStore) Get(cookieValue string) (*models.Session, error) {
	id, ok := s.verify(cookieValue)
	if !ok {
		return nil, beacon.ErrNoSuchSession
	}

	ctx, cancel := s.c.opCtx()
	defer cancel()

	key := KeySessionHashPF + id
	vals, err := s.c.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrap(err, "redis:SessionStore.Get: hgetall")
	}
	if len(vals) == 0 {
		return nil, beacon.ErrNoSuchSession
	}

	userID, err := strconv.ParseInt(vals["user_id"], 10, 64)
	if err != nil || userID == 0 {
		return nil, beacon.ErrNoSuchSession
	}

	// 活跃会话滑动续期
	if err := s.c.rdb.Expire(ctx, key, s.ttl).Err(); err != nil {
		return nil, errors.Wrap(err, "redis:SessionStore.Get: expire")
	}

	return &models.Session{
		ID:       id,
		UserID:   userID,
		UserName: vals["username"],
		Nickname: vals["nickname"],
	}, nil
}

func (s *SessionStore) Destroy(cookieValue string) error {
	id, ok := s.verify(cookieValue)
	if !ok {
		return beacon.ErrNoSuchSession
	}

	ctx, cancel := s.c.opCtx()
	defer cancel()
	err := s.c.rdb.Del(ctx, KeySessionHashPF+id).Err()
	return errors.Wrap(err, "redis:SessionStore.Destroy: del")
}

func (s *SessionStore) sign(id string) string {
	mac := hmac.New(sha256.New, s.signKey)
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (s *SessionStore) verify(cookieValue string) (string, bool) {
	id, sig, found := strings.Cut(cookieValue, ".")
	if !found || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(id))) {
		return "", false
	}
	return id, true
}
