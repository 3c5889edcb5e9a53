package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

// keys
// 规范：Key + KeyName + Type + (PF)前缀
const (
	KeySessionHashPF = "beacon:session:" // param: session_id, field: user_id/username/nickname
)

var Nil = redis.Nil

// Client 包装 go-redis 客户端，显式构造、显式注入
type Client struct {
	rdb     *redis.Client
	timeout time.Duration
}

func NewClient() (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", viper.GetString("redis.host"), viper.GetInt("redis.port")),
		Password: viper.GetString("redis.password"),
		DB:       viper.GetInt("redis.db"),
		PoolSize: viper.GetInt("redis.poolsize"),
	})

	c := &Client{
		rdb:     rdb,
		timeout: time.Duration(viper.GetInt64("redis.max_oper_time")) * time.Second,
	}

	ctx, cancel := c.opCtx()
	defer cancel()
	if cmd := rdb.Ping(ctx); cmd.Err() != nil {
		return nil, errors.Wrap(cmd.Err(), "redis:NewClient: ping")
	}
	return c, nil
}

func (c *Client) Close() error {
	return errors.Wrap(c.rdb.Close(), "redis:Close")
}

func (c *Client) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), c.timeout)
}
