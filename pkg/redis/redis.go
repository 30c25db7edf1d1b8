package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"classtrack/backend/config"
)

// Client Redis 客户端封装
// 当前用于考勤统计报告缓存；后续可扩展分布式锁等场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 统计报告缓存 ──

const insightPrefix = "insight:report:"

// insightKey 缓存键：insight:report:{uid}:{semesterId}:{start}:{end}:{pct}
func insightKey(uid, semesterID, start, end string, pct float64) string {
	return fmt.Sprintf("%s%s:%s:%s:%s:%g", insightPrefix, uid, semesterID, start, end, pct)
}

// GetInsight 读取缓存的统计报告 JSON，未命中返回 ("", nil)
func (c *Client) GetInsight(ctx context.Context, uid, semesterID, start, end string, pct float64) (string, error) {
	val, err := c.rdb.Get(ctx, insightKey(uid, semesterID, start, end, pct)).Result()
	if err == goredis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// SetInsight 写入统计报告缓存
func (c *Client) SetInsight(ctx context.Context, uid, semesterID, start, end string, pct float64, payload string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // 缓存被禁用
	}
	return c.rdb.Set(ctx, insightKey(uid, semesterID, start, end, pct), payload, ttl).Err()
}

// InvalidateUser 删除某用户的全部统计缓存
// 考勤标记 / 课表或调整写入后调用，保证报告不读到过期数据
func (c *Client) InvalidateUser(ctx context.Context, uid string) error {
	pattern := insightPrefix + uid + ":*"
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// InvalidateAll 删除全部统计缓存
// 全局假日 / 全局调课写入影响所有用户，只能整体失效
func (c *Client) InvalidateAll(ctx context.Context) error {
	iter := c.rdb.Scan(ctx, 0, insightPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
