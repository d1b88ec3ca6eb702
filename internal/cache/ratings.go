// server/internal/cache/ratings.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"chefhub-kw-api-server/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const ratingTTL = 10 * time.Minute

// RatingAggregate là bản ghi rating của một chef được cache lại.
type RatingAggregate struct {
	Rating       float64 `json:"rating"`
	TotalRatings int     `json:"totalRatings"`
}

// RatingsCache cache rating aggregate của chef trong Redis để các trang danh
// sách không phải đọc lại document chef cho mỗi lượt xem.
// Cache là tùy chọn: client nil thì mọi thao tác là no-op.
type RatingsCache struct {
	client *redis.Client
}

// NewRatingsCache tạo cache từ config; addr trống thì trả về cache tắt.
func NewRatingsCache(cfg config.RedisConfig) *RatingsCache {
	if cfg.Addr == "" {
		return &RatingsCache{}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &RatingsCache{client: client}
}

// Enabled cho biết cache có đang hoạt động không.
func (c *RatingsCache) Enabled() bool { return c != nil && c.client != nil }

func ratingKey(chefID string) string { return fmt.Sprintf("chef:%s:rating", chefID) }

// Get trả về aggregate đã cache, hoặc (nil, nil) khi miss/tắt cache.
func (c *RatingsCache) Get(ctx context.Context, chefID string) (*RatingAggregate, error) {
	if !c.Enabled() {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, ratingKey(chefID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var agg RatingAggregate
	if err := json.Unmarshal([]byte(raw), &agg); err != nil {
		return nil, err
	}
	return &agg, nil
}

// Set ghi đè aggregate của một chef. Lỗi cache chỉ log; cache không bao giờ
// chặn đường ghi chính.
func (c *RatingsCache) Set(ctx context.Context, chefID string, agg RatingAggregate) {
	if !c.Enabled() {
		return
	}
	raw, err := json.Marshal(agg)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, ratingKey(chefID), raw, ratingTTL).Err(); err != nil {
		logrus.WithError(err).WithField("chefID", chefID).Warn("Failed to cache chef rating")
	}
}

// Invalidate xóa aggregate đã cache (gọi khi chef bị xóa).
func (c *RatingsCache) Invalidate(ctx context.Context, chefID string) {
	if !c.Enabled() {
		return
	}
	if err := c.client.Del(ctx, ratingKey(chefID)).Err(); err != nil {
		logrus.WithError(err).WithField("chefID", chefID).Warn("Failed to invalidate chef rating cache")
	}
}
