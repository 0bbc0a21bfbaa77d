package dao

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// 购物车随会话过期，不做独立持久化
const cartTTL = 7 * 24 * time.Hour

type CartDao struct {
	redis redis.UniversalClient
}

func NewCartDao(rdb redis.UniversalClient) *CartDao {
	return &CartDao{redis: rdb}
}

func cartKey(userID int64) string {
	return fmt.Sprintf("cart:user:%d", userID)
}

// AddItem 数量累加写入（同一商品重复加购为数量叠加）
func (d *CartDao) AddItem(ctx context.Context, userID, productID int64, qty int32) error {
	key := cartKey(userID)
	pipe := d.redis.TxPipeline()
	pipe.HIncrBy(ctx, key, strconv.FormatInt(productID, 10), int64(qty))
	pipe.Expire(ctx, key, cartTTL)
	_, err := pipe.Exec(ctx)
	return err
}

// RemoveItem 移除单个商品
func (d *CartDao) RemoveItem(ctx context.Context, userID, productID int64) error {
	return d.redis.HDel(ctx, cartKey(userID), strconv.FormatInt(productID, 10)).Err()
}

// Clear 清空购物车
func (d *CartDao) Clear(ctx context.Context, userID int64) error {
	return d.redis.Del(ctx, cartKey(userID)).Err()
}

// GetCart 读取购物车全部条目 product_id -> qty
func (d *CartDao) GetCart(ctx context.Context, userID int64) (map[int64]int32, error) {
	raw, err := d.redis.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	cart := make(map[int64]int32, len(raw))
	for k, v := range raw {
		pid, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.ParseInt(v, 10, 32)
		if err != nil || qty <= 0 {
			continue
		}
		cart[pid] = int32(qty)
	}
	return cart, nil
}
