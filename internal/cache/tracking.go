package cache

import (
	"context"
	"strings"
	"time"
)

func trackingKey(code string) string {
	return "track:" + strings.ToUpper(strings.TrimSpace(code))
}

// GetTracking 读取运单查询缓存
func GetTracking(ctx context.Context, code string, dest interface{}) (bool, error) {
	if strings.TrimSpace(code) == "" {
		return false, nil
	}
	return GetJSON(ctx, trackingKey(code), dest)
}

// SetTracking 写入运单查询缓存
func SetTracking(ctx context.Context, code string, value interface{}, ttl time.Duration) error {
	if strings.TrimSpace(code) == "" || ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, trackingKey(code), value, ttl)
}

// DelTracking 状态变更后删除运单查询缓存
func DelTracking(ctx context.Context, code string) error {
	if strings.TrimSpace(code) == "" {
		return nil
	}
	return Del(ctx, trackingKey(code))
}
