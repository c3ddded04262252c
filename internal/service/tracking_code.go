package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/gcs-courier/internal/config"
	"github.com/gcs-courier/internal/constants"
	"github.com/gcs-courier/internal/logger"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultTrackingDigits      = 10
	defaultTrackingMaxAttempts = 5
)

var errTrackingCodeTaken = errors.New("tracking code taken")

// TrackingCodeGenerator 运单号生成器
type TrackingCodeGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// RandomTrackingCodeGenerator 前缀 + 随机数字
type RandomTrackingCodeGenerator struct {
	prefix string
	digits int
}

// NewRandomTrackingCodeGenerator 创建随机运单号生成器
func NewRandomTrackingCodeGenerator(cfg config.TrackingConfig) *RandomTrackingCodeGenerator {
	return &RandomTrackingCodeGenerator{
		prefix: resolveTrackingPrefix(cfg.Prefix),
		digits: positiveOrDefault(cfg.DigitLength, defaultTrackingDigits),
	}
}

// Generate 生成运单号
func (g *RandomTrackingCodeGenerator) Generate(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	digits, err := randomNumericCode(g.digits)
	if err != nil {
		return "", err
	}
	return g.prefix + digits, nil
}

// trackingCodeAllocator 带重试与兜底的运单号分配
type trackingCodeAllocator struct {
	generator   TrackingCodeGenerator
	exists      func(code string) (bool, error)
	prefix      string
	maxAttempts int
	now         func() time.Time
}

// Allocate 重试生成唯一运单号，全部失败时退回 前缀+毫秒时间戳
func (a *trackingCodeAllocator) Allocate(ctx context.Context) string {
	var code string
	operation := func() error {
		candidate, err := a.generator.Generate(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return err
		}
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			return errors.New("empty tracking code")
		}
		if a.exists != nil {
			taken, err := a.exists(candidate)
			if err != nil {
				return err
			}
			if taken {
				return errTrackingCodeTaken
			}
		}
		code = candidate
		return nil
	}

	policy := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(10*time.Millisecond),
		backoff.WithMaxInterval(100*time.Millisecond),
		backoff.WithMaxElapsedTime(2*time.Second),
	)
	attempts := positiveOrDefault(a.maxAttempts, defaultTrackingMaxAttempts)
	retryPolicy := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(attempts-1)), ctx)
	if err := backoff.Retry(operation, retryPolicy); err != nil {
		fallback := a.fallbackCode()
		logger.Warnw("tracking_code_fallback", "error", err, "tracking_code", fallback)
		return fallback
	}
	return code
}

func (a *trackingCodeAllocator) fallbackCode() string {
	now := time.Now
	if a.now != nil {
		now = a.now
	}
	return fmt.Sprintf("%s%d", resolveTrackingPrefix(a.prefix), now().UnixMilli())
}

func resolveTrackingPrefix(prefix string) string {
	trimmed := strings.ToUpper(strings.TrimSpace(prefix))
	if trimmed == "" {
		return constants.TrackingCodePrefix
	}
	return trimmed
}

// NormalizeTrackingCode 统一运单号格式
func NormalizeTrackingCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func randomNumericCode(length int) (string, error) {
	if length <= 0 {
		length = defaultTrackingDigits
	}
	var builder strings.Builder
	builder.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		builder.WriteByte(byte('0' + n.Int64()))
	}
	return builder.String(), nil
}

func positiveOrDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
