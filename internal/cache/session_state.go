package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/gcs-courier/internal/models"
)

const sessionStateCacheTTL = 10 * time.Minute

// SessionState 会话鉴权快照
// token_invalid_before 为 Unix 秒时间戳，0 表示未设置
// 角色与负责邮编在账号创建后不再变化，一并缓存
type SessionState struct {
	UserID             uint     `json:"user_id"`
	Email              string   `json:"email"`
	Role               string   `json:"role"`
	Status             string   `json:"status"`
	Pincodes           []string `json:"pincodes,omitempty"`
	TokenVersion       uint64   `json:"token_version"`
	TokenInvalidBefore int64    `json:"token_invalid_before"`
	UpdatedAt          int64    `json:"updated_at"`
}

func sessionStateKey(userID uint) string {
	return fmt.Sprintf("session:user:%d", userID)
}

// BuildSessionState 从账号构建会话快照
func BuildSessionState(user *models.User, role string, pincodes []string) *SessionState {
	if user == nil {
		return nil
	}
	state := &SessionState{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         role,
		Status:       user.Status,
		Pincodes:     pincodes,
		TokenVersion: user.TokenVersion,
		UpdatedAt:    time.Now().Unix(),
	}
	if user.TokenInvalidBefore != nil {
		state.TokenInvalidBefore = user.TokenInvalidBefore.Unix()
	}
	return state
}

// GetSessionState 获取会话快照
func GetSessionState(ctx context.Context, userID uint) (*SessionState, bool, error) {
	if userID == 0 {
		return nil, false, nil
	}
	var state SessionState
	hit, err := GetJSON(ctx, sessionStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetSessionState 写入会话快照
func SetSessionState(ctx context.Context, state *SessionState) error {
	if state == nil || state.UserID == 0 {
		return nil
	}
	return SetJSON(ctx, sessionStateKey(state.UserID), state, sessionStateCacheTTL)
}

// DelSessionState 删除会话快照
func DelSessionState(ctx context.Context, userID uint) error {
	if userID == 0 {
		return nil
	}
	return Del(ctx, sessionStateKey(userID))
}
