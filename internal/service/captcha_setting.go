package service

import (
	"strings"

	"github.com/gcs-courier/internal/config"
	"github.com/gcs-courier/internal/constants"
)

// CaptchaSceneSetting 验证码场景开关
// sign_in 作用于登录，sign_up 作用于注册
type CaptchaSceneSetting struct {
	SignIn bool `json:"sign_in"`
	SignUp bool `json:"sign_up"`
}

// CaptchaImageSetting 图片验证码参数
type CaptchaImageSetting struct {
	Length        int `json:"length"`
	Width         int `json:"width"`
	Height        int `json:"height"`
	NoiseCount    int `json:"noise_count"`
	ShowLine      int `json:"show_line"`
	ExpireSeconds int `json:"expire_seconds"`
	MaxStore      int `json:"max_store"`
}

// CaptchaSetting 验证码配置
type CaptchaSetting struct {
	Provider string              `json:"provider"`
	Scenes   CaptchaSceneSetting `json:"scenes"`
	Image    CaptchaImageSetting `json:"image"`
}

// PublicCaptchaSetting 可下发前端的验证码配置
type PublicCaptchaSetting struct {
	Provider string              `json:"provider"`
	Scenes   CaptchaSceneSetting `json:"scenes"`
}

// CaptchaDefaultSetting 根据静态配置生成验证码设置
func CaptchaDefaultSetting(cfg config.CaptchaConfig) CaptchaSetting {
	return NormalizeCaptchaSetting(CaptchaSetting{
		Provider: cfg.Provider,
		Scenes: CaptchaSceneSetting{
			SignIn: cfg.Scenes.SignIn,
			SignUp: cfg.Scenes.SignUp,
		},
		Image: CaptchaImageSetting{
			Length:        cfg.Image.Length,
			Width:         cfg.Image.Width,
			Height:        cfg.Image.Height,
			NoiseCount:    cfg.Image.NoiseCount,
			ShowLine:      cfg.Image.ShowLine,
			ExpireSeconds: cfg.Image.ExpireSeconds,
			MaxStore:      cfg.Image.MaxStore,
		},
	})
}

// NormalizeCaptchaSetting 归一化验证码配置
func NormalizeCaptchaSetting(setting CaptchaSetting) CaptchaSetting {
	provider := strings.ToLower(strings.TrimSpace(setting.Provider))
	switch provider {
	case constants.CaptchaProviderImage, constants.CaptchaProviderNone:
		setting.Provider = provider
	default:
		setting.Provider = constants.CaptchaProviderNone
	}

	if setting.Image.Length < 4 || setting.Image.Length > 8 {
		setting.Image.Length = 5
	}
	if setting.Image.Width < 100 {
		setting.Image.Width = 240
	}
	if setting.Image.Height < 40 {
		setting.Image.Height = 80
	}
	if setting.Image.NoiseCount < 0 {
		setting.Image.NoiseCount = 2
	}
	if setting.Image.ShowLine < 0 {
		setting.Image.ShowLine = 2
	}
	if setting.Image.ExpireSeconds < 30 || setting.Image.ExpireSeconds > 3600 {
		setting.Image.ExpireSeconds = 300
	}
	if setting.Image.MaxStore < 100 {
		setting.Image.MaxStore = 10240
	}
	return setting
}

// IsSceneEnabled 场景是否需要验证码
func (s CaptchaSetting) IsSceneEnabled(scene string) bool {
	if s.Provider == constants.CaptchaProviderNone {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scene)) {
	case constants.CaptchaSceneSignIn:
		return s.Scenes.SignIn
	case constants.CaptchaSceneSignUp:
		return s.Scenes.SignUp
	default:
		return false
	}
}

// Public 裁剪为公开配置
func (s CaptchaSetting) Public() PublicCaptchaSetting {
	return PublicCaptchaSetting{Provider: s.Provider, Scenes: s.Scenes}
}
