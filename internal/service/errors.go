package service

import (
	"errors"
	"strings"
)

var (
	// 通用
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// 账号与会话
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrWeakPassword       = errors.New("weak password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrRoleMissing        = errors.New("role assignment missing")

	// 验证码
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
	ErrCaptchaVerifyFailed  = errors.New("captcha verify failed")

	// 邮件
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")

	// 资料
	ErrProfileIncomplete    = errors.New("profile incomplete")
	ErrProfileFieldRequired = errors.New("profile field required")

	// 包裹
	ErrParcelTypeInvalid             = errors.New("parcel type invalid")
	ErrParcelWeightInvalid           = errors.New("parcel weight invalid")
	ErrParcelPincodeRequired         = errors.New("parcel pincode required")
	ErrParcelNotFound                = errors.New("parcel not found")
	ErrParcelAccessDenied            = errors.New("parcel access denied")
	ErrParcelStatusInvalid           = errors.New("parcel status invalid")
	ErrParcelStatusTransitionInvalid = errors.New("parcel status transition invalid")

	// 派送员管理
	ErrDispatcherPincodesRequired = errors.New("dispatcher pincodes required")
)

// ProfileIncompleteError 资料不完整，携带缺失字段
type ProfileIncompleteError struct {
	Missing []string
}

func (e *ProfileIncompleteError) Error() string {
	return "profile incomplete: " + strings.Join(e.Missing, ",")
}

// Is 与 ErrProfileIncomplete 匹配
func (e *ProfileIncompleteError) Is(target error) bool {
	return target == ErrProfileIncomplete
}

// MissingProfileFields 从错误链中提取缺失字段
func MissingProfileFields(err error) []string {
	var incomplete *ProfileIncompleteError
	if errors.As(err, &incomplete) {
		return incomplete.Missing
	}
	return nil
}
