package shared

import (
	"errors"

	"github.com/gcs-courier/internal/constants"
	"github.com/gcs-courier/internal/http/response"
	"github.com/gcs-courier/internal/i18n"
	"github.com/gcs-courier/internal/service"

	"github.com/gin-gonic/gin"
)

// MappedHandlerError 定义业务错误到接口错误响应的映射关系。
type MappedHandlerError struct {
	Target error
	Code   int
	Key    string
}

// RespondWithMappedError 按规则表映射错误，未命中时使用兜底响应并记录原始错误。
func RespondWithMappedError(c *gin.Context, err error, rules []MappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// ConcatMappedHandlerErrors 合并多组规则。
func ConcatMappedHandlerErrors(groups ...[]MappedHandlerError) []MappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// AccessErrorRules 身份与访问判定
var AccessErrorRules = []MappedHandlerError{
	{Target: service.ErrForbidden, Code: response.CodeForbidden, Key: "error.forbidden"},
	{Target: service.ErrParcelAccessDenied, Code: response.CodeForbidden, Key: "error.parcel_access_denied"},
}

// ParcelErrorRules 包裹相关
var ParcelErrorRules = []MappedHandlerError{
	{Target: service.ErrParcelTypeInvalid, Code: response.CodeBadRequest, Key: "error.parcel_type_invalid"},
	{Target: service.ErrParcelWeightInvalid, Code: response.CodeBadRequest, Key: "error.parcel_weight_invalid"},
	{Target: service.ErrParcelPincodeRequired, Code: response.CodeBadRequest, Key: "error.parcel_pincode_required"},
	{Target: service.ErrParcelNotFound, Code: response.CodeNotFound, Key: "error.parcel_not_found"},
	{Target: service.ErrParcelStatusInvalid, Code: response.CodeBadRequest, Key: "error.parcel_status_invalid"},
	{Target: service.ErrParcelStatusTransitionInvalid, Code: response.CodeBadRequest, Key: "error.parcel_status_transition_invalid"},
}

// AccountErrorRules 账号与会话
var AccountErrorRules = []MappedHandlerError{
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrEmailExists, Code: response.CodeBadRequest, Key: "error.email_exists"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
	{Target: service.ErrRoleMissing, Code: response.CodeUnauthorized, Key: "error.role_missing"},
	{Target: service.ErrInvalidToken, Code: response.CodeUnauthorized, Key: "error.token_invalid"},
	{Target: service.ErrTokenRevoked, Code: response.CodeUnauthorized, Key: "error.token_revoked"},
}

// CaptchaErrorRules 验证码
var CaptchaErrorRules = []MappedHandlerError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_config_invalid"},
}

// RespondPasswordPolicyError 按密码策略错误返回带参数的提示。
func RespondPasswordPolicyError(c *gin.Context, err error) bool {
	if !errors.Is(err, service.ErrWeakPassword) {
		return false
	}
	var perr interface {
		Key() string
		Args() []interface{}
	}
	if errors.As(err, &perr) {
		msg := i18n.Sprintf(i18n.ResolveLocale(c), perr.Key(), perr.Args()...)
		RespondErrorWithMsg(c, response.CodeBadRequest, msg, nil)
		return true
	}
	RespondError(c, response.CodeBadRequest, "error.password_weak", nil)
	return true
}

// RespondProfileIncomplete 资料不完整时返回缺失字段并引导至资料页。
func RespondProfileIncomplete(c *gin.Context, err error) bool {
	if !errors.Is(err, service.ErrProfileIncomplete) {
		return false
	}
	missing := service.MissingProfileFields(err)
	if missing == nil {
		missing = []string{}
	}
	RespondErrorWithData(c, response.CodeBadRequest, "error.profile_incomplete", nil, gin.H{
		"missing_fields": missing,
		"redirect":       constants.LandingProfile,
	})
	return true
}
