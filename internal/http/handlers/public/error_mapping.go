package public

import (
	"github.com/gcs-courier/internal/constants"
	handlershared "github.com/gcs-courier/internal/http/handlers/shared"
	"github.com/gcs-courier/internal/http/response"
	"github.com/gcs-courier/internal/service"

	"github.com/gin-gonic/gin"
)

var signUpErrorRules = handlershared.ConcatMappedHandlerErrors(
	handlershared.AccountErrorRules,
	handlershared.CaptchaErrorRules,
)

var signInErrorRules = handlershared.ConcatMappedHandlerErrors(
	handlershared.AccountErrorRules,
	handlershared.CaptchaErrorRules,
)

// signInFailReasons 登录失败原因，用于登录日志
var signInFailReasons = []struct {
	target error
	reason string
}{
	{target: service.ErrInvalidEmail, reason: constants.LoginLogFailReasonInvalidEmail},
	{target: service.ErrInvalidCredentials, reason: constants.LoginLogFailReasonInvalidCredentials},
	{target: service.ErrUserDisabled, reason: constants.LoginLogFailReasonUserDisabled},
	{target: service.ErrCaptchaRequired, reason: constants.LoginLogFailReasonCaptchaRequired},
	{target: service.ErrCaptchaInvalid, reason: constants.LoginLogFailReasonCaptchaInvalid},
	{target: service.ErrCaptchaConfigInvalid, reason: constants.LoginLogFailReasonCaptchaVerifyFailed},
}

func respondSignUpError(c *gin.Context, err error) {
	if handlershared.RespondPasswordPolicyError(c, err) {
		return
	}
	handlershared.RespondWithMappedError(c, err, signUpErrorRules, response.CodeInternal, "error.internal_error")
}

func respondSignInError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, signInErrorRules, response.CodeInternal, "error.internal_error")
}
