package public

import (
	"errors"
	"strings"

	"github.com/gcs-courier/internal/constants"
	handlershared "github.com/gcs-courier/internal/http/handlers/shared"
	"github.com/gcs-courier/internal/http/response"
	"github.com/gcs-courier/internal/i18n"
	"github.com/gcs-courier/internal/service"

	"github.com/gin-gonic/gin"
)

// CredentialsRequest 注册/登录请求
type CredentialsRequest struct {
	Email          string                              `json:"email" binding:"required"`
	Password       string                              `json:"password" binding:"required"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// SignUp 客户注册
func (h *Handler) SignUp(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneSignUp, req.CaptchaPayload.ToServicePayload()); err != nil {
			respondSignUpError(c, err)
			return
		}
	}

	result, err := h.SessionService.SignUp(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondSignUpError(c, err)
		return
	}
	response.Success(c, sessionPayload(result))
}

// SignIn 登录，成功与失败均记录登录日志
func (h *Handler) SignIn(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.recordSignIn(c, req.Email, 0, constants.LoginLogStatusFailed, constants.LoginLogFailReasonBadRequest)
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if h.CaptchaService != nil {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneSignIn, req.CaptchaPayload.ToServicePayload()); err != nil {
			h.recordSignIn(c, req.Email, 0, constants.LoginLogStatusFailed, resolveSignInFailReason(err))
			respondSignInError(c, err)
			return
		}
	}

	result, err := h.SessionService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.recordSignIn(c, req.Email, 0, constants.LoginLogStatusFailed, resolveSignInFailReason(err))
		respondSignInError(c, err)
		return
	}

	h.recordSignIn(c, result.User.Email, result.User.ID, constants.LoginLogStatusSuccess, "")
	response.Success(c, sessionPayload(result))
}

// SignOut 注销当前账号的全部会话
func (h *Handler) SignOut(c *gin.Context) {
	identity, ok := handlershared.GetIdentity(c)
	if !ok {
		handlershared.RespondErrorWithData(c, response.CodeUnauthorized, "error.unauthorized", nil, gin.H{"redirect": constants.LandingAuth})
		return
	}
	if err := h.SessionService.SignOut(c.Request.Context(), identity.UserID); err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "success.sign_out"), gin.H{
		"redirect": constants.LandingAuth,
	})
}

// GetSession 当前会话身份，未登录时返回 /auth 落地页
func (h *Handler) GetSession(c *gin.Context) {
	identity, ok := handlershared.GetIdentity(c)
	if !ok {
		response.Success(c, gin.H{
			"authenticated": false,
			"landing":       constants.LandingAuth,
		})
		return
	}
	response.Success(c, gin.H{
		"authenticated": true,
		"identity":      identity,
		"landing":       identity.Landing(),
	})
}

func (h *Handler) recordSignIn(c *gin.Context, email string, userID uint, status, failReason string) {
	if h == nil || h.UserLoginLogService == nil {
		return
	}
	if err := h.UserLoginLogService.Record(service.RecordUserLoginInput{
		UserID:     userID,
		Email:      email,
		Status:     status,
		FailReason: failReason,
		ClientIP:   c.ClientIP(),
		UserAgent:  c.GetHeader("User-Agent"),
		RequestID:  strings.TrimSpace(requestID(c)),
	}); err != nil {
		handlershared.RequestLog(c).Warnw("sign_in_log_record_failed", "email", email, "error", err)
	}
}

func resolveSignInFailReason(err error) string {
	for _, item := range signInFailReasons {
		if errors.Is(err, item.target) {
			return item.reason
		}
	}
	return constants.LoginLogFailReasonInternalError
}

func sessionPayload(result *service.SessionResult) gin.H {
	return gin.H{
		"user": gin.H{
			"id":    result.User.ID,
			"email": result.User.Email,
			"role":  result.Identity.Role,
		},
		"identity":   result.Identity,
		"token":      result.Token,
		"expires_at": result.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
		"landing":    result.Identity.Landing(),
	}
}
