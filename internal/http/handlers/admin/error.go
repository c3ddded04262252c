package admin

import (
	handlershared "github.com/gcs-courier/internal/http/handlers/shared"
	"github.com/gcs-courier/internal/http/response"
	"github.com/gcs-courier/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

var adminParcelErrorRules = handlershared.ConcatMappedHandlerErrors(
	handlershared.AccessErrorRules,
	handlershared.ParcelErrorRules,
)

var dispatcherCreateErrorRules = handlershared.ConcatMappedHandlerErrors(
	handlershared.AccessErrorRules,
	[]handlershared.MappedHandlerError{
		{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
		{Target: service.ErrEmailExists, Code: response.CodeBadRequest, Key: "error.email_exists"},
		{Target: service.ErrDispatcherPincodesRequired, Code: response.CodeBadRequest, Key: "error.dispatcher_pincodes_required"},
	},
)

func respondAdminParcelError(c *gin.Context, err error) {
	handlershared.RespondWithMappedError(c, err, adminParcelErrorRules, response.CodeInternal, "error.internal_error")
}

func respondDispatcherCreateError(c *gin.Context, err error) {
	if handlershared.RespondPasswordPolicyError(c, err) {
		return
	}
	handlershared.RespondWithMappedError(c, err, dispatcherCreateErrorRules, response.CodeInternal, "error.internal_error")
}
