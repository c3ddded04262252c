package customer

import (
	handlershared "github.com/gcs-courier/internal/http/handlers/shared"
	"github.com/gcs-courier/internal/http/response"

	"github.com/gin-gonic/gin"
)

var parcelErrorRules = handlershared.ConcatMappedHandlerErrors(
	handlershared.AccessErrorRules,
	handlershared.ParcelErrorRules,
)

func respondParcelError(c *gin.Context, err error) {
	if handlershared.RespondProfileIncomplete(c, err) {
		return
	}
	handlershared.RespondWithMappedError(c, err, parcelErrorRules, response.CodeInternal, "error.internal_error")
}

func respondProfileError(c *gin.Context, err error) {
	if handlershared.RespondProfileIncomplete(c, err) {
		return
	}
	handlershared.RespondError(c, response.CodeInternal, "error.internal_error", err)
}
