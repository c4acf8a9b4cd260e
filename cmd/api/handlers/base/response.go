package base

import (
	"context"
	"errors"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"BlogSphere.com/pkg/errno"
)

type Response struct {
	Code    int64       `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// SendResponse pack response
func SendResponse(ctx context.Context, c *app.RequestContext, err error, data interface{}) {
	Err := ConvertErr(ctx, err)
	c.JSON(consts.StatusOK, Response{
		Code:    Err.ErrCode,
		Message: Err.ErrMsg,
		Data:    data,
	})
}

// SendResult writes the flat {success, ...} body used by the browser
// facing endpoints. On failure only success and message are sent, with an
// HTTP status derived from the error code.
func SendResult(ctx context.Context, c *app.RequestContext, err error, fields utils.H) {
	if err != nil {
		Err := ConvertErr(ctx, err)
		c.JSON(HTTPStatus(Err), utils.H{"success": false, "message": Err.ErrMsg})
		return
	}
	body := utils.H{"success": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(consts.StatusOK, body)
}

// ConvertErr maps err to an ErrNo and logs the details of anything that
// is not one already.
func ConvertErr(ctx context.Context, err error) errno.ErrNo {
	Err := errno.ConvertErr(err)
	var known errno.ErrNo
	if err != nil && !errors.As(err, &known) {
		hlog.CtxErrorf(ctx, "request failed: %+v", err)
	}
	return Err
}

func HTTPStatus(err errno.ErrNo) int {
	switch err.ErrCode {
	case errno.SuccessCode:
		return consts.StatusOK
	case errno.AuthenticationRequiredCode, errno.TokenInvalidErrCode:
		return consts.StatusUnauthorized
	case errno.ForbiddenCode:
		return consts.StatusForbidden
	case errno.PostNotFoundCode, errno.CommentNotFoundCode, errno.UserNotExistCode, errno.CategoryNotFoundCode:
		return consts.StatusNotFound
	case errno.RateLimitedCode, errno.TooManyRequestsCode:
		return consts.StatusTooManyRequests
	case errno.PersistenceErrCode, errno.ServiceErrCode, errno.RedisErrCode:
		return consts.StatusInternalServerError
	}
	return consts.StatusBadRequest
}
