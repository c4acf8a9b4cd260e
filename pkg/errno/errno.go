package errno

import (
	"errors"
	"fmt"
)

const (
	SuccessCode = 0

	ServiceErrCode      = 10001
	ParamErrCode        = 10002
	PersistenceErrCode  = 10003
	RedisErrCode        = 10004
	TokenInvalidErrCode = 10005

	AuthenticationRequiredCode = 20001
	ForbiddenCode              = 20002
	LoginFailedCode            = 20003
	UserAlreadyExistCode       = 20004
	UserNotExistCode           = 20005

	PostNotFoundCode         = 30001
	InvalidContentCode       = 30002
	InvalidParentCode        = 30003
	InvalidGuestIdentityCode = 30004
	RateLimitedCode          = 30005
	CommentNotFoundCode      = 30006
	InvalidStatusCode        = 30007
	DislikeDisabledCode      = 30008
	CategoryNotFoundCode     = 30009
	TooManyRequestsCode      = 30010
)

type ErrNo struct {
	ErrCode int64
	ErrMsg  string
}

func (e ErrNo) Error() string {
	return fmt.Sprintf("err_code=%d, err_msg=%s", e.ErrCode, e.ErrMsg)
}

func NewErrNo(code int64, msg string) ErrNo {
	return ErrNo{code, msg}
}

// WithMessage keeps the code and replaces the user facing message.
func (e ErrNo) WithMessage(msg string) ErrNo {
	e.ErrMsg = msg
	return e
}

// Is matches on the code only, so errors.Is works after WithMessage.
func (e ErrNo) Is(target error) bool {
	var t ErrNo
	if !errors.As(target, &t) {
		return false
	}
	return e.ErrCode == t.ErrCode
}

var (
	Success          = NewErrNo(SuccessCode, "Success")
	ServiceErr       = NewErrNo(ServiceErrCode, "Service is unable to start successfully")
	ParamErr         = NewErrNo(ParamErrCode, "Wrong Parameter has been given")
	PersistenceErr   = NewErrNo(PersistenceErrCode, "Server error processing request")
	RedisErr         = NewErrNo(RedisErrCode, "Cache is unavailable")
	TokenInvalidErr  = NewErrNo(TokenInvalidErrCode, "Token is invalid or expired")
	TooManyRequests  = NewErrNo(TooManyRequestsCode, "Too many requests, please slow down")
	Forbidden        = NewErrNo(ForbiddenCode, "You are not allowed to perform this action")
	LoginFailed      = NewErrNo(LoginFailedCode, "Wrong username or password")
	UserAlreadyExist = NewErrNo(UserAlreadyExistCode, "User already exists")
	UserNotExist     = NewErrNo(UserNotExistCode, "User does not exist")

	AuthenticationRequired = NewErrNo(AuthenticationRequiredCode, "Please log in to continue")
	PostNotFound           = NewErrNo(PostNotFoundCode, "Post not found")
	InvalidContent         = NewErrNo(InvalidContentCode, "Comment must be between 1 and 1000 characters")
	InvalidParent          = NewErrNo(InvalidParentCode, "The comment you are replying to does not exist")
	InvalidGuestIdentity   = NewErrNo(InvalidGuestIdentityCode, "Please provide a valid name and email")
	RateLimited            = NewErrNo(RateLimitedCode, "You are commenting too fast, please wait a moment")
	CommentNotFound        = NewErrNo(CommentNotFoundCode, "Comment not found")
	InvalidStatus          = NewErrNo(InvalidStatusCode, "Unknown status")
	DislikeDisabled        = NewErrNo(DislikeDisabledCode, "Dislikes are not enabled for this post")
	CategoryNotFound       = NewErrNo(CategoryNotFoundCode, "Category not found")
)

// ConvertErr converts an error to an ErrNo. Anything that is not already an
// ErrNo is reported as PersistenceErr; the original error is never echoed.
func ConvertErr(err error) ErrNo {
	if err == nil {
		return Success
	}
	Err := ErrNo{}
	if errors.As(err, &Err) {
		return Err
	}
	return PersistenceErr
}
