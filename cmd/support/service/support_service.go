package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"

	"BlogSphere.com/cmd/model"
	"BlogSphere.com/cmd/support/dal/db"
	"BlogSphere.com/pkg/constants"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
	"BlogSphere.com/pkg/utils"
)

const (
	supportLimit     = 3
	supportWindow    = 10 * time.Minute
	supportRateLimit = "support_rate_limit:%s"
)

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*security.RateLimitResult, error)
}

type SupportRequest struct {
	Name    string
	Email   string
	Message string
}

type SupportService struct {
	messages db.SupportRepo
	limiter  RateLimiter
	now      func() time.Time
}

// NewSupportService builds the service. limiter may be nil.
func NewSupportService(messages db.SupportRepo, limiter RateLimiter) *SupportService {
	return &SupportService{messages: messages, limiter: limiter, now: time.Now}
}

// SubmitMessage stores a message from the contact widget. Logged in users
// may omit name and email.
func (service *SupportService) SubmitMessage(ctx context.Context, identity *security.Identity, req *SupportRequest) (*model.SupportMessage, error) {
	msg := &model.SupportMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}
	if identity != nil {
		userId := identity.UserID
		msg.UserId = &userId
		if msg.Name == "" {
			msg.Name = identity.Username
		}
	}

	if msg.Message == "" || utf8.RuneCountInString(msg.Message) > constants.MaxSupportMessageSize {
		return nil, errno.ParamErr.WithMessage("Message must be between 1 and 2000 characters")
	}
	if msg.Name == "" || utf8.RuneCountInString(msg.Name) > constants.MaxGuestNameLength || !utils.IsValidEmail(msg.Email) {
		return nil, errno.InvalidGuestIdentity
	}

	if service.limiter != nil {
		key := fmt.Sprintf(supportRateLimit, utils.NormalizeEmail(msg.Email))
		res, err := service.limiter.Allow(ctx, key, supportLimit, supportWindow)
		if err != nil {
			hlog.CtxWarnf(ctx, "support rate limiter unavailable: %v", err)
		} else if !res.Allowed {
			return nil, errno.TooManyRequests
		}
	}

	if err := service.messages.CreateMessage(ctx, msg); err != nil {
		return nil, errors.WithMessage(err, "create support message")
	}
	return msg, nil
}

func (service *SupportService) ListMessages(ctx context.Context, resolved *bool, pageNum, pageSize int64) ([]*model.SupportMessage, int64, error) {
	pageNum, pageSize = utils.NormalizePage(pageNum, pageSize)
	list, total, err := service.messages.ListMessages(ctx, resolved, utils.Offset(pageNum, pageSize), int(pageSize))
	if err != nil {
		return nil, 0, errors.WithMessage(err, "list support messages")
	}
	return list, total, nil
}

func (service *SupportService) ResolveMessage(ctx context.Context, identity *security.Identity, messageId int64) (*model.SupportMessage, error) {
	if !identity.IsAdmin() {
		return nil, errno.Forbidden
	}
	msg, err := service.messages.GetMessage(ctx, messageId)
	if err != nil {
		return nil, errors.WithMessage(err, "load support message")
	}
	if msg == nil {
		return nil, errno.ParamErr.WithMessage("Support message not found")
	}
	if msg.Resolved {
		return msg, nil
	}
	at := service.now()
	if err = service.messages.ResolveMessage(ctx, messageId, at); err != nil {
		return nil, errors.WithMessage(err, "resolve support message")
	}
	msg.Resolved = true
	msg.ResolvedAt = &at
	return msg, nil
}
