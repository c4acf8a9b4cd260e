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
	"BlogSphere.com/cmd/user/dal/db"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
	"BlogSphere.com/pkg/utils"
)

const (
	minPasswordLength = 6
	loginAttemptLimit = 5
	loginWindow       = 15 * time.Minute
	loginAttemptKey   = "login_attempt:%s"
)

type RegisterRequest struct {
	UserName string
	Email    string
	Password string
}

type LoginResult struct {
	User   *model.User
	Token  string
	Expire time.Time
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*security.RateLimitResult, error)
}

type UserService struct {
	users        db.UserRepo
	tokens       *security.JWTManager
	limiter      RateLimiter
	isAdminEmail func(email string) bool
}

// NewUserService builds the service. isAdminEmail decides which new accounts
// start as administrators; limiter may be nil.
func NewUserService(users db.UserRepo, tokens *security.JWTManager, limiter RateLimiter, isAdminEmail func(string) bool) *UserService {
	if isAdminEmail == nil {
		isAdminEmail = func(string) bool { return false }
	}
	return &UserService{users: users, tokens: tokens, limiter: limiter, isAdminEmail: isAdminEmail}
}

func (service *UserService) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	name := strings.TrimSpace(req.UserName)
	email := utils.NormalizeEmail(req.Email)
	if n := utf8.RuneCountInString(name); n < 3 || n > 64 {
		return nil, errno.ParamErr.WithMessage("Username must be between 3 and 64 characters")
	}
	if !utils.IsValidEmail(email) {
		return nil, errno.ParamErr.WithMessage("Invalid email address")
	}
	if len(req.Password) < minPasswordLength {
		return nil, errno.ParamErr.WithMessage("Password must be at least 6 characters")
	}

	exists, err := service.users.UserExists(ctx, name, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errno.UserAlreadyExist
	}

	password, err := utils.Crypt(req.Password)
	if err != nil {
		return nil, errors.WithMessage(err, "Password fail to crypt")
	}
	user := &model.User{
		UserName: name,
		Email:    email,
		Password: password,
		Role:     model.RoleUser,
	}
	if service.isAdminEmail(email) {
		user.Role = model.RoleAdmin
	}
	if err = service.users.CreateUser(ctx, user); err != nil {
		return nil, errors.WithMessage(err, "dao.CreateUser failed")
	}
	hlog.CtxInfof(ctx, "registered user %d (%s) role=%s", user.UserId, user.UserName, user.Role)
	return user, nil
}

// Login checks the credentials and issues an access token. Repeated
// failures for the same name are throttled.
func (service *UserService) Login(ctx context.Context, userName, password string) (*LoginResult, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" || password == "" {
		return nil, errno.LoginFailed
	}

	user, err := service.users.GetUserByName(ctx, userName)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetUserByName failed")
	}
	if user == nil {
		return nil, service.loginFailed(ctx, userName)
	}
	if _, ok := utils.VerifyPassword(password, user.Password); !ok {
		return nil, service.loginFailed(ctx, userName)
	}

	token, expire, err := service.tokens.GenerateToken(&security.Identity{
		UserID:   user.UserId,
		Username: user.UserName,
		Role:     user.Role,
	})
	if err != nil {
		return nil, errors.WithMessage(err, "generate token")
	}
	return &LoginResult{User: user, Token: token, Expire: expire}, nil
}

func (service *UserService) loginFailed(ctx context.Context, userName string) error {
	if service.limiter == nil {
		return errno.LoginFailed
	}
	res, err := service.limiter.Allow(ctx, fmt.Sprintf(loginAttemptKey, strings.ToLower(userName)), loginAttemptLimit, loginWindow)
	if err != nil {
		hlog.CtxWarnf(ctx, "login limiter unavailable: %v", err)
		return errno.LoginFailed
	}
	if !res.Allowed {
		return errno.TooManyRequests
	}
	return errno.LoginFailed
}

func (service *UserService) GetUser(ctx context.Context, userId int64) (*model.User, error) {
	user, err := service.users.GetUser(ctx, userId)
	if err != nil {
		return nil, errors.WithMessage(err, "dao.GetUser failed")
	}
	if user == nil {
		return nil, errno.UserNotExist
	}
	return user, nil
}

// SetRole promotes or demotes a user. Administrators cannot demote
// themselves.
func (service *UserService) SetRole(ctx context.Context, identity *security.Identity, userId int64, role string) (*model.User, error) {
	if !identity.IsAdmin() {
		return nil, errno.Forbidden
	}
	if role != model.RoleUser && role != model.RoleAdmin {
		return nil, errno.ParamErr.WithMessage("Unknown role")
	}
	if userId == identity.UserID && role != model.RoleAdmin {
		return nil, errno.ParamErr.WithMessage("You cannot remove your own admin role")
	}
	user, err := service.GetUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if err = service.users.UpdateRole(ctx, userId, role); err != nil {
		return nil, errors.WithMessage(err, "dao.UpdateRole failed")
	}
	user.Role = role
	return user, nil
}

func (service *UserService) ListUsers(ctx context.Context, pageNum, pageSize int64) ([]*model.User, int64, error) {
	pageNum, pageSize = utils.NormalizePage(pageNum, pageSize)
	list, total, err := service.users.ListUsers(ctx, utils.Offset(pageNum, pageSize), int(pageSize))
	if err != nil {
		return nil, 0, errors.WithMessage(err, "dao.ListUsers failed")
	}
	return list, total, nil
}
