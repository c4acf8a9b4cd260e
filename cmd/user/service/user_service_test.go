package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BlogSphere.com/cmd/model"
	"BlogSphere.com/cmd/user/dal/db"
	"BlogSphere.com/pkg/database/dbtest"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
)

func newUserService(t *testing.T) (*UserService, *security.JWTManager) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	tokens := security.NewJWTManager("secret", time.Hour)
	svc := NewUserService(db.NewUserDB(dbtest.New(t)), tokens, security.NewSlidingWindowLimiter(client),
		func(email string) bool { return email == "boss@example.com" })
	return svc, tokens
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(t)

	user, err := svc.Register(ctx, &RegisterRequest{UserName: "alice", Email: "Alice@Example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.Password)

	boss, err := svc.Register(ctx, &RegisterRequest{UserName: "boss", Email: "BOSS@example.com", Password: "hunter22"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, boss.Role)

	_, err = svc.Register(ctx, &RegisterRequest{UserName: "alice", Email: "other@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, errno.UserAlreadyExist)
	_, err = svc.Register(ctx, &RegisterRequest{UserName: "alice2", Email: "alice@example.com", Password: "hunter22"})
	assert.ErrorIs(t, err, errno.UserAlreadyExist)

	for _, req := range []*RegisterRequest{
		{UserName: "al", Email: "a@example.com", Password: "hunter22"},
		{UserName: "carol", Email: "nope", Password: "hunter22"},
		{UserName: "carol", Email: "c@example.com", Password: "123"},
	} {
		_, err = svc.Register(ctx, req)
		assert.ErrorIs(t, err, errno.ParamErr)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, tokens := newUserService(t)
	_, err := svc.Register(ctx, &RegisterRequest{UserName: "alice", Email: "alice@example.com", Password: "hunter22"})
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		res, err := svc.Login(ctx, "alice", "hunter22")
		require.NoError(t, err)
		identity, err := tokens.ValidateToken(res.Token)
		require.NoError(t, err)
		assert.Equal(t, res.User.UserId, identity.UserID)
		assert.Equal(t, model.RoleUser, identity.Role)
	})

	t.Run("wrong password then throttled", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			_, err := svc.Login(ctx, "alice", "wrong")
			assert.ErrorIs(t, err, errno.LoginFailed)
		}
		_, err := svc.Login(ctx, "alice", "wrong")
		assert.ErrorIs(t, err, errno.TooManyRequests)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody", "whatever")
		assert.ErrorIs(t, err, errno.LoginFailed)
	})
}

func TestSetRole(t *testing.T) {
	ctx := context.Background()
	svc, _ := newUserService(t)
	boss, err := svc.Register(ctx, &RegisterRequest{UserName: "boss", Email: "boss@example.com", Password: "hunter22"})
	require.NoError(t, err)
	bob, err := svc.Register(ctx, &RegisterRequest{UserName: "bob", Email: "bob@example.com", Password: "hunter22"})
	require.NoError(t, err)

	bossId := &security.Identity{UserID: boss.UserId, Username: boss.UserName, Role: boss.Role}
	bobId := &security.Identity{UserID: bob.UserId, Username: bob.UserName, Role: bob.Role}

	_, err = svc.SetRole(ctx, bobId, bob.UserId, model.RoleAdmin)
	assert.ErrorIs(t, err, errno.Forbidden)
	_, err = svc.SetRole(ctx, bossId, boss.UserId, model.RoleUser)
	assert.ErrorIs(t, err, errno.ParamErr)
	_, err = svc.SetRole(ctx, bossId, 999, model.RoleAdmin)
	assert.ErrorIs(t, err, errno.UserNotExist)

	updated, err := svc.SetRole(ctx, bossId, bob.UserId, model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)

	list, total, err := svc.ListUsers(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, model.RoleAdmin, list[1].Role)
}
