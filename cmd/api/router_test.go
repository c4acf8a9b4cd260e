package main

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/router/authfunc"
	"BlogSphere.com/cmd/interaction/service"
	"BlogSphere.com/pkg/database/dbtest"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/security"
	"BlogSphere.com/pkg/utils"
)

type apiClient struct {
	t      *testing.T
	engine *route.Engine
}

func newAPI(t *testing.T) *apiClient {
	tokens := security.NewJWTManager("test-secret", time.Hour)
	clients.Init(&clients.Deps{
		DB:           dbtest.New(t),
		Tokens:       tokens,
		IsAdminEmail: func(email string) bool { return email == "admin@example.com" },
	})
	r := route.NewEngine(config.NewOptions([]config.Option{}))
	r.Use(authfunc.Identify(tokens, clients.UserClient))
	register(r)
	return &apiClient{t: t, engine: r}
}

func (a *apiClient) do(method, path, form, token string, headers ...ut.Header) *ut.ResponseRecorder {
	var body *ut.Body
	if form != "" {
		body = &ut.Body{Body: strings.NewReader(form), Len: len(form)}
		headers = append(headers, ut.Header{Key: "Content-Type", Value: "application/x-www-form-urlencoded"})
	}
	if token != "" {
		headers = append(headers, ut.Header{Key: "Authorization", Value: "Bearer " + token})
	}
	return ut.PerformRequest(a.engine, method, path, body, headers...)
}

func decode(t *testing.T, w *ut.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

// login registers name and returns its access token.
func (a *apiClient) login(name, email string) string {
	w := a.do(consts.MethodPost, "/user/register",
		"user_name="+name+"&email="+url.QueryEscape(email)+"&password=secret1", "")
	require.EqualValues(a.t, errno.SuccessCode, decode(a.t, w)["code"], w.Body.String())

	w = a.do(consts.MethodPost, "/user/login", "user_name="+name+"&password=secret1", "")
	body := decode(a.t, w)
	require.EqualValues(a.t, errno.SuccessCode, body["code"], w.Body.String())
	return body["data"].(map[string]interface{})["token"].(string)
}

func (a *apiClient) publishPost(token, title string) {
	w := a.do(consts.MethodPost, "/posts", "title="+url.QueryEscape(title)+"&content=World&status=published&tags=go,web", token)
	require.EqualValues(a.t, errno.SuccessCode, decode(a.t, w)["code"], w.Body.String())
}

func TestReactionEndpoints(t *testing.T) {
	a := newAPI(t)
	admin := a.login("admin", "admin@example.com")
	reader := a.login("reader", "reader@example.com")
	a.publishPost(admin, "Hello")

	t.Run("login required", func(t *testing.T) {
		w := a.do(consts.MethodPost, "/like", "post_id=1", "")
		assert.Equal(t, consts.StatusUnauthorized, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, errno.AuthenticationRequired.ErrMsg, body["message"])
	})

	t.Run("toggle", func(t *testing.T) {
		body := decode(t, a.do(consts.MethodPost, "/like", "post_id=1", reader))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "liked", body["action"])
		assert.EqualValues(t, 1, body["total_likes"])
		assert.EqualValues(t, 0, body["total_dislikes"])

		body = decode(t, a.do(consts.MethodPost, "/dislike", "post_id=1", reader))
		assert.Equal(t, "disliked", body["action"])
		assert.EqualValues(t, 0, body["total_likes"])
		assert.EqualValues(t, 1, body["total_dislikes"])

		body = decode(t, a.do(consts.MethodPost, "/dislike", "post_id=1", reader))
		assert.Equal(t, "undisliked", body["action"])
		assert.EqualValues(t, 0, body["total_dislikes"])

		decode(t, a.do(consts.MethodPost, "/like", "post_id=1", reader))
		decode(t, a.do(consts.MethodPost, "/like", "post_id=1", admin))
		body = decode(t, a.do(consts.MethodGet, "/like?post_id=1", "", ""))
		assert.Equal(t, map[string]interface{}{"total_likes": float64(2)}, body)
		body = decode(t, a.do(consts.MethodGet, "/dislike?post_id=1", "", ""))
		assert.Equal(t, map[string]interface{}{"total_dislikes": float64(0)}, body)
	})

	t.Run("failures", func(t *testing.T) {
		w := a.do(consts.MethodPost, "/like", "post_id=99", reader)
		assert.Equal(t, consts.StatusNotFound, w.Code)
		assert.Equal(t, errno.PostNotFound.ErrMsg, decode(t, w)["message"])

		w = a.do(consts.MethodGet, "/like?post_id=99", "", "")
		assert.Equal(t, consts.StatusNotFound, w.Code)
		assert.Equal(t, errno.PostNotFound.ErrMsg, decode(t, w)["message"])

		w = a.do(consts.MethodPost, "/like", "post_id=abc", reader)
		assert.Equal(t, consts.StatusBadRequest, w.Code)
		assert.Equal(t, false, decode(t, w)["success"])
	})
}

func TestCommentEndpoints(t *testing.T) {
	a := newAPI(t)
	admin := a.login("admin", "admin@example.com")
	reader := a.login("reader", "reader@example.com")
	a.publishPost(admin, "Hello")

	t.Run("guest comment waits for moderation", func(t *testing.T) {
		body := decode(t, a.do(consts.MethodPost, "/comments",
			"post_id=1&comment_content=Nice+post&author_name=Ann&author_email=ann%40example.com", ""))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, service.MsgCommentPending, body["message"])
		assert.Equal(t, "pending", body["status"])
		assert.NotContains(t, body, "comment_html")
	})

	t.Run("guest identity is checked", func(t *testing.T) {
		w := a.do(consts.MethodPost, "/comments", "post_id=1&comment_content=hi&author_name=Ann&author_email=nope", "")
		assert.Equal(t, consts.StatusBadRequest, w.Code)
		assert.Equal(t, errno.InvalidGuestIdentity.ErrMsg, decode(t, w)["message"])
	})

	t.Run("admin comment is published with escaped html", func(t *testing.T) {
		body := decode(t, a.do(consts.MethodPost, "/comments", "post_id=1&comment_content=%3Cb%3Ehi%3C%2Fb%3E", admin))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, service.MsgCommentPublished, body["message"])
		html, _ := body["comment_html"].(string)
		assert.Contains(t, html, "&lt;b&gt;hi&lt;/b&gt;")
		assert.Contains(t, html, utils.MD5("admin@example.com"))
		assert.NotContains(t, html, "<b>hi</b>")
	})

	t.Run("moderation requires admin", func(t *testing.T) {
		w := a.do(consts.MethodPost, "/admin/comments/1/status", "status=approved", reader)
		assert.Equal(t, consts.StatusForbidden, w.Code)
	})

	t.Run("form submit redirects", func(t *testing.T) {
		w := a.do(consts.MethodPost, "/admin/comments/1/status", "status=approved", admin)
		assert.Equal(t, consts.StatusSeeOther, w.Code)
		assert.Contains(t, string(w.Header().Peek("Location")), "/admin/comments")
	})

	t.Run("ajax gets json", func(t *testing.T) {
		xhr := ut.Header{Key: "X-Requested-With", Value: "XMLHttpRequest"}
		body := decode(t, a.do(consts.MethodPost, "/admin/comments/1/status", "status=rejected", admin, xhr))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "rejected", body["status"])
		assert.EqualValues(t, 1, body["comment_id"])

		w := a.do(consts.MethodPost, "/admin/comments/1/status", "status=spam", admin, xhr)
		assert.Equal(t, consts.StatusBadRequest, w.Code)
		assert.Equal(t, errno.InvalidStatus.ErrMsg, decode(t, w)["message"])

		decode(t, a.do(consts.MethodPost, "/admin/comments/1/status", "status=approved", admin, xhr))
	})

	t.Run("thread and queue", func(t *testing.T) {
		body := decode(t, a.do(consts.MethodGet, "/posts/1/comments", "", ""))
		require.EqualValues(t, errno.SuccessCode, body["code"])
		comments := body["data"].(map[string]interface{})["comments"].([]interface{})
		assert.Len(t, comments, 2)

		body = decode(t, a.do(consts.MethodGet, "/admin/comments?status=approved", "", admin))
		assert.EqualValues(t, 2, body["data"].(map[string]interface{})["total"])
	})
}

func TestRoleChangeAppliesToIssuedTokens(t *testing.T) {
	a := newAPI(t)
	admin := a.login("admin", "admin@example.com")
	editor := a.login("editor", "editor@example.com")
	a.publishPost(admin, "Hello")

	setRole := func(role string) {
		w := a.do(consts.MethodPost, "/admin/users/2/role", "role="+role, admin)
		require.EqualValues(t, errno.SuccessCode, decode(t, w)["code"], w.Body.String())
	}

	t.Run("promoted user is admin with the old token", func(t *testing.T) {
		setRole("admin")
		body := decode(t, a.do(consts.MethodPost, "/comments", "post_id=1&comment_content=first", editor))
		assert.Equal(t, "approved", body["status"])
		w := a.do(consts.MethodGet, "/admin/comments?status=pending", "", editor)
		assert.Equal(t, consts.StatusOK, w.Code)
	})

	t.Run("demoted user loses admin with the old token", func(t *testing.T) {
		setRole("user")
		body := decode(t, a.do(consts.MethodPost, "/comments", "post_id=1&comment_content=second", editor))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "pending", body["status"])
		assert.NotContains(t, body, "comment_html")

		w := a.do(consts.MethodPost, "/admin/comments/2/status", "status=approved", editor)
		assert.Equal(t, consts.StatusForbidden, w.Code)
	})
}

func TestPostLifecycle(t *testing.T) {
	a := newAPI(t)
	admin := a.login("admin", "admin@example.com")
	reader := a.login("reader", "reader@example.com")
	a.publishPost(admin, "Hello")
	decode(t, a.do(consts.MethodPost, "/like", "post_id=1", reader))
	decode(t, a.do(consts.MethodPost, "/comments", "post_id=1&comment_content=first", reader))

	t.Run("admin search", func(t *testing.T) {
		body := decode(t, a.do(consts.MethodGet, "/admin/search?page=posts&q=Hello", "", admin))
		require.EqualValues(t, errno.SuccessCode, body["code"])
		results := body["data"].(map[string]interface{})["results"].([]interface{})
		assert.Len(t, results, 1)

		body = decode(t, a.do(consts.MethodGet, "/admin/search?page=settings&q=Hello", "", admin))
		assert.EqualValues(t, errno.ParamErrCode, body["code"])
	})

	t.Run("only the author or an admin deletes", func(t *testing.T) {
		body := decode(t, a.do(consts.MethodDelete, "/posts/1", "", reader))
		assert.EqualValues(t, errno.ForbiddenCode, body["code"])
	})

	t.Run("delete removes dependents", func(t *testing.T) {
		body := decode(t, a.do(consts.MethodDelete, "/posts/1", "", admin))
		require.EqualValues(t, errno.SuccessCode, body["code"])

		body = decode(t, a.do(consts.MethodGet, "/posts/1", "", admin))
		assert.EqualValues(t, errno.PostNotFoundCode, body["code"])
		body = decode(t, a.do(consts.MethodGet, "/like?post_id=1", "", ""))
		assert.EqualValues(t, 0, body["total_likes"])
		body = decode(t, a.do(consts.MethodGet, "/admin/comments", "", admin))
		assert.EqualValues(t, 0, body["data"].(map[string]interface{})["total"])
	})
}

func TestWriteResources(t *testing.T) {
	r := route.NewEngine(config.NewOptions([]config.Option{}))
	register(r)
	resources := writeResources(r)
	assert.Contains(t, resources, "POST:/like")
	assert.Contains(t, resources, "POST:/admin/comments/:id/status")
	assert.NotContains(t, resources, "GET:/like")
}
