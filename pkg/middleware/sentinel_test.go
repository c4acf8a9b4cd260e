package middleware

import (
	"context"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowControl(t *testing.T) {
	require.NoError(t, InitSentinel(1, Resource(consts.MethodPost, "/limited")))

	r := route.NewEngine(config.NewOptions([]config.Option{}))
	r.Use(FlowControl())
	ok := func(ctx context.Context, c *app.RequestContext) { c.String(consts.StatusOK, "ok") }
	r.POST("/limited", ok)
	r.POST("/open", ok)

	w := ut.PerformRequest(r, consts.MethodPost, "/limited", nil)
	assert.Equal(t, consts.StatusOK, w.Code)
	w = ut.PerformRequest(r, consts.MethodPost, "/limited", nil)
	assert.Equal(t, consts.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)

	for i := 0; i < 3; i++ {
		w = ut.PerformRequest(r, consts.MethodPost, "/open", nil)
		assert.Equal(t, consts.StatusOK, w.Code)
	}
}
