package middleware

import (
	"context"

	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/pkg/errors"

	"BlogSphere.com/pkg/errno"
)

// Resource names a route for flow control, e.g. "POST:/comments".
func Resource(method, path string) string {
	return method + ":" + path
}

// InitSentinel starts sentinel and loads a QPS rule for every resource.
// Resources without a rule are never blocked.
func InitSentinel(qps float64, resources ...string) error {
	if err := sentinel.InitDefault(); err != nil {
		return errors.Wrap(err, "init sentinel")
	}
	return LoadFlowRules(qps, resources...)
}

func LoadFlowRules(qps float64, resources ...string) error {
	rules := make([]*flow.Rule, 0, len(resources))
	for _, res := range resources {
		rules = append(rules, &flow.Rule{
			Resource:               res,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		})
	}
	if _, err := flow.LoadRules(rules); err != nil {
		return errors.Wrap(err, "load flow rules")
	}
	return nil
}

// FlowControl guards each matched route with the sentinel resource named
// after its method and route pattern.
func FlowControl() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		res := Resource(string(c.Method()), c.FullPath())
		entry, blockErr := sentinel.Entry(res,
			sentinel.WithResourceType(base.ResTypeWeb),
			sentinel.WithTrafficType(base.Inbound),
		)
		if blockErr != nil {
			hlog.CtxWarnf(ctx, "sentinel blocked %s: %s", res, blockErr.BlockMsg())
			c.AbortWithStatusJSON(consts.StatusTooManyRequests, map[string]interface{}{
				"success": false,
				"code":    errno.TooManyRequests.ErrCode,
				"message": errno.TooManyRequests.ErrMsg,
			})
			return
		}
		defer entry.Exit()
		c.Next(ctx)
	}
}
