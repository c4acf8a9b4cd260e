package main

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/cors"

	"BlogSphere.com/cmd/api/clients"
	"BlogSphere.com/cmd/api/router/authfunc"
	webs "BlogSphere.com/cmd/api/router/websocket"
	"BlogSphere.com/cmd/interaction/infras/redis"
	"BlogSphere.com/config"
	"BlogSphere.com/config/jaeger"
	"BlogSphere.com/config/pprof"
	"BlogSphere.com/pkg/cache"
	"BlogSphere.com/pkg/constants"
	"BlogSphere.com/pkg/database"
	"BlogSphere.com/pkg/errno"
	"BlogSphere.com/pkg/middleware"
	"BlogSphere.com/pkg/mq"
	"BlogSphere.com/pkg/security"
)

func corsConfig() cors.Config {
	cfg := cors.Config{
		// 允许的请求方法和请求头
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "X-Requested-With", "Accept"},
		// 是否允许发送凭证
		AllowCredentials: true,
		// 预检请求的缓存时间
		MaxAge: 12 * time.Hour,
	}
	if len(config.ConfigInfo.Server.AllowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = config.ConfigInfo.Server.AllowOrigins
	}
	return cfg
}

func main() {
	config.Init()
	closer := jaeger.InitJaeger(constants.ApiServiceName)
	defer closer.Close()
	pprof.Load(config.ConfigInfo.Server.PprofAddr)

	gdb, err := database.Init()
	if err != nil {
		hlog.Fatalf("Failed to open database: %+v", err)
	}
	rdb := redis.Load()

	// 消息队列不可用时降级为不发送事件
	var producer mq.MessageProducer = mq.NopProducer{}
	if p, err := mq.NewProducer(config.RabbitMqURL()); err != nil {
		hlog.Warnf("rabbitmq unavailable, events are disabled: %v", err)
	} else {
		producer = p
		defer p.Close()
	}

	tokens := security.NewJWTManager(config.ConfigInfo.Auth.JwtSecret, config.TokenTTL())
	hub := webs.NewCommentHub()
	clients.Init(&clients.Deps{
		DB:           gdb,
		Tokens:       tokens,
		Limiter:      security.NewSlidingWindowLimiter(rdb),
		Locker:       redis.NewReactionLocker(rdb),
		Producer:     producer,
		Broadcaster:  hub,
		ThreadCache:  cache.NewCommentCacheManager(rdb),
		IsAdminEmail: config.IsAdminEmail,
	})

	h := server.New(
		server.WithHostPorts(config.ConfigInfo.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(4*1024*1024),
	)

	// 配置 CORS
	h.Use(cors.New(corsConfig()))

	// 错误处理, 堆栈只写日志
	h.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			c.JSON(consts.StatusInternalServerError, map[string]interface{}{
				"success": false,
				"code":    errno.ServiceErrCode,
				"message": errno.PersistenceErr.ErrMsg,
			})
		})))

	h.Use(authfunc.Identify(tokens, clients.UserClient))
	h.Use(middleware.FlowControl())

	// 注册路由
	register(h.Engine)

	// 写接口限流
	if err := middleware.InitSentinel(config.ConfigInfo.Sentinel.WriteQPS, writeResources(h.Engine)...); err != nil {
		hlog.Warnf("sentinel disabled: %v", err)
	}

	// 启动 WebSocket 服务
	ws := server.Default(
		server.WithHostPorts(config.ConfigInfo.Server.WsAddr),
	)
	ws.NoHijackConnPool = true
	ws.Use(authfunc.Identify(tokens, clients.UserClient))
	webs.Register(ws, hub)

	// 启动 WebSocket 和 HTTP 服务
	go ws.Spin()
	h.Spin()
}
