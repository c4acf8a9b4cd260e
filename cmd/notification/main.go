package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"

	"BlogSphere.com/cmd/notification/dal/db"
	"BlogSphere.com/cmd/notification/service"
	"BlogSphere.com/config"
	"BlogSphere.com/config/jaeger"
	"BlogSphere.com/pkg/constants"
	"BlogSphere.com/pkg/database"
	"BlogSphere.com/pkg/mq"
)

func main() {
	// 初始化日志
	hlog.SetLevel(hlog.LevelInfo)

	// 初始化配置和依赖
	config.Init()
	closer := jaeger.InitJaeger(constants.NotificationServiceName)
	defer closer.Close()

	gdb, err := database.Init()
	if err != nil {
		hlog.Fatalf("Failed to open database: %+v", err)
	}
	hlog.Info("Dependencies initialized successfully")

	consumer, err := mq.NewConsumer(config.RabbitMqURL())
	if err != nil {
		hlog.Fatalf("Failed to create consumer: %v", err)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := service.NewEventHandler(db.NewNotificationDB(gdb))

	// 启动点赞事件消费者
	if err := consumer.ConsumeReactionEvents(ctx, handler); err != nil {
		hlog.Fatalf("Failed to start reaction event consumer: %v", err)
	}
	hlog.Info("Reaction event consumer started")

	// 启动评论事件消费者
	if err := consumer.ConsumeCommentEvents(ctx, handler); err != nil {
		hlog.Fatalf("Failed to start comment event consumer: %v", err)
	}
	hlog.Info("Comment event consumer started")

	hlog.Info("Event consumer started successfully, waiting for messages...")

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	hlog.Info("Shutting down event consumer...")

	// 优雅关闭
	cancel()
	time.Sleep(2 * time.Second) // 给消费者一些时间来处理正在进行的消息

	hlog.Info("Event consumer stopped")
}
