package clients

import (
	"BlogSphere.com/cmd/notification/dal/db"
	"BlogSphere.com/cmd/notification/service"
)

var NotificationClient *service.NotificationService

func InitNotification(d *Deps) {
	NotificationClient = service.NewNotificationService(db.NewNotificationDB(d.DB))
}
