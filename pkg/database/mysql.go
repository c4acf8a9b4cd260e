package database

import (
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	gormopentracing "gorm.io/plugin/opentracing"

	"BlogSphere.com/cmd/model"
	"BlogSphere.com/config"
	"BlogSphere.com/pkg/utils"
)

// Init opens the MySQL database described by config.ConfigInfo and migrates
// every table.
func Init() (*gorm.DB, error) {
	db, err := Open(mysql.Open(utils.GetMysqlDsn()))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql.DB")
	}
	sqlDB.SetMaxOpenConns(config.ConfigInfo.Mysql.MaxOpenConns)
	sqlDB.SetMaxIdleConns(config.ConfigInfo.Mysql.MaxIdleConns)
	if d, err := time.ParseDuration(config.ConfigInfo.Mysql.ConnMaxLifetime); err == nil {
		sqlDB.SetConnMaxLifetime(d)
	}

	if err = Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Open wraps gorm.Open with the options shared by every process.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector,
		&gorm.Config{
			PrepareStmt:            true,
			SkipDefaultTransaction: true,
			Logger:                 logger.Default.LogMode(logger.Warn),
		},
	)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err = db.Use(gormopentracing.New()); err != nil {
		return nil, errors.Wrap(err, "register tracing plugin")
	}
	return db, nil
}

// Migrate creates or updates all tables.
func Migrate(db *gorm.DB) error {
	hlog.Info("Starting tables migration...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.Category{},
		&model.Tag{},
		&model.Post{},
		&model.PostTag{},
		&model.Like{},
		&model.Dislike{},
		&model.Comment{},
		&model.Notification{},
		&model.SupportMessage{},
	)
	if err != nil {
		hlog.Errorf("Failed to migrate tables: %v", err)
		return errors.Wrap(err, "auto migrate")
	}
	hlog.Info("Tables migration completed successfully")
	return nil
}
