package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var ConfigInfo config

func setDefaults() {
	viper.SetDefault("server.addr", "0.0.0.0:8888")
	viper.SetDefault("server.ws_addr", "0.0.0.0:10000")
	viper.SetDefault("mysql.charset", "utf8mb4")
	viper.SetDefault("mysql.max_open_conns", 50)
	viper.SetDefault("mysql.max_idle_conns", 10)
	viper.SetDefault("mysql.conn_max_lifetime", "1h")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("rabbitmq.addr", "localhost:5672")
	viper.SetDefault("rabbitmq.username", "guest")
	viper.SetDefault("rabbitmq.password", "guest")
	viper.SetDefault("jaeger.sampler", 1.0)
	viper.SetDefault("auth.token_ttl", "24h")
	viper.SetDefault("sentinel.write_qps", 200)
}

// Init reads config.yml from the usual locations. Environment variables
// prefixed with BLOGSPHERE_ override file values, e.g. BLOGSPHERE_MYSQL_ADDR.
func Init() {
	wd, _ := os.Getwd()
	logrus.Infof("Current working directory: %s", wd)

	viper.SetConfigType("yaml")
	viper.SetConfigName("config.yml")
	viper.SetEnvPrefix("blogsphere")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	setDefaults()

	configPaths := []string{
		"../../config",
		"./config",
		"../config",
		".",
	}
	for _, path := range configPaths {
		viper.AddConfigPath(path)
		absPath, _ := filepath.Abs(path)
		logrus.Debugf("Added config path: %s (absolute: %s)", path, absPath)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logrus.Warnf("config file not found, using defaults and environment: %v", err)
		} else {
			logrus.Errorf("config error: %v", err)
		}
	} else {
		logrus.Infof("Successfully read config file: %s", viper.ConfigFileUsed())
	}

	load()

	logrus.Infof("Config loaded - MySQL: %s:%s@%s/%s",
		ConfigInfo.Mysql.Username, "***", ConfigInfo.Mysql.Addr, ConfigInfo.Mysql.Database)
	if ConfigInfo.Auth.JwtSecret == "" {
		logrus.Warn("auth.jwt_secret is empty, tokens will not be accepted")
	}
}

func load() {
	ConfigInfo.Server.Addr = viper.GetString("server.addr")
	ConfigInfo.Server.WsAddr = viper.GetString("server.ws_addr")
	ConfigInfo.Server.PprofAddr = viper.GetString("server.pprof_addr")
	ConfigInfo.Server.AllowOrigins = viper.GetStringSlice("server.allow_origins")

	ConfigInfo.Mysql.Addr = viper.GetString("mysql.addr")
	ConfigInfo.Mysql.Database = viper.GetString("mysql.database")
	ConfigInfo.Mysql.Username = viper.GetString("mysql.username")
	ConfigInfo.Mysql.Password = viper.GetString("mysql.password")
	ConfigInfo.Mysql.Charset = viper.GetString("mysql.charset")
	ConfigInfo.Mysql.MaxOpenConns = viper.GetInt("mysql.max_open_conns")
	ConfigInfo.Mysql.MaxIdleConns = viper.GetInt("mysql.max_idle_conns")
	ConfigInfo.Mysql.ConnMaxLifetime = viper.GetString("mysql.conn_max_lifetime")

	ConfigInfo.Redis.Addr = viper.GetString("redis.addr")
	ConfigInfo.Redis.Password = viper.GetString("redis.password")
	ConfigInfo.Redis.DB = viper.GetInt("redis.db")

	ConfigInfo.RabbitMq.Addr = viper.GetString("rabbitmq.addr")
	ConfigInfo.RabbitMq.Username = viper.GetString("rabbitmq.username")
	ConfigInfo.RabbitMq.Password = viper.GetString("rabbitmq.password")

	ConfigInfo.Jaeger.AgentAddr = viper.GetString("jaeger.agent_addr")
	ConfigInfo.Jaeger.Sampler = viper.GetFloat64("jaeger.sampler")

	ConfigInfo.Auth.JwtSecret = viper.GetString("auth.jwt_secret")
	ConfigInfo.Auth.TokenTTL = viper.GetString("auth.token_ttl")
	ConfigInfo.Auth.AdminEmails = viper.GetStringSlice("auth.admin_emails")

	ConfigInfo.Sentinel.WriteQPS = viper.GetFloat64("sentinel.write_qps")
}

func RabbitMqURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s/",
		ConfigInfo.RabbitMq.Username, ConfigInfo.RabbitMq.Password, ConfigInfo.RabbitMq.Addr)
}

func TokenTTL() time.Duration {
	d, err := time.ParseDuration(ConfigInfo.Auth.TokenTTL)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

func IsAdminEmail(email string) bool {
	for _, e := range ConfigInfo.Auth.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(e), strings.TrimSpace(email)) {
			return true
		}
	}
	return false
}
