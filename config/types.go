package config

type config struct {
	Server   server   `yaml:"server" mapstructure:"server"`
	Mysql    mysql    `yaml:"mysql" mapstructure:"mysql"`
	Redis    redis    `yaml:"redis" mapstructure:"redis"`
	RabbitMq rabbitmq `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Jaeger   jaeger   `yaml:"jaeger" mapstructure:"jaeger"`
	Auth     auth     `yaml:"auth" mapstructure:"auth"`
	Sentinel sentinel `yaml:"sentinel" mapstructure:"sentinel"`
}

type server struct {
	Addr         string   `yaml:"addr"`
	WsAddr       string   `yaml:"ws_addr" mapstructure:"ws_addr"`
	PprofAddr    string   `yaml:"pprof_addr" mapstructure:"pprof_addr"`
	AllowOrigins []string `yaml:"allow_origins" mapstructure:"allow_origins"`
}

type mysql struct {
	Addr            string `yaml:"addr"`
	Database        string `yaml:"database"`
	Username        string `yaml:"username"`
	Password        string `yaml:"password"`
	Charset         string `yaml:"charset"`
	MaxOpenConns    int    `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns" mapstructure:"max_idle_conns"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type jaeger struct {
	AgentAddr string  `yaml:"agent_addr" mapstructure:"agent_addr"`
	Sampler   float64 `yaml:"sampler"`
}

type auth struct {
	JwtSecret   string   `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	TokenTTL    string   `yaml:"token_ttl" mapstructure:"token_ttl"`
	AdminEmails []string `yaml:"admin_emails" mapstructure:"admin_emails"`
}

type sentinel struct {
	WriteQPS float64 `yaml:"write_qps" mapstructure:"write_qps"`
}
