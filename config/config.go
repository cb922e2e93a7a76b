package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host    string `envconfig:"HOST"`
	Port    string `envconfig:"PORT"`
	Domain  string `envconfig:"DOMAIN"`
	Prefix  string `envconfig:"PREFIX"`
	Mode    Mode   `envconfig:"MODE"`
	Storage Storage
	Mysql   Mysql
	Redis   Redis
	JWT     JWT
	Log     Log    `mapstructure:"Log"`
	Sentry  Sentry `mapstructure:"Sentry"`
	S3      S3
	Mail    Mail
}

// Storage 本地文档存储配置，S3 未启用时使用
type Storage struct {
	Home    string `envconfig:"STORAGE_HOME" mapstructure:"home"`         // 文档保存根目录
	BaseURL string `envconfig:"STORAGE_BASE_URL" mapstructure:"base_url"` // 文档访问基础URL
}

type S3 struct {
	Enable          bool   `envconfig:"S3_ENABLE" mapstructure:"enable"`
	Endpoint        string `envconfig:"S3_ENDPOINT" mapstructure:"endpoint"`
	BaseURL         string `envconfig:"S3_BASE_URL" mapstructure:"base_url"`
	Bucket          string `envconfig:"S3_BUCKET" mapstructure:"bucket"`
	Region          string `envconfig:"S3_REGION" mapstructure:"region"`
	AccessKey       string `envconfig:"S3_ACCESS_KEY" mapstructure:"access_key"`
	SecretAccessKey string `envconfig:"S3_SECRET_KEY" mapstructure:"secret_key"`
	Prefix          string `envconfig:"S3_PREFIX" mapstructure:"prefix"`
	UsePathStyle    bool   `envconfig:"S3_PATH_STYLE" mapstructure:"path_style"`
}

type Mysql struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
}

type Redis struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE"`
}

type Log struct {
	FilePath   string `envconfig:"LOG_FILE_PATH" mapstructure:"file_path"`     // 日志文件路径
	Level      string `envconfig:"LOG_LEVEL" mapstructure:"level"`             // 日志级别：debug, info, warn, error
	MaxSize    int    `envconfig:"LOG_MAX_SIZE" mapstructure:"max_size"`       // 日志文件最大大小（MB）
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" mapstructure:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `envconfig:"LOG_MAX_AGE" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `envconfig:"LOG_COMPRESS" mapstructure:"compress"`       // 是否压缩旧日志文件
}

type Sentry struct {
	Dsn         string  `envconfig:"SENTRY_DSN" mapstructure:"dsn"`
	Environment string  `envconfig:"SENTRY_ENVIRONMENT" mapstructure:"environment"`
	SampleRate  float64 `envconfig:"SENTRY_SAMPLE_RATE" mapstructure:"sample_rate"`
}

// Mail 账号创建通知所用的邮件服务配置
type Mail struct {
	Endpoint string `envconfig:"MAIL_ENDPOINT" mapstructure:"endpoint"` // 邮件服务 HTTP API 地址，为空则不发送
	APIKey   string `envconfig:"MAIL_API_KEY" mapstructure:"api_key"`
	From     string `envconfig:"MAIL_FROM" mapstructure:"from"`
}
