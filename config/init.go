package config

import (
	"fmt"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	instance *Config
	once     sync.Once
)

// Init 加载配置：先读取 config.yaml（如存在），再用环境变量覆盖
func Init() {
	once.Do(func() {
		cfg := &Config{
			Host:   "0.0.0.0",
			Port:   "8080",
			Prefix: "api/v1",
			Mode:   ModeDebug,
		}

		v := viper.New()
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")

		if err := v.ReadInConfig(); err == nil {
			if err := v.Unmarshal(cfg); err != nil {
				panic(fmt.Sprintf("配置文件解析失败: %v", err))
			}
		} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Sprintf("配置文件读取失败: %v", err))
		}

		// 环境变量优先级高于配置文件
		if err := envconfig.Process("", cfg); err != nil {
			panic(fmt.Sprintf("环境变量解析失败: %v", err))
		}
		if err := envconfig.Process("MYSQL", &cfg.Mysql); err != nil {
			panic(fmt.Sprintf("MYSQL 环境变量解析失败: %v", err))
		}
		if err := envconfig.Process("REDIS", &cfg.Redis); err != nil {
			panic(fmt.Sprintf("REDIS 环境变量解析失败: %v", err))
		}
		if err := envconfig.Process("JWT", &cfg.JWT); err != nil {
			panic(fmt.Sprintf("JWT 环境变量解析失败: %v", err))
		}

		instance = cfg
	})
}

// Get 获取全局配置，须在 Init 之后调用
func Get() *Config {
	if instance == nil {
		Init()
	}
	return instance
}
