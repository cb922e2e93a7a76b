package server

import (
	"fmt"
	"log/slog"
	"project-tracker/config"
	"project-tracker/internal/global/blobstore"
	"project-tracker/internal/global/database"
	"project-tracker/internal/global/httpclient"
	"project-tracker/internal/global/logger"
	"project-tracker/internal/global/middleware"
	"project-tracker/internal/global/redis"
	"project-tracker/internal/global/sentry"
	"project-tracker/internal/module"
	"project-tracker/tools"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

var log *slog.Logger

func Init() {
	config.Init()

	if err := sentry.Init(); err != nil {
		panic(err)
	}

	log = logger.New("Server")

	database.Init()
	redis.Init()
	blobstore.Init()
	httpclient.Init()

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery())

	if sentry.Enabled() {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
		r.Use(middleware.SentryEnrichIP())
	}

	// 本地存储模式下直接暴露文档静态目录
	if !config.Get().S3.Enable && config.Get().Storage.Home != "" {
		r.Static("/static", config.Get().Storage.Home)
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}
	err := r.Run(config.Get().Host + ":" + config.Get().Port)
	tools.PanicOnErr(err)
}
