package database

import (
	"project-tracker/config"
	"project-tracker/internal/model"
	"project-tracker/tools"

	sqlmysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// autoMigrateModels 定义需要自动迁移的模型列表
var autoMigrateModels = []any{
	&model.User{},
	&model.ProjectCategory{},
	&model.Project{},
	&model.ProjectStatusUpdate{},
	&model.SupportingDocument{},
	// 在这里添加其他模型
}

func Init() {
	cfg := config.Get().Mysql
	dsnConfig := sqlmysql.Config{
		User:                 cfg.Username,
		Passwd:               cfg.Password,
		Net:                  "tcp",
		Addr:                 cfg.Host + ":" + cfg.Port,
		DBName:               cfg.DBName,
		ParseTime:            true,
		Loc:                  nil,
		AllowNativePasswords: true,
		Params:               map[string]string{"charset": "utf8mb4", "loc": "Local"},
	}

	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true}, // 还是单数表名好
	}

	switch config.Get().Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Discard
	}

	db, err := gorm.Open(mysql.Open(dsnConfig.FormatDSN()), gormConfig)
	tools.PanicOnErr(err)
	DB = db

	// 使用模型列表进行自动迁移
	tools.PanicOnErr(DB.AutoMigrate(autoMigrateModels...))
}
