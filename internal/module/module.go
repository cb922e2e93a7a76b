package module

import (
	"project-tracker/internal/module/category"
	"project-tracker/internal/module/ping"
	"project-tracker/internal/module/project"
	"project-tracker/internal/module/statusupdate"
	"project-tracker/internal/module/user"

	"github.com/gin-gonic/gin"
)

type Module interface {
	GetName() string
	Init()
	InitRouter(r *gin.RouterGroup)
}

var Modules []Module

func registerModule(m []Module) {
	Modules = append(Modules, m...)
}

func init() {
	// Register your module here
	registerModule([]Module{
		&user.ModuleUser{},
		&ping.ModulePing{},
		&category.ModuleCategory{},
		&project.ModuleProject{},
		&statusupdate.ModuleStatusUpdate{},
	})
}
