package statusupdate

import (
	"log/slog"
	"project-tracker/internal/global/logger"
)

var log *slog.Logger

type ModuleStatusUpdate struct{}

func (s *ModuleStatusUpdate) GetName() string {
	return "StatusUpdate"
}

func (s *ModuleStatusUpdate) Init() {
	log = logger.New("StatusUpdate")
}
