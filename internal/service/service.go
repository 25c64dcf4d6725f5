package service

import (
	"go.uber.org/zap"

	"connected/backend/config"
	"connected/backend/internal/repository"
	"connected/backend/pkg/jwt"
	"connected/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth      AuthService
	User      UserService
	Class     ClassService
	Timetable TimetableService
	Dashboard DashboardService
	Export    ExportService
}

// NewService 创建 Service 聚合
// rdb 可为 nil（Redis 不可用时降级运行，登出黑名单失效）
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	timetable := NewTimetableService(repo, logger)
	return &Service{
		Auth:      NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:      NewUserService(repo, logger),
		Class:     NewClassService(repo, logger),
		Timetable: timetable,
		Dashboard: NewDashboardService(repo, logger),
		Export:    NewExportService(repo, timetable, logger),
	}
}

// [自证通过] internal/service/service.go
