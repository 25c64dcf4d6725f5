package service

import (
	"context"

	"go.uber.org/zap"

	"connected/backend/internal/dto"
	"connected/backend/internal/model"
	"connected/backend/internal/repository"
)

// DashboardService 管理员仪表盘业务接口
type DashboardService interface {
	GetDashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService 创建 DashboardService 实例
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	students, err := s.repo.User.CountByRole(ctx, "student")
	if err != nil {
		s.logger.Error("统计学生数失败", zap.Error(err))
		return nil, err
	}
	teachers, err := s.repo.User.CountByRole(ctx, "teacher")
	if err != nil {
		return nil, err
	}
	classes, err := s.repo.Class.Count(ctx)
	if err != nil {
		return nil, err
	}
	subjects, err := s.repo.Subject.Count(ctx)
	if err != nil {
		return nil, err
	}

	byDay, err := s.repo.Timetable.CountByDay(ctx)
	if err != nil {
		s.logger.Error("统计每日排课失败", zap.Error(err))
		return nil, err
	}

	// 固定输出周一至周五，无排课的日子补 0
	distribution := make([]dto.DayDistribution, 0, len(model.DayOrder))
	for _, name := range model.DayOrder {
		distribution = append(distribution, dto.DayDistribution{
			Day:     name[:3], // Mon..Fri
			Classes: byDay[name],
		})
	}

	return &dto.DashboardResponse{
		Totals: dto.DashboardTotals{
			Students: students,
			Teachers: teachers,
			Classes:  classes,
			Subjects: subjects,
		},
		WeeklyDistribution: distribution,
	}, nil
}
