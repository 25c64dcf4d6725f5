package repository

import (
	"context"

	"gorm.io/gorm"

	"connected/backend/internal/model"
)

// 固定的周一→周五排序表达式（day_of_week 持久化为名称字符串）
const dayOrderExpr = `CASE day_of_week
	WHEN 'Monday' THEN 1
	WHEN 'Tuesday' THEN 2
	WHEN 'Wednesday' THEN 3
	WHEN 'Thursday' THEN 4
	WHEN 'Friday' THEN 5
	ELSE 6 END`

// TimetableRepository 周课表数据访问接口
type TimetableRepository interface {
	GetByID(ctx context.Context, id int64) (*model.TimetableSlot, error)
	// ListByClass 返回班级全部槽位，按星期（周一→周五）、开始时间、节次排序
	ListByClass(ctx context.Context, classID int64) ([]model.TimetableSlot, error)
	// ListByClassWithTeacher 返回班级中已排教师的槽位（冲突报告用）
	ListByClassWithTeacher(ctx context.Context, classID int64) ([]model.TimetableSlot, error)
	Create(ctx context.Context, slot *model.TimetableSlot) error
	Update(ctx context.Context, slot *model.TimetableSlot) error
	Delete(ctx context.Context, id int64) error
	// FindConflicts 查找指定教师在指定星期与 [start, end) 区间重叠的槽位，
	// 跨全部班级扫描；excludeSlotID 非 nil 时排除该槽位（更新时不与自身冲突）
	FindConflicts(ctx context.Context, teacherUserID int64, dayName, startTime, endTime string, excludeSlotID *int64) ([]model.TimetableSlot, error)
	// CountByDay 按星期统计全校排课数量（仪表盘用）
	CountByDay(ctx context.Context) (map[string]int64, error)
}

type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo 创建 TimetableRepository 实例
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

func (r *timetableRepo) GetByID(ctx context.Context, id int64) (*model.TimetableSlot, error) {
	var slot model.TimetableSlot
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Teacher").
		Preload("Class").
		Where("id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *timetableRepo) ListByClass(ctx context.Context, classID int64) ([]model.TimetableSlot, error) {
	var slots []model.TimetableSlot
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Preload("Teacher").
		Where("class_id = ?", classID).
		Order(dayOrderExpr).
		Order("start_time ASC, period ASC").
		Find(&slots).Error
	return slots, err
}

func (r *timetableRepo) ListByClassWithTeacher(ctx context.Context, classID int64) ([]model.TimetableSlot, error) {
	var slots []model.TimetableSlot
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Preload("Class").
		Where("class_id = ? AND teacher_user_id IS NOT NULL", classID).
		Order(dayOrderExpr).
		Order("start_time ASC, period ASC").
		Find(&slots).Error
	return slots, err
}

func (r *timetableRepo) Create(ctx context.Context, slot *model.TimetableSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *timetableRepo) Update(ctx context.Context, slot *model.TimetableSlot) error {
	// 整体替换全部可变字段；class_id 不可变更
	return r.db.WithContext(ctx).
		Model(&model.TimetableSlot{}).
		Where("id = ?", slot.ID).
		Updates(map[string]interface{}{
			"day_of_week":     slot.DayOfWeek,
			"period":          slot.Period,
			"start_time":      slot.StartTime,
			"end_time":        slot.EndTime,
			"subject_id":      slot.SubjectID,
			"teacher_user_id": slot.TeacherUserID,
		}).Error
}

func (r *timetableRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TimetableSlot{}).Error
}

func (r *timetableRepo) FindConflicts(ctx context.Context, teacherUserID int64, dayName, startTime, endTime string, excludeSlotID *int64) ([]model.TimetableSlot, error) {
	// 半开区间重叠: new_start < existing_end AND new_end > existing_start
	q := r.db.WithContext(ctx).
		Preload("Class").
		Where("teacher_user_id = ? AND day_of_week = ?", teacherUserID, dayName).
		Where("? < end_time AND ? > start_time", startTime, endTime)
	if excludeSlotID != nil {
		q = q.Where("id <> ?", *excludeSlotID)
	}

	var slots []model.TimetableSlot
	err := q.Find(&slots).Error
	return slots, err
}

func (r *timetableRepo) CountByDay(ctx context.Context) (map[string]int64, error) {
	type dayCount struct {
		DayOfWeek string
		Cnt       int64
	}
	var rows []dayCount
	err := r.db.WithContext(ctx).
		Model(&model.TimetableSlot{}).
		Select("day_of_week, COUNT(*) AS cnt").
		Group("day_of_week").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.DayOfWeek] = row.Cnt
	}
	return counts, nil
}
