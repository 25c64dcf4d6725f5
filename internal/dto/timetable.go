package dto

import (
	"fmt"

	"connected/backend/internal/model"
)

// ── 课表模块 DTO ──

// CreateSlotRequest 创建课表槽位请求
// day_of_week 为 UI 序号 1..5，period_no 为节次序号
type CreateSlotRequest struct {
	ClassID       int64  `json:"class_id"        binding:"required,gt=0"`
	DayOfWeek     int    `json:"day_of_week"     binding:"required,min=1,max=5"`
	PeriodNo      int    `json:"period_no"       binding:"required,min=1"`
	StartTime     string `json:"start_time"      binding:"required"` // "HH:MM"
	EndTime       string `json:"end_time"        binding:"required"` // "HH:MM"
	SubjectID     int64  `json:"subject_id"      binding:"required,gt=0"`
	TeacherUserID *int64 `json:"teacher_user_id" binding:"omitempty,gt=0"`
}

// Validate 校验时间格式（binding 标签无法表达 HH:MM 约束）
func (r *CreateSlotRequest) Validate() error {
	if !model.ValidClock(r.StartTime) {
		return fmt.Errorf("start_time 必须为 HH:MM 格式")
	}
	if !model.ValidClock(r.EndTime) {
		return fmt.Errorf("end_time 必须为 HH:MM 格式")
	}
	return nil
}

// UpdateSlotRequest 更新课表槽位请求
// 所有可变字段整体替换；class_id 创建后不可变更，故不在此出现
type UpdateSlotRequest struct {
	DayOfWeek     int    `json:"day_of_week"     binding:"required,min=1,max=5"`
	PeriodNo      int    `json:"period_no"       binding:"required,min=1"`
	StartTime     string `json:"start_time"      binding:"required"`
	EndTime       string `json:"end_time"        binding:"required"`
	SubjectID     int64  `json:"subject_id"      binding:"required,gt=0"`
	TeacherUserID *int64 `json:"teacher_user_id" binding:"omitempty,gt=0"`
}

// Validate 校验时间格式
func (r *UpdateSlotRequest) Validate() error {
	if !model.ValidClock(r.StartTime) {
		return fmt.Errorf("start_time 必须为 HH:MM 格式")
	}
	if !model.ValidClock(r.EndTime) {
		return fmt.Errorf("end_time 必须为 HH:MM 格式")
	}
	return nil
}

// SlotResponse 课表槽位响应（含科目与教师展示信息）
type SlotResponse struct {
	ID        int64         `json:"id"`
	DayOfWeek int           `json:"day_of_week"` // UI 序号 1..5
	Day       string        `json:"day"`         // 星期名称，便于前端展示
	PeriodNo  int           `json:"period_no"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	Subject   SubjectBrief  `json:"subject"`
	Teacher   *TeacherBrief `json:"teacher"` // null 表示未排教师
}

// TimetableDay 单日课表分组
type TimetableDay struct {
	Day       string         `json:"day"`
	DayOfWeek int            `json:"day_of_week"`
	Classes   []SlotResponse `json:"classes"`
}

// ClassTimetableResponse 班级周课表响应
type ClassTimetableResponse struct {
	ClassID   int64          `json:"class_id"`
	Timetable []TimetableDay `json:"timetable"`
}

// ── 冲突报告 ──

// ConflictSlot 冲突对中一方的槽位信息
type ConflictSlot struct {
	ID        int64  `json:"id"`
	ClassID   int64  `json:"class_id"`
	ClassName string `json:"class_name"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// ConflictPair 教师重复排课冲突对
type ConflictPair struct {
	Teacher      ConflictTeacher `json:"teacher"`
	Slot         ConflictSlot    `json:"slot"`
	ConflictWith ConflictSlot    `json:"conflict_with"`
}

// ConflictTeacher 冲突对中的教师信息
type ConflictTeacher struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
}

// ClassConflictsResponse 班级冲突报告响应
type ClassConflictsResponse struct {
	ClassID   int64          `json:"class_id"`
	Conflicts []ConflictPair `json:"conflicts"`
}
