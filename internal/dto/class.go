package dto

// ── 班级模块 DTO ──

// SubjectBrief 科目简要信息
type SubjectBrief struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ClassBrief 班级简要信息
type ClassBrief struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TeacherBrief 教师简要信息（含任教科目）
type TeacherBrief struct {
	ID       int64         `json:"id"`
	FullName string        `json:"full_name"`
	Email    string        `json:"email"`
	Subject  *SubjectBrief `json:"subject"` // null 表示未设任教科目
}

// StudentBrief 学生简要信息（含所属班级）
type StudentBrief struct {
	ID       int64       `json:"id"`
	FullName string      `json:"full_name"`
	Email    string      `json:"email"`
	Class    *ClassBrief `json:"class"` // null 表示未分班
}

// ClassResponse 班级列表条目（含人数与科目聚合）
type ClassResponse struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	StudentsCount int      `json:"students_count"`
	TeachersCount int      `json:"teachers_count"`
	Subjects      []string `json:"subjects"` // 去重后的任教科目名称
}

// AssignStudentsRequest 分配学生到班级请求（增量 upsert）
type AssignStudentsRequest struct {
	ClassID    int64   `json:"class_id"    binding:"required,gt=0"`
	StudentIDs []int64 `json:"student_ids" binding:"required,min=1"`
}

// AssignTeachersRequest 分配教师到班级请求（整体替换）
type AssignTeachersRequest struct {
	ClassID    int64   `json:"class_id"    binding:"required,gt=0"`
	TeacherIDs []int64 `json:"teacher_ids"`
}
