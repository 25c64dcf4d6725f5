package model

// Role 角色表 — 对应 roles
type Role struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"    json:"id"`
	Name string `gorm:"type:varchar(20);not null"   json:"name"` // admin | teacher | student
}

// TableName 指定表名
func (Role) TableName() string { return "roles" }

// User 用户表 — 对应 users
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"                    json:"id"`
	RoleID       int64  `gorm:"not null"                                    json:"role_id"`
	FullName     string `gorm:"type:varchar(100);not null"                  json:"full_name"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex"      json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"                  json:"-"`
	Status       string `gorm:"type:varchar(20);not null;default:'active'"  json:"status"` // active | disabled
	BaseModel

	// 关联
	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// StudentProfile 学生档案 — 对应 student_profile，记录学生所属班级
type StudentProfile struct {
	UserID  int64  `gorm:"primaryKey" json:"user_id"`
	ClassID *int64 `json:"class_id"`

	Class *Class `gorm:"foreignKey:ClassID" json:"class,omitempty"`
}

// TableName 指定表名
func (StudentProfile) TableName() string { return "student_profile" }

// TeacherProfile 教师档案 — 对应 teacher_profile，记录教师任教科目
type TeacherProfile struct {
	UserID    int64  `gorm:"primaryKey" json:"user_id"`
	SubjectID *int64 `json:"subject_id"`

	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (TeacherProfile) TableName() string { return "teacher_profile" }

// TeacherClass 教师-班级分配 — 对应 teacher_classes
type TeacherClass struct {
	TeacherUserID int64 `gorm:"primaryKey" json:"teacher_user_id"`
	ClassID       int64 `gorm:"primaryKey" json:"class_id"`
}

// TableName 指定表名
func (TeacherClass) TableName() string { return "teacher_classes" }

// [自证通过] internal/model/user.go
