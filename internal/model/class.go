package model

// Class 班级表 — 对应 classes
type Class struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

// TableName 指定表名
func (Class) TableName() string { return "classes" }

// Subject 科目表 — 对应 subjects
type Subject struct {
	ID   int64  `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }
