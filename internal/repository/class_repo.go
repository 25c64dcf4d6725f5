package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"connected/backend/internal/model"
)

// ClassRepository 班级数据访问接口
type ClassRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Class, error)
	List(ctx context.Context) ([]model.Class, error)
	Count(ctx context.Context) (int64, error)
	// StudentCounts 按班级统计学生人数
	StudentCounts(ctx context.Context) (map[int64]int, error)
	// TeacherCounts 按班级统计任课教师人数
	TeacherCounts(ctx context.Context) (map[int64]int, error)
	// SubjectNamesByClass 返回每个班级任课教师的科目名称（去重、按名称排序）
	SubjectNamesByClass(ctx context.Context) (map[int64][]string, error)
	// ListTeachersByClass 返回班级的任课教师及其科目
	ListTeachersByClass(ctx context.Context, classID int64) ([]model.User, map[int64]*model.Subject, error)
	ListStudentsByClass(ctx context.Context, classID int64) ([]model.User, error)
	// AssignStudents 将学生档案的班级改为指定班级（档案不存在则创建）
	AssignStudents(ctx context.Context, classID int64, studentIDs []int64) error
	// ReplaceTeachers 整体替换班级的教师分配
	ReplaceTeachers(ctx context.Context, classID int64, teacherIDs []int64) error
	// AddTeacherToClasses 将教师追加到多个班级（已存在的分配跳过）
	AddTeacherToClasses(ctx context.Context, teacherID int64, classIDs []int64) error
}

type classRepo struct {
	db *gorm.DB
}

// NewClassRepo 创建 ClassRepository 实例
func NewClassRepo(db *gorm.DB) ClassRepository {
	return &classRepo{db: db}
}

func (r *classRepo) GetByID(ctx context.Context, id int64) (*model.Class, error) {
	var class model.Class
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&class).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (r *classRepo) List(ctx context.Context) ([]model.Class, error) {
	var classes []model.Class
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&classes).Error
	return classes, err
}

func (r *classRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Class{}).
		Count(&count).Error
	return count, err
}

type classCount struct {
	ClassID int64
	Cnt     int
}

func (r *classRepo) StudentCounts(ctx context.Context) (map[int64]int, error) {
	var rows []classCount
	err := r.db.WithContext(ctx).
		Table("student_profile").
		Select("class_id, COUNT(*) AS cnt").
		Where("class_id IS NOT NULL").
		Group("class_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(rows))
	for _, row := range rows {
		counts[row.ClassID] = row.Cnt
	}
	return counts, nil
}

func (r *classRepo) TeacherCounts(ctx context.Context) (map[int64]int, error) {
	var rows []classCount
	err := r.db.WithContext(ctx).
		Table("teacher_classes").
		Select("class_id, COUNT(*) AS cnt").
		Group("class_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int, len(rows))
	for _, row := range rows {
		counts[row.ClassID] = row.Cnt
	}
	return counts, nil
}

func (r *classRepo) SubjectNamesByClass(ctx context.Context) (map[int64][]string, error) {
	type row struct {
		ClassID int64
		Name    string
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("teacher_classes").
		Select("DISTINCT teacher_classes.class_id, subjects.name").
		Joins("JOIN teacher_profile ON teacher_profile.user_id = teacher_classes.teacher_user_id").
		Joins("JOIN subjects ON subjects.id = teacher_profile.subject_id").
		Order("subjects.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	names := make(map[int64][]string)
	for _, row := range rows {
		names[row.ClassID] = append(names[row.ClassID], row.Name)
	}
	return names, nil
}

func (r *classRepo) ListTeachersByClass(ctx context.Context, classID int64) ([]model.User, map[int64]*model.Subject, error) {
	var teachers []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN teacher_classes ON teacher_classes.teacher_user_id = users.id").
		Where("teacher_classes.class_id = ?", classID).
		Order("users.full_name ASC").
		Find(&teachers).Error
	if err != nil {
		return nil, nil, err
	}

	ids := make([]int64, 0, len(teachers))
	for _, t := range teachers {
		ids = append(ids, t.ID)
	}

	subjects := make(map[int64]*model.Subject, len(ids))
	if len(ids) > 0 {
		var profiles []model.TeacherProfile
		err = r.db.WithContext(ctx).
			Preload("Subject").
			Where("user_id IN ?", ids).
			Find(&profiles).Error
		if err != nil {
			return nil, nil, err
		}
		for i := range profiles {
			subjects[profiles[i].UserID] = profiles[i].Subject
		}
	}
	return teachers, subjects, nil
}

func (r *classRepo) ListStudentsByClass(ctx context.Context, classID int64) ([]model.User, error) {
	var students []model.User
	err := r.db.WithContext(ctx).
		Joins("JOIN student_profile ON student_profile.user_id = users.id").
		Where("student_profile.class_id = ?", classID).
		Order("users.full_name ASC").
		Find(&students).Error
	return students, err
}

func (r *classRepo) AssignStudents(ctx context.Context, classID int64, studentIDs []int64) error {
	profiles := make([]model.StudentProfile, 0, len(studentIDs))
	for _, id := range studentIDs {
		cid := classID
		profiles = append(profiles, model.StudentProfile{UserID: id, ClassID: &cid})
	}
	// 已有档案则改班级，否则新建
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"class_id"}),
		}).
		Create(&profiles).Error
}

func (r *classRepo) AddTeacherToClasses(ctx context.Context, teacherID int64, classIDs []int64) error {
	if len(classIDs) == 0 {
		return nil
	}
	assignments := make([]model.TeacherClass, 0, len(classIDs))
	for _, classID := range classIDs {
		assignments = append(assignments, model.TeacherClass{TeacherUserID: teacherID, ClassID: classID})
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&assignments).Error
}

func (r *classRepo) ReplaceTeachers(ctx context.Context, classID int64, teacherIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", classID).
			Delete(&model.TeacherClass{}).Error; err != nil {
			return err
		}
		if len(teacherIDs) == 0 {
			return nil
		}
		assignments := make([]model.TeacherClass, 0, len(teacherIDs))
		for _, id := range teacherIDs {
			assignments = append(assignments, model.TeacherClass{TeacherUserID: id, ClassID: classID})
		}
		return tx.Create(&assignments).Error
	})
}
