package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"connected/backend/internal/dto"
	"connected/backend/internal/model"
	"connected/backend/internal/repository"
)

var (
	ErrEmailTaken   = errors.New("该邮箱已被注册")
	ErrInvalidEmail = errors.New("邮箱格式无效，需为 ConnectEd 校内邮箱")
	ErrRoleNotFound = errors.New("角色不存在")
)

// 校内邮箱格式：本地部分纯小写字母，域名按角色划分
var connectedEmailRe = regexp.MustCompile(`^[a-z]+[a-z]@(student|teacher|admin)\.connected\.com$`)

// UserService 用户管理业务接口
type UserService interface {
	// ListUsers 按角色列出用户，附带角色相关展示字段
	ListUsers(ctx context.Context, req *dto.ListUsersRequest) ([]dto.UserListItem, error)
	// CreateUser 创建用户及其角色档案，整体在一个事务内完成
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserListItem, error)
}

type userService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, logger *zap.Logger) UserService {
	return &userService{repo: repo, logger: logger}
}

func (s *userService) ListUsers(ctx context.Context, req *dto.ListUsersRequest) ([]dto.UserListItem, error) {
	users, err := s.repo.User.ListByRole(ctx, req.Role)
	if err != nil {
		s.logger.Error("查询用户列表失败", zap.String("role", req.Role), zap.Error(err))
		return nil, err
	}

	items := make([]dto.UserListItem, 0, len(users))
	for _, u := range users {
		items = append(items, dto.UserListItem{
			ID:       u.ID,
			FullName: u.FullName,
			Email:    u.Email,
			Status:   u.Status,
		})
	}

	ids := make([]int64, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}

	switch req.Role {
	case "student":
		if err := s.fillStudentFields(ctx, ids, items); err != nil {
			return nil, err
		}
	case "teacher":
		if err := s.fillTeacherFields(ctx, ids, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func (s *userService) fillStudentFields(ctx context.Context, ids []int64, items []dto.UserListItem) error {
	profiles, err := s.repo.User.StudentProfilesByUserIDs(ctx, ids)
	if err != nil {
		return err
	}
	classNames := make(map[int64]string, len(profiles))
	for i := range profiles {
		if profiles[i].Class != nil {
			classNames[profiles[i].UserID] = profiles[i].Class.Name
		}
	}
	for i := range items {
		if name, ok := classNames[items[i].ID]; ok {
			n := name
			items[i].Class = &n
		}
	}
	return nil
}

func (s *userService) fillTeacherFields(ctx context.Context, ids []int64, items []dto.UserListItem) error {
	profiles, err := s.repo.User.TeacherProfilesByUserIDs(ctx, ids)
	if err != nil {
		return err
	}
	subjectNames := make(map[int64]string, len(profiles))
	for i := range profiles {
		if profiles[i].Subject != nil {
			subjectNames[profiles[i].UserID] = profiles[i].Subject.Name
		}
	}

	classNames, err := s.repo.User.TeacherClassNames(ctx, ids)
	if err != nil {
		return err
	}

	for i := range items {
		if name, ok := subjectNames[items[i].ID]; ok {
			n := name
			items[i].Subject = &n
		}
		if names, ok := classNames[items[i].ID]; ok && len(names) > 0 {
			joined := strings.Join(names, ", ")
			items[i].Classes = &joined
		}
	}
	return nil
}

func (s *userService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserListItem, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !connectedEmailRe.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	// 邮箱唯一性预检（数据库唯一索引兜底）
	if _, err := s.repo.User.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	var created *model.User
	err = s.repo.Tx.Transaction(ctx, func(tx *repository.Repository) error {
		role, err := tx.User.GetRoleByName(ctx, req.Role)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoleNotFound
			}
			return err
		}

		user := &model.User{
			RoleID:       role.ID,
			FullName:     req.FullName,
			Email:        email,
			PasswordHash: string(hash),
			Status:       "active",
		}
		if err := tx.User.Create(ctx, user); err != nil {
			s.logger.Error("创建用户失败", zap.Error(err))
			return err
		}

		switch req.Role {
		case "student":
			if req.ClassID != nil {
				if _, err := tx.Class.GetByID(ctx, *req.ClassID); err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrClassNotFound
					}
					return err
				}
			}
			if err := tx.User.CreateStudentProfile(ctx, &model.StudentProfile{
				UserID:  user.ID,
				ClassID: req.ClassID,
			}); err != nil {
				return err
			}
		case "teacher":
			if req.SubjectID != nil {
				if _, err := tx.Subject.GetByID(ctx, *req.SubjectID); err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return ErrSubjectNotFound
					}
					return err
				}
			}
			if err := tx.User.CreateTeacherProfile(ctx, &model.TeacherProfile{
				UserID:    user.ID,
				SubjectID: req.SubjectID,
			}); err != nil {
				return err
			}
			if len(req.ClassIDs) > 0 {
				for _, classID := range req.ClassIDs {
					if _, err := tx.Class.GetByID(ctx, classID); err != nil {
						if errors.Is(err, gorm.ErrRecordNotFound) {
							return ErrClassNotFound
						}
						return err
					}
				}
				if err := tx.Class.AddTeacherToClasses(ctx, user.ID, req.ClassIDs); err != nil {
					return err
				}
			}
		}
		created = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.UserListItem{
		ID:       created.ID,
		FullName: created.FullName,
		Email:    created.Email,
		Status:   created.Status,
	}, nil
}
