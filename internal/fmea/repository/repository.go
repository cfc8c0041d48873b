package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict 唯一键冲突：并发创建同名资源时由数据库唯一索引兜底，
	// 上抛为409而不是让两次创建都成功
	ErrConflict = errors.New("record already exists")
)

// translateErr 将gorm错误映射为仓库层哨兵错误
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}
	return err
}

// Repositories 仓库集合
type Repositories struct {
	User       *UserRepository
	Team       *TeamRepository
	Equipment  *EquipmentRepository
	Component  *ComponentRepository
	Reference  *ReferenceRepository
	FMEA       *FMEARepository
	Task       *TaskRepository
	SparePart  *SparePartRepository
	RiskMatrix *RiskMatrixRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       NewUserRepository(db),
		Team:       NewTeamRepository(db),
		Equipment:  NewEquipmentRepository(db),
		Component:  NewComponentRepository(db),
		Reference:  NewReferenceRepository(db),
		FMEA:       NewFMEARepository(db),
		Task:       NewTaskRepository(db),
		SparePart:  NewSparePartRepository(db),
		RiskMatrix: NewRiskMatrixRepository(db),
	}
}
