package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
)

// RiskMatrixRepository 风险矩阵仓库
type RiskMatrixRepository struct {
	db *gorm.DB
}

func NewRiskMatrixRepository(db *gorm.DB) *RiskMatrixRepository {
	return &RiskMatrixRepository{db: db}
}

// FindAll 全部矩阵单元，按坐标排序
func (r *RiskMatrixRepository) FindAll(ctx context.Context) ([]entity.RiskMatrixCell, error) {
	var cells []entity.RiskMatrixCell
	err := r.db.WithContext(ctx).
		Order("severity ASC, probability ASC").
		Find(&cells).Error
	return cells, err
}

// FindByID 根据ID查找矩阵单元
func (r *RiskMatrixRepository) FindByID(ctx context.Context, id string) (*entity.RiskMatrixCell, error) {
	var cell entity.RiskMatrixCell
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&cell).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &cell, nil
}

// Count 矩阵单元总数
func (r *RiskMatrixRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.RiskMatrixCell{}).Count(&total).Error
	return total, err
}

// Create 创建矩阵单元，坐标重复返回ErrConflict
func (r *RiskMatrixRepository) Create(ctx context.Context, cell *entity.RiskMatrixCell) error {
	return translateErr(r.db.WithContext(ctx).Create(cell).Error)
}

// CreateBatch 批量创建矩阵单元，用于初始化种子
func (r *RiskMatrixRepository) CreateBatch(ctx context.Context, cells []entity.RiskMatrixCell) error {
	return translateErr(r.db.WithContext(ctx).Create(&cells).Error)
}

// Update 更新矩阵单元
func (r *RiskMatrixRepository) Update(ctx context.Context, cell *entity.RiskMatrixCell) error {
	return translateErr(r.db.WithContext(ctx).Save(cell).Error)
}

// Delete 删除矩阵单元
func (r *RiskMatrixRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.RiskMatrixCell{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
