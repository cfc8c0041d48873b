package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
)

// SparePartRepository 备件仓库
type SparePartRepository struct {
	db *gorm.DB
}

func NewSparePartRepository(db *gorm.DB) *SparePartRepository {
	return &SparePartRepository{db: db}
}

// FindAll 备件列表
func (r *SparePartRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.SparePart, int64, error) {
	var items []entity.SparePart
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SparePart{})

	if equipmentID := filters["equipment_id"]; equipmentID != "" {
		query = query.Where("equipment_id = ?", equipmentID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindAllForAggregation 聚合用全量快照
func (r *SparePartRepository) FindAllForAggregation(ctx context.Context) ([]entity.SparePart, error) {
	var items []entity.SparePart
	err := r.db.WithContext(ctx).Find(&items).Error
	return items, err
}

// FindByID 根据ID查找备件
func (r *SparePartRepository) FindByID(ctx context.Context, id string) (*entity.SparePart, error) {
	var part entity.SparePart
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&part).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &part, nil
}

// Create 创建备件
func (r *SparePartRepository) Create(ctx context.Context, part *entity.SparePart) error {
	return translateErr(r.db.WithContext(ctx).Create(part).Error)
}

// Update 更新备件
func (r *SparePartRepository) Update(ctx context.Context, part *entity.SparePart) error {
	return translateErr(r.db.WithContext(ctx).Save(part).Error)
}

// Delete 删除备件
func (r *SparePartRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.SparePart{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
