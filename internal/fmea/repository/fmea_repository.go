package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
)

// FMEARepository FMEA记录仓库
type FMEARepository struct {
	db *gorm.DB
}

func NewFMEARepository(db *gorm.DB) *FMEARepository {
	return &FMEARepository{db: db}
}

// FindAll FMEA记录列表
func (r *FMEARepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.FMEARecord, int64, error) {
	var items []entity.FMEARecord
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.FMEARecord{})

	if equipmentID := filters["equipment_id"]; equipmentID != "" {
		query = query.Where("equipment_id = ?", equipmentID)
	}
	if componentID := filters["component_id"]; componentID != "" {
		query = query.Where("component_id = ?", componentID)
	}
	if category := filters["category"]; category != "" {
		query = query.Where("category = ?", category)
	}
	if riskLevel := filters["risk_level"]; riskLevel != "" {
		query = query.Where("risk_level = ?", riskLevel)
	}
	if teamID := filters["team_id"]; teamID != "" {
		query = query.Where("team_id = ?", teamID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Equipment").
		Preload("Component").
		Preload("FailureMode").
		Order("updated_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindAllForAggregation 聚合用全量快照，不分页不预加载
func (r *FMEARepository) FindAllForAggregation(ctx context.Context) ([]entity.FMEARecord, error) {
	var items []entity.FMEARecord
	err := r.db.WithContext(ctx).Find(&items).Error
	return items, err
}

// FindByEquipment 某设备的全部FMEA记录
func (r *FMEARepository) FindByEquipment(ctx context.Context, equipmentID string) ([]entity.FMEARecord, error) {
	var items []entity.FMEARecord
	err := r.db.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("updated_at DESC").
		Find(&items).Error
	return items, err
}

// FindByID 根据ID查找FMEA记录
func (r *FMEARepository) FindByID(ctx context.Context, id string) (*entity.FMEARecord, error) {
	var record entity.FMEARecord
	err := r.db.WithContext(ctx).
		Preload("Equipment").
		Preload("Component").
		Preload("FailureMode").
		Preload("FailureCause").
		Preload("FailureMechanism").
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &record, nil
}

// Create 创建FMEA记录
func (r *FMEARepository) Create(ctx context.Context, record *entity.FMEARecord) error {
	return translateErr(r.db.WithContext(ctx).Create(record).Error)
}

// Update 更新FMEA记录
func (r *FMEARepository) Update(ctx context.Context, record *entity.FMEARecord) error {
	return translateErr(r.db.WithContext(ctx).Save(record).Error)
}

// Delete 删除FMEA记录
func (r *FMEARepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.FMEARecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
