package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
)

// EquipmentRepository 设备仓库
type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

// FindAll 设备列表
func (r *EquipmentRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Equipment, int64, error) {
	var items []entity.Equipment
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Equipment{})

	if classID := filters["equipment_class_id"]; classID != "" {
		query = query.Where("equipment_class_id = ?", classID)
	}
	if workCenterID := filters["work_center_id"]; workCenterID != "" {
		query = query.Where("work_center_id = ?", workCenterID)
	}
	if teamID := filters["team_id"]; teamID != "" {
		query = query.Where("team_id = ?", teamID)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("EquipmentClass").
		Preload("Manufacturer").
		Preload("WorkCenter").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindByID 根据ID查找设备
func (r *EquipmentRepository) FindByID(ctx context.Context, id string) (*entity.Equipment, error) {
	var eq entity.Equipment
	err := r.db.WithContext(ctx).
		Preload("EquipmentClass").
		Preload("Manufacturer").
		Preload("WorkCenter").
		Preload("Components").
		Where("id = ?", id).
		First(&eq).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &eq, nil
}

// Create 创建设备
func (r *EquipmentRepository) Create(ctx context.Context, eq *entity.Equipment) error {
	return translateErr(r.db.WithContext(ctx).Create(eq).Error)
}

// Update 更新设备
func (r *EquipmentRepository) Update(ctx context.Context, eq *entity.Equipment) error {
	return translateErr(r.db.WithContext(ctx).Save(eq).Error)
}

// Delete 删除设备
func (r *EquipmentRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Equipment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ComponentRepository 部件仓库
type ComponentRepository struct {
	db *gorm.DB
}

func NewComponentRepository(db *gorm.DB) *ComponentRepository {
	return &ComponentRepository{db: db}
}

// FindByEquipment 某设备的部件列表
func (r *ComponentRepository) FindByEquipment(ctx context.Context, equipmentID string) ([]entity.Component, error) {
	var items []entity.Component
	err := r.db.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

// FindByID 根据ID查找部件
func (r *ComponentRepository) FindByID(ctx context.Context, id string) (*entity.Component, error) {
	var comp entity.Component
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comp).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &comp, nil
}

// Create 创建部件
func (r *ComponentRepository) Create(ctx context.Context, comp *entity.Component) error {
	return translateErr(r.db.WithContext(ctx).Create(comp).Error)
}

// Update 更新部件
func (r *ComponentRepository) Update(ctx context.Context, comp *entity.Component) error {
	return translateErr(r.db.WithContext(ctx).Save(comp).Error)
}

// Delete 删除部件
func (r *ComponentRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Component{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
