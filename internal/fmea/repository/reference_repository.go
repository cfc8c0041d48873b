package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
)

// ReferenceRepository 参考数据仓库：设备类别/制造商/工作中心/失效模式/原因/机理。
// 参考数据读多写少，管理员维护，结构一致，用泛型辅助函数消除重复
type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func listRef[T any](ctx context.Context, db *gorm.DB, order string) ([]T, error) {
	var items []T
	err := db.WithContext(ctx).Order(order).Find(&items).Error
	return items, err
}

func findRef[T any](ctx context.Context, db *gorm.DB, id string) (*T, error) {
	var item T
	err := db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		return nil, translateErr(err)
	}
	return &item, nil
}

func createRef[T any](ctx context.Context, db *gorm.DB, item *T) error {
	return translateErr(db.WithContext(ctx).Create(item).Error)
}

func saveRef[T any](ctx context.Context, db *gorm.DB, item *T) error {
	return translateErr(db.WithContext(ctx).Save(item).Error)
}

func deleteRef[T any](ctx context.Context, db *gorm.DB, id string) error {
	var zero T
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&zero)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// === 设备类别 ===

func (r *ReferenceRepository) ListEquipmentClasses(ctx context.Context) ([]entity.EquipmentClass, error) {
	return listRef[entity.EquipmentClass](ctx, r.db, "name ASC")
}

func (r *ReferenceRepository) FindEquipmentClass(ctx context.Context, id string) (*entity.EquipmentClass, error) {
	return findRef[entity.EquipmentClass](ctx, r.db, id)
}

func (r *ReferenceRepository) CreateEquipmentClass(ctx context.Context, item *entity.EquipmentClass) error {
	return createRef(ctx, r.db, item)
}

func (r *ReferenceRepository) UpdateEquipmentClass(ctx context.Context, item *entity.EquipmentClass) error {
	return saveRef(ctx, r.db, item)
}

func (r *ReferenceRepository) DeleteEquipmentClass(ctx context.Context, id string) error {
	return deleteRef[entity.EquipmentClass](ctx, r.db, id)
}

// === 制造商 ===

func (r *ReferenceRepository) ListManufacturers(ctx context.Context) ([]entity.Manufacturer, error) {
	return listRef[entity.Manufacturer](ctx, r.db, "name ASC")
}

func (r *ReferenceRepository) FindManufacturer(ctx context.Context, id string) (*entity.Manufacturer, error) {
	return findRef[entity.Manufacturer](ctx, r.db, id)
}

func (r *ReferenceRepository) CreateManufacturer(ctx context.Context, item *entity.Manufacturer) error {
	return createRef(ctx, r.db, item)
}

func (r *ReferenceRepository) UpdateManufacturer(ctx context.Context, item *entity.Manufacturer) error {
	return saveRef(ctx, r.db, item)
}

func (r *ReferenceRepository) DeleteManufacturer(ctx context.Context, id string) error {
	return deleteRef[entity.Manufacturer](ctx, r.db, id)
}

// === 工作中心 ===

func (r *ReferenceRepository) ListWorkCenters(ctx context.Context) ([]entity.WorkCenter, error) {
	return listRef[entity.WorkCenter](ctx, r.db, "name ASC")
}

func (r *ReferenceRepository) FindWorkCenter(ctx context.Context, id string) (*entity.WorkCenter, error) {
	return findRef[entity.WorkCenter](ctx, r.db, id)
}

func (r *ReferenceRepository) CreateWorkCenter(ctx context.Context, item *entity.WorkCenter) error {
	return createRef(ctx, r.db, item)
}

func (r *ReferenceRepository) UpdateWorkCenter(ctx context.Context, item *entity.WorkCenter) error {
	return saveRef(ctx, r.db, item)
}

func (r *ReferenceRepository) DeleteWorkCenter(ctx context.Context, id string) error {
	return deleteRef[entity.WorkCenter](ctx, r.db, id)
}

// === 失效模式 ===

func (r *ReferenceRepository) ListFailureModes(ctx context.Context) ([]entity.FailureMode, error) {
	return listRef[entity.FailureMode](ctx, r.db, "name ASC")
}

func (r *ReferenceRepository) FindFailureMode(ctx context.Context, id string) (*entity.FailureMode, error) {
	return findRef[entity.FailureMode](ctx, r.db, id)
}

func (r *ReferenceRepository) CreateFailureMode(ctx context.Context, item *entity.FailureMode) error {
	return createRef(ctx, r.db, item)
}

func (r *ReferenceRepository) UpdateFailureMode(ctx context.Context, item *entity.FailureMode) error {
	return saveRef(ctx, r.db, item)
}

func (r *ReferenceRepository) DeleteFailureMode(ctx context.Context, id string) error {
	return deleteRef[entity.FailureMode](ctx, r.db, id)
}

// === 失效原因 ===

func (r *ReferenceRepository) ListFailureCauses(ctx context.Context) ([]entity.FailureCause, error) {
	return listRef[entity.FailureCause](ctx, r.db, "name ASC")
}

func (r *ReferenceRepository) FindFailureCause(ctx context.Context, id string) (*entity.FailureCause, error) {
	return findRef[entity.FailureCause](ctx, r.db, id)
}

func (r *ReferenceRepository) CreateFailureCause(ctx context.Context, item *entity.FailureCause) error {
	return createRef(ctx, r.db, item)
}

func (r *ReferenceRepository) UpdateFailureCause(ctx context.Context, item *entity.FailureCause) error {
	return saveRef(ctx, r.db, item)
}

func (r *ReferenceRepository) DeleteFailureCause(ctx context.Context, id string) error {
	return deleteRef[entity.FailureCause](ctx, r.db, id)
}

// === 失效机理 ===

func (r *ReferenceRepository) ListFailureMechanisms(ctx context.Context) ([]entity.FailureMechanism, error) {
	return listRef[entity.FailureMechanism](ctx, r.db, "name ASC")
}

func (r *ReferenceRepository) FindFailureMechanism(ctx context.Context, id string) (*entity.FailureMechanism, error) {
	return findRef[entity.FailureMechanism](ctx, r.db, id)
}

func (r *ReferenceRepository) CreateFailureMechanism(ctx context.Context, item *entity.FailureMechanism) error {
	return createRef(ctx, r.db, item)
}

func (r *ReferenceRepository) UpdateFailureMechanism(ctx context.Context, item *entity.FailureMechanism) error {
	return saveRef(ctx, r.db, item)
}

func (r *ReferenceRepository) DeleteFailureMechanism(ctx context.Context, id string) error {
	return deleteRef[entity.FailureMechanism](ctx, r.db, id)
}
