package service

import (
	"context"

	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
)

// ReferenceService 参考数据服务：统一维护六类目录数据
type ReferenceService struct {
	repo *repository.ReferenceRepository
}

// NewReferenceService 创建参考数据服务
func NewReferenceService(repo *repository.ReferenceRepository) *ReferenceService {
	return &ReferenceService{repo: repo}
}

// CreateReferenceRequest 通用参考数据创建请求
type CreateReferenceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateReferenceRequest 通用参考数据更新请求
type UpdateReferenceRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CreateManufacturerRequest 创建制造商请求
type CreateManufacturerRequest struct {
	Name    string `json:"name" binding:"required"`
	Country string `json:"country"`
	Website string `json:"website"`
}

// UpdateManufacturerRequest 更新制造商请求
type UpdateManufacturerRequest struct {
	Name    *string `json:"name"`
	Country *string `json:"country"`
	Website *string `json:"website"`
}

// === 设备类别 ===

func (s *ReferenceService) ListEquipmentClasses(ctx context.Context) ([]entity.EquipmentClass, error) {
	return s.repo.ListEquipmentClasses(ctx)
}

func (s *ReferenceService) CreateEquipmentClass(ctx context.Context, req *CreateReferenceRequest) (*entity.EquipmentClass, error) {
	item := &entity.EquipmentClass{
		ID:          generateID(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateEquipmentClass(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ReferenceService) UpdateEquipmentClass(ctx context.Context, id string, req *UpdateReferenceRequest) (*entity.EquipmentClass, error) {
	item, err := s.repo.FindEquipmentClass(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if err := s.repo.UpdateEquipmentClass(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ReferenceService) DeleteEquipmentClass(ctx context.Context, id string) error {
	return s.repo.DeleteEquipmentClass(ctx, id)
}

// === 制造商 ===

func (s *ReferenceService) ListManufacturers(ctx context.Context) ([]entity.Manufacturer, error) {
	return s.repo.ListManufacturers(ctx)
}

func (s *ReferenceService) CreateManufacturer(ctx context.Context, req *CreateManufacturerRequest) (*entity.Manufacturer, error) {
	item := &entity.Manufacturer{
		ID:      generateID(),
		Name:    req.Name,
		Country: req.Country,
		Website: req.Website,
	}
	if err := s.repo.CreateManufacturer(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ReferenceService) UpdateManufacturer(ctx context.Context, id string, req *UpdateManufacturerRequest) (*entity.Manufacturer, error) {
	item, err := s.repo.FindManufacturer(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Country != nil {
		item.Country = *req.Country
	}
	if req.Website != nil {
		item.Website = *req.Website
	}
	if err := s.repo.UpdateManufacturer(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ReferenceService) DeleteManufacturer(ctx context.Context, id string) error {
	return s.repo.DeleteManufacturer(ctx, id)
}

// === 工作中心 ===

func (s *ReferenceService) ListWorkCenters(ctx context.Context) ([]entity.WorkCenter, error) {
	return s.repo.ListWorkCenters(ctx)
}

func (s *ReferenceService) CreateWorkCenter(ctx context.Context, req *CreateReferenceRequest) (*entity.WorkCenter, error) {
	item := &entity.WorkCenter{
		ID:          generateID(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateWorkCenter(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ReferenceService) UpdateWorkCenter(ctx context.Context, id string, req *UpdateReferenceRequest) (*entity.WorkCenter, error) {
	item, err := s.repo.FindWorkCenter(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if err := s.repo.UpdateWorkCenter(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ReferenceService) DeleteWorkCenter(ctx context.Context, id string) error {
	return s.repo.DeleteWorkCenter(ctx, id)
}

// === 失效模式 ===

func (s *ReferenceService) ListFailureModes(ctx context.Context) ([]entity.FailureMode, error) {
	return s.repo.ListFailureModes(ctx)
}

func (s *ReferenceService) CreateFailureMode(ctx context.Context, req *CreateReferenceRequest) (*entity.FailureMode, error) {
	item := &entity.FailureMode{
		ID:          generateID(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateFailureMode(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ReferenceService) UpdateFailureMode(ctx context.Context, id string, req *UpdateReferenceRequest) (*entity.FailureMode, error) {
	item, err := s.repo.FindFailureMode(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if err := s.repo.UpdateFailureMode(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ReferenceService) DeleteFailureMode(ctx context.Context, id string) error {
	return s.repo.DeleteFailureMode(ctx, id)
}

// === 失效原因 ===

func (s *ReferenceService) ListFailureCauses(ctx context.Context) ([]entity.FailureCause, error) {
	return s.repo.ListFailureCauses(ctx)
}

func (s *ReferenceService) CreateFailureCause(ctx context.Context, req *CreateReferenceRequest) (*entity.FailureCause, error) {
	item := &entity.FailureCause{
		ID:          generateID(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateFailureCause(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ReferenceService) UpdateFailureCause(ctx context.Context, id string, req *UpdateReferenceRequest) (*entity.FailureCause, error) {
	item, err := s.repo.FindFailureCause(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if err := s.repo.UpdateFailureCause(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ReferenceService) DeleteFailureCause(ctx context.Context, id string) error {
	return s.repo.DeleteFailureCause(ctx, id)
}

// === 失效机理 ===

func (s *ReferenceService) ListFailureMechanisms(ctx context.Context) ([]entity.FailureMechanism, error) {
	return s.repo.ListFailureMechanisms(ctx)
}

func (s *ReferenceService) CreateFailureMechanism(ctx context.Context, req *CreateReferenceRequest) (*entity.FailureMechanism, error) {
	item := &entity.FailureMechanism{
		ID:          generateID(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.repo.CreateFailureMechanism(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ReferenceService) UpdateFailureMechanism(ctx context.Context, id string, req *UpdateReferenceRequest) (*entity.FailureMechanism, error) {
	item, err := s.repo.FindFailureMechanism(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if err := s.repo.UpdateFailureMechanism(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *ReferenceService) DeleteFailureMechanism(ctx context.Context, id string) error {
	return s.repo.DeleteFailureMechanism(ctx, id)
}
