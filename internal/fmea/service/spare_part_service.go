package service

import (
	"context"
	"fmt"

	"github.com/numancr7/fmea-sub001/internal/fmea/authz"
	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
)

// SparePartService 备件服务
type SparePartService struct {
	repo          *repository.SparePartRepository
	equipmentRepo *repository.EquipmentRepository
}

// NewSparePartService 创建备件服务
func NewSparePartService(repo *repository.SparePartRepository, equipmentRepo *repository.EquipmentRepository) *SparePartService {
	return &SparePartService{repo: repo, equipmentRepo: equipmentRepo}
}

// CreateSparePartRequest 创建备件请求
type CreateSparePartRequest struct {
	Name         string  `json:"name" binding:"required"`
	PartNumber   string  `json:"part_number"`
	EquipmentID  string  `json:"equipment_id"`
	CurrentStock int     `json:"current_stock" binding:"min=0"`
	MinStock     int     `json:"min_stock" binding:"min=0"`
	MaxStock     int     `json:"max_stock" binding:"min=0"`
	UnitCost     float64 `json:"unit_cost"`
}

// UpdateSparePartRequest 更新备件请求
type UpdateSparePartRequest struct {
	Name         *string  `json:"name"`
	PartNumber   *string  `json:"part_number"`
	EquipmentID  *string  `json:"equipment_id"`
	CurrentStock *int     `json:"current_stock" binding:"omitempty,min=0"`
	MinStock     *int     `json:"min_stock" binding:"omitempty,min=0"`
	MaxStock     *int     `json:"max_stock" binding:"omitempty,min=0"`
	UnitCost     *float64 `json:"unit_cost"`
	Status       *string  `json:"status" binding:"omitempty,oneof=approved pending rejected"`
}

// List 备件列表。low_stock=true 时仅返回库存不足的备件
func (s *SparePartService) List(ctx context.Context, page, pageSize int, filters map[string]string, lowStockOnly bool) ([]entity.SparePart, int64, error) {
	items, total, err := s.repo.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}

	if lowStockOnly {
		// 低库存判定在实体上：current_stock < min_stock
		filtered := items[:0]
		for _, p := range items {
			if p.LowStock() {
				filtered = append(filtered, p)
			}
		}
		items = filtered
		total = int64(len(items))
	}

	return items, total, nil
}

// Get 备件详情
func (s *SparePartService) Get(ctx context.Context, id string) (*entity.SparePart, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建备件，默认进入pending待审核状态
func (s *SparePartService) Create(ctx context.Context, p *authz.Principal, req *CreateSparePartRequest) (*entity.SparePart, error) {
	if req.EquipmentID != "" {
		if _, err := s.equipmentRepo.FindByID(ctx, req.EquipmentID); err != nil {
			return nil, fmt.Errorf("equipment: %w", err)
		}
	}

	part := &entity.SparePart{
		ID:           generateID(),
		Name:         req.Name,
		PartNumber:   req.PartNumber,
		EquipmentID:  req.EquipmentID,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		MaxStock:     req.MaxStock,
		UnitCost:     req.UnitCost,
		Status:       entity.SparePartStatusPending,
		CreatedBy:    p.ID,
	}

	if err := s.repo.Create(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// Update 更新备件
func (s *SparePartService) Update(ctx context.Context, id string, req *UpdateSparePartRequest) (*entity.SparePart, error) {
	part, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		part.Name = *req.Name
	}
	if req.PartNumber != nil {
		part.PartNumber = *req.PartNumber
	}
	if req.EquipmentID != nil {
		part.EquipmentID = *req.EquipmentID
	}
	if req.CurrentStock != nil {
		part.CurrentStock = *req.CurrentStock
	}
	if req.MinStock != nil {
		part.MinStock = *req.MinStock
	}
	if req.MaxStock != nil {
		part.MaxStock = *req.MaxStock
	}
	if req.UnitCost != nil {
		part.UnitCost = *req.UnitCost
	}
	if req.Status != nil {
		part.Status = *req.Status
	}

	if err := s.repo.Update(ctx, part); err != nil {
		return nil, err
	}
	return part, nil
}

// Delete 删除备件
func (s *SparePartService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
