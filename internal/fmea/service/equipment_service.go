package service

import (
	"context"
	"fmt"
	"math"

	"github.com/numancr7/fmea-sub001/internal/fmea/authz"
	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
	"github.com/numancr7/fmea-sub001/internal/fmea/risk"
)

// EquipmentService 设备服务
type EquipmentService struct {
	repo          *repository.EquipmentRepository
	componentRepo *repository.ComponentRepository
	fmeaRepo      *repository.FMEARepository
	matrixSvc     *RiskMatrixService
}

// NewEquipmentService 创建设备服务
func NewEquipmentService(repo *repository.EquipmentRepository, componentRepo *repository.ComponentRepository, fmeaRepo *repository.FMEARepository, matrixSvc *RiskMatrixService) *EquipmentService {
	return &EquipmentService{
		repo:          repo,
		componentRepo: componentRepo,
		fmeaRepo:      fmeaRepo,
		matrixSvc:     matrixSvc,
	}
}

// CreateEquipmentRequest 创建设备请求
type CreateEquipmentRequest struct {
	Tag              string `json:"tag" binding:"required"`
	Name             string `json:"name" binding:"required"`
	Description      string `json:"description"`
	EquipmentClassID string `json:"equipment_class_id"`
	ManufacturerID   string `json:"manufacturer_id"`
	WorkCenterID     string `json:"work_center_id"`
	TeamID           string `json:"team_id"`
	Model            string `json:"model"`
	SerialNumber     string `json:"serial_number"`
}

// UpdateEquipmentRequest 更新设备请求
type UpdateEquipmentRequest struct {
	Tag              *string `json:"tag"`
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	EquipmentClassID *string `json:"equipment_class_id"`
	ManufacturerID   *string `json:"manufacturer_id"`
	WorkCenterID     *string `json:"work_center_id"`
	TeamID           *string `json:"team_id"`
	Model            *string `json:"model"`
	SerialNumber     *string `json:"serial_number"`
	Status           *string `json:"status"`
}

// List 设备列表。withScore=true 时为每台设备附带动态平均RPN，
// 无可评分记录的设备 average_rpn 留空而非填0
func (s *EquipmentService) List(ctx context.Context, page, pageSize int, filters map[string]string, withScore bool) ([]entity.Equipment, int64, error) {
	items, total, err := s.repo.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, 0, err
	}

	if withScore && len(items) > 0 {
		if err := s.attachScores(ctx, items); err != nil {
			return nil, 0, err
		}
	}

	return items, total, err
}

// Get 设备详情，始终附带动态评分
func (s *EquipmentService) Get(ctx context.Context, id string) (*entity.Equipment, error) {
	eq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items := []entity.Equipment{*eq}
	if err := s.attachScores(ctx, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// EquipmentSummaryResponse 单台设备的风险汇总
type EquipmentSummaryResponse struct {
	EquipmentID   string                 `json:"equipment_id"`
	Tag           string                 `json:"tag"`
	Name          string                 `json:"name"`
	AverageRPN    *int                   `json:"average_rpn,omitempty"`
	ScoredRecords int                    `json:"scored_records"`
	TotalRecords  int                    `json:"total_records"`
	Records       []EquipmentRecordScore `json:"records"`
}

// EquipmentRecordScore 汇总中的单条记录评分，不落库
type EquipmentRecordScore struct {
	RecordID  string `json:"record_id"`
	Category  string `json:"category"`
	RPN       *int   `json:"rpn"`
	RiskLevel string `json:"risk_level"`
}

// Summary 设备风险汇总：逐条重算评分，无可评分记录时 average_rpn 留空
func (s *EquipmentService) Summary(ctx context.Context, id string) (*EquipmentSummaryResponse, error) {
	eq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	matrix, err := s.matrixSvc.LoadMatrix(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.fmeaRepo.FindByEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := &EquipmentSummaryResponse{
		EquipmentID: eq.ID,
		Tag:         eq.Tag,
		Name:        eq.Name,
		Records:     make([]EquipmentRecordScore, 0, len(records)),
	}

	sum := 0
	for i := range records {
		r := &records[i]
		rs := EquipmentRecordScore{
			RecordID:  r.ID,
			Category:  r.Category,
			RiskLevel: risk.LevelUnscored,
		}
		if score := risk.ScoreRecord(r, matrix); score.Valid {
			rpn := score.RPN
			rs.RPN = &rpn
			rs.RiskLevel = score.Level
			sum += score.RPN
			resp.ScoredRecords++
		}
		resp.Records = append(resp.Records, rs)
	}
	resp.TotalRecords = len(records)

	if resp.ScoredRecords > 0 {
		avg := int(math.Round(float64(sum) / float64(resp.ScoredRecords)))
		resp.AverageRPN = &avg
	}
	return resp, nil
}

// attachScores 全量拉取记录快照后逐台设备计算平均RPN
func (s *EquipmentService) attachScores(ctx context.Context, items []entity.Equipment) error {
	matrix, err := s.matrixSvc.LoadMatrix(ctx)
	if err != nil {
		return err
	}

	records, err := s.fmeaRepo.FindAllForAggregation(ctx)
	if err != nil {
		return err
	}

	for i := range items {
		eq := &items[i]
		avg, ok := risk.AverageRPN(records, eq.ID, matrix)
		if !ok {
			continue
		}
		count := 0
		for j := range records {
			if records[j].EquipmentID != eq.ID {
				continue
			}
			if risk.ScoreRecord(&records[j], matrix).Valid {
				count++
			}
		}
		eq.AverageRPN = &avg
		eq.ScoredRecords = &count
	}
	return nil
}

// Create 创建设备
func (s *EquipmentService) Create(ctx context.Context, p *authz.Principal, req *CreateEquipmentRequest) (*entity.Equipment, error) {
	teamID := req.TeamID
	if teamID == "" {
		teamID = p.TeamID
	}

	eq := &entity.Equipment{
		ID:               generateID(),
		Tag:              req.Tag,
		Name:             req.Name,
		Description:      req.Description,
		EquipmentClassID: req.EquipmentClassID,
		ManufacturerID:   req.ManufacturerID,
		WorkCenterID:     req.WorkCenterID,
		TeamID:           teamID,
		Model:            req.Model,
		SerialNumber:     req.SerialNumber,
		Status:           "active",
		CreatedBy:        p.ID,
	}

	if err := s.repo.Create(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

// Update 更新设备
func (s *EquipmentService) Update(ctx context.Context, id string, req *UpdateEquipmentRequest) (*entity.Equipment, error) {
	eq, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Tag != nil {
		eq.Tag = *req.Tag
	}
	if req.Name != nil {
		eq.Name = *req.Name
	}
	if req.Description != nil {
		eq.Description = *req.Description
	}
	if req.EquipmentClassID != nil {
		eq.EquipmentClassID = *req.EquipmentClassID
	}
	if req.ManufacturerID != nil {
		eq.ManufacturerID = *req.ManufacturerID
	}
	if req.WorkCenterID != nil {
		eq.WorkCenterID = *req.WorkCenterID
	}
	if req.TeamID != nil {
		eq.TeamID = *req.TeamID
	}
	if req.Model != nil {
		eq.Model = *req.Model
	}
	if req.SerialNumber != nil {
		eq.SerialNumber = *req.SerialNumber
	}
	if req.Status != nil {
		eq.Status = *req.Status
	}

	if err := s.repo.Update(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

// Delete 删除设备
func (s *EquipmentService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// CreateComponentRequest 创建部件请求
type CreateComponentRequest struct {
	Name     string `json:"name" binding:"required"`
	Function string `json:"function"`
}

// UpdateComponentRequest 更新部件请求
type UpdateComponentRequest struct {
	Name     *string `json:"name"`
	Function *string `json:"function"`
}

// ListComponents 某设备的部件列表
func (s *EquipmentService) ListComponents(ctx context.Context, equipmentID string) ([]entity.Component, error) {
	if _, err := s.repo.FindByID(ctx, equipmentID); err != nil {
		return nil, err
	}
	return s.componentRepo.FindByEquipment(ctx, equipmentID)
}

// CreateComponent 在设备下创建部件
func (s *EquipmentService) CreateComponent(ctx context.Context, equipmentID string, req *CreateComponentRequest) (*entity.Component, error) {
	if _, err := s.repo.FindByID(ctx, equipmentID); err != nil {
		return nil, fmt.Errorf("equipment: %w", err)
	}

	comp := &entity.Component{
		ID:          generateID(),
		EquipmentID: equipmentID,
		Name:        req.Name,
		Function:    req.Function,
	}
	if err := s.componentRepo.Create(ctx, comp); err != nil {
		return nil, err
	}
	return comp, nil
}

// UpdateComponent 更新部件
func (s *EquipmentService) UpdateComponent(ctx context.Context, id string, req *UpdateComponentRequest) (*entity.Component, error) {
	comp, err := s.componentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		comp.Name = *req.Name
	}
	if req.Function != nil {
		comp.Function = *req.Function
	}

	if err := s.componentRepo.Update(ctx, comp); err != nil {
		return nil, err
	}
	return comp, nil
}

// DeleteComponent 删除部件
func (s *EquipmentService) DeleteComponent(ctx context.Context, id string) error {
	return s.componentRepo.Delete(ctx, id)
}
