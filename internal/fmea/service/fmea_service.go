package service

import (
	"context"
	"fmt"

	"github.com/numancr7/fmea-sub001/internal/fmea/authz"
	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
	"github.com/numancr7/fmea-sub001/internal/fmea/risk"
)

// FMEAService FMEA记录服务
type FMEAService struct {
	repo          *repository.FMEARepository
	equipmentRepo *repository.EquipmentRepository
	matrixSvc     *RiskMatrixService
}

// NewFMEAService 创建FMEA记录服务
func NewFMEAService(repo *repository.FMEARepository, equipmentRepo *repository.EquipmentRepository, matrixSvc *RiskMatrixService) *FMEAService {
	return &FMEAService{
		repo:          repo,
		equipmentRepo: equipmentRepo,
		matrixSvc:     matrixSvc,
	}
}

// CreateFMEARequest 创建FMEA记录请求。
// 评分输入可缺省：缺省记录为unscored，而不是被拒绝
type CreateFMEARequest struct {
	EquipmentID        string `json:"equipment_id" binding:"required"`
	ComponentID        string `json:"component_id"`
	FailureModeID      string `json:"failure_mode_id"`
	FailureCauseID     string `json:"failure_cause_id"`
	FailureMechanismID string `json:"failure_mechanism_id"`
	Effect             string `json:"effect"`
	Mitigation         string `json:"mitigation"`
	Category           string `json:"category"`
	Severity           *int   `json:"severity" binding:"omitempty,min=1,max=10"`
	Occurrence         *int   `json:"occurrence" binding:"omitempty,min=1,max=10"`
	Detection          *int   `json:"detection" binding:"omitempty,min=1,max=10"`
	Probability        *int   `json:"probability" binding:"omitempty,min=1,max=5"`
}

// UpdateFMEARequest 更新FMEA记录请求
type UpdateFMEARequest struct {
	ComponentID        *string `json:"component_id"`
	FailureModeID      *string `json:"failure_mode_id"`
	FailureCauseID     *string `json:"failure_cause_id"`
	FailureMechanismID *string `json:"failure_mechanism_id"`
	Effect             *string `json:"effect"`
	Mitigation         *string `json:"mitigation"`
	Category           *string `json:"category"`
	Severity           *int    `json:"severity" binding:"omitempty,min=1,max=10"`
	Occurrence         *int    `json:"occurrence" binding:"omitempty,min=1,max=10"`
	Detection          *int    `json:"detection" binding:"omitempty,min=1,max=10"`
	Probability        *int    `json:"probability" binding:"omitempty,min=1,max=5"`
}

// List FMEA记录列表
func (s *FMEAService) List(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.FMEARecord, int64, error) {
	return s.repo.FindAll(ctx, page, pageSize, filters)
}

// Get FMEA记录详情
func (s *FMEAService) Get(ctx context.Context, id string) (*entity.FMEARecord, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建FMEA记录：校验设备存在，服务端重算评分后落库
func (s *FMEAService) Create(ctx context.Context, p *authz.Principal, req *CreateFMEARequest) (*entity.FMEARecord, error) {
	if _, err := s.equipmentRepo.FindByID(ctx, req.EquipmentID); err != nil {
		return nil, fmt.Errorf("equipment: %w", err)
	}

	record := &entity.FMEARecord{
		ID:                 generateID(),
		EquipmentID:        req.EquipmentID,
		ComponentID:        req.ComponentID,
		FailureModeID:      req.FailureModeID,
		FailureCauseID:     req.FailureCauseID,
		FailureMechanismID: req.FailureMechanismID,
		Effect:             req.Effect,
		Mitigation:         req.Mitigation,
		Category:           req.Category,
		Severity:           req.Severity,
		Occurrence:         req.Occurrence,
		Detection:          req.Detection,
		Probability:        req.Probability,
		CreatedBy:          p.ID,
		TeamID:             p.TeamID,
	}

	if err := s.rescore(ctx, record); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Update 更新FMEA记录：任何评分输入变更后服务端重算，
// 请求体里的rpn/risk_level即使提交也被忽略
func (s *FMEAService) Update(ctx context.Context, id string, req *UpdateFMEARequest) (*entity.FMEARecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ComponentID != nil {
		record.ComponentID = *req.ComponentID
	}
	if req.FailureModeID != nil {
		record.FailureModeID = *req.FailureModeID
	}
	if req.FailureCauseID != nil {
		record.FailureCauseID = *req.FailureCauseID
	}
	if req.FailureMechanismID != nil {
		record.FailureMechanismID = *req.FailureMechanismID
	}
	if req.Effect != nil {
		record.Effect = *req.Effect
	}
	if req.Mitigation != nil {
		record.Mitigation = *req.Mitigation
	}
	if req.Category != nil {
		record.Category = *req.Category
	}
	if req.Severity != nil {
		record.Severity = req.Severity
	}
	if req.Occurrence != nil {
		record.Occurrence = req.Occurrence
	}
	if req.Detection != nil {
		record.Detection = req.Detection
	}
	if req.Probability != nil {
		record.Probability = req.Probability
	}

	if err := s.rescore(ctx, record); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete 删除FMEA记录
func (s *FMEAService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Recompute 显式重算并保存单条记录的派生字段
func (s *FMEAService) Recompute(ctx context.Context, id string) (*entity.FMEARecord, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.rescore(ctx, record); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// RecomputeAll 全量重算：矩阵配置变更后批量刷新派生字段
func (s *FMEAService) RecomputeAll(ctx context.Context) (int, error) {
	matrix, err := s.matrixSvc.LoadMatrix(ctx)
	if err != nil {
		return 0, err
	}

	records, err := s.repo.FindAllForAggregation(ctx)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range records {
		record := &records[i]
		oldRPN := record.RPN
		oldLevel := record.RiskLevel

		applyScore(record, matrix)

		if record.RiskLevel != oldLevel || !intPtrEqual(record.RPN, oldRPN) {
			if err := s.repo.Update(ctx, record); err != nil {
				return changed, err
			}
			changed++
		}
	}
	return changed, nil
}

// rescore 加载当前矩阵并刷新记录的派生字段
func (s *FMEAService) rescore(ctx context.Context, record *entity.FMEARecord) error {
	matrix, err := s.matrixSvc.LoadMatrix(ctx)
	if err != nil {
		return err
	}
	applyScore(record, matrix)
	return nil
}

// applyScore 将评分结果写回记录。无法评分时RPN置空、
// 等级标记为unscored，绝不保留旧值
func applyScore(record *entity.FMEARecord, m *risk.Matrix) {
	score := risk.ScoreRecord(record, m)
	if !score.Valid {
		record.RPN = nil
		record.RiskLevel = risk.LevelUnscored
		return
	}
	rpn := score.RPN
	record.RPN = &rpn
	record.RiskLevel = score.Level
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
