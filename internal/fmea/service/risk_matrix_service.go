package service

import (
	"context"
	"errors"

	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
	"github.com/numancr7/fmea-sub001/internal/fmea/risk"
)

// ErrCoordOutOfRange 矩阵坐标超出网格范围
var ErrCoordOutOfRange = errors.New("matrix coordinate out of range")

// RiskMatrixService 风险矩阵服务
type RiskMatrixService struct {
	repo *repository.RiskMatrixRepository
}

// NewRiskMatrixService 创建风险矩阵服务
func NewRiskMatrixService(repo *repository.RiskMatrixRepository) *RiskMatrixService {
	return &RiskMatrixService{repo: repo}
}

// CreateMatrixCellRequest 创建矩阵单元请求
type CreateMatrixCellRequest struct {
	Severity    int    `json:"severity" binding:"required,min=1,max=5"`
	Probability int    `json:"probability" binding:"required,min=1,max=5"`
	RiskLevel   string `json:"risk_level" binding:"required,oneof=low medium high critical"`
	Color       string `json:"color"`
	Label       string `json:"label"`
}

// UpdateMatrixCellRequest 更新矩阵单元请求，坐标不可变
type UpdateMatrixCellRequest struct {
	RiskLevel *string `json:"risk_level" binding:"omitempty,oneof=low medium high critical"`
	Color     *string `json:"color"`
	Label     *string `json:"label"`
}

// GridStatus 网格完整性状态
type GridStatus struct {
	Complete bool     `json:"complete"`
	Missing  [][2]int `json:"missing"`
}

// List 全部矩阵单元
func (s *RiskMatrixService) List(ctx context.Context) ([]entity.RiskMatrixCell, error) {
	return s.repo.FindAll(ctx)
}

// LoadMatrix 构建只读查找矩阵，评分与聚合共用
func (s *RiskMatrixService) LoadMatrix(ctx context.Context) (*risk.Matrix, error) {
	cells, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return risk.NewMatrix(cells), nil
}

// Validate 检查网格是否完整覆盖5×5坐标
func (s *RiskMatrixService) Validate(ctx context.Context) (*GridStatus, error) {
	m, err := s.LoadMatrix(ctx)
	if err != nil {
		return nil, err
	}
	missing := m.MissingCells()
	if missing == nil {
		missing = [][2]int{}
	}
	return &GridStatus{
		Complete: len(missing) == 0,
		Missing:  missing,
	}, nil
}

// Create 创建矩阵单元，重复坐标返回 repository.ErrConflict
func (s *RiskMatrixService) Create(ctx context.Context, req *CreateMatrixCellRequest) (*entity.RiskMatrixCell, error) {
	if !coordValid(req.Severity) || !coordValid(req.Probability) {
		return nil, ErrCoordOutOfRange
	}

	cell := &entity.RiskMatrixCell{
		ID:          generateID(),
		Severity:    req.Severity,
		Probability: req.Probability,
		RiskLevel:   req.RiskLevel,
		Color:       req.Color,
		Label:       req.Label,
	}
	if err := s.repo.Create(ctx, cell); err != nil {
		return nil, err
	}
	return cell, nil
}

// Update 更新矩阵单元的等级/颜色/标签
func (s *RiskMatrixService) Update(ctx context.Context, id string, req *UpdateMatrixCellRequest) (*entity.RiskMatrixCell, error) {
	cell, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RiskLevel != nil {
		cell.RiskLevel = *req.RiskLevel
	}
	if req.Color != nil {
		cell.Color = *req.Color
	}
	if req.Label != nil {
		cell.Label = *req.Label
	}

	if err := s.repo.Update(ctx, cell); err != nil {
		return nil, err
	}
	return cell, nil
}

// Delete 删除矩阵单元
func (s *RiskMatrixService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// SeedDefault 空库时写入默认5×5网格，已有数据则跳过
func (s *RiskMatrixService) SeedDefault(ctx context.Context) error {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	cells := make([]entity.RiskMatrixCell, 0, 25)
	for sev := risk.MatrixCoordMin; sev <= risk.MatrixCoordMax; sev++ {
		for prob := risk.MatrixCoordMin; prob <= risk.MatrixCoordMax; prob++ {
			cells = append(cells, entity.RiskMatrixCell{
				ID:          generateID(),
				Severity:    sev,
				Probability: prob,
				RiskLevel:   defaultCellLevel(sev * prob),
				Color:       defaultCellColor(sev * prob),
			})
		}
	}
	return s.repo.CreateBatch(ctx, cells)
}

func coordValid(v int) bool {
	return v >= risk.MatrixCoordMin && v <= risk.MatrixCoordMax
}

func defaultCellLevel(score int) string {
	switch {
	case score >= 20:
		return entity.RiskLevelCritical
	case score >= 12:
		return entity.RiskLevelHigh
	case score >= 6:
		return entity.RiskLevelMedium
	default:
		return entity.RiskLevelLow
	}
}

func defaultCellColor(score int) string {
	switch {
	case score >= 20:
		return "#d32f2f"
	case score >= 12:
		return "#f57c00"
	case score >= 6:
		return "#fbc02d"
	default:
		return "#388e3c"
	}
}
