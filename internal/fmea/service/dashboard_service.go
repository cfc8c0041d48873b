package service

import (
	"context"

	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
	"github.com/numancr7/fmea-sub001/internal/fmea/risk"
)

// DefaultHighRiskTopN 看板高风险榜单默认条数
const DefaultHighRiskTopN = 10

// DashboardService 看板服务
type DashboardService struct {
	fmeaRepo  *repository.FMEARepository
	partRepo  *repository.SparePartRepository
	matrixSvc *RiskMatrixService
}

// NewDashboardService 创建看板服务
func NewDashboardService(fmeaRepo *repository.FMEARepository, partRepo *repository.SparePartRepository, matrixSvc *RiskMatrixService) *DashboardService {
	return &DashboardService{
		fmeaRepo:  fmeaRepo,
		partRepo:  partRepo,
		matrixSvc: matrixSvc,
	}
}

// SummaryResponse 看板汇总响应
type SummaryResponse struct {
	TotalRecords int                   `json:"total_records"`
	ByRiskLevel  map[string]int        `json:"by_risk_level"`
	ByCategory   map[string]int        `json:"by_category"`
	HighRiskTop  []risk.RecordScore    `json:"high_risk_top"`
	SpareParts   risk.SparePartsStatus `json:"spare_parts"`
}

// Summary 生成看板汇总：取当前快照后走纯聚合，同一快照下幂等
func (s *DashboardService) Summary(ctx context.Context, topN int) (*SummaryResponse, error) {
	if topN <= 0 {
		topN = DefaultHighRiskTopN
	}

	matrix, err := s.matrixSvc.LoadMatrix(ctx)
	if err != nil {
		return nil, err
	}

	records, err := s.fmeaRepo.FindAllForAggregation(ctx)
	if err != nil {
		return nil, err
	}

	parts, err := s.partRepo.FindAllForAggregation(ctx)
	if err != nil {
		return nil, err
	}

	summary := risk.Aggregate(records, parts, matrix)

	return &SummaryResponse{
		TotalRecords: summary.TotalRecords,
		ByRiskLevel:  summary.ByRiskLevel,
		ByCategory:   summary.ByCategory,
		HighRiskTop:  summary.HighRiskTopN(topN),
		SpareParts:   summary.SpareParts,
	}, nil
}
