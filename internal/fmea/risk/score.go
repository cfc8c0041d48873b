package risk

import (
	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
)

// 定量评分输入范围
const (
	RatingMin = 1
	RatingMax = 10
)

// RPN分桶阈值：所有聚合方共用同一套常量，保证分桶一致
const (
	RPNCriticalThreshold = 200
	RPNHighThreshold     = 100
	RPNMediumThreshold   = 50
)

// Score 单条记录的评分结果
// Valid=false 表示"无法评分"，是独立状态，调用方不得当作低风险处理
type Score struct {
	RPN   int
	Level string
	Valid bool
}

// ComputeRPN 定量模式：rpn = severity × occurrence × detection
// 任一输入缺失或超出[1,10]时 Valid=false，不回退为0
func ComputeRPN(severity, occurrence, detection *int) Score {
	if !ratingValid(severity) || !ratingValid(occurrence) || !ratingValid(detection) {
		return Score{}
	}
	rpn := *severity * *occurrence * *detection
	return Score{
		RPN:   rpn,
		Level: LevelForRPN(rpn),
		Valid: true,
	}
}

// LevelForRPN 仅有数值RPN时的固定分桶
func LevelForRPN(rpn int) string {
	switch {
	case rpn >= RPNCriticalThreshold:
		return entity.RiskLevelCritical
	case rpn >= RPNHighThreshold:
		return entity.RiskLevelHigh
	case rpn >= RPNMediumThreshold:
		return entity.RiskLevelMedium
	default:
		return entity.RiskLevelLow
	}
}

// ScoreRecord 按记录携带的输入选择评分模式并重算，不信任记录已存的rpn/risk_level。
// 定量模式（severity/occurrence/detection齐全）为准；
// 仅当缺少detection且携带probability时走矩阵模式。
func ScoreRecord(r *entity.FMEARecord, m *Matrix) Score {
	if r.Severity != nil && r.Occurrence != nil && r.Detection != nil {
		return ComputeRPN(r.Severity, r.Occurrence, r.Detection)
	}
	if m != nil && r.Severity != nil && r.Probability != nil {
		cell, ok := m.Classify(*r.Severity, *r.Probability)
		if !ok {
			// 矩阵未覆盖该坐标：unclassified，绝不就近取格或默认low
			return Score{}
		}
		return Score{
			RPN:   *r.Severity * *r.Probability,
			Level: cell.RiskLevel,
			Valid: true,
		}
	}
	return Score{}
}

func ratingValid(v *int) bool {
	return v != nil && *v >= RatingMin && *v <= RatingMax
}
