package risk

import (
	"math"
	"sort"

	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
)

// 无有效评分时 by_risk_level 中的独立计数键
const LevelUnscored = "unscored"

// RecordScore 进入高风险榜单的记录及其重算评分
type RecordScore struct {
	RecordID    string `json:"record_id"`
	EquipmentID string `json:"equipment_id"`
	Category    string `json:"category"`
	RPN         int    `json:"rpn"`
	RiskLevel   string `json:"risk_level"`
	UpdatedAt   int64  `json:"updated_at"`
}

// SparePartsStatus 备件状态汇总：按状态计数 + 低库存明细列表
type SparePartsStatus struct {
	ByStatus map[string]int     `json:"by_status"`
	LowStock []entity.SparePart `json:"low_stock"`
}

// Summary 看板汇总，对同一输入快照幂等
type Summary struct {
	TotalRecords int              `json:"total_records"`
	ByRiskLevel  map[string]int   `json:"by_risk_level"`
	ByCategory   map[string]int   `json:"by_category"`
	HighRisk     []RecordScore    `json:"high_risk"`
	SpareParts   SparePartsStatus `json:"spare_parts"`
}

// Aggregate 汇总分析记录和备件。只读：不修改输入记录，不落库。
// 无法评分的记录计入 unscored，绝不并入 low 或丢弃
func Aggregate(records []entity.FMEARecord, parts []entity.SparePart, m *Matrix) Summary {
	summary := Summary{
		TotalRecords: len(records),
		ByRiskLevel:  make(map[string]int),
		ByCategory:   make(map[string]int),
		SpareParts: SparePartsStatus{
			ByStatus: make(map[string]int),
			LowStock: []entity.SparePart{},
		},
		HighRisk: []RecordScore{},
	}

	for i := range records {
		r := &records[i]
		if r.Category != "" {
			summary.ByCategory[r.Category]++
		}

		score := ScoreRecord(r, m)
		if !score.Valid {
			summary.ByRiskLevel[LevelUnscored]++
			continue
		}
		summary.ByRiskLevel[score.Level]++

		if score.Level == entity.RiskLevelHigh || score.Level == entity.RiskLevelCritical {
			summary.HighRisk = append(summary.HighRisk, RecordScore{
				RecordID:    r.ID,
				EquipmentID: r.EquipmentID,
				Category:    r.Category,
				RPN:         score.RPN,
				RiskLevel:   score.Level,
				UpdatedAt:   r.UpdatedAt.UnixMilli(),
			})
		}
	}

	// 全序排序：rpn降序 → 更新时间降序 → ID升序，保证同输入同输出
	sort.Slice(summary.HighRisk, func(i, j int) bool {
		a, b := summary.HighRisk[i], summary.HighRisk[j]
		if a.RPN != b.RPN {
			return a.RPN > b.RPN
		}
		if a.UpdatedAt != b.UpdatedAt {
			return a.UpdatedAt > b.UpdatedAt
		}
		return a.RecordID < b.RecordID
	})

	for _, p := range parts {
		summary.SpareParts.ByStatus[p.Status]++
		if p.LowStock() {
			summary.SpareParts.LowStock = append(summary.SpareParts.LowStock, p)
		}
	}

	return summary
}

// HighRiskTopN 截断高风险榜单前n条
func (s Summary) HighRiskTopN(n int) []RecordScore {
	if n < 0 {
		n = 0
	}
	if n > len(s.HighRisk) {
		n = len(s.HighRisk)
	}
	return s.HighRisk[:n]
}

// AverageRPN 某设备所有可评分记录的RPN算术平均值，四舍五入。
// ok=false 表示该设备没有可评分记录（"无数据"，而非0风险）
func AverageRPN(records []entity.FMEARecord, equipmentID string, m *Matrix) (int, bool) {
	var sum, count int
	for i := range records {
		r := &records[i]
		if r.EquipmentID != equipmentID {
			continue
		}
		score := ScoreRecord(r, m)
		if !score.Valid {
			continue
		}
		sum += score.RPN
		count++
	}
	if count == 0 {
		return 0, false
	}
	return int(math.Round(float64(sum) / float64(count))), true
}
