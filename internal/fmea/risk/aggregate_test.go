package risk

import (
	"reflect"
	"testing"
	"time"

	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
)

func quantRecord(id string, s, o, d int, updatedAt time.Time) entity.FMEARecord {
	return entity.FMEARecord{
		ID:          id,
		EquipmentID: "eq-001",
		Severity:    intPtr(s),
		Occurrence:  intPtr(o),
		Detection:   intPtr(d),
		UpdatedAt:   updatedAt,
	}
}

func TestAggregateCountsAndUnscored(t *testing.T) {
	base := time.Now()
	records := []entity.FMEARecord{
		quantRecord("r1", 2, 2, 2, base), // RPN 8 → low
		quantRecord("r2", 5, 5, 5, base), // RPN 125 → high
		{ID: "r3", EquipmentID: "eq-001", Category: "mechanical", UpdatedAt: base}, // 无输入 → unscored
	}
	records[0].Category = "mechanical"
	records[1].Category = "electrical"

	summary := Aggregate(records, nil, NewMatrix(nil))

	if summary.TotalRecords != 3 {
		t.Errorf("Expected 3 total, got %d", summary.TotalRecords)
	}
	if summary.ByRiskLevel[entity.RiskLevelLow] != 1 {
		t.Errorf("Expected 1 low, got %d", summary.ByRiskLevel[entity.RiskLevelLow])
	}
	if summary.ByRiskLevel[entity.RiskLevelHigh] != 1 {
		t.Errorf("Expected 1 high, got %d", summary.ByRiskLevel[entity.RiskLevelHigh])
	}
	if summary.ByRiskLevel[LevelUnscored] != 1 {
		t.Errorf("Unscorable record must count as unscored, got %d", summary.ByRiskLevel[LevelUnscored])
	}
	if summary.ByCategory["mechanical"] != 2 {
		t.Errorf("Expected 2 mechanical, got %d", summary.ByCategory["mechanical"])
	}
}

func TestAggregateIdempotent(t *testing.T) {
	base := time.Now()
	records := []entity.FMEARecord{
		quantRecord("r1", 5, 5, 5, base),
		quantRecord("r2", 3, 3, 3, base),
	}
	parts := []entity.SparePart{
		{ID: "p1", Status: entity.SparePartStatusApproved, CurrentStock: 1, MinStock: 5},
	}

	first := Aggregate(records, parts, NewMatrix(nil))
	second := Aggregate(records, parts, NewMatrix(nil))

	if !reflect.DeepEqual(first, second) {
		t.Error("Same snapshot must produce identical summaries")
	}
	// 聚合不得修改输入记录
	if records[0].RPN != nil || records[0].RiskLevel != "" {
		t.Error("Aggregate must not mutate input records")
	}
}

func TestHighRiskOrderingAndTieBreak(t *testing.T) {
	t1 := time.UnixMilli(1000)
	t2 := time.UnixMilli(2000)
	records := []entity.FMEARecord{
		quantRecord("rec-a", 5, 5, 2, t1), // RPN 50 → medium，不进榜
		quantRecord("rec-b", 4, 5, 4, t1), // RPN 80... 实际 4*5*4=80 → medium，不进榜
		quantRecord("rec-c", 5, 5, 5, t1), // RPN 125 → high
		quantRecord("rec-d", 5, 5, 5, t2), // RPN 125 → high，更新更晚
		quantRecord("rec-e", 10, 5, 5, t1), // RPN 250 → critical
	}

	summary := Aggregate(records, nil, NewMatrix(nil))
	top := summary.HighRiskTopN(10)

	if len(top) != 3 {
		t.Fatalf("Expected 3 high-risk entries, got %d", len(top))
	}
	// RPN降序；同RPN按更新时间降序
	if top[0].RecordID != "rec-e" {
		t.Errorf("Expected rec-e first, got %s", top[0].RecordID)
	}
	if top[1].RecordID != "rec-d" {
		t.Errorf("Tie must break by newer update first, got %s", top[1].RecordID)
	}
	if top[2].RecordID != "rec-c" {
		t.Errorf("Expected rec-c last, got %s", top[2].RecordID)
	}
}

func TestHighRiskTieBreakByID(t *testing.T) {
	ts := time.UnixMilli(5000)
	records := []entity.FMEARecord{
		quantRecord("rec-b", 5, 5, 5, ts),
		quantRecord("rec-a", 5, 5, 5, ts),
	}

	summary := Aggregate(records, nil, NewMatrix(nil))
	if len(summary.HighRisk) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(summary.HighRisk))
	}
	if summary.HighRisk[0].RecordID != "rec-a" {
		t.Errorf("Full tie must break by record ID ascending, got %s", summary.HighRisk[0].RecordID)
	}
}

func TestHighRiskTopNTruncation(t *testing.T) {
	base := time.Now()
	records := []entity.FMEARecord{
		quantRecord("r1", 5, 5, 5, base),
		quantRecord("r2", 6, 6, 6, base),
	}
	summary := Aggregate(records, nil, NewMatrix(nil))

	if got := summary.HighRiskTopN(1); len(got) != 1 {
		t.Errorf("Expected 1 entry, got %d", len(got))
	}
	if got := summary.HighRiskTopN(100); len(got) != 2 {
		t.Errorf("TopN beyond length must return all, got %d", len(got))
	}
	if got := summary.HighRiskTopN(-1); len(got) != 0 {
		t.Errorf("Negative n must return empty, got %d", len(got))
	}
}

func TestAggregateSparePartsStatus(t *testing.T) {
	parts := []entity.SparePart{
		{ID: "p1", Status: entity.SparePartStatusApproved, CurrentStock: 10, MinStock: 5},
		{ID: "p2", Status: entity.SparePartStatusApproved, CurrentStock: 2, MinStock: 5},
		{ID: "p3", Status: entity.SparePartStatusPending, CurrentStock: 5, MinStock: 5},
	}

	summary := Aggregate(nil, parts, NewMatrix(nil))

	if summary.SpareParts.ByStatus[entity.SparePartStatusApproved] != 2 {
		t.Errorf("Expected 2 approved, got %d", summary.SpareParts.ByStatus[entity.SparePartStatusApproved])
	}
	if len(summary.SpareParts.LowStock) != 1 || summary.SpareParts.LowStock[0].ID != "p2" {
		t.Errorf("Expected only p2 in low stock, got %+v", summary.SpareParts.LowStock)
	}
	// 刚好等于最低库存不算低库存
	for _, p := range summary.SpareParts.LowStock {
		if p.ID == "p3" {
			t.Error("Stock equal to min must not be low stock")
		}
	}
}

func TestAggregateMatrixCritical(t *testing.T) {
	// (5,5) 走矩阵模式进critical计数
	records := []entity.FMEARecord{
		{ID: "m1", EquipmentID: "eq-001", Severity: intPtr(5), Probability: intPtr(5), UpdatedAt: time.Now()},
	}

	summary := Aggregate(records, nil, fullTestMatrix())
	if summary.ByRiskLevel[entity.RiskLevelCritical] != 1 {
		t.Errorf("Expected 1 critical via matrix, got %d", summary.ByRiskLevel[entity.RiskLevelCritical])
	}
}

func TestAverageRPN(t *testing.T) {
	base := time.Now()
	records := []entity.FMEARecord{
		quantRecord("r1", 5, 5, 5, base), // 125
		quantRecord("r2", 2, 5, 5, base), // 50
		{ID: "r3", EquipmentID: "eq-001", UpdatedAt: base},   // unscored，不计入
		quantRecord("r4", 9, 9, 9, base),                     // 其他设备
	}
	records[3].EquipmentID = "eq-002"

	avg, ok := AverageRPN(records, "eq-001", NewMatrix(nil))
	if !ok {
		t.Fatal("Expected data for eq-001")
	}
	if avg != 88 {
		t.Errorf("Expected rounded average 88, got %d", avg)
	}
}

func TestAverageRPNNoData(t *testing.T) {
	records := []entity.FMEARecord{
		{ID: "r1", EquipmentID: "eq-001", UpdatedAt: time.Now()},
	}

	if _, ok := AverageRPN(records, "eq-001", NewMatrix(nil)); ok {
		t.Error("Equipment with only unscorable records must report no data")
	}
	if _, ok := AverageRPN(nil, "eq-404", NewMatrix(nil)); ok {
		t.Error("Unknown equipment must report no data")
	}
}
