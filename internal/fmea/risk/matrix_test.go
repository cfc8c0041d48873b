package risk

import (
	"testing"

	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
)

func TestMatrixClassify(t *testing.T) {
	m := NewMatrix([]entity.RiskMatrixCell{
		{Severity: 5, Probability: 5, RiskLevel: entity.RiskLevelCritical},
		{Severity: 1, Probability: 1, RiskLevel: entity.RiskLevelLow},
	})

	cell, ok := m.Classify(5, 5)
	if !ok {
		t.Fatal("Expected hit for (5,5)")
	}
	if cell.RiskLevel != entity.RiskLevelCritical {
		t.Errorf("Expected critical, got %s", cell.RiskLevel)
	}

	if _, ok := m.Classify(3, 3); ok {
		t.Error("Expected miss for unconfigured (3,3)")
	}
}

func TestMatrixMissingCells(t *testing.T) {
	m := NewMatrix([]entity.RiskMatrixCell{
		{Severity: 1, Probability: 1, RiskLevel: entity.RiskLevelLow},
	})

	missing := m.MissingCells()
	if len(missing) != 24 {
		t.Errorf("Expected 24 missing cells, got %d", len(missing))
	}
	if m.Complete() {
		t.Error("Partial grid must not be complete")
	}
}

func TestMatrixComplete(t *testing.T) {
	if !fullTestMatrix().Complete() {
		t.Error("Full 5x5 grid must be complete")
	}
}
