package entity

import "time"

// RiskMatrixCell 风险矩阵单元格：(severity, probability) → 风险等级
// 同一坐标对最多一个单元格，由唯一索引保证
type RiskMatrixCell struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	Severity    int       `json:"severity" gorm:"type:smallint;not null;uniqueIndex:idx_matrix_coord"`
	Probability int       `json:"probability" gorm:"type:smallint;not null;uniqueIndex:idx_matrix_coord"`
	RiskLevel   string    `json:"risk_level" gorm:"size:16;not null"`
	Color       string    `json:"color" gorm:"size:16"`
	Label       string    `json:"label" gorm:"size:64"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (RiskMatrixCell) TableName() string {
	return "risk_matrix_cells"
}
