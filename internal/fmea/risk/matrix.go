package risk

import (
	"github.com/numancr7/fmea-sub001/internal/fmea/entity"
)

// 矩阵坐标范围（severity × probability 网格）
const (
	MatrixCoordMin = 1
	MatrixCoordMax = 5
)

// Matrix 风险矩阵查找表，由参考数据构建，只读
type Matrix struct {
	cells map[[2]int]entity.RiskMatrixCell
}

// NewMatrix 从单元格列表构建矩阵；重复坐标以后者为准（库层唯一索引已阻止重复）
func NewMatrix(cells []entity.RiskMatrixCell) *Matrix {
	m := &Matrix{cells: make(map[[2]int]entity.RiskMatrixCell, len(cells))}
	for _, c := range cells {
		m.cells[[2]int{c.Severity, c.Probability}] = c
	}
	return m
}

// Classify 查找坐标对应的单元格。未命中返回 ok=false（unclassified），
// 调用方必须将其作为独立状态处理，不得默认为任何风险等级
func (m *Matrix) Classify(severity, probability int) (entity.RiskMatrixCell, bool) {
	cell, ok := m.cells[[2]int{severity, probability}]
	return cell, ok
}

// MissingCells 返回5×5网格中未配置的坐标对。
// 网格不完整属于配置错误，而非单条记录的错误
func (m *Matrix) MissingCells() [][2]int {
	var missing [][2]int
	for s := MatrixCoordMin; s <= MatrixCoordMax; s++ {
		for p := MatrixCoordMin; p <= MatrixCoordMax; p++ {
			if _, ok := m.cells[[2]int{s, p}]; !ok {
				missing = append(missing, [2]int{s, p})
			}
		}
	}
	return missing
}

// Complete 网格是否完整覆盖
func (m *Matrix) Complete() bool {
	return len(m.MissingCells()) == 0
}
