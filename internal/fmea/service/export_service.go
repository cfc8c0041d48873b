package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/numancr7/fmea-sub001/internal/fmea/repository"
	"github.com/numancr7/fmea-sub001/internal/fmea/risk"
)

// exportMaxRows 单次导出上限
const exportMaxRows = 10000

// ExportService FMEA导出服务
type ExportService struct {
	fmeaRepo  *repository.FMEARepository
	matrixSvc *RiskMatrixService
}

// NewExportService 创建导出服务
func NewExportService(fmeaRepo *repository.FMEARepository, matrixSvc *RiskMatrixService) *ExportService {
	return &ExportService{fmeaRepo: fmeaRepo, matrixSvc: matrixSvc}
}

var fmeaExportHeaders = []string{
	"序号", "设备", "部件", "失效模式", "失效影响", "缓解措施", "分类",
	"严重度", "发生度", "探测度", "概率", "RPN", "风险等级", "更新时间",
}

// ExportFMEA 导出FMEA记录为xlsx。导出前逐条重算评分，
// 与看板口径一致，不直接信任落库的派生字段
func (s *ExportService) ExportFMEA(ctx context.Context, filters map[string]string) (*excelize.File, string, error) {
	matrix, err := s.matrixSvc.LoadMatrix(ctx)
	if err != nil {
		return nil, "", err
	}

	records, _, err := s.fmeaRepo.FindAll(ctx, 1, exportMaxRows, filters)
	if err != nil {
		return nil, "", fmt.Errorf("list records: %w", err)
	}

	f := excelize.NewFile()
	sheet := "FMEA"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range fmeaExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx := range records {
		r := &records[rowIdx]
		row := rowIdx + 2

		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rowIdx+1)
		if r.Equipment != nil {
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), r.Equipment.Name)
		}
		if r.Component != nil {
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), r.Component.Name)
		}
		if r.FailureMode != nil {
			f.SetCellValue(sheet, fmt.Sprintf("D%d", row), r.FailureMode.Name)
		}
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), r.Effect)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), r.Mitigation)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), r.Category)

		if r.Severity != nil {
			f.SetCellValue(sheet, fmt.Sprintf("H%d", row), *r.Severity)
		}
		if r.Occurrence != nil {
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), *r.Occurrence)
		}
		if r.Detection != nil {
			f.SetCellValue(sheet, fmt.Sprintf("J%d", row), *r.Detection)
		}
		if r.Probability != nil {
			f.SetCellValue(sheet, fmt.Sprintf("K%d", row), *r.Probability)
		}

		score := risk.ScoreRecord(r, matrix)
		if score.Valid {
			f.SetCellValue(sheet, fmt.Sprintf("L%d", row), score.RPN)
			f.SetCellValue(sheet, fmt.Sprintf("M%d", row), score.Level)
		} else {
			f.SetCellValue(sheet, fmt.Sprintf("M%d", row), risk.LevelUnscored)
		}

		f.SetCellValue(sheet, fmt.Sprintf("N%d", row), r.UpdatedAt.Format("2006-01-02 15:04"))
	}

	filename := fmt.Sprintf("fmea_%s.xlsx", time.Now().Format("20060102_150405"))
	return f, filename, nil
}
