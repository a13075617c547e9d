package exporter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/MyData-Folk/hotel-rm-app/internal/model"
)

// Exporter 模拟结果 Excel 导出器
type Exporter struct{}

// NewExporter 创建导出器
func NewExporter() *Exporter {
	return &Exporter{}
}

// ExportSimulation 导出模拟结果到 Excel
// 第一张表为逐晚明细，第二张表为参数与汇总
func (e *Exporter) ExportSimulation(result *model.SimulationResult) (*excelize.File, error) {
	f := excelize.NewFile()

	sheetName := "Simulation"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{
		"日期", "展示日期", "库存", "可用性",
		"挂牌价", "渠道折后价", "促销折后价", "佣金", "净价",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	f.SetRowStyle(sheetName, 1, 1, headerStyle)

	for i, night := range result.Nights {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), night.Date)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), night.DateDisplay)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), night.Stock)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), night.Availability)
		setPriceCell(f, sheetName, fmt.Sprintf("E%d", row), night.GrossPrice)
		setPriceCell(f, sheetName, fmt.Sprintf("F%d", row), night.AfterPartner)
		setPriceCell(f, sheetName, fmt.Sprintf("G%d", row), night.AfterPromo)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), night.Commission)
		setPriceCell(f, sheetName, fmt.Sprintf("I%d", row), night.NetPrice)
	}

	// 参数与汇总表
	summarySheet := "Summary"
	f.NewSheet(summarySheet)

	info := result.Info
	summary := result.Summary
	summaryData := [][]interface{}{
		{"项目", "数值"},
		{"房型", info.Room},
		{"请求方案", info.RequestedPlan},
		{"生效方案", info.ResolvedPlan},
		{"渠道", info.Partner},
		{"佣金比例", fmt.Sprintf("%.2f%%", info.CommissionPercent)},
		{"渠道折扣", fmt.Sprintf("%.2f%%", info.PartnerDiscountPercent)},
		{"促销折扣", fmt.Sprintf("%.2f%%", info.PromoDiscountPercent)},
		{"开始日期", info.StartDate},
		{"结束日期", info.EndDate},
		{"晚数", info.Nights},
		{"数据来源", info.Source},
		{"挂牌价小计", summary.SubtotalGross},
		{"渠道折扣合计", summary.TotalPartnerDiscount},
		{"促销折扣合计", summary.TotalPromoDiscount},
		{"折扣合计", summary.TotalDiscount},
		{"佣金合计", summary.TotalCommission},
		{"净价合计", summary.TotalNet},
	}

	for i, row := range summaryData {
		for j, val := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			f.SetCellValue(summarySheet, cell, val)
		}
	}
	f.SetRowStyle(summarySheet, 1, 1, headerStyle)

	// 设置列宽
	f.SetColWidth(sheetName, "A", "B", 14)
	f.SetColWidth(sheetName, "C", "D", 10)
	f.SetColWidth(sheetName, "E", "I", 14)
	f.SetColWidth(summarySheet, "A", "A", 18)
	f.SetColWidth(summarySheet, "B", "B", 24)

	f.SetActiveSheet(0)
	return f, nil
}

// setPriceCell 价格为 nil（当晚无挂牌价）时留空
func setPriceCell(f *excelize.File, sheet, cell string, price *float64) {
	if price == nil {
		return
	}
	f.SetCellValue(sheet, cell, *price)
}
