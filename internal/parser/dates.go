package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// reservedColumns 表头前三列固定为 房型名/方案名/行描述，不参与日期识别
const reservedColumns = 3

// excelEpoch Excel 序列日期纪元：序列 1 对应 1899-12-31
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// DateColumn 识别出的日期列
type DateColumn struct {
	Index int    // 列下标（0 起）
	Date  string // ISO 格式 YYYY-MM-DD
}

// nativeLayouts 单元格已是规范日期文本时的候选格式
// 包含 excelize 对日期单元格的常见默认渲染格式
var nativeLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01-02-06",
	"1-2-06",
}

// dayFirstLayouts 兜底的日优先格式
var dayFirstLayouts = []string{
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2.1.2006",
	"02 Jan 2006",
	"2 Jan 2006",
}

// DetectDateColumns 从表头行识别日期列
// 按优先级尝试四种来源格式：规范日期文本、DD/MM/YY(YY)、Excel 序列数、日优先兜底解析。
// 仅保留年份以 20 开头的结果，识别失败的列静默跳过（表头常混有说明性列）。
func DetectDateColumns(header []string) []DateColumn {
	cols := make([]DateColumn, 0, len(header))
	for j, cell := range header {
		if j < reservedColumns {
			continue
		}
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		iso, ok := normalizeDateCell(cell)
		if !ok {
			continue
		}
		// 防止杂散数字被误读成远古/未来日期
		if !strings.HasPrefix(iso, "20") {
			continue
		}
		cols = append(cols, DateColumn{Index: j, Date: iso})
	}
	return cols
}

// normalizeDateCell 将单个表头单元格规范化为 ISO 日期
func normalizeDateCell(cell string) (string, bool) {
	// (1) 规范日期文本
	for _, layout := range nativeLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	// (2) 斜杠分隔的 DD/MM/YY 或 DD/MM/YYYY，两位年份视为 2000 年代
	if strings.Contains(cell, "/") {
		if iso, ok := parseSlashDate(cell); ok {
			return iso, true
		}
	}

	// (3) 数字视为 Excel 序列日期
	if f, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", "."), 64); err == nil {
		return SerialToISO(f), true
	}

	// (4) 日优先兜底
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.Format("2006-01-02"), true
		}
	}

	return "", false
}

// parseSlashDate 解析 DD/MM/YY 或 DD/MM/YYYY
func parseSlashDate(cell string) (string, bool) {
	parts := strings.Split(cell, "/")
	if len(parts) != 3 {
		return "", false
	}
	day := strings.TrimSpace(parts[0])
	month := strings.TrimSpace(parts[1])
	year := strings.TrimSpace(parts[2])

	if len(year) == 2 {
		year = "20" + year
	}
	if len(day) == 1 {
		day = "0" + day
	}
	if len(month) == 1 {
		month = "0" + month
	}

	iso := fmt.Sprintf("%s-%s-%s", year, month, day)
	// 校验是真实日期（如 31/02 应落入兜底并被丢弃）
	if _, err := time.Parse("2006-01-02", iso); err != nil {
		return "", false
	}
	return iso, true
}

// SerialToISO 将 Excel 序列日期转为 ISO 字符串
// 纪元为 1899-12-30（序列 1 = 1899-12-31），小数部分（时刻）舍去
func SerialToISO(serial float64) string {
	return excelEpoch.AddDate(0, 0, int(serial)).Format("2006-01-02")
}
