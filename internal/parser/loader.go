package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// csvSeparator PMS 的 CSV 导出固定使用分号分隔
const csvSeparator = ';'

// LoadGrid 按文件扩展名读取表格为二维单元格网格
// 支持 .xlsx（取第一个工作表）与 .csv（分号分隔）
func LoadGrid(r io.Reader, filename string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return loadExcelGrid(r)
	case ".csv":
		return loadCSVGrid(r)
	default:
		return nil, fmt.Errorf("不支持的文件格式: %s (仅支持 .xlsx / .csv)", filename)
	}
}

// loadExcelGrid 读取 Excel 第一个工作表
func loadExcelGrid(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open excel: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("工作簿没有工作表")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// loadCSVGrid 读取分号分隔的 CSV
// 行长不定、引号不规范都属常态，放宽约束整表读入
func loadCSVGrid(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = csvSeparator
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}
