package parser

import (
	"fmt"
	"strings"

	"github.com/MyData-Folk/hotel-rm-app/internal/model"
)

// 行描述关键词（表格第三列，不区分大小写）
const (
	descriptorStock = "left for sale" // 库存行
	descriptorPrice = "price"         // 价格行
)

// defaultPlanName 价格行缺失方案名时的占位名
const defaultPlanName = "UNNAMED_PLAN"

// Normalizer 价格表标准化器
// 自上而下扫描数据行，把松散结构的 PMS 导出表转成 model.Calendar
type Normalizer struct{}

// NewNormalizer 创建标准化器
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// scanState 逐行扫描状态
// 房型名具有粘性：第一列为空的后续行仍归属当前房型；
// hasStockContext 标记当前房型是否已出现库存行，价格行必须跟在库存行之后才被接受
type scanState struct {
	currentRoom     string
	hasStockContext bool
}

// enterRoom 切换到新房型，重置库存上下文
func (s *scanState) enterRoom(name string) {
	s.currentRoom = name
	s.hasStockContext = false
}

// Parse 标准化一张原始表格
// grid 第 0 行为表头（日期列在第 3 列之后），之后为数据行。
// 解析层全量容忍：坏单元格降级为 0/nil 并记入告警，任何行列都不会中止整体解析。
func (n *Normalizer) Parse(grid [][]string) (*model.Calendar, []model.ParseWarning) {
	cal := model.NewCalendar()
	warnings := make([]model.ParseWarning, 0)

	if len(grid) == 0 {
		return cal, warnings
	}

	header := grid[0]
	if len(header) > 0 {
		cal.ReportLabel = strings.TrimSpace(header[0])
	}

	dateCols := DetectDateColumns(header)
	for _, dc := range dateCols {
		cal.DatesProcessed = append(cal.DatesProcessed, dc.Date)
	}
	if len(dateCols) == 0 {
		warnings = append(warnings, model.ParseWarning{
			Row:     1,
			Message: "表头未识别出任何日期列",
		})
	}

	state := &scanState{}

	for i := 1; i < len(grid); i++ {
		row := grid[i]
		rowNo := i + 1

		// 前三列全空视为分隔行
		if cellAt(row, 0) == "" && cellAt(row, 1) == "" && cellAt(row, 2) == "" {
			continue
		}

		// 第一列非空则切换当前房型（粘性，跨后续空行保持）
		if name := cellAt(row, 0); name != "" {
			state.enterRoom(name)
		}
		if state.currentRoom == "" {
			// 房型出现之前的游离数据行，丢弃而非报错
			warnings = append(warnings, model.ParseWarning{
				Row:     rowNo,
				Message: "房型名出现前的游离数据行，已跳过",
			})
			continue
		}

		room := cal.EnsureRoom(state.currentRoom)
		descriptor := strings.ToLower(cellAt(row, 2))

		switch {
		case strings.Contains(descriptor, descriptorStock):
			n.parseStockRow(room, row, dateCols)
			state.hasStockContext = true

		case strings.Contains(descriptor, descriptorPrice):
			if !state.hasStockContext {
				// 库存上下文未建立，防止游离的 price 文本被误收
				warnings = append(warnings, model.ParseWarning{
					Row:     rowNo,
					Message: fmt.Sprintf("房型 %q 在库存行之前出现价格行，已跳过", state.currentRoom),
				})
				continue
			}
			n.parsePriceRow(room, row, dateCols)

		default:
			// 其他描述行（小计、说明等）直接忽略
		}
	}

	return cal, warnings
}

// parseStockRow 解析库存行，所有识别出的日期列都会写入（坏单元格记 0）
func (n *Normalizer) parseStockRow(room *model.RoomCalendar, row []string, dateCols []DateColumn) {
	for _, dc := range dateCols {
		room.Stock[dc.Date] = SafeInt(cellAt(row, dc.Index))
	}
}

// parsePriceRow 解析价格行，方案名取第二列，为空时使用占位名
func (n *Normalizer) parsePriceRow(room *model.RoomCalendar, row []string, dateCols []DateColumn) {
	planName := cellAt(row, 1)
	if planName == "" {
		planName = defaultPlanName
	}
	plan := room.EnsurePlan(planName)
	for _, dc := range dateCols {
		plan[dc.Date] = SafePrice(cellAt(row, dc.Index))
	}
}

// cellAt 越界安全地取单元格（去首尾空白）
func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
