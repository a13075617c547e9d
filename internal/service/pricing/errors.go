package pricing

import "fmt"

// maxPlanCandidates PlanNotFoundError 中最多携带的候选方案数
const maxPlanCandidates = 10

// RoomNotFoundError 请求的房型不在日历中
type RoomNotFoundError struct {
	Room string
}

func (e *RoomNotFoundError) Error() string {
	return fmt.Sprintf("房型 %q 不存在", e.Room)
}

// PlanNotFoundError 方案匹配失败（精确与渠道代码兜底均未命中）
// Available 携带至多 10 个可用方案名，便于排查
type PlanNotFoundError struct {
	Plan      string
	Available []string
}

func (e *PlanNotFoundError) Error() string {
	return fmt.Sprintf("价格方案 %q 不存在，可用方案: %v", e.Plan, e.Available)
}

// InvalidRangeError 日期区间非法（开始日期必须早于结束日期）
type InvalidRangeError struct {
	Start string
	End   string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("日期区间非法: %s 必须早于 %s", e.Start, e.End)
}

// InvalidDateError 日期无法按 YYYY-MM-DD 解析
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("日期格式非法: %q (应为 YYYY-MM-DD)", e.Value)
}
