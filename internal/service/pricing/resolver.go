package pricing

import (
	"strings"

	"github.com/MyData-Folk/hotel-rm-app/internal/model"
)

// ResolvePlan 解析生效的价格方案
// 先按名称精确匹配；未命中且渠道带匹配代码时，按方案首次出现顺序
// 扫描，返回第一个名称包含任一渠道代码（不区分大小写）的方案。
// 多个候选不做评分，顺序先到先得。
func ResolvePlan(room *model.RoomCalendar, planName string, partner *model.Partner) (string, map[string]*float64, error) {
	if plan, ok := room.Plans[planName]; ok {
		return planName, plan, nil
	}

	if partner != nil && len(partner.Codes) > 0 {
		for _, name := range room.PlanOrder {
			if planNameMatchesCodes(name, partner.Codes) {
				return name, room.Plans[name], nil
			}
		}
	}

	available := make([]string, 0, maxPlanCandidates)
	for _, name := range room.PlanOrder {
		if len(available) >= maxPlanCandidates {
			break
		}
		available = append(available, name)
	}
	return "", nil, &PlanNotFoundError{Plan: planName, Available: available}
}

// planNameMatchesCodes 方案名是否包含任一渠道代码（不区分大小写）
func planNameMatchesCodes(planName string, codes []string) bool {
	lower := strings.ToLower(planName)
	for _, code := range codes {
		if code == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(code)) {
			return true
		}
	}
	return false
}

// PlansForPartner 列出房型下与渠道代码兼容的方案
// 渠道为空或没有任何方案命中时，回退为全部方案
func PlansForPartner(room *model.RoomCalendar, partner *model.Partner) []string {
	if partner == nil || len(partner.Codes) == 0 {
		return append([]string(nil), room.PlanOrder...)
	}

	compatible := make([]string, 0, len(room.PlanOrder))
	for _, name := range room.PlanOrder {
		if planNameMatchesCodes(name, partner.Codes) {
			compatible = append(compatible, name)
		}
	}
	if len(compatible) == 0 {
		return append([]string(nil), room.PlanOrder...)
	}
	return compatible
}
