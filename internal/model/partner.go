package model

import (
	"fmt"
	"strings"
)

// PartnerConfig 酒店的合作渠道配置
// 上传时整体校验一次，之后作为只读快照参与计算
type PartnerConfig struct {
	Partners     map[string]*Partner `json:"partners"`
	DisplayOrder []string            `json:"displayOrder,omitempty"`
}

// Partner 合作渠道：佣金比例、方案匹配代码与默认折扣规则
type Partner struct {
	// Commission 佣金百分比，0-100
	Commission float64 `json:"commission"`
	// Codes 方案名兜底匹配用的子串列表，按声明顺序尝试
	Codes []string `json:"codes"`
	// DefaultDiscount 渠道默认折扣规则
	DefaultDiscount DefaultDiscount `json:"defaultDiscount"`
}

// DefaultDiscount 渠道默认折扣
type DefaultDiscount struct {
	// Percentage 折扣百分比，0-100
	Percentage float64 `json:"percentage"`
	// ExcludePlansContaining 方案名包含任一子串时不参与折扣
	ExcludePlansContaining []string `json:"excludePlansContaining"`
}

// Partner 按名称获取渠道，不存在时返回 nil
func (c *PartnerConfig) Partner(name string) *Partner {
	if c == nil || c.Partners == nil || name == "" {
		return nil
	}
	return c.Partners[name]
}

// Validate 校验配置合法性
// 百分比字段必须落在 0-100，渠道名不可为空白
func (c *PartnerConfig) Validate() error {
	if c == nil {
		return fmt.Errorf("配置为空")
	}
	for name, p := range c.Partners {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("渠道名不能为空")
		}
		if p == nil {
			return fmt.Errorf("渠道 %q 配置为空", name)
		}
		if p.Commission < 0 || p.Commission > 100 {
			return fmt.Errorf("渠道 %q 佣金比例非法: %v (应在 0-100)", name, p.Commission)
		}
		if pct := p.DefaultDiscount.Percentage; pct < 0 || pct > 100 {
			return fmt.Errorf("渠道 %q 折扣比例非法: %v (应在 0-100)", name, pct)
		}
	}
	return nil
}
