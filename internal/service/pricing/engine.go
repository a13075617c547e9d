package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/MyData-Folk/hotel-rm-app/internal/model"
)

// 可用性标签
const (
	availabilityAvailable = "available"
	availabilityFull      = "full"
)

// weekdayAbbrev 渠道端惯用的法语星期缩写（周一起）
var weekdayAbbrev = [7]string{"lun", "mar", "mer", "jeu", "ven", "sam", "dim"}

// Simulate 对给定日历执行价格模拟
// 纯函数：输入视为只读快照，结果全新构造，可安全并发调用。
// 折扣级联顺序固定为 渠道折扣 -> 促销折扣 -> 佣金。
func Simulate(cal *model.Calendar, cfg *model.PartnerConfig, req model.SimulationRequest) (*model.SimulationResult, error) {
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	room := cal.Room(req.Room)
	if room == nil {
		return nil, &RoomNotFoundError{Room: req.Room}
	}

	partner := cfg.Partner(req.PartnerName)
	resolvedPlan, prices, err := ResolvePlan(room, req.Plan, partner)
	if err != nil {
		return nil, err
	}

	commissionRate := 0.0
	partnerDiscountRate := 0.0
	if partner != nil {
		if req.ApplyCommission {
			commissionRate = partner.Commission / 100.0
		}
		if req.ApplyPartnerDiscount {
			partnerDiscountRate = partner.DefaultDiscount.Percentage / 100.0
		}
		// 排除规则优先于折扣开关：生效方案名命中排除子串时强制不打折
		if planExcluded(resolvedPlan, partner.DefaultDiscount.ExcludePlansContaining) {
			partnerDiscountRate = 0.0
		}
	}
	promoDiscountRate := req.PromoDiscountPercent / 100.0

	nights := make([]model.NightResult, 0, int(end.Sub(start).Hours()/24))
	var summary model.SimulationSummary

	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		dateKey := d.Format("2006-01-02")
		gross := prices[dateKey]
		stock := room.Stock[dateKey]

		night := model.NightResult{
			Date:        dateKey,
			DateDisplay: displayDate(d),
			Stock:       stock,
		}
		if stock > 0 {
			night.Availability = availabilityAvailable
		} else {
			night.Availability = availabilityFull
		}

		if gross != nil {
			afterPartner := *gross * (1 - partnerDiscountRate)
			afterPromo := afterPartner * (1 - promoDiscountRate)
			commission := afterPromo * commissionRate
			net := afterPromo - commission

			night.GrossPrice = gross
			night.AfterPartner = &afterPartner
			night.AfterPromo = &afterPromo
			night.Commission = commission
			night.NetPrice = &net

			// 合计累加逐晚差值，保证与明细行严格对账
			summary.SubtotalGross += *gross
			summary.TotalPartnerDiscount += *gross - afterPartner
			summary.TotalPromoDiscount += afterPartner - afterPromo
			summary.TotalCommission += commission
		}

		nights = append(nights, night)
	}

	summary.TotalDiscount = summary.TotalPartnerDiscount + summary.TotalPromoDiscount
	summary.TotalNet = summary.SubtotalGross - summary.TotalDiscount - summary.TotalCommission

	return &model.SimulationResult{
		Info: model.SimulationInfo{
			Room:                   req.Room,
			RequestedPlan:          req.Plan,
			ResolvedPlan:           resolvedPlan,
			Partner:                req.PartnerName,
			CommissionPercent:      commissionRate * 100,
			PartnerDiscountPercent: partnerDiscountRate * 100,
			PromoDiscountPercent:   req.PromoDiscountPercent,
			StartDate:              req.StartDate,
			EndDate:                req.EndDate,
			Nights:                 len(nights),
			Source:                 cal.ReportLabel,
		},
		Nights:  nights,
		Summary: summary,
	}, nil
}

// planExcluded 方案名是否命中任一排除子串（不区分大小写）
func planExcluded(planName string, excludeTokens []string) bool {
	lower := strings.ToLower(planName)
	for _, token := range excludeTokens {
		if token == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(token)) {
			return true
		}
	}
	return false
}

// parseRange 解析并校验日期区间
// 结束日期不含当晚；start 必须严格早于 end
func parseRange(startDate, endDate string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return time.Time{}, time.Time{}, &InvalidDateError{Value: startDate}
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return time.Time{}, time.Time{}, &InvalidDateError{Value: endDate}
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, &InvalidRangeError{Start: startDate, End: endDate}
	}
	return start, end, nil
}

// displayDate 渠道端展示格式：法语星期缩写 + 日/月
func displayDate(d time.Time) string {
	// time.Weekday 周日为 0，展示表周一起
	idx := (int(d.Weekday()) + 6) % 7
	return fmt.Sprintf("%s %s", weekdayAbbrev[idx], d.Format("02/01"))
}
