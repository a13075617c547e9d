package model

// SimulationRequest 价格模拟请求
// 日期为 YYYY-MM-DD 文本，结束日期不含当晚
type SimulationRequest struct {
	Room                 string  `json:"room"`
	Plan                 string  `json:"plan"`
	PartnerName          string  `json:"partnerName,omitempty"`
	StartDate            string  `json:"startDate"`
	EndDate              string  `json:"endDate"`
	ApplyCommission      bool    `json:"applyCommission"`
	ApplyPartnerDiscount bool    `json:"applyPartnerDiscount"`
	PromoDiscountPercent float64 `json:"promoDiscountPercent"`
}

// NightResult 单晚计算结果
// 价格字段为 nil 表示该晚无挂牌价，不参与汇总
type NightResult struct {
	Date         string   `json:"date"`
	DateDisplay  string   `json:"dateDisplay"` // 渠道端惯用的展示格式：星期缩写 + 日/月
	Stock        int      `json:"stock"`
	GrossPrice   *float64 `json:"grossPrice"`
	AfterPartner *float64 `json:"priceAfterPartnerDiscount"`
	AfterPromo   *float64 `json:"priceAfterPromo"`
	Commission   float64  `json:"commission"`
	NetPrice     *float64 `json:"netPrice"`
	Availability string   `json:"availability"` // available / full
}

// SimulationSummary 汇总
// 各项合计由逐晚差值累加得出，与明细行严格对账
type SimulationSummary struct {
	SubtotalGross        float64 `json:"subtotalGross"`
	TotalPartnerDiscount float64 `json:"totalPartnerDiscount"`
	TotalPromoDiscount   float64 `json:"totalPromoDiscount"`
	TotalDiscount        float64 `json:"totalDiscount"`
	TotalCommission      float64 `json:"totalCommission"`
	TotalNet             float64 `json:"totalNet"`
}

// SimulationInfo 模拟的生效参数回显
type SimulationInfo struct {
	Room                   string  `json:"room"`
	RequestedPlan          string  `json:"requestedPlan"`
	ResolvedPlan           string  `json:"resolvedPlan"`
	Partner                string  `json:"partner,omitempty"`
	CommissionPercent      float64 `json:"commissionPercent"`
	PartnerDiscountPercent float64 `json:"partnerDiscountPercent"`
	PromoDiscountPercent   float64 `json:"promoDiscountPercent"`
	StartDate              string  `json:"startDate"`
	EndDate                string  `json:"endDate"`
	Nights                 int     `json:"nights"`
	Source                 string  `json:"source,omitempty"`
}

// SimulationResult 完整模拟结果
// 每次调用基于不可变输入全新构造，返回后不再修改
type SimulationResult struct {
	Info    SimulationInfo    `json:"info"`
	Nights  []NightResult     `json:"nights"`
	Summary SimulationSummary `json:"summary"`
}

// AvailabilityResult 可用性查询结果
type AvailabilityResult struct {
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Dates     []string `json:"dates"`
	// Rooms 房型 -> (日期 -> 库存)，缺失组合记 0
	Rooms map[string]map[string]int `json:"rooms"`
	// RoomOrder 输出顺序，跟随日历中的房型顺序
	RoomOrder []string `json:"roomOrder"`
}
