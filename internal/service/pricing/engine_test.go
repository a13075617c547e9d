package pricing

import (
	"errors"
	"testing"

	"github.com/MyData-Folk/hotel-rm-app/internal/model"
)

func floatPtr(v float64) *float64 {
	return &v
}

// createTestCalendar 三晚数据：第二晚无挂牌价，第三晚满房
func createTestCalendar() *model.Calendar {
	cal := model.NewCalendar()
	cal.ReportLabel = "Planning test"
	cal.DatesProcessed = []string{"2025-08-01", "2025-08-02", "2025-08-03"}

	room := cal.EnsureRoom("Chambre Double")
	room.Stock["2025-08-01"] = 3
	room.Stock["2025-08-02"] = 2
	room.Stock["2025-08-03"] = 0

	plan := room.EnsurePlan("BOOKING_BAR_FLEX")
	plan["2025-08-01"] = floatPtr(100)
	plan["2025-08-02"] = nil
	plan["2025-08-03"] = floatPtr(200)

	nr := room.EnsurePlan("DIRECT_NR")
	nr["2025-08-01"] = floatPtr(90)

	return cal
}

func createTestConfig() *model.PartnerConfig {
	return &model.PartnerConfig{
		Partners: map[string]*model.Partner{
			"Booking": {
				Commission: 10,
				Codes:      []string{"BOOKING"},
				DefaultDiscount: model.DefaultDiscount{
					Percentage:             0,
					ExcludePlansContaining: []string{"NR"},
				},
			},
		},
	}
}

// TestSimulateCascade 级联计算基准场景
// gross=100, 渠道折扣 0%, 促销 5%, 佣金 10% -> afterPromo=95, commission=9.5, net=85.5
func TestSimulateCascade(t *testing.T) {
	cal := createTestCalendar()
	cfg := createTestConfig()

	result, err := Simulate(cal, cfg, model.SimulationRequest{
		Room:                 "Chambre Double",
		Plan:                 "BOOKING_BAR_FLEX",
		PartnerName:          "Booking",
		StartDate:            "2025-08-01",
		EndDate:              "2025-08-02",
		ApplyCommission:      true,
		ApplyPartnerDiscount: true,
		PromoDiscountPercent: 5,
	})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	if len(result.Nights) != 1 {
		t.Fatalf("晚数 = %d, want 1", len(result.Nights))
	}

	night := result.Nights[0]
	if !floatEquals(*night.AfterPromo, 95.0) {
		t.Errorf("AfterPromo = %v, want 95", *night.AfterPromo)
	}
	if !floatEquals(night.Commission, 9.5) {
		t.Errorf("Commission = %v, want 9.5", night.Commission)
	}
	if !floatEquals(*night.NetPrice, 85.5) {
		t.Errorf("NetPrice = %v, want 85.5", *night.NetPrice)
	}
	if night.Availability != "available" {
		t.Errorf("Availability = %q", night.Availability)
	}
}

// TestSimulateNightCount 晚数等于区间天数（结束日期不含当晚）
func TestSimulateNightCount(t *testing.T) {
	cal := createTestCalendar()
	cfg := createTestConfig()

	result, err := Simulate(cal, cfg, model.SimulationRequest{
		Room:      "Chambre Double",
		Plan:      "BOOKING_BAR_FLEX",
		StartDate: "2025-08-01",
		EndDate:   "2025-08-04",
	})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(result.Nights) != 3 {
		t.Errorf("晚数 = %d, want 3", len(result.Nights))
	}
	if result.Info.Nights != 3 {
		t.Errorf("Info.Nights = %d, want 3", result.Info.Nights)
	}
}

// TestSimulateNullGross 无挂牌价的晚不参与汇总，字段为空
func TestSimulateNullGross(t *testing.T) {
	cal := createTestCalendar()
	cfg := createTestConfig()

	result, err := Simulate(cal, cfg, model.SimulationRequest{
		Room:                 "Chambre Double",
		Plan:                 "BOOKING_BAR_FLEX",
		PartnerName:          "Booking",
		StartDate:            "2025-08-01",
		EndDate:              "2025-08-04",
		ApplyCommission:      true,
		ApplyPartnerDiscount: true,
	})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	second := result.Nights[1]
	if second.GrossPrice != nil || second.NetPrice != nil || second.Commission != 0 {
		t.Errorf("无挂牌价的晚应为空: %+v", second)
	}

	// 汇总只覆盖第 1、3 晚: 100 + 200
	if !floatEquals(result.Summary.SubtotalGross, 300.0) {
		t.Errorf("SubtotalGross = %v, want 300", result.Summary.SubtotalGross)
	}

	// 第三晚满房
	if result.Nights[2].Availability != "full" {
		t.Errorf("Availability = %q, want full", result.Nights[2].Availability)
	}
}

// TestSimulateReconciliation 汇总各项与明细严格对账
func TestSimulateReconciliation(t *testing.T) {
	cal := createTestCalendar()
	cfg := createTestConfig()
	cfg.Partners["Booking"].DefaultDiscount.Percentage = 12

	result, err := Simulate(cal, cfg, model.SimulationRequest{
		Room:                 "Chambre Double",
		Plan:                 "BOOKING_BAR_FLEX",
		PartnerName:          "Booking",
		StartDate:            "2025-08-01",
		EndDate:              "2025-08-04",
		ApplyCommission:      true,
		ApplyPartnerDiscount: true,
		PromoDiscountPercent: 7,
	})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	s := result.Summary
	if !floatEquals(s.TotalNet, s.SubtotalGross-s.TotalDiscount-s.TotalCommission) {
		t.Errorf("对账失败: net=%v gross=%v discount=%v commission=%v",
			s.TotalNet, s.SubtotalGross, s.TotalDiscount, s.TotalCommission)
	}
	if !floatEquals(s.TotalDiscount, s.TotalPartnerDiscount+s.TotalPromoDiscount) {
		t.Errorf("折扣合计不一致: %+v", s)
	}

	// 明细逐晚复核
	var gross, commission, net float64
	for _, n := range result.Nights {
		if n.GrossPrice == nil {
			continue
		}
		gross += *n.GrossPrice
		commission += n.Commission
		net += *n.NetPrice
	}
	if !floatEquals(gross, s.SubtotalGross) || !floatEquals(commission, s.TotalCommission) || !floatEquals(net, s.TotalNet) {
		t.Errorf("明细与汇总不符: gross=%v/%v commission=%v/%v net=%v/%v",
			gross, s.SubtotalGross, commission, s.TotalCommission, net, s.TotalNet)
	}
}

// TestSimulateExclusionWins 排除规则优先于折扣开关
func TestSimulateExclusionWins(t *testing.T) {
	cal := createTestCalendar()
	cfg := createTestConfig()
	cfg.Partners["Booking"].DefaultDiscount.Percentage = 20
	cfg.Partners["Booking"].Codes = []string{"NR"}

	// 请求 DIRECT_NR，方案名命中排除子串 NR
	result, err := Simulate(cal, cfg, model.SimulationRequest{
		Room:                 "Chambre Double",
		Plan:                 "DIRECT_NR",
		PartnerName:          "Booking",
		StartDate:            "2025-08-01",
		EndDate:              "2025-08-02",
		ApplyCommission:      false,
		ApplyPartnerDiscount: true,
	})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	if result.Info.PartnerDiscountPercent != 0 {
		t.Errorf("排除方案的折扣应被强制为 0: %v", result.Info.PartnerDiscountPercent)
	}
	night := result.Nights[0]
	if !floatEquals(*night.AfterPartner, 90.0) {
		t.Errorf("AfterPartner = %v, want 90 (不打折)", *night.AfterPartner)
	}
}

// TestSimulatePartnerFallbackResolution 渠道代码兜底的方案名回显
func TestSimulatePartnerFallbackResolution(t *testing.T) {
	cal := createTestCalendar()
	cfg := createTestConfig()

	result, err := Simulate(cal, cfg, model.SimulationRequest{
		Room:        "Chambre Double",
		Plan:        "BAR",
		PartnerName: "Booking",
		StartDate:   "2025-08-01",
		EndDate:     "2025-08-02",
	})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if result.Info.RequestedPlan != "BAR" || result.Info.ResolvedPlan != "BOOKING_BAR_FLEX" {
		t.Errorf("Info = %+v", result.Info)
	}
}

// TestSimulateErrors 查询层错误
func TestSimulateErrors(t *testing.T) {
	cal := createTestCalendar()
	cfg := createTestConfig()

	tests := []struct {
		name    string
		req     model.SimulationRequest
		errType interface{}
	}{
		{
			"房型不存在",
			model.SimulationRequest{Room: "Penthouse", Plan: "BAR", StartDate: "2025-08-01", EndDate: "2025-08-02"},
			&RoomNotFoundError{},
		},
		{
			"方案不存在",
			model.SimulationRequest{Room: "Chambre Double", Plan: "MISSING", StartDate: "2025-08-01", EndDate: "2025-08-02"},
			&PlanNotFoundError{},
		},
		{
			"起止相同",
			model.SimulationRequest{Room: "Chambre Double", Plan: "BAR", StartDate: "2025-08-01", EndDate: "2025-08-01"},
			&InvalidRangeError{},
		},
		{
			"起晚于止",
			model.SimulationRequest{Room: "Chambre Double", Plan: "BAR", StartDate: "2025-08-03", EndDate: "2025-08-01"},
			&InvalidRangeError{},
		},
		{
			"日期格式非法",
			model.SimulationRequest{Room: "Chambre Double", Plan: "BAR", StartDate: "01/08/2025", EndDate: "2025-08-02"},
			&InvalidDateError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Simulate(cal, cfg, tt.req)
			if err == nil {
				t.Fatal("应返回错误")
			}
			matched := false
			switch tt.errType.(type) {
			case *RoomNotFoundError:
				var e *RoomNotFoundError
				matched = errors.As(err, &e)
			case *PlanNotFoundError:
				var e *PlanNotFoundError
				matched = errors.As(err, &e)
			case *InvalidRangeError:
				var e *InvalidRangeError
				matched = errors.As(err, &e)
			case *InvalidDateError:
				var e *InvalidDateError
				matched = errors.As(err, &e)
			}
			if !matched {
				t.Errorf("err = %T (%v), want %T", err, err, tt.errType)
			}
		})
	}
}

// TestSimulateDeterministic 相同输入应产出相同结果
func TestSimulateDeterministic(t *testing.T) {
	cal := createTestCalendar()
	cfg := createTestConfig()
	req := model.SimulationRequest{
		Room:                 "Chambre Double",
		Plan:                 "BOOKING_BAR_FLEX",
		PartnerName:          "Booking",
		StartDate:            "2025-08-01",
		EndDate:              "2025-08-04",
		ApplyCommission:      true,
		ApplyPartnerDiscount: true,
		PromoDiscountPercent: 5,
	}

	r1, err1 := Simulate(cal, cfg, req)
	r2, err2 := Simulate(cal, cfg, req)
	if err1 != nil || err2 != nil {
		t.Fatalf("Simulate: %v / %v", err1, err2)
	}
	if r1.Summary != r2.Summary {
		t.Errorf("两次结果不一致: %+v vs %+v", r1.Summary, r2.Summary)
	}
}

// TestDisplayDate 法语星期缩写展示
func TestDisplayDate(t *testing.T) {
	// 2025-08-01 是周五
	result, err := Simulate(createTestCalendar(), createTestConfig(), model.SimulationRequest{
		Room:      "Chambre Double",
		Plan:      "BOOKING_BAR_FLEX",
		StartDate: "2025-08-01",
		EndDate:   "2025-08-02",
	})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if got := result.Nights[0].DateDisplay; got != "ven 01/08" {
		t.Errorf("DateDisplay = %q, want \"ven 01/08\"", got)
	}
}

// floatEquals 浮点数近似相等判断
func floatEquals(a, b float64) bool {
	const epsilon = 1e-9
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff < epsilon
}
