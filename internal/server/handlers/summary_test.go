package handlers

import (
	"testing"

	"github.com/MyData-Folk/hotel-rm-app/internal/model"
)

// TestParsePartnerConfig 配置上传时整体校验
func TestParsePartnerConfig(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			"合法配置",
			`{"partners":{"Booking":{"commission":15,"codes":["BOOKING"],"defaultDiscount":{"percentage":10,"excludePlansContaining":["NR"]}}}}`,
			false,
		},
		{"非法JSON", `{partners`, true},
		{"缺少partners", `{"displayOrder":[]}`, true},
		{"佣金越界", `{"partners":{"Booking":{"commission":120}}}`, true},
		{"折扣越界", `{"partners":{"Booking":{"commission":10,"defaultDiscount":{"percentage":-5}}}}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parsePartnerConfig([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Error("应返回错误")
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePartnerConfig: %v", err)
			}
			if cfg.Partner("Booking") == nil {
				t.Error("Partners 解析失败")
			}
		})
	}
}

// TestBuildSummary 数据摘要统计
func TestBuildSummary(t *testing.T) {
	cal := model.NewCalendar()
	cal.ReportLabel = "Planning test"
	cal.DatesProcessed = []string{"2025-08-01", "2025-08-02"}

	room := cal.EnsureRoom("Chambre Double")
	plan := room.EnsurePlan("BAR")
	p1, p2 := 100.0, 150.0
	plan["2025-08-01"] = &p1
	plan["2025-08-02"] = &p2
	nr := room.EnsurePlan("NR")
	nr["2025-08-01"] = nil // 无挂牌价不计入统计

	summary := buildSummary(cal)

	if summary.Rooms != 1 || summary.Dates != 2 {
		t.Errorf("summary = %+v", summary)
	}

	rs := summary.ByRoom["Chambre Double"]
	if rs.Plans != 2 || rs.PriceCount != 2 {
		t.Errorf("rs = %+v", rs)
	}
	if rs.MinPrice != 100 || rs.MaxPrice != 150 || rs.AvgPrice != 125 {
		t.Errorf("价格统计 = min %v max %v avg %v", rs.MinPrice, rs.MaxPrice, rs.AvgPrice)
	}
}
