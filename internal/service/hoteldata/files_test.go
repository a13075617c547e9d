package hoteldata

import (
	"errors"
	"testing"

	"github.com/MyData-Folk/hotel-rm-app/internal/model"
)

// TestFileStoreCalendarRoundTrip 日历写读往返，顺序字段保持
func TestFileStoreCalendarRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	cal := model.NewCalendar()
	cal.ReportLabel = "Planning test"
	cal.DatesProcessed = []string{"2025-08-01", "2025-08-02"}

	room := cal.EnsureRoom("Chambre Double")
	room.Stock["2025-08-01"] = 3
	plan := room.EnsurePlan("BAR_FLEX")
	price := 120.5
	plan["2025-08-01"] = &price
	plan["2025-08-02"] = nil
	room.EnsurePlan("BOOKING_BAR")

	if err := store.SaveCalendar("h1", cal); err != nil {
		t.Fatalf("SaveCalendar: %v", err)
	}

	loaded, err := store.LoadCalendar("h1")
	if err != nil {
		t.Fatalf("LoadCalendar: %v", err)
	}

	if loaded.ReportLabel != cal.ReportLabel {
		t.Errorf("ReportLabel = %q", loaded.ReportLabel)
	}
	lroom := loaded.Rooms["Chambre Double"]
	if lroom == nil {
		t.Fatal("房型丢失")
	}
	if len(lroom.PlanOrder) != 2 || lroom.PlanOrder[0] != "BAR_FLEX" || lroom.PlanOrder[1] != "BOOKING_BAR" {
		t.Errorf("PlanOrder = %v", lroom.PlanOrder)
	}
	if got := lroom.Plans["BAR_FLEX"]["2025-08-01"]; got == nil || *got != 120.5 {
		t.Errorf("价格往返失败: %v", got)
	}
	// nil 价格（无挂牌价）应保持为 nil 而不是 0
	if got := lroom.Plans["BAR_FLEX"]["2025-08-02"]; got != nil {
		t.Errorf("nil 价格往返失败: %v", *got)
	}
}

// TestFileStoreConfigRoundTrip 渠道配置写读往返
func TestFileStoreConfigRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	cfg := &model.PartnerConfig{
		Partners: map[string]*model.Partner{
			"Booking": {
				Commission: 15,
				Codes:      []string{"BOOKING", "BK"},
				DefaultDiscount: model.DefaultDiscount{
					Percentage:             10,
					ExcludePlansContaining: []string{"NR"},
				},
			},
		},
	}

	if err := store.SavePartnerConfig("h1", cfg); err != nil {
		t.Fatalf("SavePartnerConfig: %v", err)
	}

	loaded, err := store.LoadPartnerConfig("h1")
	if err != nil {
		t.Fatalf("LoadPartnerConfig: %v", err)
	}

	p := loaded.Partner("Booking")
	if p == nil || p.Commission != 15 || len(p.Codes) != 2 {
		t.Errorf("Partner = %+v", p)
	}
}

// TestFileStoreNotFound 未上传时返回 ErrNotFound
func TestFileStoreNotFound(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if _, err := store.LoadCalendar("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if _, err := store.LoadPartnerConfig("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// TestFileStoreDelete 删除后读取报 ErrNotFound，删除不存在的酒店不报错
func TestFileStoreDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	cal := model.NewCalendar()
	if err := store.SaveCalendar("h1", cal); err != nil {
		t.Fatalf("SaveCalendar: %v", err)
	}

	if err := store.Delete("h1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.LoadCalendar("h1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	if err := store.Delete("missing"); err != nil {
		t.Errorf("删除不存在的酒店不应报错: %v", err)
	}
}
