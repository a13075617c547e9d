package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/MyData-Folk/hotel-rm-app/internal/model"
)

// parsePartnerConfig 解析并校验渠道配置 JSON
// 上传时整体校验一次，避免每次计算时再做防御式取值
func parsePartnerConfig(body []byte) (*model.PartnerConfig, error) {
	cfg := &model.PartnerConfig{}
	if err := json.Unmarshal(body, cfg); err != nil {
		return nil, fmt.Errorf("JSON 解析失败: %w", err)
	}
	if cfg.Partners == nil {
		return nil, fmt.Errorf("缺少 partners 字段")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RoomSummary 单房型价格统计
type RoomSummary struct {
	Plans      int      `json:"plans"`
	PlanNames  []string `json:"planNames"`
	PriceCount int      `json:"priceCount"` // 有挂牌价的晚数（跨方案）
	MinPrice   float64  `json:"minPrice"`
	MaxPrice   float64  `json:"maxPrice"`
	AvgPrice   float64  `json:"avgPrice"`
}

// DataSummary 酒店数据摘要
type DataSummary struct {
	Source    string                  `json:"source"`
	Rooms     int                     `json:"rooms"`
	Dates     int                     `json:"dates"`
	RoomOrder []string                `json:"roomOrder"`
	ByRoom    map[string]*RoomSummary `json:"byRoom"`
}

// buildSummary 汇总日历中的房型/方案价格统计
func buildSummary(cal *model.Calendar) *DataSummary {
	summary := &DataSummary{
		Source:    cal.ReportLabel,
		Rooms:     len(cal.RoomOrder),
		Dates:     len(cal.DatesProcessed),
		RoomOrder: append([]string(nil), cal.RoomOrder...),
		ByRoom:    make(map[string]*RoomSummary, len(cal.RoomOrder)),
	}

	for _, name := range cal.RoomOrder {
		room := cal.Rooms[name]
		rs := &RoomSummary{
			Plans:     len(room.PlanOrder),
			PlanNames: append([]string(nil), room.PlanOrder...),
		}

		sum := 0.0
		for _, planName := range room.PlanOrder {
			for _, price := range room.Plans[planName] {
				if price == nil {
					continue
				}
				if rs.PriceCount == 0 || *price < rs.MinPrice {
					rs.MinPrice = *price
				}
				if rs.PriceCount == 0 || *price > rs.MaxPrice {
					rs.MaxPrice = *price
				}
				sum += *price
				rs.PriceCount++
			}
		}
		if rs.PriceCount > 0 {
			rs.AvgPrice = sum / float64(rs.PriceCount)
		}

		summary.ByRoom[name] = rs
	}

	return summary
}
