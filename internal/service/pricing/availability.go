package pricing

import (
	"github.com/MyData-Folk/hotel-rm-app/internal/model"
)

// Availability 查询区间内各房型逐日库存
// roomFilter 为空时返回全部房型；日历中缺失的房型/日期组合记 0。
// 与 Simulate 共用同一日期遍历口径（结束日期不含当晚）。
func Availability(cal *model.Calendar, roomFilter []string, startDate, endDate string) (*model.AvailabilityResult, error) {
	start, end, err := parseRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, int(end.Sub(start).Hours()/24))
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}

	rooms := roomFilter
	if len(rooms) == 0 {
		rooms = cal.RoomOrder
	}

	result := &model.AvailabilityResult{
		StartDate: startDate,
		EndDate:   endDate,
		Dates:     dates,
		Rooms:     make(map[string]map[string]int, len(rooms)),
	}

	for _, name := range rooms {
		room := cal.Room(name)
		if room == nil {
			continue
		}
		stocks := make(map[string]int, len(dates))
		for _, date := range dates {
			stocks[date] = room.Stock[date]
		}
		result.Rooms[name] = stocks
		result.RoomOrder = append(result.RoomOrder, name)
	}

	return result, nil
}
