package model

// Calendar 标准化后的酒店价格日历
// 由 parser.Normalizer 从原始表格生成，作为定价/可用性计算的只读输入
type Calendar struct {
	// ReportLabel 表格首单元格的来源说明，仅作展示
	ReportLabel string `json:"reportLabel"`
	// Rooms 按房型名索引的日历数据
	Rooms map[string]*RoomCalendar `json:"rooms"`
	// RoomOrder 房型在表格中首次出现的顺序
	RoomOrder []string `json:"roomOrder"`
	// DatesProcessed 成功识别的日期列（ISO 格式），保持列顺序
	DatesProcessed []string `json:"datesProcessed"`
}

// RoomCalendar 单个房型的库存与价格方案
type RoomCalendar struct {
	// Stock 按日期的剩余可售数量，解析失败的单元格记 0
	Stock map[string]int `json:"stock"`
	// Plans 方案名 -> (日期 -> 价格)，nil 表示该晚未发布价格
	Plans map[string]map[string]*float64 `json:"plans"`
	// PlanOrder 方案在表格中首次出现的顺序
	PlanOrder []string `json:"planOrder"`
}

// NewCalendar 创建空日历
func NewCalendar() *Calendar {
	return &Calendar{
		Rooms: make(map[string]*RoomCalendar),
	}
}

// Room 获取房型日历，不存在时返回 nil
func (c *Calendar) Room(name string) *RoomCalendar {
	if c == nil || c.Rooms == nil {
		return nil
	}
	return c.Rooms[name]
}

// EnsureRoom 获取或懒创建房型日历，首次出现时记录顺序
func (c *Calendar) EnsureRoom(name string) *RoomCalendar {
	if room, ok := c.Rooms[name]; ok {
		return room
	}
	room := &RoomCalendar{
		Stock: make(map[string]int),
		Plans: make(map[string]map[string]*float64),
	}
	c.Rooms[name] = room
	c.RoomOrder = append(c.RoomOrder, name)
	return room
}

// EnsurePlan 获取或懒创建价格方案，首次出现时记录顺序
func (r *RoomCalendar) EnsurePlan(name string) map[string]*float64 {
	if plan, ok := r.Plans[name]; ok {
		return plan
	}
	plan := make(map[string]*float64)
	r.Plans[name] = plan
	r.PlanOrder = append(r.PlanOrder, name)
	return plan
}

// ParseWarning 解析过程中的非致命告警
// 解析层对脏数据全量容忍，告警交由调用方决定如何呈现
type ParseWarning struct {
	Row     int    `json:"row"`     // 表格行号（1 起）
	Column  int    `json:"column"`  // 表格列号（1 起），0 表示整行
	Message string `json:"message"` // 告警内容
}
