package model

// Hotel 酒店登记信息
type Hotel struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
}

// ImportLog 价格表导入记录
type ImportLog struct {
	ID             string `json:"id"`
	HotelID        string `json:"hotelId"`
	FileName       string `json:"fileName"`
	RoomsFound     int    `json:"roomsFound"`
	DatesProcessed int    `json:"datesProcessed"`
	WarningCount   int    `json:"warningCount"`
	ImportedAt     string `json:"importedAt"`
}
