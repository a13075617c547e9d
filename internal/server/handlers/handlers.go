package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MyData-Folk/hotel-rm-app/internal/config"
	"github.com/MyData-Folk/hotel-rm-app/internal/exporter"
	"github.com/MyData-Folk/hotel-rm-app/internal/model"
	"github.com/MyData-Folk/hotel-rm-app/internal/parser"
	"github.com/MyData-Folk/hotel-rm-app/internal/service/hoteldata"
	"github.com/MyData-Folk/hotel-rm-app/internal/service/pricing"
	"github.com/MyData-Folk/hotel-rm-app/internal/store"
)

// Handlers API处理器
type Handlers struct {
	store    *store.Store
	files    *hoteldata.FileStore
	exporter *exporter.Exporter
	cfg      *config.AppConfig
}

// NewHandlers 创建处理器
func NewHandlers(s *store.Store, files *hoteldata.FileStore, cfg *config.AppConfig) *Handlers {
	return &Handlers{
		store:    s,
		files:    files,
		exporter: exporter.NewExporter(),
		cfg:      cfg,
	}
}

// Response 通用响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// queryError 查询层的类型化错误统一映射为响应码
func queryError(c *gin.Context, err error) {
	var roomErr *pricing.RoomNotFoundError
	var planErr *pricing.PlanNotFoundError
	var rangeErr *pricing.InvalidRangeError
	var dateErr *pricing.InvalidDateError

	switch {
	case errors.As(err, &roomErr), errors.As(err, &planErr):
		errorResponse(c, 2002, err.Error())
	case errors.As(err, &rangeErr), errors.As(err, &dateErr):
		errorResponse(c, 1001, err.Error())
	default:
		errorResponse(c, 5001, err.Error())
	}
}

// ==================== Status ====================

// GetStatus 获取系统状态
// GET /api/status
func (h *Handlers) GetStatus(c *gin.Context) {
	hotels, err := h.store.ListHotels()
	if err != nil {
		errorResponse(c, 5001, "读取酒店列表失败: "+err.Error())
		return
	}
	success(c, gin.H{
		"hotelCount": len(hotels),
		"serverTime": time.Now().UTC().Format(time.RFC3339),
	})
}

// ==================== Hotels ====================

// CreateHotel 登记新酒店
// POST /api/hotels
func (h *Handlers) CreateHotel(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, 1001, "参数错误")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		errorResponse(c, 1001, "酒店名不能为空")
		return
	}

	hotel, err := h.store.CreateHotel(name)
	if err != nil {
		errorResponse(c, 5001, "创建酒店失败: "+err.Error())
		return
	}
	success(c, hotel)
}

// ListHotels 获取酒店列表
// GET /api/hotels
func (h *Handlers) ListHotels(c *gin.Context) {
	hotels, err := h.store.ListHotels()
	if err != nil {
		errorResponse(c, 5001, "读取酒店列表失败: "+err.Error())
		return
	}
	success(c, hotels)
}

// DeleteHotel 删除酒店及其数据文件
// DELETE /api/hotels/:id
func (h *Handlers) DeleteHotel(c *gin.Context) {
	hotelID := c.Param("id")

	if err := h.store.DeleteHotel(hotelID); err != nil {
		if errors.Is(err, store.ErrHotelNotFound) {
			errorResponse(c, 2001, "酒店不存在")
			return
		}
		errorResponse(c, 5001, "删除酒店失败: "+err.Error())
		return
	}

	if err := h.files.Delete(hotelID); err != nil {
		errorResponse(c, 5001, "删除数据文件失败: "+err.Error())
		return
	}
	success(c, gin.H{"deleted": hotelID})
}

// requireHotel 校验酒店已登记
func (h *Handlers) requireHotel(c *gin.Context) (*model.Hotel, bool) {
	hotel, err := h.store.GetHotel(c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrHotelNotFound) {
			errorResponse(c, 2001, "酒店不存在")
		} else {
			errorResponse(c, 5001, "读取酒店失败: "+err.Error())
		}
		return nil, false
	}
	return hotel, true
}

// ==================== Uploads ====================

// UploadData 上传价格表（.xlsx / .csv）
// POST /api/hotels/:id/data
func (h *Handlers) UploadData(c *gin.Context) {
	hotel, ok := h.requireHotel(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, 1001, "请上传文件")
		return
	}
	defer file.Close()

	maxBytes := h.cfg.Simulation.MaxUploadMB * 1024 * 1024
	if header.Size > maxBytes {
		errorResponse(c, 1003, fmt.Sprintf("文件过大，最大支持%dMB", h.cfg.Simulation.MaxUploadMB))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".xlsx" && ext != ".csv" {
		errorResponse(c, 1002, "仅支持 .xlsx 和 .csv 格式")
		return
	}

	grid, err := parser.LoadGrid(file, header.Filename)
	if err != nil {
		errorResponse(c, 1002, "文件解析失败: "+err.Error())
		return
	}

	cal, warnings := parser.NewNormalizer().Parse(grid)

	if err := h.files.SaveCalendar(hotel.ID, cal); err != nil {
		errorResponse(c, 5001, "保存数据失败: "+err.Error())
		return
	}

	importLog := &model.ImportLog{
		HotelID:        hotel.ID,
		FileName:       header.Filename,
		RoomsFound:     len(cal.RoomOrder),
		DatesProcessed: len(cal.DatesProcessed),
		WarningCount:   len(warnings),
	}
	if err := h.store.LogImport(importLog); err != nil {
		// 导入记录失败不影响数据本身
		warnings = append(warnings, model.ParseWarning{Message: "导入记录写入失败: " + err.Error()})
	}

	success(c, gin.H{
		"hotelId":        hotel.ID,
		"fileName":       header.Filename,
		"roomsFound":     len(cal.RoomOrder),
		"datesProcessed": len(cal.DatesProcessed),
		"source":         cal.ReportLabel,
		"warnings":       warnings,
	})
}

// UploadConfig 上传渠道配置 JSON
// POST /api/hotels/:id/config
func (h *Handlers) UploadConfig(c *gin.Context) {
	hotel, ok := h.requireHotel(c)
	if !ok {
		return
	}

	var body []byte
	if file, _, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		body, err = io.ReadAll(file)
		if err != nil {
			errorResponse(c, 1002, "读取文件失败")
			return
		}
	} else {
		body, err = io.ReadAll(c.Request.Body)
		if err != nil {
			errorResponse(c, 1001, "读取请求失败")
			return
		}
	}

	cfg, err := parsePartnerConfig(body)
	if err != nil {
		errorResponse(c, 1002, "配置非法: "+err.Error())
		return
	}

	if err := h.files.SavePartnerConfig(hotel.ID, cfg); err != nil {
		errorResponse(c, 5001, "保存配置失败: "+err.Error())
		return
	}

	success(c, gin.H{
		"hotelId":       hotel.ID,
		"partnersCount": len(cfg.Partners),
	})
}

// GetData 获取标准化日历
// GET /api/hotels/:id/data
func (h *Handlers) GetData(c *gin.Context) {
	hotel, ok := h.requireHotel(c)
	if !ok {
		return
	}

	cal, err := h.files.LoadCalendar(hotel.ID)
	if err != nil {
		if errors.Is(err, hoteldata.ErrNotFound) {
			errorResponse(c, 2001, "尚未上传价格表")
			return
		}
		errorResponse(c, 5001, "读取数据失败: "+err.Error())
		return
	}
	success(c, cal)
}

// GetConfig 获取渠道配置
// GET /api/hotels/:id/config
func (h *Handlers) GetConfig(c *gin.Context) {
	hotel, ok := h.requireHotel(c)
	if !ok {
		return
	}

	cfg, err := h.files.LoadPartnerConfig(hotel.ID)
	if err != nil {
		if errors.Is(err, hoteldata.ErrNotFound) {
			errorResponse(c, 2001, "尚未上传渠道配置")
			return
		}
		errorResponse(c, 5001, "读取配置失败: "+err.Error())
		return
	}
	success(c, cfg)
}

// GetImports 获取导入历史
// GET /api/hotels/:id/imports
func (h *Handlers) GetImports(c *gin.Context) {
	hotel, ok := h.requireHotel(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	logs, err := h.store.GetImportLogs(hotel.ID, limit)
	if err != nil {
		errorResponse(c, 5001, "读取导入记录失败: "+err.Error())
		return
	}
	success(c, logs)
}

// ==================== Queries ====================

// GetSummary 获取数据摘要（房型/方案价格统计）
// GET /api/hotels/:id/summary
func (h *Handlers) GetSummary(c *gin.Context) {
	hotel, ok := h.requireHotel(c)
	if !ok {
		return
	}

	cal, err := h.files.LoadCalendar(hotel.ID)
	if err != nil {
		if errors.Is(err, hoteldata.ErrNotFound) {
			errorResponse(c, 2001, "尚未上传价格表")
			return
		}
		errorResponse(c, 5001, "读取数据失败: "+err.Error())
		return
	}
	success(c, buildSummary(cal))
}

// GetPlans 按渠道列出房型可用方案
// GET /api/hotels/:id/plans?room=&partner=
func (h *Handlers) GetPlans(c *gin.Context) {
	hotel, ok := h.requireHotel(c)
	if !ok {
		return
	}
	roomName := c.Query("room")
	partnerName := c.Query("partner")

	cal, err := h.files.LoadCalendar(hotel.ID)
	if err != nil {
		if errors.Is(err, hoteldata.ErrNotFound) {
			errorResponse(c, 2001, "尚未上传价格表")
			return
		}
		errorResponse(c, 5001, "读取数据失败: "+err.Error())
		return
	}

	room := cal.Room(roomName)
	if room == nil {
		errorResponse(c, 2002, fmt.Sprintf("房型 %q 不存在", roomName))
		return
	}

	var partner *model.Partner
	if partnerName != "" {
		cfg, err := h.files.LoadPartnerConfig(hotel.ID)
		if err != nil && !errors.Is(err, hoteldata.ErrNotFound) {
			errorResponse(c, 5001, "读取配置失败: "+err.Error())
			return
		}
		if cfg != nil {
			partner = cfg.Partner(partnerName)
		}
	}

	plans := pricing.PlansForPartner(room, partner)
	resp := gin.H{
		"hotelId":    hotel.ID,
		"room":       roomName,
		"partner":    partnerName,
		"plans":      plans,
		"plansCount": len(plans),
	}
	if partner != nil {
		resp["partnerCommission"] = partner.Commission
		resp["partnerDiscount"] = partner.DefaultDiscount.Percentage
	}
	success(c, resp)
}

// simulateRequest 模拟请求体
// 佣金/渠道折扣开关缺省为开启，用指针区分“未传”与“显式关闭”
type simulateRequest struct {
	Room                 string  `json:"room"`
	Plan                 string  `json:"plan"`
	PartnerName          string  `json:"partnerName"`
	StartDate            string  `json:"startDate"`
	EndDate              string  `json:"endDate"`
	ApplyCommission      *bool   `json:"applyCommission"`
	ApplyPartnerDiscount *bool   `json:"applyPartnerDiscount"`
	PromoDiscountPercent float64 `json:"promoDiscountPercent"`
}

func (r *simulateRequest) toModel() model.SimulationRequest {
	req := model.SimulationRequest{
		Room:                 r.Room,
		Plan:                 r.Plan,
		PartnerName:          r.PartnerName,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		ApplyCommission:      true,
		ApplyPartnerDiscount: true,
		PromoDiscountPercent: r.PromoDiscountPercent,
	}
	if r.ApplyCommission != nil {
		req.ApplyCommission = *r.ApplyCommission
	}
	if r.ApplyPartnerDiscount != nil {
		req.ApplyPartnerDiscount = *r.ApplyPartnerDiscount
	}
	return req
}

// runSimulation 加载数据并执行模拟，供模拟与导出共用
func (h *Handlers) runSimulation(c *gin.Context) (*model.SimulationResult, bool) {
	hotel, ok := h.requireHotel(c)
	if !ok {
		return nil, false
	}

	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, 1001, "参数错误")
		return nil, false
	}

	if !h.checkRangeLimit(c, req.StartDate, req.EndDate) {
		return nil, false
	}

	cal, err := h.files.LoadCalendar(hotel.ID)
	if err != nil {
		if errors.Is(err, hoteldata.ErrNotFound) {
			errorResponse(c, 2001, "尚未上传价格表")
			return nil, false
		}
		errorResponse(c, 5001, "读取数据失败: "+err.Error())
		return nil, false
	}

	cfg, err := h.files.LoadPartnerConfig(hotel.ID)
	if err != nil {
		if !errors.Is(err, hoteldata.ErrNotFound) {
			errorResponse(c, 5001, "读取配置失败: "+err.Error())
			return nil, false
		}
		// 未上传配置时按无渠道计算
		cfg = &model.PartnerConfig{}
	}

	result, err := pricing.Simulate(cal, cfg, req.toModel())
	if err != nil {
		queryError(c, err)
		return nil, false
	}
	return result, true
}

// Simulate 执行价格模拟
// POST /api/hotels/:id/simulate
func (h *Handlers) Simulate(c *gin.Context) {
	result, ok := h.runSimulation(c)
	if !ok {
		return
	}
	success(c, result)
}

// ExportSimulation 执行模拟并导出 Excel
// POST /api/hotels/:id/simulate/export
func (h *Handlers) ExportSimulation(c *gin.Context) {
	result, ok := h.runSimulation(c)
	if !ok {
		return
	}

	f, err := h.exporter.ExportSimulation(result)
	if err != nil {
		errorResponse(c, 5001, "导出失败: "+err.Error())
		return
	}
	defer f.Close()

	fileName := fmt.Sprintf("simulation_%s_%s.xlsx", result.Info.Room, uuid.New().String()[:8])
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		// 响应头已写出，只能中断
		c.Abort()
	}
}

// availabilityRequest 可用性查询请求体
type availabilityRequest struct {
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
	Rooms     []string `json:"rooms"`
}

// Availability 查询逐日库存
// POST /api/hotels/:id/availability
func (h *Handlers) Availability(c *gin.Context) {
	hotel, ok := h.requireHotel(c)
	if !ok {
		return
	}

	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, 1001, "参数错误")
		return
	}

	if !h.checkRangeLimit(c, req.StartDate, req.EndDate) {
		return
	}

	cal, err := h.files.LoadCalendar(hotel.ID)
	if err != nil {
		if errors.Is(err, hoteldata.ErrNotFound) {
			errorResponse(c, 2001, "尚未上传价格表")
			return
		}
		errorResponse(c, 5001, "读取数据失败: "+err.Error())
		return
	}

	result, err := pricing.Availability(cal, req.Rooms, req.StartDate, req.EndDate)
	if err != nil {
		queryError(c, err)
		return
	}
	success(c, result)
}

// checkRangeLimit 区间天数超过配置上限时拒绝请求
// 日期不合法交由查询层报类型化错误，这里只管长度
func (h *Handlers) checkRangeLimit(c *gin.Context, startDate, endDate string) bool {
	maxDays := h.cfg.Simulation.MaxRangeDays
	if maxDays <= 0 {
		return true
	}
	start, err1 := time.Parse("2006-01-02", startDate)
	end, err2 := time.Parse("2006-01-02", endDate)
	if err1 != nil || err2 != nil {
		return true
	}
	if days := int(end.Sub(start).Hours() / 24); days > maxDays {
		errorResponse(c, 1004, fmt.Sprintf("查询区间过长: %d 天 (上限 %d 天)", days, maxDays))
		return false
	}
	return true
}
