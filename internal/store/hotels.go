package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MyData-Folk/hotel-rm-app/internal/model"
)

// ErrHotelNotFound 酒店不存在
var ErrHotelNotFound = errors.New("hotel not found")

// CreateHotel 登记新酒店，返回带生成 ID 的记录
func (s *Store) CreateHotel(name string) (*model.Hotel, error) {
	hotel := &model.Hotel{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	_, err := s.db.Exec(
		`INSERT INTO hotels (id, name, created_at) VALUES (?, ?, ?)`,
		hotel.ID, hotel.Name, hotel.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert hotel: %w", err)
	}
	return hotel, nil
}

// GetHotel 按 ID 获取酒店
func (s *Store) GetHotel(id string) (*model.Hotel, error) {
	row := s.db.QueryRow(`SELECT id, name, created_at FROM hotels WHERE id = ?`, id)

	hotel := &model.Hotel{}
	if err := row.Scan(&hotel.ID, &hotel.Name, &hotel.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, fmt.Errorf("failed to scan hotel: %w", err)
	}
	return hotel, nil
}

// ListHotels 按创建时间列出全部酒店
func (s *Store) ListHotels() ([]*model.Hotel, error) {
	rows, err := s.db.Query(`SELECT id, name, created_at FROM hotels ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to query hotels: %w", err)
	}
	defer rows.Close()

	hotels := make([]*model.Hotel, 0)
	for rows.Next() {
		hotel := &model.Hotel{}
		if err := rows.Scan(&hotel.ID, &hotel.Name, &hotel.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, hotel)
	}
	return hotels, rows.Err()
}

// DeleteHotel 删除酒店及其导入记录
func (s *Store) DeleteHotel(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM hotels WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHotelNotFound
	}

	if _, err := tx.Exec(`DELETE FROM import_logs WHERE hotel_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete import logs: %w", err)
	}

	return tx.Commit()
}

// LogImport 记录一次价格表导入
func (s *Store) LogImport(log *model.ImportLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.ImportedAt == "" {
		log.ImportedAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err := s.db.Exec(
		`INSERT INTO import_logs (id, hotel_id, file_name, rooms_found, dates_processed, warning_count, imported_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		log.ID, log.HotelID, log.FileName, log.RoomsFound, log.DatesProcessed, log.WarningCount, log.ImportedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert import log: %w", err)
	}
	return nil
}

// GetImportLogs 按时间倒序获取酒店的导入记录
func (s *Store) GetImportLogs(hotelID string, limit int) ([]*model.ImportLog, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(
		`SELECT id, hotel_id, file_name, rooms_found, dates_processed, warning_count, imported_at
		 FROM import_logs WHERE hotel_id = ? ORDER BY imported_at DESC LIMIT ?`,
		hotelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query import logs: %w", err)
	}
	defer rows.Close()

	logs := make([]*model.ImportLog, 0)
	for rows.Next() {
		log := &model.ImportLog{}
		if err := rows.Scan(&log.ID, &log.HotelID, &log.FileName, &log.RoomsFound,
			&log.DatesProcessed, &log.WarningCount, &log.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
