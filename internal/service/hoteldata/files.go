package hoteldata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/MyData-Folk/hotel-rm-app/internal/model"
)

// ErrNotFound 对应酒店尚未上传数据/配置
var ErrNotFound = errors.New("hotel data not found")

// FileStore 按酒店落盘的 JSON 数据存储
// 每家酒店两个文件：<id>_data.json（标准化日历）、<id>_config.json（渠道配置）
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore 创建文件存储，目录不存在时自动创建
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// SaveCalendar 保存标准化日历
func (s *FileStore) SaveCalendar(hotelID string, cal *model.Calendar) error {
	return s.writeJSON(s.dataPath(hotelID), cal)
}

// LoadCalendar 读取标准化日历
func (s *FileStore) LoadCalendar(hotelID string) (*model.Calendar, error) {
	cal := &model.Calendar{}
	if err := s.readJSON(s.dataPath(hotelID), cal); err != nil {
		return nil, err
	}
	if cal.Rooms == nil {
		cal.Rooms = make(map[string]*model.RoomCalendar)
	}
	return cal, nil
}

// SavePartnerConfig 保存渠道配置
func (s *FileStore) SavePartnerConfig(hotelID string, cfg *model.PartnerConfig) error {
	return s.writeJSON(s.configPath(hotelID), cfg)
}

// LoadPartnerConfig 读取渠道配置
func (s *FileStore) LoadPartnerConfig(hotelID string) (*model.PartnerConfig, error) {
	cfg := &model.PartnerConfig{}
	if err := s.readJSON(s.configPath(hotelID), cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Delete 删除酒店的数据与配置文件（不存在时忽略）
func (s *FileStore) Delete(hotelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, path := range []string{s.dataPath(hotelID), s.configPath(hotelID)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}

func (s *FileStore) dataPath(hotelID string) string {
	return filepath.Join(s.dir, hotelID+"_data.json")
}

func (s *FileStore) configPath(hotelID string) string {
	return filepath.Join(s.dir, hotelID+"_config.json")
}

// writeJSON 先写临时文件再改名，避免写一半的文件被读到
func (s *FileStore) writeJSON(path string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to rename %s: %w", tmp, err)
	}
	return nil
}

func (s *FileStore) readJSON(path string, v interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}
