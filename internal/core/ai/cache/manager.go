package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// Manager AI 回應的記憶體快取：TTL 過期 + LRU 淘汰
type Manager struct {
	config *config.Config
	mu     sync.Mutex
	store  map[string]entry
	stats  stats
}

// entry 快取條目
type entry struct {
	value       string
	expiresAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// stats 快取統計
type stats struct {
	hits      int64
	misses    int64
	evictions int64
	errors    int64
}

// NewManager 創建快取管理器，停用時回傳 nil
func NewManager(cfg *config.Config) *Manager {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil
	}

	m := &Manager{
		config: cfg,
		store:  make(map[string]entry),
	}

	// 背景清理過期條目
	go m.startCleanup()

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("存活時間", cfg.Cache.TTL),
		zap.Duration("清理間隔", cfg.Cache.CleanupInterval),
	)

	return m
}

// Get 獲取緩存值
func (m *Manager) Get(ctx context.Context, prompt, imageData string) (string, error) {
	if m == nil {
		return "", common.ErrCacheDisabled
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.generateKey(prompt, imageData)
	e, exists := m.store[key]
	if !exists {
		m.stats.misses++
		common.LogDebug("快取未命中", zap.String("鍵", key))
		return "", common.ErrCacheDisabled
	}

	if time.Now().After(e.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		common.LogDebug("快取已過期", zap.String("鍵", key))
		return "", common.ErrCacheDisabled
	}

	e.lastAccess = time.Now()
	e.accessCount++
	m.store[key] = e
	m.stats.hits++
	common.LogDebug("快取命中", zap.String("鍵", key))
	return e.value, nil
}

// Set 設置緩存值
func (m *Manager) Set(ctx context.Context, prompt, imageData, value string) error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.store) >= m.config.Cache.MaxSize {
		evicted := m.cleanupLocked()
		if evicted > 0 {
			common.LogInfo("快取清理執行", zap.Int("清理數量", evicted))
		}
		if len(m.store) >= m.config.Cache.MaxSize {
			m.evictLRULocked()
		}
		if len(m.store) >= m.config.Cache.MaxSize {
			m.stats.errors++
			common.LogWarn("快取已滿", zap.Int("目前容量", len(m.store)))
			return common.ErrCacheFull
		}
	}

	now := time.Now()
	m.store[m.generateKey(prompt, imageData)] = entry{
		value:      value,
		expiresAt:  now.Add(m.config.Cache.TTL),
		lastAccess: now,
	}
	return nil
}

// generateKey 生成緩存鍵
func (m *Manager) generateKey(prompt, imageData string) string {
	if imageData == "" {
		return "text:" + hashString(prompt)
	}
	return "multimodal:" + hashString(prompt) + ":" + hashString(imageData)
}

// hashString 計算字符串的 SHA-256 哈希值
func hashString(s string) string {
	hash := sha256.Sum256([]byte(s))
	return hex.EncodeToString(hash[:])
}

// startCleanup 定期清理過期條目
func (m *Manager) startCleanup() {
	ticker := time.NewTicker(m.config.Cache.CleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		m.cleanupLocked()
		m.mu.Unlock()
	}
}

// cleanupLocked 清理過期條目，呼叫端必須持有鎖
func (m *Manager) cleanupLocked() int {
	now := time.Now()
	count := 0
	for key, e := range m.store {
		if now.After(e.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}
	return count
}

// evictLRULocked 淘汰最少使用的條目，呼叫端必須持有鎖
func (m *Manager) evictLRULocked() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestCount int

	for key, e := range m.store {
		if oldestKey == "" ||
			e.accessCount < lowestCount ||
			(e.accessCount == lowestCount && e.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = e.lastAccess
			lowestCount = e.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogDebug("快取已淘汰(LRU)", zap.String("鍵", oldestKey))
	}
}

// GetStats 獲取緩存統計信息
func (m *Manager) GetStats() map[string]interface{} {
	if m == nil {
		return map[string]interface{}{"enabled": false}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	total := m.stats.hits + m.stats.misses
	hitRatio := 0.0
	if total > 0 {
		hitRatio = float64(m.stats.hits) / float64(total)
	}
	return map[string]interface{}{
		"size":      len(m.store),
		"max_size":  m.config.Cache.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
		"errors":    m.stats.errors,
		"hit_ratio": hitRatio,
	}
}

// Close 關閉緩存管理器
func (m *Manager) Close() error {
	if m == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]entry)
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}
