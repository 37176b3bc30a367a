package service

import (
	"context"
	"fmt"
	"strings"

	"recipe-ingest/internal/core/ai/cache"
	"recipe-ingest/internal/core/ai/provider"
	"recipe-ingest/internal/core/ai/queue"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// Response AI 回應結構
type Response struct {
	Content  string
	CacheHit bool
}

// Service AI 服務：快取 → 隊列 → 提供者 的統一入口
type Service struct {
	config       *config.Config
	provider     provider.Provider
	cacheManager *cache.Manager
	queueManager *queue.Manager
}

// NewService 創建 AI 服務並啟動隊列 worker
func NewService(cfg *config.Config, p provider.Provider, cacheManager *cache.Manager) (*Service, error) {
	if p == nil {
		return nil, fmt.Errorf("ai provider is required")
	}

	queueManager := queue.NewManager(cfg)
	queueManager.Start(p)

	return &Service{
		config:       cfg,
		provider:     p,
		cacheManager: cacheManager,
		queueManager: queueManager,
	}, nil
}

// ProcessRequest 統一對外方法：正規化 prompt、查快取、排隊呼叫提供者
func (s *Service) ProcessRequest(ctx context.Context, req *provider.Request) (*Response, error) {
	// 統一 prompt 空白，確保快取 key 一致
	cacheKey := normalizePrompt(req.Prompt)

	if s.config.AI.EnableCache && s.cacheManager != nil {
		if val, err := s.cacheManager.Get(ctx, cacheKey, req.ImageData); err == nil && val != "" {
			return &Response{Content: val, CacheHit: true}, nil
		}
	}

	resultCh, err := s.queueManager.Enqueue(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue request: %w", err)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-resultCh:
		if result.Error != nil {
			return nil, result.Error
		}
		content := result.Response.Content

		if s.config.AI.EnableCache && s.cacheManager != nil {
			if err := s.cacheManager.Set(ctx, cacheKey, req.ImageData, content); err != nil {
				common.LogWarn("快取寫入失敗", zap.Error(err))
			}
		}
		return &Response{Content: content}, nil
	}
}

// QueueStatus 取得隊列狀態（健康檢查用）
func (s *Service) QueueStatus() *queue.Status {
	return s.queueManager.GetStatus()
}

// Close 關閉服務
func (s *Service) Close() error {
	s.queueManager.Close()
	return s.provider.Close()
}

// normalizePrompt 去除多餘空白、tab、換行，合併為單一空格
func normalizePrompt(prompt string) string {
	return strings.Join(strings.Fields(strings.TrimSpace(prompt)), " ")
}
