// Package store 食譜文件的持久化層（Redis）。
// 儲存前先清掉暫時性圖片引用；發布（非草稿）必須先通過驗證，
// 驗證失敗時不寫入任何東西
package store

import (
	"context"
	"fmt"
	"time"

	"recipe-ingest/internal/core/imageref"
	"recipe-ingest/internal/core/recipe"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const keyPrefix = "recipe:"

// Store 食譜儲存服務
type Store struct {
	config *config.Config
	client *redis.Client
}

// SaveResult 儲存結果：驗證未通過時帶回完整錯誤清單
type SaveResult struct {
	ID         string                  `json:"id"`
	Status     recipe.Status           `json:"status"`
	Validation recipe.ValidationResult `json:"validation"`
}

// New 創建儲存服務並確認連線
func New(cfg *config.Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Store.Addr,
		Password: cfg.Store.Password,
		DB:       cfg.Store.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to store: %w", err)
	}

	common.LogInfo("儲存服務已連線", zap.String("addr", cfg.Store.Addr))
	return &Store{
		config: cfg,
		client: client,
	}, nil
}

// Save 儲存食譜。asDraft 為 true 時跳過驗證直接存成草稿；
// 否則必須通過驗證才會寫入並標記為已發布
func (s *Store) Save(ctx context.Context, r *recipe.Recipe, asDraft bool) (*SaveResult, error) {
	if r == nil {
		return nil, common.ErrInvalidRequest
	}

	result := recipe.Validate(r)
	if !asDraft && !result.IsValid {
		return &SaveResult{Validation: result}, common.ErrRecipeNotValid
	}

	// 所有變更先落在副本上，寫入成功才回寫；
	// 任何失敗都不得動到呼叫端手上的食譜
	saved := *r
	if asDraft {
		saved.Status = recipe.StatusDraft
	} else {
		saved.Status = recipe.StatusPublished
	}

	// 持久化邊界：暫時性引用在這裡一律濾除
	saved.Images, saved.FeaturedImageIndex = imageref.SanitizeImages(saved.Images, saved.FeaturedImageIndex)

	if saved.ID == "" {
		saved.ID = common.GenerateUUID()
	}
	saved.UpdatedAt = time.Now()
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = saved.UpdatedAt
	}

	data, err := common.ToJSON(&saved)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recipe: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+saved.ID, data, s.config.Store.TTL).Err(); err != nil {
		common.LogError("食譜儲存失敗", zap.String("id", saved.ID), zap.Error(err))
		return nil, common.NewError(common.ErrCodeServiceUnavailable, "儲存服務不可用", 503, err)
	}

	*r = saved
	common.LogInfo("食譜已儲存",
		zap.String("id", r.ID),
		zap.String("status", string(r.Status)),
		zap.Bool("draft", asDraft),
	)
	return &SaveResult{
		ID:         r.ID,
		Status:     r.Status,
		Validation: result,
	}, nil
}

// Load 讀取食譜，不存在時回傳 ErrNotFound
func (s *Store) Load(ctx context.Context, id string) (*recipe.Recipe, error) {
	if id == "" {
		return nil, common.ErrInvalidRequest
	}

	data, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.NewError(common.ErrCodeServiceUnavailable, "儲存服務不可用", 503, err)
	}

	var r recipe.Recipe
	if err := common.ParseJSONBytes(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}
	return &r, nil
}

// Close 關閉儲存連線
func (s *Store) Close() error {
	return s.client.Close()
}
