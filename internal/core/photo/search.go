// Package photo 對外部圖庫（Openverse 相容 API）搜尋候選圖片。
// 選定某張圖後必須先經過 Attach 的下載／署名側呼叫，
// 拿到的持久 URL 才能附加到食譜的 images
package photo

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Candidate 搜尋結果候選，含署名資訊
type Candidate struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Creator     string `json:"creator,omitempty"`
	License     string `json:"license,omitempty"`
	Attribution string `json:"attribution,omitempty"`
}

// Service 圖片搜尋服務
type Service struct {
	config *config.Config
	client *resty.Client
}

// NewService 創建圖片搜尋服務
func NewService(cfg *config.Config) *Service {
	client := resty.New().
		SetBaseURL(cfg.Photo.BaseURL).
		SetTimeout(cfg.Photo.Timeout)

	return &Service{
		config: cfg,
		client: client,
	}
}

// searchResponse 圖庫 API 的回應結構
type searchResponse struct {
	Results []struct {
		ID          string `json:"id"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		Thumbnail   string `json:"thumbnail"`
		Creator     string `json:"creator"`
		License     string `json:"license"`
		Attribution string `json:"attribution"`
	} `json:"results"`
}

// Search 以關鍵字（通常是食譜標題）搜尋候選圖片
func (s *Service) Search(ctx context.Context, query string) ([]Candidate, error) {
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}

	start := time.Now()
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetQueryParam("page_size", fmt.Sprintf("%d", s.config.Photo.MaxResults)).
		Get("/images/")
	if err != nil {
		return nil, fmt.Errorf("photo search failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("photo search failed: status code %d", resp.StatusCode())
	}

	var result searchResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse photo search response: %w", err)
	}

	candidates := make([]Candidate, 0, len(result.Results))
	for _, r := range result.Results {
		candidates = append(candidates, Candidate{
			ID:          r.ID,
			Title:       r.Title,
			URL:         r.URL,
			Thumbnail:   r.Thumbnail,
			Creator:     r.Creator,
			License:     r.License,
			Attribution: r.Attribution,
		})
	}

	common.LogInfo("圖片搜尋完成",
		zap.String("query", query),
		zap.Int("候選數", len(candidates)),
		zap.Duration("耗時", time.Since(start)),
	)
	return candidates, nil
}

// Attach 選定候選圖片後的下載／署名側呼叫：
// 取回完整詮釋資料確認署名，回傳可持久化的圖片 URL。
// 失敗時不附加任何東西
func (s *Service) Attach(ctx context.Context, candidateID string) (string, error) {
	if candidateID == "" {
		return "", fmt.Errorf("candidate id is empty")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/images/%s/", candidateID))
	if err != nil {
		return "", fmt.Errorf("photo attribution lookup failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("photo attribution lookup failed: status code %d", resp.StatusCode())
	}

	var detail struct {
		URL         string `json:"url"`
		Attribution string `json:"attribution"`
	}
	if err := common.ParseJSONBytes(resp.Body(), &detail); err != nil {
		return "", fmt.Errorf("failed to parse photo detail response: %w", err)
	}
	if detail.URL == "" {
		return "", fmt.Errorf("photo detail has no url")
	}

	common.LogInfo("圖片署名確認完成",
		zap.String("id", candidateID),
		zap.String("attribution", detail.Attribution),
	)
	return detail.URL, nil
}
