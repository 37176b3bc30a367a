// Package scrape 從網頁擷取結構化食譜資料。
// 優先讀取 schema.org/Recipe JSON-LD，沒有時退回 readability 取標題與摘要。
// 輸出直接是食譜片段，不經過文字擷取器
package scrape

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"recipe-ingest/internal/core/recipe"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Service 網頁擷取服務
type Service struct {
	config *config.Config
	client *resty.Client
}

// NewService 創建網頁擷取服務
func NewService(cfg *config.Config) *Service {
	client := resty.New().
		SetTimeout(cfg.Scrape.Timeout).
		SetHeader("User-Agent", cfg.Scrape.UserAgent)

	return &Service{
		config: cfg,
		client: client,
	}
}

// Scrape 抓取頁面並轉成食譜片段。
// 失敗時回傳錯誤且不產生任何部分結果
func (s *Service) Scrape(ctx context.Context, pageURL string) (*recipe.Fragment, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, fmt.Errorf("invalid url: %q", pageURL)
	}

	start := time.Now()
	resp, err := s.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("failed to fetch page: status code %d", resp.StatusCode())
	}

	body := resp.Body()
	if int64(len(body)) > s.config.Scrape.MaxBody {
		return nil, fmt.Errorf("page body exceeds limit of %d bytes", s.config.Scrape.MaxBody)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	// 結構化資料優先
	if frag := extractJSONLD(doc); frag != nil {
		common.LogInfo("網頁擷取完成",
			zap.String("url", pageURL),
			zap.String("方式", "json-ld"),
			zap.Duration("耗時", time.Since(start)),
		)
		return frag, nil
	}

	// 退回 readability：至少拿到標題、摘要與主圖
	frag, err := s.fallbackReadability(body, parsed)
	if err != nil {
		return nil, err
	}

	common.LogInfo("網頁擷取完成",
		zap.String("url", pageURL),
		zap.String("方式", "readability"),
		zap.Duration("耗時", time.Since(start)),
	)
	return frag, nil
}

// fallbackReadability 沒有結構化資料時的最後手段
func (s *Service) fallbackReadability(body []byte, pageURL *url.URL) (*recipe.Fragment, error) {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		return nil, fmt.Errorf("readability extraction failed: %w", err)
	}

	var frag recipe.Fragment
	if article.Title != "" {
		title := article.Title
		frag.Title = &title
	}
	if article.Excerpt != "" {
		desc := article.Excerpt
		frag.Description = &desc
	}
	if article.Image != "" {
		frag.Images = []string{article.Image}
	}

	if !frag.HasContent() {
		return nil, fmt.Errorf("no recipe content found in page")
	}
	return &frag, nil
}
