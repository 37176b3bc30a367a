// Package pipeline 把各個匯入來源（剪貼簿文字、AI 生成、OCR、網頁）
// 串成統一的片段產出流程：來源轉接器取得原始文字或片段，
// 經過擷取與正規化後交給呼叫端審閱
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-ingest/internal/core/ai/provider"
	"recipe-ingest/internal/core/ai/service"
	"recipe-ingest/internal/core/extract"
	"recipe-ingest/internal/core/measure"
	"recipe-ingest/internal/core/ocr"
	"recipe-ingest/internal/core/recipe"
	"recipe-ingest/internal/core/scrape"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// generatePrompt 生成請求的固定模板：
// 要求模型以標籤分段輸出，剛好是擷取器吃的格式
const generatePrompt = `You are a recipe writer. Create one complete recipe using these ingredients: %s.
Respond in plain text using exactly these labeled sections, each label uppercase and followed by a colon:
TITLE: the recipe name
DESCRIPTION: two or three sentences
INGREDIENTS: one ingredient per line as "<amount> <unit> <name>"
STEPS: numbered steps like "1. ..."
DIFFICULTY: easy, medium or hard
CUISINE: the cuisine
TOTAL_TIME: like "1 hour and 30 minutes"
DIETARY_INFO: applicable labels among vegetarian, vegan, gluten-free, dairy-free, contains nuts
CATEGORIES: comma separated
SERVINGS: like "4 servings"
Do not add any other text before or after the sections.`

// Importer 匯入管線
type Importer struct {
	config        *config.Config
	aiService     *service.Service
	ocrService    *ocr.Service
	scrapeService *scrape.Service
}

// NewImporter 創建匯入管線
func NewImporter(cfg *config.Config, ai *service.Service, ocrSvc *ocr.Service, scrapeSvc *scrape.Service) *Importer {
	return &Importer{
		config:        cfg,
		aiService:     ai,
		ocrService:    ocrSvc,
		scrapeService: scrapeSvc,
	}
}

// ImportText 解析貼上或既有的原始文字。
// 全函數：無法辨認的文字回傳空序列而非錯誤
func (im *Importer) ImportText(text string, source recipe.SourceKind) []recipe.Fragment {
	start := time.Now()
	fragments := extract.Extract(recipe.RawExtraction{Text: text, Source: source})
	for i := range fragments {
		normalizeFragment(&fragments[i])
	}
	common.LogImport(string(source), len(fragments), time.Since(start))
	return fragments
}

// GenerateFromIngredients 依指定食材請 AI 生成一份食譜。
// 模型輸出不符格式時回傳空序列，呼叫端視為「沒有建議」而非錯誤
func (im *Importer) GenerateFromIngredients(ctx context.Context, ingredients []string) ([]recipe.Fragment, error) {
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("ingredients list is empty")
	}
	if im.aiService == nil {
		return nil, common.ErrAIServiceError
	}

	common.LogInfo("開始生成食譜", zap.String("食材", common.StringSliceToString(ingredients)))

	prompt := fmt.Sprintf(generatePrompt, strings.Join(ingredients, ", "))
	resp, err := im.aiService.ProcessRequest(ctx, &provider.Request{Prompt: prompt})
	if err != nil {
		return nil, fmt.Errorf("recipe generation failed: %w", err)
	}

	return im.ImportText(resp.Content, recipe.SourceAIGenerated), nil
}

// ImportImage 先 OCR 再走文字解析。
// 無標籤的掃描文字由擷取器以 OCR 退路處理（首行當標題）
func (im *Importer) ImportImage(ctx context.Context, imageRef string) ([]recipe.Fragment, error) {
	if im.ocrService == nil {
		return nil, common.ErrAIServiceError
	}

	text, err := im.ocrService.Recognize(ctx, imageRef)
	if err != nil {
		return nil, err
	}
	return im.ImportText(text, recipe.SourceOCR), nil
}

// ImportURL 網頁匯入：結構化資料直接產出片段，不經過文字擷取器
func (im *Importer) ImportURL(ctx context.Context, pageURL string) ([]recipe.Fragment, error) {
	if im.scrapeService == nil {
		return nil, common.ErrScrapeFailed
	}

	start := time.Now()
	frag, err := im.scrapeService.Scrape(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	normalizeFragment(frag)
	common.LogImport(string(recipe.SourceURLScrape), 1, time.Since(start))
	return []recipe.Fragment{*frag}, nil
}

// normalizeFragment 片段產出後的統一正規化：
// 時間字串重排為標準格式、能量欄位補齊另一個單位
func normalizeFragment(frag *recipe.Fragment) {
	if frag == nil {
		return
	}
	if frag.TotalTime != nil {
		t := measure.CanonicalDuration(*frag.TotalTime)
		frag.TotalTime = &t
	}
	for i := range frag.Steps {
		if frag.Steps[i].Duration != "" {
			frag.Steps[i].Duration = measure.CanonicalDuration(frag.Steps[i].Duration)
		}
	}
	measure.SyncEnergy(frag.EnergyInfo)
}
