// Package ocr 透過視覺模型把圖片內容轉成原始文字，
// 輸出交給 extract 套件以 OCR 來源解析
package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	"recipe-ingest/internal/core/ai/image"
	"recipe-ingest/internal/core/ai/provider"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// 固定的辨識指令：只要求轉錄，不要求理解
const recognizePrompt = `Transcribe all text visible in this image exactly as written. ` +
	`Preserve the original line breaks. ` +
	`Return only the transcribed text with no commentary, no translation and no formatting marks.`

// Service 圖片文字辨識服務
type Service struct {
	config    *config.Config
	provider  provider.Provider
	processor *image.Processor
}

// NewService 創建 OCR 服務
func NewService(cfg *config.Config, p provider.Provider, processor *image.Processor) *Service {
	return &Service{
		config:    cfg,
		provider:  p,
		processor: processor,
	}
}

// Recognize 辨識圖片中的文字。
// 失敗時不留任何中間狀態，呼叫端手上的資料不受影響
func (s *Service) Recognize(ctx context.Context, imageRef string) (string, error) {
	if imageRef == "" {
		return "", fmt.Errorf("invalid image: image reference is empty")
	}

	processed, err := s.processor.FormatImageData(imageRef)
	if err != nil {
		return "", fmt.Errorf("failed to process image: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.OCR.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := s.provider.Generate(ctx, &provider.Request{
		Prompt:    recognizePrompt,
		ImageData: processed,
		Model:     s.config.OCR.Model,
	})
	if err != nil {
		common.LogError("OCR 辨識失敗",
			zap.Error(err),
			zap.Duration("耗時", time.Since(start)),
		)
		return "", fmt.Errorf("ocr recognition failed: %w", err)
	}

	text := strings.TrimSpace(resp.Content)
	common.LogInfo("OCR 辨識完成",
		zap.Int("文字長度", len(text)),
		zap.Duration("耗時", time.Since(start)),
	)
	return text, nil
}
