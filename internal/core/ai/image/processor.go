package image

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"
	"time"

	_ "image/gif" // 支援 GIF
	_ "image/png" // 支援 PNG

	_ "golang.org/x/image/webp" // 支援 WebP
)

// Processor 圖片前處理：下載、格式檢查、統一轉成 base64 JPEG data URI，
// OCR 與圖片附加流程共用
type Processor struct {
	maxSizeBytes int64
	httpClient   *http.Client
}

// NewProcessor 創建圖片處理器
func NewProcessor(maxSizeBytes int64) *Processor {
	return &Processor{
		maxSizeBytes: maxSizeBytes,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FormatImageData 將任意形式的圖片輸入（URL、data URI、裸 base64）
// 正規化為 data:image/jpeg;base64 形式
func (p *Processor) FormatImageData(imageData string) (string, error) {
	if imageData == "" {
		return "", fmt.Errorf("image data is empty")
	}

	// URL：下載後重新編碼
	if strings.HasPrefix(imageData, "http://") || strings.HasPrefix(imageData, "https://") {
		return p.fetchAndEncode(imageData)
	}

	// data URI：檢查格式後原樣通過
	if strings.HasPrefix(imageData, "data:image/") {
		if !strings.Contains(imageData, ";base64,") {
			return "", fmt.Errorf("invalid data URI: missing base64 payload")
		}
		return imageData, nil
	}

	// 裸 base64：驗證後補上前綴
	if _, err := base64.StdEncoding.DecodeString(imageData); err != nil {
		return "", fmt.Errorf("invalid base64 image data: %w", err)
	}
	return "data:image/jpeg;base64," + imageData, nil
}

// fetchAndEncode 下載圖片並重新編碼為 JPEG data URI
func (p *Processor) fetchAndEncode(url string) (string, error) {
	resp, err := p.httpClient.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image: status code %d", resp.StatusCode)
	}

	// 限制讀取大小
	imageBytes, err := io.ReadAll(io.LimitReader(resp.Body, p.maxSizeBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	if int64(len(imageBytes)) > p.maxSizeBytes {
		return "", fmt.Errorf("image size exceeds maximum limit of %d bytes", p.maxSizeBytes)
	}

	img, format, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	if !isSupportedFormat(format) {
		return "", fmt.Errorf("unsupported image format: %s", format)
	}

	// 統一轉換為 JPEG
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", fmt.Errorf("failed to encode image as JPEG: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return "data:image/jpeg;base64," + encoded, nil
}

// isSupportedFormat 檢查圖片格式
func isSupportedFormat(format string) bool {
	switch format {
	case "jpeg", "png", "gif", "webp":
		return true
	}
	return false
}
