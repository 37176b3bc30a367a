package imageref

import "strings"

// PlaceholderImage 沒有任何可用圖片時的固定替代圖
const PlaceholderImage = "https://static.recipe-ingest.app/placeholder/recipe.png"

// 暫時性 scheme：只在產生它的瀏覽器工作階段內有效，
// 工作階段結束即失效，絕不能當作持久化的圖片 URL
var ephemeralSchemes = []string{
	"blob:",
	"filesystem:",
}

// IsEphemeralReference 判斷 URI 是否為工作階段內的暫時性本地引用。
// 圖片解析與儲存前的清理步驟共用這個判斷
func IsEphemeralReference(uri string) bool {
	trimmed := strings.TrimSpace(strings.ToLower(uri))
	for _, scheme := range ephemeralSchemes {
		if strings.HasPrefix(trimmed, scheme) {
			return true
		}
	}
	return false
}

// ResolveFeaturedImage 挑選可顯示、可持久化的主圖：
// 指定索引的項目非暫時性引用且索引合法就用它，
// 否則退回第一張（同樣檢查），最後退回固定替代圖
func ResolveFeaturedImage(images []string, featuredIndex int) string {
	if featuredIndex >= 0 && featuredIndex < len(images) {
		if candidate := images[featuredIndex]; candidate != "" && !IsEphemeralReference(candidate) {
			return candidate
		}
	}
	if len(images) > 0 {
		if candidate := images[0]; candidate != "" && !IsEphemeralReference(candidate) {
			return candidate
		}
	}
	return PlaceholderImage
}

// SanitizeImages 在持久化邊界過濾暫時性引用，
// 並將 featured index 重新對齊到存活的同一張圖，對不上就歸零
func SanitizeImages(images []string, featuredIndex int) ([]string, int) {
	out := make([]string, 0, len(images))
	newIndex := 0
	for i, img := range images {
		if img == "" || IsEphemeralReference(img) {
			continue
		}
		if i == featuredIndex {
			newIndex = len(out)
		}
		out = append(out, img)
	}
	if newIndex >= len(out) {
		newIndex = 0
	}
	return out, newIndex
}
