// Package extract 將半結構化的原始文字解析成食譜片段。
// 輸入以大寫標籤分段（TITLE:、INGREDIENTS:、STEPS: ...），
// 每個 TITLE: 出現處開始一個新片段。
// 擷取是全函數：格式不對不會失敗，缺漏的欄位留空，
// 好壞的判斷全部交給驗證器
package extract

import (
	"regexp"
	"strings"

	"recipe-ingest/internal/core/recipe"
)

// 已知的段落標籤，依來源文字中的出現位置切段。
// 標籤是明確的大寫 token，單趟由左到右掃描即可，無需回溯
var sectionLabels = []string{
	"TITLE",
	"DESCRIPTION",
	"INGREDIENTS",
	"STEPS",
	"DIFFICULTY",
	"CUISINE",
	"TOTAL_TIME",
	"DIETARY_INFO",
	"CATEGORIES",
	"ESTIMATED_COST",
	"SEASON",
	"OCCASION",
	"EQUIPMENT",
	"COOKING_METHODS",
	"DISH_TYPES",
	"SERVINGS",
}

// 新增標籤只需要加進 sectionLabels，切段邏輯不必動
var labelPattern = regexp.MustCompile("(" + strings.Join(sectionLabels, "|") + "):")

// labelMatch 一次標籤出現：名稱與值的起訖位置
type labelMatch struct {
	name  string
	start int // 標籤自身的起點
	end   int // 冒號之後，值的起點
}

// Extract 將原始文字解析為零到多個食譜片段。
// 文字含 k 個 TITLE: 就回傳 k 個片段，依出現順序排列；
// 一個標籤都沒有時回傳空序列，OCR 來源例外（見 fallbackFragment）
func Extract(raw recipe.RawExtraction) []recipe.Fragment {
	matches := findLabels(raw.Text)

	if len(matches) == 0 {
		return fallbackFragment(raw)
	}

	// 以 TITLE 為界切塊，第一個 TITLE 之前的文字不屬於任何片段
	var fragments []recipe.Fragment
	for i, m := range matches {
		if m.name != "TITLE" {
			continue
		}
		blockEnd := len(raw.Text)
		for j := i + 1; j < len(matches); j++ {
			if matches[j].name == "TITLE" {
				blockEnd = matches[j].start
				break
			}
		}
		fragments = append(fragments, parseBlock(raw.Text, matches[i:], blockEnd))
	}
	return fragments
}

// findLabels 單趟掃描所有標籤出現位置，O(文字長度)
func findLabels(text string) []labelMatch {
	locs := labelPattern.FindAllStringSubmatchIndex(text, -1)
	matches := make([]labelMatch, 0, len(locs))
	for _, loc := range locs {
		// 排除較長大寫詞的尾巴（如 SUBTITLE: 不是 TITLE:）
		if loc[0] > 0 {
			prev := text[loc[0]-1]
			if (prev >= 'A' && prev <= 'Z') || prev == '_' {
				continue
			}
		}
		matches = append(matches, labelMatch{
			name:  text[loc[2]:loc[3]],
			start: loc[0],
			end:   loc[1],
		})
	}
	return matches
}

// parseBlock 解析單一片段區塊：每個段落的值是標籤之後到
// 下一個標籤或區塊結尾之間的文字，缺漏的段落欄位留空
func parseBlock(text string, matches []labelMatch, blockEnd int) recipe.Fragment {
	var frag recipe.Fragment

	for i, m := range matches {
		if m.start >= blockEnd {
			break
		}
		valueEnd := blockEnd
		if i+1 < len(matches) && matches[i+1].start < blockEnd {
			valueEnd = matches[i+1].start
		}
		value := strings.TrimSpace(text[m.end:valueEnd])
		applySection(&frag, m.name, value)
	}
	return frag
}

// applySection 把段落值填入片段對應欄位
func applySection(frag *recipe.Fragment, label, value string) {
	switch label {
	case "TITLE":
		frag.Title = strPtr(value)
	case "DESCRIPTION":
		frag.Description = strPtr(value)
	case "INGREDIENTS":
		frag.Ingredients = parseIngredients(value)
	case "STEPS":
		frag.Steps = parseSteps(value)
	case "DIFFICULTY":
		d := recipe.Difficulty(strings.ToLower(value))
		frag.Difficulty = &d
	case "CUISINE":
		frag.Cuisine = strPtr(value)
	case "TOTAL_TIME":
		frag.TotalTime = strPtr(value)
	case "DIETARY_INFO":
		frag.DietaryInfo = parseDietaryInfo(value)
	case "CATEGORIES":
		frag.Categories = parseList(value)
	case "ESTIMATED_COST":
		frag.EstimatedCost = strPtr(value)
	case "SEASON":
		frag.Season = strPtr(value)
	case "OCCASION":
		frag.Occasion = strPtr(value)
	case "EQUIPMENT":
		frag.Equipment = parseList(value)
	case "COOKING_METHODS":
		frag.CookingMethods = parseList(value)
	case "DISH_TYPES":
		frag.DishTypes = parseList(value)
	case "SERVINGS":
		frag.Servings = parseServings(value)
	}
}

// fallbackFragment 無標籤文字的處理：
// OCR 掃描常常沒有任何結構，此時第一行非空文字當作標題、
// 其餘當作描述；其他來源一律回傳空序列
func fallbackFragment(raw recipe.RawExtraction) []recipe.Fragment {
	if raw.Source != recipe.SourceOCR {
		return nil
	}

	lines := strings.Split(raw.Text, "\n")
	title := ""
	rest := []string{}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if title == "" {
			title = line
			continue
		}
		rest = append(rest, line)
	}
	if title == "" {
		return nil
	}

	frag := recipe.Fragment{Title: &title}
	if len(rest) > 0 {
		desc := strings.Join(rest, "\n")
		frag.Description = &desc
	}
	return []recipe.Fragment{frag}
}

func strPtr(s string) *string {
	return &s
}
