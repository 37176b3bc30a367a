package extract

import (
	"regexp"
	"strconv"
	"strings"

	"recipe-ingest/internal/core/recipe"
	"recipe-ingest/internal/pkg/common"
)

var (
	// 數量 + 單位 + 名稱，如 "200 g tofu"、"1 tbsp soy sauce"、"1/2 cup milk"
	ingredientPattern = regexp.MustCompile(`^([0-9]+(?:[.,/][0-9]+)?)\s+(\S+)\s+(.+)$`)

	// 步驟編號："1." "2." ...，行首或空白之後
	stepPattern = regexp.MustCompile(`(?:^|\s)(\d+)\.\s+`)

	// 份量：第一個整數與其後的單位詞
	servingsPattern = regexp.MustCompile(`(\d+)\s*([A-Za-z]+)?`)

	dietaryTokenSplit = regexp.MustCompile(`[\s,;/]+`)
)

// parseIngredients 逐行解析食材段落。
// 能拆出「數量 單位 名稱」就拆，拆不出的整行保留為純文字食材名稱
// （如 "salt to taste"），而不是丟棄
func parseIngredients(section string) []recipe.Ingredient {
	var out []recipe.Ingredient
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, ParseIngredientLine(line))
	}
	return out
}

// ParseIngredientLine 解析單行食材，scrape 轉接器也共用這個入口
func ParseIngredientLine(line string) recipe.Ingredient {
	if m := ingredientPattern.FindStringSubmatch(line); m != nil {
		return recipe.Ingredient{
			Amount: m[1],
			Unit:   m[2],
			Name:   strings.TrimSpace(m[3]),
		}
	}
	return recipe.Ingredient{Name: line}
}

// parseSteps 以「整數加句點」切出有序步驟，
// 來源沒給標題時補上 "Step N"
func parseSteps(section string) []recipe.Step {
	locs := stepPattern.FindAllStringSubmatchIndex(section, -1)
	if len(locs) == 0 {
		// 沒有編號：整段當成單一步驟
		text := strings.TrimSpace(section)
		if text == "" {
			return nil
		}
		return []recipe.Step{{Title: "Step 1", Instructions: text}}
	}

	var out []recipe.Step
	for i, loc := range locs {
		contentStart := loc[1]
		contentEnd := len(section)
		if i+1 < len(locs) {
			contentEnd = locs[i+1][0]
		}
		instructions := strings.TrimSpace(section[contentStart:contentEnd])
		if instructions == "" {
			continue
		}
		out = append(out, recipe.Step{
			Title:        "Step " + strconv.Itoa(len(out)+1),
			Instructions: instructions,
		})
	}
	return out
}

// parseDietaryInfo 對固定詞彙做關鍵詞掃描，
// 不認識的詞直接忽略，寬鬆不失敗
func parseDietaryInfo(section string) *recipe.DietaryInfo {
	var info recipe.DietaryInfo
	for _, token := range dietaryTokenSplit.Split(strings.ToLower(section), -1) {
		switch strings.Trim(token, ".!") {
		case "vegetarian":
			info.IsVegetarian = true
		case "vegan":
			info.IsVegan = true
		case "gluten-free":
			info.IsGlutenFree = true
		case "dairy-free":
			info.IsDairyFree = true
		case "nuts":
			info.ContainsNuts = true
		}
	}
	return &info
}

// parseList 逗號切割並修剪的列表段落（分類、設備、烹調方式、菜式）
func parseList(section string) []string {
	return common.SplitAndTrim(section, ",")
}

// parseServings 取第一個整數與其後的單位詞；
// 段落有字但抓不到數字時留空，預設值在片段套用到食譜時才補
func parseServings(section string) *recipe.Servings {
	m := servingsPattern.FindStringSubmatch(section)
	if m == nil {
		return nil
	}
	amount, err := strconv.Atoi(m[1])
	if err != nil || amount <= 0 {
		return nil
	}
	unit := m[2]
	if unit == "" {
		unit = recipe.DefaultServingsUnit
	}
	return &recipe.Servings{Amount: amount, Unit: unit}
}
