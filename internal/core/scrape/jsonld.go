package scrape

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"recipe-ingest/internal/core/extract"
	"recipe-ingest/internal/core/measure"
	"recipe-ingest/internal/core/recipe"

	"github.com/PuerkitoBio/goquery"
)

// extractJSONLD 走訪頁面中的 ld+json 區塊，找出第一個 schema.org/Recipe 節點
func extractJSONLD(doc *goquery.Document) *recipe.Fragment {
	var frag *recipe.Fragment

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var payload interface{}
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			// 單一區塊壞掉不影響其他區塊
			return true
		}
		if node := findRecipeNode(payload); node != nil {
			frag = mapRecipeNode(node)
			return false
		}
		return true
	})

	return frag
}

// findRecipeNode 在 JSON-LD 結構中遞迴尋找 @type 為 Recipe 的節點，
// 需處理頂層陣列與 @graph 包裝
func findRecipeNode(v interface{}) map[string]interface{} {
	switch node := v.(type) {
	case []interface{}:
		for _, item := range node {
			if found := findRecipeNode(item); found != nil {
				return found
			}
		}
	case map[string]interface{}:
		if isRecipeType(node["@type"]) {
			return node
		}
		if graph, ok := node["@graph"]; ok {
			return findRecipeNode(graph)
		}
	}
	return nil
}

// isRecipeType @type 可能是字串或字串陣列
func isRecipeType(v interface{}) bool {
	switch t := v.(type) {
	case string:
		return strings.EqualFold(t, "Recipe")
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, "Recipe") {
				return true
			}
		}
	}
	return false
}

// mapRecipeNode 將 schema.org/Recipe 節點映射為食譜片段
func mapRecipeNode(node map[string]interface{}) *recipe.Fragment {
	var frag recipe.Fragment

	if title := asString(node["name"]); title != "" {
		frag.Title = &title
	}
	if desc := asString(node["description"]); desc != "" {
		frag.Description = &desc
	}

	for _, line := range asStringSlice(node["recipeIngredient"]) {
		frag.Ingredients = append(frag.Ingredients, extract.ParseIngredientLine(line))
	}

	frag.Steps = mapInstructions(node["recipeInstructions"])

	if raw := asString(node["totalTime"]); raw != "" {
		if h, m, ok := parseISODuration(raw); ok {
			t := measure.FormatDuration(h, m)
			frag.TotalTime = &t
		}
	}

	if servings := mapYield(node["recipeYield"]); servings != nil {
		frag.Servings = servings
	}

	if cuisine := firstString(node["recipeCuisine"]); cuisine != "" {
		frag.Cuisine = &cuisine
	}
	frag.Categories = asStringSlice(node["recipeCategory"])
	frag.Tags = mapKeywords(node["keywords"])
	frag.Images = mapImages(node["image"])

	if !frag.HasContent() {
		return nil
	}
	return &frag
}

// mapInstructions recipeInstructions 的形狀很多：
// 純字串、字串陣列、HowToStep 陣列、HowToSection 包 itemListElement
func mapInstructions(v interface{}) []recipe.Step {
	var out []recipe.Step
	appendStep := func(title, text string) {
		text = strings.TrimSpace(text)
		if text == "" {
			return
		}
		if title == "" {
			title = "Step " + strconv.Itoa(len(out)+1)
		}
		out = append(out, recipe.Step{Title: title, Instructions: text})
	}

	var walk func(v interface{})
	walk = func(v interface{}) {
		switch node := v.(type) {
		case string:
			appendStep("", node)
		case []interface{}:
			for _, item := range node {
				walk(item)
			}
		case map[string]interface{}:
			if items, ok := node["itemListElement"]; ok {
				walk(items)
				return
			}
			appendStep(asString(node["name"]), asString(node["text"]))
		}
	}
	walk(v)
	return out
}

// mapYield recipeYield 可能是數字、字串或陣列
func mapYield(v interface{}) *recipe.Servings {
	switch y := v.(type) {
	case float64:
		if amount := int(y); amount > 0 {
			return &recipe.Servings{Amount: amount, Unit: recipe.DefaultServingsUnit}
		}
	case string:
		return parseYieldString(y)
	case []interface{}:
		for _, item := range y {
			if s := mapYield(item); s != nil {
				return s
			}
		}
	}
	return nil
}

var yieldPattern = regexp.MustCompile(`(\d+)\s*([A-Za-z]+)?`)

func parseYieldString(s string) *recipe.Servings {
	m := yieldPattern.FindStringSubmatch(s)
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

// mapKeywords keywords 可能是逗號字串或陣列
func mapKeywords(v interface{}) []string {
	switch k := v.(type) {
	case string:
		var out []string
		for _, item := range strings.Split(k, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	case []interface{}:
		return asStringSlice(k)
	}
	return nil
}

// mapImages image 可能是字串、陣列或 ImageObject
func mapImages(v interface{}) []string {
	var out []string
	var walk func(v interface{})
	walk = func(v interface{}) {
		switch node := v.(type) {
		case string:
			if node != "" {
				out = append(out, node)
			}
		case []interface{}:
			for _, item := range node {
				walk(item)
			}
		case map[string]interface{}:
			walk(node["url"])
		}
	}
	walk(v)
	return out
}

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// parseISODuration 解析 ISO 8601 時段（PT1H30M 之類），轉成時/分
func parseISODuration(s string) (hours, minutes int, ok bool) {
	m := isoDurationPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return 0, 0, false
	}
	days, _ := strconv.Atoi(zeroIfEmpty(m[1]))
	hours, _ = strconv.Atoi(zeroIfEmpty(m[2]))
	minutes, _ = strconv.Atoi(zeroIfEmpty(m[3]))
	hours += days * 24
	if hours == 0 && minutes == 0 && m[1] == "" && m[2] == "" && m[3] == "" {
		return 0, 0, false
	}
	return hours, minutes, true
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// asString 寬鬆取字串
func asString(v interface{}) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// firstString 取字串或陣列中的第一個字串
func firstString(v interface{}) string {
	if s := asString(v); s != "" {
		return s
	}
	if items, ok := v.([]interface{}); ok {
		for _, item := range items {
			if s := asString(item); s != "" {
				return s
			}
		}
	}
	return ""
}

// asStringSlice 取字串陣列，單一字串也接受
func asStringSlice(v interface{}) []string {
	switch node := v.(type) {
	case string:
		if s := strings.TrimSpace(node); s != "" {
			return []string{s}
		}
	case []interface{}:
		var out []string
		for _, item := range node {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
