package recipe

import "time"

// SourceKind 原始文字的來源類型
type SourceKind string

const (
	SourceAIGenerated SourceKind = "ai-generated"
	SourceClipboard   SourceKind = "clipboard"
	SourceOCR         SourceKind = "ocr"
	SourceURLScrape   SourceKind = "url-scrape"
)

// RawExtraction 一次匯入動作的原始文字，片段建構完成後即丟棄
type RawExtraction struct {
	Text   string     `json:"text"`
	Source SourceKind `json:"source"`
}

// Difficulty 難度
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ValidDifficulty 檢查難度是否為合法列舉值
func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Privacy 隱私設定
type Privacy string

const (
	PrivacyPublic  Privacy = "public"
	PrivacyPrivate Privacy = "private"
)

// Status 食譜狀態
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Ingredient 食材行，依位置排序，允許重複
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Group  string `json:"group,omitempty"`
}

// Step 料理步驟
type Step struct {
	Title           string   `json:"title"`
	Instructions    string   `json:"instructions"`
	Duration        string   `json:"duration"`
	IngredientGroup string   `json:"ingredient_group,omitempty"`
	Media           []string `json:"media,omitempty"`
}

// Servings 份量
type Servings struct {
	Amount int    `json:"amount"`
	Unit   string `json:"unit"`
}

// DietaryInfo 飲食標記
type DietaryInfo struct {
	IsVegetarian bool `json:"is_vegetarian"`
	IsVegan      bool `json:"is_vegan"`
	IsGlutenFree bool `json:"is_gluten_free"`
	IsDairyFree  bool `json:"is_dairy_free"`
	ContainsNuts bool `json:"contains_nuts"`
}

// EnergyInfo 營養資訊，所有欄位皆可缺省
// Calories 與 Kilojoules 同時存在時必須滿足 kJ = cal × 4.184，
// 由 measure 套件在編輯時互相推導，不允許獨立漂移
type EnergyInfo struct {
	Calories     *float64 `json:"calories,omitempty"`
	Kilojoules   *float64 `json:"kilojoules,omitempty"`
	ProteinGrams *float64 `json:"protein_grams,omitempty"`
	CarbsGrams   *float64 `json:"carbs_grams,omitempty"`
	FatGrams     *float64 `json:"fat_grams,omitempty"`
	FiberGrams   *float64 `json:"fiber_grams,omitempty"`
}

// Recipe 正規化後的食譜實體
type Recipe struct {
	ID          string       `json:"id,omitempty"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
	Servings    Servings     `json:"servings"`
	Difficulty  Difficulty   `json:"difficulty"`
	Cuisine     string       `json:"cuisine"`
	TotalTime   string       `json:"total_time"`
	DietaryInfo DietaryInfo  `json:"dietary_info"`

	// 集合欄位：保留插入順序，不允許重複（大小寫敏感完全比對）
	Categories     []string `json:"categories"`
	Equipment      []string `json:"equipment"`
	CookingMethods []string `json:"cooking_methods"`
	DishTypes      []string `json:"dish_types"`
	Tags           []string `json:"tags"`

	EstimatedCost string     `json:"estimated_cost"`
	Season        string     `json:"season"`
	Occasion      string     `json:"occasion"`
	EnergyInfo    EnergyInfo `json:"energy_info"`

	Images             []string `json:"images"`
	FeaturedImageIndex int      `json:"featured_image_index"`

	Privacy Privacy `json:"privacy"`
	Status  Status  `json:"status"`

	CreatedAt time.Time `json:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`

	// StepBased 為真時，步驟層級的食材群組取代頂層食材清單
	StepBased bool `json:"step_based,omitempty"`
}

// Fragment 部分食譜：所有欄位皆為選填，由擷取器或外部轉接器產生，
// 產生後不可變，交給合併引擎或直接套用到 Recipe
type Fragment struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Ingredients []Ingredient `json:"ingredients,omitempty"`
	Steps       []Step       `json:"steps,omitempty"`
	Servings    *Servings    `json:"servings,omitempty"`
	Difficulty  *Difficulty  `json:"difficulty,omitempty"`
	Cuisine     *string      `json:"cuisine,omitempty"`
	TotalTime   *string      `json:"total_time,omitempty"`
	DietaryInfo *DietaryInfo `json:"dietary_info,omitempty"`

	Categories     []string `json:"categories,omitempty"`
	Equipment      []string `json:"equipment,omitempty"`
	CookingMethods []string `json:"cooking_methods,omitempty"`
	DishTypes      []string `json:"dish_types,omitempty"`
	Tags           []string `json:"tags,omitempty"`

	EstimatedCost *string     `json:"estimated_cost,omitempty"`
	Season        *string     `json:"season,omitempty"`
	Occasion      *string     `json:"occasion,omitempty"`
	EnergyInfo    *EnergyInfo `json:"energy_info,omitempty"`

	Images []string `json:"images,omitempty"`
}

// HasContent 檢查片段是否帶有尚未審閱的內容，
// 匯入對話框關閉前由 UI 據此決定是否需要確認丟棄
func (f *Fragment) HasContent() bool {
	if f == nil {
		return false
	}
	if f.Title != nil || f.Description != nil || f.Servings != nil ||
		f.Difficulty != nil || f.Cuisine != nil || f.TotalTime != nil ||
		f.DietaryInfo != nil || f.EstimatedCost != nil || f.Season != nil ||
		f.Occasion != nil || f.EnergyInfo != nil {
		return true
	}
	return len(f.Ingredients) > 0 || len(f.Steps) > 0 ||
		len(f.Categories) > 0 || len(f.Equipment) > 0 ||
		len(f.CookingMethods) > 0 || len(f.DishTypes) > 0 ||
		len(f.Tags) > 0 || len(f.Images) > 0
}
