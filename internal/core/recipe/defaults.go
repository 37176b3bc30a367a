package recipe

// 所有匯入路徑（AI、剪貼簿、OCR、網頁擷取）共用的預設值，
// 集中在這裡避免散落在各呼叫端
const (
	DefaultTitle          = "Untitled Recipe"
	DefaultServingsAmount = 4
	DefaultServingsUnit   = "servings"
	DefaultGroup          = "main"
)

// New 建立一份空白食譜，使用者開始撰寫時的初始狀態
func New() *Recipe {
	return &Recipe{
		Ingredients:    []Ingredient{},
		Steps:          []Step{},
		Servings:       Servings{Amount: DefaultServingsAmount, Unit: DefaultServingsUnit},
		Categories:     []string{},
		Equipment:      []string{},
		CookingMethods: []string{},
		DishTypes:      []string{},
		Tags:           []string{},
		Images:         []string{},
		Privacy:        PrivacyPrivate,
		Status:         StatusDraft,
	}
}

// ApplyFragment 將片段套用到食譜：片段有值的欄位覆寫，缺省欄位保留原值。
// 標題預設值只在這個時點補上，擷取器輸出保持未補洞的原貌
func ApplyFragment(r *Recipe, f *Fragment) {
	if r == nil || f == nil {
		return
	}

	if f.Title != nil {
		r.Title = *f.Title
	}
	if f.Description != nil {
		r.Description = *f.Description
	}
	if len(f.Ingredients) > 0 {
		r.Ingredients = append([]Ingredient(nil), f.Ingredients...)
	}
	if len(f.Steps) > 0 {
		r.Steps = append([]Step(nil), f.Steps...)
	}
	if f.Servings != nil {
		r.Servings = *f.Servings
	}
	if f.Difficulty != nil {
		r.Difficulty = *f.Difficulty
	}
	if f.Cuisine != nil {
		r.Cuisine = *f.Cuisine
	}
	if f.TotalTime != nil {
		r.TotalTime = *f.TotalTime
	}
	if f.DietaryInfo != nil {
		r.DietaryInfo = *f.DietaryInfo
	}
	if len(f.Categories) > 0 {
		r.Categories = dedupe(f.Categories)
	}
	if len(f.Equipment) > 0 {
		r.Equipment = dedupe(f.Equipment)
	}
	if len(f.CookingMethods) > 0 {
		r.CookingMethods = dedupe(f.CookingMethods)
	}
	if len(f.DishTypes) > 0 {
		r.DishTypes = dedupe(f.DishTypes)
	}
	if len(f.Tags) > 0 {
		r.Tags = dedupe(f.Tags)
	}
	if f.EstimatedCost != nil {
		r.EstimatedCost = *f.EstimatedCost
	}
	if f.Season != nil {
		r.Season = *f.Season
	}
	if f.Occasion != nil {
		r.Occasion = *f.Occasion
	}
	if f.EnergyInfo != nil {
		r.EnergyInfo = *f.EnergyInfo
	}
	if len(f.Images) > 0 {
		r.Images = append([]string(nil), f.Images...)
	}

	// 套用後補齊預設值
	if r.Title == "" {
		r.Title = DefaultTitle
	}
	if r.Servings.Amount <= 0 {
		r.Servings = Servings{Amount: DefaultServingsAmount, Unit: DefaultServingsUnit}
	}
	NormalizeImageIndex(r)
}

// FromFragment 從片段建立一份新食譜（匯入路徑）
func FromFragment(f *Fragment) *Recipe {
	r := New()
	ApplyFragment(r, f)
	return r
}

// NormalizeImageIndex 維持 featured index 不變式：
// 必須是 images 的合法索引，images 為空時歸零
func NormalizeImageIndex(r *Recipe) {
	if len(r.Images) == 0 {
		r.FeaturedImageIndex = 0
		return
	}
	if r.FeaturedImageIndex < 0 || r.FeaturedImageIndex >= len(r.Images) {
		r.FeaturedImageIndex = 0
	}
}

// dedupe 去除重複項目，保留首次出現順序（大小寫敏感完全比對）
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
