package recipe

import "strings"

// FieldError 以欄位名稱標記的驗證錯誤，呼叫端據此把錯誤導向對應的表單區塊
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult 驗證結果：一次回傳所有錯誤，讓使用者一次修完
type ValidationResult struct {
	IsValid bool         `json:"is_valid"`
	Errors  []FieldError `json:"errors"`
}

// Validate 檢查食譜是否達到可發布狀態。
// 純函數，無副作用，同樣輸入必得同樣結果；
// 草稿儲存不經過這裡，發布前必須通過
func Validate(r *Recipe) ValidationResult {
	var errs []FieldError

	if r == nil {
		return ValidationResult{
			IsValid: false,
			Errors:  []FieldError{{Field: "recipe", Message: "食譜不可為空"}},
		}
	}

	if strings.TrimSpace(r.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "標題不可為空"})
	}
	if strings.TrimSpace(r.Description) == "" {
		errs = append(errs, FieldError{Field: "description", Message: "描述不可為空"})
	}

	// 步驟式食譜以步驟層級的食材群組取代頂層食材清單
	if !r.StepBased && len(r.Ingredients) == 0 {
		errs = append(errs, FieldError{Field: "ingredients", Message: "至少需要一項食材"})
	}

	if r.Servings.Amount <= 0 {
		errs = append(errs, FieldError{Field: "servings", Message: "份量必須為正整數"})
	}
	if strings.TrimSpace(r.TotalTime) == "" {
		errs = append(errs, FieldError{Field: "total_time", Message: "總時間不可為空"})
	}
	if !ValidDifficulty(r.Difficulty) {
		errs = append(errs, FieldError{Field: "difficulty", Message: "難度必須為 easy、medium 或 hard"})
	}
	if len(r.Categories) == 0 {
		errs = append(errs, FieldError{Field: "categories", Message: "至少需要一個分類"})
	}
	// equipment 允許為空

	return ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}
