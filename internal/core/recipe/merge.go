package recipe

import (
	"fmt"
	"strings"
)

// MergePolicy 使用者在套用建議時選擇的合併策略
type MergePolicy string

const (
	PolicyKeep    MergePolicy = "keep"
	PolicyReplace MergePolicy = "replace"
	PolicyMerge   MergePolicy = "merge"
)

// ParsePolicy 解析合併策略字串
func ParsePolicy(s string) (MergePolicy, error) {
	switch MergePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyKeep:
		return PolicyKeep, nil
	case PolicyReplace:
		return PolicyReplace, nil
	case PolicyMerge:
		return PolicyMerge, nil
	}
	return "", fmt.Errorf("unknown merge policy: %q", s)
}

// Merge 以指定策略將建議片段併入現有食譜，回傳新食譜，輸入不被修改。
// 合併對其輸入域是全函數，不會失敗
func Merge(current *Recipe, suggestion *Fragment, policy MergePolicy) *Recipe {
	switch policy {
	case PolicyReplace:
		return mergeReplace(current, suggestion)
	case PolicyMerge:
		return mergeCombine(current, suggestion)
	default:
		// keep：丟棄建議
		return mergeKeep(current)
	}
}

// mergeKeep 保留現狀，建議被丟棄
func mergeKeep(current *Recipe) *Recipe {
	out := cloneRecipe(current)
	return &out
}

// mergeReplace 欄位層級覆寫：建議有值的欄位取代現值，缺省欄位保留，
// 不是整個物件替換
func mergeReplace(current *Recipe, suggestion *Fragment) *Recipe {
	out := cloneRecipe(current)
	ApplyFragment(&out, suggestion)
	return &out
}

// mergeCombine 逐欄位合併：
//   - 純量欄位現值非空則保留，否則採用建議值
//   - 描述以換行串接，空白部分省略
//   - 集合欄位聯集，現有項目在前，完全相同者去重
//   - 有序清單（食材、步驟）直接串接，不去重，留給使用者整理
func mergeCombine(current *Recipe, suggestion *Fragment) *Recipe {
	out := cloneRecipe(current)
	if suggestion == nil {
		return &out
	}

	out.Title = preferScalar(out.Title, suggestion.Title)
	out.Cuisine = preferScalar(out.Cuisine, suggestion.Cuisine)
	out.TotalTime = preferScalar(out.TotalTime, suggestion.TotalTime)
	out.EstimatedCost = preferScalar(out.EstimatedCost, suggestion.EstimatedCost)
	out.Season = preferScalar(out.Season, suggestion.Season)
	out.Occasion = preferScalar(out.Occasion, suggestion.Occasion)
	if out.Difficulty == "" && suggestion.Difficulty != nil {
		out.Difficulty = *suggestion.Difficulty
	}

	out.Description = joinDescriptions(out.Description, suggestion.Description)

	out.Categories = unionStrings(out.Categories, suggestion.Categories)
	out.Equipment = unionStrings(out.Equipment, suggestion.Equipment)
	out.CookingMethods = unionStrings(out.CookingMethods, suggestion.CookingMethods)
	out.DishTypes = unionStrings(out.DishTypes, suggestion.DishTypes)
	out.Tags = unionStrings(out.Tags, suggestion.Tags)
	out.Images = unionStrings(out.Images, suggestion.Images)

	out.Ingredients = append(out.Ingredients, suggestion.Ingredients...)
	out.Steps = append(out.Steps, suggestion.Steps...)

	// 飲食標記取聯集：任一方標記為真即為真
	if suggestion.DietaryInfo != nil {
		out.DietaryInfo = DietaryInfo{
			IsVegetarian: out.DietaryInfo.IsVegetarian || suggestion.DietaryInfo.IsVegetarian,
			IsVegan:      out.DietaryInfo.IsVegan || suggestion.DietaryInfo.IsVegan,
			IsGlutenFree: out.DietaryInfo.IsGlutenFree || suggestion.DietaryInfo.IsGlutenFree,
			IsDairyFree:  out.DietaryInfo.IsDairyFree || suggestion.DietaryInfo.IsDairyFree,
			ContainsNuts: out.DietaryInfo.ContainsNuts || suggestion.DietaryInfo.ContainsNuts,
		}
	}

	// 營養資訊逐欄位補缺，現值優先
	if suggestion.EnergyInfo != nil {
		out.EnergyInfo = EnergyInfo{
			Calories:     preferNumber(out.EnergyInfo.Calories, suggestion.EnergyInfo.Calories),
			Kilojoules:   preferNumber(out.EnergyInfo.Kilojoules, suggestion.EnergyInfo.Kilojoules),
			ProteinGrams: preferNumber(out.EnergyInfo.ProteinGrams, suggestion.EnergyInfo.ProteinGrams),
			CarbsGrams:   preferNumber(out.EnergyInfo.CarbsGrams, suggestion.EnergyInfo.CarbsGrams),
			FatGrams:     preferNumber(out.EnergyInfo.FatGrams, suggestion.EnergyInfo.FatGrams),
			FiberGrams:   preferNumber(out.EnergyInfo.FiberGrams, suggestion.EnergyInfo.FiberGrams),
		}
	}

	if out.Servings.Amount <= 0 && suggestion.Servings != nil {
		out.Servings = *suggestion.Servings
	}

	NormalizeImageIndex(&out)
	return &out
}

// preferScalar 現值非空則保留，否則採用建議值
func preferScalar(current string, suggested *string) string {
	if current != "" || suggested == nil {
		return current
	}
	return *suggested
}

// preferNumber 現值存在則保留，否則採用建議值
func preferNumber(current, suggested *float64) *float64 {
	if current != nil {
		return current
	}
	return suggested
}

// joinDescriptions 描述串接：換行分隔、修剪空白、空白部分省略
func joinDescriptions(a string, b *string) string {
	parts := make([]string, 0, 2)
	if s := strings.TrimSpace(a); s != "" {
		parts = append(parts, s)
	}
	if b != nil {
		if s := strings.TrimSpace(*b); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n")
}

// unionStrings 聯集：current 項目在前，suggestion 中未出現者依序補入。
// 重複合併時第二輪的項目都會被去重規則排除，集合欄位因此冪等
func unionStrings(current, suggestion []string) []string {
	out := dedupe(current)
	seen := make(map[string]struct{}, len(out))
	for _, item := range out {
		seen[item] = struct{}{}
	}
	for _, item := range suggestion {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// cloneRecipe 深拷貝切片欄位，Merge 不得修改輸入
func cloneRecipe(r *Recipe) Recipe {
	if r == nil {
		return *New()
	}
	out := *r
	out.Ingredients = append([]Ingredient(nil), r.Ingredients...)
	out.Steps = cloneSteps(r.Steps)
	out.Categories = append([]string(nil), r.Categories...)
	out.Equipment = append([]string(nil), r.Equipment...)
	out.CookingMethods = append([]string(nil), r.CookingMethods...)
	out.DishTypes = append([]string(nil), r.DishTypes...)
	out.Tags = append([]string(nil), r.Tags...)
	out.Images = append([]string(nil), r.Images...)
	return out
}

func cloneSteps(steps []Step) []Step {
	out := append([]Step(nil), steps...)
	for i := range out {
		out[i].Media = append([]string(nil), steps[i].Media...)
	}
	return out
}
