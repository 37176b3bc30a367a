package measure

import (
	"math"
	"strconv"
	"strings"

	"recipe-ingest/internal/core/recipe"
)

// 千焦與大卡的換算係數
const kilojoulesPerCalorie = 4.184

// FromCalories 大卡換算千焦
func FromCalories(cal float64) float64 {
	return round2(cal * kilojoulesPerCalorie)
}

// FromKilojoules 千焦換算大卡
func FromKilojoules(kj float64) float64 {
	return round2(kj / kilojoulesPerCalorie)
}

// EditCalories 編輯大卡欄位並重新推導千焦，兩者不允許獨立漂移
func EditCalories(e *recipe.EnergyInfo, raw string) {
	v, ok := parseNumber(raw)
	if !ok {
		// 非數值輸入：兩個欄位一起清空，不儲存 NaN
		e.Calories = nil
		e.Kilojoules = nil
		return
	}
	kj := FromCalories(v)
	e.Calories = &v
	e.Kilojoules = &kj
}

// EditKilojoules 編輯千焦欄位並重新推導大卡
func EditKilojoules(e *recipe.EnergyInfo, raw string) {
	v, ok := parseNumber(raw)
	if !ok {
		e.Calories = nil
		e.Kilojoules = nil
		return
	}
	cal := FromKilojoules(v)
	e.Kilojoules = &v
	e.Calories = &cal
}

// SyncEnergy 補齊缺少的一邊：只有大卡就推導千焦，反之亦然。
// 兩者都存在時以大卡為準重新推導千焦，確保兩欄位不會各自漂移
func SyncEnergy(e *recipe.EnergyInfo) {
	if e == nil {
		return
	}
	switch {
	case e.Calories != nil:
		kj := FromCalories(*e.Calories)
		e.Kilojoules = &kj
	case e.Kilojoules != nil:
		cal := FromKilojoules(*e.Kilojoules)
		e.Calories = &cal
	}
}

// parseNumber 寬鬆解析數值，失敗回傳 false 而非 NaN
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// round2 捨入到小數點後兩位
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
