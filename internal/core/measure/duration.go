package measure

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	hoursPattern   = regexp.MustCompile(`(\d+)\s*(?:hours?|hrs?|h)\b`)
	minutesPattern = regexp.MustCompile(`(\d+)\s*(?:minutes?|mins?|m)\b`)
	barePattern    = regexp.MustCompile(`^\s*(\d+)\s*$`)
)

// FormatDuration 輸出標準時間字串：
// 兩部分皆非零為 "<h> hours and <m> minutes"，
// 單一部分非零為 "<h> hour(s)" 或 "<m> minute(s)"（值為 1 時用單數），
// 兩者皆零為 "0 minutes"
func FormatDuration(hours, minutes int) string {
	if hours < 0 {
		hours = 0
	}
	if minutes < 0 {
		minutes = 0
	}

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%s and %s", pluralize(hours, "hour"), pluralize(minutes, "minute"))
	case hours > 0:
		return pluralize(hours, "hour")
	case minutes > 0:
		return pluralize(minutes, "minute")
	default:
		return "0 minutes"
	}
}

// ParseDuration 解析標準格式與純分鐘格式（"90 minutes"、"90 mins"、"90"），
// 拆解成時/分供雙欄位編輯介面使用
func ParseDuration(s string) (hours, minutes int, err error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return 0, 0, fmt.Errorf("empty duration")
	}

	// 純數字視為分鐘
	if m := barePattern.FindStringSubmatch(lower); m != nil {
		minutes, _ = strconv.Atoi(m[1])
		return 0, minutes, nil
	}

	matched := false
	if m := hoursPattern.FindStringSubmatch(lower); m != nil {
		hours, _ = strconv.Atoi(m[1])
		matched = true
	}
	if m := minutesPattern.FindStringSubmatch(lower); m != nil {
		minutes, _ = strconv.Atoi(m[1])
		matched = true
	}
	if !matched {
		return 0, 0, fmt.Errorf("unrecognized duration: %q", s)
	}
	return hours, minutes, nil
}

// CanonicalDuration 嘗試把任意時間字串重排為標準格式，解析失敗時原樣保留
func CanonicalDuration(s string) string {
	h, m, err := ParseDuration(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	return FormatDuration(h, m)
}

// pluralize 值為 1 時用單數
func pluralize(v int, unit string) string {
	if v == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", v, unit)
}
