package measure

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		hours, minutes int
		want           string
	}{
		{0, 0, "0 minutes"},
		{0, 1, "1 minute"},
		{0, 45, "45 minutes"},
		{1, 0, "1 hour"},
		{2, 0, "2 hours"},
		{1, 1, "1 hour and 1 minute"},
		{1, 30, "1 hour and 30 minutes"},
		{2, 15, "2 hours and 15 minutes"},
		{-1, -5, "0 minutes"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.hours, tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d, %d) = %q, want %q", tt.hours, tt.minutes, got, tt.want)
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in          string
		wantHours   int
		wantMinutes int
		wantErr     bool
	}{
		{"1 hour and 30 minutes", 1, 30, false},
		{"2 hours", 2, 0, false},
		{"45 minutes", 0, 45, false},
		{"90 mins", 0, 90, false},
		{"90 min", 0, 90, false},
		{"90", 0, 90, false},
		{"1h 20m", 1, 20, false},
		{"overnight", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, tt := range tests {
		h, m, err := ParseDuration(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDuration(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if h != tt.wantHours || m != tt.wantMinutes {
			t.Errorf("ParseDuration(%q) = (%d, %d), want (%d, %d)", tt.in, h, m, tt.wantHours, tt.wantMinutes)
		}
	}
}

// 標準格式的往返：格式化後再解析必須得到原值
func TestDurationRoundTrip(t *testing.T) {
	for hours := 0; hours <= 72; hours++ {
		for minutes := 0; minutes <= 59; minutes++ {
			formatted := FormatDuration(hours, minutes)
			h, m, err := ParseDuration(formatted)
			if err != nil {
				t.Fatalf("ParseDuration(%q) failed: %v", formatted, err)
			}
			wantH, wantM := hours, minutes
			if hours == 0 && minutes == 0 {
				wantH, wantM = 0, 0
			}
			if h != wantH || m != wantM {
				t.Fatalf("round trip (%d, %d) -> %q -> (%d, %d)", hours, minutes, formatted, h, m)
			}
		}
	}
}

func TestCanonicalDuration(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"90 minutes", "90 minutes"},
		{"90", "90 minutes"},
		{"1 hour and 30 minutes", "1 hour and 30 minutes"},
		{"2 hrs 5 mins", "2 hours and 5 minutes"},
		{"overnight", "overnight"}, // 解析失敗原樣保留
		{"  a while  ", "a while"},
	}
	for _, tt := range tests {
		if got := CanonicalDuration(tt.in); got != tt.want {
			t.Errorf("CanonicalDuration(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
