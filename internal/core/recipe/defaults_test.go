package recipe

import "testing"

func TestNewDefaults(t *testing.T) {
	r := New()
	if r.Servings.Amount != DefaultServingsAmount || r.Servings.Unit != DefaultServingsUnit {
		t.Errorf("servings = %+v, want %d %s", r.Servings, DefaultServingsAmount, DefaultServingsUnit)
	}
	if r.Privacy != PrivacyPrivate {
		t.Errorf("privacy = %q, want private", r.Privacy)
	}
	if r.Status != StatusDraft {
		t.Errorf("status = %q, want draft", r.Status)
	}
}

func TestFromFragmentAppliesDefaults(t *testing.T) {
	// 片段沒有標題與份量：套用時補預設值
	r := FromFragment(&Fragment{Description: strp("just a description")})
	if r.Title != DefaultTitle {
		t.Errorf("title = %q, want %q", r.Title, DefaultTitle)
	}
	if r.Servings.Amount != DefaultServingsAmount {
		t.Errorf("servings = %+v, want default", r.Servings)
	}
	if r.Description != "just a description" {
		t.Errorf("description = %q", r.Description)
	}
}

func TestFromFragmentKeepsProvidedValues(t *testing.T) {
	r := FromFragment(&Fragment{
		Title:    strp("Pad Thai"),
		Servings: &Servings{Amount: 2, Unit: "bowls"},
	})
	if r.Title != "Pad Thai" {
		t.Errorf("title = %q, want Pad Thai", r.Title)
	}
	if r.Servings.Amount != 2 || r.Servings.Unit != "bowls" {
		t.Errorf("servings = %+v, want 2 bowls", r.Servings)
	}
}

func TestApplyFragmentPartialOverwrite(t *testing.T) {
	r := &Recipe{Title: "Old", Description: "keep", Servings: Servings{Amount: 6, Unit: "servings"}}
	ApplyFragment(r, &Fragment{Title: strp("New")})

	if r.Title != "New" {
		t.Errorf("title = %q, want New", r.Title)
	}
	if r.Description != "keep" {
		t.Errorf("description = %q, want keep", r.Description)
	}
	if r.Servings.Amount != 6 {
		t.Errorf("servings = %+v, want untouched", r.Servings)
	}
}

func TestApplyFragmentDedupesSets(t *testing.T) {
	r := New()
	ApplyFragment(r, &Fragment{Categories: []string{"dinner", "asian", "dinner"}})
	if len(r.Categories) != 2 || r.Categories[0] != "dinner" || r.Categories[1] != "asian" {
		t.Errorf("categories = %v, want [dinner asian]", r.Categories)
	}
}

func TestNormalizeImageIndex(t *testing.T) {
	tests := []struct {
		name   string
		images []string
		index  int
		want   int
	}{
		{"empty images", nil, 3, 0},
		{"in range", []string{"a", "b", "c"}, 2, 2},
		{"out of range", []string{"a", "b"}, 5, 0},
		{"negative", []string{"a"}, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Recipe{Images: tt.images, FeaturedImageIndex: tt.index}
			NormalizeImageIndex(r)
			if r.FeaturedImageIndex != tt.want {
				t.Errorf("index = %d, want %d", r.FeaturedImageIndex, tt.want)
			}
		})
	}
}

func TestFragmentHasContent(t *testing.T) {
	var nilFrag *Fragment
	if nilFrag.HasContent() {
		t.Error("nil fragment has no content")
	}
	if (&Fragment{}).HasContent() {
		t.Error("empty fragment has no content")
	}
	if !(&Fragment{Title: strp("x")}).HasContent() {
		t.Error("fragment with title has content")
	}
	if !(&Fragment{Tags: []string{"a"}}).HasContent() {
		t.Error("fragment with tags has content")
	}
}
