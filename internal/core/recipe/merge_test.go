package recipe

import (
	"reflect"
	"testing"
)

func strp(s string) *string { return &s }

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    MergePolicy
		wantErr bool
	}{
		{"keep", PolicyKeep, false},
		{"replace", PolicyReplace, false},
		{"merge", PolicyMerge, false},
		{" Merge ", PolicyMerge, false},
		{"overwrite", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMergeKeep(t *testing.T) {
	current := &Recipe{Title: "Original", Tags: []string{"fast"}}
	suggestion := &Fragment{Title: strp("Replacement"), Tags: []string{"new"}}

	got := Merge(current, suggestion, PolicyKeep)
	if got.Title != "Original" {
		t.Errorf("title = %q, want Original", got.Title)
	}
	if !reflect.DeepEqual(got.Tags, []string{"fast"}) {
		t.Errorf("tags = %v, want [fast]", got.Tags)
	}
}

func TestMergeReplaceFieldLevel(t *testing.T) {
	current := &Recipe{
		Title:       "Original",
		Description: "keep me",
		Cuisine:     "Italian",
	}
	// 建議只帶標題：其他欄位必須保留現值
	suggestion := &Fragment{Title: strp("New Title")}

	got := Merge(current, suggestion, PolicyReplace)
	if got.Title != "New Title" {
		t.Errorf("title = %q, want New Title", got.Title)
	}
	if got.Description != "keep me" {
		t.Errorf("description = %q, want keep me", got.Description)
	}
	if got.Cuisine != "Italian" {
		t.Errorf("cuisine = %q, want Italian", got.Cuisine)
	}
}

func TestMergeCombineScalars(t *testing.T) {
	current := &Recipe{Title: "Current", Cuisine: ""}
	suggestion := &Fragment{Title: strp("Suggested"), Cuisine: strp("Thai")}

	got := Merge(current, suggestion, PolicyMerge)
	// 純量：現值非空則保留
	if got.Title != "Current" {
		t.Errorf("title = %q, want Current", got.Title)
	}
	// 現值為空則採用建議值
	if got.Cuisine != "Thai" {
		t.Errorf("cuisine = %q, want Thai", got.Cuisine)
	}
}

func TestMergeCombineDescriptions(t *testing.T) {
	tests := []struct {
		name    string
		current string
		sugg    *string
		want    string
	}{
		{"both", "first", strp("second"), "first\nsecond"},
		{"current only", "first", nil, "first"},
		{"suggestion only", "", strp("second"), "second"},
		{"blank suggestion", "first", strp("   "), "first"},
		{"both empty", "", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(&Recipe{Description: tt.current}, &Fragment{Description: tt.sugg}, PolicyMerge)
			if got.Description != tt.want {
				t.Errorf("description = %q, want %q", got.Description, tt.want)
			}
		})
	}
}

func TestMergeCombineSetUnion(t *testing.T) {
	current := &Recipe{Tags: []string{"Vegan", "Quick"}}
	suggestion := &Fragment{Tags: []string{"Quick", "Spicy"}}

	got := Merge(current, suggestion, PolicyMerge)
	want := []string{"Vegan", "Quick", "Spicy"}
	if !reflect.DeepEqual(got.Tags, want) {
		t.Errorf("tags = %v, want %v", got.Tags, want)
	}

	// 大小寫敏感：vegan 與 Vegan 是不同項目
	got = Merge(&Recipe{Tags: []string{"Vegan"}}, &Fragment{Tags: []string{"vegan"}}, PolicyMerge)
	want = []string{"Vegan", "vegan"}
	if !reflect.DeepEqual(got.Tags, want) {
		t.Errorf("tags = %v, want %v", got.Tags, want)
	}
}

// 同一片段合併兩次，集合欄位不得重複增長
func TestMergeCombineIdempotentSets(t *testing.T) {
	current := &Recipe{Categories: []string{"dinner"}}
	suggestion := &Fragment{Categories: []string{"dinner", "asian"}}

	once := Merge(current, suggestion, PolicyMerge)
	twice := Merge(once, suggestion, PolicyMerge)

	if !reflect.DeepEqual(once.Categories, twice.Categories) {
		t.Errorf("second merge changed categories: %v vs %v", once.Categories, twice.Categories)
	}
}

// 有序清單直接串接，重複項保留給使用者整理
func TestMergeCombineOrderedListsConcat(t *testing.T) {
	current := &Recipe{
		Ingredients: []Ingredient{{Name: "tofu"}},
		Steps:       []Step{{Title: "Step 1", Instructions: "Heat pan."}},
	}
	suggestion := &Fragment{
		Ingredients: []Ingredient{{Name: "tofu"}, {Name: "garlic"}},
		Steps:       []Step{{Title: "Step 1", Instructions: "Heat pan."}},
	}

	got := Merge(current, suggestion, PolicyMerge)
	if len(got.Ingredients) != 3 {
		t.Errorf("ingredients length = %d, want 3 (duplicates preserved)", len(got.Ingredients))
	}
	if len(got.Steps) != 2 {
		t.Errorf("steps length = %d, want 2", len(got.Steps))
	}
}

func TestMergeCombineDietaryUnion(t *testing.T) {
	current := &Recipe{DietaryInfo: DietaryInfo{IsVegan: true}}
	suggestion := &Fragment{DietaryInfo: &DietaryInfo{IsGlutenFree: true}}

	got := Merge(current, suggestion, PolicyMerge)
	if !got.DietaryInfo.IsVegan || !got.DietaryInfo.IsGlutenFree {
		t.Errorf("dietary info = %+v, want vegan and gluten-free", got.DietaryInfo)
	}
}

func TestMergeCombineEnergyPerField(t *testing.T) {
	cal := 100.0
	protein := 20.0
	current := &Recipe{EnergyInfo: EnergyInfo{Calories: &cal}}
	suggCal := 900.0
	suggestion := &Fragment{EnergyInfo: &EnergyInfo{Calories: &suggCal, ProteinGrams: &protein}}

	got := Merge(current, suggestion, PolicyMerge)
	if got.EnergyInfo.Calories == nil || *got.EnergyInfo.Calories != 100 {
		t.Errorf("calories = %v, want current value 100", got.EnergyInfo.Calories)
	}
	if got.EnergyInfo.ProteinGrams == nil || *got.EnergyInfo.ProteinGrams != 20 {
		t.Errorf("protein = %v, want suggested value 20", got.EnergyInfo.ProteinGrams)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	current := &Recipe{Title: "Original", Tags: []string{"a"}}
	suggestion := &Fragment{Title: strp("Other"), Tags: []string{"b"}}

	for _, policy := range []MergePolicy{PolicyKeep, PolicyReplace, PolicyMerge} {
		Merge(current, suggestion, policy)
		if current.Title != "Original" || !reflect.DeepEqual(current.Tags, []string{"a"}) {
			t.Fatalf("policy %q mutated current: %+v", policy, current)
		}
		if *suggestion.Title != "Other" || !reflect.DeepEqual(suggestion.Tags, []string{"b"}) {
			t.Fatalf("policy %q mutated suggestion", policy)
		}
	}
}

func TestMergeNilInputs(t *testing.T) {
	if got := Merge(nil, &Fragment{Title: strp("x")}, PolicyMerge); got == nil {
		t.Fatal("nil current should yield a fresh recipe")
	}
	if got := Merge(&Recipe{Title: "x"}, nil, PolicyMerge); got == nil || got.Title != "x" {
		t.Fatal("nil suggestion should return a copy of current")
	}
}
