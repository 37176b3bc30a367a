package extract

import (
	"strings"
	"testing"

	"recipe-ingest/internal/core/recipe"
)

func TestExtractSingleRecipe(t *testing.T) {
	text := `TITLE: Spicy Tofu
DESCRIPTION: A quick dish.
INGREDIENTS:
200 g tofu
1 tbsp soy sauce
STEPS: 1. Heat pan. 2. Add tofu.
DIFFICULTY: easy
SERVINGS: 2 servings`

	fragments := Extract(recipe.RawExtraction{Text: text, Source: recipe.SourceClipboard})
	if len(fragments) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(fragments))
	}
	frag := fragments[0]

	if frag.Title == nil || *frag.Title != "Spicy Tofu" {
		t.Errorf("title = %v, want Spicy Tofu", frag.Title)
	}
	if frag.Description == nil || *frag.Description != "A quick dish." {
		t.Errorf("description = %v, want A quick dish.", frag.Description)
	}

	if len(frag.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(frag.Ingredients))
	}
	first := frag.Ingredients[0]
	if first.Amount != "200" || first.Unit != "g" || first.Name != "tofu" {
		t.Errorf("ingredient[0] = %+v, want 200 g tofu", first)
	}
	second := frag.Ingredients[1]
	if second.Amount != "1" || second.Unit != "tbsp" || second.Name != "soy sauce" {
		t.Errorf("ingredient[1] = %+v, want 1 tbsp soy sauce", second)
	}

	if len(frag.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(frag.Steps))
	}
	if frag.Steps[0].Title != "Step 1" || frag.Steps[0].Instructions != "Heat pan." {
		t.Errorf("step[0] = %+v", frag.Steps[0])
	}
	if frag.Steps[1].Title != "Step 2" || frag.Steps[1].Instructions != "Add tofu." {
		t.Errorf("step[1] = %+v", frag.Steps[1])
	}

	if frag.Difficulty == nil || *frag.Difficulty != recipe.DifficultyEasy {
		t.Errorf("difficulty = %v, want easy", frag.Difficulty)
	}
	if frag.Servings == nil || frag.Servings.Amount != 2 || frag.Servings.Unit != "servings" {
		t.Errorf("servings = %v, want 2 servings", frag.Servings)
	}
}

func TestExtractMultipleTitles(t *testing.T) {
	text := `TITLE: First
DESCRIPTION: one
TITLE: Second
DESCRIPTION: two
TITLE: Third`

	fragments := Extract(recipe.RawExtraction{Text: text, Source: recipe.SourceAIGenerated})
	if len(fragments) != 3 {
		t.Fatalf("expected 3 fragments, got %d", len(fragments))
	}

	wantTitles := []string{"First", "Second", "Third"}
	for i, want := range wantTitles {
		if fragments[i].Title == nil || *fragments[i].Title != want {
			t.Errorf("fragment[%d].Title = %v, want %s", i, fragments[i].Title, want)
		}
	}
	if fragments[0].Description == nil || *fragments[0].Description != "one" {
		t.Errorf("fragment[0].Description = %v, want one", fragments[0].Description)
	}
	if fragments[2].Description != nil {
		t.Errorf("fragment[2].Description = %v, want nil", fragments[2].Description)
	}
}

func TestExtractNoLabels(t *testing.T) {
	fragments := Extract(recipe.RawExtraction{
		Text:   "just some random text\nwith no structure",
		Source: recipe.SourceClipboard,
	})
	if len(fragments) != 0 {
		t.Errorf("expected no fragments for unlabeled clipboard text, got %d", len(fragments))
	}
}

func TestExtractOCRFallback(t *testing.T) {
	fragments := Extract(recipe.RawExtraction{
		Text:   "\n  Grandma's Stew  \nSimmer for hours.\nServe warm.",
		Source: recipe.SourceOCR,
	})
	if len(fragments) != 1 {
		t.Fatalf("expected 1 fallback fragment, got %d", len(fragments))
	}
	frag := fragments[0]
	if frag.Title == nil || *frag.Title != "Grandma's Stew" {
		t.Errorf("title = %v, want Grandma's Stew", frag.Title)
	}
	if frag.Description == nil || *frag.Description != "Simmer for hours.\nServe warm." {
		t.Errorf("description = %v", frag.Description)
	}
}

func TestExtractOCRFallbackEmpty(t *testing.T) {
	fragments := Extract(recipe.RawExtraction{Text: "   \n \n", Source: recipe.SourceOCR})
	if len(fragments) != 0 {
		t.Errorf("expected no fragments for blank OCR text, got %d", len(fragments))
	}
}

func TestExtractIgnoresSimilarLabels(t *testing.T) {
	// SUBTITLE: 不是 TITLE:
	text := "SUBTITLE: not a real label\nTITLE: Real"
	fragments := Extract(recipe.RawExtraction{Text: text, Source: recipe.SourceClipboard})
	if len(fragments) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(fragments))
	}
	if fragments[0].Title == nil || *fragments[0].Title != "Real" {
		t.Errorf("title = %v, want Real", fragments[0].Title)
	}
}

func TestExtractTextBeforeFirstTitle(t *testing.T) {
	text := "DESCRIPTION: orphan text\nTITLE: Actual Recipe"
	fragments := Extract(recipe.RawExtraction{Text: text, Source: recipe.SourceClipboard})
	if len(fragments) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(fragments))
	}
	if fragments[0].Description != nil {
		t.Errorf("orphan description before first TITLE should be dropped, got %v", *fragments[0].Description)
	}
}

func TestParseIngredientFreeText(t *testing.T) {
	tests := []struct {
		line string
		want recipe.Ingredient
	}{
		{"200 g tofu", recipe.Ingredient{Amount: "200", Unit: "g", Name: "tofu"}},
		{"1/2 cup milk", recipe.Ingredient{Amount: "1/2", Unit: "cup", Name: "milk"}},
		{"2.5 kg potatoes", recipe.Ingredient{Amount: "2.5", Unit: "kg", Name: "potatoes"}},
		{"salt to taste", recipe.Ingredient{Name: "salt to taste"}},
		{"a pinch of saffron", recipe.Ingredient{Name: "a pinch of saffron"}},
	}
	for _, tt := range tests {
		got := ParseIngredientLine(tt.line)
		if got != tt.want {
			t.Errorf("ParseIngredientLine(%q) = %+v, want %+v", tt.line, got, tt.want)
		}
	}
}

func TestParseStepsWithoutNumbers(t *testing.T) {
	fragments := Extract(recipe.RawExtraction{
		Text:   "TITLE: X\nSTEPS: Mix everything and bake.",
		Source: recipe.SourceClipboard,
	})
	if len(fragments) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(fragments))
	}
	steps := fragments[0].Steps
	if len(steps) != 1 {
		t.Fatalf("expected 1 step, got %d", len(steps))
	}
	if steps[0].Title != "Step 1" || steps[0].Instructions != "Mix everything and bake." {
		t.Errorf("step = %+v", steps[0])
	}
}

func TestParseDietaryInfo(t *testing.T) {
	fragments := Extract(recipe.RawExtraction{
		Text:   "TITLE: X\nDIETARY_INFO: vegan, gluten-free, contains nuts",
		Source: recipe.SourceClipboard,
	})
	if len(fragments) != 1 {
		t.Fatalf("expected 1 fragment, got %d", len(fragments))
	}
	info := fragments[0].DietaryInfo
	if info == nil {
		t.Fatal("expected dietary info")
	}
	if !info.IsVegan || !info.IsGlutenFree || !info.ContainsNuts {
		t.Errorf("dietary info = %+v", *info)
	}
	if info.IsVegetarian || info.IsDairyFree {
		t.Errorf("unexpected flags set: %+v", *info)
	}
}

func TestExtractNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"TITLE:",
		"TITLE: \nINGREDIENTS:\nSTEPS:",
		strings.Repeat("TITLE: x\n", 50),
		"INGREDIENTS: no title at all",
	}
	for _, in := range inputs {
		// 全函數：任何輸入都不得 panic 或回傳錯誤
		_ = Extract(recipe.RawExtraction{Text: in, Source: recipe.SourceClipboard})
	}
}
