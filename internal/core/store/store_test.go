package store

import (
	"context"
	"testing"
	"time"

	"recipe-ingest/internal/core/recipe"
	"recipe-ingest/internal/infrastructure/config"
	"recipe-ingest/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

func validRecipe() *recipe.Recipe {
	return &recipe.Recipe{
		Title:       "麻婆豆腐",
		Description: "經典川菜",
		Ingredients: []recipe.Ingredient{{Name: "tofu", Amount: "200", Unit: "g"}},
		Servings:    recipe.Servings{Amount: 4, Unit: "servings"},
		TotalTime:   "30 minutes",
		Difficulty:  recipe.DifficultyEasy,
		Categories:  []string{"Dinner"},
	}
}

// 驗證把關在任何寫入之前，未通過的發布不需要連線就能測
func TestSavePublishRejectsInvalidRecipe(t *testing.T) {
	s := &Store{config: &config.Config{}}
	r := &recipe.Recipe{} // 空食譜，驗證必定失敗

	result, err := s.Save(context.Background(), r, false)
	if err != common.ErrRecipeNotValid {
		t.Fatalf("err = %v, want ErrRecipeNotValid", err)
	}
	if result == nil || result.Validation.IsValid {
		t.Fatal("expected validation errors in result")
	}
	if result.ID != "" {
		t.Errorf("rejected save must not assign an id, got %q", result.ID)
	}
	if r.ID != "" {
		t.Errorf("rejected save must not mutate the recipe id, got %q", r.ID)
	}
}

func TestSaveNilRecipe(t *testing.T) {
	s := &Store{config: &config.Config{}}
	if _, err := s.Save(context.Background(), nil, true); err == nil {
		t.Error("expected error for nil recipe")
	}
}

// 寫入失敗（儲存端不可達）時呼叫端手上的食譜必須原封不動：
// 狀態不翻成 published、不派發 ID、圖片與時間戳都不動
func TestSaveWriteFailureLeavesRecipeUntouched(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	s := &Store{config: &config.Config{}, client: client}
	r := validRecipe()
	r.Images = []string{"blob:session-only", "https://cdn.example/a.jpg"}
	r.FeaturedImageIndex = 1

	_, err := s.Save(context.Background(), r, false)
	if err == nil {
		t.Fatal("expected error when the store is unreachable")
	}
	if r.Status != "" {
		t.Errorf("status = %q, want untouched on write failure", r.Status)
	}
	if r.ID != "" {
		t.Errorf("id = %q, want untouched on write failure", r.ID)
	}
	if len(r.Images) != 2 || r.FeaturedImageIndex != 1 {
		t.Errorf("images = %v (featured %d), want untouched on write failure", r.Images, r.FeaturedImageIndex)
	}
	if !r.UpdatedAt.IsZero() || !r.CreatedAt.IsZero() {
		t.Error("timestamps must stay zero on write failure")
	}
}

// 被拒絕的發布不得動到呼叫端手上的食譜
func TestSaveRejectionLeavesRecipeUntouched(t *testing.T) {
	s := &Store{config: &config.Config{}}
	r := &recipe.Recipe{
		Images:             []string{"blob:session-only", "https://cdn.example/a.jpg"},
		FeaturedImageIndex: 1,
	}

	s.Save(context.Background(), r, false)
	if len(r.Images) != 2 {
		t.Errorf("images = %v, want untouched on rejection", r.Images)
	}
	if r.Status != "" {
		t.Errorf("status = %q, want untouched on rejection", r.Status)
	}
}
